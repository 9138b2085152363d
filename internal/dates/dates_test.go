package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2023-10-05", time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC)},
		{"date and minutes", "2023-10-05T11:30", time.Date(2023, 10, 5, 11, 30, 0, 0, time.UTC)},
		{"date and seconds", "2023-10-05T11:30:15", time.Date(2023, 10, 5, 11, 30, 15, 0, time.UTC)},
		{"rfc3339", "2023-10-05T11:30:00Z", time.Date(2023, 10, 5, 11, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "05/10/2023"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC)
	b := time.Date(2023, 10, 5, 23, 59, 0, 0, time.UTC)
	c := time.Date(2023, 10, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestWall(t *testing.T) {
	in := time.Date(2023, 10, 8, 23, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	got := Wall(in)

	assert.Equal(t, time.Date(2023, 10, 8, 23, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{"wednesday", time.Date(2023, 10, 4, 15, 30, 0, 0, time.UTC), time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)},
		{"monday maps to itself", time.Date(2023, 10, 2, 9, 0, 0, 0, time.UTC), time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to the preceding monday", time.Date(2023, 10, 8, 23, 0, 0, 0, time.UTC), time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeek(tt.input))
		})
	}
}
