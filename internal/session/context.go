package session

import "context"

type contextKey struct{}

// WithProfile attaches the signed-in profile to the context.
func WithProfile(ctx context.Context, profile UserProfile) context.Context {
	return context.WithValue(ctx, contextKey{}, profile)
}

// ProfileFromContext returns the profile attached by WithProfile.
func ProfileFromContext(ctx context.Context) (UserProfile, bool) {
	profile, ok := ctx.Value(contextKey{}).(UserProfile)
	return profile, ok
}
