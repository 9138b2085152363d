package finance

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/internal/assistant"
	"github.com/psicogestion/practice-api/pkg/logging"
)

type fakeAnalyst struct {
	lastTrend string
}

func (f *fakeAnalyst) AnalyzeFinancialHealth(_ context.Context, income, expense, balance float64, trend string) string {
	f.lastTrend = trend
	return "La salud financiera es estable."
}

type fakeParser struct {
	receipt  *assistant.Receipt
	lastMIME string
	lastSize int
	called   bool
}

func (f *fakeParser) ParseReceipt(_ context.Context, mimeType string, image []byte) *assistant.Receipt {
	f.called = true
	f.lastMIME = mimeType
	f.lastSize = len(image)
	return f.receipt
}

func newTestServer(repo Repository, analyst Analyst, parser ReceiptParser) *chi.Mux {
	h := NewHandler(repo, analyst, parser, logging.Default())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCreateTransaction_Defaults(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestServer(repo, &fakeAnalyst{}, &fakeParser{})

	body := bytes.NewBufferString(`{"description":"Consulta Ana G.","amount":60,"type":"income"}`)
	req := httptest.NewRequest(http.MethodPost, "/transactions", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created Transaction
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Category != "General" {
		t.Errorf("expected default category General, got %q", created.Category)
	}
	if created.Date == "" {
		t.Error("expected date to default to today")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	router := newTestServer(NewInMemoryRepository(), &fakeAnalyst{}, &fakeParser{})

	tests := []struct {
		name string
		body string
	}{
		{"missing description", `{"amount":10,"type":"income"}`},
		{"zero amount", `{"description":"x","amount":0,"type":"income"}`},
		{"negative amount", `{"description":"x","amount":-5,"type":"expense"}`},
		{"unknown type", `{"description":"x","amount":5,"type":"transfer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestListTransactions_Filters(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Transaction{ID: "1", Type: TypeIncome, Category: "Consulta"})
	repo.Add(Transaction{ID: "2", Type: TypeExpense, Category: "Infraestructura"})
	repo.Add(Transaction{ID: "3", Type: TypeIncome, Category: "Formación"})
	router := newTestServer(repo, &fakeAnalyst{}, &fakeParser{})

	req := httptest.NewRequest(http.MethodGet, "/transactions?type=income&category=Consulta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var list []Transaction
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 || list[0].ID != "1" {
		t.Errorf("unexpected result: %+v", list)
	}
}

func TestSummary(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Transaction{ID: "1", Type: TypeIncome, Amount: 60, Date: "2023-10-05"})
	repo.Add(Transaction{ID: "2", Type: TypeExpense, Amount: 400, Date: "2023-10-10"})
	router := newTestServer(repo, &fakeAnalyst{}, &fakeParser{})

	req := httptest.NewRequest(http.MethodGet, "/finance/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Totals  Totals       `json:"totals"`
		Monthly []MonthPoint `json:"monthly"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Totals.Balance != -340 {
		t.Errorf("expected balance -340, got %v", resp.Totals.Balance)
	}
	if len(resp.Monthly) != 1 || resp.Monthly[0].Label != "oct 2023" {
		t.Errorf("unexpected monthly series: %+v", resp.Monthly)
	}
}

func TestExportCSV(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Transaction{ID: "t1", Date: "2023-10-05", Description: "Consulta Ana G.", Amount: 60, Type: TypeIncome, Category: "Consulta"})
	router := newTestServer(repo, &fakeAnalyst{}, &fakeParser{})

	req := httptest.NewRequest(http.MethodGet, "/finance/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "finanzas_consulta.csv") {
		t.Errorf("unexpected content disposition: %q", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Fecha,Descripción") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Ingreso") || !strings.Contains(lines[1], "60.00") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestAnalyze_TrendFollowsBalance(t *testing.T) {
	tests := []struct {
		name      string
		tx        Transaction
		wantTrend string
	}{
		{"positive balance", Transaction{ID: "1", Type: TypeIncome, Amount: 100}, "Positiva"},
		{"negative balance", Transaction{ID: "1", Type: TypeExpense, Amount: 100}, "Negativa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewInMemoryRepository()
			repo.Add(tt.tx)
			analyst := &fakeAnalyst{}
			router := newTestServer(repo, analyst, &fakeParser{})

			req := httptest.NewRequest(http.MethodPost, "/finance/analysis", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if analyst.lastTrend != tt.wantTrend {
				t.Errorf("expected trend %q, got %q", tt.wantTrend, analyst.lastTrend)
			}
		})
	}
}

func TestParseReceipt(t *testing.T) {
	parser := &fakeParser{receipt: &assistant.Receipt{Description: "Papelería", Amount: 24.5, Category: "Material"}}
	router := newTestServer(NewInMemoryRepository(), &fakeAnalyst{}, parser)

	data := base64.StdEncoding.EncodeToString([]byte("fake-image"))
	body := bytes.NewBufferString(`{"data":"` + data + `","mime_type":"image/png"}`)
	req := httptest.NewRequest(http.MethodPost, "/finance/receipt", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parser.lastMIME != "image/png" || parser.lastSize != len("fake-image") {
		t.Errorf("image not forwarded: mime=%q size=%d", parser.lastMIME, parser.lastSize)
	}

	var resp struct {
		Receipt *assistant.Receipt `json:"receipt"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Receipt == nil || resp.Receipt.Description != "Papelería" {
		t.Errorf("unexpected receipt: %+v", resp.Receipt)
	}
}

func TestParseReceipt_BadBase64IsNull(t *testing.T) {
	parser := &fakeParser{}
	router := newTestServer(NewInMemoryRepository(), &fakeAnalyst{}, parser)

	body := bytes.NewBufferString(`{"data":"%%%not-base64%%%","mime_type":"image/png"}`)
	req := httptest.NewRequest(http.MethodPost, "/finance/receipt", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if parser.called {
		t.Error("parser must not run on undecodable uploads")
	}
	if !strings.Contains(rec.Body.String(), `"receipt":null`) {
		t.Errorf("expected null receipt, got %s", rec.Body.String())
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Add(Transaction{ID: "1"})
	router := newTestServer(repo, &fakeAnalyst{}, &fakeParser{})

	req := httptest.NewRequest(http.MethodDelete, "/transactions/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(repo.List()) != 0 {
		t.Error("expected empty ledger")
	}
}
