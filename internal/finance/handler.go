package finance

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/psicogestion/practice-api/internal/assistant"
	"github.com/psicogestion/practice-api/pkg/logging"
)

// Analyst produces a narrative read of the practice finances.
type Analyst interface {
	AnalyzeFinancialHealth(ctx context.Context, income, expense, balance float64, trend string) string
}

// ReceiptParser extracts a transaction draft from a receipt image.
type ReceiptParser interface {
	ParseReceipt(ctx context.Context, mimeType string, image []byte) *assistant.Receipt
}

// Handler serves the ledger and finance reporting endpoints.
type Handler struct {
	repo    Repository
	analyst Analyst
	parser  ReceiptParser
	logger  *logging.Logger
}

// NewHandler creates a finance handler.
func NewHandler(repo Repository, analyst Analyst, parser ReceiptParser, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, analyst: analyst, parser: parser, logger: logger}
}

// RegisterRoutes mounts the finance endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/transactions", h.list)
	r.Post("/transactions", h.create)
	r.Put("/transactions/{id}", h.update)
	r.Delete("/transactions/{id}", h.delete)
	r.Get("/finance/summary", h.summary)
	r.Get("/finance/export", h.exportCSV)
	r.Post("/finance/analysis", h.analyze)
	r.Post("/finance/receipt", h.parseReceipt)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txType := TransactionType(q.Get("type"))
	category := q.Get("category")

	list := h.repo.List()
	out := make([]Transaction, 0, len(list))
	for _, tx := range list {
		if txType != "" && tx.Type != txType {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx := transactionFromRequest(req)
	tx.ID = newID()
	if tx.Date == "" {
		tx.Date = time.Now().Format("2006-01-02")
	}
	if tx.Category == "" {
		tx.Category = defaultCategory
	}

	if err := h.repo.Add(tx); err != nil {
		h.logger.Error("failed to store transaction", "error", err)
		http.Error(w, "failed to store transaction", http.StatusInternalServerError)
		return
	}

	h.logger.Info("transaction created", "transaction_id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	respondJSON(w, http.StatusCreated, tx)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := transactionFromRequest(req)
	updated.ID = existing.ID
	if updated.Date == "" {
		updated.Date = existing.Date
	}
	if updated.Category == "" {
		updated.Category = existing.Category
	}

	if err := h.repo.Replace(updated); err != nil {
		h.logger.Error("failed to update transaction", "transaction_id", existing.ID, "error", err)
		http.Error(w, "failed to update transaction", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Remove(chi.URLParam(r, "id")); err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	list := h.repo.List()
	respondJSON(w, http.StatusOK, map[string]any{
		"totals":  ComputeTotals(list),
		"monthly": MonthlySeries(list),
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="finanzas_consulta.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Fecha", "Descripción", "Tipo", "Categoría", "Monto"})
	for _, tx := range h.repo.List() {
		_ = cw.Write([]string{
			tx.ID,
			tx.Date,
			tx.Description,
			spanishType(tx.Type),
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("failed to write csv export", "error", err)
	}
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	totals := ComputeTotals(h.repo.List())

	trend := "Positiva"
	if totals.Balance < 0 {
		trend = "Negativa"
	}

	text := h.analyst.AnalyzeFinancialHealth(r.Context(), totals.Income, totals.Expense, totals.Balance, trend)
	respondJSON(w, http.StatusOK, map[string]string{"analysis": text})
}

type receiptRequest struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

func (h *Handler) parseReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil || len(image) == 0 {
		// Unreadable uploads are not an error for the caller; the form simply
		// stays unfilled.
		respondJSON(w, http.StatusOK, map[string]any{"receipt": nil})
		return
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	receipt := h.parser.ParseReceipt(r.Context(), mimeType, image)
	respondJSON(w, http.StatusOK, map[string]any{"receipt": receipt})
}

func spanishType(t TransactionType) string {
	if t == TypeIncome {
		return "Ingreso"
	}
	return "Gasto"
}

func transactionFromRequest(req CreateRequest) Transaction {
	return Transaction{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
	}
}

func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
