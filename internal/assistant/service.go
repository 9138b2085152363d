package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/psicogestion/practice-api/internal/observability/metrics"
	"github.com/psicogestion/practice-api/pkg/logging"
)

// User-facing fallback texts. The assistant never surfaces transport errors
// to the clinician; it degrades to these.
const (
	noteFallback     = "Error al contactar con el servicio de IA."
	noteEmpty        = "No se pudo generar la nota."
	reminderEmpty    = "No se pudo generar el recordatorio."
	analysisFallback = "Error al analizar datos."
	analysisEmpty    = "Análisis no disponible."
)

// Receipt is a transaction draft extracted from a receipt image.
type Receipt struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	TaxID       string  `json:"tax_id"`
}

// Service implements the four assistant operations on top of a Client. A nil
// client is allowed; every operation then takes its fallback path.
type Service struct {
	llm     Client
	metrics *metrics.AssistantMetrics
	logger  *logging.Logger
}

// NewService creates an assistant service.
func NewService(llm Client, m *metrics.AssistantMetrics, logger *logging.Logger) *Service {
	return &Service{llm: llm, metrics: m, logger: logger}
}

// StructureClinicalNote turns raw session notes into a formal SOAP-structured
// clinical note.
func (s *Service) StructureClinicalNote(ctx context.Context, rawNotes string) string {
	prompt := fmt.Sprintf(`Actúa como un psicólogo clínico experto. Transforma las siguientes notas en bruto tomadas durante una sesión en una nota clínica formal y estructurada (Formato SOAP: Subjetivo, Objetivo, Análisis, Plan). Mantén un tono profesional, objetivo y conciso.

Notas en bruto:
%s`, rawNotes)

	text, err := s.generate(ctx, "clinical_note", Request{Prompt: prompt})
	if err != nil {
		return noteFallback
	}
	if text == "" {
		return noteEmpty
	}
	return text
}

// DraftAppointmentReminder writes a short reminder message for a session. On
// failure it falls back to a fixed template so the clinician always gets a
// usable message.
func (s *Service) DraftAppointmentReminder(ctx context.Context, patientName, day, timeOfDay string) string {
	prompt := fmt.Sprintf(`Genera un único mensaje de texto plano, corto, cercano y profesional para recordar una cita de psicología.
El mensaje debe servir tanto para enviarse por WhatsApp como por Email (sin asuntos, ni firmas complejas).

Datos:
- Paciente: %s
- Fecha: %s
- Hora: %s

Estructura deseada:
"Hola [Nombre], le recordamos su cita para el [Fecha] a las [Hora]. Por favor, confirme su asistencia. En caso de no poder asistir, por favor comuníquelo lo antes posible. Un saludo."

Adáptalo ligeramente para que suene natural pero mantén esa brevedad.`, patientName, day, timeOfDay)

	text, err := s.generate(ctx, "reminder", Request{Prompt: prompt})
	if err != nil {
		return fmt.Sprintf("Hola %s, le recordamos su cita para el %s a las %s.", patientName, day, timeOfDay)
	}
	if text == "" {
		return reminderEmpty
	}
	return text
}

// AnalyzeFinancialHealth gives a two-sentence read of the ledger with a
// recommendation.
func (s *Service) AnalyzeFinancialHealth(ctx context.Context, income, expense, balance float64, trend string) string {
	prompt := fmt.Sprintf(`Actúa como un asesor financiero para una clínica privada.
Ingresos: %.2f€
Gastos: %.2f€
Balance: %.2f€
Tendencia general: %s

Dame un breve análisis de 2 frases sobre la salud financiera y una recomendación.`, income, expense, balance, trend)

	text, err := s.generate(ctx, "financial_analysis", Request{Prompt: prompt})
	if err != nil {
		return analysisFallback
	}
	if text == "" {
		return analysisEmpty
	}
	return text
}

// ParseReceipt extracts a transaction draft from a receipt or invoice image.
// Any failure, including unparseable model output, yields nil; the caller
// treats that as "nothing extracted".
func (s *Service) ParseReceipt(ctx context.Context, mimeType string, image []byte) *Receipt {
	prompt := `Analiza esta imagen de un ticket o factura. Extrae los siguientes datos y devuélvelos estrictamente en formato JSON:
- date: Fecha del ticket en formato YYYY-MM-DD. Si no hay año, asume el actual.
- description: Nombre de la empresa o comercio y/o concepto principal.
- amount: El importe total (número).
- category: Infiere una categoría breve (ej: Material, Suministros, Comida, Transporte, Alquiler, Formación).
- cif: El CIF o NIF de la empresa si es visible, sino string vacío.

Responde SOLO con el JSON, sin bloques de código markdown.`

	text, err := s.generate(ctx, "receipt", Request{
		Prompt: prompt,
		Image:  &InlineData{MIMEType: mimeType, Data: image},
	})
	if err != nil {
		return nil
	}

	receipt, err := parseReceiptJSON(text)
	if err != nil {
		s.logger.Warn("receipt output was not valid json", "error", err)
		return nil
	}
	return receipt
}

func (s *Service) generate(ctx context.Context, operation string, req Request) (string, error) {
	start := time.Now()

	if s.llm == nil {
		s.metrics.RecordOperation(operation, metrics.ResultFallback, time.Since(start))
		return "", errUnavailable
	}

	resp, err := s.llm.Generate(ctx, req)
	if err != nil {
		s.logger.Error("assistant generation failed", "operation", operation, "error", err)
		s.metrics.RecordOperation(operation, metrics.ResultFallback, time.Since(start))
		return "", err
	}

	s.metrics.RecordOperation(operation, metrics.ResultSuccess, time.Since(start))
	return strings.TrimSpace(resp.Text), nil
}

// parseReceiptJSON tolerates markdown code fences and surrounding prose
// around the JSON object the model was asked for.
func parseReceiptJSON(text string) (*Receipt, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("assistant: no json object in %q", text)
	}

	var raw struct {
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		CIF         string  `json:"cif"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("assistant: decode receipt: %w", err)
	}

	return &Receipt{
		Date:        raw.Date,
		Description: raw.Description,
		Amount:      raw.Amount,
		Category:    raw.Category,
		TaxID:       raw.CIF,
	}, nil
}
