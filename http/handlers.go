package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"houseprice/monitoring"
	"houseprice/pricing"
	"houseprice/property"
	"houseprice/view"
)

// Handlers serves the prediction form and its JSON twin. The predictor is
// created at startup and shared read-only by every request.
type Handlers struct {
	predictor *pricing.Predictor
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
	modelFile string
}

func NewHandlers(predictor *pricing.Predictor, modelFile string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		predictor: predictor,
		metrics:   monitoring.NewMetricsCollector(),
		logger:    logger,
		modelFile: modelFile,
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /predict", h.handleSubmit)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/options", h.handleOptions)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":       "ok",
		"model_loaded": h.predictor.Err() == nil,
	})
}

func (h *Handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.metrics.Snapshot())
}

func (h *Handlers) handleOptions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, property.Options())
}

type predictResponse struct {
	PriceLacs float64            `json:"price_lacs"`
	Formatted string             `json:"formatted"`
	Currency  string             `json:"currency"`
	Raw       float64            `json:"raw"`
	Summary   []view.SummaryLine `json:"summary"`
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in property.Input
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{"error": "invalid_json", "detail": err.Error()})
		return
	}

	req, err := property.NewRequest(in)
	if err != nil {
		h.metrics.Record(monitoring.OutcomeValidationFailed, 0)
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, map[string]any{"error": "validation_failed", "fields": property.FieldErrors(err)})
		return
	}

	pred, err := h.predict(r.Context(), req)
	if err != nil {
		status, code := predictFailure(err)
		render.Status(r, status)
		render.JSON(w, r, map[string]any{"error": code, "detail": err.Error()})
		return
	}

	render.JSON(w, r, predictResponse{
		PriceLacs: pred.PriceLacs,
		Formatted: view.FormatPrice(pred.PriceLacs),
		Currency:  view.CurrencyUnit,
		Raw:       pred.Raw,
		Summary:   view.Summary(req),
	})
}

// predict runs the model and records the outcome.
func (h *Handlers) predict(ctx context.Context, req property.Request) (pricing.Prediction, error) {
	start := time.Now()
	pred, err := h.predictor.Predict(ctx, req)
	if err != nil {
		_, code := predictFailure(err)
		if code == monitoring.OutcomeModelUnavailable {
			h.metrics.Record(code, 0)
		} else {
			h.metrics.Record(code, time.Since(start))
		}
		return pred, err
	}
	h.metrics.Record(monitoring.OutcomeSuccess, time.Since(start))
	return pred, nil
}

func predictFailure(err error) (int, monitoring.Outcome) {
	if errors.Is(err, pricing.ErrModelUnavailable) {
		return http.StatusServiceUnavailable, monitoring.OutcomeModelUnavailable
	}
	return http.StatusInternalServerError, monitoring.OutcomePredictionFailed
}
