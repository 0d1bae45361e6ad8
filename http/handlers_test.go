package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"houseprice/ml"
	"houseprice/pricing"
)

type fakeModel struct {
	out   []float64
	err   error
	calls int
	rows  []ml.Row
}

func (f *fakeModel) Predict(ctx context.Context, rows []ml.Row) ([]float64, error) {
	f.calls++
	f.rows = rows
	return f.out, f.err
}

func newTestHandler(predictor *pricing.Predictor) http.Handler {
	handlers := NewHandlers(predictor, "best_xgb_model.json", zap.NewNop())
	return NewHandler(DefaultServerConfig(), handlers, zap.NewNop())
}

func postJSON(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return w, payload
}

const ownerInPune = `{"posted_by":"Owner","bhk":"3","city":"Pune","square_ft_bin":"1000-1500","under_construction":false,"rera_approved":true}`

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	expected := `{"model_loaded":true,"status":"ok"}`
	if strings.TrimSpace(rr.Body.String()) != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestOptionsHandler(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var payload struct {
		City []string `json:"city"`
		BHK  []string `json:"bhk"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload.City) != 52 || payload.BHK[5] != "5+" {
		t.Fatalf("unexpected options: %+v", payload)
	}
}

func TestHandlePredict(t *testing.T) {
	model := &fakeModel{out: []float64{1.5}}
	h := newTestHandler(pricing.New(model, nil))

	w, payload := postJSON(t, h, ownerInPune)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if payload["formatted"] != "150.00" || payload["currency"] != "Lacs" {
		t.Fatalf("unexpected payload: %v", payload)
	}

	row := model.rows[0]
	want := map[string]string{
		"POSTED_BY":          "Owner",
		"UNDER_CONSTRUCTION": "0",
		"RERA":               "1",
		"BHK_NO.":            "3",
		"City":               "Pune",
		"SQUARE_FT_BIN":      "1000-1500",
	}
	if len(row) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(row))
	}
	for name, value := range want {
		cell, ok := row.Lookup(name)
		if !ok || cell.String() != value {
			t.Errorf("column %s: expected %q, got %+v", name, value, cell)
		}
	}
}

func TestHandlePredictNegativeOutput(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{out: []float64{-1.2345}}, nil))
	_, payload := postJSON(t, h, ownerInPune)
	if payload["formatted"] != "123.45" {
		t.Fatalf("expected 123.45, got %v", payload["formatted"])
	}
}

func TestHandlePredictValidation(t *testing.T) {
	fields := []string{"posted_by", "bhk", "city", "square_ft_bin"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			model := &fakeModel{out: []float64{1}}
			h := newTestHandler(pricing.New(model, nil))

			var body map[string]any
			_ = json.Unmarshal([]byte(ownerInPune), &body)
			body[field] = ""
			raw, _ := json.Marshal(body)

			w, payload := postJSON(t, h, string(raw))
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
			if model.calls != 0 {
				t.Fatalf("model must not be called on invalid input")
			}
			errs, _ := payload["fields"].([]any)
			if len(errs) != 1 || errs[0].(map[string]any)["field"] != field {
				t.Fatalf("unexpected field errors: %v", payload["fields"])
			}
		})
	}
}

func TestHandlePredictMissingArtifact(t *testing.T) {
	p := pricing.Load(ml.TypeTreeEnsemble, filepath.Join(t.TempDir(), "best_xgb_model.json"), nil)
	h := newTestHandler(p)

	for i := 0; i < 2; i++ {
		w, payload := postJSON(t, h, ownerInPune)
		if w.Code != http.StatusServiceUnavailable || payload["error"] != "model_unavailable" {
			t.Fatalf("attempt %d: unexpected response %d %v", i, w.Code, payload)
		}
	}
}

func TestHandlePredictInferenceError(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{err: errors.New("bad input shape")}, nil))
	w, payload := postJSON(t, h, ownerInPune)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(payload["detail"].(string), "bad input shape") {
		t.Fatalf("expected underlying error, got %v", payload["detail"])
	}
}

func TestHandlePredictInvalidJSON(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{}, nil))
	w, payload := postJSON(t, h, "{")
	if w.Code != http.StatusBadRequest || payload["error"] != "invalid_json" {
		t.Fatalf("unexpected response %d %v", w.Code, payload)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	h := LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get("X-Request-Id") != seen {
		t.Fatalf("expected request id in context and header, got %q / %q", seen, rr.Header().Get("X-Request-Id"))
	}
}

func TestMetricsHandler(t *testing.T) {
	h := newTestHandler(pricing.New(&fakeModel{out: []float64{2}}, nil))
	postJSON(t, h, ownerInPune)
	postJSON(t, h, `{"posted_by":"Owner"}`)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	var payload struct {
		Outcomes map[string]int `json:"outcomes"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Outcomes["success"] != 1 || payload.Outcomes["validation_failed"] != 1 {
		t.Fatalf("unexpected outcomes: %v", payload.Outcomes)
	}
}
