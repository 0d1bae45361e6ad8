// Package pricing turns a validated property request into a price in lacs
// using a model that is loaded once when the process starts.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"houseprice/ml"
	"houseprice/property"
)

// ErrModelUnavailable is returned by Predict when no model could be loaded.
// The load failure is wrapped alongside it.
var ErrModelUnavailable = errors.New("model not loaded")

// InferenceError wraps any failure raised while the model runs.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "prediction failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Prediction is the model output and the price derived from it.
type Prediction struct {
	Raw       float64
	PriceLacs float64
}

// Predictor owns the model for the lifetime of the process.
type Predictor struct {
	model   ml.Model
	loadErr error
	path    string
	logger  *zap.Logger
}

// Load reads the artifact once. A failed load is logged here and remembered;
// later Predict calls report it without touching the file again.
func Load(modelType, path string, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Predictor{path: path, logger: logger}
	model, err := ml.LoadModel(modelType, path)
	if err != nil {
		p.loadErr = err
		if errors.Is(err, ml.ErrArtifactMissing) {
			logger.Error("model file not found", zap.String("path", path))
		} else {
			logger.Error("model failed to load", zap.String("path", path), zap.Error(err))
		}
		return p
	}
	p.model = model
	logger.Info("model loaded", zap.String("path", path), zap.String("type", modelType))
	return p
}

// New wraps an already constructed model.
func New(model ml.Model, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Predictor{model: model, logger: logger}
	if model == nil {
		p.loadErr = errors.New("no model provided")
	}
	return p
}

// Err returns the load failure, or nil when a model is ready.
func (p *Predictor) Err() error {
	return p.loadErr
}

// Path is the artifact location the predictor was loaded from.
func (p *Predictor) Path() string {
	return p.path
}

// Predict runs the model on the single-row record of req. The price is the
// raw output times 100, made positive.
func (p *Predictor) Predict(ctx context.Context, req property.Request) (Prediction, error) {
	if p.loadErr != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrModelUnavailable, p.loadErr)
	}

	raw, err := p.infer(ctx, req.Record())
	if err != nil {
		p.logger.Warn("prediction failed", zap.Error(err))
		return Prediction{}, &InferenceError{Err: err}
	}

	return Prediction{Raw: raw, PriceLacs: PriceInLacs(raw)}, nil
}

func (p *Predictor) infer(ctx context.Context, row ml.Row) (raw float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v", r)
		}
	}()

	out, err := p.model.Predict(ctx, []ml.Row{row})
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, errors.New("model returned no predictions")
	}
	return out[0], nil
}

// PriceInLacs applies the fixed output transform: scale by 100, then take the
// absolute value.
func PriceInLacs(raw float64) float64 {
	return math.Abs(raw * 100)
}
