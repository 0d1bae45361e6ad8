package ml

import "context"

// Model is a trained regressor. It returns one prediction per input row and
// must be safe for concurrent use once loaded.
type Model interface {
	Predict(ctx context.Context, rows []Row) ([]float64, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(ctx context.Context, rows []Row) ([]float64, error)

func (f ModelFunc) Predict(ctx context.Context, rows []Row) ([]float64, error) {
	return f(ctx, rows)
}
