package ml

import (
	"context"
	"fmt"
)

// Linear is an additive model: numeric cells are scaled by Weights, text cells
// add the weight of their category. Unknown columns and categories add nothing.
type Linear struct {
	Intercept  float64                       `json:"intercept"`
	Weights    map[string]float64            `json:"weights"`
	Categories map[string]map[string]float64 `json:"categories"`
}

func (l *Linear) Predict(ctx context.Context, rows []Row) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score := l.Intercept
		for _, cell := range row {
			if w, ok := l.Weights[cell.Name]; ok {
				v, err := cell.Float()
				if err != nil {
					return nil, fmt.Errorf("linear term: %w", err)
				}
				score += w * v
				continue
			}
			score += l.Categories[cell.Name][cell.String()]
		}
		out = append(out, score)
	}
	return out, nil
}
