package ml

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// TreeEnsemble is a boosted set of regression trees. Each tree contributes the
// value of the leaf the row falls into; the sum is offset by BaseScore.
type TreeEnsemble struct {
	BaseScore float64 `json:"base_score"`
	Trees     []Tree  `json:"trees"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is either a split or a leaf. Splits with Categories send members
// left; otherwise a numeric value below Threshold goes left.
type TreeNode struct {
	Feature     string   `json:"feature,omitempty"`
	Threshold   float64  `json:"threshold,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	LeftChild   int      `json:"left"`
	RightChild  int      `json:"right"`
	DefaultLeft bool     `json:"default_left,omitempty"`
	IsLeaf      bool     `json:"leaf,omitempty"`
	Value       float64  `json:"value,omitempty"`
}

func (te *TreeEnsemble) Predict(ctx context.Context, rows []Row) ([]float64, error) {
	if len(te.Trees) == 0 {
		return nil, errors.New("model has no trees")
	}
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		score := te.BaseScore
		for i := range te.Trees {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := te.Trees[i].eval(row)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			score += v
		}
		out = append(out, score)
	}
	return out, nil
}

func (t *Tree) eval(row Row) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New("empty tree")
	}
	idx := 0
	// a well formed tree visits each node at most once
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		left, err := node.goesLeft(row)
		if err != nil {
			return 0, err
		}
		if left {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree does not terminate")
}

func (n TreeNode) goesLeft(row Row) (bool, error) {
	cell, ok := row.Lookup(n.Feature)
	if !ok {
		return n.DefaultLeft, nil
	}
	if len(n.Categories) > 0 {
		return slices.Contains(n.Categories, cell.String()), nil
	}
	v, err := cell.Float()
	if err != nil {
		return false, err
	}
	return v < n.Threshold, nil
}

func (te *TreeEnsemble) validate() error {
	if len(te.Trees) == 0 {
		return errors.New("no trees")
	}
	for i, tree := range te.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", i)
		}
		for j, node := range tree.Nodes {
			if node.IsLeaf {
				continue
			}
			if node.Feature == "" {
				return fmt.Errorf("tree %d node %d: split without feature", i, j)
			}
			if node.LeftChild <= j || node.RightChild <= j ||
				node.LeftChild >= len(tree.Nodes) || node.RightChild >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", i, j)
			}
		}
	}
	return nil
}
