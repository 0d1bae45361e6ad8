package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	TypeTreeEnsemble = "tree_ensemble"
	TypeLinear       = "linear"
)

// ErrArtifactMissing reports that no model file exists at the configured path.
var ErrArtifactMissing = errors.New("model artifact not found")

// ErrUnsupportedModel is returned for an unknown model type.
var ErrUnsupportedModel = errors.New("unsupported model type")

// LoadModel reads the artifact at path and builds the model named by modelType.
// An empty type selects the tree ensemble.
func LoadModel(modelType, path string) (Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	switch modelType {
	case "", TypeTreeEnsemble:
		model := &TreeEnsemble{}
		if err := decodeArtifact(payload, model); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", path, err)
		}
		if err := model.validate(); err != nil {
			return nil, fmt.Errorf("invalid model %s: %w", path, err)
		}
		return model, nil
	case TypeLinear:
		model := &Linear{}
		if err := decodeArtifact(payload, model); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", path, err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
}

func decodeArtifact(payload []byte, v any) error {
	if len(payload) == 0 {
		return errors.New("empty artifact")
	}
	return json.Unmarshal(payload, v)
}
