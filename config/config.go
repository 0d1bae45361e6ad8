// Package config loads config.yaml and applies HOUSEPRICE_* environment
// overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"

	qhttp "houseprice/http"
	"houseprice/logging"
	"houseprice/ml"
)

const EnvPrefix = "HOUSEPRICE_"

type Config struct {
	Http qhttp.ServerConfig `yaml:"http" envPrefix:"HTTP_"`
	Log  logging.Config     `yaml:"log" envPrefix:"LOG_"`
	ML   struct {
		ModelType string `yaml:"model_type" env:"MODEL_TYPE"`
		ModelPath string `yaml:"model_path" env:"MODEL_PATH"`
	} `yaml:"ml" envPrefix:"ML_"`
}

func Default() *Config {
	cfg := &Config{Http: qhttp.DefaultServerConfig()}
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 50
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 28
	cfg.ML.ModelType = ml.TypeTreeEnsemble
	cfg.ML.ModelPath = "best_xgb_model.json"
	return cfg
}

// Load reads path over the defaults, then the environment. A missing file is
// not an error. The model path is resolved against the config file directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if !filepath.IsAbs(cfg.ML.ModelPath) {
			cfg.ML.ModelPath = filepath.Join(filepath.Dir(path), cfg.ML.ModelPath)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Locate returns name in the working directory, or in its parent when only
// the parent has it (running from cmd/).
func Locate(name string) string {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		parent := filepath.Join("..", name)
		if _, err := os.Stat(parent); err == nil {
			return parent
		}
	}
	return name
}
