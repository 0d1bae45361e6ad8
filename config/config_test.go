package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ML.ModelPath != "best_xgb_model.json" || cfg.Http.Port != 8501 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
http:
  port: 9000
  timeout: 10s
log:
  level: debug
ml:
  model_type: linear
  model_path: models/price.json
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOUSEPRICE_HTTP_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Http.Port != 9100 {
		t.Errorf("expected env override 9100, got %d", cfg.Http.Port)
	}
	if cfg.Http.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Http.Timeout)
	}
	if cfg.Http.RateLimit != 120 {
		t.Errorf("expected default rate limit to survive, got %d", cfg.Http.RateLimit)
	}
	if cfg.Log.Level != "debug" || cfg.ML.ModelType != "linear" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if want := filepath.Join(dir, "models", "price.json"); cfg.ML.ModelPath != want {
		t.Errorf("expected model path %s, got %s", want, cfg.ML.ModelPath)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}
