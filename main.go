package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"houseprice/config"
	qhttp "houseprice/http"
	"houseprice/logging"
	"houseprice/pricing"
)

func main() {
	// 1. Load config
	cfg, err := config.Load(config.Locate("config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load the model once; a missing file is reported here and on every
	// prediction, the server still starts.
	predictor := pricing.Load(cfg.ML.ModelType, cfg.ML.ModelPath, logger)

	// 3. Start HTTP server
	server := qhttp.NewServer(cfg.Http, predictor, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
