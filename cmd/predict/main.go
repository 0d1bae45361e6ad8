// Command predict runs a single prediction against the configured model and
// prints the price, the same way the web form does.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"houseprice/config"
	"houseprice/logging"
	"houseprice/pricing"
	"houseprice/property"
	"houseprice/view"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.Locate("config.yaml"), "config file")
	modelPath := fs.String("model_path", "", "model artifact, overrides the config")
	postedBy := fs.String("posted_by", "", "Dealer, Owner or Builder")
	bhk := fs.String("bhk", "", "1-5 or 5+")
	city := fs.String("city", "", "city name")
	squareFt := fs.String("square_ft", "", "square feet range, e.g. 1000-1500")
	underConstruction := fs.Bool("under_construction", false, "property is under construction")
	rera := fs.Bool("rera", false, "RERA approved")
	summary := fs.Bool("summary", false, "print the input summary")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if *modelPath != "" {
		cfg.ML.ModelPath = *modelPath
	}
	// the CLI only reports errors, to stderr, and never writes the server log file
	cfg.Log.File = ""
	cfg.Log.Level = "error"
	logger, err := logging.NewWithConsole(cfg.Log, zapcore.AddSync(stderr))
	if err != nil {
		log.Printf("logger: %v", err)
		logger = zap.NewNop()
	}
	defer logger.Sync()

	req, err := property.NewRequest(property.Input{
		PostedBy:          *postedBy,
		UnderConstruction: *underConstruction,
		RERAApproved:      *rera,
		BHK:               *bhk,
		City:              *city,
		SquareFtBin:       *squareFt,
	})
	if err != nil {
		for _, fe := range property.FieldErrors(err) {
			fmt.Fprintf(stderr, "%s: %s\n", fe.Field, fe.Message)
		}
		return 2
	}

	predictor := pricing.Load(cfg.ML.ModelType, cfg.ML.ModelPath, logger)
	pred, err := predictor.Predict(context.Background(), req)
	if err != nil {
		var ie *pricing.InferenceError
		if errors.As(err, &ie) {
			fmt.Fprintf(stderr, "Error making prediction: %v\n", ie.Err)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	fmt.Fprintln(stdout, view.PriceLabel(pred.PriceLacs))
	if *summary {
		for _, line := range view.Summary(req) {
			fmt.Fprintf(stdout, "%s: %s\n", line.Label, line.Value)
		}
	}
	return 0
}
