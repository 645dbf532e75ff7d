// aqi-predict - Forecast the air quality index for a single date
//
// Uses the model service when -ml-url is given, otherwise the built-in
// seasonal baseline models.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/aqi-predict ./cmd/aqi-predict

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smartcity/aqi-forecast/internal/aqi"
	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/internal/observability"
	"github.com/smartcity/aqi-forecast/internal/report"
	"github.com/smartcity/aqi-forecast/internal/service"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func main() {
	date := flag.String("date", "", "Date to forecast in DD-MM-YYYY (default today)")
	mlURL := flag.String("ml-url", os.Getenv("ML_SERVICE_URL"), "Model service base URL (empty uses seasonal baseline)")
	city := flag.String("city", "Mumbai", "City name shown in the report")
	format := flag.String("format", "text", "Output format: text or json")
	policy := flag.String("out-of-range", "clamp", "Out-of-range policy: clamp or zero")
	timeout := flag.Duration("timeout", 5*time.Second, "Per-model timeout")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "aqi-predict v%s - AQI forecast for a single date\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("aqi-predict v%s\n", Version)
		return
	}

	oor, err := aqi.ParsePolicy(*policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var models domain.ModelSet
	if *mlURL != "" {
		models = service.NewMLBridge(*mlURL, *timeout).Models()
	} else {
		models = service.NewSeasonalModels()
	}

	svc := service.NewForecastService(models, service.Options{
		City:         *city,
		Policy:       oor,
		ModelTimeout: *timeout,
		Logger:       observability.NewLogger(*logLevel, "text"),
	})

	if *date == "" {
		*date = svc.Today()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	forecast, err := svc.Predict(ctx, *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := write(os.Stdout, forecast, *city, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func write(w io.Writer, f domain.Forecast, city, format string) error {
	switch format {
	case "text":
		_, err := w.Write(report.Text(f, city))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
