// Command vitalscan extracts a validated measurement from a photograph
// of a medical device display and prints it as a JSON record.
//
// Usage:
//
//	vitalscan -kind blood_pressure -image display.jpg
//	vitalscan -kind blood_sugar -image meter.png -notes "fasting" -pretty
//	vitalscan -kind blood_pressure -text "SYS 120 DIA 80 PULSE 72"
//
// Recognition requires a Tesseract install and the "ocr" build tag:
//
//	go build -tags ocr ./cmd/vitalscan
//
// Without the tag, only -text runs work. Configuration defaults come from
// the environment (VITALSCAN_LANGUAGES, VITALSCAN_TESSDATA, VITALSCAN_PSM,
// VITALSCAN_MIN_CONFIDENCE), optionally loaded from a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/healthtrack/vitalscan"
	"github.com/healthtrack/vitalscan/measure"
	"github.com/healthtrack/vitalscan/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// A .env file is optional; the system environment still applies.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}

	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

// cliOptions collects the parsed flags.
type cliOptions struct {
	kind          string
	imagePath     string
	text          string
	languages     string
	tessdata      string
	psm           int
	minConfidence float64
	digitsOnly    bool
	upscale       int
	notes         string
	dumpBinary    string
	pretty        bool
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.kind, "kind", "", "measurement kind: blood_pressure or blood_sugar (required)")
	flag.StringVar(&opts.imagePath, "image", "", "path to the display photograph")
	flag.StringVar(&opts.text, "text", "", "recognized text to parse instead of an image")
	flag.StringVar(&opts.languages, "lang", getEnvOrDefault("VITALSCAN_LANGUAGES", "eng"), "comma-separated recognition languages")
	flag.IntVar(&opts.psm, "psm", getEnvAsIntOrDefault("VITALSCAN_PSM", int(ocr.PSM_SINGLE_BLOCK)), "Tesseract page segmentation mode (0-13)")
	flag.Float64Var(&opts.minConfidence, "min-confidence", getEnvAsFloatOrDefault("VITALSCAN_MIN_CONFIDENCE", 0), "discard recognized words below this confidence (0 disables)")
	flag.BoolVar(&opts.digitsOnly, "digits-only", false, "restrict recognition to digits, separators and unit letters")
	flag.IntVar(&opts.upscale, "upscale", 0, "upscale the image to at least this height before normalization (0 disables)")
	flag.StringVar(&opts.notes, "notes", "", "free-form notes stored on the record; blood sugar context is inferred from them")
	flag.StringVar(&opts.dumpBinary, "dump-binary", "", "write the normalizer's binarized diagnostic image to this path")
	flag.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	flag.Parse()

	opts.tessdata = os.Getenv("VITALSCAN_TESSDATA")
	return opts
}

func run(ctx context.Context, logger *slog.Logger, opts cliOptions) error {
	kind, err := measure.ParseKind(opts.kind)
	if err != nil {
		flag.Usage()
		return err
	}

	ext, err := buildExtraction(opts)
	if err != nil {
		return err
	}

	if opts.dumpBinary != "" && opts.text == "" {
		res, err := ext.Normalized()
		if err != nil {
			return fmt.Errorf("normalize for -dump-binary: %w", err)
		}
		if err := imaging.Save(res.Binary, opts.dumpBinary); err != nil {
			return fmt.Errorf("save binarized image: %w", err)
		}
		logger.Info("binarized image written", "path", opts.dumpBinary)
	}

	reading, warnings, err := ext.Reading(ctx, kind)
	for _, w := range warnings {
		logger.Warn("extraction warning", "code", w.Code.String(), "message", w.Message)
	}
	if err != nil {
		if errors.Is(err, ocr.ErrNotEnabled) {
			return fmt.Errorf("%w (rebuild with -tags ocr, or pass -text)", err)
		}
		return err
	}

	// Context inference is the caller's job; the parser never guesses.
	if bs, ok := reading.(measure.BloodSugar); ok && opts.notes != "" {
		bs.Context = measure.InferContext(opts.notes)
		reading = bs
	}

	logger.Info("measurement extracted", "kind", reading.Kind().String(), "reading", fmt.Sprint(reading))

	record := measure.NewRecord(reading, opts.notes)
	out, err := marshalRecord(record, opts.pretty)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// buildExtraction assembles the extraction chain from the flags. Exactly
// one of -image and -text must be set.
func buildExtraction(opts cliOptions) (*vitalscan.Extraction, error) {
	var ext *vitalscan.Extraction
	switch {
	case opts.text != "" && opts.imagePath != "":
		return nil, errors.New("-image and -text are mutually exclusive")
	case opts.text != "":
		ext = vitalscan.FromText(opts.text)
	case opts.imagePath != "":
		data, err := os.ReadFile(opts.imagePath)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		ext = vitalscan.FromBytes(data)
	default:
		flag.Usage()
		return nil, errors.New("one of -image or -text is required")
	}

	if opts.languages != "" {
		ext = ext.Languages(strings.Split(opts.languages, ",")...)
	}
	ext = ext.PageSegMode(ocr.PageSegMode(opts.psm))
	if opts.tessdata != "" {
		ext = ext.TessdataPrefix(opts.tessdata)
	}
	if opts.minConfidence > 0 {
		ext = ext.MinWordConfidence(opts.minConfidence)
	}
	if opts.digitsOnly {
		ext = ext.DigitsOnly()
	}
	if opts.upscale > 0 {
		ext = ext.UpscaleTo(opts.upscale)
	}
	return ext, nil
}

func marshalRecord(record measure.Record, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(record, "", "  ")
	}
	return json.Marshal(record)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
