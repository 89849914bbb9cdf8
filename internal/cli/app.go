package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/metrics"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
)

// app is the wiring shared by the extraction commands
type app struct {
	cfg      *model.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	pipeline *pipeline.Pipeline
	renderer *pipeline.Renderer
}

func newApp() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	renderer, err := pipeline.NewRenderer(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	registry, err := pipeline.BuildRegistry(cfg, logger, m)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		pipeline: pipeline.New(
			pipeline.WithRegistry(registry),
			pipeline.WithMetrics(m),
			pipeline.WithLogger(logger),
		),
		renderer: renderer,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// openOutput returns stdout for "" or "-", otherwise a created file
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// writeOutput renders through fn into path, closing the file afterwards
func writeOutput(path string, fn func(io.Writer) error) (err error) {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()
	return fn(out)
}
