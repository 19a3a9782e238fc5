package intelxaudit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

//go:generate mockgen -source=lib.go -destination=mock_collaborators_test.go -package=intelxaudit

type searchAPI interface {
	Search(ctx context.Context, sr SearchRequest) (string, error)
	Results(ctx context.Context, handle string, limit int) ([]ResultRecord, error)
}

type archiver interface {
	Export(ctx context.Context, handle string) (ExportResult, error)
}

// Outcome classifies how the audit of a single target ended.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeFailed
	OutcomeClean
	OutcomeExposed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	case OutcomeClean:
		return "clean"
	case OutcomeExposed:
		return "exposed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Auditor checks targets against the Intelligence X search API, one at a time.
// It is not safe for concurrent use.
type Auditor struct {
	cfg            Config
	api            searchAPI
	archive        archiver
	reporter       Reporter
	logger         zerolog.Logger
	httpClient     *http.Client
	progressWriter io.Writer
	metrics        *metrics
	sleep          func(ctx context.Context, d time.Duration) error
}

// New creates an Auditor for cfg. The configuration is validated, so a missing API key fails here at the latest.
func New(cfg Config, options ...Option) (*Auditor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Auditor{
		cfg:            cfg,
		reporter:       NewConsoleReporter(os.Stdout),
		logger:         zerolog.Nop(),
		progressWriter: io.Discard,
		metrics:        newMetrics(),
		sleep:          sleepContext,
	}

	for _, option := range options {
		option(a)
	}

	client := newIntelxClient(cfg, a.httpClient, a.logger, a.metrics)

	a.api = client
	a.archive = &exporter{
		client:         client,
		storage:        &fsStorage{dataDir: cfg.OutputDir},
		reporter:       a.reporter,
		logger:         a.logger,
		progressWriter: a.progressWriter,
		timeout:        cfg.ExportTimeout,
		exportedSize:   a.metrics.exportedSize,
	}

	return a, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
