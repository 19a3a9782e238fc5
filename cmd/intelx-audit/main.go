package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	intelxaudit "github.com/exaring/go-intelx-audit"
)

type flags struct {
	target      string
	file        string
	download    bool
	configPath  string
	outputDir   string
	metricsFile string
	verbose     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command line and returns the process exit code. Every user-facing line goes to stdout.
func run(args []string, stdout io.Writer) int {
	reporter := intelxaudit.NewConsoleReporter(stdout)

	if err := execute(args, stdout, reporter); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		reporter.Error("%s", err)

		return 1
	}

	return 0
}

func execute(args []string, stdout io.Writer, reporter intelxaudit.Reporter) error {
	fs := pflag.NewFlagSet("intelx-audit", pflag.ContinueOnError)
	fs.SetOutput(stdout)

	var f flags
	fs.StringVarP(&f.target, "target", "t", "", "Single email address to audit")
	fs.StringVarP(&f.file, "file", "f", "", "Text file with one email address per line")
	fs.BoolVar(&f.download, "download", false, "Download the raw data (zip) when leaks are found")
	fs.StringVarP(&f.configPath, "config", "c", "", "Optional YAML configuration file")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory for downloaded archives (default \""+intelxaudit.DefaultOutputDir+"\")")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging on stderr")

	fs.Usage = func() {
		fmt.Fprintf(stdout, "IntelX Exposure Auditor - checks email addresses against public data breaches.\n\n")
		fmt.Fprintf(stdout, "Usage:\n  intelx-audit (-t <email> | -f <file>) [--download]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := intelxaudit.LoadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}

	if f.download {
		cfg.Download = true
	}

	logger := zerolog.Nop()
	if f.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("run", uuid.NewString()).Logger()
	}

	auditor, err := intelxaudit.New(cfg,
		intelxaudit.WithReporter(reporter),
		intelxaudit.WithLogger(logger),
		intelxaudit.WithProgressWriter(ansi.NewAnsiStdout()))
	if err != nil {
		return fmt.Errorf("creating auditor: %w", err)
	}

	ctx := context.Background()

	switch {
	case f.target != "":
		auditor.AuditTarget(ctx, f.target)
	case f.file != "":
		// A missing or unreadable file has been reported already, it does not fail the run.
		if _, err := auditor.AuditFile(ctx, f.file); err != nil {
			logger.Debug().Err(err).Msg("auditing file")
		}
	default:
		fs.Usage()

		return nil
	}

	if f.metricsFile != "" {
		if err := auditor.WriteMetrics(f.metricsFile); err != nil {
			return err
		}
	}

	return nil
}
