package intelxaudit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

const exportChunkSize = 8192

// ExportResult describes the archive of one search on disk.
type ExportResult struct {
	Path    string
	Bytes   int64
	Files   int
	Skipped bool
}

type exporter struct {
	client         *intelxClient
	storage        *fsStorage
	reporter       Reporter
	logger         zerolog.Logger
	progressWriter io.Writer
	timeout        time.Duration
	exportedSize   prometheus.Counter
}

// Export downloads the zip export of a search into the output directory. An archive that is already
// present is left untouched and reported as skipped. A failed download leaves the partial file behind.
func (e *exporter) Export(ctx context.Context, handle string) (ExportResult, error) {
	path, err := e.storage.Prepare(handle)
	if err != nil {
		return ExportResult{}, err
	}

	exists, err := e.storage.Exists(path)
	if err != nil {
		return ExportResult{}, err
	}

	if exists {
		e.reporter.Warning("File already exists: %s", path)

		return ExportResult{Path: path, Skipped: true}, nil
	}

	e.reporter.Info("Starting export download for search ID: %s", handle)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.OpenExport(ctx, handle)
	if err != nil {
		return ExportResult{Path: path}, err
	}
	defer resp.Body.Close()

	file, err := e.storage.Create(path)
	if err != nil {
		return ExportResult{Path: path}, err
	}
	defer file.Close()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(e.progressWriter),
		progressbar.OptionSetDescription("downloading "+handle),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(e.progressWriter)
		}))

	written, err := io.CopyBuffer(io.MultiWriter(file, bar), resp.Body, make([]byte, exportChunkSize))
	e.exportedSize.Add(float64(written))
	if err != nil {
		return ExportResult{Path: path, Bytes: written}, &DownloadError{Err: err}
	}

	if err := file.Close(); err != nil {
		return ExportResult{Path: path, Bytes: written}, &DownloadError{Err: err}
	}

	_ = bar.Finish()

	result := ExportResult{Path: path, Bytes: written}

	files, err := countArchiveEntries(path)
	if err != nil {
		e.logger.Debug().Err(err).Str("path", path).Msg("inspecting export archive")
		e.reporter.Warning("Downloaded file is not a readable zip archive: %s", path)
	} else {
		result.Files = files
	}

	return result, nil
}

func countArchiveEntries(path string) (int, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("opening archive %q: %w", path, err)
	}
	defer r.Close()

	return len(r.File), nil
}
