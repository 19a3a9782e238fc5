package intelxaudit

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Option customizes an Auditor beyond what Config covers, mostly the collaborators it talks to.
type Option func(a *Auditor)

// WithHTTPClient sets the client used underneath the request layer.
// This is mainly useful for tests and proxies.
// Default: a pooled client from go-cleanhttp.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Auditor) {
		a.httpClient = client
	}
}

// WithReporter sets the console reporter that receives all user-facing messages.
// Default: a pterm reporter writing to stdout.
func WithReporter(reporter Reporter) Option {
	return func(a *Auditor) {
		a.reporter = reporter
	}
}

// WithLogger sets the debug logger.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// WithProgressWriter sets where the download progress bar is rendered.
// Default: io.Discard; meaning no progress is shown.
func WithProgressWriter(w io.Writer) Option {
	return func(a *Auditor) {
		a.progressWriter = w
	}
}
