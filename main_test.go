package intelxaudit

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

const (
	testEndpoint = "https://intelx.test"
	testAPIKey   = "test-key"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()

	os.Exit(m.Run())
}

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.BaseURL = testEndpoint
	cfg.OutputDir = t.TempDir()

	return cfg
}

// newGockClient returns an HTTP client whose requests are answered by gock mocks only.
func newGockClient(t *testing.T) *http.Client {
	t.Helper()

	hc := &http.Client{}
	gock.InterceptClient(hc)

	t.Cleanup(func() {
		gock.RestoreClient(hc)
		gock.Off()
	})

	return hc
}

type recordedSleeps struct {
	durations []time.Duration
}

func (r *recordedSleeps) sleep(_ context.Context, d time.Duration) error {
	r.durations = append(r.durations, d)

	return nil
}

// newTestAuditor returns an auditor that reports into the returned buffer and never actually sleeps.
func newTestAuditor(t *testing.T, cfg Config, options ...Option) (*Auditor, *bytes.Buffer, *recordedSleeps) {
	t.Helper()

	out := &bytes.Buffer{}
	sleeps := &recordedSleeps{}

	a, err := New(cfg, append([]Option{WithReporter(NewConsoleReporter(out))}, options...)...)
	require.NoError(t, err)

	a.sleep = sleeps.sleep

	return a, out, sleeps
}
