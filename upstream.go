package intelxaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	searchPath = "/intelligent/search"
	resultPath = "/intelligent/search/result"
	exportPath = "/intelligent/search/export"

	// exportFormatZip selects the zip archive format of the export endpoint.
	exportFormatZip = "1"

	// maxErrorBody bounds how much of an error response ends up in an APIError.
	maxErrorBody = 4 << 10
)

// SearchRequest is the body of a search submission.
type SearchRequest struct {
	Term       string
	Buckets    mapset.Set[string]
	MaxResults int
	Media      int
	Sort       int
	Timeout    int
}

func (r SearchRequest) MarshalJSON() ([]byte, error) {
	buckets := []string{}
	if r.Buckets != nil {
		buckets = r.Buckets.ToSlice()
		sort.Strings(buckets)
	}

	return json.Marshal(struct {
		Term       string   `json:"term"`
		Buckets    []string `json:"buckets"`
		MaxResults int      `json:"maxresults"`
		Media      int      `json:"media"`
		Sort       int      `json:"sort"`
		Timeout    int      `json:"timeout"`
	}{r.Term, buckets, r.MaxResults, r.Media, r.Sort, r.Timeout})
}

// ResultRecord is one hit of a search. Only a subset of the fields the service returns is decoded.
type ResultRecord struct {
	SystemID  string `json:"systemid"`
	StorageID string `json:"storageid"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Added     string `json:"added"`
	Bucket    string `json:"bucket"`
	Media     int    `json:"media"`
	Type      int    `json:"type"`
	Size      int64  `json:"size"`
	XScore    int    `json:"xscore"`
}

type searchResponse struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

type resultResponse struct {
	Records []ResultRecord `json:"records"`
	Status  int            `json:"status"`
}

type intelxClient struct {
	endpoint   string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics
}

func newIntelxClient(cfg Config, hc *http.Client, logger zerolog.Logger, m *metrics) *intelxClient {
	retryClient := retryablehttp.NewClient()
	if hc != nil {
		retryClient.HTTPClient = hc
	}
	// Failed calls are reported and skipped, never retried.
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		logger.Debug().Str("method", req.Method).Str("path", req.URL.Path).Msg("sending request")
	}
	retryClient.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		event := logger.Debug().Int("status", resp.StatusCode)
		if resp.Request != nil {
			event = event.Str("path", resp.Request.URL.Path)
		}
		event.Msg("received response")
	}

	return &intelxClient{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.RequestTimeout,
		httpClient: retryClient.StandardClient(),
		metrics:    m,
	}
}

// Search submits a search and returns its handle.
func (c *intelxClient) Search(ctx context.Context, sr SearchRequest) (string, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return "", fmt.Errorf("encoding search request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, searchPath, nil, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	resp, err := c.do(req, "search")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusPaymentRequired:
		return "", ErrQuotaExceeded
	default:
		return "", newAPIError(resp)
	}

	var sResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sResp); err != nil {
		return "", fmt.Errorf("decoding search response: %w", err)
	}

	if sResp.ID == "" {
		return "", ErrNoHandle
	}

	return sResp.ID, nil
}

// Results fetches up to limit records of a search, starting at offset 0.
func (c *intelxClient) Results(ctx context.Context, handle string, limit int) ([]ResultRecord, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := url.Values{}
	params.Set("id", handle)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", "0")

	req, err := c.newRequest(ctx, http.MethodGet, resultPath, params, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "result")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var rResp resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&rResp); err != nil {
		return nil, fmt.Errorf("decoding result response: %w", err)
	}

	if rResp.Records == nil {
		return []ResultRecord{}, nil
	}

	return rResp.Records, nil
}

// OpenExport requests the zip export of a search. The caller owns the returned body.
// The API key is passed as a query parameter as well, the export endpoint expects it there.
func (c *intelxClient) OpenExport(ctx context.Context, handle string) (*http.Response, error) {
	params := url.Values{}
	params.Set("id", handle)
	params.Set("f", exportFormatZip)
	params.Set("k", c.apiKey)

	req, err := c.newRequest(ctx, http.MethodGet, exportPath, params, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "export")
	if err != nil {
		return nil, &DownloadError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()

		return nil, &DownloadError{StatusCode: resp.StatusCode}
	}

	return resp, nil
}

func (c *intelxClient) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	target := c.endpoint + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request for %q: %w", path, err)
	}

	req.Header.Set("x-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

func (c *intelxClient) do(req *http.Request, endpoint string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observeRequest(endpoint, 0)

		return nil, fmt.Errorf("%w: %w", ErrConnection, unwrapURLError(err))
	}

	c.metrics.observeRequest(endpoint, resp.StatusCode)

	return resp, nil
}

func (c *intelxClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.timeout)
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// unwrapURLError strips all *url.Error layers, their messages repeat the full URL including the API key.
func unwrapURLError(err error) error {
	for {
		var uErr *url.Error
		if !errors.As(err, &uErr) {
			return err
		}

		err = uErr.Err
	}
}
