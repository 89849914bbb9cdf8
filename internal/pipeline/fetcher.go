package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/ingest"
	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/util"
	"github.com/ppiankov/verdict/internal/worker"
)

const (
	fetchAttempts   = 3
	fetchBackoff    = 500 * time.Millisecond
	maxRedirects    = 3
	defaultMaxBytes = 5_000_000
)

// ErrDisallowed is returned when robots.txt forbids fetching a page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// fetchSleepFunc waits between attempts; tests replace it
var fetchSleepFunc = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetcher downloads published ruling pages
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	logger     *zap.Logger
}

// NewFetcher creates a fetcher. A nil limiter disables per-host throttling.
func NewFetcher(cfg model.HTTPConfig, limiter *worker.Limiter, logger *zap.Logger) *Fetcher {
	logger = logging.OrNop(logger)

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: util.NewTransport(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		limiter:    limiter,
		logger:     logger,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(client, cfg.UserAgent, cfg.Timeout, logger)
	}
	return f
}

// FetchResult contains the fetched page
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// errTransient marks responses worth retrying
type errTransient struct {
	status int
}

func (e *errTransient) Error() string {
	return fmt.Sprintf("transient status: %d", e.status)
}

// Fetch retrieves one page without retrying
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fa-IR,fa;q=0.9,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &errTransient{status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// FetchWithRetry honours robots.txt and the per-host limiter, then fetches,
// retrying 429 and 5xx responses and transport errors with backoff.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		decision, err := f.robots.Check(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if decision.CrawlDelay > 0 && f.limiter != nil {
			if host, err := hostOf(rawURL); err == nil {
				f.limiter.SetRate(host, 1/decision.CrawlDelay.Seconds(), 1)
			}
		}
	}

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			delay := fetchBackoff << (attempt - 1)
			f.logger.Debug("retrying fetch",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := fetchSleepFunc(ctx, delay); err != nil {
				return nil, err
			}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, rawURL); err != nil {
				return nil, fmt.Errorf("rate limit: %w", err)
			}
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("fetch %s: giving up after %d attempts: %w", rawURL, fetchAttempts, lastErr)
}

// FetchDocument fetches a page and reduces it to a plain-text document.
// The document id is derived from the last path segment of the final URL.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (model.Document, error) {
	result, err := f.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return model.Document{}, err
	}

	text, err := ingest.ReduceMarkup(result.HTML)
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{
		ID:     documentID(result.FinalURL),
		Text:   text,
		Source: result.FinalURL,
	}, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var transient *errTransient
	if errors.As(err, &transient) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}

// documentID derives a stable id from a ruling URL
func documentID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	p := strings.Trim(parsed.Path, "/")
	if p == "" {
		return parsed.Host
	}

	last := path.Base(p)
	if ext := path.Ext(last); ext != "" && len(ext) < len(last) {
		last = strings.TrimSuffix(last, ext)
	}
	if id := parsed.Query().Get("id"); id != "" {
		last += "-" + id
	}
	return last
}
