package validate

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ppiankov/factcheck/internal/model"
	"github.com/ppiankov/factcheck/internal/util"
	"github.com/ppiankov/factcheck/internal/worker"
)

const (
	checkMaxAttempts = 3
	maxRedirects     = 5
	maxPageBytes     = 1 << 20
)

// checkSleep waits between retries (replaceable in tests)
var checkSleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Checker probes cited sources: reachability, final URL after redirects,
// authority tier, page title and publication date. It never changes the
// analysis result it is given.
type Checker struct {
	httpClient *http.Client
	userAgent  string
	authority  *AuthorityClassifier
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pool       *worker.Pool[model.Source, model.SourceCheck]
	logger     *log.Logger
}

// NewChecker builds a checker from the HTTP and sources configuration
func NewChecker(cfg *model.Config, logger *log.Logger) *Checker {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}

	client := util.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}

	c := &Checker{
		httpClient: client,
		userAgent:  cfg.HTTP.UserAgent,
		authority:  NewAuthorityClassifier(&cfg.Sources.Authority),
		limiter:    worker.NewLimiter(cfg.Sources.RequestsPerSecond, cfg.Sources.Burst),
		logger:     logger,
	}
	if cfg.Sources.RespectRobots {
		c.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, client, cfg.HTTP.Timeout)
	}
	c.pool = worker.NewPool(cfg.Sources.Workers, c.checkWithRetry)

	return c
}

// Check probes every source concurrently. The result has one entry per
// source, in the same order.
func (c *Checker) Check(ctx context.Context, sources []model.Source) []model.SourceCheck {
	start := time.Now()
	checks := c.pool.Run(ctx, sources)
	c.logger.Debug("source checks finished", "sources", len(sources), "duration", time.Since(start))
	return checks
}

func (c *Checker) checkWithRetry(ctx context.Context, src model.Source) model.SourceCheck {
	var check model.SourceCheck
	for attempt := 0; attempt < checkMaxAttempts; attempt++ {
		check = c.checkOne(ctx, src)
		if !retryable(check) || attempt == checkMaxAttempts-1 {
			break
		}
		backoff := time.Duration(1<<uint(attempt)) * time.Second
		if err := checkSleep(ctx, backoff); err != nil {
			break
		}
	}
	return check
}

func (c *Checker) checkOne(ctx context.Context, src model.Source) model.SourceCheck {
	check := model.SourceCheck{
		URI:       src.URI,
		Authority: c.authority.Classify(src.URI),
		Published: src.Published,
	}

	parsed, err := url.Parse(src.URI)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		check.Error = "unsupported URL"
		return check
	}
	check.Host = parsed.Hostname()

	var crawlDelay time.Duration
	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, src.URI)
		if err == nil && !allowed {
			check.RobotsDisallowed = true
			return check
		}
		crawlDelay = delay
	}

	if err := c.limiter.WaitWithDelay(ctx, src.URI, crawlDelay); err != nil {
		check.Error = fmt.Sprintf("rate limit wait: %v", err)
		return check
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URI, nil)
	if err != nil {
		check.Error = fmt.Sprintf("create request: %v", err)
		return check
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		check.Error = fmt.Sprintf("request failed: %v", err)
		return check
	}
	defer func() { _ = resp.Body.Close() }()

	check.StatusCode = resp.StatusCode
	check.Accessible = resp.StatusCode >= 200 && resp.StatusCode < 400

	if final := resp.Request.URL.String(); final != src.URI {
		check.FinalURL = final
		check.Host = resp.Request.URL.Hostname()
		check.Authority = c.authority.Classify(final)
	}

	if !check.Accessible {
		return check
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" && check.Published == "" {
		if t, err := http.ParseTime(lastModified); err == nil {
			check.Published = t.UTC().Format("2006-01-02")
		}
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		meta, err := parsePageMeta(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			c.logger.Debug("could not parse page", "uri", src.URI, "err", err)
			return check
		}
		check.PageTitle = meta.Title
		if meta.Published != "" {
			check.Published = meta.Published
		}
	}

	return check
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mediaType == "text/html" || mediaType == "application/xhtml+xml")
}

// retryable reports transient failures: 5xx, 429 and network errors
func retryable(check model.SourceCheck) bool {
	if check.StatusCode >= 500 || check.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(check.Error)
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}
