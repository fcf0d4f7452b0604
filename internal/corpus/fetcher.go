package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/triplex-nlp/triplex/internal/cache"
	"github.com/triplex-nlp/triplex/internal/model"
	"github.com/triplex-nlp/triplex/internal/util"
	"github.com/triplex-nlp/triplex/internal/worker"
)

// Fetcher retrieves HTML pages for corpus intake. Every fetch passes the
// robots.txt gate and the per-domain rate limiter; successful page bodies
// are cached so repeated harvests of the same URL stay local.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pages      cache.Cache // nil disables page caching
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher from the HTTP and rate-limiting
// configuration. pages may be nil.
func NewFetcher(httpCfg model.HTTPConfig, rateCfg model.RateLimitingConfig, pages cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:   worker.NewLimiter(rateCfg.RequestsPerSecond, rateCfg.BurstSize),
		pages:     pages,
		cacheTTL:  cacheTTL,
	}
}

// Fetch retrieves the HTML body of rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.pages != nil {
		if cached, found := f.pages.Get(key); found {
			return string(cached), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Read body with size limit
	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.pages != nil {
		_ = f.pages.Set(key, body, f.cacheTTL)
	}
	return string(body), nil
}

// Harvester combines fetching and extraction into one intake step.
type Harvester struct {
	fetcher   *Fetcher
	extractor *Extractor
}

// NewHarvester creates a harvester over a fetcher and an extractor.
func NewHarvester(fetcher *Fetcher, extractor *Extractor) *Harvester {
	return &Harvester{fetcher: fetcher, extractor: extractor}
}

// Harvest fetches a page and returns its scored candidate sentences.
func (h *Harvester) Harvest(ctx context.Context, rawURL string) ([]Sentence, error) {
	htmlContent, err := h.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return h.extractor.FromHTML(htmlContent, rawURL)
}
