package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxRetries  int
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *slog.Logger
}

type FetchResult struct {
	URL string
	// FinalURL is the address that answered after redirects; relative links
	// on the page resolve against it.
	FinalURL   string
	StatusCode int
	Body       []byte
	Error      error
	Attempts   int
	Duration   time.Duration
}

// NewFetcher returns a fetcher that issues at most rateLimit requests per
// second across all goroutines sharing it.
func NewFetcher(timeout time.Duration, maxRetries, rateLimit int, userAgent string, logger *slog.Logger) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent:   userAgent,
		maxRetries:  maxRetries,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		backoff:     backoffDuration,
		logger:      logger,
	}
}

// Fetch downloads url, retrying transient failures with exponential backoff.
// HTTP failures are reported in FetchResult.Error; the returned error is
// only set when ctx ends first.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()
	var lastError error
	var attempts int

	for attempts = 1; attempts <= f.maxRetries; attempts++ {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}

		f.logger.Debug("fetching", "attempt", attempts, "max", f.maxRetries, "url", url)

		result, retry, err := f.do(ctx, url)
		if err == nil {
			result.Attempts = attempts
			result.Duration = time.Since(start)
			return result, nil
		}

		lastError = err
		if !retry || attempts == f.maxRetries {
			break
		}

		select {
		case <-time.After(f.backoff(attempts)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &FetchResult{
		URL:      url,
		Error:    fmt.Errorf("max retries exceeded, last error: %w", lastError),
		Attempts: attempts,
		Duration: time.Since(start),
	}, nil
}

func (f *Fetcher) do(ctx context.Context, url string) (*FetchResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request failed: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// Don't set Accept-Encoding - let Go handle decompression automatically
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response body failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		// Don't retry on 404 or 403
		retry := resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusForbidden
		return nil, retry, err
	}

	return &FetchResult{
		URL:        url,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}, false, nil
}

func backoffDuration(attempt int) time.Duration {
	// Exponential backoff: 1s, 2s, 4s, 8s, etc.
	backoff := time.Duration(1<<uint(attempt-1)) * time.Second

	// Cap at 30 seconds
	if backoff > 30*time.Second {
		return 30 * time.Second
	}

	return backoff
}
