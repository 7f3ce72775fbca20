// Package crawler walks from a seed identifier through the pages of one
// article, parsing each into authorship records.
package crawler

import (
	"context"
	"fmt"
	"log/slog"

	"authorship-crawler/internal/fetcher"
	"authorship-crawler/internal/parser"
	"authorship-crawler/internal/seeds"
)

// PageFetcher is the part of fetcher.Fetcher the crawler needs.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResult, error)
}

// PageParser is the part of parser.Parser the crawler needs.
type PageParser interface {
	Parse(html []byte, pageURL string) (*parser.Page, error)
}

// Failure is a page that could not be fetched or parsed.
type Failure struct {
	URL string `json:"url"`
	Err string `json:"error"`
}

// Result holds everything crawled from one seed.
type Result struct {
	Seed     string         `json:"seed"`
	Pages    []*parser.Page `json:"pages"`
	Failures []Failure      `json:"failures,omitempty"`
}

// RecordCount returns the number of records over all pages.
func (r *Result) RecordCount() int {
	n := 0
	for _, page := range r.Pages {
		n += len(page.Records)
	}
	return n
}

type Crawler struct {
	fetcher  PageFetcher
	parser   PageParser
	maxPages int
	logger   *slog.Logger
}

func New(f PageFetcher, p PageParser, maxPages int, logger *slog.Logger) *Crawler {
	return &Crawler{
		fetcher:  f,
		parser:   p,
		maxPages: maxPages,
		logger:   logger,
	}
}

// Crawl fetches the seed's page and follows next-page links until none is
// left, maxPages pages were visited, or a page fails. Page failures are
// recorded in the result; the error is only set when ctx ends or the seed
// produced nothing but failures.
func (c *Crawler) Crawl(ctx context.Context, seed string) (*Result, error) {
	result := &Result{Seed: seed}
	visited := make(map[string]bool)

	next := seeds.URL(seed)
	for fetched := 0; next != "" && fetched < c.maxPages; fetched++ {
		if visited[next] {
			c.logger.Debug("next page already visited", "seed", seed, "url", next)
			break
		}
		visited[next] = true

		page, err := c.crawlPage(ctx, next)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			c.logger.Warn("page failed", "seed", seed, "url", next, "error", err)
			result.Failures = append(result.Failures, Failure{URL: next, Err: err.Error()})
			break
		}

		visited[page.URL] = true
		c.logger.Debug("page parsed", "seed", seed, "url", page.URL, "records", len(page.Records))
		result.Pages = append(result.Pages, page)
		next = page.NextPage
	}

	if len(result.Pages) == 0 && len(result.Failures) > 0 {
		return result, fmt.Errorf("seed %s: %s", seed, result.Failures[0].Err)
	}
	return result, nil
}

func (c *Crawler) crawlPage(ctx context.Context, url string) (*parser.Page, error) {
	fetchResult, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	if fetchResult.Error != nil {
		return nil, fmt.Errorf("HTTP error: %w", fetchResult.Error)
	}

	pageURL := fetchResult.FinalURL
	if pageURL == "" {
		pageURL = url
	}

	page, err := c.parser.Parse(fetchResult.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	return page, nil
}
