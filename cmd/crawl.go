package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"authorship-crawler/internal/config"
	"authorship-crawler/internal/crawler"
	"authorship-crawler/internal/fetcher"
	"authorship-crawler/internal/parser"
	"authorship-crawler/internal/seeds"
	"authorship-crawler/internal/storage"
	"authorship-crawler/internal/worker"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl every seed and store the author records",
	Long: `Crawl fetches the article page of every seed, follows the article
information link, and stores one record per author in the output directory.

Examples:
  authorcrawl crawl --seeds dois.csv
  authorcrawl crawl --seeds urls.txt --workers 5 --rate 2 --formats json,sqlite
  AUTHORCRAWL_WORKERS=4 authorcrawl crawl --seeds dois.csv`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	defaults := config.New()
	flags := crawlCmd.Flags()
	flags.String("seeds", "", "seed file: CSV with a DOI column or one DOI/URL per line")
	flags.StringP("output", "o", defaults.OutputDir, "output directory")
	flags.StringSlice("formats", defaults.Formats, "output formats (json, jsonl, sqlite)")
	flags.IntP("workers", "w", defaults.Workers, "number of concurrent workers")
	flags.IntP("rate", "r", defaults.RateLimit, "requests per second")
	flags.Duration("timeout", defaults.Timeout, "HTTP request timeout")
	flags.Int("retries", defaults.MaxRetries, "maximum retry attempts per request")
	flags.Int("max-pages", defaults.MaxPages, "maximum pages visited per seed")
	flags.String("user-agent", defaults.UserAgent, "User-Agent header sent with every request")

	for _, name := range []string{"seeds", "output", "formats", "workers", "rate", "timeout", "retries", "max-pages", "user-agent"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
}

// loadConfig merges flags, environment and config file over the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	out := cmd.OutOrStdout()

	ids, err := seeds.Load(cfg.SeedsFile)
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(cfg.ProfileFile)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "=== Authorship Crawler ===")
	fmt.Fprintf(out, "Seeds: %s (%d)\n", cfg.SeedsFile, len(ids))
	fmt.Fprintf(out, "Profile: %s\n", profile.Name)
	fmt.Fprintf(out, "Output directory: %s (%v)\n", cfg.OutputDir, cfg.Formats)
	fmt.Fprintf(out, "Workers: %d\n", cfg.Workers)
	fmt.Fprintf(out, "Rate limit: %d requests/second\n", cfg.RateLimit)
	fmt.Fprintf(out, "Timeout: %v\n", cfg.Timeout)
	fmt.Fprintf(out, "Max retries: %d\n", cfg.MaxRetries)
	fmt.Fprintln(out)

	store, err := storage.NewStorage(cfg.OutputDir, cfg.Formats, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	store.SetTotal(len(ids))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageFetcher := fetcher.NewFetcher(cfg.Timeout, cfg.MaxRetries, cfg.RateLimit, cfg.UserAgent, logger)
	pageParser := parser.NewParser(profile, logger)
	seedCrawler := crawler.New(pageFetcher, pageParser, cfg.MaxPages, logger)
	pool := worker.NewPool(ctx, cfg.Workers, logger)

	fmt.Fprintln(out, "Starting concurrent processing...")
	fmt.Fprintln(out, "Press Ctrl+C to stop gracefully")
	fmt.Fprintln(out)

	startTime := time.Now()

	results := pool.Process(ids, func(ctx context.Context, task worker.Task) (any, error) {
		return seedCrawler.Crawl(ctx, task.Seed)
	})

	saveErr := make(chan error, 1)
	go func() {
		saveErr <- store.SaveBatch(results)
	}()

	pool.Stop()

	if err := <-saveErr; err != nil {
		logger.Error("saving batch", "error", err)
	}

	if err := store.SaveStats(); err != nil {
		logger.Error("saving stats", "error", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Processing Complete ===")
	fmt.Fprintf(out, "Total time: %v\n", time.Since(startTime).Round(time.Second))

	store.PrintStats(out)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output saved to:", cfg.OutputDir)

	return ctx.Err()
}
