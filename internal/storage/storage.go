package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"authorship-crawler/internal/config"
	"authorship-crawler/internal/crawler"
	"authorship-crawler/internal/worker"
)

// Sink persists crawl results. Implementations are safe for concurrent use.
type Sink interface {
	Write(result *crawler.Result) error
	Close() error
}

// ErrEmptyResult is returned by Save for results without any page.
var ErrEmptyResult = errors.New("result has no pages")

type Storage struct {
	outputDir string
	sinks     []Sink
	statsMu   sync.Mutex
	stats     *Stats
	logger    *slog.Logger
}

type Stats struct {
	Total      int           `json:"total"`
	Saved      int           `json:"saved"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Records    int           `json:"records"`
	Failures   []SeedFailure `json:"failures,omitempty"`
	StartTime  time.Time     `json:"start_time"`
	LastUpdate time.Time     `json:"last_update"`
}

// SeedFailure is reported in stats.json for every seed or page that failed.
type SeedFailure struct {
	Seed  string `json:"seed"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error"`
}

// NewStorage creates outputDir and opens one sink per format.
func NewStorage(outputDir string, formats []string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	s := &Storage{
		outputDir: outputDir,
		stats: &Stats{
			StartTime:  time.Now(),
			LastUpdate: time.Now(),
		},
		logger: logger,
	}

	for _, format := range formats {
		sink, err := openSink(outputDir, format, logger)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.sinks = append(s.sinks, sink)
	}

	return s, nil
}

func openSink(outputDir, format string, logger *slog.Logger) (Sink, error) {
	switch format {
	case config.FormatJSON:
		return NewJSONSink(filepath.Join(outputDir, "documents"), logger), nil
	case config.FormatJSONL:
		return OpenJSONL(filepath.Join(outputDir, "records.jsonl"))
	case config.FormatSQLite:
		return OpenSQLite(filepath.Join(outputDir, "records.db"))
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Save writes result to every sink.
func (s *Storage) Save(result *crawler.Result) error {
	if result == nil || len(result.Pages) == 0 {
		s.update(func(st *Stats) { st.Skipped++ })
		return ErrEmptyResult
	}

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(result); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.update(func(st *Stats) { st.Failed++ })
		return err
	}

	s.update(func(st *Stats) {
		st.Saved++
		st.Records += result.RecordCount()
		for _, failure := range result.Failures {
			st.Failures = append(st.Failures, SeedFailure{Seed: result.Seed, URL: failure.URL, Error: failure.Err})
		}
	})
	s.logger.Debug("saved seed", "seed", result.Seed, "records", result.RecordCount())

	return nil
}

func (s *Storage) SaveBatch(results <-chan worker.Result) error {
	var wg sync.WaitGroup
	errs := make(chan error, 100)

	// Process results concurrently
	for result := range results {
		wg.Add(1)
		go func(r worker.Result) {
			defer wg.Done()

			if r.Error != nil {
				s.logger.Warn("seed failed", "seed", r.Task.Seed, "error", r.Error)
				s.update(func(st *Stats) {
					st.Failed++
					st.Failures = append(st.Failures, SeedFailure{Seed: r.Task.Seed, Error: r.Error.Error()})
				})
				return
			}

			crawled, ok := r.Data.(*crawler.Result)
			if !ok {
				errs <- fmt.Errorf("invalid data type for seed: %s", r.Task.Seed)
				s.update(func(st *Stats) { st.Failed++ })
				return
			}

			if err := s.Save(crawled); err != nil && !errors.Is(err, ErrEmptyResult) {
				errs <- fmt.Errorf("failed to save seed %s: %w", r.Task.Seed, err)
			}
		}(result)
	}

	// Wait for all goroutines to complete
	go func() {
		wg.Wait()
		close(errs)
	}()

	// Collect errors
	var errorList []error
	for err := range errs {
		errorList = append(errorList, err)
	}

	if len(errorList) > 0 {
		return fmt.Errorf("batch save completed with %d errors: %w", len(errorList), errors.Join(errorList...))
	}

	return nil
}

func (s *Storage) update(fn func(*Stats)) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	fn(s.stats)
	s.stats.LastUpdate = time.Now()
}

func (s *Storage) SetTotal(total int) {
	s.update(func(st *Stats) { st.Total = total })
}

// Stats returns a snapshot of the counters.
func (s *Storage) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	stats := *s.stats
	stats.Failures = append([]SeedFailure(nil), s.stats.Failures...)
	return stats
}

func (s *Storage) SaveStats() error {
	statsFile := filepath.Join(s.outputDir, "stats.json")
	stats := s.Stats()

	successRate := 0.0
	if stats.Total > 0 {
		successRate = float64(stats.Saved) / float64(stats.Total) * 100
	}

	report := struct {
		Stats
		SuccessRate float64   `json:"success_rate"`
		EndTime     time.Time `json:"end_time"`
		Duration    string    `json:"duration"`
	}{
		Stats:       stats,
		SuccessRate: successRate,
		EndTime:     time.Now(),
		Duration:    time.Since(stats.StartTime).String(),
	}

	return writeJSONAtomic(statsFile, report)
}

func (s *Storage) PrintStats(w io.Writer) {
	stats := s.Stats()
	total := stats.Saved + stats.Failed + stats.Skipped
	elapsed := time.Since(stats.StartTime)

	fmt.Fprintln(w, "\n=== Storage Statistics ===")
	fmt.Fprintf(w, "Total processed: %d\n", total)
	fmt.Fprintf(w, "Successfully saved: %d\n", stats.Saved)
	fmt.Fprintf(w, "Author records: %d\n", stats.Records)
	fmt.Fprintf(w, "Failed: %d\n", stats.Failed)
	fmt.Fprintf(w, "Skipped: %d\n", stats.Skipped)

	if total > 0 {
		successRate := float64(stats.Saved) / float64(total) * 100
		fmt.Fprintf(w, "Success rate: %.1f%%\n", successRate)
	}

	fmt.Fprintf(w, "Elapsed time: %v\n", elapsed.Round(time.Second))
}

// Close closes every sink.
func (s *Storage) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// writeJSONAtomic encodes v into a temporary file and renames it over
// filename.
func writeJSONAtomic(filename string, v any) error {
	tempFile := filename + ".tmp"

	if err := writeJSON(tempFile, v); err != nil {
		// Clean up temp file on error
		os.Remove(tempFile)
		return err
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func writeJSON(filename string, v any) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
