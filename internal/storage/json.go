package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"authorship-crawler/internal/crawler"
)

// JSONSink writes one indented JSON file per seed.
type JSONSink struct {
	dir      string
	fileLock sync.Mutex
	logger   *slog.Logger
}

func NewJSONSink(dir string, logger *slog.Logger) *JSONSink {
	return &JSONSink{dir: dir, logger: logger}
}

// Write stores result as <seed>.json. Existing files are left untouched.
func (s *JSONSink) Write(result *crawler.Result) error {
	// Ensure output directory exists
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(s.dir, FileName(result.Seed)+".json")

	s.fileLock.Lock()
	defer s.fileLock.Unlock()

	// Check if file already exists
	if _, err := os.Stat(filename); err == nil {
		s.logger.Debug("file already exists, skipping", "file", filename)
		return nil
	}

	if err := writeJSONAtomic(filename, result); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	s.logger.Debug("saved document", "file", filename)
	return nil
}

func (s *JSONSink) Close() error {
	return nil
}

// FileName turns a seed such as "10.1073/pnas.1" into a safe file name.
func FileName(seed string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, seed)
	name = strings.Trim(name, ".")
	if name == "" {
		return "_"
	}
	return name
}
