package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"authorship-crawler/internal/crawler"
)

// JSONLSink appends one JSON object per author record to a single file.
type JSONLSink struct {
	mu   sync.Mutex
	file *os.File
}

func OpenJSONL(path string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening records file for append: %w", err)
	}
	return &JSONLSink{file: f}, nil
}

func (s *JSONLSink) Write(result *crawler.Result) error {
	var buf []byte
	for _, page := range result.Pages {
		for _, record := range page.Records {
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("encoding record: %w", err)
			}
			buf = append(buf, data...)
			buf = append(buf, '\n')
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(buf); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
