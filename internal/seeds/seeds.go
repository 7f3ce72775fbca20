// Package seeds loads the identifiers a crawl starts from.
package seeds

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DOIColumn is the header of the identifier column in CSV seed files.
const DOIColumn = "DOI"

const doiResolver = "https://doi.org/"

// ErrNoDOIColumn is returned for CSV files without a DOI header.
var ErrNoDOIColumn = errors.New("seed file has no DOI column")

// Load reads seed identifiers from path. Files ending in .csv must have a
// header row with a DOI column; any other file holds one identifier per
// line, with blank lines and '#' comments ignored.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(file)
	}
	return readLines(file)
}

func readCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoDOIColumn
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), DOIColumn) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, ErrNoDOIColumn
	}

	var ids []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if column >= len(row) {
			continue
		}
		if id := strings.TrimSpace(row[column]); id != "" {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func readLines(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" && !strings.HasPrefix(id, "#") {
			ids = append(ids, id)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return ids, nil
}

// URL returns the address to fetch for a seed: URLs are kept, anything else
// is treated as a DOI and sent through the doi.org resolver.
func URL(id string) string {
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return id
	}
	if strings.HasPrefix(lower, "doi:") {
		id = strings.TrimSpace(id[len("doi:"):])
	}
	return doiResolver + id
}
