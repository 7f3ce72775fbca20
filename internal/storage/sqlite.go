package storage

import (
	"database/sql"
	"fmt"
	"sync"

	"authorship-crawler/internal/authorship"
	"authorship-crawler/internal/crawler"
	_ "modernc.org/sqlite"
)

// SQLiteSink keeps the latest record per (doi, author order) in a SQLite
// database, so pages crawled twice do not duplicate rows.
type SQLiteSink struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			doc_key TEXT NOT NULL,
			author_order INTEGER NOT NULL,
			author TEXT NOT NULL,
			contribution TEXT NOT NULL,
			nationality TEXT NOT NULL,
			title TEXT NOT NULL,
			doi TEXT NOT NULL,
			date TEXT NOT NULL,
			seed TEXT NOT NULL,
			page_url TEXT NOT NULL,
			PRIMARY KEY (doc_key, author_order)
		);

		CREATE TABLE IF NOT EXISTS affiliations (
			doc_key TEXT NOT NULL,
			author_order INTEGER NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (doc_key, author_order, position)
		);

		CREATE INDEX IF NOT EXISTS idx_records_nationality ON records(nationality);
	`

	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteSink) Write(result *crawler.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, page := range result.Pages {
		for _, record := range page.Records {
			key := record.DOI
			if key == "" {
				key = page.URL
			}
			if err := upsertRecord(tx, key, result.Seed, page.URL, record); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

func upsertRecord(tx *sql.Tx, key, seed, pageURL string, record authorship.Record) error {
	_, err := tx.Exec(`
		INSERT INTO records (
			doc_key, author_order, author, contribution, nationality,
			title, doi, date, seed, page_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_key, author_order) DO UPDATE SET
			author = excluded.author,
			contribution = excluded.contribution,
			nationality = excluded.nationality,
			title = excluded.title,
			doi = excluded.doi,
			date = excluded.date,
			seed = excluded.seed,
			page_url = excluded.page_url`,
		key, record.Order, record.Author, record.Contribution, record.Nationality,
		record.Title, record.DOI, record.Date, seed, pageURL,
	)
	if err != nil {
		return fmt.Errorf("inserting record %s/%d: %w", key, record.Order, err)
	}

	if _, err := tx.Exec(`DELETE FROM affiliations WHERE doc_key = ? AND author_order = ?`, key, record.Order); err != nil {
		return fmt.Errorf("clearing affiliations %s/%d: %w", key, record.Order, err)
	}

	for i, affiliation := range record.Affiliations {
		_, err := tx.Exec(`
			INSERT INTO affiliations (doc_key, author_order, position, label, text)
			VALUES (?, ?, ?, ?, ?)`,
			key, record.Order, i, affiliation.Label, affiliation.Text,
		)
		if err != nil {
			return fmt.Errorf("inserting affiliation %s/%d: %w", key, record.Order, err)
		}
	}

	return nil
}

// Records returns the stored records of a document ordered by author order.
func (s *SQLiteSink) Records(docKey string) ([]authorship.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT author_order, author, contribution, nationality, title, doi, date
		FROM records WHERE doc_key = ? ORDER BY author_order`, docKey)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	var records []authorship.Record
	for rows.Next() {
		var r authorship.Record
		if err := rows.Scan(&r.Order, &r.Author, &r.Contribution, &r.Nationality, &r.Title, &r.DOI, &r.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	rows.Close()

	for i := range records {
		affiliations, err := s.affiliations(docKey, records[i].Order)
		if err != nil {
			return nil, err
		}
		records[i].Affiliations = affiliations
	}

	return records, nil
}

func (s *SQLiteSink) affiliations(docKey string, order int) ([]authorship.Affiliation, error) {
	rows, err := s.db.Query(`
		SELECT label, text FROM affiliations
		WHERE doc_key = ? AND author_order = ? ORDER BY position`, docKey, order)
	if err != nil {
		return nil, fmt.Errorf("querying affiliations: %w", err)
	}
	defer rows.Close()

	var affiliations []authorship.Affiliation
	for rows.Next() {
		var a authorship.Affiliation
		if err := rows.Scan(&a.Label, &a.Text); err != nil {
			return nil, fmt.Errorf("scanning affiliation: %w", err)
		}
		affiliations = append(affiliations, a)
	}
	return affiliations, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
