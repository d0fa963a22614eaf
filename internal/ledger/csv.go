package ledger

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"trip-audit/internal/fileutils"
)

// CSVStore persists the ledger as a plain-text CSV file with the same header
// and column order as the workbook store.
type CSVStore struct {
	path string
}

// NewCSVStore creates a CSV-backed store at the given path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the CSV file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads every persisted row. A file that does not exist yet yields no rows.
func (s *CSVStore) Load() ([]Row, error) {
	if !fileutils.FileExists(s.path) {
		return nil, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}
	return rows, nil
}

// Append rewrites the file with the existing rows plus the new ones, via a
// temp file renamed over the original so the previous ledger survives a
// failed write.
func (s *CSVStore) Append(rows []Row) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	all := append(existing, rows...)

	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error creating ledger file: %w", err)
	}

	if err := gocsv.MarshalFile(&all, file); err != nil {
		_ = file.Close()
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error flushing ledger file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing ledger file: %w", err)
	}
	return nil
}
