package ledger

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Store abstracts the ledger file's low-level mechanics: a full-scan read of
// persisted rows and an append of new ones. Appends are monotonic; existing
// rows are never rewritten or reordered.
type Store interface {
	// Path returns the ledger file path, for error reporting.
	Path() string
	// Load returns every persisted row in order. A ledger file that does not
	// exist yet yields no rows and no error.
	Load() ([]Row, error)
	// Append durably writes the given rows after the existing ones. The write
	// is atomic: either all rows land or the previous file is left intact.
	Append(rows []Row) error
}

// NewStore selects a Store implementation from the ledger file extension:
// .xlsx for the workbook store, .csv for the plain-text store.
func NewStore(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewXLSXStore(path), nil
	case ".csv":
		return NewCSVStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported ledger format: %s", filepath.Ext(path))
	}
}
