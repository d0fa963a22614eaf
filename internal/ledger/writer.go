package ledger

import (
	"trip-audit/internal/logging"
	"trip-audit/internal/models"
	"trip-audit/internal/parsererror"
)

// Outcome is the per-record result of an append attempt.
type Outcome int

const (
	// Added means the record was new and its row was staged for commit.
	Added Outcome = iota
	// Duplicate means the record's key was already in the ledger (or staged
	// earlier in this run) and no row was appended.
	Duplicate
)

// String returns the outcome name for logs and summaries.
func (o Outcome) String() string {
	if o == Added {
		return "added"
	}
	return "duplicate"
}

// Writer implements the append-only ledger protocol: load the complete
// existing key set once, stage new rows in memory with duplicate detection,
// then commit all staged rows in a single atomic save.
type Writer struct {
	store   Store
	logger  logging.Logger
	keys    map[models.CanonicalTripKey]struct{}
	pending []Row
}

// NewWriter loads the existing ledger keys and returns a Writer ready to
// stage appends. The full scan happens exactly once, here.
func NewWriter(store Store, logger logging.Logger) (*Writer, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	rows, err := store.Load()
	if err != nil {
		return nil, &parsererror.LedgerError{LedgerPath: store.Path(), Op: "load", Err: err}
	}

	keys := make(map[models.CanonicalTripKey]struct{}, len(rows))
	for _, row := range rows {
		keys[row.Key()] = struct{}{}
	}

	logger.Debug("Loaded existing ledger keys",
		logging.Field{Key: logging.FieldLedger, Value: store.Path()},
		logging.Field{Key: logging.FieldCount, Value: len(keys)})

	return &Writer{store: store, logger: logger, keys: keys}, nil
}

// AppendIfNew stages the record's row unless its key is already logged.
// Staged keys count as logged, so a key can be added at most once per run.
func (w *Writer) AppendIfNew(rec models.CanonicalTripRecord) Outcome {
	key := rec.Key()
	if _, exists := w.keys[key]; exists {
		w.logger.Info("Skipped duplicate trip",
			logging.Field{Key: logging.FieldRecordKey, Value: string(key)},
			logging.Field{Key: logging.FieldPair, Value: rec.SourceLabel})
		return Duplicate
	}

	w.keys[key] = struct{}{}
	w.pending = append(w.pending, NewRow(rec))
	return Added
}

// Pending returns the number of staged rows awaiting commit.
func (w *Writer) Pending() int {
	return len(w.pending)
}

// Commit persists all staged rows in one atomic append. On success the
// staged set is cleared; on failure nothing was written and the rows remain
// staged.
func (w *Writer) Commit() error {
	if len(w.pending) == 0 {
		return nil
	}

	if err := w.store.Append(w.pending); err != nil {
		return &parsererror.LedgerError{LedgerPath: w.store.Path(), Op: "append", Err: err}
	}

	w.logger.Info("Ledger updated",
		logging.Field{Key: logging.FieldLedger, Value: w.store.Path()},
		logging.Field{Key: logging.FieldCount, Value: len(w.pending)})
	w.pending = nil
	return nil
}
