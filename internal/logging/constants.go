package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldImage       = "image_path"
	FieldSource      = "source_id"
	FieldPair        = "pair"
	FieldRecordKey   = "record_key"
	FieldOutcome     = "outcome"
	FieldLedger      = "ledger_path"
	FieldDir         = "directory"
	FieldError       = "error"
	FieldCount       = "count"
	FieldRunID       = "run_id"
	FieldDuration    = "duration_ms"
	FieldDestination = "destination"
)
