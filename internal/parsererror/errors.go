package parsererror

import "fmt"

// RecognitionError represents a failure of the external OCR engine for a
// single image. It excludes that image from the batch but never aborts it.
type RecognitionError struct {
	ImagePath string
	Err       error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed for %s: %v", e.ImagePath, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// LedgerError represents a failure reading or persisting the trip ledger.
// It is fatal to the ledger-write phase of a run.
type LedgerError struct {
	LedgerPath string
	Op         string
	Err        error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed for %s: %v", e.Op, e.LedgerPath, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// FileOpError represents a copy or move failure while organizing a matched
// pair's images. The affected files remain wherever they were at failure time.
type FileOpError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileOpError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error {
	return e.Err
}
