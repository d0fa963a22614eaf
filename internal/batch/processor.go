// Package batch drives the screenshot pipeline: enumerate intake, extract and
// parse each image, pair records, merge, archive, and update the ledger.
package batch

import (
	"path/filepath"

	"github.com/google/uuid"

	"trip-audit/internal/fieldparser"
	"trip-audit/internal/fileutils"
	"trip-audit/internal/ledger"
	"trip-audit/internal/logging"
	"trip-audit/internal/matcher"
	"trip-audit/internal/models"
	"trip-audit/internal/organizer"
	"trip-audit/internal/recognizer"
)

// imageExtensions are the intake file types submitted to recognition.
var imageExtensions = []string{"jpg", "jpeg", "png"}

// Summary reports the outcome counts of one batch run.
type Summary struct {
	RunID        string
	Scanned      int // images found in intake
	Errored      int // images whose recognition failed
	MatchedPairs int
	Unmatched    int // extracted records claimed by no pair
	Added        int // new ledger rows
	Duplicates   int // pairs skipped as already logged
	FileErrors   int // pairs whose archive or completed move failed
}

// Processor runs the batch pipeline over one intake directory.
type Processor struct {
	extractor recognizer.TextExtractor
	parser    *fieldparser.Parser
	store     ledger.Store
	organizer *organizer.Organizer
	intakeDir string
	logger    logging.Logger
}

// New wires a Processor from its collaborators.
func New(extractor recognizer.TextExtractor, parser *fieldparser.Parser, store ledger.Store, org *organizer.Organizer, intakeDir string, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		extractor: extractor,
		parser:    parser,
		store:     store,
		organizer: org,
		intakeDir: intakeDir,
		logger:    logger,
	}
}

// extracted pairs a parsed record with its intake path for file operations.
type extracted struct {
	path   string
	record models.TripRecord
}

// matchedPair tracks one claimed pair through archive, ledger, and move.
type matchedPair struct {
	top, bottom extracted
	archived    bool
}

// Run executes one complete batch. Per-image failures and per-pair file
// failures are isolated and counted; only a ledger load or commit failure
// returns an error, and in that case no original leaves the intake directory.
func (p *Processor) Run() (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := p.logger.WithField(logging.FieldRunID, summary.RunID)

	records, err := p.extractAll(log, &summary)
	if err != nil {
		return summary, err
	}

	// Existing keys are loaded once, before any append decision.
	writer, err := ledger.NewWriter(p.store, log)
	if err != nil {
		return summary, err
	}

	pairs := p.matchAndStage(log, records, writer, &summary)

	// All staged rows commit in one atomic save. If it fails, every original
	// is still in intake and a re-run starts clean.
	if err := writer.Commit(); err != nil {
		log.WithError(err).Error("Ledger save failed; originals left in intake")
		return summary, err
	}

	// Originals move out of intake only after the ledger is durable, so an
	// archived image can never lose its ledger trace.
	for _, pair := range pairs {
		if !pair.archived {
			continue
		}
		if err := p.organizer.Complete(pair.top.path, pair.bottom.path); err != nil {
			log.WithError(err).Error("Failed to move processed pair")
			summary.FileErrors++
		}
	}

	log.Info("Batch complete",
		logging.Field{Key: "matched_pairs", Value: summary.MatchedPairs},
		logging.Field{Key: "unmatched", Value: summary.Unmatched},
		logging.Field{Key: "added", Value: summary.Added},
		logging.Field{Key: "duplicates", Value: summary.Duplicates},
		logging.Field{Key: "recognition_errors", Value: summary.Errored},
		logging.Field{Key: "file_errors", Value: summary.FileErrors})
	return summary, nil
}

// extractAll enumerates intake in stable name order and recognizes and parses
// each image. A recognition failure excludes that image from matching but
// never aborts the batch, and the file stays in intake.
func (p *Processor) extractAll(log logging.Logger, summary *Summary) ([]extracted, error) {
	names, err := fileutils.ListFilesWithExtensions(p.intakeDir, imageExtensions)
	if err != nil {
		return nil, err
	}

	log.Info("Scanning intake directory",
		logging.Field{Key: logging.FieldDir, Value: p.intakeDir},
		logging.Field{Key: logging.FieldCount, Value: len(names)})

	var records []extracted
	for _, name := range names {
		summary.Scanned++
		path := filepath.Join(p.intakeDir, name)
		log.Debug("Processing image", logging.Field{Key: logging.FieldImage, Value: path})

		text, err := p.extractor.ExtractText(path)
		if err != nil {
			log.WithError(err).Warn("Recognition failed; image left in intake",
				logging.Field{Key: logging.FieldImage, Value: path})
			summary.Errored++
			continue
		}

		records = append(records, extracted{
			path:   path,
			record: p.parser.Parse(text, name),
		})
	}
	return records, nil
}

// matchAndStage performs the all-pairs scan with first-match semantics: each
// unclaimed record scans forward over unclaimed records and claims the first
// match. Best-score matching is a known possible refinement for ambiguous
// near-identical trips; first-match is the documented behavior.
func (p *Processor) matchAndStage(log logging.Logger, records []extracted, writer *ledger.Writer, summary *Summary) []matchedPair {
	claimed := make([]bool, len(records))
	var pairs []matchedPair

	for i := range records {
		if claimed[i] {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			if claimed[j] {
				continue
			}
			if !matcher.SameTrip(records[i].record, records[j].record) {
				continue
			}

			claimed[i], claimed[j] = true, true
			summary.MatchedPairs++
			pair := matchedPair{top: records[i], bottom: records[j]}
			log.Info("Matched pair",
				logging.Field{Key: logging.FieldPair, Value: pair.top.record.SourceID + " + " + pair.bottom.record.SourceID})

			merged := matcher.Merge(records[i].record, records[j].record)

			// Archival success is the precondition for staging the row: a pair
			// that cannot be archived must not appear in the ledger.
			topName, bottomName, err := p.organizer.Archive(merged.Timestamp, pair.top.path, pair.bottom.path)
			if err != nil {
				log.WithError(err).Error("Failed to archive pair; not logged")
				summary.FileErrors++
				pairs = append(pairs, pair)
				break
			}
			pair.archived = true
			merged.SourceLabel = topName + ", " + bottomName

			switch writer.AppendIfNew(merged) {
			case ledger.Added:
				summary.Added++
			case ledger.Duplicate:
				summary.Duplicates++
			}

			pairs = append(pairs, pair)
			break
		}
	}

	for i := range records {
		if !claimed[i] {
			summary.Unmatched++
			log.Warn("Unmatched image left in intake",
				logging.Field{Key: logging.FieldImage, Value: records[i].path})
		}
	}
	return pairs
}
