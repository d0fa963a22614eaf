// Package container provides dependency injection for the trip-audit
// application. It centralizes the creation and wiring of all collaborators,
// making them explicit and testable.
package container

import (
	"fmt"

	"trip-audit/internal/batch"
	"trip-audit/internal/config"
	"trip-audit/internal/fieldparser"
	"trip-audit/internal/ledger"
	"trip-audit/internal/logging"
	"trip-audit/internal/organizer"
	"trip-audit/internal/recognizer"
	"trip-audit/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters only.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	extractor recognizer.TextExtractor
	parser    *fieldparser.Parser
	store     ledger.Store
	organizer *organizer.Organizer
	processor *batch.Processor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	anchors, err := store.NewAnchorStore(cfg.Parser.AnchorsFile).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load anchor rules: %w", err)
	}
	if len(anchors) == 0 {
		logger.Warn("No address anchor rules configured; addresses will parse as unknown and no pairs can match")
	}

	ledgerStore, err := ledger.NewStore(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger store: %w", err)
	}

	extractor := recognizer.NewTesseractExtractor(cfg.OCR.Tesseract, cfg.OCR.Language)
	parser := fieldparser.New(anchors)
	org := organizer.New(cfg.Dirs.Archive, cfg.Dirs.Completed, logger)
	processor := batch.New(extractor, parser, ledgerStore, org, cfg.Dirs.Intake, logger)

	return &Container{
		logger:    logger,
		config:    cfg,
		extractor: extractor,
		parser:    parser,
		store:     ledgerStore,
		organizer: org,
		processor: processor,
	}, nil
}

// GetLogger returns the configured logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetLedgerStore returns the configured ledger store.
func (c *Container) GetLedgerStore() ledger.Store {
	return c.store
}
