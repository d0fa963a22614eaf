// Package organizer relocates a matched pair's images into the date-organized
// archive and the completed holding area.
package organizer

import (
	"fmt"
	"path/filepath"
	"time"

	"trip-audit/internal/fileutils"
	"trip-audit/internal/logging"
	"trip-audit/internal/models"
	"trip-audit/internal/parsererror"
)

// Role distinguishes the two screenshots of one trip.
type Role string

const (
	RoleTop    Role = "TOP"
	RoleBottom Role = "BOTTOM"
)

// unknownDateBucket is the archive subdirectory for pairs whose timestamp
// could not be resolved from either screenshot.
const unknownDateBucket = "UnknownDate"

// Organizer computes archive destinations and performs the copy/move
// sequence for matched pairs. Unmatched images are never touched.
type Organizer struct {
	archiveDir   string
	completedDir string
	logger       logging.Logger
}

// New creates an Organizer writing under the given archive and completed
// directories.
func New(archiveDir, completedDir string, logger logging.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Organizer{archiveDir: archiveDir, completedDir: completedDir, logger: logger}
}

// DestName computes the archived filename for one screenshot: the trip's
// date and 24-hour time plus the role suffix, keeping the source extension.
// Pairs without a resolved timestamp get an "UnknownDate UnknownTime" stem.
func DestName(ts models.Opt[time.Time], role Role, sourceName string) string {
	ext := filepath.Ext(sourceName)
	if !ts.Known {
		return fmt.Sprintf("UnknownDate UnknownTime-%s%s", role, ext)
	}
	t := ts.Value
	return fmt.Sprintf("%d.%d.%d %s-%s%s",
		t.Month(), t.Day(), t.Year(), t.Format("15-04-05"), role, ext)
}

// archiveSubdir computes the date-keyed directory a pair archives into:
// <year>/<monthNumber> - <MonthName>/<day>, or the unknown-date bucket.
func (o *Organizer) archiveSubdir(ts models.Opt[time.Time]) string {
	if !ts.Known {
		return filepath.Join(o.archiveDir, unknownDateBucket)
	}
	t := ts.Value
	return filepath.Join(
		o.archiveDir,
		fmt.Sprintf("%d", t.Year()),
		fmt.Sprintf("%d - %s", t.Month(), t.Month().String()),
		fmt.Sprintf("%02d", t.Day()),
	)
}

// Archive copies both originals into the date-keyed archive directory under
// their destination names, returning those names for the record's source
// label. The originals stay in place; Complete moves them afterwards.
func (o *Organizer) Archive(ts models.Opt[time.Time], topSrc, bottomSrc string) (string, string, error) {
	dir := o.archiveSubdir(ts)
	topName := DestName(ts, RoleTop, topSrc)
	bottomName := DestName(ts, RoleBottom, bottomSrc)

	pairs := []struct{ src, name string }{{topSrc, topName}, {bottomSrc, bottomName}}
	for _, p := range pairs {
		dst := filepath.Join(dir, p.name)
		if err := fileutils.CopyFile(p.src, dst); err != nil {
			return "", "", &parsererror.FileOpError{Op: "archive copy", Path: p.src, Err: err}
		}
		o.logger.Debug("Archived screenshot",
			logging.Field{Key: logging.FieldImage, Value: p.src},
			logging.Field{Key: logging.FieldDestination, Value: dst})
	}
	return topName, bottomName, nil
}

// Complete moves both originals out of the intake location into the flat
// completed holding area.
func (o *Organizer) Complete(topSrc, bottomSrc string) error {
	for _, src := range []string{topSrc, bottomSrc} {
		dst := filepath.Join(o.completedDir, filepath.Base(src))
		if err := fileutils.MoveFile(src, dst); err != nil {
			return &parsererror.FileOpError{Op: "move to completed", Path: src, Err: err}
		}
		o.logger.Debug("Moved processed screenshot",
			logging.Field{Key: logging.FieldImage, Value: src},
			logging.Field{Key: logging.FieldDestination, Value: dst})
	}
	return nil
}
