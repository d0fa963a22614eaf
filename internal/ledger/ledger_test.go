package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-audit/internal/logging"
	"trip-audit/internal/models"
	"trip-audit/internal/parsererror"
)

func sampleRecord(t *testing.T) models.CanonicalTripRecord {
	t.Helper()

	ts := time.Date(2025, time.June, 3, 16, 41, 0, 0, time.UTC)
	earnings, err := decimal.NewFromString("12.49")
	require.NoError(t, err)
	fare, err := decimal.NewFromString("10.00")
	require.NoError(t, err)
	promo, err := decimal.NewFromString("2.50")
	require.NoError(t, err)
	dist, err := decimal.NewFromString("8.25")
	require.NoError(t, err)

	return models.CanonicalTripRecord{
		TripRecord: models.TripRecord{
			Timestamp:    models.Some(ts),
			TripType:     models.Some(models.TripTypeX),
			Earnings:     models.Some(earnings),
			Fare:         models.Some(fare),
			Promotion:    models.Some(promo),
			Tip:          models.Some(decimal.Zero),
			StartAddress: models.Some("Esprit Dr, Richardson, TX"),
			EndAddress:   models.Some("N Downwater St, Wichita, KS"),
			PointsEarned: models.Some(1),
			Duration:     models.Some(models.TripDuration{Minutes: 12, Seconds: 34}),
			Distance:     models.Some(models.TripDistance{Value: dist, Unit: models.UnitMiles}),
			Verified:     true,
		},
		SourceLabel: "6.3.2025 16-41-00-TOP.jpg, 6.3.2025 16-41-00-BOTTOM.jpg",
	}
}

func TestNewRowFormatting(t *testing.T) {
	row := NewRow(sampleRecord(t))

	assert.Equal(t, "06/03/2025 04:41 PM", row.DateTime)
	assert.Equal(t, "UberX", row.TripType)
	assert.Equal(t, "$12.49", row.Earnings)
	assert.Equal(t, "$10.00", row.Fare)
	assert.Equal(t, "$2.50", row.Promotion)
	assert.Equal(t, "$0.00", row.Tip)
	assert.Equal(t, "1", row.PointsEarned)
	assert.Equal(t, "754", row.DurationSecs)
	assert.Equal(t, "8.25", row.DistanceMi)
	assert.Equal(t, "TRUE", row.Verified)
	assert.Equal(t, "FALSE", row.Discrepancy)
}

func TestNewRowUnknownFields(t *testing.T) {
	row := NewRow(models.CanonicalTripRecord{})

	assert.Equal(t, models.UnknownCell, row.DateTime)
	assert.Equal(t, models.UnknownCell, row.StartAddress)
	assert.Equal(t, models.UnknownCell, row.EndAddress)
	assert.Empty(t, row.Earnings)
	assert.Empty(t, row.DurationSecs)
	assert.Equal(t, "FALSE", row.Verified)
}

func TestNewRowDropsKilometerDistance(t *testing.T) {
	rec := sampleRecord(t)
	rec.Distance = models.Some(models.TripDistance{
		Value: decimal.NewFromFloat(5.10),
		Unit:  models.UnitKilometers,
	})

	assert.Empty(t, NewRow(rec).DistanceMi)
}

// A persisted row must reconstruct the exact key of the record it came from,
// otherwise rerunning the pipeline would re-append every trip.
func TestRowKeyAgreesWithRecordKey(t *testing.T) {
	rec := sampleRecord(t)
	row := NewRow(rec)

	assert.Equal(t, rec.Key(), row.Key())
}

func TestNewStoreSelectsByExtension(t *testing.T) {
	xlsx, err := NewStore("ledger.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &XLSXStore{}, xlsx)

	csv, err := NewStore("ledger.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, csv)

	_, err = NewStore("ledger.txt")
	assert.Error(t, err)
}

func storeImplementations(t *testing.T) map[string]Store {
	dir := t.TempDir()
	return map[string]Store{
		"csv":  NewCSVStore(filepath.Join(dir, "trips.csv")),
		"xlsx": NewXLSXStore(filepath.Join(dir, "trips.xlsx")),
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			rows, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestStoreAppendAndLoad(t *testing.T) {
	first := NewRow(sampleRecord(t))

	second := first
	second.DateTime = "06/04/2025 09:15 AM"
	second.Earnings = "$7.80"

	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append([]Row{first}))

			rows, err := store.Load()
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, first, rows[0])

			// A second append lands after the existing rows.
			require.NoError(t, store.Append([]Row{second}))

			rows, err = store.Load()
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, first, rows[0])
			assert.Equal(t, second, rows[1])
		})
	}
}

func TestWriterSkipsPersistedDuplicates(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "trips.csv"))
	rec := sampleRecord(t)

	writer, err := NewWriter(store, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, Added, writer.AppendIfNew(rec))
	require.NoError(t, writer.Commit())

	// A fresh writer sees the persisted key.
	logger := &logging.MockLogger{}
	writer, err = NewWriter(store, logger)
	require.NoError(t, err)
	assert.Equal(t, Duplicate, writer.AppendIfNew(rec))
	assert.Zero(t, writer.Pending())
	assert.True(t, logger.HasEntry("INFO", "Skipped duplicate trip"))

	require.NoError(t, writer.Commit())
	rows, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriterSkipsStagedDuplicates(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "trips.csv"))
	rec := sampleRecord(t)

	writer, err := NewWriter(store, &logging.MockLogger{})
	require.NoError(t, err)

	assert.Equal(t, Added, writer.AppendIfNew(rec))
	assert.Equal(t, Duplicate, writer.AppendIfNew(rec))
	assert.Equal(t, 1, writer.Pending())

	require.NoError(t, writer.Commit())
	assert.Zero(t, writer.Pending())

	rows, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type failingStore struct {
	path string
}

func (s *failingStore) Path() string         { return s.path }
func (s *failingStore) Load() ([]Row, error) { return nil, nil }
func (s *failingStore) Append([]Row) error   { return errors.New("disk full") }

func TestWriterCommitFailureKeepsRowsStaged(t *testing.T) {
	writer, err := NewWriter(&failingStore{path: "trips.xlsx"}, &logging.MockLogger{})
	require.NoError(t, err)

	writer.AppendIfNew(sampleRecord(t))

	err = writer.Commit()
	require.Error(t, err)

	var ledgerErr *parsererror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, "trips.xlsx", ledgerErr.LedgerPath)
	assert.Equal(t, "append", ledgerErr.Op)
	assert.Equal(t, 1, writer.Pending())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "duplicate", Duplicate.String())
}
