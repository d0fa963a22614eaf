package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("started", Field{Key: FieldDir, Value: "to_sort"})
	mock.Warn("unreadable")
	mock.Error("failed")

	require.Len(t, mock.Entries, 3)
	assert.True(t, mock.HasEntry("INFO", "started"))
	assert.True(t, mock.HasEntry("WARN", "unreadable"))
	assert.False(t, mock.HasEntry("INFO", "failed"))

	infos := mock.GetEntriesByLevel("INFO")
	require.Len(t, infos, 1)
	require.Len(t, infos[0].Fields, 1)
	assert.Equal(t, FieldDir, infos[0].Fields[0].Key)
}

// Derived loggers record into the root, so assertions on the root mock see
// everything logged anywhere in a component under test.
func TestMockLoggerDerivedLoggersShareEntries(t *testing.T) {
	mock := &MockLogger{}
	boom := errors.New("boom")

	mock.WithField(FieldRunID, "r1").Info("run started")
	mock.WithError(boom).Error("run failed")
	mock.WithField(FieldRunID, "r1").WithField(FieldImage, "a.jpg").Debug("scanning")

	require.Len(t, mock.Entries, 3)
	assert.True(t, mock.HasEntry("INFO", "run started"))
	assert.True(t, mock.HasEntry("ERROR", "run failed"))

	errs := mock.GetEntriesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Equal(t, boom, errs[0].Error)

	debugs := mock.GetEntriesByLevel("DEBUG")
	require.Len(t, debugs, 1)
	assert.Len(t, debugs[0].Fields, 2)
}

func TestNewLogrusAdapterInvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("nonsense", "text")
	require.NotNil(t, logger)

	// Usable after the fallback; must not panic.
	logger.Info("hello", Field{Key: FieldCount, Value: 1})
	logger.WithField(FieldLedger, "trips.xlsx").Debug("quiet")
}
