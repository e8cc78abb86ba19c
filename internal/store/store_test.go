package store

import (
	"path/filepath"
	"testing"
	"time"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	first := Lookup{
		RecordedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Source:     "countries",
		Term:       "verde",
		Matches:    1,
		Output:     "/tmp/countries-verde.csv",
	}
	second := Lookup{
		RecordedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		Source:     "countries",
		Term:       "xyz-no-match",
		Matches:    0,
	}
	require.NoError(t, s.Record(first))
	require.NoError(t, s.Record(second))

	lookups, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, lookups, 2)

	// Newest first.
	assert.Equal(t, "xyz-no-match", lookups[0].Term)
	assert.Equal(t, 0, lookups[0].Matches)
	assert.Empty(t, lookups[0].Output)
	assert.True(t, lookups[0].RecordedAt.Equal(second.RecordedAt))

	assert.Equal(t, "verde", lookups[1].Term)
	assert.Equal(t, 1, lookups[1].Matches)
	assert.Equal(t, first.Output, lookups[1].Output)
	assert.True(t, lookups[1].RecordedAt.Equal(first.RecordedAt))
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(Lookup{Source: "countries", Term: "angola", Matches: 1}))
	}

	lookups, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, lookups, 3)
}

func TestRecordFillsTimestamp(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Record(Lookup{Source: "countries", Term: "angola", Matches: 1}))

	lookups, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, lookups, 1)
	assert.False(t, lookups[0].RecordedAt.IsZero())
}

func TestOpenAtCreatesMissingParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.db")
	s, err := OpenAt(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(Lookup{Source: "countries", Term: "angola", Matches: 1}))
	lookups, err := s.Recent(1)
	require.NoError(t, err)
	assert.Len(t, lookups, 1)
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	lookups, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, lookups)
}
