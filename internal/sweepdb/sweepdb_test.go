package sweepdb

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sweep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndReadBack(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	samples := []Sample{
		{Theta: 1e-8, ExpErr: 1e-16, RoundtripErr: 2e-16},
		{Theta: 1e-4, ExpErr: 3e-15, RoundtripErr: 1e-15},
		{Theta: 1e-1, ExpErr: 5e-14, RoundtripErr: 8e-15},
	}

	run := &Run{Dim: 3}
	runID, err := db.InsertRun(run, samples)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Equal(t, 3, run.Samples)
	assert.Equal(t, 5e-14, run.MaxExpErr)
	assert.Equal(t, 2e-16, run.MaxRoundtripErr)

	got, err := db.Samples(runID)
	require.NoError(t, err)
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestLatestRun(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	first, err := db.InsertRun(&Run{Dim: 2}, []Sample{{Theta: 1, ExpErr: 1, RoundtripErr: 1}})
	require.NoError(t, err)
	second, err := db.InsertRun(&Run{Dim: 3}, []Sample{{Theta: 2, ExpErr: 2, RoundtripErr: 2}})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	latest, err := db.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, second, latest.RunID)
	assert.Equal(t, 3, latest.Dim)
}

func TestLatestRunEmpty(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	_, err := db.LatestRun()
	assert.Error(t, err, "no runs recorded yet")
}

func TestSamplesOrderedByTheta(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	samples := []Sample{
		{Theta: 0.5, ExpErr: 1, RoundtripErr: 1},
		{Theta: 0.01, ExpErr: 1, RoundtripErr: 1},
		{Theta: 0.1, ExpErr: 1, RoundtripErr: 1},
	}
	runID, err := db.InsertRun(&Run{Dim: 3}, samples)
	require.NoError(t, err)

	got, err := db.Samples(runID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Theta < got[1].Theta && got[1].Theta < got[2].Theta)
}

func TestPreservesExistingRunID(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	runID, err := db.InsertRun(&Run{RunID: "fixed-id", Dim: 3}, []Sample{{Theta: 1}})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", runID)
}
