package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Append(Record{Method: "commit", Target: "HEAD", Outcome: "success", DurationMs: 120}))
	require.NoError(t, s.Append(Record{Method: "partial", Target: "a.js", Outcome: "failure", Detail: "dirty tree"}))

	records, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	outcomes := map[string]bool{}
	for _, r := range records {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.CreatedAt)
		outcomes[r.Outcome] = true
	}
	assert.True(t, outcomes["success"])
	assert.True(t, outcomes["failure"])
}

func TestRecentLimit(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(Record{Method: "commit", Target: "HEAD", Outcome: "success"}))
	}
	records, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestDryRunRoundTrip(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Append(Record{Method: "branch", Target: "abc123..def456", DryRun: true, Outcome: "success"}))
	records, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].DryRun)
}

func TestEmptyStore(t *testing.T) {
	s := openStore(t)
	records, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(Record{Method: "commit", Target: "HEAD", Outcome: "success"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	records, err := s2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
