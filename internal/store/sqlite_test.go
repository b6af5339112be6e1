package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestGetSeedsMissingKey(t *testing.T) {
	s := newTestStore(t)

	var got int
	err := s.Get(KeyVisitors, 1025, &got)
	require.NoError(t, err)
	require.Equal(t, 1025, got)

	// A second read must return the persisted value, not re-seed.
	var again int
	err = s.Get(KeyVisitors, 9999, &again)
	require.NoError(t, err)
	require.Equal(t, 1025, again)
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(KeyVisitors, 7))
	require.NoError(t, s.Set(KeyVisitors, 8))

	var got int
	require.NoError(t, s.Get(KeyVisitors, 0, &got))
	require.Equal(t, 8, got)
}

func TestStructuredValuesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	type record struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}

	seed := []record{{ID: "1", Tags: []string{"go", "sqlite"}}}

	var got []record
	require.NoError(t, s.Get(KeyProjects, seed, &got))
	require.Equal(t, seed, got)

	updated := append([]record{{ID: "2"}}, got...)
	require.NoError(t, s.Set(KeyProjects, updated))

	var after []record
	require.NoError(t, s.Get(KeyProjects, nil, &after))
	require.Len(t, after, 2)
	require.Equal(t, "2", after[0].ID)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyVisitors, 1337))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got int
	require.NoError(t, reopened.Get(KeyVisitors, 0, &got))
	require.Equal(t, 1337, got)
}
