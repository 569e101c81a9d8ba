package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminSRussell/ziphound/internal/types"
)

func TestTargetsRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	targets := []string{
		"https://x/files/a.zip",
		"https://x/files/sub/b.zip",
	}
	require.NoError(t, s.SaveTargets(targets))

	got, err := s.LoadTargets()
	require.NoError(t, err)
	assert.Equal(t, targets, got)
}

func TestSaveTargetsReplacesPrevious(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveTargets([]string{"https://x/files/old.zip"}))
	require.NoError(t, s.SaveTargets([]string{"https://x/files/new.zip"}))

	got, err := s.LoadTargets()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x/files/new.zip"}, got)
}

func TestPageLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	records := []types.PageRecord{
		{URL: "https://x/files/", StatusCode: 200, LinkCount: 3, Targets: 1, FetchedAt: time.Now().UTC()},
		{URL: "https://x/files/sub/", StatusCode: 200, LinkCount: 2, Targets: 1, FetchedAt: time.Now().UTC()},
		{URL: "https://x/files/gone/", StatusCode: 404, FetchedAt: time.Now().UTC(), Error: "fetch https://x/files/gone/: unexpected status 404"},
	}
	for _, r := range records {
		require.NoError(t, s.SavePage(r))
	}
	require.NoError(t, s.Close())

	s2, err := New(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.LoadPages()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://x/files/", got[0].URL)
	assert.Equal(t, 404, got[2].StatusCode)
	assert.NotEmpty(t, got[2].Error)
}

func TestLoadPagesSkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.SavePage(types.PageRecord{URL: "https://x/files/", StatusCode: 200}))
	require.NoError(t, s.Close())

	f, err := os.OpenFile(filepath.Join(dir, pagesFile), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json at all\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s2, err := New(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.LoadPages()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://x/files/", got[0].URL)
}

func TestLoadPagesMissingLogIsEmpty(t *testing.T) {
	s := &Storage{dataDir: t.TempDir()}

	got, err := s.LoadPages()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTargetsMissingFileErrors(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LoadTargets()
	assert.Error(t, err)
}
