package authstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileSaver struct{ payload string }

func (f *fileSaver) SaveStorageState(path string) error {
	return os.WriteFile(path, []byte(f.payload), 0o644)
}

func TestHost(t *testing.T) {
	tests := []struct {
		rawURL   string
		expected string
	}{
		{"https://Boards.Greenhouse.io/acme/jobs/1", "boards.greenhouse.io"},
		{"https://acme.wd5.myworkdayjobs.com/careers", "acme.wd5.myworkdayjobs.com"},
		{"not a url at all ://", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.rawURL, func(t *testing.T) {
			assert.Equal(t, tt.expected, Host(tt.rawURL))
		})
	}
}

func TestPathForIsPerHost(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	a := store.PathFor("https://jobs.lever.co/acme/1")
	b := store.PathFor("https://jobs.lever.co/other/2")
	c := store.PathFor("https://boards.greenhouse.io/acme")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "jobs.lever.co.json", filepath.Base(a))
}

func TestSeedPathMissingSnapshot(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.SeedPath("https://jobs.lever.co/acme/1"))
}

func TestSeedPathRejectsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	path := store.PathFor("https://jobs.lever.co/acme/1")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Empty(t, store.SeedPath("https://jobs.lever.co/acme/1"))
}

func TestSaveThenSeedRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	url := "https://boards.greenhouse.io/acme/jobs/1"
	require.NoError(t, store.Save(&fileSaver{payload: `{"cookies":[]}`}, url))

	assert.Equal(t, store.PathFor(url), store.SeedPath(url))
}

func TestSaveOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	url := "https://boards.greenhouse.io/acme/jobs/1"
	require.NoError(t, store.Save(&fileSaver{payload: `{"v":1}`}, url))
	require.NoError(t, store.Save(&fileSaver{payload: `{"v":2}`}, url))

	data, err := os.ReadFile(store.PathFor(url))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data))
}

func TestSaveRejectsHostlessURL(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Save(&fileSaver{}, "not a url ://"))
}
