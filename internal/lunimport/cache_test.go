package lunimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	source := "poneleque x = 1"
	path := writeSource(t, dir, "foo.lunf", source)

	tokens, lexErr := lunlex.Scan(path, source)
	require.Nil(t, lexErr)

	require.NoError(t, Store(path, []byte(source), tokens))

	loaded, ok := Load(path, []byte(source), path)
	require.True(t, ok)
	require.Len(t, loaded, len(tokens))

	for i := range tokens {
		assert.Equal(t, tokens[i].Kind, loaded[i].Kind)
		assert.Equal(t, tokens[i].Value, loaded[i].Value)
		assert.Equal(t, tokens[i].PosStart.Idx, loaded[i].PosStart.Idx)
		assert.Equal(t, tokens[i].PosEnd.Idx, loaded[i].PosEnd.Idx)
	}
}

func TestLoadMissesOnStaleHash(t *testing.T) {
	dir := t.TempDir()
	original := "poneleque x = 1"
	path := writeSource(t, dir, "foo.lunf", original)

	tokens, lexErr := lunlex.Scan(path, original)
	require.Nil(t, lexErr)
	require.NoError(t, Store(path, []byte(original), tokens))

	edited := "poneleque x = 2"
	_, ok := Load(path, []byte(edited), path)
	assert.False(t, ok)
}

func TestLoadMissesWithoutCacheFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bar.lunf")
	_, ok := Load(path, []byte("nada"), path)
	assert.False(t, ok)
}
