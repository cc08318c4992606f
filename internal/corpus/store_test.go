package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCorpus() *Corpus {
	return &Corpus{Chunks: []Chunk{
		{
			ID:        "c1",
			Text:      "How to return an order",
			Embedding: []float32{0.1, 0.2, 0.3},
			Metadata: Metadata{
				Source:     "faq/returns.md",
				Category:   "faq",
				Importance: 2,
			},
		},
	}}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "data", "corpus.json")
	mirror := filepath.Join(dir, "public", "corpus.json")
	store := NewFileStore(primary, mirror, nil)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleCorpus()))

	// Both copies exist and are byte-identical.
	primaryData, err := os.ReadFile(primary)
	require.NoError(t, err)
	mirrorData, err := os.ReadFile(mirror)
	require.NoError(t, err)
	assert.Equal(t, primaryData, mirrorData)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "faq/returns.md", loaded.Chunks[0].Metadata.Source)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, loaded.Chunks[0].Embedding)
}

func TestFileStore_LoadFallsBackToMirror(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "data", "corpus.json")
	mirror := filepath.Join(dir, "public", "corpus.json")
	store := NewFileStore(primary, mirror, nil)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleCorpus()))
	require.NoError(t, os.Remove(primary))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestFileStore_LoadMissingBoth(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"), nil)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorpusUnavailable))
}

func TestFileStore_MirrorFailureIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "corpus.json")

	// Point the mirror at a path whose parent is a regular file so the
	// mirror write cannot succeed.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	mirror := filepath.Join(blocker, "corpus.json")

	store := NewFileStore(primary, mirror, nil)
	err := store.Save(context.Background(), sampleCorpus())
	require.NoError(t, err, "mirror failure must not fail the save")

	_, err = os.Stat(primary)
	assert.NoError(t, err)
}

func TestFileStore_SaveReplacesWholesale(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "corpus.json")
	store := NewFileStore(primary, "", nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleCorpus()))
	require.NoError(t, store.Save(ctx, &Corpus{})) // next build wins

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, ErrCorpusUnavailable))

	require.NoError(t, store.Save(ctx, sampleCorpus()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}
