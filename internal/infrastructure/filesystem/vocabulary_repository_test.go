package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

func TestVocabularyRepository_LoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewVocabularyRepository(filepath.Join(t.TempDir(), "vocab.json"), zap.NewNop())

	entries, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestVocabularyRepository_LoadMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `[{"term": "σπίτι"`},
		{name: "not a list", content: `{"term": "σπίτι"}`},
		{name: "empty file", content: ""},
		{name: "entry without meaning", content: `[{"term": "σπίτι"}]`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "vocab.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewVocabularyRepository(path, zap.NewNop()).Load(context.Background())
			require.ErrorIs(t, err, vocabulary.ErrStorageRead)
		})
	}
}

func TestVocabularyRepository_SaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.json")
	repo := NewVocabularyRepository(path, zap.NewNop())
	entries := []vocabulary.Entry{
		{Term: "σπίτι", Meaning: "house, home", Category: vocabulary.CategoryNoun},
		{Term: "και", Meaning: "and"},
	}

	require.NoError(t, repo.Save(context.Background(), entries))
	require.NoError(t, repo.Save(context.Background(), entries[:1]))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries[:1], got)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "temporary files must not be left behind")
}

func TestVocabularyRepository_SaveFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", "vocab.json")

	err := NewVocabularyRepository(path, zap.NewNop()).Save(context.Background(), nil)
	require.ErrorIs(t, err, vocabulary.ErrStorageWrite)
}

func TestNewVocabularyRepository_DefaultPath(t *testing.T) {
	t.Parallel()

	repo := NewVocabularyRepository("", zap.NewNop()).(*vocabularyRepository)
	assert.Equal(t, DefaultPath, repo.path)
}
