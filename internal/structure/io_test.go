package structure_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topiccrawl/topiccrawl/internal/structure"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "structure.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := structure.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, structure.ErrInputNotFound))
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, `[{"name": "Boards",`)

	_, err := structure.Load(path)
	require.Error(t, err)

	var parseErr *structure.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, `[
        {
            "name": "Boards",
            "sub_topics": [],
            "url": "https://example.com/boards",
            "color": "red"
        }
    ]`)

	_, err := structure.Load(path)
	require.Error(t, err)

	var parseErr *structure.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{"empty root array", `[]`},
		{"missing url", `[{"name": "Boards", "sub_topics": []}]`},
		{"missing sub_topics", `[{"name": "Boards", "url": "https://example.com/boards"}]`},
		{"empty breadcrumbs", `[{"name": "Boards", "sub_topics": [], "breadcrumbs": [], "url": "https://example.com/boards"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFixture(t, tt.contents)
			_, err := structure.Load(path)
			require.Error(t, err)

			var parseErr *structure.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.True(t, errors.Is(err, structure.ErrSchema))
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := structure.Structure{
		{
			Name: "Boards",
			SubTopics: []structure.Topic{
				{
					Name:        "Compute Modules",
					SubTopics:   []structure.Topic{},
					Breadcrumbs: []string{"Catalog", "Boards"},
					URL:         "https://example.com/boards/compute",
				},
			},
			Breadcrumbs: []string{"Catalog"},
			URL:         "https://example.com/boards",
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "structure.json")
	require.NoError(t, structure.Save(path, s))

	loaded, err := structure.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "structure.json")
	require.NoError(t, structure.Save(path, structure.Structure{validTopic()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "structure.json", entries[0].Name())
}
