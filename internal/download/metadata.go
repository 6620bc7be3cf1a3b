package download

import (
	"path/filepath"

	"github.com/topiccrawl/topiccrawl/internal/output"
)

// defaultLanguage is recorded on every metadata entry.
const defaultLanguage = "english"

// DefaultManifestName is the default per-folder manifest filename.
const DefaultManifestName = "metadata.json"

// Metadata describes one downloaded asset.
type Metadata struct {
	Name        string `json:"name"`
	FilePath    string `json:"file_path"`
	Version     string `json:"version,omitempty"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Language    string `json:"language"`
	Description string `json:"description,omitempty"`
}

// SaveManifest writes the metadata list of an asset folder. An empty list
// writes an empty JSON array, which marks the folder as processed.
func SaveManifest(folder string, entries []Metadata, filename string) error {
	if filename == "" {
		filename = DefaultManifestName
	}
	if entries == nil {
		entries = []Metadata{}
	}
	return output.WriteJSON(filepath.Join(folder, filename), entries)
}
