package structure

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// jsonIndent matches the artifact formatting of the extractor output.
const jsonIndent = "    "

// Load reads and validates a topic structure from path. A missing or
// unreadable file yields ErrInputNotFound; malformed JSON, unknown fields,
// and schema violations yield a *ParseError.
func Load(path string) (Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	defer f.Close()

	var s Structure
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if decodeErr := dec.Decode(&s); decodeErr != nil {
		return nil, &ParseError{Path: path, Err: decodeErr}
	}

	if validateErr := s.Validate(); validateErr != nil {
		return nil, &ParseError{Path: path, Err: validateErr}
	}

	return s, nil
}

// Save writes the structure to path as indented JSON. Parent directories are
// created. The write is atomic: the structure is written to a temporary file
// in the target directory and renamed into place, so a failed run never
// leaves a partial artifact at path.
func Save(path string, s Structure) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to encode structure: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".structure-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write structure: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write structure: %w", closeErr)
	}

	if renameErr := os.Rename(tmpName, path); renameErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize structure at %s: %w", path, renameErr)
	}

	return nil
}
