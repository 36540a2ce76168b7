package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gdg-menorca/resort-assistant/internal/entity"
)

// MetadataFile persists the corpus metadata record as a flat JSON file.
// The file is rewritten wholesale on every save; a single operator process
// is assumed, so no locking is done.
type MetadataFile struct {
	path string
}

func NewMetadataFile(path string) *MetadataFile {
	return &MetadataFile{path: path}
}

// Load reads the metadata record. A missing or unreadable file returns an
// error; callers fall back to a default record.
func (s *MetadataFile) Load() (*entity.CorpusMetadata, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	var md entity.CorpusMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse metadata file: %w", err)
	}
	return &md, nil
}

// Save rewrites the metadata record.
func (s *MetadataFile) Save(md *entity.CorpusMetadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata file: %w", err)
	}
	return nil
}
