package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
)

// Store persists record sets as indented JSON files, one file per set, in a
// single data directory. Every Save rewrites the whole file through a
// temporary name so readers never observe a partial write.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Load reads the full mapping for a record set. A missing set is created
// empty on disk so subsequent loads observe the same state.
func (s *Store) Load(ctx context.Context, set string) (map[string]json.RawMessage, error) {
	path := s.path(set)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		empty := map[string]json.RawMessage{}
		if err := s.Save(ctx, set, empty); err != nil {
			return nil, err
		}
		s.logger.Info("created empty record set", slog.String("set", set), slog.String("path", path))
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domainErrors.ErrStoreFailure, path, err)
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domainErrors.ErrCorruptState, path, err)
	}
	if records == nil {
		records = map[string]json.RawMessage{}
	}
	return records, nil
}

// Save overwrites the persisted record set with the given mapping.
func (s *Store) Save(_ context.Context, set string, records map[string]json.RawMessage) error {
	path := s.path(set)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domainErrors.ErrStoreFailure, set, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domainErrors.ErrStoreFailure, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", domainErrors.ErrStoreFailure, path, err)
	}
	return nil
}

func (s *Store) path(set string) string {
	return filepath.Join(s.dir, set+".json")
}
