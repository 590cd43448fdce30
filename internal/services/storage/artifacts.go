package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"drowsyguard/internal/logger"
)

// ArtifactStore persists annotated output images under a single directory.
// Names are keyed by content hash so re-uploads of the same frame overwrite
// in place instead of accumulating.
type ArtifactStore struct {
	dir    string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewArtifactStore creates the store and ensures its directory exists.
func NewArtifactStore(dir string, logger *logger.Logger) (*ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &ArtifactStore{dir: dir, logger: logger}, nil
}

// Save writes an annotated image derived from the named upload and returns
// the stored file name.
func (s *ArtifactStore) Save(originalName string, data []byte) (string, error) {
	base := filepath.Base(originalName)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image.jpg"
	}
	if filepath.Ext(base) == "" {
		base += ".jpg"
	}

	sum := sha1.Sum(data)
	name := fmt.Sprintf("output_%s_%s", hex.EncodeToString(sum[:])[:10], base)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		s.logger.Error("Error saving artifact %s: %v", name, err)
		return "", err
	}

	return name, nil
}

// Path validates an artifact name and returns its on-disk path.
func (s *ArtifactStore) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("invalid artifact name: %q", name)
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %w", err)
	}
	return path, nil
}

// ValidName rejects empty names, path separators, traversal sequences and
// control bytes.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	for _, c := range name {
		if c < 0x20 {
			return false
		}
	}
	return true
}
