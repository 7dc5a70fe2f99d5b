// Package snapshot stores rendered chart images with a JSON metadata
// sidecar, one pair per export.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get for an unknown ID.
	ErrNotFound = errors.New("snapshot not found")
	// ErrIncomplete means the sidecar exists but its image is missing or
	// does not match the recorded size.
	ErrIncomplete = errors.New("snapshot incomplete")
)

// Meta describes one exported chart image.
type Meta struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Format     string    `json:"format"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	PixelRatio float64   `json:"pixel_ratio"`
	Candles    int       `json:"candles"`
	First      string    `json:"first,omitempty"`
	Last       string    `json:"last,omitempty"`
	SizeBytes  int       `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMeta returns metadata with a fresh ID and creation time.
func NewMeta(source string) Meta {
	return Meta{
		ID:        uuid.NewString(),
		Source:    source,
		Format:    "png",
		CreatedAt: time.Now().UTC(),
	}
}

// Store manages snapshot files in a directory.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store and ensures the directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot store: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Store) Dir() string { return s.dir }

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid snapshot id: %q", id)
	}
	return nil
}

// Save writes the image and its metadata. SizeBytes is filled in from
// image. A failed metadata write removes the image again.
func (s *Store) Save(meta Meta, image []byte) (Meta, error) {
	if err := validateID(meta.ID); err != nil {
		return Meta{}, err
	}
	meta.SizeBytes = len(image)

	s.mu.Lock()
	defer s.mu.Unlock()

	imgPath := filepath.Join(s.dir, meta.ID+"."+meta.Format)
	jsonPath := filepath.Join(s.dir, meta.ID+".json")

	if err := os.WriteFile(imgPath, image, 0o644); err != nil {
		return Meta{}, fmt.Errorf("snapshot store: write image: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		_ = os.Remove(imgPath)
		return Meta{}, fmt.Errorf("snapshot store: marshal meta: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		_ = os.Remove(imgPath)
		return Meta{}, fmt.Errorf("snapshot store: write meta: %w", err)
	}
	return meta, nil
}

// Get reads an export back by ID. The sidecar must parse and its image must
// exist with the recorded size, so a caller can trust the pair on disk.
func (s *Store) Get(id string) (Meta, error) {
	if err := validateID(id); err != nil {
		return Meta{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return Meta{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Meta{}, fmt.Errorf("snapshot store: read meta: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("snapshot store: unmarshal meta: %w", err)
	}

	fi, err := os.Stat(filepath.Join(s.dir, id+"."+meta.Format))
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %s: %w", ErrIncomplete, id, err)
	}
	if fi.Size() != int64(meta.SizeBytes) {
		return Meta{}, fmt.Errorf("%w: %s: image is %d bytes, meta says %d", ErrIncomplete, id, fi.Size(), meta.SizeBytes)
	}
	return meta, nil
}

// List returns all snapshots, newest first. Unreadable sidecars are skipped.
func (s *Store) List() ([]Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("snapshot store: glob: %w", err)
	}

	metas := make([]Meta, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var meta Meta
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		metas = append(metas, meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas, nil
}
