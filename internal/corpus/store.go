package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store loads and saves the corpus snapshot. The builder is the only
// writer; the retrieval service only reads.
type Store interface {
	Load(ctx context.Context) (*Corpus, error)
	Save(ctx context.Context, c *Corpus) error
}

// FileStore persists the corpus as a single JSON snapshot at a primary
// path, mirrored to a public-readable path so the storefront's client-side
// fallback can fetch the same bytes. The mirror write is best-effort.
type FileStore struct {
	primaryPath string
	mirrorPath  string // empty disables mirroring
	logger      *slog.Logger
}

// NewFileStore creates a file-backed snapshot store. mirrorPath may be
// empty to disable the public mirror.
func NewFileStore(primaryPath, mirrorPath string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		primaryPath: primaryPath,
		mirrorPath:  mirrorPath,
		logger:      logger,
	}
}

// Load reads the snapshot from the primary path, falling back to the
// mirror. Returns ErrCorpusUnavailable when neither location is readable.
func (s *FileStore) Load(ctx context.Context) (*Corpus, error) {
	paths := []string{s.primaryPath}
	if s.mirrorPath != "" {
		paths = append(paths, s.mirrorPath)
	}

	var lastErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		var c Corpus
		if err := json.Unmarshal(data, &c); err != nil {
			s.logger.Warn("corrupt corpus snapshot", "path", path, "error", err)
			lastErr = err
			continue
		}
		return &c, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, lastErr)
}

// Save writes the snapshot atomically to the primary path, then copies it
// to the mirror. A mirror failure is logged and does not fail the save.
func (s *FileStore) Save(ctx context.Context, c *Corpus) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	if err := writeAtomic(s.primaryPath, data); err != nil {
		return fmt.Errorf("write primary snapshot: %w", err)
	}

	if s.mirrorPath != "" {
		if err := writeAtomic(s.mirrorPath, data); err != nil {
			s.logger.Warn("mirror snapshot write failed", "path", s.mirrorPath, "error", err)
		}
	}

	return nil
}

// ModTime returns the primary snapshot's last modification time.
func (s *FileStore) ModTime() (time.Time, error) {
	info, err := os.Stat(s.primaryPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	return info.ModTime(), nil
}

// writeAtomic writes data to a temp file in the target directory and
// renames it over path, so concurrent readers never observe a partial
// snapshot.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	corpus *Corpus
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the saved corpus, or ErrCorpusUnavailable if nothing has
// been saved yet.
func (s *MemoryStore) Load(ctx context.Context) (*Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.corpus == nil {
		return nil, ErrCorpusUnavailable
	}
	return s.corpus, nil
}

// Save replaces the stored corpus wholesale.
func (s *MemoryStore) Save(ctx context.Context, c *Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = c
	return nil
}
