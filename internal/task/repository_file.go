package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSON-backed storage. Single file, human-readable, rewritten whole on every mutation.
// Writes are not atomic: a reader in another process can observe a half-written file,
// which it treats as an empty collection.

const DataFileName = "tasks.json"

type FileRepo struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFileRepository stores tasks in dataDir/tasks.json. The directory is
// (re)created on every access, so removing it while running is tolerated.
func NewFileRepository(dataDir string, logger *slog.Logger) *FileRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepo{
		path:   filepath.Join(dataDir, DataFileName),
		logger: logger,
	}
}

func (r *FileRepo) Path() string { return r.path }

func (r *FileRepo) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func (r *FileRepo) load() (*document, error) {
	if err := r.ensureDir(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptyDocument(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := decodeDocument(b)
	if err != nil {
		r.logger.Warn("tasks file unreadable, using empty collection", "path", r.path, "error", err)
		return emptyDocument(), nil
	}
	return doc, nil
}

func (r *FileRepo) save(doc *document) error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	return writeFile(r.path, b)
}

// writeFile closes the handle on every path and syncs before reporting success.
func writeFile(path string, b []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
	}()
	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	return nil
}

func (r *FileRepo) Create(ctx context.Context, title, description string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	t := doc.create(title, description)
	if err := r.save(doc); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *FileRepo) List(ctx context.Context) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.list(), nil
}

func (r *FileRepo) GetByID(ctx context.Context, id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.get(id)
}

func (r *FileRepo) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	t, err := doc.update(id, p)
	if err != nil {
		return nil, err
	}
	if err := r.save(doc); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *FileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	if err := doc.remove(id); err != nil {
		return err
	}
	return r.save(doc)
}

// Clear removes the file; a missing file reads back as an empty document with nextId 1.
func (r *FileRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
