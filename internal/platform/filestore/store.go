package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/meetdocs/internal/config"
	"github.com/phrazzld/meetdocs/internal/domain"
)

const (
	defaultExtension = ".txt"
	dirPerm          = 0o755
	filePerm         = 0o644
)

// SavedFile describes one document written by Save.
type SavedFile struct {
	Key  string
	Path string
	Size int64
}

// Store writes documents into a directory.
type Store struct {
	logger    *slog.Logger
	extension string
}

// New creates a Store using the configured file extension.
func New(logger *slog.Logger, cfg config.OutputConfig) *Store {
	ext := cfg.Extension
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Store{logger: logger, extension: ext}
}

// Path returns the file a document with the given key is written to.
func (s *Store) Path(dir, key string) string {
	return filepath.Join(dir, key+s.extension)
}

// Save writes every successful document of rs into dir, creating dir when
// missing. For a failed document any file left by an earlier run under the
// same key is removed, so dir only ever holds this run's content. A failing
// file does not stop the
// others; all failures are returned joined, each as a *PersistenceError.
// When ctx ends, Save stops before the next file and files already written
// stay in place.
func (s *Store) Save(ctx context.Context, rs *domain.ResultSet, dir string) ([]SavedFile, error) {
	if rs == nil {
		return nil, errors.New("result set cannot be nil")
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, &PersistenceError{Key: "*", Path: dir, Err: fmt.Errorf("create output directory: %w", err)}
	}

	var (
		saved []SavedFile
		errs  []error
	)
	for key, doc := range rs.All() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("save cancelled: %w", err))
			break
		}

		if !doc.Succeeded() {
			if err := s.Remove(dir, key); err != nil {
				s.logger.ErrorContext(ctx, "failed to remove stale document",
					"key", key,
					"error", err)
				errs = append(errs, err)
				continue
			}
			s.logger.DebugContext(ctx, "skipped failed document", "key", key)
			continue
		}

		path := s.Path(dir, key)
		if err := s.Write(dir, key, doc.Content); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist document",
				"key", key,
				"path", path,
				"error", err)
			errs = append(errs, err)
			continue
		}

		saved = append(saved, SavedFile{Key: key, Path: path, Size: int64(len(doc.Content))})
		s.logger.DebugContext(ctx, "persisted document",
			"key", key,
			"path", path,
			"bytes", len(doc.Content))
	}

	return saved, errors.Join(errs...)
}

// Write atomically replaces the file for key in dir with content. dir must
// exist.
func (s *Store) Write(dir, key, content string) error {
	path := s.Path(dir, key)

	if !validKey(key) {
		return &PersistenceError{Key: key, Path: path, Err: ErrInvalidKey}
	}

	if err := writeAtomic(dir, path, []byte(content)); err != nil {
		return &PersistenceError{Key: key, Path: path, Err: err}
	}
	return nil
}

// Remove deletes the file for key in dir. A missing file is not an error.
func (s *Store) Remove(dir, key string) error {
	path := s.Path(dir, key)

	if !validKey(key) {
		return &PersistenceError{Key: key, Path: path, Err: ErrInvalidKey}
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Key: key, Path: path, Err: fmt.Errorf("remove stale file: %w", err)}
	}
	return nil
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// writeAtomic writes data via a temp file in the same directory and renames
// it over path.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
