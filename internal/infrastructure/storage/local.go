package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

// LocalStorage keeps uploads on the local disk under root, one directory
// per module. Stored names are random so clients cannot choose paths.
type LocalStorage struct {
	root     string
	maxBytes int64
	logger   logger.Interface
}

func NewLocalStorage(root string, maxUploadMB int, log logger.Interface) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{
		root:     abs,
		maxBytes: int64(maxUploadMB) << 20,
		logger:   log,
	}, nil
}

var _ file.Storage = (*LocalStorage)(nil)

func (s *LocalStorage) Save(ctx context.Context, module file.ModuleName, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	dir := filepath.Join(s.root, string(module))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create module dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	rel := filepath.ToSlash(filepath.Join(string(module), name))
	full := filepath.Join(dir, name)

	out, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, copyErr := io.Copy(out, src)
	closeErr := out.Close()

	if copyErr == nil && s.maxBytes > 0 && n > s.maxBytes {
		copyErr = errors.NewValidationError(fmt.Sprintf("File exceeds the %d MB upload limit", s.maxBytes>>20))
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(full)
		if errors.IsAppError(copyErr) {
			return "", 0, copyErr
		}
		return "", 0, fmt.Errorf("write file: %w", copyErr)
	}

	s.logger.Infow("file stored", "path", rel, "size", n)
	return rel, n, nil
}

func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("File not found on disk")
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// Remove ignores files that are already gone.
func (s *LocalStorage) Remove(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// resolve rejects paths that would escape the storage root.
func (s *LocalStorage) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", errors.NewBadRequestError("invalid file path")
	}
	return full, nil
}
