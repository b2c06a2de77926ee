package fsxlocal

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/fsx"
)

// LocalFileSystem implementa fsx.FileSystem sobre un directorio local.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem crea el directorio base si no existe.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errx.Wrap(err, "failed to create base directory", errx.TypeInternal).
			WithDetail("path", basePath)
	}
	return &LocalFileSystem{basePath: basePath}, nil
}

func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

// resolve keeps paths inside basePath.
func (l *LocalFileSystem) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(clean, "..") {
		return "", errx.New("invalid path", errx.TypeValidation).WithDetail("path", path)
	}
	return filepath.Join(l.basePath, clean), nil
}

func (l *LocalFileSystem) Write(ctx context.Context, path string, data []byte, contentType string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrWriteFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrWriteFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return nil
}

func (l *LocalFileSystem) Read(ctx context.Context, path string) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", path)
		}
		return nil, fsx.ErrReadFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return data, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fsx.ErrReadFailed().WithDetail("path", path).WithDetail("error", err.Error())
	}
	return true, nil
}

func (l *LocalFileSystem) Delete(ctx context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fsx.ErrFileNotFound().WithDetail("path", path)
		}
		return errx.Wrap(err, "failed to delete file", errx.TypeInternal).WithDetail("path", path)
	}
	return nil
}
