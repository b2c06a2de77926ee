package fsx

import (
	"context"
	"net/http"

	"github.com/nexhire/nexhire/pkg/errx"
)

// FileSystem abstrae el almacenamiento de archivos (local o S3).
type FileSystem interface {
	Write(ctx context.Context, path string, data []byte, contentType string) error
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeFileNotFound = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeWriteFailed  = ErrRegistry.Register("WRITE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to write file")
	CodeReadFailed   = ErrRegistry.Register("READ_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to read file")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrWriteFailed() *errx.Error {
	return ErrRegistry.New(CodeWriteFailed)
}

func ErrReadFailed() *errx.Error {
	return ErrRegistry.New(CodeReadFailed)
}
