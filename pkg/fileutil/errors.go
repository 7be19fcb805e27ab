package fileutil

import (
	"fmt"

	"github.com/CrazyVinc/web-scraper/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError FileErrorCause = "path error"
	ErrCauseNotDir    FileErrorCause = "not a directory"
)

type FileError struct {
	Message string
	Path    string
	Cause   FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Message)
}

// Severity is always fatal; a log destination that cannot be created stops startup.
func (e *FileError) Severity() failure.Severity {
	return failure.SeverityFatal
}
