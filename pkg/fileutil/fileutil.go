package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CrazyVinc/web-scraper/pkg/failure"
)

// EnsureParentDir creates the directory that will hold path, if it is missing.
func EnsureParentDir(path string) failure.ClassifiedError {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}

// EnsureDir joins dir with the optional path segments and creates the result.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	target := filepath.Join(append([]string{dir}, path...)...)

	info, err := os.Stat(target)
	if err == nil {
		if !info.IsDir() {
			return &FileError{
				Message: fmt.Sprintf("%s exists and is not a directory", target),
				Path:    target,
				Cause:   ErrCauseNotDir,
			}
		}
		return nil
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return &FileError{
			Message: err.Error(),
			Path:    target,
			Cause:   ErrCausePathError,
		}
	}
	return nil
}
