// Package fileutil validates audio inputs before the pipeline runs.
// Its errors are safe to surface verbatim to the user.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
)

// ValidateAudioFile checks existence, size, and extension. maxSize is
// in bytes; formats are lowercase extensions including the dot.
func ValidateAudioFile(path string, maxSize int64, formats []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("audio file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("not an audio file: %s", path)
	}
	if info.Size() > maxSize {
		return fmt.Errorf("audio file exceeds maximum size of %d bytes", maxSize)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if ext == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported audio format %q, supported: %s", ext, strings.Join(formats, ", "))
}

// CleanupTempFile removes a temporary file, logging rather than
// failing when it cannot.
func CleanupTempFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.New().WithError(err).WithField("path", path).Warn("failed to cleanup temp file")
	}
}
