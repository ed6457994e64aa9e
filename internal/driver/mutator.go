package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogAppender appends lines to the activity log inside the repository.
// The file is append-only and never read back.
type LogAppender struct {
	path string
}

// NewLogAppender resolves the target file relative to the repository root.
func NewLogAppender(repoPath, targetFile string) *LogAppender {
	path := targetFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(repoPath, targetFile)
	}
	return &LogAppender{path: path}
}

// Append writes one line, creating parent directories on first use.
func (a *LogAppender) Append(line string) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", a.path, err)
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to %s: %w", a.path, err)
	}
	return nil
}
