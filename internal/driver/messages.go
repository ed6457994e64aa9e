package driver

import (
	"os"
	"strings"

	"drip/internal/errors"
)

// DefaultMessages is the built-in commit message pool, used when no seed
// file is configured or the configured file contains no usable lines.
var DefaultMessages = []string{
	"Daily activity checkpoint",
	"Quick sync",
	"Touch base",
	"Health check",
	"Meta tweak",
	"Automation heartbeat",
	"Status refresh",
	"Keep-alive note",
}

// LoadMessages reads one message fragment per line from path, skipping
// blanks. An empty path or an empty file yields the default pool; a file
// that cannot be read is a configuration error.
func LoadMessages(path string) ([]string, error) {
	if path == "" {
		return DefaultMessages, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("message-seed-file", path, err.Error())
	}
	var messages []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			messages = append(messages, line)
		}
	}
	if len(messages) == 0 {
		return DefaultMessages, nil
	}
	return messages, nil
}
