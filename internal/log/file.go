package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LogFileName is the name of the log file written by RedirectToDir.
const LogFileName = "gitref.log"

// RedirectToDir appends the output of all loggers to LogFileName in dir.
// The returned closer restores stderr and closes the file.
func RedirectToDir(dir string) (io.Closer, error) {
	logFile, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	for _, l := range Loggers {
		l.SetOutput(logFile)
	}

	return closerFunc(func() error {
		for _, l := range Loggers {
			l.SetOutput(os.Stderr)
		}
		return logFile.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
