// ABOUTME: File-backed logger for the TUI and commands
// ABOUTME: Writes to debug.log under the config dir so terminal output stays clean

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	logger  = newDiscardLogger()
	logFile *os.File
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init directs log output to debug.log under the given config directory.
// An empty directory leaves logging disabled.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	path := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	logFile = f
	logger.SetOutput(f)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	logger.SetOutput(io.Discard)
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// L returns the shared logger
func L() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}
