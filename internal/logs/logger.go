package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	logFileName = "debug.log"
	logPrefix   = "[todoapp] "
	logFlags    = log.LstdFlags | log.Lshortfile
)

var (
	Logger  = log.New(io.Discard, logPrefix, logFlags)
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at debug.log inside logDir.
// Until it is called, log output is discarded.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	logPath := filepath.Join(logDir, logFileName)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, logPrefix, logFlags)

	Logger.Printf("Logger initialized at: %s", logPath)

	return nil
}

// Close closes the log file and discards further output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	Logger = log.New(io.Discard, logPrefix, logFlags)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
