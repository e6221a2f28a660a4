package utils

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/informaticafecor/OCRProyecto/pkg/logger"
)

// TempManager tracks temporary files and directories created during one
// processing operation (decrypted copies, page splits, rasterized images)
// and guarantees their removal regardless of outcome.
type TempManager struct {
	mu         sync.Mutex
	tempFiles  []string
	tempDirs   []string
	cleanupFns []func() error
	logger     *logger.Logger
}

// NewTempManager creates a temp manager
func NewTempManager(log *logger.Logger) *TempManager {
	return &TempManager{logger: log}
}

// CreateTempDir creates a tracked temporary directory
func (tm *TempManager) CreateTempDir(prefix string) (string, error) {
	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return "", NewIOError("failed to create temp directory", err)
	}

	tm.mu.Lock()
	tm.tempDirs = append(tm.tempDirs, dir)
	tm.mu.Unlock()
	return dir, nil
}

// CreateTempFile creates a tracked temporary file and returns its path
func (tm *TempManager) CreateTempFile(prefix, suffix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*"+suffix)
	if err != nil {
		return "", NewIOError("failed to create temp file", err)
	}
	path := f.Name()
	f.Close()

	tm.mu.Lock()
	tm.tempFiles = append(tm.tempFiles, path)
	tm.mu.Unlock()
	return path, nil
}

// TrackFile registers an existing file for cleanup
func (tm *TempManager) TrackFile(path string) {
	tm.mu.Lock()
	tm.tempFiles = append(tm.tempFiles, path)
	tm.mu.Unlock()
}

// RegisterCleanupFunc registers an arbitrary cleanup function
func (tm *TempManager) RegisterCleanupFunc(fn func() error) {
	tm.mu.Lock()
	tm.cleanupFns = append(tm.cleanupFns, fn)
	tm.mu.Unlock()
}

// Cleanup removes everything the manager tracks. Safe to call repeatedly.
func (tm *TempManager) Cleanup() error {
	tm.mu.Lock()
	files := tm.tempFiles
	dirs := tm.tempDirs
	fns := tm.cleanupFns
	tm.tempFiles = nil
	tm.tempDirs = nil
	tm.cleanupFns = nil
	tm.mu.Unlock()

	var firstErr error
	for _, fn := range fns {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			if tm.logger != nil {
				tm.logger.Warn("Failed to remove temp file %s: %v", f, err)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			if tm.logger != nil {
				tm.logger.Warn("Failed to remove temp directory %s: %v", d, err)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// WithCleanup executes fn and removes tracked resources afterwards, even
// when fn fails.
func (tm *TempManager) WithCleanup(fn func() error) error {
	defer tm.Cleanup()
	return fn()
}

// CleanupAgedTempFiles removes entries under dir older than maxAge and
// returns the number removed.
func CleanupAgedTempFiles(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, NewIOError(fmt.Sprintf("failed to read temp directory: %s", dir), err)
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := dir + string(os.PathSeparator) + entry.Name()
			if err := os.RemoveAll(path); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
