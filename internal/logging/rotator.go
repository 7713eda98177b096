package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileRotator is an io.Writer that appends to a log file and rolls it over
// once it grows past maxSize. The terminal UI owns stderr, so interactive
// sessions log here instead.
type FileRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxBackups  int
	currentFile *os.File
	currentSize int64
}

// NewFileRotator opens (or creates) path for appending.
func NewFileRotator(path string, maxSizeMB, maxBackups int) (*FileRotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	r := &FileRotator{
		baseDir:    filepath.Dir(path),
		baseName:   filepath.Base(path),
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
	}

	if err := os.MkdirAll(r.baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *FileRotator) openCurrentFile() error {
	logPath := filepath.Join(r.baseDir, r.baseName)

	r.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *FileRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *FileRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	r.currentFile = nil

	timestamp := time.Now().Format("2006-01-02-15-04-05.000")
	currentPath := filepath.Join(r.baseDir, r.baseName)
	backupPath := filepath.Join(r.baseDir, r.baseName+"."+timestamp)

	if err := os.Rename(currentPath, backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	r.prune()
	return r.openCurrentFile()
}

// prune keeps the newest maxBackups rotated files.
func (r *FileRotator) prune() {
	if r.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), r.baseName+".") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= r.maxBackups {
		return
	}

	// timestamp suffixes sort chronologically
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-r.maxBackups] {
		_ = os.Remove(filepath.Join(r.baseDir, name))
	}
}

// Close closes the current file.
func (r *FileRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
