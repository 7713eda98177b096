// Package file stores navigation state as one JSON file per key and watches
// the directory for writes made by other processes.
package file

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/bnema/tabnav/internal/domain/repository"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Slot is a directory-backed state slot.
type Slot struct {
	dir      string
	maxBytes int64

	mu  sync.Mutex
	own map[string][sha256.Size]byte // digest of this process's last write per key
}

var _ repository.StateSlot = (*Slot)(nil)

// NewSlot creates the directory if needed. maxBytes of zero means unlimited.
func NewSlot(dir string, maxBytes int64) (*Slot, error) {
	if dir == "" {
		return nil, fmt.Errorf("state directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Slot{
		dir:      dir,
		maxBytes: maxBytes,
		own:      make(map[string][sha256.Size]byte),
	}, nil
}

// Path returns the file that backs key.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

// fileName maps a key to a safe base name.
func fileName(key string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return strings.TrimLeft(clean, ".") + ".json"
}

func (s *Slot) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read state file: %w", err)
	}
	return string(data), true, nil
}

// Set writes value atomically through a temp file and rename.
func (s *Slot) Set(_ context.Context, key, value string) error {
	if s.maxBytes > 0 && int64(len(value)) > s.maxBytes {
		return fmt.Errorf("state file %q: %d bytes over %d byte limit: %w",
			key, len(value), s.maxBytes, repository.ErrQuotaExceeded)
	}

	tmp, err := os.CreateTemp(s.dir, "."+fileName(key)+".*")
	if err != nil {
		return mapWriteError(fmt.Errorf("create temp state file: %w", err))
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return mapWriteError(fmt.Errorf("write state file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return mapWriteError(fmt.Errorf("sync state file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return mapWriteError(fmt.Errorf("close state file: %w", err))
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod state file: %w", err)
	}

	s.remember(key, value)
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		cleanup()
		return mapWriteError(fmt.Errorf("replace state file: %w", err))
	}
	return nil
}

func (s *Slot) Remove(_ context.Context, key string) error {
	s.remember(key, "")
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

func (s *Slot) remember(key, value string) {
	s.mu.Lock()
	s.own[key] = sha256.Sum256([]byte(value))
	s.mu.Unlock()
}

// forget drops the own-write digest once a foreign value has been observed.
func (s *Slot) forget(key string) {
	s.mu.Lock()
	delete(s.own, key)
	s.mu.Unlock()
}

// isOwn reports whether value is what this process last wrote for key.
func (s *Slot) isOwn(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	digest, ok := s.own[key]
	return ok && digest == sha256.Sum256([]byte(value))
}

// mapWriteError turns a full disk or exhausted quota into ErrQuotaExceeded.
func mapWriteError(err error) error {
	if errors.Is(err, unix.ENOSPC) || errors.Is(err, unix.EDQUOT) {
		return fmt.Errorf("%w: %w", repository.ErrQuotaExceeded, err)
	}
	return err
}
