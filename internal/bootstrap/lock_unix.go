// SPDX-License-Identifier: MPL-2.0

//go:build unix

package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// provisionLock holds a non-blocking exclusive flock on the base directory's
// lock file, serializing provisioning runs across processes. The zero-byte
// lock file is harmless if orphaned; the kernel releases the flock
// automatically when the fd is closed, including on process crash.
type provisionLock struct {
	file *os.File
	path string
}

// acquireLock opens (or creates) the lock file and tries to take an
// exclusive flock without blocking. Contention yields a RaceError so the
// second caller fails fast instead of racing the directory-existence checks.
func acquireLock(path string) (*provisionLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, &RaceError{LockPath: path, Cause: err}
		}
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	return &provisionLock{file: f, path: path}, nil
}

// Release unlocks the flock and closes the file descriptor. It is safe to
// call multiple times; subsequent calls are no-ops.
func (l *provisionLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	// LOCK_UN before Close for explicitness; Close also releases the flock.
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		log.Debug("flock unlock failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		log.Debug("lock file close failed", "error", err)
	}
	l.file = nil
}
