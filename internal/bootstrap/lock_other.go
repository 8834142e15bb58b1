// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package bootstrap

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// provisionLock serializes provisioning runs on platforms without flock by
// creating the lock file exclusively. Unlike the flock variant, a crashed
// process leaves the file behind; the rendered issue guidance tells the user
// it is safe to remove.
type provisionLock struct {
	path string
}

// acquireLock creates the lock file with O_EXCL. An existing file means
// another run is (or was) active and yields a RaceError.
func acquireLock(path string) (*provisionLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, &RaceError{LockPath: path, Cause: err}
		}
		return nil, fmt.Errorf("create lock file %s: %w", path, err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	if err := f.Close(); err != nil {
		log.Debug("lock file close failed", "error", err)
	}

	return &provisionLock{path: path}, nil
}

// Release removes the lock file. Safe to call multiple times.
func (l *provisionLock) Release() {
	if l == nil || l.path == "" {
		return
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		log.Debug("lock file removal failed", "error", err)
	}
	l.path = ""
}
