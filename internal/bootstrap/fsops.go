// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// InstallBinary copies the manager binary from src to dst, unconditionally
// overwriting any existing copy. Overwriting every run guarantees the active
// binary matches the shipped version regardless of prior state.
func InstallBinary(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open binary source: %w", err)
	}
	defer func() { _ = srcFile.Close() }() // Read-only file; close error non-critical

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat binary source: %w", err)
	}

	// Force owner-executable regardless of how the payload was extracted;
	// zip extraction commonly drops the exec bit.
	mode := srcInfo.Mode().Perm() | 0o755

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create binary destination: %w", err)
	}
	defer func() {
		if closeErr := dstFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close binary destination: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copy binary contents: %w", err)
	}

	// O_TRUNC leaves the original mode on a pre-existing destination;
	// re-apply so an updated payload's permissions win.
	if err := os.Chmod(dst, mode); err != nil {
		return fmt.Errorf("chmod binary destination: %w", err)
	}

	return nil
}

// FileHash returns the hex SHA256 of a file's contents.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
