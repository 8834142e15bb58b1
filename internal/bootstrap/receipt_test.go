// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReceiptRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "receipt.toml")
	now := time.Now().UTC().Truncate(time.Second)

	in := Receipt{
		EnvName:        "installer_env",
		ManagerVersion: "1.5.8",
		BinaryHash:     "abc",
		SpecHash:       "def",
		UpdatedAt:      now,
	}
	if err := WriteReceipt(path, in); err != nil {
		t.Fatalf("WriteReceipt() error: %v", err)
	}

	out, err := LoadReceipt(path)
	if err != nil {
		t.Fatalf("LoadReceipt() error: %v", err)
	}
	if out.EnvName != in.EnvName || out.BinaryHash != in.BinaryHash {
		t.Errorf("round trip mismatch: %+v", out)
	}
	// First write seeds CreatedAt from UpdatedAt.
	if !out.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", out.CreatedAt, now)
	}
}

func TestReceiptPreservesCreatedAt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "receipt.toml")
	first := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := WriteReceipt(path, Receipt{EnvName: "e", UpdatedAt: first}); err != nil {
		t.Fatal(err)
	}
	if err := WriteReceipt(path, Receipt{EnvName: "e", UpdatedAt: first.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	out, err := LoadReceipt(path)
	if err != nil {
		t.Fatal(err)
	}
	if !out.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want original %v", out.CreatedAt, first)
	}
	if !out.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want bumped", out.UpdatedAt)
	}
}

func TestLoadReceiptMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadReceipt(filepath.Join(t.TempDir(), "absent.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("error = %v, want IsNotExist", err)
	}
}
