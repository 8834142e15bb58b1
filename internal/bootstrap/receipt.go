// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Receipt records what a provisioning run installed. It lives inside the
// root prefix and is purely informational: the bootstrapper never trusts it
// for skip decisions (directory existence is the gate), but `envstrap
// status` reports it and a hash mismatch flags a payload change.
type Receipt struct {
	EnvName        string    `toml:"env_name"`
	ManagerVersion string    `toml:"manager_version"`
	BinaryHash     string    `toml:"binary_hash"`
	SpecHash       string    `toml:"spec_hash"`
	CreatedAt      time.Time `toml:"created_at"`
	UpdatedAt      time.Time `toml:"updated_at"`
}

// WriteReceipt marshals the receipt to path, preserving CreatedAt from any
// existing receipt so the first provisioning time survives re-runs.
func WriteReceipt(path string, r Receipt) error {
	if prev, err := LoadReceipt(path); err == nil && !prev.CreatedAt.IsZero() {
		r.CreatedAt = prev.CreatedAt
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = r.UpdatedAt
	}

	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write receipt %s: %w", path, err)
	}
	return nil
}

// LoadReceipt reads the receipt at path.
func LoadReceipt(path string) (*Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Receipt
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse receipt %s: %w", path, err)
	}
	return &r, nil
}
