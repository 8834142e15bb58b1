// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestManagerBinaryNameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		want string
	}{
		{Windows, "micromamba.exe"},
		{Linux, "micromamba"},
		{Darwin, "micromamba"},
		{"freebsd", "micromamba"},
	}

	for _, tt := range tests {
		if got := ManagerBinaryNameFor(tt.goos); got != tt.want {
			t.Errorf("ManagerBinaryNameFor(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestEnvBinSubdirs(t *testing.T) {
	t.Parallel()

	if got := EnvBinSubdirs(Linux); len(got) != 1 || got[0] != "bin" {
		t.Errorf("EnvBinSubdirs(linux) = %v, want [bin]", got)
	}

	win := EnvBinSubdirs(Windows)
	if len(win) != 3 || win[0] != "" {
		t.Errorf("EnvBinSubdirs(windows) = %v, want prefix-first triple", win)
	}
}
