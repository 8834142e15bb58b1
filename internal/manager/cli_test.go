// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"
)

// fakeExec records invocations and substitutes a shell snippet for the real
// binary, so capture and exit-code handling run against a live process
// without micromamba installed.
type fakeExec struct {
	script string
	names  []string
	args   [][]string
}

func (f *fakeExec) command(ctx context.Context, name string, arg ...string) *exec.Cmd {
	f.names = append(f.names, name)
	f.args = append(f.args, arg)
	return exec.CommandContext(ctx, "sh", "-c", f.script)
}

func TestVersionTrimsOutput(t *testing.T) {
	t.Parallel()

	fake := &fakeExec{script: "echo 1.5.8"}
	cli := NewMicromambaCLI("/base/env/mamba/micromamba", WithExecCommand(fake.command))

	got, err := cli.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if got != "1.5.8" {
		t.Errorf("Version() = %q, want 1.5.8", got)
	}
	if fake.names[0] != "/base/env/mamba/micromamba" {
		t.Errorf("invoked binary = %q", fake.names[0])
	}
	if !slices.Equal(fake.args[0], []string{"--version"}) {
		t.Errorf("version args = %v", fake.args[0])
	}
}

func TestVersionFailureCarriesStderr(t *testing.T) {
	t.Parallel()

	fake := &fakeExec{script: "echo 'bad interpreter' >&2; exit 126"}
	cli := NewMicromambaCLI("/bin/micromamba", WithExecCommand(fake.command))

	_, err := cli.Version(context.Background())
	if !errors.Is(err, ErrManagerInvocation) {
		t.Fatalf("error = %v, want ErrManagerInvocation", err)
	}

	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error type = %T", err)
	}
	if invErr.ExitCode != 126 {
		t.Errorf("ExitCode = %d, want 126", invErr.ExitCode)
	}
	if !strings.Contains(invErr.Stderr, "bad interpreter") {
		t.Errorf("Stderr = %q, missing captured output", invErr.Stderr)
	}
}

func TestCreateEnvStreamsAndCaptures(t *testing.T) {
	t.Parallel()

	fake := &fakeExec{script: "echo 'resolving packages' >&2; exit 1"}
	cli := NewMicromambaCLI("/bin/micromamba", WithExecCommand(fake.command))

	var seen strings.Builder
	err := cli.CreateEnv(context.Background(), CreateEnvOptions{
		RootPrefix: "/base/env/mamba",
		Prefix:     "/base/env/installer_env",
		SpecFile:   "/base/installer/yaml/env.yaml",
		Stderr:     &seen,
	})

	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want InvocationError", err)
	}
	if !strings.Contains(invErr.Stderr, "resolving packages") {
		t.Errorf("captured stderr = %q", invErr.Stderr)
	}
	// Progress must still stream to the caller's writer.
	if !strings.Contains(seen.String(), "resolving packages") {
		t.Errorf("streamed stderr = %q", seen.String())
	}
}

func TestArgBuilders(t *testing.T) {
	t.Parallel()

	if got := shellInitArgs("/root"); !slices.Equal(got, []string{
		"shell", "init", "--shell", "bash", "--root-prefix", "/root",
	}) {
		t.Errorf("shellInitArgs = %v", got)
	}

	if got := shellHookArgs("/root"); !slices.Equal(got, []string{
		"shell", "hook", "--shell", "posix", "--root-prefix", "/root",
	}) {
		t.Errorf("shellHookArgs = %v", got)
	}

	got := createEnvArgs(CreateEnvOptions{
		RootPrefix: "/r",
		Prefix:     "/e",
		SpecFile:   "/s.yaml",
	})
	want := []string{"create", "--yes", "--root-prefix", "/r", "--prefix", "/e", "--file", "/s.yaml"}
	if !slices.Equal(got, want) {
		t.Errorf("createEnvArgs = %v, want %v", got, want)
	}
}

func TestInvocationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &InvocationError{
		Operation: "create env",
		ExitCode:  1,
		Stderr:    "no network\n",
	}
	msg := err.Error()
	if !strings.Contains(msg, "create env") || !strings.Contains(msg, "no network") {
		t.Errorf("Error() = %q", msg)
	}
}
