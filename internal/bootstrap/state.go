// SPDX-License-Identifier: MPL-2.0

package bootstrap

import "os"

// State is a position in the bootstrap state machine. Each transition is an
// idempotent guard-then-act step; re-entering from any state replays only
// the unsatisfied suffix.
type State int

const (
	StateUninitialized State = iota
	StateRootPrefixReady
	StateBinaryInstalled
	StateShellHookInitialized
	StateEnvironmentCreated
	// StateActivated exists only within a successful EnsureEnvironment call;
	// activation leaves no filesystem trace, so Inspect never reports it.
	StateActivated
)

var stateNames = map[State]string{
	StateUninitialized:        "Uninitialized",
	StateRootPrefixReady:      "RootPrefixReady",
	StateBinaryInstalled:      "BinaryInstalled",
	StateShellHookInitialized: "ShellHookInitialized",
	StateEnvironmentCreated:   "EnvironmentCreated",
	StateActivated:            "Activated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Inspect derives the current bootstrap state from disk. It reports the
// furthest state whose prerequisites are all satisfied, so a missing binary
// caps the result at RootPrefixReady even if the environment directory
// exists.
func Inspect(layout Layout) State {
	if !dirExists(layout.RootPrefix()) {
		return StateUninitialized
	}
	if !fileExists(layout.BinaryPath()) {
		return StateRootPrefixReady
	}
	if !dirExists(layout.ShellMarkerDir()) {
		return StateBinaryInstalled
	}
	if !dirExists(layout.EnvDir()) {
		return StateShellHookInitialized
	}
	return StateEnvironmentCreated
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
