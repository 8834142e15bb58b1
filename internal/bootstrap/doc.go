// SPDX-License-Identifier: MPL-2.0

// Package bootstrap provisions the isolated installer environment.
//
// The bootstrapper ensures that the environment manager binary and a named
// environment exist under a base directory, creating them from a declarative
// spec when absent, and produces an explicit Activation (the environment
// variables a child process needs) instead of mutating ambient process state.
//
// The whole procedure is idempotent: each step checks before acting, so
// re-running replays only the unsatisfied suffix of
//
//	Uninitialized → RootPrefixReady → BinaryInstalled →
//	ShellHookInitialized → EnvironmentCreated → Activated
//
// Concurrent runs against the same base directory are serialized by an
// advisory file lock; a second caller fails fast instead of racing the
// directory-existence checks.
package bootstrap
