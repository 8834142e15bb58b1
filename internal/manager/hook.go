// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ApplyHook evaluates the manager's activation hook script in an embedded
// shell interpreter and returns the resulting exported environment.
//
// The original bootstrap sourced the hook into the live shell, mutating
// ambient process state. Here the hook runs in an isolated mvdan/sh runner
// seeded with base ("KEY=VALUE" form); the caller decides where the result
// is applied.
func ApplyHook(ctx context.Context, script string, base []string) (map[string]string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "activation-hook")
	if err != nil {
		return nil, fmt.Errorf("parse activation hook: %w", err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(base...)),
		interp.StdIO(nil, io.Discard, io.Discard),
	)
	if err != nil {
		return nil, fmt.Errorf("create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return nil, fmt.Errorf("evaluate activation hook: %w", err)
	}

	env := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	for name, vr := range runner.Vars {
		if vr.Exported {
			env[name] = vr.String()
		}
	}
	return env, nil
}

// EnvToSlice converts an env map to sorted "KEY=VALUE" form.
// Sorting keeps output deterministic for logs and tests.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
