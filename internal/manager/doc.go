// SPDX-License-Identifier: MPL-2.0

// Package manager abstracts the environment manager binary (micromamba).
//
// Every invocation of the binary goes through the Manager interface so the
// bootstrapper can be tested without a real binary, and every non-zero exit
// is surfaced as a typed InvocationError carrying the captured stderr.
package manager
