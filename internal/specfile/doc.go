// SPDX-License-Identifier: MPL-2.0

// Package specfile reads declarative environment spec files.
//
// A spec file is conda-style YAML declaring the environment name, the
// channels to pull packages from, and the dependency list. envstrap never
// mutates the spec; it only validates the parts it needs and passes the file
// through to the environment manager.
package specfile
