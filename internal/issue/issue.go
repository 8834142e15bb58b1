// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies a known failure mode in the catalog.
type Id int

const (
	SpecFileNotFoundId Id = iota + 1
	BinarySourceNotFoundId
	ManagerInvocationFailedId
	BaseDirLockedId
	BaseDirNotWritableId
	ConfigLoadFailedId
)

// MarkdownMsg is markdown text rendered to the terminal via glamour.
type MarkdownMsg string

// Issue pairs a failure mode with remediation guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue's guidance rendered for the terminal.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	specFileNotFoundIssue = &Issue{
		id: SpecFileNotFoundId,
		mdMsg: `
# Environment spec not found!

envstrap needs a declarative environment spec to create the installer
environment, but the configured spec file does not exist.

## Things you can try:
- Check the ` + "`spec_path`" + ` value:
~~~
$ envstrap config show
~~~
- Verify the installer payload is intact (the spec normally ships under
  ` + "`installer/yaml/`" + `)
- Point envstrap at a different spec:
~~~
$ envstrap up --spec /path/to/environment.yaml
~~~`,
	}

	binarySourceNotFoundIssue = &Issue{
		id: BinarySourceNotFoundId,
		mdMsg: `
# Manager binary not found!

The bundled environment manager executable is missing from its source
location, so it cannot be installed into the root prefix.

## Things you can try:
- Verify the installer payload is intact (the binary normally ships under
  ` + "`installer/bin/`" + `)
- Point envstrap at a different binary:
~~~
$ envstrap up --binary /path/to/micromamba
~~~
- Re-download the installer package if files were deleted by antivirus
  software or a partial extraction`,
	}

	managerInvocationFailedIssue = &Issue{
		id: ManagerInvocationFailedId,
		mdMsg: `
# Manager invocation failed!

The environment manager binary exited with an error. The captured stderr
above identifies the failing step.

## Common causes:
- No network connectivity during environment creation
- A channel or package in the spec no longer exists
- The binary is for the wrong CPU architecture

## Things you can try:
- Re-run with verbose output:
~~~
$ envstrap --verbose up
~~~
- Run the failing manager command manually to reproduce
- Delete the environment directory and retry for a clean creation`,
	}

	baseDirLockedIssue = &Issue{
		id: BaseDirLockedId,
		mdMsg: `
# Base directory is locked!

Another envstrap process is currently provisioning the same base directory.
Concurrent provisioning would corrupt the environment, so this run stopped.

## Things you can try:
- Wait for the other run to finish, then retry
- If no other run is active, remove the stale lock file reported above
  (safe: the lock is advisory and released automatically on process exit)`,
	}

	baseDirNotWritableIssue = &Issue{
		id: BaseDirNotWritableId,
		mdMsg: `
# Base directory is not writable!

envstrap could not create directories under the configured base directory.

## Things you can try:
- Check permissions and free disk space on the base directory
- Choose a different base directory:
~~~
$ envstrap up --base-dir ~/envstrap
~~~
- Set it persistently via the environment:
~~~
$ export ENVSTRAP_BASE_DIR=~/envstrap
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the envstrap configuration file.

## Configuration file locations:
- Linux: ~/.config/envstrap/config.cue
- macOS: ~/Library/Application Support/envstrap/config.cue
- Windows: %APPDATA%\envstrap\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ envstrap config init
~~~
- Check the configuration syntax
- Remove the config file to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		specFileNotFoundIssue.Id():        specFileNotFoundIssue,
		binarySourceNotFoundIssue.Id():    binarySourceNotFoundIssue,
		managerInvocationFailedIssue.Id(): managerInvocationFailedIssue,
		baseDirLockedIssue.Id():           baseDirLockedIssue,
		baseDirNotWritableIssue.Id():      baseDirNotWritableIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Values returns all cataloged issues.
func Values() []*Issue {
	return maps.Values(issues)
}

// Get looks up an issue by id. Returns nil for unknown ids.
func Get(id Id) *Issue {
	return issues[id]
}
