// SPDX-License-Identifier: MPL-2.0

package main

import cmd "envstrap-cli/cmd/envstrap"

func main() {
	cmd.Execute()
}
