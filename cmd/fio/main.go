// SPDX-License-Identifier: MIT
// Command fio runs input-output structural analyses from the command line.
package main

import (
	"os"

	"github.com/katalvlaran/fio/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
