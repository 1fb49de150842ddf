// Command dynform renders, fills, checks and imports dynamic form metadata.
package main

import (
	"os"
)

func main() {
	if err := execute(newRootCmd(newApp(os.Stdout, os.Stderr))); err != nil {
		os.Exit(1)
	}
}
