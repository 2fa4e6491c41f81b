// Command framefuse combines two videos into a single split-screen output.
package main

import (
	"os"

	"github.com/framefuse/framefuse/cmd/framefuse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
