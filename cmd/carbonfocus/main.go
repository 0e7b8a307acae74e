// Command carbonfocus is the personal carbon footprint calculator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/carbonfocus/internal/cli"
	"github.com/rshade/carbonfocus/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
