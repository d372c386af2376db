package main

import (
	"fmt"
	"os"

	"github.com/Fepozopo/edgeterm/pkg/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "edgeterm: %v\n", err)
		os.Exit(1)
	}
}
