package main

import (
	"fmt"
	"os"

	"github.com/MoraFFox/syncolow-org-sub003/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
