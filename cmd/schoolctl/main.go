package main

import (
	"fmt"
	"os"

	"schooladmin/internal/transport/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultOptions()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
