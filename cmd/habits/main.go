package main

import (
	"os"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
