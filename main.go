// lc3 is a virtual machine for the LC-3 educational computer.
package main

import (
	"context"
	"os"

	"github.com/CairBin/go-lc3-vm/internal/cli"
	"github.com/CairBin/go-lc3-vm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Run(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithDefault(cmd.Run()).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
