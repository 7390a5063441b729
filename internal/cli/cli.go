// Package cli contains the command-line interface.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/CairBin/go-lc3-vm/internal/log"
)

// Command represents a sub-command in the CLI. Each sub-command has its own
// flags and action to perform.
type Command interface {
	// FlagSet returns the set of options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output is written
	// to out; it returns an exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander is a CLI command-runner that handles the life cycle of a CLI
// command execution.
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	def      Command
	commands []Command
}

// New creates a Commander that can start sub-commands.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// Execute runs a command. With no arguments the usage line is printed and
// the exit code is zero. A first argument that does not name a command is
// taken, with the rest of the arguments, as input for the default command.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		if err := cli.help.Usage(os.Stdout); err != nil {
			return 1
		}

		return 0
	}

	var found Command

	for _, cmd := range append(cli.commands, cli.help) {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	if found != nil {
		args = args[1:]
	} else {
		found = cli.def
	}

	fs := found.FlagSet()

	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 1
	}

	return found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithCommands adds a list of commands as sub-commands.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithDefault configures the command run when the first argument does not
// name a sub-command.
func (cli *Commander) WithDefault(cmd Command) *Commander {
	cli.def = cmd
	return cli
}

// WithHelp configures the help command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger configures the logger for the CLI. Logs are written to
// os.Stderr to leave os.Stdout for program output.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	cli.log = logger

	log.SetDefault(logger)

	return cli
}

// Type aliases from the standard library.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)
