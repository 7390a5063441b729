package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CairBin/go-lc3-vm/internal/cli"
	"github.com/CairBin/go-lc3-vm/internal/log"
	"github.com/CairBin/go-lc3-vm/internal/tty"
	"github.com/CairBin/go-lc3-vm/internal/vm"
)

// Run returns the command that loads and executes program images.
func Run() cli.Command {
	return &runner{log: log.DefaultLogger()}
}

type runner struct {
	logLevel slog.Level
	log      *log.Logger
}

func (runner) Description() string {
	return "run one or more program images"
}

func (runner) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run [-loglevel level] image-file...

Loads each image in argument order and executes the machine until it halts.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return r.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

// Run loads each image and enters the fetch-execute loop.
func (r *runner) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	log.LogLevel.Set(r.logLevel)

	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: lc3 [image-file]...")
		return 0
	}

	cons, err := tty.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("Error opening console", "err", err)
		return 1
	}

	machine := vm.New(cons, vm.WithLogger(logger))

	for _, path := range args {
		count, err := machine.LoadImage(path)
		if err != nil {
			logger.Error("Error loading image", "file", path, "err", err)
			return 1
		}

		logger.Info("Loaded image", "file", path, "words", count)
	}

	if err := machine.Run(ctx); err != nil {
		logger.Error("Machine fault", "err", err)
		return 2
	}

	return 0
}
