package vm

// vm.go assembles the machine from its parts and runs the instruction cycle.

import (
	"context"
	"fmt"
	"os"

	"github.com/CairBin/go-lc3-vm/internal/log"
)

// Machine wires one CPU to one memory and a console. It loads program
// images and runs the fetch-execute loop until the program halts.
type Machine struct {
	CPU *CPU
	Mem *Memory

	cons   Console
	loader *Loader
	log    *log.Logger
}

// An OptionFn modifies the machine during initialization.
type OptionFn func(*Machine)

// WithLogger configures the machine to log to a particular logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(m *Machine) {
		m.log = logger
		m.CPU.log = logger
		m.loader.log = logger
	}
}

// New creates a machine wired to a console.
func New(cons Console, opts ...OptionFn) *Machine {
	m := &Machine{
		CPU:    NewCPU(cons),
		Mem:    NewMemory(cons),
		cons:   cons,
		loader: NewLoader(),
		log:    log.DefaultLogger(),
	}

	for _, fn := range opts {
		fn(m)
	}

	return m
}

// LoadImage reads a program image from a file and loads it into memory. It
// returns the number of words stored.
func (m *Machine) LoadImage(path string) (uint16, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	var obj ObjectCode
	if err := obj.UnmarshalBinary(b); err != nil {
		return 0, err
	}

	return m.loader.Load(m.Mem, obj)
}

// Run executes the fetch-execute loop until the program halts, a step
// fails, or the context is cancelled. If the console is backed by a real
// terminal, raw mode is held for the duration of the loop and restored on
// every exit path, panics included.
func (m *Machine) Run(ctx context.Context) error {
	m.CPU.Running = true

	if raw, ok := m.cons.(RawModer); ok {
		restore, err := raw.Raw()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		defer restore()
	}

	m.log.Info("START", "PC", m.CPU.Reg[PC])

	for m.CPU.Running {
		select {
		case <-ctx.Done():
			m.log.Warn("CANCELLED")
			return ctx.Err()
		default:
		}

		if err := m.CPU.Step(m.Mem); err != nil {
			m.log.Error("HALTED (fault)", "ERR", err, "REG", m.CPU.Reg.String())
			return err
		}
	}

	m.log.Info("HALTED (TRAP)")

	return nil
}
