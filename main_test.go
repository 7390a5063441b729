package main_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CairBin/go-lc3-vm/internal/vm"
)

// pipeConsole is an in-memory console for driving the machine end to end.
type pipeConsole struct {
	keys []byte
	out  bytes.Buffer
}

func (c *pipeConsole) KeyReady() bool { return len(c.keys) > 0 }

func (c *pipeConsole) ReadByte() (byte, error) {
	if len(c.keys) == 0 {
		return 0, io.EOF
	}

	key := c.keys[0]
	c.keys = c.keys[1:]

	return key, nil
}

func (c *pipeConsole) WriteByte(b byte) error {
	c.out.WriteByte(b)
	return nil
}

func (c *pipeConsole) Flush() error { return nil }

// TestMain loads a small program from an image file and runs it to the
// halt: LEA the string address into R0, PUTS, HALT.
func TestMain(t *testing.T) {
	image := []byte{
		0x30, 0x00, // origin
		0xe0, 0x02, // 0x3000: LEA R0, +2
		0xf0, 0x22, // 0x3001: PUTS
		0xf0, 0x25, // 0x3002: HALT
		0x00, 0x6f, // 0x3003: 'o'
		0x00, 0x6b, // 0x3004: 'k'
		0x00, 0x00, // 0x3005: terminator
	}

	path := filepath.Join(t.TempDir(), "ok.obj")
	if err := os.WriteFile(path, image, 0o600); err != nil {
		t.Fatal(err)
	}

	cons := &pipeConsole{}
	machine := vm.New(cons)

	count, err := machine.LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}

	if count != 6 {
		t.Errorf("loaded words want: 6, got: %d", count)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := machine.Run(ctx); err != nil {
		t.Error(err)
	}

	if machine.CPU.Running {
		t.Error("machine still running")
	}

	if got := cons.out.String(); got != "okHALT\n" {
		t.Errorf("output want: %q, got: %q", "okHALT\n", got)
	}
}
