package vm

import (
	"bytes"
	"io"
	"testing"

	"github.com/CairBin/go-lc3-vm/internal/log"
)

func NewTestHarness(tt *testing.T) *testHarness {
	return &testHarness{
		T:    tt,
		cons: &testConsole{},
	}
}

type testHarness struct {
	*testing.T
	cons *testConsole
}

// Make builds a machine wired to the scripted console. Machine logs are
// routed through the test log.
func (t *testHarness) Make() *Machine {
	return New(t.cons, WithLogger(log.NewFormattedLogger(t)))
}

func (t *testHarness) Write(b []byte) (int, error) {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		t.Log(string(b[:len(b)-1]))
	} else {
		t.Log(string(b))
	}

	return len(b), nil
}

func (t *testHarness) Log(args ...any) {
	t.T.Helper()
	t.T.Log(args...)
}

// testConsole is a scripted console: reads pop from keys, writes gather in
// out.
type testConsole struct {
	keys    []byte
	out     bytes.Buffer
	flushes int
}

func (c *testConsole) KeyReady() bool {
	return len(c.keys) > 0
}

func (c *testConsole) ReadByte() (byte, error) {
	if len(c.keys) == 0 {
		return 0, io.EOF
	}

	key := c.keys[0]
	c.keys = c.keys[1:]

	return key, nil
}

func (c *testConsole) WriteByte(b byte) error {
	c.out.WriteByte(b)
	return nil
}

func (c *testConsole) Flush() error {
	c.flushes++
	return nil
}
