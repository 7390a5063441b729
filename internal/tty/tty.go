// Package tty adapts the process's terminal to the machine's console
// capability using Unix terminal I/O. See: tty(4), termios(4).
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned if standard input is not a terminal.
var ErrNoTTY = errors.New("console: not a TTY")

// Console is a serial console for the machine. Key presses are polled and
// read a byte at a time from the input stream; display output is buffered
// on the output stream until flushed.
type Console struct {
	in  *os.File
	out *bufio.Writer
	fd  int
}

// NewConsole creates a console over the provided streams. If the input
// stream is not a terminal, ErrNoTTY is returned.
func NewConsole(sin, sout *os.File) (*Console, error) {
	fd := int(sin.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	return &Console{
		in:  sin,
		out: bufio.NewWriter(sout),
		fd:  fd,
	}, nil
}

// Raw puts the terminal into raw mode and returns a function that restores
// the saved state. Callers must invoke the restore function on every exit
// path.
func (c *Console) Raw() (func(), error) {
	saved, err := term.MakeRaw(c.fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	if err := c.setTerminalParams(1, 0); err != nil {
		_ = term.Restore(c.fd, saved)

		return nil, err
	}

	return func() {
		_ = c.out.Flush()
		_ = term.Restore(c.fd, saved)
	}, nil
}

// setTerminalParams configures read thresholds: reads block until VMIN
// bytes are available, without an inter-byte timer.
func (c *Console) setTerminalParams(vmin, vtime byte) error {
	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Cc[unix.VMIN] = vmin
	termIO.Cc[unix.VTIME] = vtime

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO)
}

// KeyReady polls the input stream with a zero timeout and reports whether
// a byte is buffered.
func (c *Console) KeyReady() bool {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, 0)

	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

// ReadByte blocks until one byte is read from the input stream.
func (c *Console) ReadByte() (byte, error) {
	var buf [1]byte

	for {
		n, err := c.in.Read(buf[:])

		switch {
		case n == 1:
			return buf[0], nil
		case err != nil:
			return 0, err
		}
	}
}

// WriteByte buffers one byte for the output stream.
func (c *Console) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

// Flush drains the output buffer to the terminal.
func (c *Console) Flush() error {
	return c.out.Flush()
}
