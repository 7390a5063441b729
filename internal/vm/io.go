package vm

// io.go declares the console capability the machine consumes.

// Console is the host console the machine is wired to. The CPU uses it for
// trap service routines and the memory controller uses it to service the
// keyboard status register.
//
// KeyReady must not block; ReadByte blocks until a byte is available.
// Writes may be buffered until Flush.
type Console interface {
	// KeyReady reports whether at least one byte is buffered on input.
	KeyReady() bool

	// ReadByte reads a single byte from input.
	ReadByte() (byte, error)

	// WriteByte writes a single byte to output.
	WriteByte(b byte) error

	// Flush drains buffered output.
	Flush() error
}

// RawModer is implemented by consoles backed by a real terminal. Raw puts
// the terminal into raw mode and returns a function restoring the previous
// state. The machine holds raw mode for the duration of the run loop.
type RawModer interface {
	Raw() (restore func(), err error)
}
