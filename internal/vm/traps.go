package vm

// traps.go defines the trap service routines. The low 8 bits of a TRAP
// instruction select a routine that bridges the machine to the host console.

import (
	"fmt"
)

// TrapVector selects a trap service routine.
type TrapVector Word

// Trap vectors.
const (
	TrapGETC  = TrapVector(0x20) // Read one character, no echo.
	TrapOUT   = TrapVector(0x21) // Write one character.
	TrapPUTS  = TrapVector(0x22) // Write a word-per-character string.
	TrapIN    = TrapVector(0x23) // Prompt and read one character.
	TrapPUTSP = TrapVector(0x24) // Write a packed two-characters-per-word string.
	TrapHALT  = TrapVector(0x25) // Stop the machine.
)

func (v TrapVector) String() string {
	switch v {
	case TrapGETC:
		return "GETC"
	case TrapOUT:
		return "OUT"
	case TrapPUTS:
		return "PUTS"
	case TrapIN:
		return "IN"
	case TrapPUTSP:
		return "PUTSP"
	case TrapHALT:
		return "HALT"
	default:
		return fmt.Sprintf("TRAP(%s)", Word(v))
	}
}

// TRAP: System call.
//
// | 1111 | 0000 | VECTOR8 |
// |------+------+---------|
// |15  12|11   8|7       0|
type trap struct {
	vec TrapVector
}

var _ operation = &trap{}

func (op *trap) Decode(ins Instruction) {
	*op = trap{
		vec: TrapVector(ins.Vector(VECTOR8)),
	}
}

func (op trap) String() string {
	return fmt.Sprintf("TRAP[%s]", op.vec)
}

// Execute dispatches on the trap vector. The machine does not touch R7 on
// trap entry; any return linkage is the calling program's convention.
func (op *trap) Execute(cpu *CPU, mem *Memory) error {
	switch op.vec {
	case TrapGETC:
		return cpu.trapGetc()
	case TrapOUT:
		return cpu.trapOut()
	case TrapPUTS:
		return cpu.trapPuts(mem)
	case TrapIN:
		return cpu.trapIn()
	case TrapPUTSP:
		return cpu.trapPutsp(mem)
	case TrapHALT:
		return cpu.trapHalt()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTrap, op.vec)
	}
}

// trapGetc reads one character into R0. The character is not echoed and the
// condition flags are not updated.
func (cpu *CPU) trapGetc() error {
	key, err := cpu.cons.ReadByte()
	if err != nil {
		return fmt.Errorf("getc: %w", err)
	}

	cpu.Reg[R0] = Word(key)

	return nil
}

// trapOut writes the low 8 bits of R0 as a character.
func (cpu *CPU) trapOut() error {
	if err := cpu.cons.WriteByte(byte(cpu.Reg[R0])); err != nil {
		return fmt.Errorf("out: %w", err)
	}

	if err := cpu.cons.Flush(); err != nil {
		return fmt.Errorf("out: %w", err)
	}

	return nil
}

// trapPuts writes the zero-terminated string starting at the address in R0,
// one character per word.
func (cpu *CPU) trapPuts(mem *Memory) error {
	for addr := cpu.Reg[R0]; ; addr++ {
		word, err := mem.Read(addr)
		if err != nil {
			return fmt.Errorf("puts: %w", err)
		}

		if word == 0 {
			break
		}

		if err := cpu.cons.WriteByte(byte(word)); err != nil {
			return fmt.Errorf("puts: %w", err)
		}
	}

	if err := cpu.cons.Flush(); err != nil {
		return fmt.Errorf("puts: %w", err)
	}

	return nil
}

// trapIn prompts for a character and reads it into R0.
func (cpu *CPU) trapIn() error {
	if err := cpu.writeString("Enter a character: "); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	if err := cpu.cons.Flush(); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	key, err := cpu.cons.ReadByte()
	if err != nil {
		return fmt.Errorf("in: %w", err)
	}

	cpu.Reg[R0] = Word(key)

	return nil
}

// trapPutsp writes the zero-terminated string starting at the address in
// R0, packed two characters per word: the low byte first, then the high
// byte if it is non-zero.
func (cpu *CPU) trapPutsp(mem *Memory) error {
	for addr := cpu.Reg[R0]; ; addr++ {
		word, err := mem.Read(addr)
		if err != nil {
			return fmt.Errorf("putsp: %w", err)
		}

		if word == 0 {
			break
		}

		if err := cpu.cons.WriteByte(byte(word)); err != nil {
			return fmt.Errorf("putsp: %w", err)
		}

		if high := byte(word >> 8); high != 0 {
			if err := cpu.cons.WriteByte(high); err != nil {
				return fmt.Errorf("putsp: %w", err)
			}
		}
	}

	if err := cpu.cons.Flush(); err != nil {
		return fmt.Errorf("putsp: %w", err)
	}

	return nil
}

// trapHalt announces the halt and clears the running flag.
func (cpu *CPU) trapHalt() error {
	if err := cpu.writeString("HALT\n"); err != nil {
		return fmt.Errorf("halt: %w", err)
	}

	if err := cpu.cons.Flush(); err != nil {
		return fmt.Errorf("halt: %w", err)
	}

	cpu.Running = false
	cpu.log.Info("HALT")

	return nil
}

func (cpu *CPU) writeString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := cpu.cons.WriteByte(s[i]); err != nil {
			return err
		}
	}

	return nil
}
