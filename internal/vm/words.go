package vm

// words.go defines the basic data types the CPU computes with.

import (
	"fmt"
)

// Word is the base data type on which the CPU operates. Registers, memory
// cells, I/O and instructions all work on 16-bit values. Arithmetic wraps
// modulo 2^16.
type Word uint16

func (w Word) String() string {
	return fmt.Sprintf("%0#4x", uint16(w))
}

// Sext sign-extends the lower n bits in-place.
//
// The left shift moves the n-th bit into the sign position of the word and
// the arithmetic right shift carries it back down across the top bits. Go's
// right shift only extends signed integers, hence the int16 conversion.
func (w *Word) Sext(n uint8) {
	i := int16(*w)
	i <<= 16 - n
	i >>= 16 - n
	*w = Word(i)
}

// Zext zero-extends the lower n bits in-place.
func (w *Word) Zext(n uint8) {
	low := Word(^(int16(-1) << n))
	*w &= low
}

// Reg is the ID of a register in the register file.
type Reg uint8

// Register IDs. R0 through R7 are general purpose; PC and COND are the
// special-purpose program counter and condition register.
const (
	R0 = Reg(iota)
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC
	COND

	NumRegs // Count of registers in the file.

	RETP = R7 // Subroutine return address is in R7 by convention.
)

func (r Reg) String() string {
	switch r {
	case PC:
		return "PC"
	case COND:
		return "COND"
	default:
		return fmt.Sprintf("R%d", uint8(r))
	}
}

// RegisterFile is the machine's register file: eight general purpose
// registers followed by the program counter and the condition register.
type RegisterFile [NumRegs]Word

func (rf RegisterFile) String() string {
	return fmt.Sprintf(
		"R0: %s R1: %s R2: %s R3: %s\nR4: %s R5: %s R6: %s R7: %s\nPC: %s COND: %s",
		rf[R0], rf[R1], rf[R2], rf[R3],
		rf[R4], rf[R5], rf[R6], rf[R7],
		rf[PC], Condition(rf[COND]),
	)
}

// Condition is the one-hot condition code derived from the sign of the last
// flag-updating result. Exactly one of the three flags is set at any time.
type Condition Word

// Condition flags.
const (
	ConditionPositive = Condition(1 << iota) // P
	ConditionZero                            // Z
	ConditionNegative                        // N
)

// Update derives the condition from a result word: zero, negative if the
// high bit is set, positive otherwise.
func (c *Condition) Update(val Word) {
	switch {
	case val == 0:
		*c = ConditionZero
	case val&0x8000 != 0:
		*c = ConditionNegative
	default:
		*c = ConditionPositive
	}
}

// Any returns true if any flag in the mask is set in the condition.
func (c Condition) Any(mask Condition) bool {
	return c&mask != 0
}

// Negative returns true if the N flag is set.
func (c Condition) Negative() bool {
	return c&ConditionNegative != 0
}

// Zero returns true if the Z flag is set.
func (c Condition) Zero() bool {
	return c&ConditionZero != 0
}

// Positive returns true if the P flag is set.
func (c Condition) Positive() bool {
	return c&ConditionPositive != 0
}

func (c Condition) String() string {
	return fmt.Sprintf(
		"%s (N:%t Z:%t P:%t)",
		Word(c).String(), c.Negative(), c.Zero(), c.Positive(),
	)
}
