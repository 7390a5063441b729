package vm

import (
	"testing"
)

func TestSext(tt *testing.T) {
	tt.Parallel()

	// For every field width the ISA uses, sign extension must equal the
	// value itself when the top bit is clear and the value with all higher
	// bits set when it isn't.
	for _, n := range []uint8{5, 6, 9, 11} {
		for v := Word(0); v < Word(1)<<n; v++ {
			want := v
			if v&(1<<(n-1)) != 0 {
				want = v | Word(0xffff<<n)
			}

			got := v
			got.Sext(n)

			if got != want {
				tt.Fatalf("sext(%s, %d) want: %s, got: %s", v, n, want, got)
			}
		}
	}
}

func TestSextIgnoresHighBits(tt *testing.T) {
	tt.Parallel()

	// Operand fields are embedded in instruction words; the bits above the
	// field must not leak into the result.
	w := Word(0xffe3) // Low 5 bits: 0b00011.
	w.Sext(5)

	if w != 0x0003 {
		tt.Errorf("sext want: %s, got: %s", Word(0x0003), w)
	}
}

func TestZext(tt *testing.T) {
	tt.Parallel()

	w := Word(0xf125)
	w.Zext(8)

	if w != 0x0025 {
		tt.Errorf("zext want: %s, got: %s", Word(0x0025), w)
	}
}

func TestConditionUpdate(tt *testing.T) {
	tt.Parallel()

	cases := []struct {
		val  Word
		want Condition
	}{
		{0x0000, ConditionZero},
		{0x0001, ConditionPositive},
		{0x7fff, ConditionPositive},
		{0x8000, ConditionNegative},
		{0xffff, ConditionNegative},
	}

	for _, c := range cases {
		var cond Condition

		cond.Update(c.val)

		if cond != c.want {
			tt.Errorf("update(%s) want: %s, got: %s", c.val, c.want, cond)
		}

		// The condition is one-hot: exactly one flag set.
		flags := 0
		for _, f := range []bool{cond.Negative(), cond.Zero(), cond.Positive()} {
			if f {
				flags++
			}
		}

		if flags != 1 {
			tt.Errorf("update(%s): condition not one-hot: %s", c.val, cond)
		}
	}
}

func TestInstructionFields(tt *testing.T) {
	tt.Parallel()

	ins := Instruction(0x127f) // ADD R1, R1, #-1

	if ins.Opcode() != ADD {
		tt.Errorf("opcode want: %s, got: %s", ADD, ins.Opcode())
	}

	if ins.DR() != R1 {
		tt.Errorf("DR want: %s, got: %s", R1, ins.DR())
	}

	if ins.SR1() != R1 {
		tt.Errorf("SR1 want: %s, got: %s", R1, ins.SR1())
	}

	if !ins.Imm() {
		tt.Error("imm flag not decoded")
	}

	if ins.Literal(IMM5) != 0xffff {
		tt.Errorf("literal want: %s, got: %s", Word(0xffff), ins.Literal(IMM5))
	}

	ins = Instruction(0x1042) // ADD R0, R1, R2

	if ins.Imm() {
		tt.Error("imm flag set for register mode")
	}

	if ins.SR2() != R2 {
		tt.Errorf("SR2 want: %s, got: %s", R2, ins.SR2())
	}

	ins = Instruction(0xf025) // TRAP HALT

	if ins.Opcode() != TRAP {
		tt.Errorf("opcode want: %s, got: %s", TRAP, ins.Opcode())
	}

	if ins.Vector(VECTOR8) != 0x0025 {
		tt.Errorf("vector want: %s, got: %s", Word(0x0025), ins.Vector(VECTOR8))
	}

	ins = Instruction(0x0402) // BRz +2

	if ins.Cond() != ConditionZero {
		tt.Errorf("cond want: %s, got: %s", ConditionZero, ins.Cond())
	}
}
