package vm

// ops.go defines the CPU operations and their semantics.

import (
	"fmt"
)

// An operation is a single decoded instruction as it is executed by the
// machine. Decode pulls the operand fields out of the instruction word;
// Execute applies the operation to the CPU and memory.
type operation interface {
	Decode(ins Instruction)
	Execute(cpu *CPU, mem *Memory) error
}

// BR: Conditional branch
//
// | 0000 | NZP | OFFSET9 |
// |------+-----+---------|
// |15  12|11  9|8       0|
type br struct {
	cond   Condition
	offset Word
}

var _ operation = &br{}

func (op *br) Decode(ins Instruction) {
	*op = br{
		cond:   ins.Cond(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *br) Execute(cpu *CPU, _ *Memory) error {
	if cpu.Cond().Any(op.cond) {
		cpu.Reg[PC] += op.offset
	}

	return nil
}

func (op br) String() string {
	return fmt.Sprintf("BR[cond:%s offset:%s]", op.cond, op.offset)
}

// ADD: Arithmetic addition operator
//
// | 0001 | DR | SR1 | 000 | SR2 |  (register mode)
// |------+----+-----+-----+-----|
// |15  12|11 9|8   6| 5  3|2   0|
//
// | 0001 | DR | SR1 | 1 | IMM5 |  (immediate mode)
// |------+----+-----+---+------|
// |15  12|11 9|8   6| 5 |4    0|
type add struct {
	dr  Reg
	sr1 Reg
	sr2 Reg
}

var _ operation = &add{}

func (op *add) Decode(ins Instruction) {
	*op = add{
		dr:  ins.DR(),
		sr1: ins.SR1(),
		sr2: ins.SR2(),
	}
}

func (op *add) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[op.sr1] + cpu.Reg[op.sr2]
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

type addImm struct {
	dr  Reg
	sr  Reg
	lit Word
}

var _ operation = &addImm{}

func (op *addImm) Decode(ins Instruction) {
	*op = addImm{
		dr:  ins.DR(),
		sr:  ins.SR1(),
		lit: ins.Literal(IMM5),
	}
}

func (op *addImm) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[op.sr] + op.lit
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

// AND: Bitwise AND binary operator
//
// | 0101 | DR | SR1 | 000 | SR2 |  (register mode)
// |------+----+-----+-----+-----|
// |15  12|11 9|8   6| 5  3|2   0|
//
// | 0101 | DR | SR1 | 1 | IMM5 |  (immediate mode)
// |------+----+-----+---+------|
// |15  12|11 9|8   6| 5 |4    0|
type and struct {
	dr  Reg
	sr1 Reg
	sr2 Reg
}

var _ operation = &and{}

func (op *and) Decode(ins Instruction) {
	*op = and{
		dr:  ins.DR(),
		sr1: ins.SR1(),
		sr2: ins.SR2(),
	}
}

func (op *and) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[op.sr1] & cpu.Reg[op.sr2]
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

type andImm struct {
	dr  Reg
	sr  Reg
	lit Word
}

var _ operation = &andImm{}

func (op *andImm) Decode(ins Instruction) {
	*op = andImm{
		dr:  ins.DR(),
		sr:  ins.SR1(),
		lit: ins.Literal(IMM5),
	}
}

func (op *andImm) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[op.sr] & op.lit
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

// NOT: Bitwise complement operation
//
// | 1001 | DR | SR | 1 1111 1 |
// |------+----+----+----------|
// |15  12|11 9|8  6|5        0|
type not struct {
	dr Reg
	sr Reg
}

var _ operation = &not{}

func (op *not) Decode(ins Instruction) {
	*op = not{
		dr: ins.DR(),
		sr: ins.SR1(),
	}
}

func (op *not) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[op.sr] ^ 0xffff
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

// LD: Load word from memory.
//
// | 0010 | DR | OFFSET9 |
// |------+----+---------|
// |15  12|11 9|8       0|
type ld struct {
	dr     Reg
	offset Word
}

var _ operation = &ld{}

func (op *ld) Decode(ins Instruction) {
	*op = ld{
		dr:     ins.DR(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *ld) Execute(cpu *CPU, mem *Memory) error {
	val, err := mem.Read(cpu.Reg[PC] + op.offset)
	if err != nil {
		return err
	}

	cpu.Reg[op.dr] = val
	cpu.UpdateCond(val)

	return nil
}

// LDI: Load indirect
//
// | 1010 | DR | OFFSET9 |
// |------+----+---------|
// |15  12|11 9|8       0|
type ldi struct {
	dr     Reg
	offset Word
}

var _ operation = &ldi{}

func (op *ldi) Decode(ins Instruction) {
	*op = ldi{
		dr:     ins.DR(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *ldi) Execute(cpu *CPU, mem *Memory) error {
	addr, err := mem.Read(cpu.Reg[PC] + op.offset)
	if err != nil {
		return err
	}

	val, err := mem.Read(addr)
	if err != nil {
		return err
	}

	cpu.Reg[op.dr] = val
	cpu.UpdateCond(val)

	return nil
}

// LDR: Load base+offset
//
// | 0110 | DR | BASE | OFFSET6 |
// |------+----+------+---------|
// |15  12|11 9|8    6|5       0|
type ldr struct {
	dr     Reg
	base   Reg
	offset Word
}

var _ operation = &ldr{}

func (op *ldr) Decode(ins Instruction) {
	*op = ldr{
		dr:     ins.DR(),
		base:   ins.BaseR(),
		offset: ins.Offset(OFFSET6),
	}
}

func (op *ldr) Execute(cpu *CPU, mem *Memory) error {
	val, err := mem.Read(cpu.Reg[op.base] + op.offset)
	if err != nil {
		return err
	}

	cpu.Reg[op.dr] = val
	cpu.UpdateCond(val)

	return nil
}

// LEA: Load effective address
//
// | 1110 | DR | OFFSET9 |
// |------+----+---------|
// |15  12|11 9|8       0|
type lea struct {
	dr     Reg
	offset Word
}

var _ operation = &lea{}

func (op *lea) Decode(ins Instruction) {
	*op = lea{
		dr:     ins.DR(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *lea) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[op.dr] = cpu.Reg[PC] + op.offset
	cpu.UpdateCond(cpu.Reg[op.dr])

	return nil
}

// ST: Store word in memory.
//
// | 0011 | SR | OFFSET9 |
// |------+----+---------|
// |15  12|11 9|8       0|
type st struct {
	sr     Reg
	offset Word
}

var _ operation = &st{}

func (op *st) Decode(ins Instruction) {
	*op = st{
		sr:     ins.SR(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *st) Execute(cpu *CPU, mem *Memory) error {
	mem.Write(cpu.Reg[PC]+op.offset, cpu.Reg[op.sr])

	return nil
}

// STI: Store indirect.
//
// | 1011 | SR | OFFSET9 |
// |------+----+---------|
// |15  12|11 9|8       0|
type sti struct {
	sr     Reg
	offset Word
}

var _ operation = &sti{}

func (op *sti) Decode(ins Instruction) {
	*op = sti{
		sr:     ins.SR(),
		offset: ins.Offset(OFFSET9),
	}
}

func (op *sti) Execute(cpu *CPU, mem *Memory) error {
	addr, err := mem.Read(cpu.Reg[PC] + op.offset)
	if err != nil {
		return err
	}

	mem.Write(addr, cpu.Reg[op.sr])

	return nil
}

// STR: Store base+offset.
//
// | 0111 | SR | BASE | OFFSET6 |
// |------+----+------+---------|
// |15  12|11 9|8    6|5       0|
type str struct {
	sr     Reg
	base   Reg
	offset Word
}

var _ operation = &str{}

func (op *str) Decode(ins Instruction) {
	*op = str{
		sr:     ins.SR(),
		base:   ins.BaseR(),
		offset: ins.Offset(OFFSET6),
	}
}

func (op *str) Execute(cpu *CPU, mem *Memory) error {
	mem.Write(cpu.Reg[op.base]+op.offset, cpu.Reg[op.sr])

	return nil
}

// JMP: Unconditional branch. BaseR of R7 is the RET convention.
//
// | 1100 | 000 | BASE | 00 0000 |
// |------+-----+------+---------|
// |15  12|11  9|8    6|5       0|
type jmp struct {
	base Reg
}

var _ operation = &jmp{}

func (op *jmp) Decode(ins Instruction) {
	*op = jmp{
		base: ins.BaseR(),
	}
}

func (op *jmp) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[PC] = cpu.Reg[op.base]

	return nil
}

// JSR: Jump to subroutine (PC-relative mode)
//
// | 0100 |  1 | OFFSET11 |
// |------+----+----------|
// |15  12| 11 |10       0|
type jsr struct {
	offset Word
}

var _ operation = &jsr{}

func (op *jsr) Decode(ins Instruction) {
	*op = jsr{
		offset: ins.Offset(OFFSET11),
	}
}

func (op *jsr) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[RETP] = cpu.Reg[PC]
	cpu.Reg[PC] += op.offset

	return nil
}

// JSRR: Jump to subroutine (register mode)
//
// | 0100 |  0 | 00 | BASE | 00 0000 |
// |------+----+----+------+---------|
// |15  12| 11 |10 9|8    6|5       0|
type jsrr struct {
	base Reg
}

var _ operation = &jsrr{}

func (op *jsrr) Decode(ins Instruction) {
	*op = jsrr{
		base: ins.BaseR(),
	}
}

func (op *jsrr) Execute(cpu *CPU, _ *Memory) error {
	cpu.Reg[RETP] = cpu.Reg[PC]
	cpu.Reg[PC] = cpu.Reg[op.base]

	return nil
}

// RTI: Return from interrupt. Interrupt delivery is not implemented, so
// executing RTI fails.
//
// | 1000 | 0000 0000 0000 |
// |------+----------------|
// |15  12|11             0|
type rti struct{}

var _ operation = &rti{}

func (op *rti) Decode(Instruction) {}

func (op *rti) Execute(*CPU, *Memory) error {
	return ErrUnsupportedInstruction
}

// RESV: Reserved operator. Executes as a no-op.
//
// | 1101 | 0000 0000 0000 |
// |------+----------------|
// |15  12|11             0|
type resv struct{}

var _ operation = &resv{}

func (op *resv) Decode(Instruction) {}

func (op *resv) Execute(*CPU, *Memory) error {
	return nil
}
