package vm

// cpu.go defines the CPU and its instruction cycle.

import (
	"errors"
	"fmt"

	"github.com/CairBin/go-lc3-vm/internal/log"
)

// PCStart is the address of the first instruction executed after power-on.
const PCStart Word = 0x3000

// Execution errors. All of them end the run.
var (
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	ErrUnknownOpcode          = errors.New("unknown opcode")
	ErrUnknownTrap            = errors.New("unknown trap")
)

// CPU holds the register file and the running flag and executes one
// instruction per Step against a borrowed memory handle.
type CPU struct {
	Reg     RegisterFile // General and special purpose registers.
	Running bool         // True while executing; cleared by the HALT trap.

	cons Console
	log  *log.Logger
}

// NewCPU initializes a CPU. The program counter starts at PCStart and the
// condition register starts with the zero flag so it always holds exactly
// one flag.
func NewCPU(cons Console) *CPU {
	cpu := &CPU{
		cons: cons,
		log:  log.DefaultLogger(),
	}
	cpu.Reg[PC] = PCStart
	cpu.Reg[COND] = Word(ConditionZero)

	return cpu
}

func (cpu *CPU) String() string {
	return cpu.Reg.String()
}

// Cond returns the current condition flags.
func (cpu *CPU) Cond() Condition {
	return Condition(cpu.Reg[COND])
}

// UpdateCond sets the condition flags from a result word.
func (cpu *CPU) UpdateCond(val Word) {
	cond := Condition(cpu.Reg[COND])
	cond.Update(val)
	cpu.Reg[COND] = Word(cond)
}

// Step executes a single instruction to completion: fetch the word at PC,
// increment PC, decode and execute. PC-relative operands therefore see the
// already-incremented PC.
func (cpu *CPU) Step(mem *Memory) error {
	word, err := mem.Read(cpu.Reg[PC])
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	cpu.Reg[PC]++

	ins := Instruction(word)

	op := decode(ins)
	if op == nil {
		// Unreachable: four opcode bits cover all sixteen cases.
		return fmt.Errorf("ins: %s: %w", ins, ErrUnknownOpcode)
	}

	op.Decode(ins)

	cpu.log.Debug("EXEC", "IR", ins)

	if err := op.Execute(cpu, mem); err != nil {
		return fmt.Errorf("ins: %s: %w", ins, err)
	}

	return nil
}

// decode selects the operation for an instruction. Immediate-mode ADD and
// AND decode to distinct operations.
func decode(ins Instruction) operation {
	switch ins.Opcode() {
	case BR:
		return &br{}
	case ADD:
		if ins.Imm() {
			return &addImm{}
		}

		return &add{}
	case LD:
		return &ld{}
	case ST:
		return &st{}
	case JSR:
		if ins.Relative() {
			return &jsr{}
		}

		return &jsrr{}
	case AND:
		if ins.Imm() {
			return &andImm{}
		}

		return &and{}
	case LDR:
		return &ldr{}
	case STR:
		return &str{}
	case RTI:
		return &rti{}
	case NOT:
		return &not{}
	case LDI:
		return &ldi{}
	case STI:
		return &sti{}
	case JMP:
		return &jmp{}
	case RES:
		return &resv{}
	case LEA:
		return &lea{}
	case TRAP:
		return &trap{}
	}

	return nil
}
