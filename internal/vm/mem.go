package vm

// mem.go contains the machine's memory.

import (
	"fmt"
)

// Memory size and reserved addresses.
const (
	MemorySize = 1 << 16 // Addressable words.

	KBSRAddr Word = 0xfe00 // Keyboard status register; bit 15 is the ready flag.
	KBDRAddr Word = 0xfe02 // Keyboard data register.
)

// KeyboardReady is the ready flag in the keyboard status register.
const KeyboardReady Word = 1 << 15

// Memory is the machine's word-addressable storage. Two addresses in the
// cell array double as the keyboard device registers: reading the status
// register polls the console and latches the next key into the data
// register.
type Memory struct {
	cell [MemorySize]Word
	cons Console
}

// NewMemory initializes memory with every cell zeroed. The console services
// the keyboard registers.
func NewMemory(cons Console) *Memory {
	return &Memory{cons: cons}
}

// Write unconditionally stores a word at an address.
func (mem *Memory) Write(addr Word, val Word) {
	mem.cell[addr] = val
}

// Read returns the word at an address.
//
// A read of the keyboard status register refreshes the status and data
// registers from the console: if a key is buffered, the ready flag is set
// and the key is consumed into the data register. A read of any other
// address clears the status register first.
func (mem *Memory) Read(addr Word) (Word, error) {
	if addr == KBSRAddr {
		if mem.cons.KeyReady() {
			mem.cell[KBSRAddr] = KeyboardReady

			key, err := mem.cons.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("mem: kbd: %w", err)
			}

			mem.cell[KBDRAddr] = Word(key)
		}
	} else {
		mem.cell[KBSRAddr] = 0
	}

	return mem.cell[addr], nil
}
