package vm

import (
	"testing"
)

func TestMemoryKeyboard(tt *testing.T) {
	tt.Parallel()

	tt.Run("status read latches a buffered key", func(tt *testing.T) {
		t := NewTestHarness(tt)
		mem := NewMemory(t.cons)
		t.cons.keys = []byte{'x'}

		status, err := mem.Read(KBSRAddr)
		if err != nil {
			t.Error(err)
		}

		if status != KeyboardReady {
			t.Errorf("KBSR want: %s, got: %s", KeyboardReady, status)
		}

		// Reading the data register is a non-status read: it returns the
		// latched key and clears the ready flag.
		key, err := mem.Read(KBDRAddr)
		if err != nil {
			t.Error(err)
		}

		if key != 0x0078 {
			t.Errorf("KBDR want: %s, got: %s", Word(0x0078), key)
		}

		if mem.cell[KBSRAddr] != 0 {
			t.Errorf("KBSR not cleared: %s", mem.cell[KBSRAddr])
		}
	})

	tt.Run("status read with no key leaves the pair undisturbed", func(tt *testing.T) {
		t := NewTestHarness(tt)
		mem := NewMemory(t.cons)

		mem.Write(KBSRAddr, 0x1234)
		mem.Write(KBDRAddr, 0x0041)

		status, err := mem.Read(KBSRAddr)
		if err != nil {
			t.Error(err)
		}

		if status != 0x1234 {
			t.Errorf("KBSR want: %s, got: %s", Word(0x1234), status)
		}

		if mem.cell[KBDRAddr] != 0x0041 {
			t.Errorf("KBDR want: %s, got: %s", Word(0x0041), mem.cell[KBDRAddr])
		}
	})

	tt.Run("any other read clears the status register", func(tt *testing.T) {
		t := NewTestHarness(tt)
		mem := NewMemory(t.cons)

		mem.Write(KBSRAddr, KeyboardReady)
		mem.Write(0x3000, 0xbeef)

		val, err := mem.Read(0x3000)
		if err != nil {
			t.Error(err)
		}

		if val != 0xbeef {
			t.Errorf("mem want: %s, got: %s", Word(0xbeef), val)
		}

		if mem.cell[KBSRAddr] != 0 {
			t.Errorf("KBSR not cleared: %s", mem.cell[KBSRAddr])
		}
	})
}

func TestMemoryWrite(tt *testing.T) {
	tt.Parallel()

	t := NewTestHarness(tt)
	mem := NewMemory(t.cons)

	mem.Write(0x0000, 0x0001)
	mem.Write(0xffff, 0xfffe)
	mem.Write(KBSRAddr, 0x8000)

	if mem.cell[0x0000] != 0x0001 {
		t.Errorf("mem[0] want: %s, got: %s", Word(0x0001), mem.cell[0x0000])
	}

	if mem.cell[0xffff] != 0xfffe {
		t.Errorf("mem[0xffff] want: %s, got: %s", Word(0xfffe), mem.cell[0xffff])
	}

	if mem.cell[KBSRAddr] != 0x8000 {
		t.Errorf("mem[KBSR] want: %s, got: %s", Word(0x8000), mem.cell[KBSRAddr])
	}
}
