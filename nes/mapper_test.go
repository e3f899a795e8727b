package nes

import "testing"

func TestNROMMirrorsA16KiBImageAcrossBothHalves(t *testing.T) {
	m := newNROM(1, mirrorHorizontal)
	lo, mode := m.CPURead(0x8000)
	if mode != AccessPRGROM || lo != 0 {
		t.Fatalf("CPURead($8000) = (%d,%v), want (0,AccessPRGROM)", lo, mode)
	}
	hi, _ := m.CPURead(0xC000)
	if hi != 0 {
		t.Fatalf("CPURead($C000) = %d, want 0 (mirrored 16 KiB image)", hi)
	}
}

func TestUxROMSwitchesLowBankFixesHighBank(t *testing.T) {
	m := newUxROM(4, mirrorVertical)
	m.CPUWrite(0x8000, 0x02)
	lo, mode := m.CPURead(0x8000)
	if mode != AccessPRGROM || lo != 2*prgBankUnit {
		t.Fatalf("CPURead($8000) after selecting bank 2 = (%d,%v)", lo, mode)
	}
	hi, _ := m.CPURead(0xC000)
	if hi != 3*prgBankUnit {
		t.Fatalf("CPURead($C000) = %d, want fixed last bank at %d", hi, 3*prgBankUnit)
	}
}

func TestMMC1PowerOnFixesLastBankAtC000(t *testing.T) {
	m := newMMC1(8, 1)
	hi, mode := m.CPURead(0xC000)
	if mode != AccessPRGROM || hi != (8-1)*prgBankUnit {
		t.Fatalf("CPURead($C000) at power-on = (%d,%v), want last bank fixed", hi, mode)
	}
}

func TestMMC1PRGMode3FixesTrueLastBankOnUpperHalf(t *testing.T) {
	m := newMMC1(32, 1) // 512 KiB PRG-ROM (SUROM-class board)
	mmc1Write(m, 0x8000, 0x0C) // PRG mode 3 (fix last bank at $C000)
	mmc1Write(m, 0xA000, 0x10) // chrBank0 bit 4 set: select the upper 256 KiB half
	hi, mode := m.CPURead(0xC000)
	want := (32 - 1) * prgBankUnit
	if mode != AccessPRGROM || hi != want {
		t.Fatalf("CPURead($C000) with upper half selected = (%d,%v), want the ROM's true last bank at %d", hi, mode, want)
	}
}

func TestMMC1PRGMode3FixesBank15OnLowerHalf(t *testing.T) {
	m := newMMC1(32, 1)
	mmc1Write(m, 0x8000, 0x0C) // PRG mode 3, chrBank0 bit 4 still clear: lower half
	hi, mode := m.CPURead(0xC000)
	want := 15 * prgBankUnit
	if mode != AccessPRGROM || hi != want {
		t.Fatalf("CPURead($C000) with lower half selected = (%d,%v), want bank 15 at %d", hi, mode, want)
	}
}

func mmc1Write(m *mmc1, address uint16, value byte) {
	for i := 0; i < 5; i++ {
		m.CPUWrite(address, (value>>uint(i))&0x01)
	}
}

func TestMMC1SerialShiftSelectsPRGBank(t *testing.T) {
	m := newMMC1(8, 1)
	mmc1Write(m, 0x8000, 0x0C) // control: PRG mode 3, CHR mode 0
	mmc1Write(m, 0xE000, 0x03) // select PRG bank 3 at $8000
	lo, mode := m.CPURead(0x8000)
	if mode != AccessPRGROM || lo != 3*prgBankUnit {
		t.Fatalf("CPURead($8000) after selecting bank 3 = (%d,%v)", lo, mode)
	}
}

func TestMMC1ResetBitReassertsControl(t *testing.T) {
	m := newMMC1(8, 1)
	mmc1Write(m, 0x8000, 0x00) // switch to PRG mode 0 (32 KiB)
	m.CPUWrite(0x8000, 0x80)   // reset bit
	if m.control&0x0C != 0x0C {
		t.Fatalf("reset write did not reassert PRG mode 3, control=%#x", m.control)
	}
}

func TestMMC3PRGModeSwapsFixedBankHalf(t *testing.T) {
	m := newMMC3(4, 2, mirrorHorizontal) // 8 banks of 8 KiB PRG
	m.CPUWrite(0x8000, 0x06)             // select register R6
	m.CPUWrite(0x8001, 0x02)             // R6 = bank 2
	lo, _ := m.CPURead(0x8000)
	if lo != 2*0x2000 {
		t.Fatalf("PRG mode 0: $8000 should be switchable bank R6=2, got %d", lo)
	}
	m.CPUWrite(0x8000, 0x46) // bankSelect bit 6 set: swap $8000/$C000 halves, R6 still targeted
	m.CPUWrite(0x8001, 0x02)
	lo2, _ := m.CPURead(0x8000)
	secondLast := (m.prgBanks8k - 2)
	if lo2 != secondLast*0x2000 {
		t.Fatalf("PRG mode 1: $8000 should be fixed to second-last bank %d, got bank %d", secondLast, lo2/0x2000)
	}
}

func TestMMC3IRQCounterFiresOnReload(t *testing.T) {
	m := newMMC3(4, 2, mirrorHorizontal)
	m.CPUWrite(0xC000, 0x00) // irqLatch = 0
	m.CPUWrite(0xC001, 0x00) // force reload on next A12 rise
	m.CPUWrite(0xE001, 0x00) // enable IRQ
	m.NotifyA12(false)
	m.NotifyA12(true) // rising edge: reload to latch (0), counter==0 && enabled -> pending
	if !m.IRQSignaled() {
		t.Fatalf("MMC3 IRQ not signaled when counter reloads to 0 with IRQs enabled")
	}
}

func TestMMC3IRQAckClearsPending(t *testing.T) {
	m := newMMC3(4, 2, mirrorHorizontal)
	m.irqPending = true
	m.CPUWrite(0xE000, 0x00) // disable + acknowledge
	if m.IRQSignaled() {
		t.Fatalf("MMC3 IRQ still signaled after $E000 acknowledge write")
	}
}

func TestAxROMSelectsSingleScreenAndBank(t *testing.T) {
	m := newAxROM(4) // 4 PRG banks of 16 KiB = 2 banks of 32 KiB
	m.CPUWrite(0x8000, 0x11)
	lo, mode := m.CPURead(0x8000)
	if mode != AccessPRGROM || lo != 1*0x8000 {
		t.Fatalf("CPURead($8000) after selecting 32KiB bank 1 = (%d,%v)", lo, mode)
	}
	if m.Mirroring() != mirrorSingleHi {
		t.Fatalf("Mirroring() = %v, want mirrorSingleHi with bit 4 set", m.Mirroring())
	}
}

func TestMMC2LatchSwitchesCHRBankOnTrigger(t *testing.T) {
	m := newMMC2(8, mirrorVertical)
	m.CPUWrite(0xB000, 0x05) // chr0FD = 5
	m.CPUWrite(0xC000, 0x09) // chr0FE = 9
	m.PPURead(0x0FD8)        // trigger: latch0 -> FD
	lo, _ := m.PPURead(0x0000)
	if lo != 5*0x1000 {
		t.Fatalf("latch0=FD should select chr0FD bank 5, got bank %d", lo/0x1000)
	}
	m.PPURead(0x0FE8) // trigger: latch0 -> FE
	lo2, _ := m.PPURead(0x0000)
	if lo2 != 9*0x1000 {
		t.Fatalf("latch0=FE should select chr0FE bank 9, got bank %d", lo2/0x1000)
	}
}
