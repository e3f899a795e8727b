package nes

// mmc1 is mapper 1: a 5-bit serial shift register absorbs 5
// consecutive low-bit writes to $8000-$FFFF into one of four internal
// registers chosen by the address range of the 5th write.
// https://www.nesdev.org/wiki/MMC1
type mmc1 struct {
	prgBanks16k int
	chrBanks4k  int

	shift      byte
	shiftCount int

	control  byte // bit0-1 mirroring, bit2-3 prg mode, bit4 chr mode
	chrBank0 byte
	chrBank1 byte
	prgBank  byte
}

func newMMC1(prgBanks, chrBanks int) *mmc1 {
	m := &mmc1{prgBanks16k: prgBanks}
	m.chrBanks4k = chrBanks * 2 // header counts 8 KiB CHR banks; MMC1 switches 4 KiB units
	if m.chrBanks4k == 0 {
		m.chrBanks4k = 2 // CHR-RAM: treat as a single 8 KiB space split into two 4 KiB halves
	}
	m.control = 0x0C // power-on: PRG mode 3 (fix last bank at $C000)
	return m
}

func (m *mmc1) prgMode() int  { return int(m.control>>2) & 0x03 }
func (m *mmc1) chrMode() int  { return int(m.control>>4) & 0x01 }

func (m *mmc1) Mirroring() mirrorMode {
	switch m.control & 0x03 {
	case 0:
		return mirrorSingleLo
	case 1:
		return mirrorSingleHi
	case 2:
		return mirrorVertical
	default:
		return mirrorHorizontal
	}
}

// prgBank16kHalf reports which 256 KiB half of a >256KiB PRG-ROM image
// is selected, for SOROM/SUROM/SXROM boards; harmless on smaller boards.
func (m *mmc1) prgBank16kHalf() int {
	if m.prgBanks16k <= 16 {
		return 0
	}
	return int(m.chrBank0>>4) & 0x01
}

func (m *mmc1) prgBankIndex() int {
	bank := int(m.prgBank & 0x0F)
	half := m.prgBank16kHalf() * 16
	switch m.prgMode() {
	case 0, 1: // 32 KiB mode: ignore low bit of bank
		return half + (bank &^ 1)
	case 2: // fix first bank at $8000, switch $C000
		return half + bank
	default: // 3: switch $8000, fix last bank at $C000
		return half + bank
	}
}

func (m *mmc1) CPURead(address uint16) (int, AccessMode) {
	if address < 0x6000 {
		return 0, AccessNone
	}
	if address < 0x8000 {
		bank := int(m.chrBank0>>2) & 0x03
		return bank*0x2000 + int(address-0x6000), AccessPRGRAM
	}
	banks16k := m.prgBanks16k
	switch m.prgMode() {
	case 0, 1:
		base := (m.prgBankIndex() / 2) * 2 // 32 KiB window, even bank
		return base*prgBankUnit + int(address-0x8000), AccessPRGROM
	case 2:
		if address < 0xC000 {
			return m.prgBank16kHalf()*16*prgBankUnit + int(address-0x8000), AccessPRGROM
		}
		return (m.prgBankIndex())*prgBankUnit + int(address-0xC000), AccessPRGROM
	default: // 3
		if address < 0xC000 {
			return m.prgBankIndex()*prgBankUnit + int(address-0x8000), AccessPRGROM
		}
		// The fixed bank is always the last bank of whichever 256 KiB
		// half is selected: bank 15 of the lower half on >256 KiB
		// boards, or the ROM's true last bank otherwise (including the
		// upper half of a >256 KiB board, per
		// original_source/src/mappers/mapper_001.c's prg_rom_size>16
		// special case).
		last := banks16k - 1
		if m.prgBank16kHalf() == 0 && banks16k > 16 {
			last = 15
		}
		return last*prgBankUnit + int(address-0xC000), AccessPRGROM
	}
}

func (m *mmc1) CPUWrite(address uint16, data byte) (int, AccessMode) {
	if address < 0x6000 {
		return 0, AccessNone
	}
	if address < 0x8000 {
		bank := int(m.chrBank0>>2) & 0x03
		return bank*0x2000 + int(address-0x6000), AccessPRGRAM
	}
	if data&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return 0, AccessNone
	}
	m.shift |= (data & 0x01) << uint(m.shiftCount)
	m.shiftCount++
	if m.shiftCount < 5 {
		return 0, AccessNone
	}
	value := m.shift
	m.shift = 0
	m.shiftCount = 0
	switch {
	case address < 0xA000:
		m.control = value
	case address < 0xC000:
		m.chrBank0 = value
	case address < 0xE000:
		m.chrBank1 = value
	default:
		m.prgBank = value
	}
	return 0, AccessNone
}

func (m *mmc1) chrBankIndex4k(half int) int {
	if m.chrMode() == 0 {
		// 8 KiB mode: chrBank0's low bits select an 8 KiB bank, ignore chrBank1.
		base := (int(m.chrBank0) &^ 1) % m.chrBanks4k
		return (base + half) % m.chrBanks4k
	}
	if half == 0 {
		return int(m.chrBank0) % m.chrBanks4k
	}
	return int(m.chrBank1) % m.chrBanks4k
}

func (m *mmc1) PPURead(address uint16) (int, AccessMode) {
	half := 0
	if address >= 0x1000 {
		half = 1
	}
	bank := m.chrBankIndex4k(half)
	return bank*0x1000 + int(address&0x0FFF), AccessCHR
}

func (m *mmc1) PPUWrite(address uint16, data byte) (int, AccessMode) {
	return m.PPURead(address)
}

func (m *mmc1) IRQSignaled() bool    { return false }
func (m *mmc1) NotifyA12(bit12 bool) {}
