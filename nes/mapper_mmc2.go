package nes

// mmc2 is mapper 9, built for Punch-Out!!: an 8 KiB switchable PRG
// window at $8000-$9FFF with the remaining three 8 KiB banks fixed to
// the cartridge's last three, and two independently latched 4 KiB CHR
// windows whose latch flips when the PPU fetches specific trigger
// tile addresses. https://www.nesdev.org/wiki/MMC2
type mmc2 struct {
	prgBanks8k int
	chrBanks4k int

	prgBank int

	latch0, latch1     bool // false selects the "FD" bank, true the "FE" bank
	chr0FD, chr0FE     byte
	chr1FD, chr1FE     byte

	mirrorHV bool
}

func newMMC2(prgBanks int, _ mirrorMode) *mmc2 {
	m := &mmc2{prgBanks8k: prgBanks * 2}
	if m.prgBanks8k < 4 {
		m.prgBanks8k = 4
	}
	m.chrBanks4k = 4
	return m
}

func (m *mmc2) Mirroring() mirrorMode {
	if m.mirrorHV {
		return mirrorHorizontal
	}
	return mirrorVertical
}

func (m *mmc2) CPURead(address uint16) (int, AccessMode) {
	switch {
	case address < 0x8000:
		return 0, AccessNone
	case address < 0xA000:
		return (m.prgBank%m.prgBanks8k)*0x2000 + int(address-0x8000), AccessPRGROM
	case address < 0xC000:
		return (m.prgBanks8k-3)*0x2000 + int(address-0xA000), AccessPRGROM
	case address < 0xE000:
		return (m.prgBanks8k-2)*0x2000 + int(address-0xC000), AccessPRGROM
	default:
		return (m.prgBanks8k-1)*0x2000 + int(address-0xE000), AccessPRGROM
	}
}

func (m *mmc2) CPUWrite(address uint16, data byte) (int, AccessMode) {
	switch {
	case address < 0xA000:
	case address < 0xB000:
		m.prgBank = int(data & 0x0F)
	case address < 0xC000:
		m.chr0FD = data & 0x1F
	case address < 0xD000:
		m.chr0FE = data & 0x1F
	case address < 0xE000:
		m.chr1FD = data & 0x1F
	case address < 0xF000:
		m.chr1FE = data & 0x1F
	default:
		m.mirrorHV = data&0x01 != 0
	}
	return 0, AccessNone
}

func (m *mmc2) PPURead(address uint16) (int, AccessMode) {
	m.latchOn(address)
	var bank byte
	var base uint16
	if address < 0x1000 {
		base = 0
		if m.latch0 {
			bank = m.chr0FE
		} else {
			bank = m.chr0FD
		}
	} else {
		base = 0x1000
		if m.latch1 {
			bank = m.chr1FE
		} else {
			bank = m.chr1FD
		}
	}
	return int(bank)*0x1000 + int(address-base), AccessCHR
}

func (m *mmc2) PPUWrite(address uint16, data byte) (int, AccessMode) {
	return m.PPURead(address)
}

// latchOn flips the relevant window's latch when a PPU fetch hits one
// of the hardware's trigger addresses.
func (m *mmc2) latchOn(address uint16) {
	switch address {
	case 0x0FD8:
		m.latch0 = false
	case 0x0FE8:
		m.latch0 = true
	}
	if address >= 0x1FD8 && address <= 0x1FDF {
		m.latch1 = false
	} else if address >= 0x1FE8 && address <= 0x1FEF {
		m.latch1 = true
	}
}

func (m *mmc2) IRQSignaled() bool    { return false }
func (m *mmc2) NotifyA12(bit12 bool) {}
