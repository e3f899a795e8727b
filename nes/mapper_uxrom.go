package nes

// uxrom is mapper 2: switchable 16 KiB PRG window at $8000-$BFFF, the
// last 16 KiB bank fixed at $C000-$FFFF. CHR is 8 KiB RAM.
// https://www.nesdev.org/wiki/UxROM
type uxrom struct {
	prgBanks    int
	selectBank  int
	mirroring   mirrorMode
}

func newUxROM(prgBanks int, mirroring mirrorMode) *uxrom {
	return &uxrom{prgBanks: prgBanks, mirroring: mirroring}
}

func (m *uxrom) CPURead(address uint16) (int, AccessMode) {
	switch {
	case address >= 0xC000:
		return (m.prgBanks-1)*prgBankUnit + int(address-0xC000), AccessPRGROM
	case address >= 0x8000:
		return m.selectBank*prgBankUnit + int(address-0x8000), AccessPRGROM
	case address >= 0x6000:
		return int(address - 0x6000), AccessPRGRAM
	default:
		return 0, AccessNone
	}
}

func (m *uxrom) CPUWrite(address uint16, data byte) (int, AccessMode) {
	switch {
	case address >= 0x8000:
		m.selectBank = int(data) % m.prgBanks
		return 0, AccessNone
	case address >= 0x6000:
		return int(address - 0x6000), AccessPRGRAM
	default:
		return 0, AccessNone
	}
}

func (m *uxrom) PPURead(address uint16) (int, AccessMode)         { return int(address), AccessCHR }
func (m *uxrom) PPUWrite(address uint16, data byte) (int, AccessMode) { return int(address), AccessCHR }
func (m *uxrom) Mirroring() mirrorMode                            { return m.mirroring }
func (m *uxrom) IRQSignaled() bool                                { return false }
func (m *uxrom) NotifyA12(bit12 bool)                             {}
