package nes

// nrom is mapper 0: no banking. https://www.nesdev.org/wiki/NROM
type nrom struct {
	prgBanks  int
	mirroring mirrorMode
}

func newNROM(prgBanks int, mirroring mirrorMode) *nrom {
	return &nrom{prgBanks: prgBanks, mirroring: mirroring}
}

func (m *nrom) CPURead(address uint16) (int, AccessMode) {
	switch {
	case address >= 0x8000:
		// 16 KiB NROM-128 mirrors across both halves; 32 KiB NROM-256
		// fills both halves directly.
		i := int(address-0x8000) % (m.prgBanks * prgBankUnit)
		return i, AccessPRGROM
	case address >= 0x6000:
		return int(address - 0x6000), AccessPRGRAM
	default:
		return 0, AccessNone
	}
}

func (m *nrom) CPUWrite(address uint16, data byte) (int, AccessMode) {
	if address >= 0x6000 && address < 0x8000 {
		return int(address - 0x6000), AccessPRGRAM
	}
	return 0, AccessNone
}

func (m *nrom) PPURead(address uint16) (int, AccessMode) {
	return int(address), AccessCHR
}

func (m *nrom) PPUWrite(address uint16, data byte) (int, AccessMode) {
	return int(address), AccessCHR
}

func (m *nrom) Mirroring() mirrorMode   { return m.mirroring }
func (m *nrom) IRQSignaled() bool       { return false }
func (m *nrom) NotifyA12(bit12 bool)    {}
