package nes

// axrom is mapper 7: switchable 32 KiB PRG bank, single-screen
// mirroring selected by a control bit, 8 KiB CHR RAM.
// https://www.nesdev.org/wiki/AxROM
type axrom struct {
	prgBanks32k int
	selectBank  int
	screen      mirrorMode
}

func newAxROM(prgBanks int) *axrom {
	return &axrom{prgBanks32k: prgBanks / 2, screen: mirrorSingleLo}
}

func (m *axrom) CPURead(address uint16) (int, AccessMode) {
	if address < 0x8000 {
		return 0, AccessNone
	}
	return m.selectBank*0x8000 + int(address-0x8000), AccessPRGROM
}

func (m *axrom) CPUWrite(address uint16, data byte) (int, AccessMode) {
	if address < 0x8000 {
		return 0, AccessNone
	}
	banks := m.prgBanks32k
	if banks == 0 {
		banks = 1
	}
	m.selectBank = int(data&0x07) % banks
	if data&0x10 != 0 {
		m.screen = mirrorSingleHi
	} else {
		m.screen = mirrorSingleLo
	}
	return 0, AccessNone
}

func (m *axrom) PPURead(address uint16) (int, AccessMode)         { return int(address), AccessCHR }
func (m *axrom) PPUWrite(address uint16, data byte) (int, AccessMode) { return int(address), AccessCHR }
func (m *axrom) Mirroring() mirrorMode                            { return m.screen }
func (m *axrom) IRQSignaled() bool                                { return false }
func (m *axrom) NotifyA12(bit12 bool)                             {}
