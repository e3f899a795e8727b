package nes

import (
	"fmt"

	"github.com/nescore/emulator/ines"
)

const (
	prgBankUnit = 16384
	chrBankUnit = 8192
)

// Cartridge owns the cartridge-side byte regions a Mapper translates
// addresses into: PRG-ROM, PRG-RAM, CHR (ROM or RAM), and the 2 KiB
// nametable VRAM window. https://www.nesdev.org/wiki/INES
type Cartridge struct {
	PRGROM []byte
	PRGRAM []byte
	CHR    []byte
	CHRIsRAM bool
	VRAM   [2048]byte
	Battery bool

	mapper Mapper

	openBus byte
}

// NewCartridge adopts a parsed ROMImage and constructs its mapper.
// Mapper ids outside {0, 1, 2, 4, 7, 9} are rejected as
// UnsupportedMapper, per the Error Handling Design table.
func NewCartridge(rom *ines.ROMImage) (*Cartridge, error) {
	prgBanks := len(rom.PRGROM) / prgBankUnit
	chrBanks := len(rom.CHRROM) / chrBankUnit
	if rom.CHRRAM {
		chrBanks = 0
	}

	var mirror mirrorMode
	switch rom.Mirroring {
	case ines.Vertical:
		mirror = mirrorVertical
	case ines.FourScreen:
		mirror = mirrorFourScreen
	default:
		mirror = mirrorHorizontal
	}

	mapper := NewMapper(rom.MapperID, prgBanks, chrBanks, mirror)
	if mapper == nil {
		return nil, fmt.Errorf("UnsupportedMapper: mapper id %d is not in {0,1,2,4,7,9}", rom.MapperID)
	}

	ramSize := rom.PRGRAMBytes
	if ramSize == 0 {
		ramSize = 8192
	}

	c := &Cartridge{
		PRGROM:   rom.PRGROM,
		PRGRAM:   make([]byte, ramSize),
		CHR:      rom.CHRROM,
		CHRIsRAM: rom.CHRRAM,
		Battery:  rom.Battery,
		mapper:   mapper,
	}
	return c, nil
}

func (c *Cartridge) cpuRead(address uint16) byte {
	mapped, mode := c.mapper.CPURead(address)
	switch mode {
	case AccessPRGROM:
		c.openBus = c.PRGROM[mapped%len(c.PRGROM)]
	case AccessPRGRAM:
		c.openBus = c.PRGRAM[mapped%len(c.PRGRAM)]
	}
	return c.openBus
}

func (c *Cartridge) cpuWrite(address uint16, data byte) {
	mapped, mode := c.mapper.CPUWrite(address, data)
	if mode == AccessPRGRAM && len(c.PRGRAM) > 0 {
		c.PRGRAM[mapped%len(c.PRGRAM)] = data
	}
}

// ppuRead serves pattern-table ($0000-$1FFF) and nametable
// ($2000-$3EFF) addresses; palette RAM is owned and served by the PPU
// itself. Every call also feeds the mapper's A12 edge tracker.
func (c *Cartridge) ppuRead(address uint16) byte {
	address &= 0x3FFF
	c.mapper.NotifyA12(address&0x1000 != 0)
	if address < 0x2000 {
		mapped, mode := c.mapper.PPURead(address)
		if mode == AccessCHR && len(c.CHR) > 0 {
			return c.CHR[mapped%len(c.CHR)]
		}
		return 0
	}
	off := mirrorNametable(c.mapper.Mirroring(), address&0x2FFF)
	return c.VRAM[off%2048]
}

func (c *Cartridge) ppuWrite(address uint16, data byte) {
	address &= 0x3FFF
	c.mapper.NotifyA12(address&0x1000 != 0)
	if address < 0x2000 {
		if !c.CHRIsRAM {
			return
		}
		mapped, mode := c.mapper.PPUWrite(address, data)
		if mode == AccessCHR && len(c.CHR) > 0 {
			c.CHR[mapped%len(c.CHR)] = data
		}
		return
	}
	off := mirrorNametable(c.mapper.Mirroring(), address&0x2FFF)
	c.VRAM[off%2048] = data
}

func (c *Cartridge) irqSignaled() bool { return c.mapper.IRQSignaled() }
