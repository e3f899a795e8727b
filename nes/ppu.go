package nes

import "image"

// PPU emulates the 2C02 Picture Processing Unit: background and
// sprite pipelines, palette RAM, OAM, the Loopy v/t/x scroll
// registers, and the 8 CPU-visible ports.
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://www.nesdev.org/wiki/PPU_scrolling
type PPU struct {
	cartridge *Cartridge
	palette   [64]RGB

	// CPU-visible registers.
	ctrl   byte
	mask   byte
	status byte

	oamAddr byte

	writeToggle bool
	fineX       byte
	t           uint16
	v           uint16
	readBuffer  byte
	openBus     byte

	// Timing.
	Scanline int
	Cycle    int
	oddFrame bool

	paletteRAM [32]byte
	primaryOAM [256]byte

	// Secondary OAM: up to 8 sprites selected for the next scanline.
	secondary      [8]oamSprite
	secondaryCount int
	spriteOverflow bool

	// Background pipeline state.
	ntByte, atByte, ptLowByte, ptHighByte byte
	bgPatternLo, bgPatternHi              uint16
	bgAttrLo, bgAttrHi                    byte
	bgAttrLatchLo, bgAttrLatchHi          bool

	// Sprite fetch output for the current scanline, indexed 0..7.
	spritePatternLo [8]byte
	spritePatternHi [8]byte
	spriteAttr      [8]byte
	spriteX         [8]byte
	spriteIsZero    [8]bool
	spriteCount     int

	FrameBuffer [256 * 240]byte // palette indices 0-63
	FrameReady  bool
}

type oamSprite struct {
	y, tile, attr, x byte
	index            int
}

func NewPPU(cartridge *Cartridge) *PPU {
	return &PPU{cartridge: cartridge, palette: DefaultPalette()}
}

// SetPalette overrides the system palette used to translate indices
// into RGB triples for the frame buffer.
func (p *PPU) SetPalette(t [64]RGB) { p.palette = t }

func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.writeToggle = false
	p.v = 0
	p.t = 0
	p.fineX = 0
	p.Scanline = 261
	p.Cycle = 0
	p.oddFrame = false
}

// --- register bit helpers -------------------------------------------------

func (p *PPU) ctrlNMIEnable() bool    { return p.ctrl&0x80 != 0 }
func (p *PPU) ctrlSpriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}
func (p *PPU) ctrlBgHalf() uint16     { return uint16(p.ctrl&0x10) << 8 } // 0 or 0x1000
func (p *PPU) ctrlSpriteHalf() uint16 { return uint16(p.ctrl&0x08) << 9 } // 0 or 0x1000
func (p *PPU) ctrlIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) maskShowBg() bool     { return p.mask&0x08 != 0 }
func (p *PPU) maskShowSprites() bool { return p.mask&0x10 != 0 }
func (p *PPU) maskShowBgLeft() bool  { return p.mask&0x02 != 0 }
func (p *PPU) maskShowSpLeft() bool  { return p.mask&0x04 != 0 }
func (p *PPU) renderingEnabled() bool { return p.maskShowBg() || p.maskShowSprites() }

// Image translates the current frame buffer of palette indices into
// an RGBA image through the active system palette, for host display.
func (p *PPU) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 256, 240))
	for i, idx := range p.FrameBuffer {
		c := p.palette[idx&0x3F]
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 0xFF
	}
	return img
}

// NMIOutput reports the PPU's current NMI output line, which the
// Console edge-detects to drive the CPU's NMI latch.
func (p *PPU) NMIOutput() bool {
	return p.status&0x80 != 0 && p.ctrlNMIEnable()
}

// --- port reads/writes ------------------------------------------------------

// ReadPort dispatches a CPU read to one of the 8 mirrored PPU ports
// ($2000-$2007, mirrored every 8 bytes up to $3FFF).
func (p *PPU) ReadPort(address uint16) byte {
	switch address & 0x0007 {
	case 2:
		return p.readStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readData()
	default:
		return p.openBus
	}
}

// WritePort dispatches a CPU write to one of the 8 mirrored ports.
func (p *PPU) WritePort(address uint16, data byte) {
	p.openBus = data
	switch address & 0x0007 {
	case 0:
		p.writeCtrl(data)
	case 1:
		p.mask = data
	case 3:
		p.oamAddr = data
	case 4:
		p.writeOAMData(data)
	case 5:
		p.writeScroll(data)
	case 6:
		p.writeAddr(data)
	case 7:
		p.writeData(data)
	}
}

func (p *PPU) writeCtrl(data byte) {
	p.ctrl = data
	p.t = (p.t &^ 0x0C00) | (uint16(data&0x03) << 10)
}

func (p *PPU) readStatus() byte {
	result := (p.status & 0xE0) | (p.openBus & 0x1F)
	p.status &^= 0x80
	p.writeToggle = false
	p.openBus = result
	return result
}

func (p *PPU) writeOAMData(data byte) {
	p.primaryOAM[p.oamAddr] = data
	p.oamAddr++
}

func (p *PPU) readOAMData() byte {
	p.openBus = p.primaryOAM[p.oamAddr]
	return p.openBus
}

func (p *PPU) writeScroll(data byte) {
	if !p.writeToggle {
		p.fineX = data & 0x07
		p.t = (p.t &^ 0x001F) | uint16(data>>3)
		p.writeToggle = true
	} else {
		p.t = (p.t &^ 0x73E0) | (uint16(data&0x07) << 12) | (uint16(data>>3) << 5)
		p.writeToggle = false
	}
}

func (p *PPU) writeAddr(data byte) {
	if !p.writeToggle {
		p.t = (p.t &^ 0x7F00) | (uint16(data&0x3F) << 8)
		p.writeToggle = true
	} else {
		p.t = (p.t &^ 0x00FF) | uint16(data)
		p.v = p.t
		p.writeToggle = false
	}
}

func (p *PPU) readData() byte {
	address := p.v & 0x3FFF
	var result byte
	if address >= 0x3F00 {
		result = p.readPalette(address)
		p.readBuffer = p.cartridge.ppuRead(address & 0x2FFF)
	} else {
		result = p.readBuffer
		p.readBuffer = p.cartridge.ppuRead(address)
	}
	p.v += p.ctrlIncrement()
	p.v &= 0x7FFF
	p.openBus = result
	return result
}

func (p *PPU) writeData(data byte) {
	address := p.v & 0x3FFF
	if address >= 0x3F00 {
		p.writePalette(address, data)
	} else {
		p.cartridge.ppuWrite(address, data)
	}
	p.v += p.ctrlIncrement()
	p.v &= 0x7FFF
}

// --- palette RAM -------------------------------------------------------------

func palettePhysicalIndex(address uint16) uint16 {
	idx := address & 0x1F
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) readPalette(address uint16) byte {
	return p.paletteRAM[palettePhysicalIndex(address)] & paletteReadMask(p)
}

func paletteReadMask(p *PPU) byte {
	if p.mask&0x01 != 0 { // greyscale
		return 0x30
	}
	return 0x3F
}

func (p *PPU) writePalette(address uint16, data byte) {
	p.paletteRAM[palettePhysicalIndex(address)] = data
}
