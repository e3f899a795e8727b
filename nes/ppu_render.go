package nes

// Step advances the PPU by one pixel-clock cycle: background/sprite
// fetches, scroll-register updates, pixel output, and vblank/NMI
// status edges. The Console calls this three times per CPU tick.
func (p *PPU) Step() {
	p.renderCycle()
	p.advance()
}

func (p *PPU) renderCycle() {
	visible := p.Scanline >= 0 && p.Scanline <= 239
	preRender := p.Scanline == 261
	rendering := (visible || preRender) && p.renderingEnabled()

	if rendering {
		if (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336) {
			p.shiftBackgroundRegisters()
			switch (p.Cycle - 1) % 8 {
			case 0:
				p.loadBackgroundShifters()
				p.ntByte = p.cartridge.ppuRead(0x2000 | (p.v & 0x0FFF))
			case 2:
				atAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
				raw := p.cartridge.ppuRead(atAddr)
				shift := ((p.v >> 4) & 4) | (p.v & 2)
				p.atByte = (raw >> shift) & 0x03
			case 4:
				addr := p.ctrlBgHalf() | (uint16(p.ntByte) << 4) | ((p.v >> 12) & 7)
				p.ptLowByte = p.cartridge.ppuRead(addr)
			case 6:
				addr := p.ctrlBgHalf() | (uint16(p.ntByte) << 4) | ((p.v >> 12) & 7) | 8
				p.ptHighByte = p.cartridge.ppuRead(addr)
			case 7:
				p.incCoarseX()
			}
		}
		if p.Cycle == 256 {
			p.incVerticalV()
		}
		if p.Cycle == 257 {
			p.loadBackgroundShifters()
			p.copyHorizontalBits()
			p.evaluateSpritesForNextScanline()
			p.fetchSpritePatterns()
		}
		if preRender && p.Cycle >= 280 && p.Cycle <= 304 {
			p.copyVerticalBits()
		}
	}

	if visible && p.Cycle >= 1 && p.Cycle <= 256 {
		p.renderPixel(p.Cycle-1, p.Scanline)
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.status |= 0x80
		p.FrameReady = true
	}
	if preRender && p.Cycle == 1 {
		p.status &^= 0xE0
		p.oddFrame = !p.oddFrame
	}
}

func (p *PPU) advance() {
	preRender := p.Scanline == 261
	p.Cycle++
	if preRender && p.oddFrame && p.renderingEnabled() && p.Cycle == 340 {
		p.Cycle = 341
	}
	if p.Cycle > 340 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
		}
	}
}

// --- Loopy v/t math -----------------------------------------------------

func (p *PPU) incCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incVerticalV() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontalBits() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// --- background shifters -------------------------------------------------

func (p *PPU) shiftBackgroundRegisters() {
	if !p.maskShowBg() {
		return
	}
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
	if p.bgAttrLatchLo {
		p.bgAttrLo |= 1
	}
	if p.bgAttrLatchHi {
		p.bgAttrHi |= 1
	}
}

func (p *PPU) loadBackgroundShifters() {
	p.bgPatternLo = (p.bgPatternLo &^ 0x00FF) | uint16(p.ptLowByte)
	p.bgPatternHi = (p.bgPatternHi &^ 0x00FF) | uint16(p.ptHighByte)
	p.bgAttrLatchLo = p.atByte&0x01 != 0
	p.bgAttrLatchHi = p.atByte&0x02 != 0
}

// --- sprite evaluation and fetch ------------------------------------------

func (p *PPU) evaluateSpritesForNextScanline() {
	target := p.Scanline + 1
	if target > 261 {
		target = 0
	}
	height := p.ctrlSpriteHeight()
	p.secondaryCount = 0
	matches := 0
	for i := 0; i < 64; i++ {
		y := p.primaryOAM[i*4]
		row := target - int(y)
		if row < 0 || row >= height {
			continue
		}
		matches++
		if matches <= 8 {
			p.secondary[p.secondaryCount] = oamSprite{
				y:     y,
				tile:  p.primaryOAM[i*4+1],
				attr:  p.primaryOAM[i*4+2],
				x:     p.primaryOAM[i*4+3],
				index: i,
			}
			p.secondaryCount++
		}
	}
	if matches > 8 {
		p.status |= 0x20
	}
}

func reverseBits(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) fetchSpritePatterns() {
	target := p.Scanline + 1
	if target > 261 {
		target = 0
	}
	height := p.ctrlSpriteHeight()
	for i := 0; i < p.secondaryCount; i++ {
		s := p.secondary[i]
		row := target - int(s.y)
		vflip := s.attr&0x80 != 0
		hflip := s.attr&0x40 != 0
		if vflip {
			row = height - 1 - row
		}
		var addr uint16
		if height == 8 {
			addr = p.ctrlSpriteHalf() | (uint16(s.tile) << 4) | uint16(row)
		} else {
			table := uint16(s.tile&0x01) << 12
			tileIndex := uint16(s.tile &^ 0x01)
			if row >= 8 {
				tileIndex++
				row -= 8
			}
			addr = table | (tileIndex << 4) | uint16(row)
		}
		lo := p.cartridge.ppuRead(addr)
		hi := p.cartridge.ppuRead(addr + 8)
		if hflip {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttr[i] = s.attr
		p.spriteX[i] = s.x
		p.spriteIsZero[i] = s.index == 0
	}
	p.spriteCount = p.secondaryCount
}

// --- pixel mux -------------------------------------------------------------

func (p *PPU) renderPixel(x, scanline int) {
	bgPix, bgPal := 0, 0
	if p.maskShowBg() && (x >= 8 || p.maskShowBgLeft()) {
		bit := 15 - p.fineX
		bgPix = int(((p.bgPatternHi>>bit)&1)<<1 | (p.bgPatternLo>>bit)&1)
		abit := 7 - p.fineX
		bgPal = int(((p.bgAttrHi>>abit)&1)<<1 | (p.bgAttrLo>>abit)&1)
	}

	spPix, spPal, spPriority := 0, 0, 0
	spZero := false
	if p.maskShowSprites() && (x >= 8 || p.maskShowSpLeft()) {
		for i := 0; i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			hi := (p.spritePatternHi[i] >> uint(7-offset)) & 1
			lo := (p.spritePatternLo[i] >> uint(7-offset)) & 1
			val := int((hi << 1) | lo)
			if val == 0 {
				continue
			}
			spPix = val
			spPal = int(p.spriteAttr[i] & 0x03)
			spPriority = int((p.spriteAttr[i] >> 5) & 1)
			spZero = p.spriteIsZero[i]
			break
		}
	}

	var colorAddr int
	switch {
	case bgPix == 0 && spPix == 0:
		colorAddr = 0
	case bgPix == 0 && spPix != 0:
		colorAddr = 0x10 + spPal*4 + spPix
	case bgPix != 0 && spPix == 0:
		colorAddr = bgPal*4 + bgPix
	default:
		if spPriority == 0 {
			colorAddr = 0x10 + spPal*4 + spPix
		} else {
			colorAddr = bgPal*4 + bgPix
		}
		if spZero && x != 255 {
			p.status |= 0x40
		}
	}
	idx := p.paletteRAM[colorAddr&0x1F] & paletteReadMask(p)
	p.FrameBuffer[scanline*256+x] = idx
}
