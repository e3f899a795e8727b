package nes

// CPUBus decodes the CPU's 16-bit address space: work RAM (mirrored to
// $1FFF), PPU ports (mirrored every 8 bytes through $3FFF), the
// APU/controller I/O page ($4000-$401F), OAM DMA ($4014), and
// cartridge space (PRG-RAM/PRG-ROM at $4020 and up).
type CPUBus struct {
	wram        *RAM
	ppu         *PPU
	apu         *APU
	cartridge   *Cartridge
	controller1 *Controller
	controller2 *Controller

	openBus byte

	// onOAMDMA is installed by the Console; a $4014 write schedules a
	// 256-byte OAM transfer that the Console executes with the correct
	// CPU stall.
	onOAMDMA func(page byte)
}

func NewCPUBus(wram *RAM, ppu *PPU, apu *APU, cartridge *Cartridge, c1, c2 *Controller) *CPUBus {
	return &CPUBus{wram: wram, ppu: ppu, apu: apu, cartridge: cartridge, controller1: c1, controller2: c2}
}

func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		b.openBus = b.wram.read(address)
	case address < 0x4000:
		b.openBus = b.ppu.ReadPort(address)
	case address == 0x4015:
		b.openBus = b.apu.ReadStatus()
	case address == 0x4016:
		b.openBus = (b.openBus &^ 0x01) | (b.controller1.read() & 0x01)
	case address == 0x4017:
		b.openBus = (b.openBus &^ 0x01) | (b.controller2.read() & 0x01)
	case address < 0x4020:
		// remaining APU/IO registers are write-only; open bus persists
	default:
		b.openBus = b.cartridge.cpuRead(address)
	}
	return b.openBus
}

// irqSignaled reports the OR of every hardware IRQ source the CPU
// polls between instructions: the APU frame/DMC IRQs and the
// cartridge mapper's scanline IRQ (MMC3).
func (b *CPUBus) irqSignaled() bool {
	return b.apu.IRQSignaled() || b.cartridge.irqSignaled()
}

func (b *CPUBus) read16(address uint16) uint16 {
	lo := uint16(b.read(address))
	hi := uint16(b.read(address + 1))
	return hi<<8 | lo
}

// read16Bug reproduces the 6502 JMP ($xxFF) page-wrap bug: the high
// byte is fetched from $xx00, not $(xx+1)00.
func (b *CPUBus) read16Bug(address uint16) uint16 {
	lo := uint16(b.read(address))
	hiAddr := (address & 0xFF00) | uint16(byte(address)+1)
	hi := uint16(b.read(hiAddr))
	return hi<<8 | lo
}

func (b *CPUBus) write(address uint16, data byte) {
	b.openBus = data
	switch {
	case address < 0x2000:
		b.wram.write(address, data)
	case address < 0x4000:
		b.ppu.WritePort(address, data)
	case address == 0x4014:
		if b.onOAMDMA != nil {
			b.onOAMDMA(data)
		}
	case address == 0x4016:
		b.controller1.write(data)
		b.controller2.write(data)
	case address == 0x4017:
		b.apu.WriteRegister(address, data)
	case address < 0x4018:
		b.apu.WriteRegister(address, data)
	case address < 0x4020:
		// APU/IO test registers, not emulated.
	default:
		b.cartridge.cpuWrite(address, data)
	}
}
