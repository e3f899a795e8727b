package nes

// Console is the complete NES machine: CPU, PPU, APU, cartridge and
// controllers wired onto the shared buses, stepped one CPU
// instruction at a time and amplified into PPU/APU ticks at the
// correct 3x/1x ratios.
type Console struct {
	CPU         *CPU
	PPU         *PPU
	APU         *APU
	Cartridge   *Cartridge
	Controller1 *Controller
	Controller2 *Controller

	bus *CPUBus

	prevNMILine bool
}

// NewConsole builds a Console around an already-parsed cartridge.
func NewConsole(cartridge *Cartridge) *Console {
	controller1 := NewController()
	controller2 := NewController()
	ppu := NewPPU(cartridge)
	apu := NewAPU(cartridge)
	bus := NewCPUBus(NewRAM(), ppu, apu, cartridge, controller1, controller2)
	cpu := NewCPU(bus)

	console := &Console{
		CPU:         cpu,
		PPU:         ppu,
		APU:         apu,
		Cartridge:   cartridge,
		Controller1: controller1,
		Controller2: controller2,
		bus:         bus,
	}
	bus.onOAMDMA = console.runOAMDMA
	return console
}

func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.prevNMILine = false
}

func (c *Console) SetAudioOut(ch chan float32) { c.APU.SetAudioOut(ch) }

func (c *Console) SetButtons1(buttons [8]bool) { c.Controller1.Set(buttons) }
func (c *Console) SetButtons2(buttons [8]bool) { c.Controller2.Set(buttons) }

// Step advances the CPU by one CPU.Step (one instruction, one
// interrupt service, or one OAM-DMA stall tick), adds any DMC stall
// ticks the APU queued since the previous call, and amplifies the
// total into the matching number of PPU (3x) and APU (1x) ticks. It
// returns the number of CPU cycles consumed.
//
// This lumps PPU/APU stepping after the full instruction rather than
// interleaving a tick() per bus access mid-instruction; total tick
// counts, and therefore every timing invariant the rest of the system
// depends on, still come out exact, but a mapper IRQ or NMI that fires
// mid-instruction becomes visible to the CPU only at the following
// instruction boundary rather than on the exact bus cycle that raised
// it.
func (c *Console) Step() int {
	cycles := c.CPU.Step()

	if stalled := c.APU.StallCycles; stalled > 0 {
		c.APU.StallCycles = 0
		c.CPU.cycles += uint64(stalled)
		cycles += stalled
	}

	for i := 0; i < cycles; i++ {
		c.APU.Step()
	}
	for i := 0; i < cycles*3; i++ {
		c.PPU.Step()
	}

	nmiLine := c.PPU.NMIOutput()
	if nmiLine && !c.prevNMILine {
		c.CPU.NotifyNMI()
	}
	c.prevNMILine = nmiLine

	return cycles
}

// runOAMDMA copies 256 bytes from $XX00-$XXFF into OAM starting at the
// current OAMADDR, wrapping within the 256-byte table, and charges the
// CPU the 513/514-cycle stall (514 on an odd CPU cycle, since the DMA
// unit must first wait for the current read/write cycle to finish).
func (c *Console) runOAMDMA(page byte) {
	base := uint16(page) << 8
	addr := c.PPU.oamAddr
	for i := 0; i < 256; i++ {
		c.PPU.primaryOAM[addr] = c.bus.read(base + uint16(i))
		addr++
	}
	stall := 513
	if c.CPU.cycles%2 != 0 {
		stall = 514
	}
	c.CPU.stall += stall
}

// RunFrame steps the console until the PPU signals a completed frame,
// returning the number of CPU cycles consumed.
func (c *Console) RunFrame() int {
	total := 0
	c.PPU.FrameReady = false
	for !c.PPU.FrameReady {
		total += c.Step()
	}
	return total
}
