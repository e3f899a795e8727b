package nes

// Debug introspection accessors for a Console: read-only snapshots of
// CPU/PPU/APU register state and arbitrary memory windows, the kind of
// state a host-side debugger or trace logger wants without reaching
// into unexported fields across package boundaries.

// CPUState is a point-in-time snapshot of the visible 6502 registers.
type CPUState struct {
	PC            uint16
	A, X, Y, S    byte
	P             byte
	Cycles        uint64
	LastExecution string
}

// CPUState snapshots the CPU's registers and status flags.
func (c *Console) CPUState() CPUState {
	return CPUState{
		PC:            c.CPU.PC,
		A:             c.CPU.A,
		X:             c.CPU.X,
		Y:             c.CPU.Y,
		S:             c.CPU.S,
		P:             c.CPU.P.encode(),
		Cycles:        c.CPU.cycles,
		LastExecution: c.CPU.lastExecution,
	}
}

// PPUState is a point-in-time snapshot of PPU timing and scroll state.
type PPUState struct {
	Scanline     int
	Cycle        int
	V, T         uint16
	FineX        byte
	Ctrl, Mask   byte
	Status       byte
}

// PPUState snapshots the PPU's timing counters, Loopy registers, and
// CPU-visible port state.
func (c *Console) PPUState() PPUState {
	return PPUState{
		Scanline: c.PPU.Scanline,
		Cycle:    c.PPU.Cycle,
		V:        c.PPU.v,
		T:        c.PPU.t,
		FineX:    c.PPU.fineX,
		Ctrl:     c.PPU.ctrl,
		Mask:     c.PPU.mask,
		Status:   c.PPU.status,
	}
}

// APUState is a point-in-time snapshot of the APU's channel enables
// and frame sequencer.
type APUState struct {
	Pulse1Length, Pulse2Length byte
	TriangleLength             byte
	NoiseLength                byte
	DMCRemaining               uint16
	FrameMode                  byte
	FrameIRQ, DMCIRQ           bool
}

// APUState snapshots the length counters, DMC remainder, and frame
// sequencer/IRQ lines.
func (c *Console) APUState() APUState {
	return APUState{
		Pulse1Length:   c.APU.pulse1.length,
		Pulse2Length:   c.APU.pulse2.length,
		TriangleLength: c.APU.triangle.length,
		NoiseLength:    c.APU.noise.length,
		DMCRemaining:   c.APU.dmc.remaining,
		FrameMode:      c.APU.frameMode,
		FrameIRQ:       c.APU.frameIRQ,
		DMCIRQ:         c.APU.dmc.irqPending,
	}
}

// ReadCPUMemory copies `length` bytes from CPU address space starting
// at `address`, one bus read at a time, for trace/inspection tooling.
// It is not side-effect free with respect to PPU/APU port reads
// (reading $2002 clears vblank, $4015 clears frame IRQ, and so on);
// callers inspecting live state should be aware a read can perturb it.
func (c *Console) ReadCPUMemory(address uint16, length int) []byte {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = c.bus.read(address + uint16(i))
	}
	return out
}

// Stack returns the current contents of the CPU's 256-byte stack page.
func (c *Console) Stack() [256]byte {
	var out [256]byte
	for i := 0; i < 256; i++ {
		out[i] = c.bus.read(0x100 | uint16(i))
	}
	return out
}

// NextInstruction returns the program counter and raw opcode byte about
// to execute, the minimal surface a disassembler needs to decode and
// print the next instruction.
func (c *Console) NextInstruction() (pc uint16, opcode byte) {
	return c.CPU.PC, c.bus.read(c.CPU.PC)
}
