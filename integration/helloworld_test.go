package integration

import (
	"testing"

	"github.com/nescore/emulator/ines"
	"github.com/nescore/emulator/nes"
)

// buildROM assembles a minimal iNES image: mapper 0 (NROM), one 16KiB
// PRG bank holding prog, CHR-RAM, horizontal mirroring. The reset
// vector always points at $8000, where prog begins.
func buildROM(prog []byte) []byte {
	prg := make([]byte, 16384)
	copy(prg, prog)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	prg[0x3FFA] = 0x00 // NMI vector, unused here
	prg[0x3FFB] = 0x80

	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	return append(header, prg...)
}

// TestResetVectorAndFirstFrame drives a freshly reset console through
// one full frame of an infinite loop program and checks where RunFrame
// stops and the size of the frame image, mirroring the basic
// power-on scenario: load a ROM, reset, run, observe a rendered frame.
func TestResetVectorAndFirstFrame(t *testing.T) {
	// SEI; CLD; LDA #$00; STA $2000; STA $2001; JMP $800A (spin forever,
	// rendering disabled so the PPU just free-runs to vblank).
	prog := []byte{
		0x78,             // SEI
		0xD8,             // CLD
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x00, 0x20, // STA $2000
		0x8D, 0x01, 0x20, // STA $2001
		0x4C, 0x0A, 0x80, // JMP $800A
	}
	rom, err := ines.Load(buildROM(prog))
	if err != nil {
		t.Fatalf("ines.Load: %v", err)
	}
	cartridge, err := nes.NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	console := nes.NewConsole(cartridge)
	console.Reset()

	if console.CPU.PC != 0x8000 {
		t.Fatalf("PC after reset: got=0x%04x want=0x8000", console.CPU.PC)
	}

	cycles := console.RunFrame()
	if cycles <= 0 {
		t.Fatalf("expected RunFrame to consume a positive number of cycles, got %d", cycles)
	}
	// RunFrame returns at the end of the instruction whose PPU dots cross
	// (241,1). From reset at (261,0), (241,1) is 242*341+1 = 82523 dots
	// away; the 14-cycle setup uses 42 dots and each 3-cycle JMP 9 more,
	// so the JMP that crosses it ends at dot 82527, which is (241,5).
	if console.PPU.Scanline != 241 || console.PPU.Cycle != 5 {
		t.Fatalf("expected RunFrame to stop just past vblank at (241,5), got (%d,%d)", console.PPU.Scanline, console.PPU.Cycle)
	}

	img := console.PPU.Image()
	if img.Rect.Dx() != 256 || img.Rect.Dy() != 240 {
		t.Fatalf("unexpected frame dimensions: %v", img.Rect)
	}
}
