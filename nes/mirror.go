package nes

// mirrorMode selects how a raw PPU nametable address folds into the
// cartridge's 2 KiB VRAM window.
type mirrorMode int

const (
	mirrorHorizontal mirrorMode = iota
	mirrorVertical
	mirrorSingleLo
	mirrorSingleHi
	mirrorFourScreen
)

// mirrorNametable maps a $2000-$2FFF address (already masked to the
// 4 KiB nametable region) to an offset into the 2 KiB VRAM array.
// Four-screen mirroring is approximated as horizontal since this core
// does not model additional cartridge VRAM beyond the 2 KiB window.
func mirrorNametable(mode mirrorMode, address uint16) uint16 {
	a := address & 0x0FFF
	table := a / 0x0400 // which of the four logical 1 KiB nametables
	offset := a % 0x0400
	switch mode {
	case mirrorHorizontal:
		// tables 0,1 -> physical 0 ; tables 2,3 -> physical 1
		return (table/2)*0x0400 + offset
	case mirrorVertical:
		// tables 0,2 -> physical 0 ; tables 1,3 -> physical 1
		return (table%2)*0x0400 + offset
	case mirrorSingleLo:
		return offset
	case mirrorSingleHi:
		return 0x0400 + offset
	default: // four-screen, approximated
		return (table/2)*0x0400 + offset
	}
}
