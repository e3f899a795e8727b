package nes

import (
	"fmt"
	"os"
)

// RGB is a single system-palette entry.
type RGB struct {
	R, G, B byte
}

// defaultPalette is the built-in 64-entry NTSC system palette, used
// whenever no .pal file is supplied. Borrowed from the common "RGB"
// reference table documented at
// https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var defaultPalette = [64]RGB{
	{0x6D, 0x6D, 0x6D}, {0x00, 0x24, 0x92}, {0x00, 0x00, 0xDB}, {0x6D, 0x49, 0xDB},
	{0x92, 0x00, 0x6D}, {0xB6, 0x00, 0x6D}, {0xB6, 0x24, 0x00}, {0x92, 0x49, 0x00},
	{0x6D, 0x49, 0x00}, {0x24, 0x49, 0x00}, {0x00, 0x6D, 0x24}, {0x00, 0x92, 0x00},
	{0x00, 0x49, 0x49}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xB6, 0xB6, 0xB6}, {0x00, 0x6D, 0xDB}, {0x00, 0x49, 0xFF}, {0x92, 0x00, 0xFF},
	{0xB6, 0x00, 0xFF}, {0xFF, 0x00, 0x92}, {0xFF, 0x00, 0x00}, {0xDB, 0x6D, 0x00},
	{0x92, 0x6D, 0x00}, {0x24, 0x92, 0x00}, {0x00, 0x92, 0x00}, {0x00, 0xB6, 0x6D},
	{0x00, 0x92, 0x92}, {0x24, 0x24, 0x24}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0x6D, 0xB6, 0xFF}, {0x92, 0x92, 0xFF}, {0xDB, 0x6D, 0xFF},
	{0xFF, 0x00, 0xFF}, {0xFF, 0x6D, 0xFF}, {0xFF, 0x92, 0x00}, {0xFF, 0xB6, 0x00},
	{0xDB, 0xDB, 0x00}, {0x6D, 0xDB, 0x00}, {0x00, 0xFF, 0x00}, {0x49, 0xFF, 0xDB},
	{0x00, 0xFF, 0xFF}, {0x49, 0x49, 0x49}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0xB6, 0xDB, 0xFF}, {0xDB, 0xB6, 0xFF}, {0xFF, 0xB6, 0xFF},
	{0xFF, 0x92, 0xFF}, {0xFF, 0xB6, 0xB6}, {0xFF, 0xDB, 0x92}, {0xFF, 0xFF, 0x49},
	{0xFF, 0xFF, 0x6D}, {0xB6, 0xFF, 0x49}, {0x92, 0xFF, 0x6D}, {0x49, 0xFF, 0xDB},
	{0x92, 0xDB, 0xFF}, {0x92, 0x92, 0x92}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// ParsePaletteFile decodes a 192-byte .pal file (64 RGB triples,
// row-major) per spec §6. A file that is not exactly 192 bytes is
// rejected as BadPaletteFile; the caller should fall back to
// DefaultPalette.
func ParsePaletteFile(data []byte) ([64]RGB, error) {
	var table [64]RGB
	if len(data) != 192 {
		return table, fmt.Errorf("BadPaletteFile: palette file is %d bytes, want 192", len(data))
	}
	for i := 0; i < 64; i++ {
		table[i] = RGB{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return table, nil
}

// LoadPaletteFile reads a .pal file from disk and parses it. Callers
// (cmd/nesrun) should fall back to DefaultPalette on error, logging a
// warning rather than failing the run.
func LoadPaletteFile(path string) ([64]RGB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [64]RGB{}, fmt.Errorf("BadPaletteFile: %w", err)
	}
	return ParsePaletteFile(data)
}

// DefaultPalette returns the built-in system palette.
func DefaultPalette() [64]RGB {
	return defaultPalette
}
