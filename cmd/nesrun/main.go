// Command nesrun loads an iNES ROM and runs it through the core and
// the glfw/gl/portaudio host layer.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/nescore/emulator/ines"
	"github.com/nescore/emulator/nes"
	"github.com/nescore/emulator/ui"
)

func main() {
	romPath := flag.String("rom", "", "path to an iNES (.nes) ROM image")
	palettePath := flag.String("palette", "", "optional path to a 192-byte .pal file (defaults to the built-in NTSC palette)")
	scale := flag.Int("scale", 3, "window scale factor applied to the 256x240 frame")
	flag.Parse()

	if *romPath == "" {
		glog.Fatalf("missing required -rom flag")
	}

	data, err := os.ReadFile(*romPath)
	if err != nil {
		glog.Fatalf("reading %s: %v", *romPath, err)
	}
	rom, err := ines.Load(data)
	if err != nil {
		glog.Fatalf("loading %s: %v", *romPath, err)
	}

	cartridge, err := nes.NewCartridge(rom)
	if err != nil {
		glog.Fatalf("constructing cartridge: %v", err)
	}

	console := nes.NewConsole(cartridge)
	console.Reset()

	if *palettePath != "" {
		palette, err := nes.LoadPaletteFile(*palettePath)
		if err != nil {
			glog.Warningf("falling back to default palette: %v", err)
		} else {
			console.PPU.SetPalette(palette)
		}
	}

	ui.Run(console, 256 * (*scale), 240 * (*scale))
}
