// Command run6502 executes a raw 6502 program on a flat RAM bus, with the
// classic toy-machine memory map: a 32x32 framebuffer at 0x0200 (one
// palette byte per pixel), the last pressed key at 0x00FF, and a fresh
// random byte at 0x00FE before every instruction. The program is loaded
// at 0x0600 and runs until BRK.
//
// Usage:
//
//	run6502 [-scale n] [-delay d] program.bin
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/maskudo/nes/nes"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenDim  = 32
	screenBase = uint16(0x0200)
	screenLen  = screenDim * screenDim

	keyAddr = uint16(0x00FF)
	rngAddr = uint16(0x00FE)
)

func init() {
	runtime.LockOSThread()
}

// The 16 colors of the toy machine's palette; the low nibble of a
// framebuffer byte picks one.
var palette = [16][3]byte{
	{0x00, 0x00, 0x00}, // black
	{0xFF, 0xFF, 0xFF}, // white
	{0x88, 0x00, 0x00}, // red
	{0xAA, 0xFF, 0xEE}, // cyan
	{0xCC, 0x44, 0xCC}, // purple
	{0x00, 0xCC, 0x55}, // green
	{0x00, 0x00, 0xAA}, // blue
	{0xEE, 0xEE, 0x77}, // yellow
	{0xDD, 0x88, 0x55}, // orange
	{0x66, 0x44, 0x00}, // brown
	{0xFF, 0x77, 0x77}, // light red
	{0x33, 0x33, 0x33}, // dark grey
	{0x77, 0x77, 0x77}, // grey
	{0xAA, 0xFF, 0x66}, // light green
	{0x00, 0x88, 0xFF}, // light blue
	{0xBB, 0xBB, 0xBB}, // light grey
}

func run(program []byte, scale int, delay time.Duration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("unable to init sdl: %s", err)
	}
	defer sdl.Quit()

	window, renderer, err := sdl.CreateWindowAndRenderer(
		int32(screenDim*scale), int32(screenDim*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("unable to create window: %s", err)
	}
	defer window.Destroy()
	defer renderer.Destroy()

	window.SetTitle("run6502")

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, screenDim, screenDim)
	if err != nil {
		return fmt.Errorf("unable to create texture: %s", err)
	}
	defer texture.Destroy()

	bus := nes.NewRAMBus()
	cpu := nes.NewCPU(bus)
	cpu.Load(program)
	cpu.Reset()

	frame := make([]byte, screenLen*3)

	redraw := func() bool {
		var changed bool
		for i := uint16(0); i < screenLen; i++ {
			rgb := palette[bus.Read(screenBase+i)&0x0F]
			if frame[i*3] != rgb[0] || frame[i*3+1] != rgb[1] || frame[i*3+2] != rgb[2] {
				frame[i*3], frame[i*3+1], frame[i*3+2] = rgb[0], rgb[1], rgb[2]
				changed = true
			}
		}
		return changed
	}

	cpu.RunWithCallback(func(c *nes.CPU) {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch evt := event.(type) {
			case *sdl.QuitEvent:
				c.Halted = true
			case *sdl.KeyboardEvent:
				if evt.Type != sdl.KEYDOWN {
					continue
				}
				switch evt.Keysym.Sym {
				case sdl.K_ESCAPE:
					c.Halted = true
				case sdl.K_w, sdl.K_UP:
					bus.Write(keyAddr, 0x77)
				case sdl.K_a, sdl.K_LEFT:
					bus.Write(keyAddr, 0x61)
				case sdl.K_s, sdl.K_DOWN:
					bus.Write(keyAddr, 0x73)
				case sdl.K_d, sdl.K_RIGHT:
					bus.Write(keyAddr, 0x64)
				}
			}
		}

		bus.Write(rngAddr, byte(rand.Intn(15)+1))

		if redraw() {
			texture.Update(nil, frame, screenDim*3)
			renderer.Copy(texture, nil, nil)
			renderer.Present()
		}

		time.Sleep(delay)
	})

	return nil
}

func main() {
	scale := flag.Int("scale", 10, "window scale factor")
	delay := flag.Duration("delay", 70*time.Microsecond, "delay per instruction")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: run6502 [flags] program.bin")
		os.Exit(2)
	}

	program, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to read program: %s\n", err)
		os.Exit(1)
	}

	if err := run(program, *scale, *delay); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
