// Command nestrace loads an iNES image and executes it headless, writing
// one trace line per instruction to stdout. The output follows the
// Nintendulator log format, which makes it diffable against golden logs
// from other emulators.
//
// Usage:
//
//	nestrace [-pc addr] [-n count] rom.nes
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/maskudo/nes/nes"
)

func main() {
	pc := flag.Uint("pc", 0, "override the reset vector (0 keeps the cartridge's)")
	n := flag.Uint("n", 0, "stop after this many instructions (0 runs until halt)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nestrace [flags] rom.nes")
		os.Exit(2)
	}

	console, err := nes.LoadPath(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *pc != 0 {
		console.CPU.PC = uint16(*pc)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for i := uint(0); !console.CPU.Halted && (*n == 0 || i < *n); i++ {
		nes.Disassemble(out, console.CPU)
		console.StepInstruction()
	}
}
