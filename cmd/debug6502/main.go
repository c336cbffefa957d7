// Command debug6502 opens the interactive stepping debugger on a raw 6502
// program, loaded at 0x0600 on a flat RAM bus.
//
// Usage:
//
//	debug6502 program.bin
package main

import (
	"fmt"
	"os"

	"github.com/maskudo/nes/nes"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: debug6502 program.bin")
		os.Exit(2)
	}

	program, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to read program: %s\n", err)
		os.Exit(1)
	}

	cpu := nes.NewCPU(nes.NewRAMBus())
	if err := cpu.Debug(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
