package nes

import (
	"fmt"
	"io"
	"strings"
)

// Disassemble writes one trace line for the instruction at the CPU's
// current program counter:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD
//
// Unofficial opcodes are marked with a *. The format follows the
// Nintendulator log closely enough for golden-log comparison. Hook it up
// through RunWithCallback (or call it once before Run) to trace a whole
// program.
func Disassemble(out io.Writer, c *CPU) {
	pc := c.PC
	opCode := c.Bus.Read(pc)
	inst := Instructions[opCode]

	var strlen int

	n, _ := fmt.Fprintf(out, "%04X  ", pc)
	strlen += n

	switch inst.Size {
	case 1:
		n, _ := fmt.Fprintf(out, "%02X      ", inst.OpCode)
		strlen += n
	case 2:
		n, _ := fmt.Fprintf(out, "%02X %02X   ", inst.OpCode, c.Bus.Read(pc+1))
		strlen += n
	case 3:
		n, _ := fmt.Fprintf(out, "%02X %02X %02X", inst.OpCode, c.Bus.Read(pc+1), c.Bus.Read(pc+2))
		strlen += n
	}

	if inst.Illegal {
		n, _ := fmt.Fprint(out, " *")
		strlen += n
	} else {
		n, _ := fmt.Fprint(out, "  ")
		strlen += n
	}

	n, _ = fmt.Fprint(out, inst.Name, " ")
	strlen += n

	switch inst.Mode {
	case Accumulator:
		n, _ := fmt.Fprint(out, "A")
		strlen += n
	case Implied:
	default:
		var arg uint16
		switch inst.Mode {
		case Immediate, ZeroPage, ZeroPageIndexedX, ZeroPageIndexedY,
			PreIndexedIndirect, PostIndexedIndirect:
			arg = uint16(c.Bus.Read(pc + 1))
		case Absolute, Indirect, IndexedX, IndexedY:
			arg = uint16(c.Bus.Read(pc+1)) | uint16(c.Bus.Read(pc+2))<<8
		case Relative:
			arg = pc + 2 + uint16(int8(c.Bus.Read(pc+1)))
		}

		n, _ := fmt.Fprintf(out, addressingFormats[inst.Mode], arg)
		strlen += n
	}

	if strlen < 48 {
		fmt.Fprint(out, strings.Repeat(" ", 48-strlen))
	}
	fmt.Fprintf(out, "A:%02X X:%02X Y:%02X P:%02X SP:%02X\n", c.A, c.X, c.Y, byte(c.P), c.S)
}

var addressingFormats = map[AddressingMode]string{
	Immediate:           "#$%02X",    // #aa
	Absolute:            "$%04X",     // aaaa
	ZeroPage:            "$%02X",     // aa
	Implied:             "",          //
	Indirect:            "($%04X)",   // (aaaa)
	IndexedX:            "$%04X,X",   // aaaa,X
	IndexedY:            "$%04X,Y",   // aaaa,Y
	ZeroPageIndexedX:    "$%02X,X",   // aa,X
	ZeroPageIndexedY:    "$%02X,Y",   // aa,Y
	PreIndexedIndirect:  "($%02X,X)", // (aa,X)
	PostIndexedIndirect: "($%02X),Y", // (aa),Y
	Relative:            "$%04X",     // aaaa
	Accumulator:         "A",         // A
}
