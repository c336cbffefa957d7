package nes

import (
	"fmt"
	"io"
	"os"
)

// Console wires a cartridge, bus and CPU into a runnable machine.
type Console struct {
	Cartridge *Cartridge
	Bus       *SysBus
	CPU       *CPU
}

// NewConsole builds a console around a loaded cartridge and resets the
// CPU, leaving the program counter at the cartridge's reset vector.
func NewConsole(cart *Cartridge) *Console {
	bus := NewSysBus(cart)
	cpu := NewCPU(bus)
	cpu.Reset()

	return &Console{
		Cartridge: cart,
		Bus:       bus,
		CPU:       cpu,
	}
}

// LoadPath loads an iNES image from disk.
func LoadPath(path string) (*Console, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open rom: %w", err)
	}
	defer f.Close()

	return LoadRom(f)
}

// LoadRom loads an iNES image from a reader.
func LoadRom(rom io.Reader) (*Console, error) {
	cart, err := LoadINES(rom)
	if err != nil {
		return nil, err
	}

	return NewConsole(cart), nil
}

func (c *Console) Reset() {
	c.CPU.Reset()
}

// Run executes until the CPU halts.
func (c *Console) Run() {
	c.CPU.Run()
}

// StepInstruction executes a single instruction.
func (c *Console) StepInstruction() {
	c.CPU.Step()
}

func (c *Console) Read(addr uint16) byte {
	return c.Bus.Read(addr)
}

func (c *Console) Write(addr uint16, v byte) {
	c.Bus.Write(addr, v)
}
