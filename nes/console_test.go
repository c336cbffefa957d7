package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testROM assembles a one-bank NROM image with the program at 0x8000 and
// the reset vector pointing at it.
func testROM(program []byte) []byte {
	rom := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	prg := make([]byte, prgMul)
	copy(prg, program)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	rom = append(rom, prg...)

	rom = append(rom, make([]byte, chrMul)...)
	return rom
}

func TestConsoleRunsROM(t *testing.T) {
	// LDA #$42, STA $02, BRK.
	console, err := LoadRom(bytes.NewReader(testROM([]byte{0xA9, 0x42, 0x85, 0x02, 0x00})))
	require.NoError(t, err)

	assert.Equal(t, uint16(0x8000), console.CPU.PC)

	console.Run()

	assert.True(t, console.CPU.Halted)
	assert.Equal(t, byte(0x42), console.Read(0x0002))
}

func TestConsoleResetRestartsAtVector(t *testing.T) {
	console, err := LoadRom(bytes.NewReader(testROM([]byte{0xE8, 0x00})))
	require.NoError(t, err)

	console.Run()
	assert.Equal(t, byte(1), console.CPU.X)

	console.Reset()
	assert.Equal(t, uint16(0x8000), console.CPU.PC)
	assert.Equal(t, byte(0), console.CPU.X)
	assert.False(t, console.CPU.Halted)
}

func TestConsoleStepInstruction(t *testing.T) {
	console, err := LoadRom(bytes.NewReader(testROM([]byte{0xA9, 0x05, 0x00})))
	require.NoError(t, err)

	console.StepInstruction()

	assert.Equal(t, byte(0x05), console.CPU.A)
	assert.Equal(t, uint16(0x8002), console.CPU.PC)
}

func TestConsoleRejectsBadROM(t *testing.T) {
	_, err := LoadRom(bytes.NewReader([]byte{'N', 'O', 'P', 'E'}))
	assert.Error(t, err)
}

func TestConsoleReadWrite(t *testing.T) {
	console, err := LoadRom(bytes.NewReader(testROM([]byte{0x00})))
	require.NoError(t, err)

	console.Write(0x0010, 0x99)
	assert.Equal(t, byte(0x99), console.Read(0x0010))
}
