package nes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func disassembleOne(t *testing.T, program []byte) string {
	t.Helper()

	c, _ := newTestCPU()
	c.Load(program)
	c.Reset()

	var sb strings.Builder
	Disassemble(&sb, c)
	return sb.String()
}

func traceLine(left string) string {
	return fmt.Sprintf("%-48sA:00 X:00 Y:00 P:24 SP:FD\n", left)
}

func TestDisassembleFormats(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		want    string
	}{
		{
			name:    "immediate",
			program: []byte{0xA9, 0x01},
			want:    traceLine("0600  A9 01     LDA #$01"),
		},
		{
			name:    "implied",
			program: []byte{0xEA},
			want:    traceLine("0600  EA        NOP "),
		},
		{
			name:    "accumulator",
			program: []byte{0x0A},
			want:    traceLine("0600  0A        ASL A"),
		},
		{
			name:    "absolute",
			program: []byte{0x4C, 0xF5, 0xC5},
			want:    traceLine("0600  4C F5 C5  JMP $C5F5"),
		},
		{
			name:    "zero page",
			program: []byte{0xA5, 0x10},
			want:    traceLine("0600  A5 10     LDA $10"),
		},
		{
			name:    "pre indexed indirect",
			program: []byte{0xA1, 0x80},
			want:    traceLine("0600  A1 80     LDA ($80,X)"),
		},
		{
			name:    "post indexed indirect",
			program: []byte{0xB1, 0x80},
			want:    traceLine("0600  B1 80     LDA ($80),Y"),
		},
		{
			name:    "relative resolves the target",
			program: []byte{0xD0, 0x02},
			want:    traceLine("0600  D0 02     BNE $0604"),
		},
		{
			name:    "unofficial marker",
			program: []byte{0xA7, 0x10},
			want:    traceLine("0600  A7 10    *LAX $10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, disassembleOne(t, tt.program))
		})
	}
}

func TestDisassembleShowsRegisters(t *testing.T) {
	c, _ := newTestCPU()
	c.Load([]byte{0xA9, 0x05, 0xEA})
	c.Reset()
	c.Step()

	var sb strings.Builder
	Disassemble(&sb, c)

	assert.Contains(t, sb.String(), "A:05")
	assert.Contains(t, sb.String(), "SP:FD")
}
