package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPPU(mode MirrorMode) *PPU {
	chr := make([]byte, chrMul)
	for i := range chr {
		chr[i] = byte(i)
	}
	return NewPPU(chr, mode)
}

func TestAddrRegisterUpdate(t *testing.T) {
	a := NewAddrRegister()

	a.Update(0x23)
	a.Update(0x05)

	assert.Equal(t, uint16(0x2305), a.Get())
}

func TestAddrRegisterMasksTo14Bits(t *testing.T) {
	a := NewAddrRegister()

	// 0x7F00 is out of range; the latch masks on every update.
	a.Update(0x7F)
	a.Update(0x00)

	assert.Equal(t, uint16(0x3F00), a.Get())
}

func TestAddrRegisterLatchToggles(t *testing.T) {
	a := NewAddrRegister()

	a.Update(0x21)
	a.Update(0x08)
	// Third write lands on the high byte again.
	a.Update(0x10)

	assert.Equal(t, uint16(0x1008), a.Get())
}

func TestAddrRegisterResetLatch(t *testing.T) {
	a := NewAddrRegister()

	a.Update(0x21)
	a.ResetLatch()
	a.Update(0x10)
	a.Update(0x00)

	assert.Equal(t, uint16(0x1000), a.Get())
}

func TestAddrRegisterIncrementCarriesIntoHighByte(t *testing.T) {
	a := NewAddrRegister()
	a.Update(0x21)
	a.Update(0xFF)

	a.Increment(1)

	assert.Equal(t, uint16(0x2200), a.Get())
}

func TestAddrRegisterIncrementWrapsAt14Bits(t *testing.T) {
	a := NewAddrRegister()
	a.Update(0x3F)
	a.Update(0xFF)

	a.Increment(1)

	assert.Equal(t, uint16(0x0000), a.Get())
}

func TestCtrlVRAMAddrIncrement(t *testing.T) {
	var ctrl PpuCtrl
	assert.Equal(t, byte(1), ctrl.VRAMAddrIncrement())

	ctrl |= VRAMAddIncrement
	assert.Equal(t, byte(32), ctrl.VRAMAddrIncrement())
}

func setAddr(p *PPU, addr uint16) {
	p.WritePort(PPUADDR, byte(addr>>8))
	p.WritePort(PPUADDR, byte(addr&0xFF))
}

func TestPPUDataWriteAndReadBack(t *testing.T) {
	p := newTestPPU(Vertical)

	setAddr(p, 0x2305)
	p.WritePort(PPUDATA, 0x66)

	setAddr(p, 0x2305)
	p.ReadPort(PPUDATA) // stale buffer
	assert.Equal(t, byte(0x66), p.ReadPort(PPUDATA))
}

func TestPPUDataReadIsBuffered(t *testing.T) {
	p := newTestPPU(Vertical)

	setAddr(p, 0x0010)

	// CHR reads come back one access late.
	first := p.ReadPort(PPUDATA)
	second := p.ReadPort(PPUDATA)
	third := p.ReadPort(PPUDATA)

	assert.Equal(t, byte(0x00), first)
	assert.Equal(t, byte(0x10), second)
	assert.Equal(t, byte(0x11), third)
}

func TestPPUDataIncrementStep(t *testing.T) {
	p := newTestPPU(Vertical)

	p.WritePort(PPUCTRL, byte(VRAMAddIncrement))
	setAddr(p, 0x2000)
	p.WritePort(PPUDATA, 0x01)

	assert.Equal(t, uint16(0x2020), p.Addr.Get())
}

func TestPPUVerticalMirroring(t *testing.T) {
	p := newTestPPU(Vertical)

	// 0x2000 and 0x2800 alias under vertical mirroring.
	setAddr(p, 0x2000)
	p.WritePort(PPUDATA, 0x42)

	setAddr(p, 0x2800)
	p.ReadPort(PPUDATA)
	assert.Equal(t, byte(0x42), p.ReadPort(PPUDATA))
}

func TestPPUHorizontalMirroring(t *testing.T) {
	p := newTestPPU(Horizontal)

	// 0x2000 and 0x2400 alias under horizontal mirroring.
	setAddr(p, 0x2000)
	p.WritePort(PPUDATA, 0x42)

	setAddr(p, 0x2400)
	p.ReadPort(PPUDATA)
	assert.Equal(t, byte(0x42), p.ReadPort(PPUDATA))

	// 0x2800 does not.
	setAddr(p, 0x2800)
	p.ReadPort(PPUDATA)
	assert.Equal(t, byte(0x00), p.ReadPort(PPUDATA))
}

func TestPPUPaletteReadsBypassBuffer(t *testing.T) {
	p := newTestPPU(Vertical)

	setAddr(p, 0x3F01)
	p.WritePort(PPUDATA, 0x21)

	setAddr(p, 0x3F01)
	assert.Equal(t, byte(0x21), p.ReadPort(PPUDATA))
}

func TestPPUPaletteMirrors(t *testing.T) {
	p := newTestPPU(Vertical)

	// 0x3F10 is a mirror of 0x3F00.
	setAddr(p, 0x3F10)
	p.WritePort(PPUDATA, 0x0F)

	setAddr(p, 0x3F00)
	assert.Equal(t, byte(0x0F), p.ReadPort(PPUDATA))
}

func TestPPUWriteToCHRPanics(t *testing.T) {
	p := newTestPPU(Vertical)

	setAddr(p, 0x0000)
	assert.Panics(t, func() {
		p.WritePort(PPUDATA, 0x01)
	})
}

func TestPPUOAMPort(t *testing.T) {
	p := newTestPPU(Vertical)

	p.WritePort(OAMADDR, 0x10)
	p.WritePort(OAMDATA, 0x42)
	p.WritePort(OAMDATA, 0x43)

	p.WritePort(OAMADDR, 0x10)
	assert.Equal(t, byte(0x42), p.ReadPort(OAMDATA))
}

func TestPPUUnimplementedRegistersReadZero(t *testing.T) {
	p := newTestPPU(Vertical)

	for _, reg := range []uint16{PPUCTRL, PPUMASK, PPUSTATUS, PPUSCROLL} {
		assert.Equal(t, byte(0), p.ReadPort(reg), "register 0x%04X", reg)
	}
}
