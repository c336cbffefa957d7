package nes

const (
	nmiAddr    = uint16(0xFFFA)
	resetAddr  = uint16(0xFFFC)
	irqBrkAddr = uint16(0xFFFE)

	stackHi = 0x0100

	// Raw programs (as opposed to iNES images) are loaded into RAM here,
	// with the reset vector pointed at them. See (*CPU).Load.
	loadAddr = uint16(0x0600)
)

// Status holds the flags that make up the processor status register P.
type Status byte

const (
	// Carry flag.
	//
	// After ADC, this is the carry result of the addition.
	// After SBC or CMP, this flag will be set if no borrow was the result,
	// or alternatively a "greater than or equal" result.
	// After a shift instruction (ASL, LSR, ROL, ROR), this contains the bit
	// that was shifted out.
	//
	// Increment and decrement instructions do not affect the carry flag.
	// Can be set or cleared directly with SEC, CLC.
	Carry Status = 1 << iota

	// Zero flag is set when the result of an instruction is zero.
	Zero

	// InterruptDisable flag.
	//
	// When set, all interrupts except the NMI are inhibited.
	// Can be set or cleared directly with SEI, CLI, and is set by the cpu
	// when an interrupt (or BRK) is taken.
	InterruptDisable

	// Decimal flag. On the NES, BCD is disabled; the flag can be set and
	// cleared but has no effect on arithmetic.
	Decimal

	// Break flag.
	//
	// While there are only six flags in the processor status register
	// within the cpu, when transferred to the stack there are two
	// additional bits. These do not represent a register that can hold a
	// value but can be used to distinguish how the flags were pushed.
	//
	// In the byte pushed, Break is 1 if from an instruction (PHP or BRK) or
	// 0 if from an interrupt line being pulled low (/IRQ or /NMI).
	//
	// PLP and RTI pull a byte from the stack and set all the flags. They
	// ignore Unused and Break.
	Break

	// Unused flag. Conventionally 1.
	Unused

	// Overflow flag.
	//
	// ADC and SBC will set this flag if the signed result would be invalid,
	// necessary for making signed comparisons.
	//
	// BIT will load bit 6 of the addressed value directly into the V flag.
	// Can be cleared directly with CLV. There is no corresponding set
	// instruction.
	Overflow

	// Negative flag.
	//
	// After most instructions that have a value result, this flag will
	// contain bit 7 of that result.
	// BIT will load bit 7 of the addressed value directly into the N flag.
	Negative
)

// CPU is a MOS 6502 interpreter, the NES main processor.
//
// The CPU has no memory of its own beyond its registers; every load and
// store goes through the Memory it was constructed with. Execution is
// strictly single threaded: one call to Step (or one iteration of Run)
// fetches, decodes and executes exactly one instruction.
type CPU struct {
	// A, along with the arithmetic logic unit (ALU), supports using the
	// status register for carrying, overflow detection, and so on.
	A byte

	// X and Y are used for several addressing modes. They can be used as
	// loop counters easily, using INC/DEC and branch instructions.
	//
	// Not being the accumulator, they have limited addressing modes
	// themselves when loading and saving.
	X, Y byte

	// The program counter PC supports 65536 direct (unbanked) memory
	// locations. It can be moved by the cpu's internal fetch logic, or by
	// the RTS/RTI/JMP/JSR/branch instructions.
	PC uint16

	// S is the stack pointer, the low byte of the hardware stack address.
	// The stack always lives in page 0x0100-0x01FF and grows downward:
	// a push writes at 0x0100|S and then decrements S, a pull increments S
	// and then reads. S wraps within 8 bits.
	S byte

	// P is the status register. See Status.
	P Status

	// Halted is set when the program terminates via BRK, or when a
	// KIL/JAM opcode locks the processor. Run returns once Halted is set.
	Halted bool

	// Bus is the memory the CPU executes against.
	Bus Memory
}

// NewCPU returns a CPU attached to bus, in power-up state. The program
// counter is not valid until Reset loads it from the reset vector.
func NewCPU(bus Memory) *CPU {
	return &CPU{
		P:   InterruptDisable | Unused,
		S:   0xFD,
		Bus: bus,
	}
}

// Reset puts the CPU into its documented post-reset state: registers
// cleared, stack pointer at 0xFD, interrupts disabled, and the program
// counter loaded from the little-endian reset vector at 0xFFFC.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.S = 0xFD
	c.P = InterruptDisable | Unused
	c.Halted = false

	c.PC = c.readAddress(resetAddr)
}

// Load writes a raw program into RAM at 0x0600 and points the reset vector
// at it. The bus must accept writes in both regions; use a RAMBus, iNES
// images load through the cartridge instead.
func (c *CPU) Load(program []byte) {
	for i, b := range program {
		c.write(loadAddr+uint16(i), b)
	}
	c.writeAddress(resetAddr, loadAddr)
}

// LoadAndRun loads a raw program, resets, and runs it to termination.
func (c *CPU) LoadAndRun(program []byte) {
	c.Load(program)
	c.Reset()
	c.Run()
}

// Run executes instructions until the CPU halts (BRK or a KIL opcode).
func (c *CPU) Run() {
	c.RunWithCallback(nil)
}

// RunWithCallback is Run with an observer: callback is invoked after every
// instruction, before the next fetch, with the CPU itself so that
// disassemblers and debuggers can inspect registers and read memory
// through the bus. A panic in the callback propagates to the caller.
func (c *CPU) RunWithCallback(callback func(*CPU)) {
	for !c.Halted {
		c.Step()
		if callback != nil {
			callback(c)
		}
	}
}

// Step fetches, decodes and executes a single instruction.
//
// The program counter is advanced past the operand bytes afterwards,
// unless the instruction wrote to the program counter itself (jumps,
// returns, taken branches).
func (c *CPU) Step() {
	if c.Halted {
		return
	}

	opCode := c.read(c.PC)
	c.PC++

	inst := Instructions[opCode]
	addr := c.resolveAddress(inst)

	pcState := c.PC

	switch opCode {
	case 0x04, 0x0C, 0x14, 0x1A, 0x1C, 0x34, 0x3A, 0x3C, 0x44, 0x54, 0x5A,
		0x5C, 0x64, 0x74, 0x7A, 0x7C, 0x80, 0x82, 0x89, 0xC2, 0xD4, 0xDA,
		0xDC, 0xE2, 0xF4, 0xFA, 0xFC, 0xEA:
		c.nop(inst.Mode, addr)
	case 0x61, 0x65, 0x69, 0x6D, 0x71, 0x75, 0x79, 0x7D:
		c.adc(inst.Mode, addr)
	case 0x93, 0x9F:
		c.sha(inst.Mode, addr)
	case 0x4B:
		c.alr(inst.Mode, addr)
	case 0x0B, 0x2B:
		c.anc(inst.Mode, addr)
	case 0x21, 0x25, 0x29, 0x2D, 0x31, 0x35, 0x39, 0x3D:
		c.and(inst.Mode, addr)
	case 0x6B:
		c.arr(inst.Mode, addr)
	case 0x06, 0x0A, 0x0E, 0x16, 0x1E:
		c.asl(inst.Mode, addr)
	case 0xCB:
		c.axs(inst.Mode, addr)
	case 0x90:
		c.bcc(inst.Mode, addr)
	case 0xB0:
		c.bcs(inst.Mode, addr)
	case 0xF0:
		c.beq(inst.Mode, addr)
	case 0x24, 0x2C:
		c.bit(inst.Mode, addr)
	case 0x30:
		c.bmi(inst.Mode, addr)
	case 0xD0:
		c.bne(inst.Mode, addr)
	case 0x10:
		c.bpl(inst.Mode, addr)
	case 0x00:
		c.brk(inst.Mode, addr)
	case 0x50:
		c.bvc(inst.Mode, addr)
	case 0x70:
		c.bvs(inst.Mode, addr)
	case 0x18:
		c.clc(inst.Mode, addr)
	case 0xD8:
		c.cld(inst.Mode, addr)
	case 0x58:
		c.cli(inst.Mode, addr)
	case 0xB8:
		c.clv(inst.Mode, addr)
	case 0xC1, 0xC5, 0xC9, 0xCD, 0xD1, 0xD5, 0xD9, 0xDD:
		c.cmp(inst.Mode, addr)
	case 0xE0, 0xE4, 0xEC:
		c.cpx(inst.Mode, addr)
	case 0xC0, 0xC4, 0xCC:
		c.cpy(inst.Mode, addr)
	case 0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDB, 0xDF:
		c.dcp(inst.Mode, addr)
	case 0xC6, 0xCE, 0xD6, 0xDE:
		c.dec(inst.Mode, addr)
	case 0xCA:
		c.dex(inst.Mode, addr)
	case 0x88:
		c.dey(inst.Mode, addr)
	case 0x41, 0x45, 0x49, 0x4D, 0x51, 0x55, 0x59, 0x5D:
		c.eor(inst.Mode, addr)
	case 0xE6, 0xEE, 0xF6, 0xFE:
		c.inc(inst.Mode, addr)
	case 0xE8:
		c.inx(inst.Mode, addr)
	case 0xC8:
		c.iny(inst.Mode, addr)
	case 0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFB, 0xFF:
		c.isc(inst.Mode, addr)
	case 0x4C, 0x6C:
		c.jmp(inst.Mode, addr)
	case 0x20:
		c.jsr(inst.Mode, addr)
	case 0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2:
		c.kil(inst.Mode, addr)
	case 0xBB:
		c.las(inst.Mode, addr)
	case 0xA3, 0xA7, 0xAB, 0xAF, 0xB3, 0xB7, 0xBF:
		c.lax(inst.Mode, addr)
	case 0xA1, 0xA5, 0xA9, 0xAD, 0xB1, 0xB5, 0xB9, 0xBD:
		c.lda(inst.Mode, addr)
	case 0xA2, 0xA6, 0xAE, 0xB6, 0xBE:
		c.ldx(inst.Mode, addr)
	case 0xA0, 0xA4, 0xAC, 0xB4, 0xBC:
		c.ldy(inst.Mode, addr)
	case 0x46, 0x4A, 0x4E, 0x56, 0x5E:
		c.lsr(inst.Mode, addr)
	case 0x01, 0x05, 0x09, 0x0D, 0x11, 0x15, 0x19, 0x1D:
		c.ora(inst.Mode, addr)
	case 0x48:
		c.pha(inst.Mode, addr)
	case 0x08:
		c.php(inst.Mode, addr)
	case 0x68:
		c.pla(inst.Mode, addr)
	case 0x28:
		c.plp(inst.Mode, addr)
	case 0x23, 0x27, 0x2F, 0x33, 0x37, 0x3B, 0x3F:
		c.rla(inst.Mode, addr)
	case 0x26, 0x2A, 0x2E, 0x36, 0x3E:
		c.rol(inst.Mode, addr)
	case 0x66, 0x6A, 0x6E, 0x76, 0x7E:
		c.ror(inst.Mode, addr)
	case 0x63, 0x67, 0x6F, 0x73, 0x77, 0x7B, 0x7F:
		c.rra(inst.Mode, addr)
	case 0x40:
		c.rti(inst.Mode, addr)
	case 0x60:
		c.rts(inst.Mode, addr)
	case 0x83, 0x87, 0x8F, 0x97:
		c.sax(inst.Mode, addr)
	case 0xE1, 0xE5, 0xE9, 0xEB, 0xED, 0xF1, 0xF5, 0xF9, 0xFD:
		c.sbc(inst.Mode, addr)
	case 0x38:
		c.sec(inst.Mode, addr)
	case 0xF8:
		c.sed(inst.Mode, addr)
	case 0x78:
		c.sei(inst.Mode, addr)
	case 0x9E:
		c.shx(inst.Mode, addr)
	case 0x9C:
		c.shy(inst.Mode, addr)
	case 0x03, 0x07, 0x0F, 0x13, 0x17, 0x1B, 0x1F:
		c.slo(inst.Mode, addr)
	case 0x43, 0x47, 0x4F, 0x53, 0x57, 0x5B, 0x5F:
		c.sre(inst.Mode, addr)
	case 0x81, 0x85, 0x8D, 0x91, 0x95, 0x99, 0x9D:
		c.sta(inst.Mode, addr)
	case 0x86, 0x8E, 0x96:
		c.stx(inst.Mode, addr)
	case 0x84, 0x8C, 0x94:
		c.sty(inst.Mode, addr)
	case 0x9B:
		c.tas(inst.Mode, addr)
	case 0xAA:
		c.tax(inst.Mode, addr)
	case 0xA8:
		c.tay(inst.Mode, addr)
	case 0xBA:
		c.tsx(inst.Mode, addr)
	case 0x8A:
		c.txa(inst.Mode, addr)
	case 0x9A:
		c.txs(inst.Mode, addr)
	case 0x98:
		c.tya(inst.Mode, addr)
	case 0x8B:
		c.xaa(inst.Mode, addr)
	}

	if pcState == c.PC {
		c.PC += uint16(inst.Size) - 1
	}
}

func (c *CPU) read(address uint16) byte {
	return c.Bus.Read(address)
}

func (c *CPU) readAddress(address uint16) uint16 {
	lo := c.Bus.Read(address)
	hi := c.Bus.Read(address + 1)

	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) write(address uint16, value byte) {
	c.Bus.Write(address, value)
}

func (c *CPU) writeAddress(address uint16, value uint16) {
	c.Bus.Write(address, byte(value&0xFF))
	c.Bus.Write(address+1, byte(value>>8))
}

// resolveAddress computes the effective address of the operand that starts
// at the current program counter. The program counter itself is not moved;
// Step advances it by Size-1 after the instruction runs.
func (c *CPU) resolveAddress(inst Instruction) uint16 {
	switch inst.Mode {
	case Accumulator, Implied:
		return 0

	case Immediate:
		return c.PC

	case Absolute:
		return c.readAddress(c.PC)

	case ZeroPage:
		return uint16(c.read(c.PC))

	case ZeroPageIndexedX:
		return uint16(c.read(c.PC) + c.X) // let it overflow

	case ZeroPageIndexedY:
		return uint16(c.read(c.PC) + c.Y)

	case IndexedX:
		return c.readAddress(c.PC) + uint16(c.X)

	case IndexedY:
		return c.readAddress(c.PC) + uint16(c.Y)

	case Relative:
		operand := c.read(c.PC)
		return c.PC + 1 + uint16(int8(operand))

	case PreIndexedIndirect:
		pointer := c.read(c.PC) + c.X // let it overflow

		lo := c.read(uint16(pointer))
		hi := c.read(uint16(pointer + 1)) // wraps within the zero page

		return uint16(hi)<<8 | uint16(lo)

	case PostIndexedIndirect:
		pointer := c.read(c.PC)

		lo := c.read(uint16(pointer))
		hi := c.read(uint16(pointer + 1)) // wraps within the zero page

		return (uint16(hi)<<8 | uint16(lo)) + uint16(c.Y)

	case Indirect:
		pointer := c.readAddress(c.PC)

		// An original 6502 does not correctly fetch the target address if
		// the pointer falls on a page boundary: the low byte is read from
		// 0xxxFF as expected but the high byte is read from 0xxx00 of the
		// same page, not from the next one.
		lo := c.read(pointer)
		hi := c.read(pointer&0xFF00 | uint16(byte(pointer)+1))

		return uint16(hi)<<8 | uint16(lo)
	}

	return 0
}

func (c *CPU) push(v byte) {
	stackLo := uint16(c.S)
	c.write(stackHi|stackLo, v)
	c.S--
}

func (c *CPU) pull() byte {
	c.S++
	stackLo := uint16(c.S)
	return c.read(stackHi | stackLo)
}

func (c *CPU) pushAddress(value uint16) {
	hi := byte(value >> 8)
	lo := byte(value & 0xFF)

	c.push(hi)
	c.push(lo)
}

func (c *CPU) pullAddress() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())

	return hi<<8 | lo
}

func (c *CPU) updateZero(v byte) {
	if v == 0 {
		c.P |= Zero
	} else {
		c.P &^= Zero
	}
}

func (c *CPU) updateNegative(v byte) {
	if v&0x80 > 0 {
		c.P |= Negative
	} else {
		c.P &^= Negative
	}
}

func (c *CPU) compare(a, b byte) {
	if a >= b {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}

	if a == b {
		c.P |= Zero
	} else {
		c.P &^= Zero
	}
	c.updateNegative(a - b)
}

func (c *CPU) doDec(v byte) byte {
	r := v - 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

func (c *CPU) doInc(v byte) byte {
	r := v + 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

func (c *CPU) doAdd(v byte) {
	a := uint16(c.A)
	b := uint16(v)
	crry := uint16(c.P & Carry)

	result := a + b + crry

	if result&0x0100 > 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}

	if a&0x80 == b&0x80 && a&0x80 != result&0x80 {
		c.P |= Overflow
	} else {
		c.P &^= Overflow
	}

	c.A = byte(result)
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

func (c *CPU) doAsl(v byte) byte {
	if v&0x80 > 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v = v << 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *CPU) doRol(v byte) byte {
	var carries bool
	if v&0x80 > 0 {
		carries = true
	}
	v = v << 1
	v |= byte(c.P & Carry)

	if carries {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	c.updateZero(v)
	c.updateNegative(v)

	return v
}

func (c *CPU) doLsr(v byte) byte {
	if v&1 > 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v = v >> 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *CPU) doRor(v byte) byte {
	var carries bool
	if v&1 > 0 {
		carries = true
	}

	v = v >> 1
	if c.P&Carry > 0 {
		v |= 0x80
	}

	if carries {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	c.updateZero(v)
	c.updateNegative(v)

	return v
}

func (c *CPU) branch(addr uint16) {
	c.PC = addr
}

// BRK - Force Interrupt
//
// BRK pushes the address after its padding byte and the status register
// (with the Break bit set) on the stack, and sets the interrupt disable
// flag. In this core BRK terminates the program: the run loop halts
// instead of following the 0xFFFE vector.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Not affected
// I	Interrupt Disable	Set to 1
// D	Decimal Mode Flag	Not affected
// B	Break Command		Set to 1 in the pushed byte
// V	Overflow Flag		Not affected
// N	Negative Flag		Not affected
func (c *CPU) brk(mode AddressingMode, addr uint16) {
	c.pushAddress(c.PC + 1)

	status := c.P
	status |= Unused
	status |= Break
	c.push(byte(status))
	c.P |= InterruptDisable

	c.Halted = true
}

// NOP - No Operation
//
// The NOP instruction causes no changes to the processor other than the
// normal incrementing of the program counter. The unofficial variants
// with an operand still perform the operand read for its bus side effects
// and discard the value.
func (c *CPU) nop(mode AddressingMode, addr uint16) {
	if mode != Implied {
		c.read(addr)
	}
}

// SEC - Set Carry Flag
// C = 1
func (c *CPU) sec(mode AddressingMode, addr uint16) {
	c.P |= Carry
}

// CLC - Clear Carry Flag
// C = 0
func (c *CPU) clc(mode AddressingMode, addr uint16) {
	c.P &^= Carry
}

// SED - Set Decimal Flag
// D = 1
//
// The flag is stored but has no arithmetic effect; the NES 6502 has BCD
// disabled.
func (c *CPU) sed(mode AddressingMode, addr uint16) {
	c.P |= Decimal
}

// CLD - Clear Decimal Mode
// D = 0
func (c *CPU) cld(mode AddressingMode, addr uint16) {
	c.P &^= Decimal
}

// SEI - Set Interrupt Disable
// I = 1
func (c *CPU) sei(mode AddressingMode, addr uint16) {
	c.P |= InterruptDisable
}

// CLI - Clear Interrupt Disable
// I = 0
func (c *CPU) cli(mode AddressingMode, addr uint16) {
	c.P &^= InterruptDisable
}

// CLV - Clear Overflow Flag
// V = 0
func (c *CPU) clv(mode AddressingMode, addr uint16) {
	c.P &^= Overflow
}

// STA - Store Accumulator
// M = A
//
// Stores the contents of the accumulator into memory. No flags are
// affected.
func (c *CPU) sta(mode AddressingMode, addr uint16) {
	c.write(addr, c.A)
}

// STX - Store X Register
// M = X
func (c *CPU) stx(mode AddressingMode, addr uint16) {
	c.write(addr, c.X)
}

// STY - Store Y Register
// M = Y
func (c *CPU) sty(mode AddressingMode, addr uint16) {
	c.write(addr, c.Y)
}

// LDA - Load Accumulator
// A,Z,N = M
//
// Loads a byte of memory into the accumulator setting the zero and
// negative flags as appropriate.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Set if A = 0
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Not affected
// N	Negative Flag		Set if bit 7 of A is set
func (c *CPU) lda(mode AddressingMode, addr uint16) {
	c.A = c.read(addr)
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// LDX - Load X Register
// X,Z,N = M
func (c *CPU) ldx(mode AddressingMode, addr uint16) {
	c.X = c.read(addr)
	c.updateZero(c.X)
	c.updateNegative(c.X)
}

// LDY - Load Y Register
// Y,Z,N = M
func (c *CPU) ldy(mode AddressingMode, addr uint16) {
	c.Y = c.read(addr)
	c.updateZero(c.Y)
	c.updateNegative(c.Y)
}

// TAX - Transfer Accumulator to X
// X = A
//
// Copies the current contents of the accumulator into the X register and
// sets the zero and negative flags as appropriate.
func (c *CPU) tax(mode AddressingMode, addr uint16) {
	c.X = c.A
	c.updateZero(c.X)
	c.updateNegative(c.X)
}

// TAY - Transfer Accumulator to Y
// Y = A
func (c *CPU) tay(mode AddressingMode, addr uint16) {
	c.Y = c.A
	c.updateZero(c.Y)
	c.updateNegative(c.Y)
}

// TSX - Transfer Stack Pointer to X
// X = S
func (c *CPU) tsx(mode AddressingMode, addr uint16) {
	c.X = c.S
	c.updateZero(c.X)
	c.updateNegative(c.X)
}

// TXA - Transfer X to Accumulator
// A = X
func (c *CPU) txa(mode AddressingMode, addr uint16) {
	c.A = c.X
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// TXS - Transfer X to Stack Pointer
// S = X
//
// No flags are affected.
func (c *CPU) txs(mode AddressingMode, addr uint16) {
	c.S = c.X
}

// TYA - Transfer Y to Accumulator
// A = Y
func (c *CPU) tya(mode AddressingMode, addr uint16) {
	c.A = c.Y
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// PHA - Push Accumulator
//
// Pushes a copy of the accumulator on to the stack.
func (c *CPU) pha(mode AddressingMode, addr uint16) {
	c.push(c.A)
}

// PHP - Push Processor Status
//
// Pushes a copy of the status flags on to the stack, with the Break and
// Unused bits forced to 1 in the pushed byte.
func (c *CPU) php(mode AddressingMode, addr uint16) {
	status := c.P
	status |= Break
	status |= Unused
	c.push(byte(status))
}

// PLA - Pull Accumulator
//
// Pulls an 8 bit value from the stack and into the accumulator. The zero
// and negative flags are set as appropriate.
func (c *CPU) pla(mode AddressingMode, addr uint16) {
	c.A = c.pull()
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// PLP - Pull Processor Status
//
// Pulls an 8 bit value from the stack and into the processor flags. Break
// is cleared and Unused forced to 1 regardless of the pulled byte.
func (c *CPU) plp(mode AddressingMode, addr uint16) {
	p := c.pull()

	c.P = Status(p)
	c.P &^= Break
	c.P |= Unused
}

// DEC - Decrement Memory
// M,Z,N = M-1
//
// Subtracts one from the value held at a specified memory location
// setting the zero and negative flags as appropriate. The carry flag is
// not affected.
func (c *CPU) dec(mode AddressingMode, addr uint16) {
	v := c.read(addr)
	c.write(addr, c.doDec(v))
}

// DEX - Decrement X Register
// X,Z,N = X-1
func (c *CPU) dex(mode AddressingMode, addr uint16) {
	c.X = c.doDec(c.X)
}

// DEY - Decrement Y Register
// Y,Z,N = Y-1
func (c *CPU) dey(mode AddressingMode, addr uint16) {
	c.Y = c.doDec(c.Y)
}

// INC - Increment Memory
// M,Z,N = M+1
func (c *CPU) inc(mode AddressingMode, addr uint16) {
	v := c.read(addr)
	c.write(addr, c.doInc(v))
}

// INX - Increment X Register
// X,Z,N = X+1
func (c *CPU) inx(mode AddressingMode, addr uint16) {
	c.X = c.doInc(c.X)
}

// INY - Increment Y Register
// Y,Z,N = Y+1
func (c *CPU) iny(mode AddressingMode, addr uint16) {
	c.Y = c.doInc(c.Y)
}

// ADC - Add with Carry
// A,Z,C,N = A+M+C
//
// This instruction adds the contents of a memory location to the
// accumulator together with the carry bit. If overflow occurs the carry
// bit is set, this enables multiple byte addition to be performed.
//
// Processor Status after use:
// C	Carry Flag			Set if overflow in bit 7
// Z	Zero Flag			Set if A = 0
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Set if sign bit is incorrect
// N	Negative Flag		Set if bit 7 set
func (c *CPU) adc(mode AddressingMode, addr uint16) {
	c.doAdd(c.read(addr))
}

// SBC - Subtract with Carry
// A,Z,C,N = A-M-(1-C)
//
// Subtraction is addition of the operand's complement: A + (M^0xFF) + C.
// If overflow occurs the carry bit is clear, this enables multiple byte
// subtraction to be performed.
func (c *CPU) sbc(mode AddressingMode, addr uint16) {
	c.doAdd(c.read(addr) ^ 0xFF)
}

// ASL - Arithmetic Shift Left
// A,Z,C,N = M*2 or M,Z,C,N = M*2
//
// This operation shifts all the bits of the accumulator or memory
// contents one bit left. Bit 0 is set to 0 and bit 7 is placed in the
// carry flag.
func (c *CPU) asl(mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.A = c.doAsl(c.A)
		return
	}

	v := c.read(addr)
	c.write(addr, c.doAsl(v))
}

// AND - Logical AND
// A,Z,N = A&M
func (c *CPU) and(mode AddressingMode, addr uint16) {
	c.A &= c.read(addr)
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// EOR - Exclusive OR
// A,Z,N = A^M
func (c *CPU) eor(mode AddressingMode, addr uint16) {
	c.A ^= c.read(addr)
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// LSR - Logical Shift Right
// A,C,Z,N = A/2 or M,C,Z,N = M/2
//
// Each of the bits in A or M is shifted one place to the right. The bit
// that was in bit 0 is shifted into the carry flag. Bit 7 is set to zero.
func (c *CPU) lsr(mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.A = c.doLsr(c.A)
		return
	}

	v := c.read(addr)
	c.write(addr, c.doLsr(v))
}

// ROL - Rotate Left
//
// Move each of the bits in either A or M one place to the left. Bit 0 is
// filled with the current value of the carry flag whilst the old bit 7
// becomes the new carry flag value.
func (c *CPU) rol(mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.A = c.doRol(c.A)
		return
	}

	v := c.read(addr)
	c.write(addr, c.doRol(v))
}

// ROR - Rotate Right
//
// Move each of the bits in either A or M one place to the right. Bit 7 is
// filled with the current value of the carry flag whilst the old bit 0
// becomes the new carry flag value.
func (c *CPU) ror(mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.A = c.doRor(c.A)
		return
	}

	v := c.read(addr)
	c.write(addr, c.doRor(v))
}

// ORA - Logical Inclusive OR
// A,Z,N = A|M
func (c *CPU) ora(mode AddressingMode, addr uint16) {
	c.A |= c.read(addr)
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// BIT - Bit Test
// A & M, N = M7, V = M6
//
// The mask pattern in A is ANDed with the value in memory to set or clear
// the zero flag, but the result is not kept. Bits 7 and 6 of the value
// from memory are copied into the N and V flags.
func (c *CPU) bit(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	c.updateNegative(v)
	c.updateZero(c.A & v)

	if v&0x40 > 0 {
		c.P |= Overflow
	} else {
		c.P &^= Overflow
	}
}

// CMP - Compare
// Z,C,N = A-M
//
// Compares the contents of the accumulator with another memory held
// value.
//
// Processor Status after use:
// C	Carry Flag			Set if A >= M
// Z	Zero Flag			Set if A = M
// N	Negative Flag		Set if bit 7 of the result is set
func (c *CPU) cmp(mode AddressingMode, addr uint16) {
	c.compare(c.A, c.read(addr))
}

// CPX - Compare X Register
// Z,C,N = X-M
func (c *CPU) cpx(mode AddressingMode, addr uint16) {
	c.compare(c.X, c.read(addr))
}

// CPY - Compare Y Register
// Z,C,N = Y-M
func (c *CPU) cpy(mode AddressingMode, addr uint16) {
	c.compare(c.Y, c.read(addr))
}

// BCC - Branch if Carry Clear
func (c *CPU) bcc(mode AddressingMode, addr uint16) {
	if c.P&Carry > 0 {
		return
	}

	c.branch(addr)
}

// BCS - Branch if Carry Set
func (c *CPU) bcs(mode AddressingMode, addr uint16) {
	if c.P&Carry == 0 {
		return
	}

	c.branch(addr)
}

// BVC - Branch if Overflow Clear
func (c *CPU) bvc(mode AddressingMode, addr uint16) {
	if c.P&Overflow > 0 {
		return
	}

	c.branch(addr)
}

// BVS - Branch if Overflow Set
func (c *CPU) bvs(mode AddressingMode, addr uint16) {
	if c.P&Overflow == 0 {
		return
	}

	c.branch(addr)
}

// BEQ - Branch if Equal
func (c *CPU) beq(mode AddressingMode, addr uint16) {
	if c.P&Zero == 0 {
		return
	}

	c.branch(addr)
}

// BNE - Branch if Not Equal
func (c *CPU) bne(mode AddressingMode, addr uint16) {
	if c.P&Zero > 0 {
		return
	}

	c.branch(addr)
}

// BMI - Branch if Minus
func (c *CPU) bmi(mode AddressingMode, addr uint16) {
	if c.P&Negative == 0 {
		return
	}

	c.branch(addr)
}

// BPL - Branch if Positive
func (c *CPU) bpl(mode AddressingMode, addr uint16) {
	if c.P&Negative > 0 {
		return
	}

	c.branch(addr)
}

// JMP - Jump
//
// Sets the program counter to the address specified by the operand. For
// the indirect form the page-boundary fetch bug applies, see
// resolveAddress.
func (c *CPU) jmp(mode AddressingMode, addr uint16) {
	c.PC = addr
}

// JSR - Jump to Subroutine
//
// The JSR instruction pushes the address of the last byte of the JSR
// instruction (the return point minus one) on to the stack and then sets
// the program counter to the target memory address.
func (c *CPU) jsr(mode AddressingMode, addr uint16) {
	c.pushAddress(c.PC + 1)
	c.PC = addr
}

// RTI - Return from Interrupt
//
// Pulls the processor flags from the stack followed by the program
// counter. Break is cleared and Unused forced in the restored flags.
func (c *CPU) rti(mode AddressingMode, addr uint16) {
	p := c.pull()

	c.P = Status(p) & ^Break
	c.P |= Unused

	c.PC = c.pullAddress()
}

// RTS - Return from Subroutine
//
// Pulls the program counter (minus one) from the stack and adds one.
func (c *CPU) rts(mode AddressingMode, addr uint16) {
	c.PC = c.pullAddress() + 1
}

// Equivalent to AND #i then LSR A. Some sources call this "ASR"; we do not
// follow this out of confusion with the mnemonic for a pseudoinstruction
// that combines CMP #$80 (or ANC #$FF) then ROR. Note that ALR #$FE acts
// like LSR followed by CLC.
func (c *CPU) alr(mode AddressingMode, addr uint16) {
	c.and(mode, addr)
	c.lsr(Accumulator, addr)
}

// Does AND #i, setting N and Z flags based on the result. Then it copies N
// (bit 7) to C. ANC #$FF could be useful for sign-extending, much like
// CMP #$80. ANC #$00 acts like LDA #$00 followed by CLC.
func (c *CPU) anc(mode AddressingMode, addr uint16) {
	c.and(mode, addr)

	if c.P&Negative > 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
}

// Similar to AND #i then ROR A, except sets the flags differently. N and Z
// are normal, but C is bit 6 and V is bit 6 xor bit 5.
func (c *CPU) arr(mode AddressingMode, addr uint16) {
	c.and(mode, addr)
	c.ror(Accumulator, addr)

	if (c.A>>6)&1 > 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}

	if ((c.A>>6)&1)^((c.A>>5)&1) > 0 {
		c.P |= Overflow
	} else {
		c.P &^= Overflow
	}
}

// Sets X to {(A AND X) - #value without borrow}, and updates NZC. One
// might use TXA AXS #-element_size to iterate through an array of
// structures or other elements larger than a byte. Also called SBX.
func (c *CPU) axs(mode AddressingMode, addr uint16) {
	v := c.read(addr)
	t := c.A & c.X

	c.compare(t, v)
	c.X = t - v
}

// Shortcut for LDA value then TAX. Saves a byte and two cycles and allows
// use of the X register with the (d),Y addressing mode. The immediate form
// (LXA, 0xAB) is unstable on real silicon; here it behaves as
// A = A & #i, X = A.
func (c *CPU) lax(mode AddressingMode, addr uint16) {
	if mode == Immediate {
		c.and(mode, addr)
		c.tax(mode, addr)
		return
	}

	c.lda(mode, addr)
	c.tax(mode, addr)
}

// Stores the bitwise AND of A and X. As with STA and STX, no flags are
// affected.
func (c *CPU) sax(mode AddressingMode, addr uint16) {
	c.write(addr, c.A&c.X)
}

// Equivalent to DEC value then CMP value, except supporting more
// addressing modes. LDA #$FF followed by DCP can be used to check if the
// decrement underflows, which is useful for multi-byte decrements.
func (c *CPU) dcp(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doDec(v)
	c.write(addr, v)
	c.compare(c.A, v)
}

// Equivalent to INC value then SBC value, except supporting more
// addressing modes. Also called ISB.
func (c *CPU) isc(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doInc(v)
	c.write(addr, v)
	c.doAdd(v ^ 0xFF)
}

// Equivalent to ROL value then AND value, except supporting more
// addressing modes. LDA #$FF followed by RLA is an efficient way to rotate
// a variable while also loading it in A.
func (c *CPU) rla(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doRol(v)
	c.write(addr, v)

	c.A &= v
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// Equivalent to ROR value then ADC value, except supporting more
// addressing modes. Essentially this computes A + value / 2, where value
// is 9-bit and the division is rounded up.
func (c *CPU) rra(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doRor(v)
	c.write(addr, v)
	c.doAdd(v)
}

// Equivalent to ASL value then ORA value, except supporting more
// addressing modes. LDA #0 followed by SLO is an efficient way to shift a
// variable while also loading it in A.
func (c *CPU) slo(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doAsl(v)
	c.write(addr, v)

	c.A |= v
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// Equivalent to LSR value then EOR value, except supporting more
// addressing modes. LDA #0 followed by SRE is an efficient way to shift a
// variable while also loading it in A.
func (c *CPU) sre(mode AddressingMode, addr uint16) {
	v := c.read(addr)

	v = c.doLsr(v)
	c.write(addr, v)

	c.A ^= v
	c.updateZero(c.A)
	c.updateNegative(c.A)
}

// KIL (also JAM or HLT) locks up the processor; only a hardware reset
// recovers it. Here it simply halts the run loop.
func (c *CPU) kil(mode AddressingMode, addr uint16) {
	c.Halted = true
}

// XAA (also ANE) depends on analog line noise on real silicon; here it
// behaves as A = A & #i, documented unstable.
func (c *CPU) xaa(mode AddressingMode, addr uint16) {
	c.and(mode, addr)
}

// Stores A & X & (high byte of the target address + 1). Also called AHX.
func (c *CPU) sha(mode AddressingMode, addr uint16) {
	c.write(addr, c.A&c.X&(byte(addr>>8)+1))
}

// Sets S to A & X and stores A & X & (high byte of the target address
// + 1). Also called SHS.
func (c *CPU) tas(mode AddressingMode, addr uint16) {
	c.S = c.A & c.X
	c.write(addr, c.A&c.X&(byte(addr>>8)+1))
}

// Stores Y & (high byte of the target address + 1). Also called SYA.
func (c *CPU) shy(mode AddressingMode, addr uint16) {
	c.write(addr, c.Y&(byte(addr>>8)+1))
}

// Stores X & (high byte of the target address + 1). Also called SXA.
func (c *CPU) shx(mode AddressingMode, addr uint16) {
	c.write(addr, c.X&(byte(addr>>8)+1))
}

// Loads M & S into A, X and S, updating N and Z.
func (c *CPU) las(mode AddressingMode, addr uint16) {
	v := c.read(addr) & c.S

	c.A = v
	c.X = v
	c.S = v
	c.updateZero(v)
	c.updateNegative(v)
}
