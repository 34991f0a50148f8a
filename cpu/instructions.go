package cpu

// This file holds one handler per mnemonic family. Every handler has the
// signature func(c *CPU, m Mode) error so the opcode table can dispatch
// through a single function pointer; m is only used by handlers whose
// behavior varies by addressing mode (load/store/rmw instructions and
// ASL/LSR/ROL/ROR's accumulator-vs-memory split). A handler that reads
// operand bytes advances PC past them itself, and a control-transfer
// instruction (JMP/JSR/RTS/RTI, a taken branch) sets PC outright; Step adds
// the table's len-1 only when a handler left PC untouched (implied
// instructions, a branch not taken).

// loadByte reads the value an instruction operates on: the literal byte
// for Immediate, or memory at the resolved effective address otherwise.
func (c *CPU) loadByte(m Mode) (uint8, error) {
	addr, err := c.resolve(m)
	if err != nil {
		return 0, err
	}
	v := c.ram.Read(addr)
	if m.operandLen() > 0 {
		c.PC += m.operandLen()
	}
	return v, nil
}

// rmwOperand resolves the effective address for a read-modify-write
// instruction (ASL/LSR/ROL/ROR/INC/DEC on a memory operand) and returns
// both the address and its current value, advancing PC past the operand.
func (c *CPU) rmwOperand(m Mode) (uint16, uint8, error) {
	addr, err := c.resolve(m)
	if err != nil {
		return 0, 0, err
	}
	v := c.ram.Read(addr)
	c.PC += m.operandLen()
	return addr, v, nil
}

func (c *CPU) storeAddr(m Mode) (uint16, error) {
	addr, err := c.resolve(m)
	if err != nil {
		return 0, err
	}
	c.PC += m.operandLen()
	return addr, nil
}

// --- Loads ---

func (c *CPU) iLDA(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.A = v
	c.setZN(c.A)
	return nil
}

func (c *CPU) iLDX(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.X = v
	c.setZN(c.X)
	return nil
}

func (c *CPU) iLDY(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.Y = v
	c.setZN(c.Y)
	return nil
}

// --- Stores ---

func (c *CPU) iSTA(m Mode) error {
	addr, err := c.storeAddr(m)
	if err != nil {
		return err
	}
	c.ram.Write(addr, c.A)
	return nil
}

func (c *CPU) iSTX(m Mode) error {
	addr, err := c.storeAddr(m)
	if err != nil {
		return err
	}
	c.ram.Write(addr, c.X)
	return nil
}

func (c *CPU) iSTY(m Mode) error {
	addr, err := c.storeAddr(m)
	if err != nil {
		return err
	}
	c.ram.Write(addr, c.Y)
	return nil
}

// --- Transfers ---

func (c *CPU) iTAX(Mode) error { c.X = c.A; c.setZN(c.X); return nil }
func (c *CPU) iTAY(Mode) error { c.Y = c.A; c.setZN(c.Y); return nil }
func (c *CPU) iTXA(Mode) error { c.A = c.X; c.setZN(c.A); return nil }
func (c *CPU) iTYA(Mode) error { c.A = c.Y; c.setZN(c.A); return nil }
func (c *CPU) iTSX(Mode) error { c.X = c.SP; c.setZN(c.X); return nil }
func (c *CPU) iTXS(Mode) error { c.SP = c.X; return nil } // no flag change

// --- Inc/dec ---

func (c *CPU) iINX(Mode) error { c.X++; c.setZN(c.X); return nil }
func (c *CPU) iINY(Mode) error { c.Y++; c.setZN(c.Y); return nil }
func (c *CPU) iDEX(Mode) error { c.X--; c.setZN(c.X); return nil }
func (c *CPU) iDEY(Mode) error { c.Y--; c.setZN(c.Y); return nil }

func (c *CPU) iINC(m Mode) error {
	addr, v, err := c.rmwOperand(m)
	if err != nil {
		return err
	}
	v++
	c.ram.Write(addr, v)
	c.setZN(v)
	return nil
}

func (c *CPU) iDEC(m Mode) error {
	addr, v, err := c.rmwOperand(m)
	if err != nil {
		return err
	}
	v--
	c.ram.Write(addr, v)
	c.setZN(v)
	return nil
}

// --- Compares ---

func (c *CPU) doCompare(reg uint8, m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.setFlag(flagC, v <= reg)
	c.setZN(reg - v)
	return nil
}

func (c *CPU) iCMP(m Mode) error { return c.doCompare(c.A, m) }
func (c *CPU) iCPX(m Mode) error { return c.doCompare(c.X, m) }
func (c *CPU) iCPY(m Mode) error { return c.doCompare(c.Y, m) }

// --- ADC/SBC ---

func (c *CPU) iADC(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.addWithCarry(v)
	return nil
}

func (c *CPU) iSBC(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.addWithCarry(v ^ 0xFF)
	return nil
}

// --- Logical ---

func (c *CPU) iAND(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.A &= v
	c.setZN(c.A)
	return nil
}

func (c *CPU) iORA(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.A |= v
	c.setZN(c.A)
	return nil
}

func (c *CPU) iEOR(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.A ^= v
	c.setZN(c.A)
	return nil
}

// --- Shifts/rotates ---

// shiftRotate loads the operand (accumulator or memory), applies fn, and
// writes the result back to wherever it came from. This is the "load/store
// a byte through a callback" helper the spec's design notes ask for, so
// ASL/LSR/ROL/ROR each contribute only their one-line bit transform.
func (c *CPU) shiftRotate(m Mode, fn func(v uint8) uint8) error {
	if m == ModeAccumulator {
		c.A = fn(c.A)
		c.setZN(c.A)
		return nil
	}
	addr, v, err := c.rmwOperand(m)
	if err != nil {
		return err
	}
	v = fn(v)
	c.ram.Write(addr, v)
	c.setZN(v)
	return nil
}

func (c *CPU) iASL(m Mode) error {
	return c.shiftRotate(m, func(v uint8) uint8 {
		c.setFlag(flagC, v&0x80 != 0)
		return v << 1
	})
}

func (c *CPU) iLSR(m Mode) error {
	return c.shiftRotate(m, func(v uint8) uint8 {
		c.setFlag(flagC, v&0x01 != 0)
		return v >> 1
	})
}

func (c *CPU) iROL(m Mode) error {
	return c.shiftRotate(m, func(v uint8) uint8 {
		oldCarry := uint8(0)
		if c.flag(flagC) {
			oldCarry = 1
		}
		c.setFlag(flagC, v&0x80 != 0)
		return v<<1 | oldCarry
	})
}

func (c *CPU) iROR(m Mode) error {
	return c.shiftRotate(m, func(v uint8) uint8 {
		oldCarry := uint8(0)
		if c.flag(flagC) {
			oldCarry = 0x80
		}
		c.setFlag(flagC, v&0x01 != 0)
		return v>>1 | oldCarry
	})
}

// --- BIT ---

func (c *CPU) iBIT(m Mode) error {
	v, err := c.loadByte(m)
	if err != nil {
		return err
	}
	c.setFlag(flagZ, c.A&v == 0)
	// Per REDESIGN: these must clear the bit in the false case, never
	// leave a stale one from a previous instruction.
	c.setFlag(flagN, v&0x80 != 0)
	c.setFlag(flagV, v&0x40 != 0)
	return nil
}

// --- Branches ---

// branchFn returns a handler for a conditional branch testing mask against
// want. Displacement is a signed 8 bit value at PC; if taken, PC becomes
// PC + 1 + signext(disp) (the +1 accounts for the displacement byte
// itself); if not taken, PC is left at the displacement byte so Step's
// uniform len-1 advance skips over it.
func branchFn(mask uint8, want bool) func(c *CPU, m Mode) error {
	return func(c *CPU, m Mode) error {
		disp := int8(c.ram.Read(c.PC))
		if c.flag(mask) == want {
			c.PC = uint16(int32(c.PC) + 1 + int32(disp))
		}
		return nil
	}
}

// --- Flag ops ---

func flagSetFn(mask uint8) func(c *CPU, m Mode) error {
	return func(c *CPU, m Mode) error { c.setFlag(mask, true); return nil }
}

func flagClearFn(mask uint8) func(c *CPU, m Mode) error {
	return func(c *CPU, m Mode) error { c.setFlag(mask, false); return nil }
}

// --- Jumps/calls/returns ---

func (c *CPU) iJMP(Mode) error {
	c.PC = c.read16(c.PC)
	return nil
}

// iJMPIndirect implements JMP (a) including the famous page-wrap bug: if
// the low byte of the pointer is $FF, the high byte of the destination is
// fetched from ptr & $FF00 instead of ptr+1, because the real 6502 never
// carries into the high byte of the indirect address on this instruction.
func (c *CPU) iJMPIndirect(Mode) error {
	ptr := c.read16(c.PC)
	loAddr := ptr
	var hiAddr uint16
	if ptr&0xFF == 0xFF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	lo := uint16(c.ram.Read(loAddr))
	hi := uint16(c.ram.Read(hiAddr))
	c.PC = lo | hi<<8
	return nil
}

// iJSR pushes the address of the last byte of the JSR encoding (PC+1,
// since PC here already points at the low byte of the target address)
// and jumps to the target. RTS later pops this and adds 1 to resume at
// the instruction following JSR.
func (c *CPU) iJSR(Mode) error {
	target := c.read16(c.PC)
	c.pushStack16(c.PC + 1)
	c.PC = target
	return nil
}

func (c *CPU) iRTS(Mode) error {
	c.PC = c.popStack16() + 1
	return nil
}

func (c *CPU) iRTI(Mode) error {
	c.P = c.popStack()
	c.setFlag(flagB, false)
	c.setFlag(flagU, true)
	c.PC = c.popStack16()
	return nil
}

// --- Stack ops ---

func (c *CPU) iPHA(Mode) error { c.pushStack(c.A); return nil }

func (c *CPU) iPLA(Mode) error {
	c.A = c.popStack()
	c.setZN(c.A)
	return nil
}

func (c *CPU) iPHP(Mode) error {
	c.pushStack(c.P | flagB | flagU)
	return nil
}

func (c *CPU) iPLP(Mode) error {
	c.P = c.popStack()
	c.setFlag(flagB, false)
	c.setFlag(flagU, true)
	return nil
}

// --- Misc ---

func (c *CPU) iNOP(Mode) error { return nil }

func (c *CPU) iBRK(Mode) error { return ErrBreak }
