package cpu

// resolve computes the effective address for the given addressing mode,
// with PC pointing at the first operand byte (one past the opcode). For
// ModeImmediate the "effective address" is PC itself: the caller reads the
// operand byte directly from there. ModeImplied/ModeAccumulator have no
// effective address and must never reach here; calling resolve for them is
// an emulator bug, not a guest-program error, and is reported as such.
func (c *CPU) resolve(m Mode) (uint16, error) {
	switch m {
	case ModeImmediate:
		return c.PC, nil
	case ModeZeroPage:
		return uint16(c.ram.Read(c.PC)), nil
	case ModeZeroPageX:
		return uint16(c.ram.Read(c.PC) + c.X), nil
	case ModeZeroPageY:
		return uint16(c.ram.Read(c.PC) + c.Y), nil
	case ModeAbsolute:
		return c.read16(c.PC), nil
	case ModeAbsoluteX:
		return c.read16(c.PC) + uint16(c.X), nil
	case ModeAbsoluteY:
		return c.read16(c.PC) + uint16(c.Y), nil
	case ModeIndirectX:
		p := uint16(c.ram.Read(c.PC) + c.X)
		lo := uint16(c.ram.Read(p & 0xFF))
		hi := uint16(c.ram.Read((p + 1) & 0xFF))
		return lo | hi<<8, nil
	case ModeIndirectY:
		b := uint16(c.ram.Read(c.PC))
		lo := uint16(c.ram.Read(b & 0xFF))
		hi := uint16(c.ram.Read((b + 1) & 0xFF))
		base := lo | hi<<8
		return base + uint16(c.Y), nil
	default:
		return 0, InvalidCPUState{Reason: "resolve called for an addressing mode with no effective address"}
	}
}

// operandLen returns how many operand bytes (beyond the opcode) the mode
// consumes, used only by resolve's callers to know how far PC needs to
// move; the dispatch table already encodes the full instruction length so
// this mirrors it rather than being consulted by Step itself.
func (m Mode) operandLen() uint16 {
	switch m {
	case ModeImplied, ModeAccumulator:
		return 0
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
		return 2
	default:
		return 1
	}
}
