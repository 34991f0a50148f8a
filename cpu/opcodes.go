package cpu

// Mode is an enumeration of the addressing modes a documented 6502 opcode
// can use. Exported so disassemble can format operands without duplicating
// the table; this core has no tick-by-tick instructionMode split since
// every handler below runs to completion in one call.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// opcode is a single entry in the dispatch table: everything the
// interpreter loop needs to know about one opcode byte without having to
// ask the handler.
type opcode struct {
	op       uint8
	mnemonic string
	len      uint16
	cycles   int
	mode     Mode
	fn       func(c *CPU, m Mode) error
}

// opcodes is the static, process-wide dispatch table indexed by opcode
// byte. A nil entry means the byte has no documented instruction and is
// fatal at dispatch time (see Step). This intentionally only covers the
// documented ISA subset named in the spec; there is no provision for
// undocumented/illegal opcodes.
var opcodes = buildOpcodeTable()

func buildOpcodeTable() [256]*opcode {
	var t [256]*opcode
	add := func(op uint8, mnemonic string, length uint16, cycles int, m Mode, fn func(c *CPU, m Mode) error) {
		if t[op] != nil {
			panic("duplicate opcode entry")
		}
		t[op] = &opcode{op: op, mnemonic: mnemonic, len: length, cycles: cycles, mode: m, fn: fn}
	}

	// Loads
	add(0xA9, "LDA", 2, 2, ModeImmediate, (*CPU).iLDA)
	add(0xA5, "LDA", 2, 3, ModeZeroPage, (*CPU).iLDA)
	add(0xB5, "LDA", 2, 4, ModeZeroPageX, (*CPU).iLDA)
	add(0xAD, "LDA", 3, 4, ModeAbsolute, (*CPU).iLDA)
	add(0xBD, "LDA", 3, 4, ModeAbsoluteX, (*CPU).iLDA)
	add(0xB9, "LDA", 3, 4, ModeAbsoluteY, (*CPU).iLDA)
	add(0xA1, "LDA", 2, 6, ModeIndirectX, (*CPU).iLDA)
	add(0xB1, "LDA", 2, 5, ModeIndirectY, (*CPU).iLDA)

	add(0xA2, "LDX", 2, 2, ModeImmediate, (*CPU).iLDX)
	add(0xA6, "LDX", 2, 3, ModeZeroPage, (*CPU).iLDX)
	add(0xB6, "LDX", 2, 4, ModeZeroPageY, (*CPU).iLDX)
	add(0xAE, "LDX", 3, 4, ModeAbsolute, (*CPU).iLDX)
	add(0xBE, "LDX", 3, 4, ModeAbsoluteY, (*CPU).iLDX)

	add(0xA0, "LDY", 2, 2, ModeImmediate, (*CPU).iLDY)
	add(0xA4, "LDY", 2, 3, ModeZeroPage, (*CPU).iLDY)
	add(0xB4, "LDY", 2, 4, ModeZeroPageX, (*CPU).iLDY)
	add(0xAC, "LDY", 3, 4, ModeAbsolute, (*CPU).iLDY)
	add(0xBC, "LDY", 3, 4, ModeAbsoluteX, (*CPU).iLDY)

	// Stores
	add(0x85, "STA", 2, 3, ModeZeroPage, (*CPU).iSTA)
	add(0x95, "STA", 2, 4, ModeZeroPageX, (*CPU).iSTA)
	add(0x8D, "STA", 3, 4, ModeAbsolute, (*CPU).iSTA)
	add(0x9D, "STA", 3, 5, ModeAbsoluteX, (*CPU).iSTA)
	add(0x99, "STA", 3, 5, ModeAbsoluteY, (*CPU).iSTA)
	add(0x81, "STA", 2, 6, ModeIndirectX, (*CPU).iSTA)
	add(0x91, "STA", 2, 6, ModeIndirectY, (*CPU).iSTA)

	add(0x86, "STX", 2, 3, ModeZeroPage, (*CPU).iSTX)
	add(0x96, "STX", 2, 4, ModeZeroPageY, (*CPU).iSTX)
	add(0x8E, "STX", 3, 4, ModeAbsolute, (*CPU).iSTX)

	add(0x84, "STY", 2, 3, ModeZeroPage, (*CPU).iSTY)
	add(0x94, "STY", 2, 4, ModeZeroPageX, (*CPU).iSTY)
	add(0x8C, "STY", 3, 4, ModeAbsolute, (*CPU).iSTY)

	// Transfers
	add(0xAA, "TAX", 1, 2, ModeImplied, (*CPU).iTAX)
	add(0xA8, "TAY", 1, 2, ModeImplied, (*CPU).iTAY)
	add(0x8A, "TXA", 1, 2, ModeImplied, (*CPU).iTXA)
	add(0x98, "TYA", 1, 2, ModeImplied, (*CPU).iTYA)
	add(0xBA, "TSX", 1, 2, ModeImplied, (*CPU).iTSX)
	add(0x9A, "TXS", 1, 2, ModeImplied, (*CPU).iTXS)

	// Inc/dec
	add(0xE8, "INX", 1, 2, ModeImplied, (*CPU).iINX)
	add(0xC8, "INY", 1, 2, ModeImplied, (*CPU).iINY)
	add(0xCA, "DEX", 1, 2, ModeImplied, (*CPU).iDEX)
	add(0x88, "DEY", 1, 2, ModeImplied, (*CPU).iDEY)

	add(0xE6, "INC", 2, 5, ModeZeroPage, (*CPU).iINC)
	add(0xF6, "INC", 2, 6, ModeZeroPageX, (*CPU).iINC)
	add(0xEE, "INC", 3, 6, ModeAbsolute, (*CPU).iINC)
	add(0xFE, "INC", 3, 7, ModeAbsoluteX, (*CPU).iINC)

	add(0xC6, "DEC", 2, 5, ModeZeroPage, (*CPU).iDEC)
	add(0xD6, "DEC", 2, 6, ModeZeroPageX, (*CPU).iDEC)
	add(0xCE, "DEC", 3, 6, ModeAbsolute, (*CPU).iDEC)
	add(0xDE, "DEC", 3, 7, ModeAbsoluteX, (*CPU).iDEC)

	// Compares
	add(0xC9, "CMP", 2, 2, ModeImmediate, (*CPU).iCMP)
	add(0xC5, "CMP", 2, 3, ModeZeroPage, (*CPU).iCMP)
	add(0xD5, "CMP", 2, 4, ModeZeroPageX, (*CPU).iCMP)
	add(0xCD, "CMP", 3, 4, ModeAbsolute, (*CPU).iCMP)
	add(0xDD, "CMP", 3, 4, ModeAbsoluteX, (*CPU).iCMP)
	add(0xD9, "CMP", 3, 4, ModeAbsoluteY, (*CPU).iCMP)
	add(0xC1, "CMP", 2, 6, ModeIndirectX, (*CPU).iCMP)
	add(0xD1, "CMP", 2, 5, ModeIndirectY, (*CPU).iCMP)

	add(0xE0, "CPX", 2, 2, ModeImmediate, (*CPU).iCPX)
	add(0xE4, "CPX", 2, 3, ModeZeroPage, (*CPU).iCPX)
	add(0xEC, "CPX", 3, 4, ModeAbsolute, (*CPU).iCPX)

	add(0xC0, "CPY", 2, 2, ModeImmediate, (*CPU).iCPY)
	add(0xC4, "CPY", 2, 3, ModeZeroPage, (*CPU).iCPY)
	add(0xCC, "CPY", 3, 4, ModeAbsolute, (*CPU).iCPY)

	// ADC/SBC
	add(0x69, "ADC", 2, 2, ModeImmediate, (*CPU).iADC)
	add(0x65, "ADC", 2, 3, ModeZeroPage, (*CPU).iADC)
	add(0x75, "ADC", 2, 4, ModeZeroPageX, (*CPU).iADC)
	add(0x6D, "ADC", 3, 4, ModeAbsolute, (*CPU).iADC)
	add(0x7D, "ADC", 3, 4, ModeAbsoluteX, (*CPU).iADC)
	add(0x79, "ADC", 3, 4, ModeAbsoluteY, (*CPU).iADC)
	add(0x61, "ADC", 2, 6, ModeIndirectX, (*CPU).iADC)
	add(0x71, "ADC", 2, 5, ModeIndirectY, (*CPU).iADC)

	add(0xE9, "SBC", 2, 2, ModeImmediate, (*CPU).iSBC)
	add(0xE5, "SBC", 2, 3, ModeZeroPage, (*CPU).iSBC)
	add(0xF5, "SBC", 2, 4, ModeZeroPageX, (*CPU).iSBC)
	add(0xED, "SBC", 3, 4, ModeAbsolute, (*CPU).iSBC)
	add(0xFD, "SBC", 3, 4, ModeAbsoluteX, (*CPU).iSBC)
	add(0xF9, "SBC", 3, 4, ModeAbsoluteY, (*CPU).iSBC)
	add(0xE1, "SBC", 2, 6, ModeIndirectX, (*CPU).iSBC)
	add(0xF1, "SBC", 2, 5, ModeIndirectY, (*CPU).iSBC)

	// Logical
	add(0x29, "AND", 2, 2, ModeImmediate, (*CPU).iAND)
	add(0x25, "AND", 2, 3, ModeZeroPage, (*CPU).iAND)
	add(0x35, "AND", 2, 4, ModeZeroPageX, (*CPU).iAND)
	add(0x2D, "AND", 3, 4, ModeAbsolute, (*CPU).iAND)
	add(0x3D, "AND", 3, 4, ModeAbsoluteX, (*CPU).iAND)
	add(0x39, "AND", 3, 4, ModeAbsoluteY, (*CPU).iAND)
	add(0x21, "AND", 2, 6, ModeIndirectX, (*CPU).iAND)
	add(0x31, "AND", 2, 5, ModeIndirectY, (*CPU).iAND)

	add(0x09, "ORA", 2, 2, ModeImmediate, (*CPU).iORA)
	add(0x05, "ORA", 2, 3, ModeZeroPage, (*CPU).iORA)
	add(0x15, "ORA", 2, 4, ModeZeroPageX, (*CPU).iORA)
	add(0x0D, "ORA", 3, 4, ModeAbsolute, (*CPU).iORA)
	add(0x1D, "ORA", 3, 4, ModeAbsoluteX, (*CPU).iORA)
	add(0x19, "ORA", 3, 4, ModeAbsoluteY, (*CPU).iORA)
	add(0x01, "ORA", 2, 6, ModeIndirectX, (*CPU).iORA)
	add(0x11, "ORA", 2, 5, ModeIndirectY, (*CPU).iORA)

	add(0x49, "EOR", 2, 2, ModeImmediate, (*CPU).iEOR)
	add(0x45, "EOR", 2, 3, ModeZeroPage, (*CPU).iEOR)
	add(0x55, "EOR", 2, 4, ModeZeroPageX, (*CPU).iEOR)
	add(0x4D, "EOR", 3, 4, ModeAbsolute, (*CPU).iEOR)
	add(0x5D, "EOR", 3, 4, ModeAbsoluteX, (*CPU).iEOR)
	add(0x59, "EOR", 3, 4, ModeAbsoluteY, (*CPU).iEOR)
	add(0x41, "EOR", 2, 6, ModeIndirectX, (*CPU).iEOR)
	add(0x51, "EOR", 2, 5, ModeIndirectY, (*CPU).iEOR)

	// Shifts/rotates
	add(0x0A, "ASL", 1, 2, ModeAccumulator, (*CPU).iASL)
	add(0x06, "ASL", 2, 5, ModeZeroPage, (*CPU).iASL)
	add(0x16, "ASL", 2, 6, ModeZeroPageX, (*CPU).iASL)
	add(0x0E, "ASL", 3, 6, ModeAbsolute, (*CPU).iASL)
	add(0x1E, "ASL", 3, 7, ModeAbsoluteX, (*CPU).iASL)

	add(0x4A, "LSR", 1, 2, ModeAccumulator, (*CPU).iLSR)
	add(0x46, "LSR", 2, 5, ModeZeroPage, (*CPU).iLSR)
	add(0x56, "LSR", 2, 6, ModeZeroPageX, (*CPU).iLSR)
	add(0x4E, "LSR", 3, 6, ModeAbsolute, (*CPU).iLSR)
	add(0x5E, "LSR", 3, 7, ModeAbsoluteX, (*CPU).iLSR)

	// Per REDESIGN FLAG: ROL is $26/$2A/$36/$2E/$3E, ROR is $66/$6A/$76/$6E/$7E.
	// These must not collide with each other.
	add(0x2A, "ROL", 1, 2, ModeAccumulator, (*CPU).iROL)
	add(0x26, "ROL", 2, 5, ModeZeroPage, (*CPU).iROL)
	add(0x36, "ROL", 2, 6, ModeZeroPageX, (*CPU).iROL)
	add(0x2E, "ROL", 3, 6, ModeAbsolute, (*CPU).iROL)
	add(0x3E, "ROL", 3, 7, ModeAbsoluteX, (*CPU).iROL)

	add(0x6A, "ROR", 1, 2, ModeAccumulator, (*CPU).iROR)
	add(0x66, "ROR", 2, 5, ModeZeroPage, (*CPU).iROR)
	add(0x76, "ROR", 2, 6, ModeZeroPageX, (*CPU).iROR)
	add(0x6E, "ROR", 3, 6, ModeAbsolute, (*CPU).iROR)
	add(0x7E, "ROR", 3, 7, ModeAbsoluteX, (*CPU).iROR)

	// BIT
	add(0x24, "BIT", 2, 3, ModeZeroPage, (*CPU).iBIT)
	add(0x2C, "BIT", 3, 4, ModeAbsolute, (*CPU).iBIT)

	// Branches
	add(0x10, "BPL", 2, 2, ModeRelative, branchFn(flagN, false))
	add(0x30, "BMI", 2, 2, ModeRelative, branchFn(flagN, true))
	add(0x50, "BVC", 2, 2, ModeRelative, branchFn(flagV, false))
	add(0x70, "BVS", 2, 2, ModeRelative, branchFn(flagV, true))
	add(0x90, "BCC", 2, 2, ModeRelative, branchFn(flagC, false))
	add(0xB0, "BCS", 2, 2, ModeRelative, branchFn(flagC, true))
	add(0xD0, "BNE", 2, 2, ModeRelative, branchFn(flagZ, false))
	add(0xF0, "BEQ", 2, 2, ModeRelative, branchFn(flagZ, true))

	// Flag ops
	add(0x18, "CLC", 1, 2, ModeImplied, flagClearFn(flagC))
	add(0x38, "SEC", 1, 2, ModeImplied, flagSetFn(flagC))
	add(0x58, "CLI", 1, 2, ModeImplied, flagClearFn(flagI))
	add(0x78, "SEI", 1, 2, ModeImplied, flagSetFn(flagI))
	add(0xD8, "CLD", 1, 2, ModeImplied, flagClearFn(flagD))
	add(0xF8, "SED", 1, 2, ModeImplied, flagSetFn(flagD))
	add(0xB8, "CLV", 1, 2, ModeImplied, flagClearFn(flagV))

	// Jumps/calls/returns
	add(0x4C, "JMP", 3, 3, ModeAbsolute, (*CPU).iJMP)
	add(0x6C, "JMP", 3, 5, ModeIndirect, (*CPU).iJMPIndirect)
	add(0x20, "JSR", 3, 6, ModeAbsolute, (*CPU).iJSR)
	add(0x60, "RTS", 1, 6, ModeImplied, (*CPU).iRTS)
	add(0x40, "RTI", 1, 6, ModeImplied, (*CPU).iRTI)

	// Stack
	add(0x48, "PHA", 1, 3, ModeImplied, (*CPU).iPHA)
	add(0x68, "PLA", 1, 4, ModeImplied, (*CPU).iPLA)
	add(0x08, "PHP", 1, 3, ModeImplied, (*CPU).iPHP)
	add(0x28, "PLP", 1, 4, ModeImplied, (*CPU).iPLP)

	// Misc
	add(0xEA, "NOP", 1, 2, ModeImplied, (*CPU).iNOP)
	add(0x00, "BRK", 1, 7, ModeImplied, (*CPU).iBRK)

	return t
}
