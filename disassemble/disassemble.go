// Package disassemble formats the instruction at a given PC as text,
// driven by the same dispatch table the core interpreter uses.
package disassemble

import (
	"fmt"

	"github.com/oldbit-emu/go6502core/cpu"
	"github.com/oldbit-emu/go6502core/memory"
)

// Step disassembles the instruction at pc and returns its text along with
// the byte count the caller should advance pc by to reach the next one.
// Like the teacher's version, this always reads one or two bytes past pc
// regardless of whether the opcode actually uses them, so pc+2 must be a
// valid address.
func Step(pc uint16, r memory.Ram) (string, int) {
	op := r.Read(pc)
	b1 := r.Read(pc + 1)
	b2 := r.Read(pc + 2)
	rel16 := uint16(int16(int8(b1)))

	info, ok := cpu.Lookup(op)
	if !ok {
		return fmt.Sprintf("%.4X %.2X          UNIMPLEMENTED      ", pc, op), 1
	}

	count := int(info.Len)
	out := fmt.Sprintf("%.4X %.2X ", pc, op)
	switch info.Mode {
	case cpu.ModeImmediate:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPage:
		out += fmt.Sprintf("%.2X      %s %.2X        ", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPageX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPageY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", b1, info.Mnemonic, b1)
	case cpu.ModeIndirectX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", b1, info.Mnemonic, b1)
	case cpu.ModeIndirectY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", b1, info.Mnemonic, b1)
	case cpu.ModeAbsolute:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", b1, b2, info.Mnemonic, b2, b1)
	case cpu.ModeAbsoluteX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", b1, b2, info.Mnemonic, b2, b1)
	case cpu.ModeAbsoluteY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", b1, b2, info.Mnemonic, b2, b1)
	case cpu.ModeIndirect:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", b1, b2, info.Mnemonic, b2, b1)
	case cpu.ModeAccumulator:
		out += fmt.Sprintf("        %s A         ", info.Mnemonic)
	case cpu.ModeImplied:
		out += fmt.Sprintf("        %s           ", info.Mnemonic)
	case cpu.ModeRelative:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", b1, info.Mnemonic, b1, pc+rel16+2)
	default:
		panic(fmt.Sprintf("disassemble: opcode 0x%.2X has unhandled mode %d", op, info.Mode))
	}
	return out, count
}
