// Package asm implements a minimal two-pass assembler for the mnemonic
// dialect the core's opcode table documents. It exists to produce small
// test binaries without hand-encoding opcode bytes; it is not a general
// purpose 6502 assembler (no macros, no expressions, one label per line).
package asm

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/oldbit-emu/go6502core/cpu"
)

// reverse maps mnemonic -> addressing mode -> opcode byte, built once from
// the core's dispatch table so the assembler and interpreter can never
// disagree about an encoding.
var reverse = buildReverse()

func buildReverse() map[string]map[cpu.Mode]uint8 {
	m := make(map[string]map[cpu.Mode]uint8)
	for op := 0; op < 256; op++ {
		info, ok := cpu.Lookup(uint8(op))
		if !ok {
			continue
		}
		if m[info.Mnemonic] == nil {
			m[info.Mnemonic] = make(map[cpu.Mode]uint8)
		}
		m[info.Mnemonic][info.Mode] = uint8(op)
	}
	return m
}

// Error is returned for anything wrong with the source text: bad syntax,
// an undefined label, a mnemonic/mode pair the table doesn't have.
type Error struct {
	Line int
	Msg  string
}

func (e Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

type operand struct {
	mode  cpu.Mode
	text  string // raw operand text, label or numeral, resolved in pass 2
	value uint16 // resolved in pass 2
}

type statement struct {
	line    int
	label   string // non-empty if this line defines a label
	mnem    string // empty for a label-only line
	operand operand
}

// Assemble translates source into a flat byte sequence intended to be
// loaded starting at origin (needed to resolve branch targets and
// absolute label references). Labels are resolved in a first pass over
// statement lengths before any bytes are emitted.
func Assemble(source string, origin uint16) ([]byte, error) {
	statements, err := parse(source)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]uint16)
	pc := origin
	for _, st := range statements {
		if st.label != "" {
			labels[st.label] = pc
		}
		if st.mnem == "" {
			continue
		}
		n, err := encodedLen(st)
		if err != nil {
			return nil, err
		}
		pc += n
	}

	var out []byte
	pc = origin
	for _, st := range statements {
		if st.mnem == "" {
			continue
		}
		b, err := encode(st, pc, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		pc += uint16(len(b))
	}
	return out, nil
}

func parse(source string) ([]statement, error) {
	var out []statement
	sc := bufio.NewScanner(strings.NewReader(source))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		st := statement{line: lineNo}
		if strings.HasSuffix(line, ":") {
			st.label = strings.TrimSuffix(line, ":")
			out = append(out, st)
			continue
		}
		if idx := strings.Index(line, ":"); idx >= 0 && !strings.ContainsAny(line[:idx], " \t") {
			st.label = line[:idx]
			line = strings.TrimSpace(line[idx+1:])
			if line == "" {
				out = append(out, st)
				continue
			}
		}

		fields := strings.SplitN(line, " ", 2)
		st.mnem = strings.ToUpper(strings.TrimSpace(fields[0]))
		var opText string
		if len(fields) == 2 {
			opText = strings.TrimSpace(fields[1])
		}
		op, err := parseOperand(opText)
		if err != nil {
			return nil, Error{Line: lineNo, Msg: err.Error()}
		}
		st.operand = op
		out = append(out, st)
	}
	return out, sc.Err()
}

func parseOperand(text string) (operand, error) {
	if text == "" {
		return operand{mode: cpu.ModeImplied}, nil
	}
	if text == "A" {
		return operand{mode: cpu.ModeAccumulator}, nil
	}
	if strings.HasPrefix(text, "#") {
		return operand{mode: cpu.ModeImmediate, text: text[1:]}, nil
	}
	if strings.HasPrefix(text, "(") {
		if strings.HasSuffix(text, ",X)") {
			return operand{mode: cpu.ModeIndirectX, text: text[1 : len(text)-3]}, nil
		}
		if strings.HasSuffix(text, "),Y") {
			return operand{mode: cpu.ModeIndirectY, text: text[1 : len(text)-3]}, nil
		}
		if strings.HasSuffix(text, ")") {
			return operand{mode: cpu.ModeIndirect, text: text[1 : len(text)-1]}, nil
		}
		return operand{}, fmt.Errorf("malformed indirect operand %q", text)
	}
	if strings.HasSuffix(text, ",X") {
		return operand{mode: modeXIndexed, text: strings.TrimSuffix(text, ",X")}, nil
	}
	if strings.HasSuffix(text, ",Y") {
		return operand{mode: modeYIndexed, text: strings.TrimSuffix(text, ",Y")}, nil
	}
	return operand{mode: modeDirect, text: text}, nil
}

// modeXIndexed/modeYIndexed/modeDirect are placeholders resolved to a
// concrete zero-page-vs-absolute cpu.Mode only once the operand's numeric
// width is known, which requires the label table from pass one.
const (
	modeDirect cpu.Mode = 100 + iota
	modeXIndexed
	modeYIndexed
)

// isNumeral reports whether text is a literal value ($-prefixed hex or
// bare decimal) rather than a label reference.
func isNumeral(text string) bool {
	s := strings.TrimPrefix(text, "$")
	if s == "" {
		return false
	}
	hex := s != text
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case hex && r >= 'A' && r <= 'F':
		case hex && r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

func parseNumeral(text string) (value uint16, wide bool, err error) {
	s := strings.TrimPrefix(text, "$")
	base := 16
	if s == text {
		base = 10 // no $ prefix: decimal literal
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, false, fmt.Errorf("bad numeral %q", text)
	}
	return uint16(v), v > 0xFF, nil
}

// resolveValue is used for branch targets, where the width of the operand
// never affects the instruction's own length (it's always 2 bytes).
func resolveValue(text string, labels map[string]uint16) (uint16, error) {
	if isNumeral(text) {
		v, _, err := parseNumeral(text)
		return v, err
	}
	v, ok := labels[text]
	if !ok {
		return 0, fmt.Errorf("undefined label %q", text)
	}
	return v, nil
}

// concreteMode turns a direct/indexed operand's placeholder mode into the
// real zero-page-or-absolute cpu.Mode. Numeral operands get their true
// width; label operands are always treated as absolute, since this
// assembler never shrinks a forward reference once space has been
// reserved for it in pass one (see encodedLen).
func concreteMode(op operand, labels map[string]uint16) (cpu.Mode, uint16, error) {
	switch op.mode {
	case modeDirect, modeXIndexed, modeYIndexed:
		var v uint16
		wide := true
		if isNumeral(op.text) {
			val, w, err := parseNumeral(op.text)
			if err != nil {
				return 0, 0, err
			}
			v, wide = val, w
		} else {
			lv, ok := labels[op.text]
			if !ok {
				return 0, 0, fmt.Errorf("undefined label %q", op.text)
			}
			v = lv
		}
		switch op.mode {
		case modeDirect:
			if wide {
				return cpu.ModeAbsolute, v, nil
			}
			return cpu.ModeZeroPage, v, nil
		case modeXIndexed:
			if wide {
				return cpu.ModeAbsoluteX, v, nil
			}
			return cpu.ModeZeroPageX, v, nil
		default:
			if wide {
				return cpu.ModeAbsoluteY, v, nil
			}
			return cpu.ModeZeroPageY, v, nil
		}
	case cpu.ModeImmediate, cpu.ModeIndirectX, cpu.ModeIndirectY, cpu.ModeIndirect:
		if isNumeral(op.text) {
			v, _, err := parseNumeral(op.text)
			return op.mode, v, err
		}
		lv, ok := labels[op.text]
		if !ok {
			return 0, 0, fmt.Errorf("undefined label %q", op.text)
		}
		return op.mode, lv, nil
	default:
		return op.mode, 0, nil
	}
}

// concreteModeForLen mirrors concreteMode for pass one, before the label
// table is fully populated: numerals resolve to their true width exactly
// as they will in pass two; any label reference is assumed absolute,
// which is what concreteMode also does, so the two passes never disagree
// about how many bytes an instruction occupies.
func concreteModeForLen(op operand) cpu.Mode {
	switch op.mode {
	case modeDirect, modeXIndexed, modeYIndexed:
		wide := true
		if isNumeral(op.text) {
			_, w, err := parseNumeral(op.text)
			if err == nil {
				wide = w
			}
		}
		switch op.mode {
		case modeDirect:
			if wide {
				return cpu.ModeAbsolute
			}
			return cpu.ModeZeroPage
		case modeXIndexed:
			if wide {
				return cpu.ModeAbsoluteX
			}
			return cpu.ModeZeroPageX
		default:
			if wide {
				return cpu.ModeAbsoluteY
			}
			return cpu.ModeZeroPageY
		}
	default:
		return op.mode
	}
}

func encodedLen(st statement) (uint16, error) {
	modes, ok := reverse[st.mnem]
	if !ok {
		return 0, Error{Line: st.line, Msg: fmt.Sprintf("unknown mnemonic %q", st.mnem)}
	}
	if opByte, ok := modes[cpu.ModeRelative]; ok {
		info, _ := cpu.Lookup(opByte)
		return uint16(info.Len), nil
	}
	mode := concreteModeForLen(st.operand)
	opByte, ok := modes[mode]
	if !ok {
		return 0, Error{Line: st.line, Msg: fmt.Sprintf("%s has no encoding for this operand", st.mnem)}
	}
	info, _ := cpu.Lookup(opByte)
	return uint16(info.Len), nil
}

func encode(st statement, pc uint16, labels map[string]uint16) ([]byte, error) {
	modes, ok := reverse[st.mnem]
	if !ok {
		return nil, Error{Line: st.line, Msg: fmt.Sprintf("unknown mnemonic %q", st.mnem)}
	}

	if opByte, ok := modes[cpu.ModeRelative]; ok {
		target, err := resolveValue(st.operand.text, labels)
		if err != nil {
			return nil, Error{Line: st.line, Msg: err.Error()}
		}
		disp := int32(target) - int32(pc) - 2
		if disp < -128 || disp > 127 {
			return nil, Error{Line: st.line, Msg: fmt.Sprintf("branch target %q out of range", st.operand.text)}
		}
		return []byte{opByte, byte(int8(disp))}, nil
	}

	mode, value, err := concreteMode(st.operand, labels)
	if err != nil {
		return nil, Error{Line: st.line, Msg: err.Error()}
	}
	opByte, ok := modes[mode]
	if !ok {
		return nil, Error{Line: st.line, Msg: fmt.Sprintf("%s has no encoding for this addressing mode", st.mnem)}
	}
	info, _ := cpu.Lookup(opByte)
	switch info.Len {
	case 1:
		return []byte{opByte}, nil
	case 2:
		return []byte{opByte, byte(value)}, nil
	case 3:
		return []byte{opByte, byte(value & 0xFF), byte(value >> 8)}, nil
	default:
		return nil, Error{Line: st.line, Msg: "unexpected instruction length"}
	}
}
