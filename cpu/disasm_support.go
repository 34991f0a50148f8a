package cpu

// OpcodeInfo is the read-only view of a dispatch table entry exposed to
// other packages (disassemble, the visualizer) that need to know how an
// opcode byte is encoded without reaching into the table itself.
type OpcodeInfo struct {
	Mnemonic string
	Len      uint16
	Cycles   int
	Mode     Mode
}

// Lookup returns the OpcodeInfo for op, or ok=false if the byte has no
// documented instruction.
func Lookup(op uint8) (info OpcodeInfo, ok bool) {
	entry := opcodes[op]
	if entry == nil {
		return OpcodeInfo{}, false
	}
	return OpcodeInfo{Mnemonic: entry.mnemonic, Len: entry.len, Cycles: entry.cycles, Mode: entry.mode}, true
}
