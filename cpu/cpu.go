// Package cpu implements the programmer-visible core of a MOS 6502: the
// register file, the addressing-mode resolver, the flag-update rules, and
// the fetch-decode-execute loop for the documented instruction set. It
// intentionally has no notion of a display, audio, input, cartridge
// mapper, memory-mapped I/O, IRQ/NMI lines, DMA, or cycle-accurate bus
// timing — those are concerns of a host system built on top of this core,
// not of the core itself.
package cpu

import (
	"context"
	"fmt"

	"github.com/oldbit-emu/go6502core/memory"
)

const (
	resetVector = uint16(0xFFFC)
	stackBase   = uint16(0x0100)
	loadBase    = uint16(0x8000)

	initialSP = uint8(0xFD)
)

// InvalidCPUState represents an internal precondition failure in the
// emulator itself (an instruction handler resolving an addressing mode
// that has no effective address). It is never raised by a guest program's
// behavior; an opcode byte with no table entry is reported as
// UnimplementedOpcode instead.
type InvalidCPUState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// UnimplementedOpcode is returned when Step fetches a byte with no entry
// in the opcode table. The documented 6502 instruction set is covered in
// full; this only fires for the illegal/undocumented opcode space, which
// this core does not emulate.
type UnimplementedOpcode struct {
	Opcode uint8
}

// Error implements the error interface.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("unimplemented opcode: 0x%.2X", e.Opcode)
}

// ErrBreak is returned by Step/Run when a BRK instruction executes. It is
// the core's only defined way to stop normally; callers that just want
// "run the program to completion" should treat it as success rather than
// a fault (LoadAndRun already does this).
var ErrBreak = errBreak{}

type errBreak struct{}

func (errBreak) Error() string { return "BRK executed" }

// CPU is a single MOS 6502 instance: register file plus a reference to its
// memory image. Zero value is not useful; construct with New.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	P  uint8
	PC uint16

	ram memory.Ram
}

// Registers is an immutable snapshot of CPU state, returned by
// Registers() so tests, the disassembler, and the visualizer can inspect
// the CPU without holding a reference that could be mutated out from
// under them mid-instruction.
type Registers struct {
	A, X, Y, SP, P uint8
	PC             uint16
}

// New returns a freshly constructed CPU with a zeroed 64KiB memory image,
// equivalent to power-on before any program has been loaded.
func New() *CPU {
	c := &CPU{ram: memory.NewFlat()}
	c.ram.PowerOn()
	return c
}

// NewWithRam returns a CPU bound to a caller-supplied memory image
// instead of a fresh Flat one, for callers that want to pre-seed memory or
// install a tracing/fault-injecting Ram implementation. It does not call
// PowerOn on r.
func NewWithRam(r memory.Ram) *CPU {
	return &CPU{ram: r}
}

// Registers returns a snapshot of the current register file.
func (c *CPU) Registers() Registers {
	return Registers{A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, PC: c.PC}
}

// Ram exposes the CPU's underlying memory image, for callers (such as the
// disassembler) that need a memory.Ram rather than the
// single-byte Read/Write accessors below.
func (c *CPU) Ram() memory.Ram { return c.ram }

// Read reads a single byte from the CPU's memory image.
func (c *CPU) Read(addr uint16) uint8 { return c.ram.Read(addr) }

// Write writes a single byte to the CPU's memory image.
func (c *CPU) Write(addr uint16, val uint8) { c.ram.Write(addr, val) }

// Read16 reads a little-endian 16 bit value from the CPU's memory image.
func (c *CPU) Read16(addr uint16) uint16 { return c.read16(addr) }

// Write16 writes a little-endian 16 bit value to the CPU's memory image.
func (c *CPU) Write16(addr uint16, val uint16) { memory.Write16(c.ram, addr, val) }

func (c *CPU) read16(addr uint16) uint16 { return memory.Read16(c.ram, addr) }

// Load copies program into memory starting at $8000 and points the reset
// vector at $FFFC/$FFFD to $8000, per the loader contract in the spec.
// Reset must be called afterward to actually start execution there.
func (c *CPU) Load(program []byte) {
	addr := loadBase
	for _, b := range program {
		c.ram.Write(addr, b)
		addr++
	}
	memory.Write16(c.ram, resetVector, loadBase)
}

// Reset puts the CPU in the documented post-reset state: A, X, Y cleared,
// SP set to $FD, P cleared, and PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = initialSP
	c.P = 0
	c.PC = c.read16(resetVector)
}

// Step executes exactly one instruction: fetch the opcode, look up its
// table entry (UnimplementedOpcode if missing), dispatch to its handler,
// then advance PC by len-1 unless the handler already moved PC itself
// (JMP/JSR/RTS/RTI, a taken branch). Returns ErrBreak when the instruction
// was BRK.
func (c *CPU) Step() error {
	op := c.ram.Read(c.PC)
	c.PC++
	saved := c.PC

	entry := opcodes[op]
	if entry == nil {
		return UnimplementedOpcode{Opcode: op}
	}

	if err := entry.fn(c, entry.mode); err != nil {
		return err
	}

	if c.PC == saved {
		c.PC += entry.len - 1
	}
	return nil
}

// Run executes instructions until BRK (reported as ErrBreak), a fatal
// error, or ctx cancellation. Cancellation is only ever observed between
// instructions, never in the middle of one, since a single Step call is
// not a suspension point.
func (c *CPU) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// LoadAndRun composes Load, Reset, and Run, treating ErrBreak as success
// the way a host program normally wants to: "ran to a clean halt."
func (c *CPU) LoadAndRun(ctx context.Context, program []byte) error {
	c.Load(program)
	c.Reset()
	if err := c.Run(ctx); err != nil && err != ErrBreak {
		return err
	}
	return nil
}

func (c *CPU) pushStack(v uint8) {
	c.ram.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) popStack() uint8 {
	c.SP++
	return c.ram.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushStack16(v uint16) {
	c.pushStack(uint8(v >> 8))
	c.pushStack(uint8(v & 0xFF))
}

func (c *CPU) popStack16() uint16 {
	lo := uint16(c.popStack())
	hi := uint16(c.popStack())
	return lo | hi<<8
}
