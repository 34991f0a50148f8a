package asm

import (
	"context"
	"testing"

	"github.com/go-test/deep"

	"github.com/oldbit-emu/go6502core/cpu"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
		LDA #$05
		STA $10
		BRK
	`
	got, err := Assemble(src, 0x8000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []byte{0xA9, 0x05, 0x85, 0x10, 0x00}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Assemble diff: %v", diff)
	}
}

func TestAssembleRunsOnCPU(t *testing.T) {
	src := `
		LDA #$10
		STA $20
		LDA #$00
		LDA $20
		BRK
	`
	bin, err := Assemble(src, 0x8000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	c := cpu.New()
	if err := c.LoadAndRun(context.Background(), bin); err != nil {
		t.Fatalf("LoadAndRun: %v", err)
	}
	if got, want := c.Registers().A, uint8(0x10); got != want {
		t.Errorf("A = 0x%.2X, want 0x%.2X", got, want)
	}
}

func TestAssembleBranchToLabel(t *testing.T) {
	src := `
		LDA #$01
loop:
		BNE done
		LDA #$FF
done:
		BRK
	`
	got, err := Assemble(src, 0x8000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// LDA #$01 (2) + BNE rel (2) + LDA #$FF (2, skipped at runtime but
	// still assembled) + BRK (1) = 7 bytes; the displacement is relative
	// to the byte following the 2-byte BNE instruction, so it must skip
	// exactly the 2 bytes of the LDA #$FF to land on BRK: disp = 0x02.
	want := []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0xFF, 0x00}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Assemble diff: %v", diff)
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := Assemble("FROB #$01\n", 0x8000)
	if err == nil {
		t.Fatalf("expected an error for an unknown mnemonic, got nil")
	}
}
