// Command hand_asm assembles a small mnemonic source file into a raw
// binary suitable for cpu.Load, using the asm package.
package main

import (
	"log"
	"os"

	"github.com/oldbit-emu/go6502core/asm"

	"flag"
)

var origin = flag.Int("origin", 0x8000, "address the assembled bytes are meant to be loaded at; used to resolve branch and label references")

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("usage: %s [-origin <addr>] <input.asm> <output.bin>", os.Args[0])
	}
	in, out := flag.Args()[0], flag.Args()[1]

	src, err := os.ReadFile(in)
	if err != nil {
		log.Fatalf("can't read %q: %v", in, err)
	}
	bin, err := asm.Assemble(string(src), uint16(*origin))
	if err != nil {
		log.Fatalf("assemble %q: %v", in, err)
	}
	if err := os.WriteFile(out, bin, 0o644); err != nil {
		log.Fatalf("can't write %q: %v", out, err)
	}
}
