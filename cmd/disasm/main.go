// Command disasm loads a raw binary into a 64KiB image and disassembles
// it to stdout starting at a given PC.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oldbit-emu/go6502core/disassemble"
	"github.com/oldbit-emu/go6502core/memory"
)

var (
	startPC = flag.Int("start_pc", 0x8000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x8000, "offset into RAM to load the file at; everything else stays zero")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-start_pc <pc>] [-offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	r := memory.NewFlat()
	r.PowerOn()

	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("can't open %s: %v", fn, err)
	}
	max := 1<<16 - *offset
	if l := len(b); l > max {
		log.Printf("length %d at offset %d too long, truncating to 64k", l, *offset)
		b = b[:max]
	}
	for i, by := range b {
		r.Write(uint16(*offset+i), by)
	}

	pc := uint16(*startPC)
	fmt.Printf("0x%X bytes loaded at 0x%.4X, disassembling from 0x%.4X\n", len(b), *offset, pc)
	cnt := 0
	for cnt < len(b) {
		dis, n := disassemble.Step(pc, r)
		fmt.Println(dis)
		pc += uint16(n)
		cnt += n
	}
}
