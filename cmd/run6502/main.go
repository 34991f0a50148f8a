// Command run6502 loads a raw binary at $8000, resets the CPU, and runs
// it to completion (a BRK), optionally tracing each instruction or
// showing a live register/zero-page debug window.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/oldbit-emu/go6502core/cpu"
	"github.com/oldbit-emu/go6502core/disassemble"
	"github.com/oldbit-emu/go6502core/visualizer"
)

var (
	prog      = flag.String("prog", "", "path to the raw binary to load at $8000")
	trace     = flag.Bool("trace", false, "print a disassembly line for every instruction executed")
	dump      = flag.Bool("dump", false, "print the final register state when the program halts on BRK")
	visualize = flag.Bool("visualize", false, "open an SDL debug window showing registers and the zero page")
	pprofAddr = flag.String("pprof_addr", "", "if set, serve net/http/pprof on this address (e.g. localhost:6060)")
)

func main() {
	flag.Parse()
	if *prog == "" {
		log.Fatalf("usage: %s -prog <file> [-trace] [-dump] [-visualize] [-pprof_addr host:port]", os.Args[0])
	}

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	rom, err := os.ReadFile(*prog)
	if err != nil {
		log.Fatalf("can't read %q: %v", *prog, err)
	}

	c := cpu.New()
	c.Load(rom)
	c.Reset()

	var win *visualizer.Window
	if *visualize {
		win, err = visualizer.Open()
		if err != nil {
			log.Fatalf("visualizer: %v", err)
		}
		defer win.Close()
	}

	for {
		if *trace {
			dis, _ := disassemble.Step(c.Registers().PC, c.Ram())
			fmt.Println(dis)
		}
		err := c.Step()
		if win != nil {
			var zp [256]byte
			for i := range zp {
				zp[i] = c.Read(uint16(i))
			}
			win.Draw(c.Registers(), zp)
		}
		if err != nil {
			if err == cpu.ErrBreak {
				fmt.Println("BRK, halted")
				if *dump {
					spew.Dump(c.Registers())
				}
				return
			}
			log.Fatalf("step error: %v", err)
		}
	}
}
