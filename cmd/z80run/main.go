// Command z80run is a minimal reference host for the z80core library: it
// loads a raw binary at an origin address, steps the CPU until HALT or a
// step budget is exhausted, and prints the resulting register snapshot.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/oisee/z80core"
	"github.com/spf13/cobra"
)

// flatMemory is the full 64KiB address space, with no bank switching or
// contention modeling — the simplest Memory a host can provide.
type flatMemory struct {
	bytes [65536]byte
}

func (m *flatMemory) Read(addr uint16) uint8     { return m.bytes[addr] }
func (m *flatMemory) Write(addr uint16, v uint8) { m.bytes[addr] = v }

// nullPorts discards OUT and returns 0xFF for IN, the idle-bus value on
// real hardware when nothing answers the I/O request.
type nullPorts struct{}

func (nullPorts) In(uint16) uint8   { return 0xFF }
func (nullPorts) Out(uint16, uint8) {}

func main() {
	var origin uint16
	var maxSteps int
	var trace bool
	var loadPath string

	root := &cobra.Command{
		Use:   "z80run",
		Short: "Run a raw Z80 binary against the z80core emulator core",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(loadPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", loadPath, err)
			}

			mem := &flatMemory{}
			copy(mem.bytes[origin:], data)

			cpu := z80core.New()
			cpu.PC = origin
			ports := nullPorts{}

			steps := 0
			for steps < maxSteps && !cpu.Halted {
				if trace {
					text, _ := z80core.Disassemble(mem, cpu.PC)
					fmt.Printf("%04X  %-20s", cpu.PC, text)
				}
				t := cpu.Step(mem, ports)
				if trace {
					fmt.Printf(" ; %d T\n", t)
				}
				steps++
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cpu.State())
		},
	}

	root.Flags().Var(hexVar{&origin}, "origin", "load/start address in hex (e.g. 8000)")
	root.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "maximum instructions to execute before giving up")
	root.Flags().BoolVar(&trace, "trace", false, "print a disassembly trace as instructions execute")
	root.Flags().StringVar(&loadPath, "load", "", "path to a raw binary to load")
	root.MarkFlagRequired("load")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// hexVar adapts a uint16 to pflag's Value interface so --origin accepts
// bare hex like "8000" instead of requiring a "0x" prefix.
type hexVar struct{ v *uint16 }

func (h hexVar) String() string {
	if h.v == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*h.v), 16)
}

func (h hexVar) Set(s string) error {
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return err
	}
	*h.v = uint16(n)
	return nil
}

func (h hexVar) Type() string { return "hex16" }
