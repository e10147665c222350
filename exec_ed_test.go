package z80core

import "testing"

func TestEDNeg(t *testing.T) {
	mem := &ramMemory{}
	mem.loadAt(0, 0xED, 0x44) // NEG
	c := newCPUAt(0)
	c.A = 0x01
	ports := &stubPorts{}
	if tstates := c.Step(mem, ports); tstates != 8 {
		t.Fatalf("NEG took %d, want 8", tstates)
	}
	if c.A != 0xFF {
		t.Fatalf("NEG 1 = %02X, want FF", c.A)
	}
	if !c.Flag(FlagC) {
		t.Error("NEG of a nonzero value should set carry")
	}
	if !c.Flag(FlagN) {
		t.Error("NEG should set the subtract flag")
	}
}

func TestEDLdAIReflectsIFF2(t *testing.T) {
	mem := &ramMemory{}
	mem.loadAt(0, 0xED, 0x57) // LD A,I
	c := newCPUAt(0)
	c.I = 0x80
	c.IFF2 = true
	ports := &stubPorts{}
	c.Step(mem, ports)
	if c.A != 0x80 {
		t.Fatalf("A = %02X, want 80", c.A)
	}
	if !c.Flag(FlagP) {
		t.Error("LD A,I should copy IFF2 into P/V")
	}
	if c.Flag(FlagH) || c.Flag(FlagN) {
		t.Error("LD A,I should clear H and N")
	}
}

func TestEDBlockLDIR(t *testing.T) {
	mem := &ramMemory{}
	mem.loadAt(0, 0xED, 0xB0) // LDIR
	mem.loadAt(0x2000, 0x01, 0x02, 0x03)
	c := newCPUAt(0)
	c.SetHL(0x2000)
	c.SetDE(0x3000)
	c.SetBC(3)
	ports := &stubPorts{}

	total := uint8(0)
	for !(c.PC == 2) {
		total += c.Step(mem, ports)
	}
	if mem.bytes[0x3000] != 1 || mem.bytes[0x3001] != 2 || mem.bytes[0x3002] != 3 {
		t.Fatalf("LDIR did not copy correctly: %v", mem.bytes[0x3000:0x3003])
	}
	if c.BC() != 0 {
		t.Fatalf("BC after LDIR = %d, want 0", c.BC())
	}
	if c.HL() != 0x2003 || c.DE() != 0x3003 {
		t.Fatalf("HL/DE after LDIR = %04X/%04X, want 2003/3003", c.HL(), c.DE())
	}
	// two repeats at 21 T-states, one final at 16
	if total != 21+21+16 {
		t.Fatalf("LDIR total T-states = %d, want 58", total)
	}
}

func TestEDBlockCPIRStopsOnMatch(t *testing.T) {
	mem := &ramMemory{}
	mem.loadAt(0, 0xED, 0xB1) // CPIR
	mem.loadAt(0x2000, 0x10, 0x20, 0x30)
	c := newCPUAt(0)
	c.SetHL(0x2000)
	c.SetBC(3)
	c.A = 0x20
	ports := &stubPorts{}
	c.Step(mem, ports) // compares 0x10, no match, repeats
	if c.PC != 0 {
		t.Fatalf("PC after first non-matching CPIR iteration = %04X, want 0 (repeat)", c.PC)
	}
	c.Step(mem, ports) // compares 0x20, matches, stops
	if c.PC != 2 {
		t.Fatalf("PC after matching CPIR iteration = %04X, want 2 (stop)", c.PC)
	}
	if !c.Flag(FlagZ) {
		t.Error("CPIR should set Z on a match")
	}
	if c.HL() != 0x2002 {
		t.Fatalf("HL after CPIR match = %04X, want 2002", c.HL())
	}
}

func TestEDInOut(t *testing.T) {
	mem := &ramMemory{}
	mem.loadAt(0, 0xED, 0x40, 0xED, 0x41) // IN B,(C) ; OUT (C),B
	c := newCPUAt(0)
	c.SetBC(0x1234)
	ports := &stubPorts{inValue: 0x55}
	c.Step(mem, ports)
	if c.B != 0x55 {
		t.Fatalf("IN B,(C) = %02X, want 55", c.B)
	}
	if ports.lastIn != 0x1234 {
		t.Fatalf("IN read port %04X, want 1234", ports.lastIn)
	}
	// IN B,(C) has just loaded B with 0x55, so OUT (C),B addresses port
	// (B<<8)|C = 0x5534.
	c.Step(mem, ports)
	if ports.lastOutVal != 0x55 || ports.lastOut != 0x5534 {
		t.Fatalf("OUT (C),B wrote %02X to port %04X, want 55 to 5534", ports.lastOutVal, ports.lastOut)
	}
}
