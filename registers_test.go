package z80core

import "testing"

func TestPairOverlayCoherence(t *testing.T) {
	r := &Registers{}
	r.SetBC(0x1234)
	if r.B != 0x12 || r.C != 0x34 {
		t.Fatalf("SetBC(1234): B=%02X C=%02X", r.B, r.C)
	}
	if r.BC() != 0x1234 {
		t.Fatalf("BC() = %04X, want 1234", r.BC())
	}
	r.D, r.E = 0xAB, 0xCD
	if r.DE() != 0xABCD {
		t.Fatalf("DE() = %04X, want ABCD", r.DE())
	}
	r.SetHL(0xBEEF)
	if r.H != 0xBE || r.L != 0xEF {
		t.Fatalf("SetHL(BEEF): H=%02X L=%02X", r.H, r.L)
	}
	r.SetAF(0x00FF)
	if r.A != 0x00 || r.F != 0xFF {
		t.Fatalf("SetAF(00FF): A=%02X F=%02X", r.A, r.F)
	}
}

func TestExchangeInvolutions(t *testing.T) {
	r := &Registers{}
	r.SetAF(0x1122)
	r.A_, r.F_ = 0x33, 0x44
	r.ExAF()
	if r.AF() != 0x3344 {
		t.Fatalf("after ExAF: AF = %04X, want 3344", r.AF())
	}
	r.ExAF()
	if r.AF() != 0x1122 {
		t.Fatalf("ExAF should be its own inverse, got AF = %04X", r.AF())
	}

	r.SetDE(0xAAAA)
	r.SetHL(0xBBBB)
	r.ExDEHL()
	if r.DE() != 0xBBBB || r.HL() != 0xAAAA {
		t.Fatalf("after ExDEHL: DE=%04X HL=%04X", r.DE(), r.HL())
	}
	r.ExDEHL()
	if r.DE() != 0xAAAA || r.HL() != 0xBBBB {
		t.Fatalf("ExDEHL should be its own inverse")
	}

	r.SetBC(1)
	r.SetDE(2)
	r.SetHL(3)
	r.Exx()
	before := [3]uint16{r.BC(), r.DE(), r.HL()}
	r.Exx()
	if r.BC() != 1 || r.DE() != 2 || r.HL() != 3 {
		t.Fatalf("Exx should be its own inverse, got BC=%04X DE=%04X HL=%04X (mid-swap was %v)",
			r.BC(), r.DE(), r.HL(), before)
	}
}

func TestIncRPreservesBit7(t *testing.T) {
	r := &Registers{R: 0x80}
	r.incR()
	if r.R != 0x81 {
		t.Fatalf("incR from 80 = %02X, want 81", r.R)
	}
	r.R = 0xFF
	r.incR()
	if r.R != 0x80 {
		t.Fatalf("incR from FF (low 7 bits wrap) = %02X, want 80", r.R)
	}
}
