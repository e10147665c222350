package z80core

import "testing"

func TestAluAdd(t *testing.T) {
	tests := []struct {
		a, val          uint8
		wantA           uint8
		wantC, wantH, wantV, wantZ, wantS bool
	}{
		{0x00, 0x00, 0x00, false, false, false, true, false},
		{0x0F, 0x01, 0x10, false, true, false, false, false},
		{0xFF, 0x01, 0x00, true, true, false, true, false},
		{0x7F, 0x01, 0x80, false, true, true, false, true},
		{0x80, 0x80, 0x00, true, false, true, true, false},
	}
	for i, tc := range tests {
		c := New()
		c.A = tc.a
		c.aluAdd(tc.val)
		if c.A != tc.wantA {
			t.Errorf("case %d: A = %02X, want %02X", i, c.A, tc.wantA)
		}
		if c.Flag(FlagC) != tc.wantC {
			t.Errorf("case %d: C flag = %v, want %v", i, c.Flag(FlagC), tc.wantC)
		}
		if c.Flag(FlagH) != tc.wantH {
			t.Errorf("case %d: H flag = %v, want %v", i, c.Flag(FlagH), tc.wantH)
		}
		if c.Flag(FlagV) != tc.wantV {
			t.Errorf("case %d: V flag = %v, want %v", i, c.Flag(FlagV), tc.wantV)
		}
		if c.Flag(FlagZ) != tc.wantZ {
			t.Errorf("case %d: Z flag = %v, want %v", i, c.Flag(FlagZ), tc.wantZ)
		}
		if c.Flag(FlagS) != tc.wantS {
			t.Errorf("case %d: S flag = %v, want %v", i, c.Flag(FlagS), tc.wantS)
		}
		if c.Flag(FlagN) {
			t.Errorf("case %d: N flag should be clear after ADD", i)
		}
	}
}

func TestAluSub(t *testing.T) {
	tests := []struct {
		a, val  uint8
		wantA   uint8
		wantC   bool
		wantZ   bool
	}{
		{0x05, 0x05, 0x00, false, true},
		{0x00, 0x01, 0xFF, true, false},
		{0x10, 0x01, 0x0F, false, false},
	}
	for i, tc := range tests {
		c := New()
		c.A = tc.a
		c.aluSub(tc.val)
		if c.A != tc.wantA {
			t.Errorf("case %d: A = %02X, want %02X", i, c.A, tc.wantA)
		}
		if c.Flag(FlagC) != tc.wantC {
			t.Errorf("case %d: C flag = %v, want %v", i, c.Flag(FlagC), tc.wantC)
		}
		if c.Flag(FlagZ) != tc.wantZ {
			t.Errorf("case %d: Z flag = %v, want %v", i, c.Flag(FlagZ), tc.wantZ)
		}
		if !c.Flag(FlagN) {
			t.Errorf("case %d: N flag should be set after SUB", i)
		}
	}
}

func TestAluIncDecBoundaries(t *testing.T) {
	c := New()
	if v := c.aluInc(0x7F); v != 0x80 {
		t.Fatalf("INC 0x7F = %02X, want 80", v)
	}
	if !c.Flag(FlagV) {
		t.Error("INC 0x7F should set overflow (signed wrap)")
	}
	c2 := New()
	if v := c2.aluDec(0x80); v != 0x7F {
		t.Fatalf("DEC 0x80 = %02X, want 7F", v)
	}
	if !c2.Flag(FlagV) {
		t.Error("DEC 0x80 should set overflow (signed wrap)")
	}

	c3 := New()
	c3.F = FlagC // INC must never touch C
	c3.aluInc(0xFF)
	if !c3.Flag(FlagC) {
		t.Error("INC must not clear a pre-set carry flag")
	}
}

func TestDaaAfterAdd(t *testing.T) {
	// 0x15 + 0x27 in BCD = 0x42; binary ADD gives 0x3C, DAA corrects it.
	c := New()
	c.A = 0x15
	c.aluAdd(0x27)
	c.daa()
	if c.A != 0x42 {
		t.Fatalf("DAA after 0x15+0x27 = %02X, want 42", c.A)
	}
}

func TestShiftRrCarryBitOnly(t *testing.T) {
	c := New()
	c.F = FlagC | FlagN | FlagS // N/S must not leak into bit 7
	v := c.shiftRr(0x02)
	if v != 0x81 {
		t.Fatalf("RR 0x02 with carry in = %02X, want 81", v)
	}
	if c.Flag(FlagC) {
		t.Error("RR 0x02 should clear carry out (bit 0 was 0)")
	}
}

func TestAdd16HalfCarryAndCarry(t *testing.T) {
	c := New()
	r := c.add16(0x0FFF, 0x0001)
	if r != 0x1000 {
		t.Fatalf("ADD HL,1 from 0FFF = %04X, want 1000", r)
	}
	if !c.Flag(FlagH) {
		t.Error("expected half-carry out of bit 11")
	}
	c2 := New()
	r2 := c2.add16(0xFFFF, 0x0001)
	if r2 != 0x0000 {
		t.Fatalf("ADD HL,1 from FFFF = %04X, want 0000", r2)
	}
	if !c2.Flag(FlagC) {
		t.Error("expected carry out of bit 15")
	}
}

func TestBitTestUndocFlags(t *testing.T) {
	c := New()
	c.bitTest(0x00, 0, 0xFF) // bit clear, undoc source all-ones
	if !c.Flag(FlagZ) || !c.Flag(FlagP) {
		t.Error("BIT of a clear bit should set Z and P")
	}
	if c.F&(Flag3|Flag5) != Flag3|Flag5 {
		t.Error("BIT should copy undoc bits 3/5 from the supplied source byte")
	}
}
