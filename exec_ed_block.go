package z80core

// edBlock dispatches the sixteen ED block instructions: LDI/LDD/LDIR/LDDR,
// CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR, OUTI/OUTD/OTIR/OTDR. y selects
// I/D/IR/DR (4,5,6,7), z selects the LD/CP/IN/OUT family (0..3).
func (c *CPU) edBlock(mem Memory, ports Ports, y, z byte) uint8 {
	step := int16(1)
	if y == 5 || y == 7 {
		step = -1
	}
	repeat := y == 6 || y == 7

	switch z {
	case 0:
		c.ldiCore(mem, step)
		if repeat && c.BC() != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 1:
		found := c.cpiCore(mem, step)
		if repeat && c.BC() != 0 && !found {
			c.PC -= 2
			return 21
		}
		return 16
	case 2:
		c.iniIndCore(mem, ports, step)
		if repeat && c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	default:
		c.outiOutdCore(mem, ports, step)
		if repeat && c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	}
}

// ldiCore implements LDI/LDD's common body: copy (HL) to (DE), step both
// pointers by step, decrement BC, and set flags per spec's supplemented
// block-transfer rule (undocumented 3/5 come from A+transferred byte).
func (c *CPU) ldiCore(mem Memory, step int16) {
	v := mem.Read(c.HL())
	mem.Write(c.DE(), v)
	c.SetHL(c.HL() + uint16(step))
	c.SetDE(c.DE() + uint16(step))
	c.SetBC(c.BC() - 1)

	n := c.A + v
	c.F = (c.F & (FlagS | FlagZ | FlagC)) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if c.BC() != 0 {
		c.F |= FlagP
	}
}

// cpiCore implements CPI/CPD's common body: compare A against (HL), step
// HL by step, decrement BC. Returns whether A == (HL) (the repeat loop's
// early-exit condition).
func (c *CPU) cpiCore(mem Memory, step int16) bool {
	v := mem.Read(c.HL())
	diff := c.A - v
	lookup := ((c.A & 0x08) >> 3) | ((v & 0x08) >> 2) | ((diff & 0x08) >> 1)
	hc := halfcarrySubTable[lookup&0x07]
	c.SetHL(c.HL() + uint16(step))
	c.SetBC(c.BC() - 1)

	n := diff
	if hc != 0 {
		n--
	}
	c.F = (c.F & FlagC) | FlagN | hc | (diff & FlagS) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
	if diff == 0 {
		c.F |= FlagZ
	}
	if c.BC() != 0 {
		c.F |= FlagP
	}
	return diff == 0
}

// iniIndCore implements INI/IND's common body, per the documented
// algorithm for the undocumented H/C/P flags (derived from the port
// value plus the post-step C register).
func (c *CPU) iniIndCore(mem Memory, ports Ports, step int16) {
	v := ports.In(c.BC())
	mem.Write(c.HL(), v)
	c.B--
	c.SetHL(c.HL() + uint16(step))

	k := uint16(v) + uint16(c.C+uint8(step))
	c.F = sz53Table[c.B]
	if v&0x80 != 0 {
		c.F |= FlagN
	}
	if k > 0xFF {
		c.F |= FlagH | FlagC
	}
	c.F |= parityTable[uint8(k&0x07)^c.B]
}

// outiOutdCore implements OUTI/OUTD's common body.
func (c *CPU) outiOutdCore(mem Memory, ports Ports, step int16) {
	v := mem.Read(c.HL())
	c.B--
	ports.Out(c.BC(), v)
	c.SetHL(c.HL() + uint16(step))

	k := uint16(v) + uint16(c.L)
	c.F = sz53Table[c.B]
	if v&0x80 != 0 {
		c.F |= FlagN
	}
	if k > 0xFF {
		c.F |= FlagH | FlagC
	}
	c.F |= parityTable[uint8(k&0x07)^c.B]
}
