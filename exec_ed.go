package z80core

// execED dispatches an ED-prefixed sub-opcode. The ED page never
// consults the index override (Step already forces idx back to idxHL
// before calling here), so every (HL) reference below is the genuine
// HL pair.
//
// Sub-opcodes outside the documented ranges are NOPs costing 8 T-states,
// matching real silicon's behavior for the unused ED slots (spec §4.3/§7).
func (c *CPU) execED(mem Memory, ports Ports, sub uint8) uint8 {
	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7
	p := y >> 1
	q := y & 1

	switch {
	case x == 1 && z == 0: // IN r[y],(C) / IN (C) (y==6, flags only)
		return c.edIn(ports, y)
	case x == 1 && z == 1: // OUT (C),r[y] / OUT (C),0 (y==6)
		return c.edOut(ports, y)
	case x == 1 && z == 2: // ADC/SBC HL,rp[p]
		return c.edAdcSbcHL(p, q)
	case x == 1 && z == 3: // LD (nn),rp[p] / LD rp[p],(nn)
		return c.edLdNNRP(mem, p, q)
	case x == 1 && z == 4: // NEG (all y alias the same opcode)
		return c.edNeg()
	case x == 1 && z == 5: // RETN / RETI (all y alias RETN except y==1: RETI)
		return c.edRetnReti(mem)
	case x == 1 && z == 6: // IM 0/1/2
		return c.edIM(y)
	case x == 1 && z == 7:
		return c.edMisc(mem, y)
	case x == 2 && z <= 3 && y >= 4: // block group
		return c.edBlock(mem, ports, y, z)
	default:
		return 8
	}
}

func (c *CPU) edIn(ports Ports, y byte) uint8 {
	v := ports.In(c.BC())
	if y != regM {
		c.setTrueReg8(y, v)
	}
	c.F = (c.F & FlagC) | sz53pTable[v]
	return 12
}

func (c *CPU) edOut(ports Ports, y byte) uint8 {
	var v uint8
	if y != regM {
		v = c.getTrueReg8(y)
	}
	ports.Out(c.BC(), v)
	return 12
}

func (c *CPU) edAdcSbcHL(p, q byte) uint8 {
	hl := c.HL()
	rp := c.getRP(p)
	if q == 0 {
		c.SetHL(c.sbc16(hl, rp))
	} else {
		c.SetHL(c.adc16(hl, rp))
	}
	return 15
}

func (c *CPU) edLdNNRP(mem Memory, p, q byte) uint8 {
	nn := c.fetchWord(mem)
	if q == 0 {
		writeWord(mem, nn, c.getRP(p))
	} else {
		c.setRP(p, readWord(mem, nn))
	}
	return 20
}

// edNeg implements NEG: A = 0 - A, with full subtract-flag semantics.
func (c *CPU) edNeg() uint8 {
	v := c.A
	c.A = 0
	c.aluSub(v)
	return 8
}

func (c *CPU) edRetnReti(mem Memory) uint8 {
	c.IFF1 = c.IFF2
	c.PC = c.pop(mem)
	return 14
}

func (c *CPU) edIM(y byte) uint8 {
	switch y {
	case 0, 1, 4, 5:
		c.IM = 0
	case 2, 6:
		c.IM = 1
	default:
		c.IM = 2
	}
	return 8
}

func (c *CPU) edMisc(mem Memory, y byte) uint8 {
	switch y {
	case 0: // LD I,A
		c.I = c.A
		return 9
	case 1: // LD R,A
		c.R = c.A
		return 9
	case 2: // LD A,I
		c.A = c.I
		c.ldAIRFlags(c.A)
		return 9
	case 3: // LD A,R
		c.A = c.R
		c.ldAIRFlags(c.A)
		return 9
	case 4: // RRD
		return c.edRrd(mem)
	case 5: // RLD
		return c.edRld(mem)
	default: // ED 77 / ED 7F: unused slots, NOP
		return 8
	}
}

// ldAIRFlags sets S/Z/5/3 from v, P/V from IFF2, clears H and N — the
// one place those flags observe an interrupt latch directly (spec §4.4).
func (c *CPU) ldAIRFlags(v uint8) {
	c.F = (c.F & FlagC) | sz53Table[v]
	if c.IFF2 {
		c.F |= FlagP
	}
}

func (c *CPU) edRrd(mem Memory) uint8 {
	hl := c.HL()
	lo := mem.Read(hl)
	result := (c.A << 4) | (lo >> 4)
	c.A = (c.A & 0xF0) | (lo & 0x0F)
	mem.Write(hl, result)
	c.F = (c.F & FlagC) | sz53pTable[c.A]
	return 18
}

func (c *CPU) edRld(mem Memory) uint8 {
	hl := c.HL()
	lo := mem.Read(hl)
	result := (lo << 4) | (c.A & 0x0F)
	c.A = (c.A & 0xF0) | (lo >> 4)
	mem.Write(hl, result)
	c.F = (c.F & FlagC) | sz53pTable[c.A]
	return 18
}
