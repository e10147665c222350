package z80core

// execCB dispatches a CB-prefixed sub-opcode against the plain register
// file: rotate/shift group, BIT, RES and SET, decoded with the same
// x/y/z fields as the unprefixed page (x selects the operation class,
// y the bit number or shift routine, z the operand register).
func (c *CPU) execCB(mem Memory, ports Ports, sub uint8) uint8 {
	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7

	v := c.getOperand8(mem, z)
	switch x {
	case 0:
		v = c.shift(y, v)
		c.setOperand8(mem, z, v)
	case 1:
		if z == regM {
			c.bitTest(v, y, uint8(c.HL()>>8))
			return 12
		}
		c.bitTest(v, y, v)
		return 8
	case 2:
		v &^= 1 << y
		c.setOperand8(mem, z, v)
	default:
		v |= 1 << y
		c.setOperand8(mem, z, v)
	}
	if z == regM {
		return 15
	}
	return 8
}

// shift applies one of the eight CB rotate/shift routines selected by y.
func (c *CPU) shift(y byte, v uint8) uint8 {
	switch y {
	case 0:
		return c.shiftRlc(v)
	case 1:
		return c.shiftRrc(v)
	case 2:
		return c.shiftRl(v)
	case 3:
		return c.shiftRr(v)
	case 4:
		return c.shiftSla(v)
	case 5:
		return c.shiftSra(v)
	case 6:
		return c.shiftSll(v)
	default:
		return c.shiftSrl(v)
	}
}

// execIndexedCB dispatches the DDCB/FDCB page: rotate/shift/BIT/RES/SET
// against (IX+d)/(IY+d), with the undocumented side effect that every
// form except BIT also copies its result into the z-coded register when
// z != regM (spec §9's "copy-back" quirk of the indexed-CB page). d was
// already fetched by Step before the sub-opcode byte, per §4.3's
// displacement-then-suboperand fetch order.
func (c *CPU) execIndexedCB(mem Memory, ports Ports, d int8, sub uint8) uint8 {
	c.disp = d
	c.dispValid = true
	addr := c.effectiveAddr(mem)

	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7

	v := mem.Read(addr)
	switch x {
	case 0:
		v = c.shift(y, v)
		mem.Write(addr, v)
		if z != regM {
			c.setTrueReg8(z, v)
		}
		return 23
	case 1:
		c.bitTest(v, y, uint8(addr>>8))
		return 20
	case 2:
		v &^= 1 << y
		mem.Write(addr, v)
		if z != regM {
			c.setTrueReg8(z, v)
		}
		return 23
	default:
		v |= 1 << y
		mem.Write(addr, v)
		if z != regM {
			c.setTrueReg8(z, v)
		}
		return 23
	}
}
