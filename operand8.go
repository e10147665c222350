package z80core

// Register-field encodings shared by the unprefixed, CB and DD/FD pages
// (the Z80's conventional "r" field ordering).
const (
	regB = 0
	regC = 1
	regD = 2
	regE = 3
	regH = 4
	regL = 5
	regM = 6 // (HL), or (IX+d)/(IY+d) under a DD/FD override
	regA = 7
)

// effectiveAddr resolves the address an (HL)-coded operand refers to
// under the current index override, fetching and caching the signed
// displacement byte the first time it is needed (spec §4.3: "the
// displacement byte ... is a signed 8-bit integer fetched immediately
// after the DD/FD-page opcode").
func (c *CPU) effectiveAddr(mem Memory) uint16 {
	base := c.indexRegister()
	if c.idx == idxHL {
		return base
	}
	if !c.dispValid {
		c.disp = int8(c.fetchNoRefresh(mem))
		c.dispValid = true
	}
	return uint16(int32(base) + int32(c.disp))
}

// indexMemExtra is the additional T-state cost of resolving an
// (IX+d)/(IY+d) operand beyond the flat 4-T-state prefix-byte penalty
// Step already charges: +8 for most forms, +5 when the instruction also
// carries its own trailing immediate byte (LD (IX+d),n), per the
// documented Zilog timings for the indexed forms.
func (c *CPU) indexMemExtra(hasImmediate bool) uint8 {
	if c.idx == idxHL {
		return 0
	}
	if hasImmediate {
		return 5
	}
	return 8
}

// getOperand8 reads the 8-bit operand named by a register-field code,
// honoring the DD/FD override: H/L become IXH/IXL/IYH/IYL (undocumented
// but load-bearing, spec §9) and (HL) becomes (IX+d)/(IY+d).
func (c *CPU) getOperand8(mem Memory, code byte) uint8 {
	switch code {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		switch c.idx {
		case idxIX:
			return uint8(c.IX >> 8)
		case idxIY:
			return uint8(c.IY >> 8)
		default:
			return c.H
		}
	case regL:
		switch c.idx {
		case idxIX:
			return uint8(c.IX)
		case idxIY:
			return uint8(c.IY)
		default:
			return c.L
		}
	case regM:
		return mem.Read(c.effectiveAddr(mem))
	default: // regA
		return c.A
	}
}

// setOperand8 is the write counterpart of getOperand8.
func (c *CPU) setOperand8(mem Memory, code byte, v uint8) {
	switch code {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		switch c.idx {
		case idxIX:
			c.IX = c.IX&0x00FF | uint16(v)<<8
		case idxIY:
			c.IY = c.IY&0x00FF | uint16(v)<<8
		default:
			c.H = v
		}
	case regL:
		switch c.idx {
		case idxIX:
			c.IX = c.IX&0xFF00 | uint16(v)
		case idxIY:
			c.IY = c.IY&0xFF00 | uint16(v)
		default:
			c.L = v
		}
	case regM:
		mem.Write(c.effectiveAddr(mem), v)
	default: // regA
		c.A = v
	}
}

// getTrueReg8/setTrueReg8 access B/C/D/E/H/L/A without ever consulting
// the index override. Used for the register operand that accompanies a
// (HL)-coded operand in the same instruction (LD (HL),r / LD r,(HL)):
// real Z80 hardware leaves that companion register as genuine H/L even
// when the (HL) half of the same instruction becomes (IX+d)/(IY+d)
// (spec §9's DD/FD overlay applies per-operand, not per-instruction).
func (c *CPU) getTrueReg8(code byte) uint8 {
	switch code {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	default:
		return c.A
	}
}

func (c *CPU) setTrueReg8(code byte, v uint8) {
	switch code {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		c.H = v
	case regL:
		c.L = v
	default:
		c.A = v
	}
}

// regName8 lists the mnemonic name of each register-field code. Neither
// the execution engine nor Disassemble (which uses regNameIdx) reads it.
var regName8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
