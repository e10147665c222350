package z80core

// execUnprefixed dispatches one unprefixed opcode byte (or, under the
// DD/FD overlay, the page that reuses these same handlers against IX/IY).
// It decodes the byte into the conventional Z80 bit fields
// x = op>>6, y = (op>>3)&7, z = op&7, p = y>>1, q = y&1 — the same
// decomposition Zilog's own encoding follows, rather than writing out
// 256 case labels by hand (spec §9's "classifier function" alternative).
func (c *CPU) execUnprefixed(mem Memory, ports Ports, op uint8) uint8 {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.execX0(mem, ports, y, z, p, q)
	case 1:
		return c.execX1(mem, y, z)
	case 2:
		return c.execX2(mem, y, z)
	default:
		return c.execX3(mem, ports, y, z, p, q)
	}
}

func (c *CPU) execX0(mem Memory, ports Ports, y, z, p, q byte) uint8 {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
			return 4
		case y == 1: // EX AF,AF'
			c.ExAF()
			return 4
		case y == 2: // DJNZ d
			d := int8(c.fetchNoRefresh(mem))
			c.B--
			if c.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 13
			}
			return 8
		case y == 3: // JR d
			d := int8(c.fetchNoRefresh(mem))
			c.PC = uint16(int32(c.PC) + int32(d))
			return 12
		default: // JR cc,d  (y=4..7 -> cc 0..3: NZ,Z,NC,C)
			d := int8(c.fetchNoRefresh(mem))
			if c.condition(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 12
			}
			return 7
		}
	case 1:
		if q == 0 { // LD rp[p],nn
			nn := c.fetchWord(mem)
			c.setRP(p, nn)
			return 10
		}
		// ADD HL,rp[p]
		hl := c.indexRegister()
		c.setIndexRegister(c.add16(hl, c.getRP(p)))
		return 11
	case 2:
		return c.execX0Z2(mem, p, q)
	case 3:
		if q == 0 { // INC rp[p]
			c.setRP(p, c.getRP(p)+1)
		} else { // DEC rp[p]
			c.setRP(p, c.getRP(p)-1)
		}
		return 6
	case 4: // INC r[y]
		c.setOperand8(mem, y, c.aluInc(c.getOperand8(mem, y)))
		return c.incDecCost(y)
	case 5: // DEC r[y]
		c.setOperand8(mem, y, c.aluDec(c.getOperand8(mem, y)))
		return c.incDecCost(y)
	case 6: // LD r[y],n
		if y == regM {
			// The displacement must be resolved before the immediate is
			// fetched: under DD/FD, PC points at d first and n second
			// (spec §4.3), the same order disasm.go's readDispFor uses.
			addr := c.effectiveAddr(mem)
			n := c.fetchNoRefresh(mem)
			mem.Write(addr, n)
			if c.idx == idxHL {
				return 10
			}
			return 15
		}
		n := c.fetchNoRefresh(mem)
		c.setOperand8(mem, y, n)
		return 7
	default: // z==7: accumulator ops and CPU control, never idx-affected
		switch y {
		case 0:
			c.accumRlca()
		case 1:
			c.accumRrca()
		case 2:
			c.accumRla()
		case 3:
			c.accumRra()
		case 4:
			c.daa()
		case 5:
			c.A = ^c.A
			c.F = (c.F & (FlagC | FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5)) | FlagN | FlagH
		case 6:
			c.F = (c.F & (FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5)) | FlagC
		default: // CCF
			oldC := c.F & FlagC
			c.F = (c.F & (FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5))
			if oldC != 0 {
				c.F |= FlagH
			} else {
				c.F |= FlagC
			}
		}
		return 4
	}
}

func (c *CPU) execX0Z2(mem Memory, p, q byte) uint8 {
	if q == 0 {
		switch p {
		case 0:
			mem.Write(c.BC(), c.A)
		case 1:
			mem.Write(c.DE(), c.A)
		case 2:
			nn := c.fetchWord(mem)
			writeWord(mem, nn, c.indexRegister())
			return 16
		default:
			nn := c.fetchWord(mem)
			mem.Write(nn, c.A)
			return 13
		}
		return 7
	}
	switch p {
	case 0:
		c.A = mem.Read(c.BC())
	case 1:
		c.A = mem.Read(c.DE())
	case 2:
		nn := c.fetchWord(mem)
		c.setIndexRegister(readWord(mem, nn))
		return 16
	default:
		nn := c.fetchWord(mem)
		c.A = mem.Read(nn)
		return 13
	}
	return 7
}

func (c *CPU) execX1(mem Memory, y, z byte) uint8 {
	if y == regM && z == regM { // HALT
		c.Halted = true
		return 4
	}
	if y == regM { // LD (HL),r  (or (IX+d),r / (IY+d),r)
		v := c.getTrueReg8(z)
		c.setOperand8(mem, regM, v)
		return 7 + c.indexMemExtra(false)
	}
	if z == regM { // LD r,(HL)  (or r,(IX+d) / r,(IY+d))
		v := c.getOperand8(mem, regM)
		c.setTrueReg8(y, v)
		return 7 + c.indexMemExtra(false)
	}
	c.setOperand8(mem, y, c.getOperand8(mem, z))
	return 4
}

func (c *CPU) execX2(mem Memory, y, z byte) uint8 {
	v := c.getOperand8(mem, z)
	switch y {
	case 0:
		c.aluAdd(v)
	case 1:
		c.aluAdc(v)
	case 2:
		c.aluSub(v)
	case 3:
		c.aluSbc(v)
	case 4:
		c.aluAnd(v)
	case 5:
		c.aluXor(v)
	case 6:
		c.aluOr(v)
	default:
		c.aluCp(v)
	}
	if z != regM {
		return 4
	}
	if c.idx == idxHL {
		return 7
	}
	return 15
}

func (c *CPU) execX3(mem Memory, ports Ports, y, z, p, q byte) uint8 {
	switch z {
	case 0: // RET cc[y]
		if c.condition(y) {
			c.PC = c.pop(mem)
			return 11
		}
		return 5
	case 1:
		return c.execX3Z1(mem, p, q)
	case 2: // JP cc[y],nn
		nn := c.fetchWord(mem)
		if c.condition(y) {
			c.PC = nn
		}
		return 10
	case 3:
		return c.execX3Z3(mem, ports, y)
	case 4: // CALL cc[y],nn
		nn := c.fetchWord(mem)
		if c.condition(y) {
			c.push(mem, c.PC)
			c.PC = nn
			return 17
		}
		return 10
	case 5:
		return c.execX3Z5(mem, p, q)
	case 6: // ALU[y] n
		n := c.fetchNoRefresh(mem)
		switch y {
		case 0:
			c.aluAdd(n)
		case 1:
			c.aluAdc(n)
		case 2:
			c.aluSub(n)
		case 3:
			c.aluSbc(n)
		case 4:
			c.aluAnd(n)
		case 5:
			c.aluXor(n)
		case 6:
			c.aluOr(n)
		default:
			c.aluCp(n)
		}
		return 7
	default: // RST y*8
		c.push(mem, c.PC)
		c.PC = uint16(y) * 8
		return 11
	}
}

func (c *CPU) execX3Z1(mem Memory, p, q byte) uint8 {
	if q == 0 { // POP rp2[p]
		v := c.pop(mem)
		if p == 2 {
			c.setIndexRegister(v)
			return 10
		}
		c.setRP2(p, v)
		return 10
	}
	switch p {
	case 0: // RET
		c.PC = c.pop(mem)
		return 10
	case 1: // EXX
		c.Exx()
		return 4
	case 2: // JP (HL)/(IX)/(IY)
		c.PC = c.indexRegister()
		return 4
	default: // LD SP,HL/IX/IY
		c.SP = c.indexRegister()
		return 6
	}
}

func (c *CPU) execX3Z3(mem Memory, ports Ports, y byte) uint8 {
	switch y {
	case 0: // JP nn
		c.PC = c.fetchWord(mem)
		return 10
	case 2: // OUT (n),A
		n := c.fetchNoRefresh(mem)
		ports.Out(uint16(c.A)<<8|uint16(n), c.A)
		return 11
	case 3: // IN A,(n)
		n := c.fetchNoRefresh(mem)
		c.A = ports.In(uint16(c.A)<<8 | uint16(n))
		return 11
	case 4: // EX (SP),HL/IX/IY
		v := readWord(mem, c.SP)
		writeWord(mem, c.SP, c.indexRegister())
		c.setIndexRegister(v)
		return 19
	case 5: // EX DE,HL -- never affected by DD/FD
		c.ExDEHL()
		return 4
	case 6: // DI
		c.IFF1, c.IFF2 = false, false
		return 4
	default: // EI
		c.IFF1, c.IFF2 = true, true
		return 4
	}
}

func (c *CPU) execX3Z5(mem Memory, p, q byte) uint8 {
	if q == 0 { // PUSH rp2[p]
		if p == 2 {
			c.push(mem, c.indexRegister())
			return 11
		}
		c.push(mem, c.getRP2(p))
		return 11
	}
	if p == 0 { // CALL nn
		nn := c.fetchWord(mem)
		c.push(mem, c.PC)
		c.PC = nn
		return 17
	}
	// p==1,2,3 select DD/FD/ED prefixes, consumed by Step before reaching here.
	return 4
}

// incDecCost returns INC/DEC r's T-state cost: 4 for a register, 11 for
// (HL), 19 for (IX+d)/(IY+d) — the read-modify-write form costs more than
// a plain load/store of the same operand (spec §4.3's displacement-fetch
// overhead applies on top of the extra memory access INC/DEC already make).
func (c *CPU) incDecCost(code byte) uint8 {
	if code != regM {
		return 4
	}
	if c.idx == idxHL {
		return 11
	}
	return 19
}

func (c *CPU) fetchWord(mem Memory) uint16 {
	lo := c.fetchNoRefresh(mem)
	hi := c.fetchNoRefresh(mem)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push(mem Memory, v uint16) {
	c.SP -= 2
	writeWord(mem, c.SP, v)
}

func (c *CPU) pop(mem Memory) uint16 {
	v := readWord(mem, c.SP)
	c.SP += 2
	return v
}

// condition evaluates one of the eight Z80 condition codes against the
// current flags: NZ,Z,NC,C,PO,PE,P,M.
func (c *CPU) condition(cc byte) bool {
	switch cc {
	case 0:
		return c.F&FlagZ == 0
	case 1:
		return c.F&FlagZ != 0
	case 2:
		return c.F&FlagC == 0
	case 3:
		return c.F&FlagC != 0
	case 4:
		return c.F&FlagP == 0
	case 5:
		return c.F&FlagP != 0
	case 6:
		return c.F&FlagS == 0
	default:
		return c.F&FlagS != 0
	}
}

// getRP/setRP implement the rp[p] table (BC,DE,HL/idx,SP) used by 16-bit
// load/inc/dec/add. getRP2/setRP2 implement the rp2[p] table (BC,DE,HL/idx,AF)
// used by PUSH/POP.
func (c *CPU) getRP(p byte) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.indexRegister()
	default:
		return c.SP
	}
}

func (c *CPU) setRP(p byte, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIndexRegister(v)
	default:
		c.SP = v
	}
}

func (c *CPU) getRP2(p byte) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.indexRegister()
	default:
		return c.AF()
	}
}

func (c *CPU) setRP2(p byte, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIndexRegister(v)
	default:
		c.SetAF(v)
	}
}
