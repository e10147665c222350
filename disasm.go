package z80core

import "fmt"

var regNameIdx = [3][8]string{
	{"B", "C", "D", "E", "H", "L", "(HL)", "A"},
	{"B", "C", "D", "E", "IXH", "IXL", "(IX+%d)", "A"},
	{"B", "C", "D", "E", "IYH", "IYL", "(IY+%d)", "A"},
}

var rpNameIdx = [3][4]string{
	{"BC", "DE", "HL", "SP"},
	{"BC", "DE", "IX", "SP"},
	{"BC", "DE", "IY", "SP"},
}

var rp2NameIdx = [3][4]string{
	{"BC", "DE", "HL", "AF"},
	{"BC", "DE", "IX", "AF"},
	{"BC", "DE", "IY", "AF"},
}

var aluName = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
var ccName = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// Disassemble decodes one instruction starting at pc without mutating
// CPU state, returning its text and byte length. It mirrors the
// classifier-function shape of the exec_*.go dispatch pages (same x/y/z
// decomposition) rather than a literal per-opcode table, so the indexed
// (DD/FD), CB and ED forms fall out of the same small set of rules the
// execution engine already uses.
func Disassemble(mem Memory, pc uint16) (string, uint16) {
	start := pc
	idx := 0 // 0=none/HL, 1=IX, 2=IY
	op := mem.Read(pc)
	pc++
	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			idx = 1
		} else {
			idx = 2
		}
		op = mem.Read(pc)
		pc++
	}

	var text string
	switch op {
	case 0xCB:
		if idx != 0 {
			d := int8(mem.Read(pc))
			pc++
			sub := mem.Read(pc)
			pc++
			text = disasmIndexedCB(idx, d, sub)
		} else {
			sub := mem.Read(pc)
			pc++
			text = disasmCB(sub)
		}
	case 0xED:
		sub := mem.Read(pc)
		pc++
		text, pc = disasmED(mem, pc, sub)
	default:
		text, pc = disasmUnprefixed(mem, pc, idx, op)
	}
	return text, pc - start
}

func reg(idx int, code byte, d int8) string {
	name := regNameIdx[idx][code]
	if code == regM && idx != 0 {
		return fmt.Sprintf(name, d)
	}
	return name
}

func disasmUnprefixed(mem Memory, pc uint16, idx int, op uint8) (string, uint16) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	readDispFor := func(code byte) int8 {
		if idx == 0 || code != regM {
			return 0
		}
		d := int8(mem.Read(pc))
		pc++
		return d
	}
	u8 := func() uint8 { v := mem.Read(pc); pc++; return v }
	u16 := func() uint16 { v := readWord(mem, pc); pc += 2; return v }

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				return "NOP", pc
			case y == 1:
				return "EX AF,AF'", pc
			case y == 2:
				d := int8(u8())
				return fmt.Sprintf("DJNZ %+d", d), pc
			case y == 3:
				d := int8(u8())
				return fmt.Sprintf("JR %+d", d), pc
			default:
				d := int8(u8())
				return fmt.Sprintf("JR %s,%+d", ccName[y-4], d), pc
			}
		case 1:
			if q == 0 {
				nn := u16()
				return fmt.Sprintf("LD %s,%04Xh", rpNameIdx[idx][p], nn), pc
			}
			return fmt.Sprintf("ADD %s,%s", rpNameIdx[idx][2], rpNameIdx[idx][p]), pc
		case 2:
			return disasmX0Z2(mem, pc, idx, p, q)
		case 3:
			mnem := "INC"
			if q == 1 {
				mnem = "DEC"
			}
			return fmt.Sprintf("%s %s", mnem, rpNameIdx[idx][p]), pc
		case 4:
			d := readDispFor(y)
			return fmt.Sprintf("INC %s", reg(idx, y, d)), pc
		case 5:
			d := readDispFor(y)
			return fmt.Sprintf("DEC %s", reg(idx, y, d)), pc
		case 6:
			d := readDispFor(y)
			n := u8()
			return fmt.Sprintf("LD %s,%02Xh", reg(idx, y, d), n), pc
		default:
			names := [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
			return names[y], pc
		}
	case 1:
		if y == regM && z == regM {
			return "HALT", pc
		}
		d := readDispFor(y)
		if y != regM {
			d = readDispFor(z)
		}
		// The register beside an (IX+d)/(IY+d) operand is the plain one,
		// as in execX1's use of getTrueReg8/setTrueReg8.
		if idx != 0 && y == regM {
			return fmt.Sprintf("LD %s,%s", reg(idx, y, d), regNameIdx[0][z]), pc
		}
		if idx != 0 && z == regM {
			return fmt.Sprintf("LD %s,%s", regNameIdx[0][y], reg(idx, z, d)), pc
		}
		return fmt.Sprintf("LD %s,%s", reg(idx, y, d), reg(idx, z, d)), pc
	case 2:
		d := readDispFor(z)
		return aluName[y] + reg(idx, z, d), pc
	default:
		return disasmX3(mem, pc, idx, y, z, p, q)
	}
}

func disasmX0Z2(mem Memory, pc uint16, idx int, p, q byte) (string, uint16) {
	u16 := func() uint16 { v := readWord(mem, pc); pc += 2; return v }
	if q == 0 {
		switch p {
		case 0:
			return "LD (BC),A", pc
		case 1:
			return "LD (DE),A", pc
		case 2:
			nn := u16()
			return fmt.Sprintf("LD (%04Xh),%s", nn, rpNameIdx[idx][2]), pc
		default:
			nn := u16()
			return fmt.Sprintf("LD (%04Xh),A", nn), pc
		}
	}
	switch p {
	case 0:
		return "LD A,(BC)", pc
	case 1:
		return "LD A,(DE)", pc
	case 2:
		nn := u16()
		return fmt.Sprintf("LD %s,(%04Xh)", rpNameIdx[idx][2], nn), pc
	default:
		nn := u16()
		return fmt.Sprintf("LD A,(%04Xh)", nn), pc
	}
}

func disasmX3(mem Memory, pc uint16, idx int, y, z, p, q byte) (string, uint16) {
	u8 := func() uint8 { v := mem.Read(pc); pc++; return v }
	u16 := func() uint16 { v := readWord(mem, pc); pc += 2; return v }
	switch z {
	case 0:
		return fmt.Sprintf("RET %s", ccName[y]), pc
	case 1:
		if q == 0 {
			return fmt.Sprintf("POP %s", rp2NameIdx[idx][p]), pc
		}
		switch p {
		case 0:
			return "RET", pc
		case 1:
			return "EXX", pc
		case 2:
			return fmt.Sprintf("JP (%s)", rpNameIdx[idx][2]), pc
		default:
			return fmt.Sprintf("LD SP,%s", rpNameIdx[idx][2]), pc
		}
	case 2:
		nn := u16()
		return fmt.Sprintf("JP %s,%04Xh", ccName[y], nn), pc
	case 3:
		switch y {
		case 0:
			nn := u16()
			return fmt.Sprintf("JP %04Xh", nn), pc
		case 2:
			n := u8()
			return fmt.Sprintf("OUT (%02Xh),A", n), pc
		case 3:
			n := u8()
			return fmt.Sprintf("IN A,(%02Xh)", n), pc
		case 4:
			return fmt.Sprintf("EX (SP),%s", rpNameIdx[idx][2]), pc
		case 5:
			return "EX DE,HL", pc
		case 6:
			return "DI", pc
		default:
			return "EI", pc
		}
	case 4:
		nn := u16()
		return fmt.Sprintf("CALL %s,%04Xh", ccName[y], nn), pc
	case 5:
		if q == 0 {
			return fmt.Sprintf("PUSH %s", rp2NameIdx[idx][p]), pc
		}
		if p == 0 {
			nn := u16()
			return fmt.Sprintf("CALL %04Xh", nn), pc
		}
		return "", pc // DD/FD/ED: consumed by the prefix loop
	case 6:
		n := u8()
		return aluName[y] + fmt.Sprintf("%02Xh", n), pc
	default:
		return fmt.Sprintf("RST %02Xh", y*8), pc
	}
}

func disasmCB(sub uint8) string {
	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7
	r := regNameIdx[0][z]
	switch x {
	case 0:
		names := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
		return fmt.Sprintf("%s %s", names[y], r)
	case 1:
		return fmt.Sprintf("BIT %d,%s", y, r)
	case 2:
		return fmt.Sprintf("RES %d,%s", y, r)
	default:
		return fmt.Sprintf("SET %d,%s", y, r)
	}
}

func disasmIndexedCB(idx int, d int8, sub uint8) string {
	x := sub >> 6
	y := (sub >> 3) & 7
	addr := reg(idx, regM, d)
	switch x {
	case 0:
		names := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
		return fmt.Sprintf("%s %s", names[y], addr)
	case 1:
		return fmt.Sprintf("BIT %d,%s", y, addr)
	case 2:
		return fmt.Sprintf("RES %d,%s", y, addr)
	default:
		return fmt.Sprintf("SET %d,%s", y, addr)
	}
}

func disasmED(mem Memory, pc uint16, sub uint8) (string, uint16) {
	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7
	p := y >> 1
	q := y & 1
	u16 := func() uint16 { v := readWord(mem, pc); pc += 2; return v }

	if x == 2 && z <= 3 && y >= 4 {
		rows := [4]string{"LD", "CP", "IN", "OUT"}
		suffix := [4]string{"I", "D", "IR", "DR"}
		return rows[z] + suffix[y-4], pc
	}
	if x != 1 {
		return "NOP*", pc
	}
	switch z {
	case 0:
		if y == regM {
			return "IN (C)", pc
		}
		return fmt.Sprintf("IN %s,(C)", regNameIdx[0][y]), pc
	case 1:
		if y == regM {
			return "OUT (C),0", pc
		}
		return fmt.Sprintf("OUT (C),%s", regNameIdx[0][y]), pc
	case 2:
		op := "SBC"
		if q == 1 {
			op = "ADC"
		}
		return fmt.Sprintf("%s HL,%s", op, rpNameIdx[0][p]), pc
	case 3:
		nn := u16()
		if q == 0 {
			return fmt.Sprintf("LD (%04Xh),%s", nn, rpNameIdx[0][p]), pc
		}
		return fmt.Sprintf("LD %s,(%04Xh)", rpNameIdx[0][p], nn), pc
	case 4:
		return "NEG", pc
	case 5:
		if y == 1 {
			return "RETI", pc
		}
		return "RETN", pc
	case 6:
		ims := [8]string{"0", "0", "1", "2", "0", "0", "1", "2"}
		return "IM " + ims[y], pc
	default:
		names := [8]string{"LD I,A", "LD R,A", "LD A,I", "LD A,R", "RRD", "RLD", "NOP*", "NOP*"}
		return names[y], pc
	}
}
