package z80core

// indexMode selects which 16-bit register the current instruction treats
// as "HL" for the purposes of register and (HL)-style memory operands,
// per the DD/FD overlay described in spec §9: the underlying handler is
// unchanged, only the register it consults is swapped.
type indexMode uint8

const (
	idxHL indexMode = iota
	idxIX
	idxIY
)

// CPU is a Zilog Z80 core: architectural state plus the decode/execute
// engine. The zero value is not ready for use; call New or Reset first.
type CPU struct {
	Registers

	// idx is the active index-register override for the instruction
	// currently being decoded; it is reset to idxHL at the start of
	// every Step and has no meaning between instructions.
	idx indexMode

	// dispValid/disp cache the displacement byte fetched for an
	// (IX+d)/(IY+d) operand so it is read only once per instruction,
	// even though several handlers consult the effective address.
	dispValid bool
	disp      int8
}

// New creates a CPU at its post-reset state.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset restores the processor to its power-on/reset state: PC=0,
// SP=0xFFFF, I=R=0, interrupts disabled, IM 0. General registers are
// left at their zero value, matching spec §3's "undefined (model: zero)".
func (c *CPU) Reset() {
	c.Registers = Registers{SP: 0xFFFF}
}

// indexRegister returns the 16-bit register that stands in for HL under
// the current override: HL for idxHL, IX for idxIX, IY for idxIY. The
// same handlers serve all three modes by going through this and
// setIndexRegister wherever they would have touched HL.
func (c *CPU) indexRegister() uint16 {
	switch c.idx {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIndexRegister(v uint16) {
	switch c.idx {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// fetch reads the byte at PC, advances PC, and performs the low-7-bit R
// refresh every opcode byte fetch causes (spec §3, §4.3 step 1/2).
func (c *CPU) fetch(mem Memory) uint8 {
	b := mem.Read(c.PC)
	c.PC++
	c.incR()
	return b
}

// fetchNoRefresh reads the next byte at PC and advances PC without
// touching R — used for the displacement byte and the DDCB/FDCB
// sub-opcode, which spec §4.3 step 2 documents as not refreshing R.
func (c *CPU) fetchNoRefresh(mem Memory) uint8 {
	b := mem.Read(c.PC)
	c.PC++
	return b
}

// Step executes exactly one instruction and returns its T-state cost.
// No partial instruction is ever observable between calls (spec §5).
func (c *CPU) Step(mem Memory, ports Ports) uint8 {
	if c.Halted {
		c.incR()
		return 4
	}

	c.idx = idxHL
	c.dispValid = false
	var prefixCost uint8

	op := c.fetch(mem)
	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			c.idx = idxIX
		} else {
			c.idx = idxIY
		}
		prefixCost += 4
		op = c.fetch(mem)
	}

	switch op {
	case 0xCB:
		if c.idx != idxHL {
			d := int8(c.fetchNoRefresh(mem))
			sub := c.fetchNoRefresh(mem)
			return prefixCost + c.execIndexedCB(mem, ports, d, sub)
		}
		sub := c.fetch(mem)
		return prefixCost + c.execCB(mem, ports, sub)
	case 0xED:
		// A DD/FD prefix immediately followed by ED has no effect: ED
		// instructions never consult HL/IX/IY via the override.
		c.idx = idxHL
		sub := c.fetch(mem)
		return prefixCost + c.execED(mem, ports, sub)
	default:
		return prefixCost + c.execUnprefixed(mem, ports, op)
	}
}

// IRQ delivers a maskable interrupt request carrying bus data busData
// (the value the interrupting device placed on the data bus). Ignored
// when IFF1 is clear. Returns the T-state cost of taking the interrupt.
func (c *CPU) IRQ(busData uint8, mem Memory, ports Ports) uint8 {
	if !c.IFF1 {
		return 0
	}
	c.IFF1, c.IFF2 = false, false
	c.Halted = false

	switch c.IM {
	case 0:
		c.idx = idxHL
		c.dispValid = false
		return 2 + c.execUnprefixed(mem, ports, busData)
	case 1:
		c.pushPC(mem)
		c.PC = 0x0038
		return 13
	default: // IM 2
		vector := uint16(c.I)<<8 | uint16(busData&0xFE)
		c.pushPC(mem)
		c.PC = readWord(mem, vector)
		return 19
	}
}

// NMI delivers a non-maskable interrupt. Unaffected by IFF1. Returns 11.
func (c *CPU) NMI(mem Memory) uint8 {
	c.IFF2 = c.IFF1
	c.IFF1 = false
	c.Halted = false
	c.pushPC(mem)
	c.PC = 0x0066
	return 11
}

func (c *CPU) pushPC(mem Memory) {
	c.SP -= 2
	writeWord(mem, c.SP, c.PC)
}

// Snapshot is a flat, host-readable view of all architectural state
// (spec §6.5): restoring one replaces the CPU's state wholesale.
type Snapshot struct {
	A, F   uint8
	B, C   uint8
	D, E   uint8
	H, L   uint8
	A_, F_ uint8
	B_, C_ uint8
	D_, E_ uint8
	H_, L_ uint8
	IX, IY uint16
	SP, PC uint16
	I, R   uint8
	IFF1   bool
	IFF2   bool
	IM     uint8
	Halted bool
}

// State returns a snapshot of the current architectural state.
func (c *CPU) State() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		A_: c.A_, F_: c.F_, B_: c.B_, C_: c.C_, D_: c.D_, E_: c.E_, H_: c.H_, L_: c.L_,
		IX: c.IX, IY: c.IY, SP: c.SP, PC: c.PC, I: c.I, R: c.R,
		IFF1: c.IFF1, IFF2: c.IFF2, IM: c.IM, Halted: c.Halted,
	}
}

// Restore replaces the CPU's entire architectural state from s.
func (c *CPU) Restore(s Snapshot) {
	c.Registers = Registers{
		A: s.A, F: s.F, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		A_: s.A_, F_: s.F_, B_: s.B_, C_: s.C_, D_: s.D_, E_: s.E_, H_: s.H_, L_: s.L_,
		IX: s.IX, IY: s.IY, SP: s.SP, PC: s.PC, I: s.I, R: s.R,
		IFF1: s.IFF1, IFF2: s.IFF2, IM: s.IM, Halted: s.Halted,
	}
}
