// Package inst holds the operand-identity vocabulary shared by the decoder
// and the opcode action builders: register/flag names, the size-prefix and
// shift-operation enums, and the x/y/z/p/q opcode-byte decomposition used to
// build every decode table at start-up.
package inst

// Reg8 names an 8-bit register slot, including the index-register halves
// and the pseudo "(HL)" operand used by the shared R table.
type Reg8 uint8

const (
	A Reg8 = iota
	F
	B
	C
	D
	E
	H
	L
	IXH
	IXL
	IYH
	IYL
	I
	Rr // refresh register; named Rr to avoid clashing with the R table below
	IndHL
)

func (r Reg8) String() string {
	switch r {
	case A:
		return "A"
	case F:
		return "F"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case H:
		return "H"
	case L:
		return "L"
	case IXH:
		return "IXH"
	case IXL:
		return "IXL"
	case IYH:
		return "IYH"
	case IYL:
		return "IYL"
	case I:
		return "I"
	case Rr:
		return "R"
	case IndHL:
		return "(HL)"
	}
	return "?"
}

// Reg16 names a 16/24-bit register pair.
type Reg16 uint8

const (
	BC Reg16 = iota
	DE
	HL
	SP
	AF
	IX
	IY
	PC
)

func (r Reg16) String() string {
	switch r {
	case BC:
		return "BC"
	case DE:
		return "DE"
	case HL:
		return "HL"
	case SP:
		return "SP"
	case AF:
		return "AF"
	case IX:
		return "IX"
	case IY:
		return "IY"
	case PC:
		return "PC"
	}
	return "?"
}

// Index names which pseudo-register is currently substituted for (HL):
// plain HL, or one of the two index registers under a DD/FD prefix.
type Index uint8

const (
	IndexHL Index = iota
	IndexIX
	IndexIY
)

func (ix Index) String() string {
	switch ix {
	case IndexIX:
		return "IX"
	case IndexIY:
		return "IY"
	default:
		return "HL"
	}
}

// Reg16 returns the Reg16 backing the current index (IX/IY/HL).
func (ix Index) Reg16() Reg16 {
	switch ix {
	case IndexIX:
		return IX
	case IndexIY:
		return IY
	default:
		return HL
	}
}

// Flag names a bit of the F register and its mask value.
type Flag uint8

const (
	FlagC  Flag = 0x01
	FlagN  Flag = 0x02
	FlagPV Flag = 0x04
	Flag3  Flag = 0x08
	FlagH  Flag = 0x10
	Flag5  Flag = 0x20
	FlagZ  Flag = 0x40
	FlagS  Flag = 0x80
)

// SizePrefix is the one-byte eZ80 suffix (0x40/0x49/0x52/0x5B) that overrides
// operand/immediate width for the single instruction that follows it.
type SizePrefix uint8

const (
	SizeNone SizePrefix = iota
	SizeLIL             // .LIL: long immediate, long operand
	SizeLIS             // .LIS: long operand, short immediate
	SizeSIL             // .SIL: short operand, long immediate
	SizeSIS             // .SIS: short immediate, short operand
)

func (s SizePrefix) String() string {
	switch s {
	case SizeLIL:
		return ".LIL"
	case SizeLIS:
		return ".LIS"
	case SizeSIL:
		return ".SIL"
	case SizeSIS:
		return ".SIS"
	default:
		return ""
	}
}

// ShiftDir is the direction of a CB-prefix rotate/shift.
type ShiftDir uint8

const (
	ShiftLeft ShiftDir = iota
	ShiftRight
)

// ShiftMode distinguishes the four CB-prefix shift families.
type ShiftMode uint8

const (
	ModeCircular   ShiftMode = iota // RLC / RRC: bit wraps directly, C set from it
	ModeThroughCarry                // RL / RR: bit rotates through the carry flag
	ModeArithmetic                  // SLA / SRA: shift, sign bit preserved on the right
	ModeLogical                     // SLL / SRL: shift, 1 shifted in on SLL, 0 on SRL
)

// Operator names an 8-bit ALU operation (ADD/ADC/SUB/SBC/AND/XOR/OR/CP/TST).
type Operator uint8

const (
	OpAdd Operator = iota
	OpAdc
	OpSub
	OpSbc
	OpAnd
	OpXor
	OpOr
	OpCp
	OpTst
)

// Parts decomposes an opcode byte into the canonical x,y,z,p,q fields used
// throughout the classic Z80/eZ80/8080 decode tables.
func Parts(code byte) (x, y, z, p, q uint8) {
	x = code >> 6
	y = (code >> 3) & 7
	z = code & 7
	p = (code >> 4) & 3
	q = (code >> 3) & 1
	return
}
