package inst

// Shared decode tables, ported verbatim (by value, not by formula) from the
// table literals used to build the classic Z80/eZ80 opcode maps. These are
// indexed by the p/q/y/z fields produced by Parts.

// RP maps the 2-bit "p" field to a register pair for 16-bit load/arith forms.
var RP = [4]Reg16{BC, DE, HL, SP}

// RP2 maps "p" to a register pair for PUSH/POP forms (uses AF, not SP).
var RP2 = [4]Reg16{BC, DE, HL, AF}

// R maps the 3-bit "y"/"z" field to an 8-bit operand, including the
// pseudo (HL) slot at index 6.
var R = [8]Reg8{B, C, D, E, H, L, IndHL, A}

// IM maps the "y" field (for ED-prefixed IM n) to the interrupt mode it sets.
var IM = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

// CCEntry describes one of the eight condition codes used by conditional
// jumps, calls, and returns.
type CCEntry struct {
	Flag Flag
	Set  bool // true if the condition is "flag set", false if "flag clear"
	Name string
}

// CC maps the 3-bit "y" field to a condition code.
var CC = [8]CCEntry{
	{FlagZ, false, "NZ"},
	{FlagZ, true, "Z"},
	{FlagC, false, "NC"},
	{FlagC, true, "C"},
	{FlagPV, false, "PO"},
	{FlagPV, true, "PE"},
	{FlagS, false, "P"},
	{FlagS, true, "M"},
}

// ROTEntry describes one of the eight CB-prefix rotate/shift operations.
type ROTEntry struct {
	Dir  ShiftDir
	Mode ShiftMode
	Name string
}

// ROT maps the 3-bit "y" field (in CB-prefix x=0 rows) to a rotate/shift op.
var ROT = [8]ROTEntry{
	{ShiftLeft, ModeCircular, "RLC"},
	{ShiftRight, ModeCircular, "RRC"},
	{ShiftLeft, ModeThroughCarry, "RL"},
	{ShiftRight, ModeThroughCarry, "RR"},
	{ShiftLeft, ModeArithmetic, "SLA"},
	{ShiftRight, ModeArithmetic, "SRA"},
	{ShiftLeft, ModeLogical, "SLL"},
	{ShiftRight, ModeLogical, "SRL"},
}

// ALUEntry describes one of the eight "ALU A, operand" operations.
type ALUEntry struct {
	Op   Operator
	Name string
}

// ALU maps the 3-bit "y" field to an arithmetic/logic operation against A.
var ALU = [8]ALUEntry{
	{OpAdd, "ADD A,"},
	{OpAdc, "ADC A,"},
	{OpSub, "SUB "},
	{OpSbc, "SBC A,"},
	{OpAnd, "AND "},
	{OpXor, "XOR "},
	{OpOr, "OR "},
	{OpCp, "CP "},
}

// BLIEntry describes one of the four block-instruction repeat variants:
// increment-vs-decrement the pointer pair, and single-shot-vs-repeating.
type BLIEntry struct {
	Inc     bool
	Repeat  bool
	Postfix string
}

// BLI maps the 2-bit "q"-like index (derived from y&3 in the ED block rows)
// to a block-instruction variant: I, D, IR, DR.
var BLI = [4]BLIEntry{
	{true, false, "I"},
	{false, false, "D"},
	{true, true, "IR"},
	{false, true, "DR"},
}
