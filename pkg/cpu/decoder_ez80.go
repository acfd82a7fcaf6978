package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// NewDecoderEZ80 builds a Decoder for the full eZ80 instruction set: size
// prefixes, DD/FD index prefixes, and the eZ80 extensions layered onto the
// ED table.
func NewDecoderEZ80() *Decoder {
	d := &Decoder{dialect: DialectEZ80}
	d.noPrefix = buildNoPrefixTable()
	d.cb = buildCBTable()
	d.cbIndexed = buildCBIndexedTable()
	d.ed = buildEDTable(DialectEZ80)
	d.hasDisplacement = buildHasDisplacementTable()
	d.dd = buildIndexedRegPairTable(inst.IndexIX)
	d.fd = buildIndexedRegPairTable(inst.IndexIY)
	return d
}

// buildIndexedRegPairTable builds the handful of eZ80-only DD/FD opcodes
// that load or store a 16/24-bit register pair (other than the index
// register itself) through an indexed address - "LD BC,(IX+d)" and
// "LD (IX+d),BC" and their DE counterparts. Every opcode not populated here
// falls through to the shared no-prefix table (ordinary DD/FD-prefixed
// forms already work through the generic (HL)-substitution machinery in
// Environment.Reg8Ext/TranslateReg, so they need no table entry of their
// own). This table's exact opcode assignment is a best-effort
// reconstruction - see DESIGN.md.
func buildIndexedRegPairTable(index inst.Index) [256]*Opcode {
	var t [256]*Opcode
	t[0x07] = buildLdIdxRR(inst.BC)
	t[0x0F] = buildLdRRIdx(inst.BC)
	t[0x17] = buildLdIdxRR(inst.DE)
	t[0x1F] = buildLdRRIdx(inst.DE)
	return t
}
