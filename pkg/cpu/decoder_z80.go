package cpu

// NewDecoderZ80 builds a Decoder restricted to the classic (non-eZ80) Z80
// instruction set: no size prefixes, no MBASE-relative addressing, and no
// eZ80 ED/DD/FD extensions. The eZ80 extension slots of the ED table take
// whatever buildEDTable gives a non-eZ80 dialect (a classic ED entry or the
// logged NONI+NOP), and Decode never consults the eZ80 DD/FD tables.
func NewDecoderZ80() *Decoder {
	d := &Decoder{dialect: DialectZ80}
	d.noPrefix = buildNoPrefixTable()
	d.cb = buildCBTable()
	d.cbIndexed = buildCBIndexedTable()
	d.ed = buildEDTable(DialectZ80)
	d.hasDisplacement = buildHasDisplacementTable()
	return d
}
