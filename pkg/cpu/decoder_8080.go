package cpu

// NewDecoder8080 builds a Decoder for the Intel 8080 subset: a single
// 256-entry table, no prefix bytes recognized at all (CB/ED/DD/FD are
// ordinary, if largely undefined, 8080 opcodes under this dialect and are
// served out of the same no-prefix table everything else uses). 8080
// mnemonics are rendered using the shared Z80-style names (e.g. "LD" rather
// than "MOV") since the two instruction sets share byte-for-byte encoding;
// only the flag contract differs, which Operators/Registers.Dialect already
// account for.
func NewDecoder8080() *Decoder {
	d := &Decoder{dialect: Dialect8080}
	d.noPrefix = buildNoPrefixTable()
	return d
}
