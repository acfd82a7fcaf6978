package cpu

// Machine is the narrow capability the core requires of its host: byte-wide
// memory access over a 24-bit address space, and byte-wide I/O ports. This
// is the entire surface a host must implement; nothing else is assumed
// about ROM/RAM layout, device mapping, or timing.
type Machine interface {
	Peek(addr uint32) uint8
	Poke(addr uint32, v uint8)
	PortIn(port uint16) uint8
	PortOut(port uint16, v uint8)
}

// CycleSink is an optional capability a Machine may additionally implement
// to receive coarse, advisory cycle-count hints from block and looping
// instructions. Environment probes for this via a type assertion rather
// than requiring it on Machine, since most hosts (tests, disassembly) have
// no use for it - the idiomatic Go analogue of an optional trait method.
type CycleSink interface {
	UseCycles(n int32)
}

func useCycles(m Machine, n int32) {
	if sink, ok := m.(CycleSink); ok {
		sink.UseCycles(n)
	}
}

// PlainMachine is a minimal, flat Machine backed by two byte arrays: a full
// 16MiB address space and a 64K port space. It implements no device
// behaviour at all and is used throughout the test suite in place of a real
// host, exactly as the original's own PlainMachine is.
type PlainMachine struct {
	Mem   [1 << 24]byte
	Ports [1 << 16]byte
}

func NewPlainMachine() *PlainMachine {
	return &PlainMachine{}
}

func (m *PlainMachine) Peek(addr uint32) uint8 { return m.Mem[addr&0xFFFFFF] }
func (m *PlainMachine) Poke(addr uint32, v uint8) {
	m.Mem[addr&0xFFFFFF] = v
}
func (m *PlainMachine) PortIn(port uint16) uint8 { return m.Ports[port] }
func (m *PlainMachine) PortOut(port uint16, v uint8) {
	m.Ports[port] = v
}
