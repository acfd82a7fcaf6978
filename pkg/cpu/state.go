package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// State holds the transient, per-instruction decoration that sits on top of
// Registers: which pseudo-index is active, a pending displacement byte, the
// current size-prefix, and the halt/interrupt/reset latches. EndInstruction
// resets the index selector and the size prefix at the end of a step; the
// other fields keep their values until set or cleared explicitly.
type State struct {
	index        inst.Index
	displacement int8
	szPrefix     inst.SizePrefix

	halted       bool
	nmiPending   bool
	resetPending bool
	trace        bool

	instructionsExecuted uint64
}

func NewState() *State {
	return &State{}
}

func (s *State) Index() inst.Index      { return s.index }
func (s *State) SetIndex(ix inst.Index) { s.index = ix }
func (s *State) ClearIndex()            { s.index = inst.IndexHL }
func (s *State) IsAltIndex() bool       { return s.index != inst.IndexHL }

func (s *State) Displacement() int8     { return s.displacement }
func (s *State) SetDisplacement(d int8) { s.displacement = d }

func (s *State) SizePrefix() inst.SizePrefix     { return s.szPrefix }
func (s *State) SetSizePrefix(p inst.SizePrefix) { s.szPrefix = p }
func (s *State) ClearSizePrefix()                { s.szPrefix = inst.SizeNone }

func (s *State) Halted() bool     { return s.halted }
func (s *State) SetHalted(v bool) { s.halted = v }

func (s *State) NMIPending() bool { return s.nmiPending }
func (s *State) SignalNMI()       { s.nmiPending = true }
func (s *State) clearNMI()        { s.nmiPending = false }

func (s *State) ResetPending() bool { return s.resetPending }
func (s *State) SignalReset()       { s.resetPending = true }
func (s *State) clearReset()        { s.resetPending = false }

func (s *State) Trace() bool     { return s.trace }
func (s *State) SetTrace(v bool) { s.trace = v }

func (s *State) InstructionsExecuted() uint64 { return s.instructionsExecuted }

// EndInstruction clears the per-instruction decoration (index substitution
// and size prefix both apply to exactly one instruction) and advances the
// instruction counter used by hosts to schedule periodic interrupts.
func (s *State) EndInstruction() {
	s.index = inst.IndexHL
	s.szPrefix = inst.SizeNone
	s.instructionsExecuted++
}

// IsOpLong reports whether register/memory operands for the current
// instruction are 24-bit wide: true under an explicit .LIL/.LIS prefix, or
// under no prefix when the CPU is already in ADL mode.
func (s *State) IsOpLong(adl bool) bool {
	switch s.szPrefix {
	case inst.SizeLIL, inst.SizeLIS:
		return true
	case inst.SizeSIL, inst.SizeSIS:
		return false
	default:
		return adl
	}
}

// IsImmLong reports whether the immediate operand for the current
// instruction is 3 bytes wide: true under .LIL/.SIL, or under no prefix
// when the CPU is already in ADL mode.
func (s *State) IsImmLong(adl bool) bool {
	switch s.szPrefix {
	case inst.SizeLIL, inst.SizeSIL:
		return true
	case inst.SizeLIS, inst.SizeSIS:
		return false
	default:
		return adl
	}
}
