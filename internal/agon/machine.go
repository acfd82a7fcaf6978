// Package agon implements a minimal agon-light-style host Machine: a flat
// ROM+RAM map plus a UART0 front end driven over buffered channels, the
// concrete example of a Machine richer than cpu.PlainMachine.
package agon

import (
	"sync"

	"github.com/tomm/go-ez80/pkg/cpu"
)

const (
	romSize = 256 * 1024
	ramSize = 512 * 1024
	romBase = 0x000000
	ramBase = 0x040000

	portUART0RHR = 0xC0 // receive holding register (read)
	portUART0THR = 0xC0 // transmit holding register (write)
	portUART0LSR = 0xC5
	portModemStatus = 0xA2
	portTimerLo     = 0x81
	portTimerHi     = 0x82

	lsrTXEmpty = 1 << 6
	lsrRXReady = 1 << 0
	msrCTS     = 1 << 0
)

// Machine is the sample agon host: 256KiB ROM at $000000, 512KiB RAM at
// $040000, and UART0 bridged to the outside world over two buffered byte
// channels - RX fed by a separate goroutine, TX drained by the CLI. This
// mirrors the original single-threaded CPU loop communicating with other
// threads only through its own buffered queues, never by sharing memory.
type Machine struct {
	rom [romSize]byte
	ram [ramSize]byte

	mu      sync.Mutex
	rx      chan byte
	tx      chan byte
	rxReady bool
	rxByte  byte

	cyclesUsed int64
}

// New constructs an agon Machine with rom preloaded starting at $000000
// (truncated/zero-padded to romSize) and the given channel buffer depth for
// UART0. A zero bufSize still works; sends block until the CLI drains TX.
func New(rom []byte, bufSize int) *Machine {
	m := &Machine{
		rx: make(chan byte, bufSize),
		tx: make(chan byte, bufSize),
	}
	copy(m.rom[:], rom)
	return m
}

// TX returns the channel the CLI drains to forward transmitted bytes to a
// VDP front end (here, simply to stdout).
func (m *Machine) TX() <-chan byte { return m.tx }

// Feed enqueues a byte of host input the guest will observe via UART0 RHR.
// Feed is the analogue of the original's std::sync::mpsc sender side and is
// meant to be called from a goroutine separate from the one stepping Cpu.
func (m *Machine) Feed(b byte) { m.rx <- b }

func (m *Machine) Peek(addr uint32) uint8 {
	addr &= 0xFFFFFF
	switch {
	case addr < romBase+romSize:
		return m.rom[addr-romBase]
	case addr >= ramBase && addr < ramBase+ramSize:
		return m.ram[addr-ramBase]
	default:
		return 0xFF
	}
}

func (m *Machine) Poke(addr uint32, v uint8) {
	addr &= 0xFFFFFF
	if addr >= ramBase && addr < ramBase+ramSize {
		m.ram[addr-ramBase] = v
	}
	// writes to ROM or unmapped space are silently discarded, matching a
	// real memory-mapped ROM region.
}

func (m *Machine) PortIn(port uint16) uint8 {
	switch port & 0xFF {
	case portUART0RHR:
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.rxReady {
			m.rxReady = false
			return m.rxByte
		}
		return 0
	case portUART0LSR:
		m.mu.Lock()
		ready := m.rxReady
		m.mu.Unlock()
		if !ready {
			select {
			case b := <-m.rx:
				m.mu.Lock()
				m.rxByte = b
				m.rxReady = true
				m.mu.Unlock()
				ready = true
			default:
			}
		}
		lsr := uint8(lsrTXEmpty)
		if ready {
			lsr |= lsrRXReady
		}
		return lsr
	case portModemStatus:
		return msrCTS
	case portTimerLo, portTimerHi:
		return 0
	default:
		return 0
	}
}

func (m *Machine) PortOut(port uint16, v uint8) {
	switch port & 0xFF {
	case portUART0THR:
		m.tx <- v
	default:
		// unimplemented device register: ignored
	}
}

// UseCycles implements cpu.CycleSink so block/looping instructions can
// advance a coarse running total; the agon host does not gate timing on it.
func (m *Machine) UseCycles(n int32) {
	m.mu.Lock()
	m.cyclesUsed += int64(n)
	m.mu.Unlock()
}

func (m *Machine) CyclesUsed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cyclesUsed
}

var _ cpu.Machine = (*Machine)(nil)
var _ cpu.CycleSink = (*Machine)(nil)
