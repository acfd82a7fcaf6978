package agon

import "testing"

func TestRomReadRamWrite(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0xC3 // JP nnnn
	m := New(rom, 4)

	if got := m.Peek(0); got != 0xC3 {
		t.Fatalf("Peek(0) = $%02X, want $C3", got)
	}

	m.Poke(0, 0x00) // write to ROM is discarded
	if got := m.Peek(0); got != 0xC3 {
		t.Fatalf("Peek(0) after write = $%02X, want $C3 (ROM not writable)", got)
	}

	m.Poke(ramBase, 0x42)
	if got := m.Peek(ramBase); got != 0x42 {
		t.Fatalf("Peek(ramBase) = $%02X, want $42", got)
	}
}

func TestUart0RoundTrip(t *testing.T) {
	m := New(nil, 4)

	if lsr := m.PortIn(portUART0LSR); lsr != lsrTXEmpty {
		t.Fatalf("LSR = $%02X, want $%02X (TX empty, nothing received)", lsr, lsrTXEmpty)
	}

	m.Feed(0x41)
	if lsr := m.PortIn(portUART0LSR); lsr != lsrTXEmpty|lsrRXReady {
		t.Fatalf("LSR = $%02X, want TX-empty|RX-ready after Feed", lsr)
	}
	if got := m.PortIn(portUART0RHR); got != 0x41 {
		t.Fatalf("RHR = $%02X, want $41", got)
	}
	if lsr := m.PortIn(portUART0LSR); lsr != lsrTXEmpty {
		t.Fatalf("LSR = $%02X, want TX-empty only after RHR drained", lsr)
	}

	m.PortOut(portUART0THR, 0x58)
	select {
	case got := <-m.TX():
		if got != 0x58 {
			t.Fatalf("TX byte = $%02X, want $58", got)
		}
	default:
		t.Fatalf("expected a byte on TX channel")
	}
}

func TestModemStatusAndTimerPorts(t *testing.T) {
	m := New(nil, 0)
	if got := m.PortIn(portModemStatus); got != msrCTS {
		t.Fatalf("modem status = $%02X, want $%02X", got, msrCTS)
	}
	if got := m.PortIn(portTimerLo); got != 0 {
		t.Fatalf("timer lo = $%02X, want 0", got)
	}
	if got := m.PortIn(portTimerHi); got != 0 {
		t.Fatalf("timer hi = $%02X, want 0", got)
	}
}
