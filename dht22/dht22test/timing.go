// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22test

import "periph.io/x/conn/v3/gpio"

// Timing holds the length, in ticks, of each phase a sensor produces after
// the host releases the line.
type Timing struct {
	Response int // line pulled up by the resistor before the sensor answers
	AckLow   int
	AckHigh  int
	BitLow   int // low phase before each bit
	Zero     int // high phase of a 0
	One      int // high phase of a 1
	Tail     int // low phase after the last bit
}

// DefaultTiming is the nominal timing from the datasheet at one tick per
// microsecond.
var DefaultTiming = Timing{
	Response: 30,
	AckLow:   80,
	AckHigh:  80,
	BitLow:   50,
	Zero:     27,
	One:      70,
	Tail:     50,
}

// Train returns the pulses a sensor sends for payload. Byte 4 goes first,
// most significant bit first, and byte 0, the checksum, last.
func (t Timing) Train(payload [5]byte) []Pulse {
	var bits [40]bool
	for i := range bits {
		b := payload[4-i/8]
		bits[i] = b&(0x80>>(i%8)) != 0
	}
	return t.Bits(bits[:]...)
}

// Bits returns the pulses a sensor sends for an arbitrary sequence of bits,
// acknowledgment included. It is meant for truncated or malformed frames.
func (t Timing) Bits(bits ...bool) []Pulse {
	out := make([]Pulse, 0, 4+2*len(bits)+1)
	out = append(out,
		Pulse{gpio.High, t.Response},
		Pulse{gpio.Low, t.AckLow},
		Pulse{gpio.High, t.AckHigh},
	)
	for _, b := range bits {
		h := t.Zero
		if b {
			h = t.One
		}
		out = append(out, Pulse{gpio.Low, t.BitLow}, Pulse{gpio.High, h})
	}
	return append(out, Pulse{gpio.Low, t.Tail})
}

// Flip returns payload with one transmitted bit inverted. Bit 0 is the first
// bit on the wire, the most significant bit of byte 4.
func Flip(payload [5]byte, bit int) [5]byte {
	payload[4-bit/8] ^= 0x80 >> (bit % 8)
	return payload
}
