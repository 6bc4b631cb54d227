// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func levels(p *Pin, n int) []gpio.Level {
	out := make([]gpio.Level, n)
	for i := range out {
		out[i] = p.Read()
	}
	return out
}

func TestPin(t *testing.T) {
	const H, L = gpio.High, gpio.Low
	p := NewPin(H, Pulse{L, 2}, Pulse{H, 0}, Pulse{H, 1}, Pulse{L, 1})
	if p.String() == "" {
		t.Error("empty String()")
	}

	// Nothing plays before the start pulse.
	if diff := cmp.Diff(levels(p, 3), []gpio.Level{H, H, H}); diff != "" {
		t.Errorf("before start (-got +want):\n%s", diff)
	}

	if err := p.Out(L); err != nil {
		t.Fatal(err)
	}
	if !p.Driven || p.Read() != L {
		t.Error("driven line should read low")
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		t.Fatal(err)
	}
	if p.Driven || p.P != gpio.PullUp {
		t.Errorf("In() left driven=%t pull=%s", p.Driven, p.P)
	}
	if diff := cmp.Diff(levels(p, 6), []gpio.Level{L, L, H, L, H, H}); diff != "" {
		t.Errorf("train (-got +want):\n%s", diff)
	}
	if p.Reads != 6 || p.Falls != 1 {
		t.Errorf("Reads %d Falls %d, want 6 and 1", p.Reads, p.Falls)
	}

	// A new start pulse replays the train.
	_ = p.Out(L)
	_ = p.In(gpio.PullNoChange, gpio.NoEdge)
	if p.P != gpio.PullUp {
		t.Errorf("PullNoChange changed the pull to %s", p.P)
	}
	if diff := cmp.Diff(levels(p, 2), []gpio.Level{L, L}); diff != "" {
		t.Errorf("replay (-got +want):\n%s", diff)
	}
	if p.Falls != 2 {
		t.Errorf("Falls %d, want 2", p.Falls)
	}
}

func TestTrain(t *testing.T) {
	tm := Timing{Response: 1, AckLow: 2, AckHigh: 3, BitLow: 4, Zero: 5, One: 6, Tail: 7}
	got := tm.Train([5]byte{0x00, 0x00, 0x00, 0x00, 0x81})
	if len(got) != 3+80+1 {
		t.Fatalf("%d pulses, want 84", len(got))
	}
	want := []Pulse{
		{gpio.High, 1}, {gpio.Low, 2}, {gpio.High, 3},
		{gpio.Low, 4}, {gpio.High, 6}, // 0x81 MSB first
		{gpio.Low, 4}, {gpio.High, 5},
	}
	if diff := cmp.Diff(got[:len(want)], want); diff != "" {
		t.Errorf("head (-got +want):\n%s", diff)
	}
	if got[3+2*7+1] != (Pulse{gpio.High, 6}) {
		t.Errorf("last bit of byte 4 = %v", got[3+2*7+1])
	}
	if got[len(got)-1] != (Pulse{gpio.Low, 7}) {
		t.Errorf("tail = %v", got[len(got)-1])
	}
}

func TestFlip(t *testing.T) {
	p := [5]byte{0xee, 0x5f, 0x01, 0x8c, 0x02}
	for _, tc := range []struct {
		bit  int
		want [5]byte
	}{
		{0, [5]byte{0xee, 0x5f, 0x01, 0x8c, 0x82}},
		{7, [5]byte{0xee, 0x5f, 0x01, 0x8c, 0x03}},
		{8, [5]byte{0xee, 0x5f, 0x01, 0x0c, 0x02}},
		{39, [5]byte{0xef, 0x5f, 0x01, 0x8c, 0x02}},
	} {
		if got := Flip(p, tc.bit); got != tc.want {
			t.Errorf("Flip(%d) = %x, want %x", tc.bit, got, tc.want)
		}
	}
}
