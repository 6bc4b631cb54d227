// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dht22test simulates the single-wire line of a DHT22 sensor.
//
// Pin plays a train of pulses with one tick elapsing on each Read, so a
// decoder polling it sees exactly the pulse widths it is given, in polling
// iterations, whatever the speed of the host running the test.
package dht22test

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Pulse is a level held on the line for a number of ticks.
type Pulse struct {
	L     gpio.Level
	Ticks int
}

// Pin is a gpio.PinIO with a sensor behind it.
//
// Each time the host drives the line low, the sensor arms: the following
// Reads play Train from its start, one tick per Read. Before the first start
// pulse and once Train is over, Read returns Idle. While the host drives the
// line, Read returns the driven level.
//
// Modify its members before handing it to the driver.
type Pin struct {
	gpiotest.Pin

	Idle  gpio.Level
	Train []Pulse

	// Falls is the number of times the host drove the line low.
	Falls int
	// Driven is true while the pin is an output.
	Driven bool
	// Reads is the number of ticks elapsed since the last start pulse.
	Reads int

	armed bool
	out   gpio.Level
	pulse int // index in Train
	left  int // ticks left in Train[pulse]
}

// NewPin returns a Pin named GPIO4 that plays train after each start pulse
// and rests at idle otherwise.
func NewPin(idle gpio.Level, train ...Pulse) *Pin {
	p := &Pin{Idle: idle, Train: train}
	p.N = "GPIO4"
	p.Num = 4
	return p
}

// Arm starts playing Train as if the host had just sent a start pulse.
func (p *Pin) Arm() {
	p.Lock()
	defer p.Unlock()
	p.arm()
}

func (p *Pin) arm() {
	p.armed = true
	p.pulse = 0
	p.left = 0
	p.Reads = 0
	if len(p.Train) != 0 {
		p.left = p.Train[0].Ticks
	}
}

// In implements gpio.PinIn. It releases the line without touching the
// train.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.Lock()
	defer p.Unlock()
	p.Driven = false
	if pull != gpio.PullNoChange {
		p.P = pull
	}
	return nil
}

// Out implements gpio.PinOut. Driving the line low arms the sensor.
func (p *Pin) Out(l gpio.Level) error {
	p.Lock()
	defer p.Unlock()
	p.Driven = true
	p.out = l
	if l == gpio.Low {
		p.Falls++
		p.arm()
	}
	return nil
}

// Read implements gpio.PinIn. It consumes one tick.
func (p *Pin) Read() gpio.Level {
	p.Lock()
	defer p.Unlock()
	if p.Driven {
		return p.out
	}
	if !p.armed {
		return p.Idle
	}
	p.Reads++
	// Skip the pulses that are over, zero length ones included.
	for p.pulse < len(p.Train) && p.left <= 0 {
		p.pulse++
		if p.pulse < len(p.Train) {
			p.left = p.Train[p.pulse].Ticks
		}
	}
	if p.pulse >= len(p.Train) {
		return p.Idle
	}
	p.left--
	return p.Train[p.pulse].L
}

var _ gpio.PinIO = &Pin{}
