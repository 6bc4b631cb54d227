// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Budget is a number of polling iterations.
type Budget uint32

// CountDelay converts d into the number of polling iterations that take d
// when one iteration costs loopCost. A positive d never yields 0.
func CountDelay(d, loopCost time.Duration) Budget {
	if d <= 0 || loopCost <= 0 {
		return 0
	}
	n := d / loopCost
	if n < 1 {
		return 1
	}
	if n > 1<<32-1 {
		return 1<<32 - 1
	}
	return Budget(n)
}

// fastReader is implemented by host pins that can be read without going
// through the kernel, like the bcm283x ones.
type fastReader interface {
	FastRead() gpio.Level
}

// reader returns the fastest level accessor p supports.
func reader(p gpio.PinIn) func() gpio.Level {
	if f, ok := p.(fastReader); ok {
		return f.FastRead
	}
	return p.Read
}

// WaitFor polls p until it reads l, spending at most b iterations.
//
// It returns the iterations left when l was observed, the observing read
// included, or 0 when b ran out first. A non-zero result is both a success
// and a measure of how long the wait took.
func WaitFor(p gpio.PinIn, l gpio.Level, b Budget) Budget {
	return waitFor(reader(p), l, b)
}

func waitFor(read func() gpio.Level, l gpio.Level, b Budget) Budget {
	for ; b != 0; b-- {
		if read() == l {
			return b
		}
	}
	return 0
}

// Calibrate measures the cost of one WaitFor iteration on p by polling it
// for up to iterations rounds. The result is meant for Opts.LoopCost.
//
// p is first made a pulled-up input, the mode New and Read poll it in.
//
// The pin should be stable while calibrating; an edge cuts the measurement
// short but does not invalidate it.
func Calibrate(p gpio.PinIn, iterations int) (time.Duration, error) {
	if iterations <= 0 {
		return 0, errors.New("dht22: invalid iteration count")
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return 0, fmt.Errorf("dht22: configuring input: %w", err)
	}
	read := reader(p)
	b := Budget(iterations)
	target := !read()
	start := time.Now()
	left := waitFor(read, target, b)
	elapsed := time.Since(start)
	used := b - left + 1
	if left == 0 {
		used = b
	}
	cost := elapsed / time.Duration(used)
	if cost <= 0 {
		cost = time.Nanosecond
	}
	return cost, nil
}
