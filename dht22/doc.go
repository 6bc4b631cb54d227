// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dht22 decodes the single-wire pulse-width protocol of the AOSONG
// DHT22 / AM2302 humidity and temperature sensor over one GPIO line.
//
// A transaction is a host start pulse, a two-phase acknowledgment from the
// sensor and 40 data bits whose value is carried by the length of their high
// phase. The driver never reads a clock while decoding: every wait is a
// bounded busy-loop and the number of iterations left when the expected edge
// shows up is both the success signal and the pulse width measurement. The
// iteration budgets are derived from Opts.LoopCost, the assumed cost of one
// polling iteration on the host, which Calibrate can measure.
//
// The driver returns the five raw bytes. Converting them to physical units
// and retrying failed transactions is left to the caller; the sensor needs
// about two seconds between transactions.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/Digital+humidity+and+temperature+sensor+AM2302.pdf
package dht22
