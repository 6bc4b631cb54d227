// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package singlewire is a container for drivers of sensors speaking the
// AOSONG single-wire protocol over a bare GPIO line.
//
// See the dht22 package for the driver and cmd/dht22-exporter for a ready to
// use sampler.
package singlewire
