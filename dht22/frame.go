// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22

import (
	"fmt"

	"github.com/GermanBionicSystems/singlewire/common"
)

// FrameSize is the number of bytes sent by the sensor in one transaction.
const FrameSize = 5

// Frame is the payload of one transaction.
//
// Index 0 is the checksum and indexes 1 to 4 hold the data. The sensor sends
// index 4 first: f[4] and f[3] are the humidity, most significant byte
// first, f[2] and f[1] the temperature.
type Frame [FrameSize]byte

// Checksum returns the checksum computed over the data bytes.
func (f *Frame) Checksum() byte {
	return common.Sum8(f[1:])
}

// Valid reports whether the received checksum matches the data.
func (f *Frame) Valid() bool {
	return f[0] == f.Checksum()
}

// Wire returns the bytes in the order they were sent on the line.
func (f *Frame) Wire() [FrameSize]byte {
	return [FrameSize]byte{f[4], f[3], f[2], f[1], f[0]}
}

func (f Frame) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x:%02x", f[4], f[3], f[2], f[1], f[0])
}
