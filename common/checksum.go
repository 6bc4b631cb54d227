// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages, such as
// the checksum of a sensor frame.
package common

// Sum8 returns the sum of bytes truncated to 8 bits. It is the checksum
// carried by the AOSONG single-wire sensors (DHT22, AM2302).
func Sum8(bytes []byte) byte {
	var sum byte
	for _, val := range bytes {
		sum += val
	}
	return sum
}
