// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22

// Code is the outcome of one transaction.
//
// Every value but OK implements error and is returned as is by Read, so it
// can be compared directly or matched with errors.As.
type Code uint8

const (
	// OK is never returned as an error; Read returns nil instead.
	OK Code = iota
	// NotPresent means the line never went high after the start pulse. The
	// sensor is likely disconnected or unpowered.
	NotPresent
	// AckMissing means the sensor did not pull the line low to acknowledge.
	AckMissing
	// AckTooLong means the low phase of the acknowledgment did not end.
	AckTooLong
	// SyncTimeout means a low phase, either closing the acknowledgment or
	// preceding a data bit, did not end.
	SyncTimeout
	// DataTimeout means the high phase of a data bit did not end.
	DataTimeout
	// ChecksumError means 40 bits were received in time but their checksum
	// does not match.
	ChecksumError
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case NotPresent:
		return "not_present"
	case AckMissing:
		return "ack_missing"
	case AckTooLong:
		return "ack_too_long"
	case SyncTimeout:
		return "sync_timeout"
	case DataTimeout:
		return "data_timeout"
	case ChecksumError:
		return "checksum_error"
	default:
		return "unknown"
	}
}

func (c Code) Error() string {
	switch c {
	case OK:
		return "dht22: ok"
	case NotPresent:
		return "dht22: sensor not present"
	case AckMissing:
		return "dht22: acknowledgment missing"
	case AckTooLong:
		return "dht22: acknowledgment too long"
	case SyncTimeout:
		return "dht22: timed out waiting for bit sync"
	case DataTimeout:
		return "dht22: timed out waiting for end of bit"
	case ChecksumError:
		return "dht22: checksum mismatch"
	default:
		return "dht22: unknown error"
	}
}
