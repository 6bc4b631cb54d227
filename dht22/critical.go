// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Critical enters a section during which the caller should not be
// interrupted and returns the function that leaves it.
//
// Read uses it as
//
//	defer d.critical()()
//
// so the section is left on every return path.
type Critical func() (leave func())

// LockThread is the default Critical. It wires the goroutine to its OS thread
// and suspends the garbage collector, which are the closest a Go program
// gets to masking interrupts.
//
// The GC setting is process wide: sections entered concurrently, from
// different Devs, share one suspension. The first to enter saves the setting
// and the last to leave restores it.
func LockThread() func() {
	runtime.LockOSThread()
	gcMu.Lock()
	if gcDepth == 0 {
		gcSaved = debug.SetGCPercent(-1)
	}
	gcDepth++
	gcMu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			gcMu.Lock()
			gcDepth--
			if gcDepth == 0 {
				debug.SetGCPercent(gcSaved)
			}
			gcMu.Unlock()
			runtime.UnlockOSThread()
		})
	}
}

var (
	gcMu    sync.Mutex
	gcDepth int
	gcSaved int
)
