// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/singlewire/dht22"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use gpioreg GPIO pin registry to find the pin the sensor data line is
	// wired to.
	p := gpioreg.ByName("GPIO4")
	if p == nil {
		log.Fatal("failed to find GPIO4")
	}

	// Measure how fast this host polls the pin.
	cost, err := dht22.Calibrate(p, 100000)
	if err != nil {
		log.Fatal(err)
	}
	d, err := dht22.New(p, &dht22.Opts{LoopCost: cost})
	if err != nil {
		log.Fatalf("failed to initialize dht22: %v", err)
	}
	defer d.Halt()

	// The sensor needs 2 seconds between measurements.
	for i := 0; i < 3; i++ {
		time.Sleep(2 * time.Second)
		if !d.IsIdle() {
			fmt.Println("line busy")
			continue
		}
		var f dht22.Frame
		err := d.Measure(&f)
		var c dht22.Code
		switch {
		case err == nil:
			fmt.Printf("raw %s\n", f)
		case errors.As(err, &c):
			fmt.Printf("transaction failed: %s\n", c)
		default:
			log.Fatal(err)
		}
	}
}
