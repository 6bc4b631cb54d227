// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// The sensor needs 2 seconds between measurements.
const minInterval = 2 * time.Second

type config struct {
	pin       string
	interval  time.Duration
	listen    string
	loopCost  time.Duration
	calibrate int

	broker   string
	topic    string
	clientID string
	username string
	password string

	verbose bool
}

// parseConfig reads the command line in args and the MQTT credentials from
// the environment through lookup, usually os.LookupEnv.
func parseConfig(args []string, lookup func(string) (string, bool), output io.Writer) (*config, error) {
	c := &config{}
	fs := flag.NewFlagSet("dht22-exporter", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.pin, "pin", "GPIO4", "GPIO pin the sensor data line is connected to")
	fs.DurationVar(&c.interval, "interval", 10*time.Second, "time between measurements, at least 2s")
	fs.StringVar(&c.listen, "listen", ":9122", "address serving /metrics and the last reading")
	fs.DurationVar(&c.loopCost, "loop-cost", 0, "duration of one polling iteration, 0 for the driver default")
	fs.IntVar(&c.calibrate, "calibrate", 0, "measure the polling cost over this many iterations at startup, overrides -loop-cost")
	fs.StringVar(&c.broker, "mqtt-broker", "", "MQTT broker URL, e.g. tcp://localhost:1883; readings are not published when empty")
	fs.StringVar(&c.topic, "mqtt-topic", "sensors/dht22", "MQTT topic readings are published to")
	fs.StringVar(&c.clientID, "mqtt-client-id", "dht22-exporter", "MQTT client ID")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if c.pin == "" {
		return nil, fmt.Errorf("-pin is required")
	}
	if c.interval < minInterval {
		return nil, fmt.Errorf("-interval %s is below the sensor minimum of %s", c.interval, minInterval)
	}
	if c.loopCost < 0 {
		return nil, fmt.Errorf("-loop-cost %s must not be negative", c.loopCost)
	}
	if c.calibrate < 0 {
		return nil, fmt.Errorf("-calibrate %d must not be negative", c.calibrate)
	}
	if c.broker != "" && c.topic == "" {
		return nil, fmt.Errorf("-mqtt-topic is required with -mqtt-broker")
	}
	c.username, _ = lookup("MQTT_USERNAME")
	c.password, _ = lookup("MQTT_PASSWORD")
	return c, nil
}
