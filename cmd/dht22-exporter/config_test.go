// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestParseConfig_defaults(t *testing.T) {
	c, err := parseConfig(nil, env(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "GPIO4", c.pin)
	assert.Equal(t, 10*time.Second, c.interval)
	assert.Equal(t, ":9122", c.listen)
	assert.Equal(t, time.Duration(0), c.loopCost)
	assert.Equal(t, 0, c.calibrate)
	assert.Empty(t, c.broker)
	assert.Empty(t, c.username)
	assert.False(t, c.verbose)
}

func TestParseConfig(t *testing.T) {
	args := []string{
		"-pin", "GPIO17",
		"-interval", "2s",
		"-loop-cost", "250ns",
		"-calibrate", "100000",
		"-mqtt-broker", "tcp://broker:1883",
		"-mqtt-topic", "greenhouse/dht22",
		"-v",
	}
	c, err := parseConfig(args, env(map[string]string{"MQTT_USERNAME": "u", "MQTT_PASSWORD": "p"}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "GPIO17", c.pin)
	assert.Equal(t, 2*time.Second, c.interval)
	assert.Equal(t, 250*time.Nanosecond, c.loopCost)
	assert.Equal(t, 100000, c.calibrate)
	assert.Equal(t, "tcp://broker:1883", c.broker)
	assert.Equal(t, "greenhouse/dht22", c.topic)
	assert.Equal(t, "u", c.username)
	assert.Equal(t, "p", c.password)
	assert.True(t, c.verbose)
}

func TestParseConfig_invalid(t *testing.T) {
	for _, args := range [][]string{
		{"-interval", "1s"},
		{"-pin", ""},
		{"-loop-cost", "-1us"},
		{"-calibrate", "-1"},
		{"-mqtt-broker", "tcp://broker:1883", "-mqtt-topic", ""},
		{"-unknown"},
		{"extra"},
	} {
		_, err := parseConfig(args, env(nil), io.Discard)
		assert.Error(t, err, "%q", args)
	}
}
