// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	logger "github.com/sirupsen/logrus"
)

const mqttTimeout = 5 * time.Second

// publisher forwards readings off the host.
type publisher interface {
	Publish(r reading) error
	Close()
}

type noopPublisher struct{}

func (noopPublisher) Publish(reading) error { return nil }
func (noopPublisher) Close()                {}

type mqttPublisher struct {
	c       mqtt.Client
	topic   string
	timeout time.Duration
}

// newMQTTPublisher connects to the broker in c.
func newMQTTPublisher(c *config, log logger.FieldLogger) (*mqttPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(c.broker).
		SetClientID(c.clientID).
		SetConnectTimeout(mqttTimeout).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warnf("mqtt: connection lost: %v", err)
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Infof("mqtt: connected to %s", c.broker)
		})
	if c.username != "" {
		opts.SetUsername(c.username)
		opts.SetPassword(c.password)
	}
	client := mqtt.NewClient(opts)
	t := client.Connect()
	if !t.WaitTimeout(mqttTimeout) {
		return nil, fmt.Errorf("mqtt: connecting to %s timed out", c.broker)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connecting to %s: %w", c.broker, err)
	}
	return &mqttPublisher{c: client, topic: c.topic, timeout: mqttTimeout}, nil
}

// Publish sends r as JSON at QoS 1.
func (m *mqttPublisher) Publish(r reading) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	t := m.c.Publish(m.topic, 1, false, b)
	if !t.WaitTimeout(m.timeout) {
		return errors.New("mqtt: publish timed out")
	}
	return t.Error()
}

func (m *mqttPublisher) Close() {
	m.c.Disconnect(250)
}
