// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/GermanBionicSystems/singlewire/dht22"
	logger "github.com/sirupsen/logrus"
)

// sensor is the part of *dht22.Dev used by the sampler.
type sensor interface {
	IsIdle() bool
	Measure(f *dht22.Frame) error
}

// reading is the outcome of one transaction, as published and served.
type reading struct {
	Time   time.Time `json:"time"`
	Result string    `json:"result"`
	// Frame is the hex encoded frame in wire order. It is only set when all
	// 40 bits were received.
	Frame    string `json:"frame,omitempty"`
	Checksum bool   `json:"checksum"`
}

type sampler struct {
	dev sensor
	pub publisher
	log logger.FieldLogger
	now func() time.Time

	mu   sync.Mutex
	last *reading
}

func newSampler(dev sensor, pub publisher, log logger.FieldLogger) *sampler {
	return &sampler{dev: dev, pub: pub, log: log, now: time.Now}
}

// run samples once per interval until ctx is canceled.
func (s *sampler) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		s.sample()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// sample runs one transaction unless the line is busy. It returns false when
// the measurement was skipped.
func (s *sampler) sample() (reading, bool) {
	if !s.dev.IsIdle() {
		promLineBusy.Inc()
		s.log.Warn("dht22: line busy, skipping measurement")
		return reading{}, false
	}

	var f dht22.Frame
	start := s.now()
	err := s.dev.Measure(&f)
	r := reading{Time: start, Result: dht22.OK.String()}
	promDuration.Observe(s.now().Sub(start).Seconds())

	var c dht22.Code
	switch {
	case err == nil:
		for i, b := range f {
			promFrameByte.WithLabelValues(strconv.Itoa(i)).Set(float64(b))
		}
		promLastSuccess.Set(float64(start.UnixNano()) / 1e9)
		s.log.WithField("frame", f.String()).Debug("dht22: measured")
	case errors.As(err, &c):
		r.Result = c.String()
		s.log.WithField("result", r.Result).Warn("dht22: transaction failed")
	default:
		r.Result = "error"
		s.log.Errorf("dht22: %v", err)
	}
	if err == nil || c == dht22.ChecksumError {
		w := f.Wire()
		r.Frame = hex.EncodeToString(w[:])
		r.Checksum = f.Valid()
	}
	promTransactions.WithLabelValues(r.Result).Inc()

	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()

	if err := s.pub.Publish(r); err != nil {
		s.log.Warnf("publishing reading: %v", err)
	}
	return r, true
}

func (s *sampler) lastReading() (reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return reading{}, false
	}
	return *s.last, true
}

// ServeHTTP returns the last reading as JSON.
func (s *sampler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	r, ok := s.lastReading()
	if !ok {
		http.Error(w, "no reading yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(r); err != nil {
		s.log.Warnf("writing reading: %v", err)
	}
}
