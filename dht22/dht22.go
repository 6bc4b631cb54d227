// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht22

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Opts holds the configuration options for the device.
//
// The timeouts are converted into polling budgets once, in New, using
// LoopCost. Zero fields take the value in DefaultOpts.
type Opts struct {
	// LoopCost is the assumed duration of one polling iteration. It is host
	// specific; use Calibrate to measure it. Default is 1µs.
	LoopCost time.Duration
	// StartPulse is how long StartMeasurement holds the line low. The sensor
	// requires at least 1ms. Default is 1ms.
	StartPulse time.Duration
	// AckTimeout bounds each phase of the acknowledgment. The first phase,
	// waiting for the released line to rise, gets half of it. Default is
	// 100µs.
	AckTimeout time.Duration
	// SyncTimeout bounds the low phase preceding each data bit. The sensor
	// holds it for 50µs. Default is 100µs.
	SyncTimeout time.Duration
	// DataTimeout bounds the high phase of each data bit. The sensor holds it
	// for 26-28µs for a 0 and 70µs for a 1. Default is 80µs.
	DataTimeout time.Duration
	// BitThreshold is the high phase length above which a bit reads as 1. It
	// must be below DataTimeout. Default is 40µs.
	BitThreshold time.Duration
	// IdleTimeout is the window used by IsIdle. Default is 250µs.
	IdleTimeout time.Duration
	// Logger receives diagnostics. Default discards them.
	Logger logrus.FieldLogger
	// Critical guards Read. Default is LockThread.
	Critical Critical
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	LoopCost:     time.Microsecond,
	StartPulse:   time.Millisecond,
	AckTimeout:   100 * time.Microsecond,
	SyncTimeout:  100 * time.Microsecond,
	DataTimeout:  80 * time.Microsecond,
	BitThreshold: 40 * time.Microsecond,
	IdleTimeout:  250 * time.Microsecond,
}

// Dev is a handle to a DHT22 sensor on a single GPIO line.
type Dev struct {
	p        gpio.PinIO
	read     func() gpio.Level
	opts     Opts
	log      logrus.FieldLogger
	critical Critical

	ackStart  Budget // first acknowledgment phase
	ack       Budget // other acknowledgment phases
	sync      Budget
	data      Budget
	threshold Budget // remaining data budget below which a bit is 1
	idle      Budget

	mu sync.Mutex
}

// New returns a Dev reading the sensor connected to p and enables the
// pull-up on the line. The Opts can be nil.
func New(p gpio.PinIO, opts *Opts) (*Dev, error) {
	if p == nil {
		return nil, errors.New("dht22: nil pin")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := withDefaults(*opts)
	if o.BitThreshold >= o.DataTimeout {
		return nil, errors.New("dht22: BitThreshold must be below DataTimeout")
	}
	d := &Dev{
		p:        p,
		read:     reader(p),
		opts:     o,
		log:      o.Logger,
		critical: o.Critical,
		ackStart: CountDelay(o.AckTimeout/2, o.LoopCost),
		ack:      CountDelay(o.AckTimeout, o.LoopCost),
		sync:     CountDelay(o.SyncTimeout, o.LoopCost),
		data:     CountDelay(o.DataTimeout, o.LoopCost),
		idle:     CountDelay(o.IdleTimeout, o.LoopCost),
	}
	if d.data < 2 {
		return nil, fmt.Errorf("dht22: LoopCost %s too coarse for DataTimeout %s", o.LoopCost, o.DataTimeout)
	}
	// The threshold is the same fraction of the data budget as BitThreshold
	// is of DataTimeout.
	d.threshold = Budget(uint64(d.data) * uint64(o.BitThreshold) / uint64(o.DataTimeout))
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("dht22: enabling pull-up: %w", err)
	}
	return d, nil
}

func withDefaults(o Opts) Opts {
	def := DefaultOpts
	if o.LoopCost <= 0 {
		o.LoopCost = def.LoopCost
	}
	if o.StartPulse <= 0 {
		o.StartPulse = def.StartPulse
	}
	if o.AckTimeout <= 0 {
		o.AckTimeout = def.AckTimeout
	}
	if o.SyncTimeout <= 0 {
		o.SyncTimeout = def.SyncTimeout
	}
	if o.DataTimeout <= 0 {
		o.DataTimeout = def.DataTimeout
	}
	if o.BitThreshold <= 0 {
		o.BitThreshold = def.BitThreshold
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = def.IdleTimeout
	}
	if o.Logger == nil {
		o.Logger = discard()
	}
	if o.Critical == nil {
		o.Critical = LockThread
	}
	return o
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// StartMeasurement drives the line low for Opts.StartPulse and releases it,
// asking the sensor to send a frame. Read must be called right after.
//
// The line is always left as a pulled-up input, even if driving it low
// failed.
func (d *Dev) StartMeasurement() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.start()
}

func (d *Dev) start() error {
	d.log.Debug("dht22: start")
	errOut := d.p.Out(gpio.Low)
	if errOut == nil {
		sleep(d.opts.StartPulse)
	}
	if err := d.p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("dht22: releasing line: %w", err)
	}
	if errOut != nil {
		return fmt.Errorf("dht22: driving line low: %w", errOut)
	}
	return nil
}

// Read receives one frame from the sensor into f. It must follow
// StartMeasurement.
//
// Read returns nil or exactly one Code. When the acknowledgment fails f is
// untouched; when a data bit times out the bytes of f are undefined.
//
// The whole transaction runs inside Opts.Critical and takes at most
// MaxDuration.
func (d *Dev) Read(f *Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.receive(f)
}

// Measure starts a measurement and reads the resulting frame into f. It
// does not retry.
func (d *Dev) Measure(f *Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.start(); err != nil {
		return err
	}
	return d.receive(f)
}

func (d *Dev) receive(f *Frame) error {
	d.log.Debug("dht22: read")

	defer d.critical()()

	if err := d.waitForAck(); err != nil {
		return err
	}

	for i := FrameSize - 1; i >= 0; i-- {
		for j := 0; j < 8; j++ {
			f[i] <<= 1
			// The low phase is only specified as about 50µs.
			if waitFor(d.read, gpio.High, d.sync) == 0 {
				d.log.WithFields(logrus.Fields{"byte": i, "bit": j}).Debug("dht22: sync timeout")
				return SyncTimeout
			}
			left := waitFor(d.read, gpio.Low, d.data)
			if left == 0 {
				d.log.WithFields(logrus.Fields{"byte": i, "bit": j}).Debug("dht22: data timeout")
				return DataTimeout
			}
			if left < d.threshold {
				f[i] |= 1
			}
		}
	}
	d.log.Debugf("dht22: data %s", f)

	if !f.Valid() {
		d.log.Debugf("dht22: checksum %d, want %d", f[0], f.Checksum())
		return ChecksumError
	}
	return nil
}

// waitForAck releases the line and follows the acknowledgment: the line
// rises, the sensor pulls it low then high for 80µs each, then low again to
// start the first bit.
func (d *Dev) waitForAck() error {
	if err := d.p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("dht22: configuring input: %w", err)
	}
	if waitFor(d.read, gpio.High, d.ackStart) == 0 {
		d.log.Debug("dht22: not present")
		return NotPresent
	}
	if waitFor(d.read, gpio.Low, d.ack) == 0 {
		d.log.Debug("dht22: acknowledgment missing")
		return AckMissing
	}
	if waitFor(d.read, gpio.High, d.ack) == 0 {
		d.log.Debug("dht22: acknowledgment too long")
		return AckTooLong
	}
	if waitFor(d.read, gpio.Low, d.ack) == 0 {
		d.log.Debug("dht22: sync too long")
		return SyncTimeout
	}
	return nil
}

// IsIdle reports whether the line is quiescent: it must be high within
// Opts.IdleTimeout and then stay high for another Opts.IdleTimeout.
//
// It is a cheap check before StartMeasurement and does not guard itself
// against preemption.
func (d *Dev) IsIdle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if waitFor(d.read, gpio.High, d.idle) == 0 {
		return false
	}
	return waitFor(d.read, gpio.Low, d.idle) == 0
}

// MaxDuration returns the longest a Read can take when every phase uses its
// whole budget, assuming Opts.LoopCost is accurate.
func (d *Dev) MaxDuration() time.Duration {
	n := uint64(d.ackStart) + 3*uint64(d.ack) + 8*FrameSize*(uint64(d.sync)+uint64(d.data))
	return time.Duration(n) * d.opts.LoopCost
}

func (d *Dev) String() string {
	return fmt.Sprintf("dht22{%s}", d.p)
}

// Halt leaves the line as a pulled-up input.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.p.In(gpio.PullUp, gpio.NoEdge)
}

var sleep = time.Sleep

var _ conn.Resource = &Dev{}
