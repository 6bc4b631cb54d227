// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// dht22-exporter periodically reads a DHT22 sensor and exports the raw
// frames as Prometheus metrics, optionally publishing them over MQTT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/singlewire/dht22"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	c, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		return err
	}
	log := logger.StandardLogger()
	if c.verbose {
		log.SetLevel(logger.DebugLevel)
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	p := gpioreg.ByName(c.pin)
	if p == nil {
		return fmt.Errorf("failed to find pin %q", c.pin)
	}

	cost := c.loopCost
	if c.calibrate > 0 {
		if cost, err = dht22.Calibrate(p, c.calibrate); err != nil {
			return err
		}
		log.Infof("polling cost on %s: %s", p, cost)
	}
	d, err := dht22.New(p, &dht22.Opts{LoopCost: cost, Logger: log})
	if err != nil {
		return err
	}
	defer d.Halt()
	log.Infof("%s: transactions take at most %s", d, d.MaxDuration())

	var pub publisher = noopPublisher{}
	if c.broker != "" {
		m, err := newMQTTPublisher(c, log)
		if err != nil {
			return err
		}
		pub = m
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSampler(d, pub, log)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", s)
	srv := &http.Server{Addr: c.listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Infof("serving on %s", c.listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	done := make(chan struct{})
	go func() {
		s.run(ctx, c.interval)
		close(done)
	}()

	select {
	case <-ctx.Done():
	case err = <-errc:
		stop()
	}
	<-done
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err2 := srv.Shutdown(shutdown); err == nil {
		err = err2
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "dht22-exporter: %s.\n", err)
		os.Exit(1)
	}
}
