// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import "github.com/prometheus/client_golang/prometheus"

var promTransactions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dht22_transactions_total",
		Help: "Transactions by result",
	},
	[]string{"result"},
)

var promLineBusy = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "dht22_line_busy_total",
		Help: "Measurements skipped because the line was not idle",
	},
)

var promDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "dht22_transaction_duration_seconds",
		Help:    "Duration of a transaction, start pulse included",
		Buckets: []float64{.002, .004, .006, .008, .01, .015, .02, .05},
	},
)

var promFrameByte = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dht22_frame_byte",
		Help: "Raw bytes of the last valid frame, index 0 is the checksum",
	},
	[]string{"index"},
)

var promLastSuccess = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "dht22_last_success_timestamp_seconds",
		Help: "Time of the last valid frame",
	},
)

func init() {
	prometheus.MustRegister(
		promTransactions,
		promLineBusy,
		promDuration,
		promFrameByte,
		promLastSuccess)
}
