// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime *prometheus.HistogramVec
	dependencies *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	h, err := m.responseTime.GetMetricWith(m.labels(tags, "route", "status"))
	if err != nil {
		return err
	}

	h.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	g, err := m.dependencies.GetMetricWith(m.labels(tags, "component"))
	if err != nil {
		return err
	}

	g.Set(value)

	return nil
}

// labels keeps only the label names the vector was declared with, missing ones are left empty
func (m *Monitor) labels(tags map[string]string, names ...string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}

	for _, name := range names {
		l[name] = tags[name]
	}

	return l
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "http_response_time_seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "route", "status"},
	)

	if err := prometheus.Register(m.responseTime); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

func (m *Monitor) registerGauges() {
	m.dependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"service", "component"},
	)

	if err := prometheus.Register(m.dependencies); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()

	return m
}
