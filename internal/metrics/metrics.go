// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics collects and exposes Prometheus counters for the
// notification pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service layer records through.
type Recorder interface {
	NotificationCreated(typ string)
	NotificationFailed(typ string)
	EmailSent()
	EmailFailed()
	FanOutPanic()
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	notificationsCreated *prometheus.CounterVec
	notificationsFailed  *prometheus.CounterVec
	emailsSent           prometheus.Counter
	emailsFailed         prometheus.Counter
	fanOutPanics         prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		notificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commonroom_notifications_created_total",
			Help: "Notifications persisted, by type.",
		}, []string{"type"}),
		notificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commonroom_notifications_failed_total",
			Help: "Notification creations that failed, by type.",
		}, []string{"type"}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commonroom_notification_emails_sent_total",
			Help: "Notification emails handed to the mailer.",
		}),
		emailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commonroom_notification_emails_failed_total",
			Help: "Notification email sends that returned an error.",
		}),
		fanOutPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commonroom_fanout_panics_total",
			Help: "Panics recovered inside detached fan-out tasks.",
		}),
	}

	reg.MustRegister(
		c.notificationsCreated,
		c.notificationsFailed,
		c.emailsSent,
		c.emailsFailed,
		c.fanOutPanics,
	)

	return c
}

func (c *Collector) NotificationCreated(typ string) {
	c.notificationsCreated.WithLabelValues(typ).Inc()
}

func (c *Collector) NotificationFailed(typ string) {
	c.notificationsFailed.WithLabelValues(typ).Inc()
}

func (c *Collector) EmailSent() { c.emailsSent.Inc() }

func (c *Collector) EmailFailed() { c.emailsFailed.Inc() }

func (c *Collector) FanOutPanic() { c.fanOutPanics.Inc() }

// Nop is a Recorder that discards everything. Useful in tests and when
// metrics are disabled.
type Nop struct{}

func (Nop) NotificationCreated(string) {}
func (Nop) NotificationFailed(string)  {}
func (Nop) EmailSent()                 {}
func (Nop) EmailFailed()               {}
func (Nop) FanOutPanic()               {}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
