package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "product_consumer",
			Name:      "events_processed_total",
			Help:      "Total number of successfully processed order events",
		},
	)

	eventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "product_consumer",
			Name:      "events_failed_total",
			Help:      "Total number of failed order event handling attempts",
		},
	)

	eventsDLQ = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "product_consumer",
			Name:      "events_dlq_total",
			Help:      "Total number of order events written to DLQ",
		},
	)

	commitErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "product_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)
)
