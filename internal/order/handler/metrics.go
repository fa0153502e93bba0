package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders that passed verification and were persisted",
		},
	)

	ordersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "microshop",
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Total number of orders rejected by verification, by reason",
		},
		[]string{"reason"},
	)
)
