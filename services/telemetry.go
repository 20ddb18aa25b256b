package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_queries_total",
		Help: "SQL statements executed, by result (ok, connection, query).",
	}, []string{"result"})
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "securecheck_query_duration_seconds",
		Help:    "Duration of one statement including connect and close.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
	})
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_predictions_total",
		Help: "Predictions served, by source (matched, fallback).",
	}, []string{"source"})
	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securecheck_events_published_total",
		Help: "Prediction events published, by sink and result.",
	}, []string{"sink", "result"})
	PageRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securecheck_page_renders_total",
		Help: "Dashboard page renders.",
	})
)
