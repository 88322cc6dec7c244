// Package metrics exposes Prometheus counters for the scan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts processed scans by outcome
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conexa_scans_total",
		Help: "Total number of processed QR scans by outcome.",
	}, []string{"outcome"})

	// AwardPointsTotal accumulates the points granted through scans
	AwardPointsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conexa_award_points_total",
		Help: "Total points granted through successful scans.",
	})
)

// ObserveScan records one processed scan
func ObserveScan(success bool, points int) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	ScansTotal.WithLabelValues(outcome).Inc()

	if success && points > 0 {
		AwardPointsTotal.Add(float64(points))
	}
}
