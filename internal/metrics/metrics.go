// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScannerArms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clearance_scanner_arms_total",
		Help: "Number of scanner arm requests accepted.",
	})

	ScanReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clearance_scan_reports_total",
		Help: "Number of scan reports accepted from armed devices.",
	})

	ScanRetrievals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clearance_scan_retrievals_total",
		Help: "Scan retrieval polls by outcome.",
	}, []string{"outcome"})

	ClearanceUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clearance_status_updates_total",
		Help: "Clearance status updates by department and resulting status.",
	}, []string{"department", "status"})

	TagResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clearance_tag_resolutions_total",
		Help: "RFID tag resolutions by result.",
	}, []string{"result"})
)
