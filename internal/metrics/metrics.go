package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success|failure
	)

	ListingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listings_created_total",
			Help: "Listings created",
		},
	)

	ReportsFiled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_filed_total",
			Help: "Abuse reports filed",
		},
	)

	UploadsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Image uploads rejected for size or type",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(ListingsCreated)
	prometheus.MustRegister(ReportsFiled)
	prometheus.MustRegister(UploadsRejected)
}
