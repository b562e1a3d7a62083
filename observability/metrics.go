package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "portal_"

var (
	registerOnce sync.Once

	BillsCreated       prometheus.Counter
	PaymentTransitions *prometheus.CounterVec
	PayoutMarks        *prometheus.CounterVec
)

// Init registers the billing/payout counters exactly once.
func Init() {
	registerOnce.Do(func() {
		BillsCreated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "bills_created_total",
			Help: "Total bills created",
		})
		PaymentTransitions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payment_transitions_total",
				Help: "Payment status transitions by target status",
			},
			[]string{"status"},
		)
		PayoutMarks = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payout_marks_total",
				Help: "Payout mark attempts by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(BillsCreated, PaymentTransitions, PayoutMarks)
	})
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
