package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contract_approval"

// Collector owns every service metric. It satisfies the Metrics interfaces of the
// ledger, contract and modification usecases and the HTTP metrics middleware.
type Collector struct {
	approvals        *prometheus.CounterVec
	contractsCreated prometheus.Counter
	modifications    *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		approvals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approvals_total",
			Help:      "Approve calls by outcome.",
		}, []string{"result"}),
		contractsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contracts_created_total",
			Help:      "Contracts created.",
		}),
		modifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modifications_total",
			Help:      "Modification requests by outcome.",
		}, []string{"result"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Tracks the latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

func (c *Collector) ApprovalObserved(result string) { c.approvals.WithLabelValues(result).Inc() }

func (c *Collector) ContractCreated() { c.contractsCreated.Inc() }

func (c *Collector) ModificationObserved(result string) {
	c.modifications.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveHTTP(method, route, code string, d time.Duration) {
	c.httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}
