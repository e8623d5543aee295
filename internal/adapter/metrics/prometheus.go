package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boost"

// Prometheus implements port.Metrics on its own registry.
type Prometheus struct {
	registry      *prometheus.Registry
	purchases     *prometheus.CounterVec
	prices        *prometheus.HistogramVec
	compensations prometheus.Counter
	cancellations prometheus.Counter
	expirations   prometheus.Counter
	sweepDuration prometheus.Histogram
	sweepFailures prometheus.Counter
	rankingCache  *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(registry)

	return &Prometheus{
		registry: registry,
		purchases: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome.",
		}, []string{"outcome"}),
		prices: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "purchase_price",
			Help:      "Charged price in minor units.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 12),
		}, []string{"package"}),
		compensations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Debits reversed after a failed activation.",
		}),
		cancellations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Boosts cancelled by their owner.",
		}),
		expirations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expirations_total",
			Help:      "Boosts expired by the scheduler.",
		}),
		sweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of expiry sweeps.",
			Buckets:   prometheus.DefBuckets,
		}),
		sweepFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_failures_total",
			Help:      "Boosts the sweep failed to expire.",
		}),
		rankingCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_cache_lookups_total",
			Help:      "Ranking cache lookups by result.",
		}, []string{"result"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (p *Prometheus) PurchaseOutcome(outcome string) {
	p.purchases.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) PurchasePrice(packageID string, price int64) {
	p.prices.WithLabelValues(packageID).Observe(float64(price))
}

func (p *Prometheus) Compensation() { p.compensations.Inc() }

func (p *Prometheus) Cancelled() { p.cancellations.Inc() }

func (p *Prometheus) Expired(n int) {
	if n > 0 {
		p.expirations.Add(float64(n))
	}
}

func (p *Prometheus) SweepDuration(d time.Duration) {
	p.sweepDuration.Observe(d.Seconds())
}

func (p *Prometheus) SweepFailure() { p.sweepFailures.Inc() }

func (p *Prometheus) RankingCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.rankingCache.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (p *Prometheus) ObserveHTTP(route, method string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
