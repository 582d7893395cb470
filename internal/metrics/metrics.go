package metrics

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Metric names. The schema is closed: every metric is declared once in New
// and recording against an undeclared name panics.
const (
	APIRequestsTotal       = "api_requests_total"
	APIRequestLatency      = "api_request_latency_seconds"
	APIErrorsTotal         = "api_errors_total"
	OrdersCreatedTotal     = "ecommerce_orders_created_total"
	OrderProcessingLatency = "ecommerce_order_processing_latency_seconds"
	ActiveSessionsGauge    = "ecommerce_active_sessions_gauge"
	InventoryLevelGauge    = "ecommerce_inventory_level_gauge"
)

// Labels re-exports prometheus.Labels so callers don't import the client
// directly.
type Labels = prometheus.Labels

// Registry owns one isolated prometheus registry plus the typed instruments
// declared on it. Instances are independent: tests build their own instead of
// sharing the process-global default registry.
type Registry struct {
	reg        *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

// New declares the full metric schema on a fresh registry.
func New() *Registry {
	r := &Registry{
		reg:        prometheus.NewRegistry(),
		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
		gauges:     map[string]*prometheus.GaugeVec{},
	}

	r.counter(APIRequestsTotal, "Total HTTP requests handled by the API.",
		"method", "endpoint", "status")
	r.histogram(APIRequestLatency, "HTTP request latency in seconds.",
		"method", "endpoint")
	r.counter(APIErrorsTotal, "Total business-logic and internal API errors.",
		"endpoint", "error_type")
	r.counter(OrdersCreatedTotal, "Total order creation attempts.",
		"status", "payment_status")
	r.histogram(OrderProcessingLatency, "Latency to create or update an order.",
		"order_type")
	r.gauge(ActiveSessionsGauge, "Number of in-flight requests.")
	r.gauge(InventoryLevelGauge, "Current stock level of a product.",
		"product_id")

	return r
}

func (r *Registry) counter(name, help string, labels ...string) {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	r.reg.MustRegister(c)
	r.counters[name] = c
}

func (r *Registry) histogram(name, help string, labels ...string) {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help}, labels)
	r.reg.MustRegister(h)
	r.histograms[name] = h
}

func (r *Registry) gauge(name, help string, labels ...string) {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	r.reg.MustRegister(g)
	r.gauges[name] = g
}

// IncCounter increments the counter series for the given label set, creating
// the series on first use. Unknown name or out-of-schema label names panic.
func (r *Registry) IncCounter(name string, labels Labels) {
	c, ok := r.counters[name]
	if !ok {
		panic(fmt.Sprintf("metrics: undeclared counter %q", name))
	}
	c.With(labels).Inc()
}

// ObserveHistogram records one observation on the histogram series.
func (r *Registry) ObserveHistogram(name string, labels Labels, v float64) {
	h, ok := r.histograms[name]
	if !ok {
		panic(fmt.Sprintf("metrics: undeclared histogram %q", name))
	}
	h.With(labels).Observe(v)
}

// SetGauge sets the gauge series to v.
func (r *Registry) SetGauge(name string, labels Labels, v float64) {
	g, ok := r.gauges[name]
	if !ok {
		panic(fmt.Sprintf("metrics: undeclared gauge %q", name))
	}
	g.With(labels).Set(v)
}

// AddGauge adds delta to the gauge series; pass a negative delta to decrement.
func (r *Registry) AddGauge(name string, labels Labels, delta float64) {
	g, ok := r.gauges[name]
	if !ok {
		panic(fmt.Sprintf("metrics: undeclared gauge %q", name))
	}
	g.With(labels).Add(delta)
}

// Render serializes every registered metric to the prometheus text exposition
// format. Structure is deterministic (families and labels are sorted by the
// encoder); safe to call concurrently with writes.
func (r *Registry) Render() (string, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Handler exposes the registry for scraping.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
