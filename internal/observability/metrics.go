package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APICollector bundles Prometheus metrics for the transform API and provides
// helpers to wire them into HTTP handlers.
type APICollector struct {
	gatherer prometheus.Gatherer

	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec

	Transforms *prometheus.CounterVec
}

// NewAPICollector registers the API Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewAPICollector(reg prometheus.Registerer) (*APICollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geodesy_requests_total",
		Help: "Total number of handled API requests, labeled by route and HTTP status code.",
	}, []string{"route", "code"})
	requests, err := registerCounterVec(reg, requests, "geodesy_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodesy_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})
	durations, err = registerHistogramVec(reg, durations, "geodesy_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	transforms := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geodesy_transforms_total",
		Help: "Total number of coordinate transforms performed, labeled by source and target frame.",
	}, []string{"source", "target"})
	transforms, err = registerCounterVec(reg, transforms, "geodesy_transforms_total")
	if err != nil {
		return nil, err
	}

	return &APICollector{
		gatherer:   gatherer,
		Requests:   requests,
		Durations:  durations,
		Transforms: transforms,
	}, nil
}

// Middleware wraps an HTTP handler, recording request counts and durations
// under the given route label.
func (c *APICollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c.Requests != nil {
			c.Requests.WithLabelValues(route, strconv.Itoa(sw.code)).Inc()
		}
		if c.Durations != nil {
			c.Durations.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

// RecordTransform counts one conversion between the named frames. SRID-backed
// projections report their code as the frame name (e.g. "srid:2154").
func (c *APICollector) RecordTransform(source, target string) {
	if c == nil || c.Transforms == nil {
		return
	}
	c.Transforms.WithLabelValues(source, target).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *APICollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
