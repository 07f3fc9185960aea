// Package metrics exposes Prometheus instrumentation for optimizer runs and
// the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Service owns a private registry so tests can create as many as they need.
type Service struct {
	registry        *prometheus.Registry
	handler         http.Handler
	stageDuration   *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	lastVertices    prometheus.Gauge
	lastEdges       prometheus.Gauge
	lastColors      prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

func NewService() *Service {
	registry := prometheus.NewRegistry()

	s := &Service{
		registry: registry,
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "optimizer_stage_duration_seconds",
			Help:    "Duration of each optimizer stage",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "optimizer_runs_total",
			Help: "Optimizer runs by outcome",
		}, []string{"outcome"}),
		lastVertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "optimizer_last_vertices",
			Help: "Course sections in the most recent conflict graph",
		}),
		lastEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "optimizer_last_edges",
			Help: "Edges in the most recent conflict graph",
		}),
		lastColors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "optimizer_last_colors",
			Help: "Colors used by the most recent run",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		s.stageDuration,
		s.runsTotal,
		s.lastVertices,
		s.lastEdges,
		s.lastColors,
		s.requestDuration,
		collectors.NewGoCollector(),
	)
	s.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return s
}

// ObserveStage implements scheduler.Recorder.
func (s *Service) ObserveStage(stage string, d time.Duration) {
	s.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRun implements scheduler.Recorder.
func (s *Service) ObserveRun(stats scheduler.Stats, valid bool, err error) {
	switch {
	case err != nil:
		s.runsTotal.WithLabelValues(appErrors.FromError(err).Code).Inc()
		return
	case valid:
		s.runsTotal.WithLabelValues("valid").Inc()
	default:
		s.runsTotal.WithLabelValues("invalid").Inc()
	}
	s.lastVertices.Set(float64(stats.Vertices))
	s.lastEdges.Set(float64(stats.Edges))
	s.lastColors.Set(float64(stats.Colors))
}

func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Middleware records request latency per route.
// unmatchedRoute labels requests no route handled, keeping path cardinality bounded.
const unmatchedRoute = "unmatched"

func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		s.requestDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

var _ scheduler.Recorder = (*Service)(nil)
