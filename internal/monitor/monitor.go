// Package monitor simulates request processing and exposes the resulting
// Prometheus metrics.
package monitor

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/httpserver"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Monitor struct {
	cfg      config.Monitor
	logger   *zap.Logger
	registry *prometheus.Registry

	requestTime    prometheus.Summary
	requestCount   prometheus.Counter
	temperature    prometheus.Gauge
	requestLatency prometheus.Histogram
	httpRequests   prometheus.Counter
	randomValue    prometheus.Gauge

	mu    sync.Mutex
	rng   *rand.Rand
	sleep SleepFunc
}

type Option func(*Monitor)

// WithSleep replaces the blocking sleep between metric updates.
func WithSleep(fn SleepFunc) Option {
	return func(m *Monitor) { m.sleep = fn }
}

func WithRand(r *rand.Rand) Option {
	return func(m *Monitor) { m.rng = r }
}

func New(cfg config.Monitor, logger *zap.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requestTime: prometheus.NewSummary(prometheus.SummaryOpts{
			Name:       "request_processing_seconds",
			Help:       "Time spent processing request",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		requestCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "request_count",
			Help: "Total request count",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "temperature",
			Help: "Temperature in Celsius",
		}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "request_latency_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_request_count",
			Help: "Total number of HTTP requests served",
		}),
		randomValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "random_value",
			Help: "A random value for demonstration purposes",
		}),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.registry.MustRegister(
		m.requestTime,
		m.requestCount,
		m.temperature,
		m.requestLatency,
		m.httpRequests,
		m.randomValue,
	)
	return m
}

// Registry exposes the collectors, mainly for tests.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// uniform returns a value in [lo, hi).
func (m *Monitor) uniform(lo, hi float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo + m.rng.Float64()*(hi-lo)
}

// Process simulates handling one request and records its metrics.
func (m *Monitor) Process(ctx context.Context) error {
	start := time.Now()
	m.requestCount.Inc()

	processTime := m.uniform(m.cfg.MinProcessTime, m.cfg.MaxProcessTime)
	if err := m.sleep(ctx, time.Duration(processTime*float64(time.Second))); err != nil {
		return err
	}
	m.temperature.Set(m.uniform(m.cfg.MinTemperature, m.cfg.MaxTemperature))

	m.requestTime.Observe(processTime)
	m.requestLatency.Observe(time.Since(start).Seconds())
	return nil
}

// Run calls Process until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := m.Process(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Handler serves /metrics and /random, counting every request.
func (m *Monitor) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/random", m.handleRandom)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpRequests.Inc()
		mux.ServeHTTP(w, r)
	})
}

func (m *Monitor) handleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value := m.uniform(0, 1)
	m.randomValue.Set(value)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]float64{"value": value}); err != nil {
		m.logger.Warn("failed to write response", zap.Error(err))
	}
}

// ListenAndServe runs the metrics server and the processing loop until ctx
// is done or either of them fails.
func (m *Monitor) ListenAndServe(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              m.cfg.Addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		return httpserver.Serve(ctx, srv, m.logger)
	})
	g.Go(func() error {
		m.logger.Info("metrics loop started",
			zap.Float64("minProcessTime", m.cfg.MinProcessTime),
			zap.Float64("maxProcessTime", m.cfg.MaxProcessTime))
		return m.Run(ctx)
	})
	return g.Wait()
}
