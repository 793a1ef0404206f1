package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChallengeFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordwhiz_challenge_fetch_total",
			Help: "Challenges served, by mode and source",
		},
		[]string{"mode", "source"},
	)

	GradeOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordwhiz_grade_total",
			Help: "Graded answers, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	LLMLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordwhiz_llm_request_duration_seconds",
			Help:    "Duration of LLM provider requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"model", "purpose", "success"},
	)

	SpeechFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordwhiz_speech_failures_total",
			Help: "Swallowed audio subsystem failures, by stage",
		},
		[]string{"stage"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(ChallengeFetches)
		prometheus.MustRegister(GradeOutcomes)
		prometheus.MustRegister(LLMLatency)
		prometheus.MustRegister(SpeechFailures)
	})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	Init()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
