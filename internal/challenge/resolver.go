package challenge

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/metrics"
)

// Request describes which challenge the session wants next.
type Request struct {
	Mode     ModeID
	Unit     int
	Language string
	Student  string
	Online   bool
}

// DefaultFetchTimeout bounds a single online generation.
const DefaultFetchTimeout = 15 * time.Second

// Resolver picks between the generator and the offline bank, and keeps a
// single prefetched challenge for the mode last requested.
type Resolver struct {
	gen     Generator
	bank    *Bank
	logger  *zap.Logger
	timeout time.Duration

	mu   sync.Mutex
	rng  *rand.Rand
	slot *prefetched

	wg sync.WaitGroup
}

type prefetched struct {
	key Request
	ch  Challenge
}

// slotKey is the part of req the generated content depends on. Unit only
// reaches the prompt in unit-spelling.
func slotKey(req Request) Request {
	req.Online = false
	if req.Mode != ModeUnitSpelling {
		req.Unit = 0
	}
	return req
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for fallback traces.
func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

// WithRand sets the random source for offline draws.
func WithRand(rng *rand.Rand) ResolverOption {
	return func(r *Resolver) { r.rng = rng }
}

// NewResolver creates a resolver. gen may be nil, in which case every
// online request falls back to the bank.
func NewResolver(gen Generator, bank *Bank, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		gen:     gen,
		bank:    bank,
		logger:  zap.NewNop(),
		timeout: DefaultFetchTimeout,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch returns a challenge for req. It never fails: generator errors fall
// back to the offline bank, and an empty bank yields the NoContent sentinel.
// When req.Online is set, a background prefetch for the same mode starts
// after the result is chosen.
func (r *Resolver) Fetch(ctx context.Context, req Request) Challenge {
	c, ok := r.take(req)
	if !ok {
		c = r.resolve(ctx, req)
	}
	metrics.ChallengeFetches.WithLabelValues(string(req.Mode), string(c.Source)).Inc()

	if req.Online && !c.IsNoContent() {
		r.Prefetch(ctx, req)
	}
	return c
}

// Prefetch generates the next challenge for req in the background and
// stores it in the slot. Offline and NoContent results are dropped.
func (r *Resolver) Prefetch(ctx context.Context, req Request) {
	if !req.Online || r.gen == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		c := r.resolve(ctx, req)
		if c.Source != SourceOnline {
			return
		}
		c.Source = SourcePrefetch

		r.mu.Lock()
		defer r.mu.Unlock()
		r.slot = &prefetched{key: slotKey(req), ch: c}
	}()
}

// Wait blocks until all background prefetches have finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// Pending reports whether a prefetched challenge is waiting for mode.
func (r *Resolver) Pending(mode ModeID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot != nil && r.slot.key.Mode == mode
}

// take consumes the slot. A slot generated for another mode, student,
// language or unit is discarded.
func (r *Resolver) take(req Request) (Challenge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.slot
	r.slot = nil
	if s == nil || s.key != slotKey(req) {
		return Challenge{}, false
	}
	return s.ch, true
}

// Discard drops any prefetched challenge.
func (r *Resolver) Discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot = nil
}

func (r *Resolver) resolve(ctx context.Context, req Request) Challenge {
	if !req.Online {
		return r.offline(req)
	}
	if r.gen == nil {
		r.logger.Debug("challenge fetch fell back to offline bank",
			zap.String("mode", string(req.Mode)),
			zap.Int("unit", req.Unit),
			zap.String("err", "no generator configured"),
		)
		return r.offline(req)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, err := r.gen.Generate(ctx, req)
	if err == nil {
		return c
	}
	r.logger.Debug("challenge fetch fell back to offline bank",
		zap.String("mode", string(req.Mode)),
		zap.Int("unit", req.Unit),
		zap.Error(err),
	)
	return r.offline(req)
}

func (r *Resolver) offline(req Request) Challenge {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.bank.Random(req.Mode, r.rng); ok {
		return New(req.Mode, p, SourceOffline)
	}
	if req.Mode == ModeUnitSpelling {
		if p, ok := r.bank.UnitWord(req.Unit, r.rng); ok {
			return New(req.Mode, p, SourceOffline)
		}
	}
	return NoContentChallenge(req.Mode)
}
