package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/leighmacdonald/dota-tui/internal/cache"
	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/leighmacdonald/dota-tui/internal/encoding"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"golang.org/x/sync/singleflight"
)

const defaultRetryInterval = time.Minute

var ErrResolve = errors.New("failed to resolve asset")

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type Status int

const (
	StatusUnknown Status = iota
	StatusFound
	StatusNotFound
)

// Resolution is the outcome of probing an asset's candidate URLs.
type Resolution struct {
	URL       string    `json:"url"`
	Status    Status    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
}

// Definitive results are cached and never retried.
func (r Resolution) Definitive() bool {
	return r.Status == StatusFound || r.Status == StatusNotFound
}

// ShowAbility decides if an ability is rendered. Passive abilities are hidden only once
// their icon is confirmed missing; an unresolved icon still renders with a fallback glyph.
func ShowAbility(passive gsi.Flag, resolution Resolution) bool {
	return !passive.True() || resolution.Status != StatusNotFound
}

type Opts struct {
	Hosts         []string
	RetryInterval time.Duration
	Diagnostics   *diagnostics.Logger
	Now           func() time.Time
}

type flight struct {
	ctx     context.Context //nolint:containedctx
	cancel  context.CancelFunc
	waiters int
}

// Resolver probes candidate URLs and remembers the results. Concurrent lookups of the same
// asset share a single probe.
type Resolver struct {
	client  HTTPDoer
	cache   cache.Cache
	hosts   []string
	retry   time.Duration
	diag    *diagnostics.Logger
	now     func() time.Time
	group   singleflight.Group
	mu      sync.Mutex
	results map[string]Resolution
	flights map[string]*flight
}

func New(client HTTPDoer, store cache.Cache, opts Opts) *Resolver {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Resolver{
		client:  client,
		cache:   store,
		hosts:   opts.Hosts,
		retry:   opts.RetryInterval,
		diag:    opts.Diagnostics,
		now:     opts.Now,
		results: map[string]Resolution{},
		flights: map[string]*flight{},
	}
}

func resolutionKey(kind Kind, name string) string {
	return kind.String() + ":" + name
}

// Lookup returns the last known result without doing any IO.
func (r *Resolver) Lookup(kind Kind, name string) (Resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolution, found := r.results[resolutionKey(kind, name)]

	return resolution, found
}

// Due reports whether a lookup should be started: never resolved, or unresolved and older
// than the retry interval. Assets with a lookup in flight are never due.
func (r *Resolver) Due(kind Kind, name string) bool {
	if name == "" {
		return false
	}

	key := resolutionKey(kind, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, inFlight := r.flights[key]; inFlight {
		return false
	}

	resolution, found := r.results[key]
	if !found {
		return true
	}

	if resolution.Definitive() {
		return false
	}

	return r.now().Sub(resolution.CheckedAt) >= r.retry
}

// Resolve finds the first reachable URL for an asset. Cancelling ctx abandons the wait, and
// the shared probe is cancelled once every caller waiting on it has gone.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, name string) (Resolution, error) {
	if resolution, found := r.Lookup(kind, name); found && resolution.Definitive() {
		return resolution, nil
	}

	key := resolutionKey(kind, name)
	current := r.join(key)
	defer r.leave(key, current)

	results := r.group.DoChan(key, func() (any, error) {
		return r.resolve(current.ctx, kind, name), nil
	})

	select {
	case result := <-results:
		resolution, _ := result.Val.(Resolution)

		return resolution, nil
	case <-ctx.Done():
		return Resolution{Status: StatusUnknown}, errors.Join(ctx.Err(), ErrResolve)
	}
}

func (r *Resolver) join(key string) *flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, found := r.flights[key]
	if !found {
		ctx, cancel := context.WithCancel(context.Background())
		current = &flight{ctx: ctx, cancel: cancel}
		r.flights[key] = current
	}

	current.waiters++

	return current
}

func (r *Resolver) leave(key string, current *flight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current.waiters--
	if current.waiters > 0 {
		return
	}

	current.cancel()

	if r.flights[key] == current {
		delete(r.flights, key)
		// The cancelled call may still be running. Later callers must start a new one
		// rather than join it.
		r.group.Forget(key)
	}
}

func (r *Resolver) resolve(ctx context.Context, kind Kind, name string) Resolution {
	if resolution, found := r.cached(kind, name); found {
		r.remember(kind, name, resolution)

		return resolution
	}

	var (
		candidates = Candidates(r.hosts, kind, name)
		notFound   int
		failed     bool
	)

	resolution := Resolution{Status: StatusUnknown}

probe:
	for _, url := range candidates {
		switch r.probe(ctx, url) {
		case StatusFound:
			resolution = Resolution{URL: url, Status: StatusFound}

			break probe
		case StatusNotFound:
			notFound++
			if kind.shortCircuit() {
				resolution = Resolution{Status: StatusNotFound}

				break probe
			}
		case StatusUnknown:
			failed = true
		}
	}

	if ctx.Err() != nil {
		// Abandoned lookups are not remembered so they can be retried straight away.
		return Resolution{Status: StatusUnknown}
	}

	if resolution.Status == StatusUnknown && !failed && notFound > 0 && notFound == len(candidates) {
		resolution.Status = StatusNotFound
	}

	resolution.CheckedAt = r.now()
	r.remember(kind, name, resolution)

	if resolution.Definitive() {
		r.store(kind, name, resolution)
	}

	r.diag.Log(diagnostics.AreaIcons, "Resolved asset", slog.String("kind", kind.String()),
		slog.String("name", name), slog.Int("status", int(resolution.Status)), slog.String("url", resolution.URL))

	return resolution
}

func (r *Resolver) remember(kind Kind, name string, resolution Resolution) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[resolutionKey(kind, name)] = resolution
}

func (r *Resolver) cached(kind Kind, name string) (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}

	body, errGet := r.cache.Get(kind.variant(), name)
	if errGet != nil {
		if !errors.Is(errGet, cache.ErrCacheMiss) {
			slog.Error("Failed to read asset cache", slog.String("error", errGet.Error()))
		}

		return Resolution{}, false
	}

	resolution, errDecode := encoding.UnmarshalJSON[Resolution](bytes.NewReader(body))
	if errDecode != nil || !resolution.Definitive() {
		return Resolution{}, false
	}

	return resolution, true
}

func (r *Resolver) store(kind Kind, name string, resolution Resolution) {
	if r.cache == nil {
		return
	}

	body, errEncode := json.Marshal(resolution)
	if errEncode != nil {
		slog.Error("Failed to encode asset resolution", slog.String("error", errEncode.Error()))

		return
	}

	if err := r.cache.Set(kind.variant(), name, body); err != nil {
		slog.Error("Failed to write asset cache", slog.String("error", err.Error()))
	}
}

// probe issues a GET and inspects only the status code. The body is never read.
func (r *Resolver) probe(ctx context.Context, url string) Status {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return StatusUnknown
	}

	resp, errResp := r.client.Do(req)
	if errResp != nil {
		r.diag.Log(diagnostics.AreaIcons, "Probe failed", slog.String("url", url), slog.String("error", errResp.Error()))

		return StatusUnknown
	}

	if err := resp.Body.Close(); err != nil {
		r.diag.Log(diagnostics.AreaIcons, "Failed to close body", slog.String("error", err.Error()))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return StatusNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return StatusFound
	default:
		return StatusUnknown
	}
}
