// Package conn keeps a websocket connection to the GSI server alive and publishes the
// projected result of every snapshot it receives.
package conn

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
)

const (
	defaultRetrySeconds = 3
	handshakeTimeout    = 10 * time.Second
	maxFrameSize        = 8 << 20
)

var errConnect = errors.New("failed to connect")

// Dialer is satisfied by *websocket.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

type Opts struct {
	Dialer Dialer
	// RetrySeconds is the length of the visible reconnect countdown.
	RetrySeconds int
	// Tick is the length of one countdown step.
	Tick        time.Duration
	Diagnostics *diagnostics.Logger
	Sink        Sink
	Now         func() time.Time
}

// Manager owns the connection lifecycle. A single goroutine, started with Start, drives the
// state machine. At most one socket is open at a time and its reader is the only writer of
// the published snapshot.
type Manager struct {
	dialer       Dialer
	retrySeconds int
	tick         time.Duration
	diag         *diagnostics.Logger
	sink         Sink
	now          func() time.Time

	endpoints       chan string
	stateChanged    chan struct{}
	snapshotChanged chan struct{}
	state           atomic.Pointer[State]
	snapshot        atomic.Pointer[Snapshot]
	everConnected   atomic.Bool
	attempts        int

	// target is the most recently requested endpoint, applied or still pending.
	targetMu sync.Mutex
	target   string
}

// New validates the initial endpoint. Use Start to begin connecting.
func New(endpoint string, opts Opts) (*Manager, error) {
	normalized, errEndpoint := config.NormalizeEndpoint(endpoint)
	if errEndpoint != nil {
		return nil, errEndpoint
	}

	if opts.Dialer == nil {
		opts.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		}
	}

	if opts.RetrySeconds <= 0 {
		opts.RetrySeconds = defaultRetrySeconds
	}

	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	manager := &Manager{
		dialer:          opts.Dialer,
		retrySeconds:    opts.RetrySeconds,
		tick:            opts.Tick,
		diag:            opts.Diagnostics,
		sink:            opts.Sink,
		now:             opts.Now,
		endpoints:       make(chan string, 1),
		stateChanged:    make(chan struct{}, 1),
		snapshotChanged: make(chan struct{}, 1),
	}

	manager.state.Store(&State{Status: StatusConnecting, Endpoint: normalized})
	manager.target = normalized

	return manager, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return *m.state.Load()
}

// Snapshot returns the latest snapshot, or nil before the first one arrives.
func (m *Manager) Snapshot() *Snapshot {
	return m.snapshot.Load()
}

// StateChanges fires after the state changes. Bursts are coalesced, readers should
// always call State for the latest value.
func (m *Manager) StateChanges() <-chan struct{} {
	return m.stateChanged
}

// SnapshotChanges fires after a new snapshot is published.
func (m *Manager) SnapshotChanges() <-chan struct{} {
	return m.snapshotChanged
}

// SetEndpoint switches to a new server. Requesting the endpoint already in use, or already
// pending, does nothing. Invalid input is rejected and leaves the current
// connection untouched.
func (m *Manager) SetEndpoint(endpoint string) error {
	normalized, errEndpoint := config.NormalizeEndpoint(endpoint)
	if errEndpoint != nil {
		return errEndpoint
	}

	m.targetMu.Lock()
	defer m.targetMu.Unlock()

	if normalized == m.target {
		return nil
	}

	m.target = normalized

	// Only the latest request matters.
	for {
		select {
		case m.endpoints <- normalized:
			return nil
		default:
			select {
			case <-m.endpoints:
			default:
			}
		}
	}
}

// Receive parses and publishes a single frame. Malformed frames are dropped.
func (m *Manager) Receive(frame []byte) {
	raw, errParse := gsi.ParseSnapshot(frame)
	if errParse != nil {
		m.diag.Log(diagnostics.AreaConn, "Dropped malformed frame",
			slog.Int("size", len(frame)), slog.String("error", errParse.Error()))

		return
	}

	snapshot := &Snapshot{
		Raw:        raw,
		Teams:      gsi.Project(raw),
		Match:      gsi.Match(raw),
		ReceivedAt: m.now(),
	}

	m.snapshot.Store(snapshot)
	notify(m.snapshotChanged)

	if m.sink != nil {
		m.sink.Record(raw, snapshot.ReceivedAt)
	}
}

// Start runs the connection lifecycle until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	endpoint := m.State().Endpoint

	for {
		m.setState(State{Status: StatusConnecting, Endpoint: endpoint})

		next, changed, connected := m.session(ctx, endpoint)
		if ctx.Err() != nil {
			return
		}

		if changed {
			endpoint = next

			continue
		}

		m.attempts++
		if !connected && m.attempts == 1 {
			// Never wait on the very first failure, the server is often still starting.
			m.setState(State{Status: StatusDisconnected, Endpoint: endpoint})

			continue
		}

		next, changed = m.countdown(ctx, endpoint)
		if ctx.Err() != nil {
			return
		}

		if changed {
			endpoint = next
		}
	}
}

type sessionResult struct {
	connected bool
	err       error
}

// session dials endpoint and reads until the socket fails, the endpoint changes or ctx ends.
// The reader goroutine is always joined before returning.
func (m *Manager) session(ctx context.Context, endpoint string) (string, bool, bool) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan sessionResult, 1)
	go func() {
		done <- m.run(sessionCtx, endpoint)
	}()

	select {
	case result := <-done:
		if result.err != nil {
			m.diag.Log(diagnostics.AreaConn, "Connection closed",
				slog.String("endpoint", endpoint), slog.String("error", result.err.Error()))
		}

		return "", false, result.connected
	case next := <-m.endpoints:
		cancel()
		result := <-done
		m.diag.Log(diagnostics.AreaConn, "Endpoint changed", slog.String("endpoint", next))

		return next, true, result.connected
	case <-ctx.Done():
		result := <-done

		return "", false, result.connected
	}
}

func (m *Manager) run(ctx context.Context, endpoint string) sessionResult {
	m.diag.Log(diagnostics.AreaConn, "Dialing", slog.String("endpoint", endpoint))

	socket, resp, errDial := m.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if errDial != nil {
		return sessionResult{err: errors.Join(errDial, errConnect)}
	}

	stop := context.AfterFunc(ctx, func() {
		_ = socket.Close()
	})

	defer func() {
		stop()
		if err := socket.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			m.diag.Log(diagnostics.AreaConn, "Close error", slog.String("error", err.Error()))
		}
	}()

	socket.SetReadLimit(maxFrameSize)

	m.everConnected.Store(true)
	m.setState(State{Status: StatusConnected, HasEverConnected: true, Endpoint: endpoint})
	slog.Info("Connected to GSI server", slog.String("endpoint", endpoint))

	for {
		msgType, frame, errRead := socket.ReadMessage()
		if errRead != nil {
			return sessionResult{connected: true, err: errRead}
		}

		if msgType != websocket.TextMessage {
			m.diag.Log(diagnostics.AreaConn, "Ignoring non-text frame", slog.Int("type", msgType))

			continue
		}

		m.Receive(frame)
	}
}

func (m *Manager) countdown(ctx context.Context, endpoint string) (string, bool) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for remaining := m.retrySeconds; remaining > 0; remaining-- {
		m.setState(State{
			Status:       StatusDisconnected,
			ReconnectIn:  remaining,
			Reconnecting: true,
			Endpoint:     endpoint,
		})

		select {
		case <-ticker.C:
		case next := <-m.endpoints:
			return next, true
		case <-ctx.Done():
			return "", false
		}
	}

	return "", false
}

func (m *Manager) setState(state State) {
	state.HasEverConnected = m.everConnected.Load()
	m.state.Store(&state)
	notify(m.stateChanged)
}

func notify(signal chan struct{}) {
	select {
	case signal <- struct{}{}:
	default:
	}
}
