package replay_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leighmacdonald/dota-tui/internal/replay"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	frames []string
	times  []time.Time
}

func (c *collector) Receive(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames = append(c.frames, string(frame))
	c.times = append(c.times, time.Now())
}

func TestReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n\n   \n{\"a\":2}\n{\"a\":3}\n"), 0o600))

	source := replay.New(path, replay.Opts{Interval: 20 * time.Millisecond})
	require.NoError(t, source.Open())

	frames := &collector{}
	done := make(chan struct{})

	go func() {
		source.Start(context.Background(), frames)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("replay did not finish")
	}

	require.NoError(t, source.Close())
	require.Equal(t, []string{`{"a":1}`, `{"a":2}`, `{"a":3}`}, frames.frames)
	require.GreaterOrEqual(t, frames.times[2].Sub(frames.times[0]), 30*time.Millisecond)
}

func TestReplayMissingFile(t *testing.T) {
	source := replay.New(filepath.Join(t.TempDir(), "missing.jsonl"), replay.Opts{})
	require.ErrorIs(t, source.Open(), replay.ErrOpen)
}

func TestReplayCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n{}\n{}\n"), 0o600))

	source := replay.New(path, replay.Opts{Interval: time.Hour, Follow: true})
	require.NoError(t, source.Open())

	ctx, cancel := context.WithCancel(context.Background())
	frames := &collector{}
	done := make(chan struct{})

	go func() {
		source.Start(ctx, frames)
		close(done)
	}()

	require.Eventually(t, func() bool {
		frames.mu.Lock()
		defer frames.mu.Unlock()

		return len(frames.frames) == 1
	}, 5*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("replay did not stop")
	}

	require.NoError(t, source.Close())
}
