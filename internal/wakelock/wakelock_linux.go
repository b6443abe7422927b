//go:build linux

package wakelock

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

const inhibitBinary = "systemd-inhibit"

// Inhibitor holds a systemd-inhibit child process for as long as the lock is held.
type Inhibitor struct {
	mu   sync.Mutex
	path string
	cmd  *exec.Cmd
	done chan struct{}
}

// New returns a systemd backed lock, or Noop when systemd-inhibit is not installed.
func New(enabled bool) Lock {
	if !enabled {
		return Noop{}
	}

	path, errPath := exec.LookPath(inhibitBinary)
	if errPath != nil {
		slog.Debug("Wake lock unavailable", slog.String("error", errPath.Error()))

		return Noop{}
	}

	return &Inhibitor{path: path}
}

func (i *Inhibitor) Acquire() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cmd != nil {
		return nil
	}

	cmd := exec.Command(i.path, "--what=idle:sleep", "--who=dota-tui", //nolint:gosec
		"--why=Spectating a match", "--mode=block", "sleep", "infinity")
	if err := cmd.Start(); err != nil {
		return errors.Join(err, ErrAcquire)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	i.cmd = cmd
	i.done = done

	return nil
}

func (i *Inhibitor) Release() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cmd == nil {
		return nil
	}

	select {
	case <-i.done:
	default:
		if err := i.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}

		<-i.done
	}

	i.cmd = nil
	i.done = nil

	return nil
}
