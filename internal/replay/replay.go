// Package replay feeds previously recorded snapshots into a Receiver in place of a live connection.
package replay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/nxadm/tail"
)

const defaultInterval = 500 * time.Millisecond

var ErrOpen = errors.New("failed to open replay file")

type Opts struct {
	// Interval between delivered lines.
	Interval time.Duration
	// Follow keeps waiting for new lines once the end of the file is reached.
	Follow      bool
	Diagnostics *diagnostics.Logger
}

// Source reads a file of newline delimited snapshots.
type Source struct {
	filePath string
	opts     Opts
	tail     *tail.Tail
	stopOnce sync.Once
}

func New(filePath string, opts Opts) *Source {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}

	return &Source{filePath: filePath, opts: opts}
}

func (s *Source) Open() error {
	tailFile, errTail := tail.TailFile(s.filePath, tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Logger:    tail.DiscardingLogger,
		Follow:    s.opts.Follow,
		ReOpen:    s.opts.Follow,
		MustExist: true,
	})
	if errTail != nil {
		return errors.Join(errTail, ErrOpen)
	}

	s.tail = tailFile

	return nil
}

// Start delivers one line per interval until the file is exhausted or ctx is cancelled.
func (s *Source) Start(ctx context.Context, receiver conn.Receiver) {
	if s.tail == nil {
		return
	}

	defer s.stop()

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	delivered := 0
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-s.tail.Lines:
			if !ok {
				s.opts.Diagnostics.Log(diagnostics.AreaReplay, "Replay finished", slog.Int("lines", delivered))

				return
			}

			if line == nil {
				continue
			}

			if line.Err != nil {
				s.opts.Diagnostics.Log(diagnostics.AreaReplay, "Failed to read line", slog.String("error", line.Err.Error()))

				continue
			}

			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}

			if delivered > 0 {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}

			receiver.Receive([]byte(text))
			delivered++
		}
	}
}

func (s *Source) Close() error {
	s.stop()

	return nil
}

func (s *Source) stop() {
	if s.tail == nil {
		return
	}

	s.stopOnce.Do(func() {
		if errStop := s.tail.Stop(); errStop != nil {
			slog.Error("Failed to stop replay cleanly", slog.String("error", errStop.Error()))
		}

		s.tail.Cleanup()
	})
}
