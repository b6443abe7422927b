// Package recorder keeps a history of received snapshots for later export and replay.
package recorder

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/leighmacdonald/dota-tui/internal/encoding"
	"github.com/leighmacdonald/dota-tui/internal/gsi"
	"github.com/leighmacdonald/dota-tui/internal/store"
)

const queueSize = 64

var (
	errRecord = errors.New("failed to record snapshot")
	ErrExport = errors.New("failed to export snapshots")
)

type entry struct {
	raw        gsi.Object
	receivedAt time.Time
}

// Recorder writes each distinct snapshot to the store. Record never blocks the caller;
// snapshots arriving while the queue is full are dropped.
type Recorder struct {
	db       *store.Queries
	incoming chan entry
	diag     *diagnostics.Logger
	lastHash string
}

func New(queries *store.Queries, diag *diagnostics.Logger) *Recorder {
	return &Recorder{db: queries, incoming: make(chan entry, queueSize), diag: diag}
}

func (r *Recorder) Record(raw gsi.Object, receivedAt time.Time) {
	select {
	case r.incoming <- entry{raw: raw, receivedAt: receivedAt}:
	default:
		r.diag.Log(diagnostics.AreaRecorder, "Queue full, dropping snapshot")
	}
}

func (r *Recorder) Start(ctx context.Context) {
	for {
		select {
		case next := <-r.incoming:
			if err := r.save(ctx, next); err != nil {
				slog.Error("Failed to record snapshot", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Recorder) save(ctx context.Context, next entry) error {
	payload, errEncode := encoding.Canonical(next.raw)
	if errEncode != nil {
		return errors.Join(errEncode, errRecord)
	}

	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])

	if hash == r.lastHash {
		r.diag.Log(diagnostics.AreaRecorder, "Skipped repeated snapshot")

		return nil
	}

	r.lastHash = hash

	inserted, errInsert := r.db.SnapshotInsert(ctx, store.SnapshotInsertParams{
		ReceivedAt:  next.receivedAt.UnixMilli(),
		PayloadHash: hash,
		Payload:     payload,
	})
	if errInsert != nil {
		return errors.Join(errInsert, errRecord)
	}

	r.diag.Log(diagnostics.AreaRecorder, "Recorded snapshot",
		slog.String("hash", hash), slog.Bool("duplicate", inserted == 0))

	return nil
}

// Export writes every recorded payload as one JSON document per line, in receive order.
// The output can be fed back in with --replay.
func Export(ctx context.Context, queries *store.Queries, output io.Writer) (int, error) {
	rows, errRows := queries.Snapshots(ctx)
	if errRows != nil {
		return 0, errors.Join(errRows, ErrExport)
	}

	writer := bufio.NewWriter(output)
	for _, row := range rows {
		if _, err := writer.Write(row.Payload); err != nil {
			return 0, errors.Join(err, ErrExport)
		}

		if err := writer.WriteByte('\n'); err != nil {
			return 0, errors.Join(err, ErrExport)
		}
	}

	if err := writer.Flush(); err != nil {
		return 0, errors.Join(err, ErrExport)
	}

	return len(rows), nil
}
