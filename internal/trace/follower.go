// internal/trace/follower.go
package trace

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hpcloud/tail"
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

// Follower tails a JSONL trace that an external UI driver is still writing
// and emits each snapshot as it is appended.
type Follower struct {
	// path is the trace file to follow.
	path string
	// fromStart replays lines already in the file before following.
	fromStart bool
	// poll uses stat polling instead of inotify.
	poll   bool
	logger *zap.Logger
}

// FollowerOption configures a Follower.
type FollowerOption func(*Follower)

// FromStart makes the follower emit snapshots already present in the file.
func FromStart() FollowerOption {
	return func(f *Follower) { f.fromStart = true }
}

// WithPolling makes the follower poll the file instead of using inotify.
func WithPolling() FollowerOption {
	return func(f *Follower) { f.poll = true }
}

// NewFollower returns a follower for path.
func NewFollower(path string, logger *zap.Logger, opts ...FollowerOption) *Follower {
	f := &Follower{
		path:   path,
		logger: logger.Named("trace-follower"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start begins tailing the file. The returned channel is closed when ctx is
// done or the tailer stops. Lines that do not decode are logged and skipped.
func (f *Follower) Start(ctx context.Context) (<-chan *schemas.Snapshot, error) {
	location := &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	if f.fromStart {
		location = nil
	}

	t, err := tail.TailFile(f.path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Poll:      f.poll,
		Location:  location,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to tail trace file: %w", err)
	}

	f.logger.Info("Following trace", zap.String("path", f.path), zap.Bool("from_start", f.fromStart))

	out := make(chan *schemas.Snapshot)
	go f.loop(ctx, t, out)
	return out, nil
}

func (f *Follower) loop(ctx context.Context, t *tail.Tail, out chan<- *schemas.Snapshot) {
	defer func() {
		t.Stop()
		t.Cleanup()
		close(out)
	}()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("Stopping trace follower.")
			return

		case line, ok := <-t.Lines:
			if !ok {
				f.logger.Info("Trace tailer channel closed.")
				return
			}
			if line.Err != nil {
				f.logger.Warn("Error reading from trace file", zap.Error(line.Err))
				continue
			}
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}

			snap, err := DecodeSnapshot([]byte(text))
			if err != nil {
				f.logger.Warn("Skipping undecodable trace line", zap.Error(err))
				continue
			}

			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}
}
