// Package tailer follows a growing text file line by line.
package tailer

import (
	"context"
	"io"
	"strings"

	"github.com/nxadm/tail"

	"github.com/datefmt/datefmt-go/internal/safefile"
)

// Config controls how a file is followed.
type Config struct {
	// FromStart reads existing content before following. When false only
	// lines written after New are delivered.
	FromStart bool

	// ReOpen reopens the path after it is truncated, moved or recreated.
	ReOpen bool

	// Poll uses stat polling instead of filesystem notifications.
	Poll bool
}

// DefaultConfig returns a Config that follows from the end and reopens
// rotated files.
func DefaultConfig() Config {
	return Config{ReOpen: true}
}

// Tailer delivers lines appended to a file until stopped.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}

	stopErr error
}

// New starts following path. The path must name a regular file.
// Cancelling ctx stops the tailer and closes both channels.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, err
	}
	f.Close()

	tcfg := tail.Config{
		Follow:    true,
		ReOpen:    cfg.ReOpen,
		MustExist: true,
		Poll:      cfg.Poll,
		Logger:    tail.DiscardingLogger,
	}
	if !cfg.FromStart {
		tcfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, tcfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	tl := &Tailer{
		t:      t,
		lines:  make(chan string),
		errs:   make(chan error, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go tl.run(ctx)
	return tl, nil
}

func (tl *Tailer) run(ctx context.Context) {
	defer close(tl.done)
	defer close(tl.lines)
	defer close(tl.errs)
	defer func() {
		tl.stopErr = tl.t.Stop()
		tl.t.Cleanup()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tl.t.Lines:
			if !ok {
				if err := tl.t.Err(); err != nil {
					tl.sendError(ctx, err)
				}
				return
			}
			if line.Err != nil {
				tl.sendError(ctx, line.Err)
				continue
			}
			select {
			case tl.lines <- strings.TrimSuffix(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (tl *Tailer) sendError(ctx context.Context, err error) {
	select {
	case tl.errs <- err:
	case <-ctx.Done():
	}
}

// Lines returns the channel of lines without trailing line terminators.
func (tl *Tailer) Lines() <-chan string {
	return tl.lines
}

// Errors returns the channel of read errors.
func (tl *Tailer) Errors() <-chan error {
	return tl.errs
}

// Stop stops following and waits for the channels to close.
// It is safe to call more than once.
func (tl *Tailer) Stop() error {
	tl.cancel()
	<-tl.done
	return tl.stopErr
}
