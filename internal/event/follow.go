package event

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follow watches the log and calls fn for every event appended after Follow
// starts, until ctx is cancelled. The directory is watched rather than the
// file so a log that does not exist yet is picked up once created. A log that
// shrinks is read again from the beginning.
func (l *Log) Follow(ctx context.Context, fn func(Event)) error {
	dir := filepath.Dir(l.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	t := &tail{path: l.Path}
	if info, err := os.Stat(l.Path); err == nil {
		t.offset = info.Size()
	}

	target := filepath.Clean(l.Path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if err := t.drain(fn); err != nil {
					return err
				}
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; keep following.
		}
	}
}

// tail tracks how far into the log Follow has read. pending holds a trailing
// partial line until its newline arrives.
type tail struct {
	path    string
	offset  int64
	pending []byte
}

func (t *tail) drain(fn func(Event)) error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open timeline: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat timeline: %w", err)
	}
	if info.Size() < t.offset {
		t.offset = 0
		t.pending = nil
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek timeline: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read timeline: %w", err)
	}
	t.offset += int64(len(data))

	buf := append(t.pending, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		if ev, ok := ParseLine(buf[:i]); ok {
			fn(ev)
		}
		buf = buf[i+1:]
	}
	t.pending = append([]byte(nil), buf...)
	return nil
}
