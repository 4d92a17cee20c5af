// Package autosave persists a script graph after a debounce window
// following the most recent mutation, and eagerly (fire-and-forget) when
// the editor is torn down. Saves are whole-graph replaces and are skipped
// when the graph is unchanged since the last successful save.
package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/flowlua/scriptgraph"
)

// GraphSaver is the slice of scriptgraph.Store the saver needs.
type GraphSaver interface {
	SaveGraph(ctx context.Context, g *scriptgraph.Graph) (*scriptgraph.Graph, error)
}

// Saver debounces graph saves. It snapshots the graph at notification time,
// so the caller may keep mutating its copy; each new notification
// supersedes the pending timer. A failed save is logged and not retried
// until the next notification. No timeout is enforced on the save itself.
type Saver struct {
	store    GraphSaver
	debounce time.Duration
	log      *slog.Logger

	mu        sync.Mutex
	timer     *time.Timer
	pending   []byte // canonical JSON of the latest notified graph
	lastSaved []byte // canonical JSON of the last successful save
	closed    bool
}

// New creates a Saver writing through the given store. A nil logger falls
// back to slog.Default.
func New(store GraphSaver, debounce time.Duration, log *slog.Logger) *Saver {
	if log == nil {
		log = slog.Default()
	}
	return &Saver{store: store, debounce: debounce, log: log}
}

// Notify records the graph's current state and (re)starts the debounce
// window. The previous pending timer, if any, is superseded.
func (s *Saver) Notify(g *scriptgraph.Graph) {
	snap, err := json.Marshal(g)
	if err != nil {
		s.log.Error("autosave: snapshot failed", "script", g.ScriptID, "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = snap
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.SaveNow(context.Background()); err != nil {
			s.log.Error("autosave: save failed", "err", err)
		}
	})
}

// SaveNow synchronously saves the pending snapshot. It is a no-op when
// nothing is pending or the pending snapshot equals the last successfully
// saved one.
func (s *Saver) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	snap := s.pending
	if snap == nil || bytes.Equal(snap, s.lastSaved) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	var g scriptgraph.Graph
	if err := json.Unmarshal(snap, &g); err != nil {
		return err
	}
	if _, err := s.store.SaveGraph(ctx, &g); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastSaved = snap
	s.mu.Unlock()
	return nil
}

// Flush is the page-unload path: it cancels the pending timer and fires a
// best-effort save without waiting for the result. No failure feedback.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	go func() {
		if err := s.SaveNow(context.Background()); err != nil {
			s.log.Error("autosave: flush failed", "err", err)
		}
	}()
}

// Close cancels any pending save. Further notifications are ignored.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
