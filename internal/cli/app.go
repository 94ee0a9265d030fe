package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/iplan/internal/cache"
	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/model"
	"github.com/existflow/iplan/internal/store"
	"github.com/existflow/iplan/internal/sync"
)

// App wires the store, cache, and sync client for one CLI invocation.
// Commands are one-shot: every local change lands in the cache through
// the store subscription, and Close pushes once at the end when an
// identity is established.
type App struct {
	Store  *store.Store
	Cache  *cache.Cache
	Client *sync.Client

	rec   *sync.Reconciler
	dirty bool
}

// openApp loads cached state, runs the startup overdue sweep, and wires
// persistence.
func openApp() (*App, error) {
	c, err := cache.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	st := store.New(c.LoadState())
	client, err := sync.NewClient()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	a := &App{
		Store:  st,
		Cache:  c,
		Client: client,
		rec:    sync.NewReconciler(client, st, c),
	}

	// The reconciler is the single persistence subscriber; the App's own
	// subscription only tracks whether a closing push is needed.
	a.rec.Attach()
	st.Subscribe(func(ch store.Change) {
		if ch.Origin == store.OriginLocal {
			a.dirty = true
		}
	})

	// The sweep runs exactly once, before any other transition
	if n := st.SweepOverdue(); n > 0 {
		logger.Info("Startup sweep reclassified overdue tasks", logger.F("count", n))
	}

	return a, nil
}

// Close pushes pending local changes and releases the cache
func (a *App) Close() {
	if a.dirty && a.Client.IsLoggedIn() {
		a.rec.Push()
	}
	if err := a.Cache.Close(); err != nil {
		logger.Warn("Failed to close cache", logger.F("error", err))
	}
}

// SyncNow runs one immediate pull-then-push cycle
func (a *App) SyncNow() {
	a.rec.SyncNow()
	a.dirty = false
}

// findSubject resolves a subject by id, id prefix, or name
func findSubject(st model.AppState, ref string) (model.Subject, bool) {
	lower := strings.ToLower(ref)
	for _, sub := range st.Subjects {
		if sub.ID == ref || strings.ToLower(sub.Name) == lower {
			return sub, true
		}
	}
	for _, sub := range st.Subjects {
		if len(ref) >= 4 && strings.HasPrefix(sub.ID, ref) {
			return sub, true
		}
	}
	return model.Subject{}, false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
