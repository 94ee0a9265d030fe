// Package sync keeps the local AppState and its remote mirror eventually
// consistent. The local store stays the single owner: the remote copy is
// a cache-coherent mirror, pulled by polling and pushed after local
// changes. Failures are logged and never retried here; the local cache
// remains the fallback source of truth.
package sync

import (
	gosync "sync"
	"time"

	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/model"
	"github.com/existflow/iplan/internal/store"
)

// StateCache persists state snapshots between runs
type StateCache interface {
	SaveState(model.AppState) error
}

// Reconciler mirrors store state to the cache and the remote server.
// Echo suppression needs no shared flag: every change carries an origin
// tag, and only local-origin changes are pushed.
type Reconciler struct {
	client *Client
	store  *store.Store
	cache  StateCache

	pollInterval time.Duration
	debounceTime time.Duration

	mu       gosync.Mutex
	pending  bool
	attached bool
	stopCh   chan struct{}
}

// NewReconciler wires a reconciler to a store and cache
func NewReconciler(client *Client, st *store.Store, c StateCache) *Reconciler {
	return &Reconciler{
		client:       client,
		store:        st,
		cache:        c,
		pollInterval: 30 * time.Second,
		debounceTime: 5 * time.Second,
		stopCh:       make(chan struct{}),
	}
}

// Attach subscribes the reconciler to store changes. The reconciler is
// the single persistence subscriber: each transition lands in the cache
// exactly once, whether or not the poll loop is running. Idempotent.
func (r *Reconciler) Attach() {
	r.mu.Lock()
	if r.attached {
		r.mu.Unlock()
		return
	}
	r.attached = true
	r.mu.Unlock()
	r.store.Subscribe(r.onChange)
}

// Start attaches to the store and begins polling the remote. The caller
// runs the overdue sweep before calling Start, so the first pushed
// snapshot is already consistent.
func (r *Reconciler) Start() {
	r.Attach()
	r.Pull()
	go r.pollLoop()
}

// Stop halts background polling
func (r *Reconciler) Stop() {
	close(r.stopCh)
}

// onChange persists every snapshot to the local cache unconditionally,
// then schedules a push for local-origin changes only.
func (r *Reconciler) onChange(c store.Change) {
	if err := r.cache.SaveState(c.State); err != nil {
		logger.Error("Failed to persist state to cache", logger.F("error", err))
	}

	if c.Origin != store.OriginLocal {
		return
	}
	if !r.client.IsLoggedIn() {
		return
	}

	r.mu.Lock()
	if !r.pending {
		r.pending = true
		go r.debouncedPush()
	}
	r.mu.Unlock()
}

func (r *Reconciler) debouncedPush() {
	timer := time.NewTimer(r.debounceTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		r.Push()
	case <-r.stopCh:
	}
}

// Push sends the current local state to the remote store. The most recent
// local state always wins: whatever transitions raced ahead of a previous
// push are included in this snapshot.
func (r *Reconciler) Push() {
	r.mu.Lock()
	r.pending = false
	r.mu.Unlock()

	if !r.client.IsLoggedIn() {
		return
	}

	st := r.store.State()
	version, err := r.client.PushState(st)
	if err != nil {
		logger.Error("Push to remote failed", logger.F("error", err))
		return
	}
	r.client.SetLastVersion(version)
	logger.Debug("Pushed state", logger.F("version", version), logger.F("local", st.Version))
}

func (r *Reconciler) pollLoop() {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Pull()
		case <-r.stopCh:
			return
		}
	}
}

// Pull fetches the remote document when it is newer than the last seen
// version and applies it as a remote-originated replacement. A missing
// document (new identity) is created from the current local state.
func (r *Reconciler) Pull() {
	if !r.client.IsLoggedIn() {
		return
	}

	_, _, since := r.client.Status()
	remote, version, err := r.client.FetchState(since)
	if err == ErrNoRemoteState {
		logger.Info("No remote state yet, creating from local")
		r.Push()
		return
	}
	if err != nil {
		logger.Error("Pull from remote failed", logger.F("error", err))
		return
	}
	if remote == nil {
		return // nothing newer
	}

	remote.Version = version
	r.client.SetLastVersion(version)
	r.store.ApplyRemote(*remote)
	logger.Info("Applied remote state", logger.F("version", version))
}

// SyncNow performs one immediate pull-then-push cycle, used by the CLI
func (r *Reconciler) SyncNow() {
	r.Pull()
	r.Push()
}
