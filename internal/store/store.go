// Package store owns the in-memory AppState and every transition over it.
// Mutations go through transition methods that recompute derived state
// (XP clamp, badge set) before the new snapshot becomes visible, then
// notify subscribers with an origin-tagged change event. The origin tag is
// what lets the sync reconciler skip the echo push after applying a remote
// snapshot.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// ErrNotFound is returned when a transition targets a missing entity
var ErrNotFound = errors.New("store: not found")

// Origin tags where a state change came from
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Change is delivered to subscribers after every applied transition
type Change struct {
	Origin Origin
	State  model.AppState
}

// Subscriber receives change notifications. Subscribers run synchronously
// after the transition commits; keep them quick or hand off to a goroutine.
type Subscriber func(Change)

// Store holds the authoritative AppState for the running process
type Store struct {
	mu    sync.Mutex
	state model.AppState
	subs  []Subscriber
	now   func() time.Time // overridable in tests
	newID func() string
}

// New creates a store seeded with the given state
func New(initial model.AppState) *Store {
	return &Store{
		state: initial.Clone(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Subscribe registers a change listener
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns a snapshot of the current state
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// apply runs a transition under the lock. Local transitions bump the
// version counter; remote applies adopt the remote's version as-is.
// Subscribers are notified outside the lock with a private snapshot.
func (s *Store) apply(origin Origin, mutate func(st *model.AppState) error) error {
	s.mu.Lock()
	next := s.state.Clone()
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	if origin == OriginLocal {
		next.Version++
	}
	s.state = next
	snapshot := next.Clone()
	subs := append([]Subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Change{Origin: origin, State: snapshot})
	}
	return nil
}

// refresh recomputes the derived fields after an XP- or threshold-moving
// mutation, before the state becomes visible.
func (s *Store) refresh(st *model.AppState, now time.Time) {
	st.XP = gamify.ClampXP(st.XP)
	st.Badges = gamify.CheckBadges(st, now)
}

// ApplyRemote replaces the local state with a remotely observed snapshot.
// The snapshot is taken verbatim: no version bump, no re-derivation, and
// subscribers see origin=remote so the reconciler does not push it back.
func (s *Store) ApplyRemote(remote model.AppState) {
	_ = s.apply(OriginRemote, func(st *model.AppState) error {
		*st = remote.Clone()
		return nil
	})
}

// SetLanguage sets the display language
func (s *Store) SetLanguage(lang model.Language) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		st.Language = lang
		return nil
	})
}

// SetTheme sets the display theme
func (s *Store) SetTheme(theme model.Theme) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		st.Theme = theme
		return nil
	})
}

// UpdateUser replaces the profile's editable fields. UID and Email are
// owned by the identity layer and preserved.
func (s *Store) UpdateUser(profile model.UserProfile) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		profile.UID = st.User.UID
		profile.Email = st.User.Email
		if profile.JoinedAt.IsZero() {
			profile.JoinedAt = st.User.JoinedAt
		}
		st.User = profile
		return nil
	})
}

// SetIdentity records an established identity on the profile
func (s *Store) SetIdentity(uid, email string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		st.User.UID = uid
		st.User.Email = email
		return nil
	})
}

// SweepOverdue reclassifies past-due pending tasks as delayed. It runs
// once at startup before any other transition, and again at midnight for
// long-running processes. Returns the number of tasks reclassified; when
// zero, no transition is applied at all.
func (s *Store) SweepOverdue() int {
	now := s.now()
	swept := 0
	_ = s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Tasks {
			t := &st.Tasks[i]
			if t.Status == model.StatusPending && t.IsOverdue(now) {
				t.Status = model.StatusDelayed
				swept++
			}
		}
		if swept == 0 {
			return errNoChange
		}
		return nil
	})
	return swept
}

// errNoChange aborts an apply without surfacing an error to the caller
var errNoChange = errors.New("store: no change")
