package sync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/iplan/internal/cache"
	"github.com/existflow/iplan/internal/model"
	"github.com/existflow/iplan/internal/store"
)

// fakeRemote is an in-memory stand-in for the state endpoint
type fakeRemote struct {
	mu      gosync.Mutex
	doc     *model.AppState
	version int64
	pushes  int
}

func (f *fakeRemote) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/state", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if f.doc == nil {
				http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
				return
			}
			var since int64
			fmt.Sscanf(r.URL.Query().Get("since"), "%d", &since)
			if f.version <= since {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"version": f.version,
				"state":   f.doc,
			})
		case http.MethodPut:
			var st model.AppState
			if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
				http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
				return
			}
			f.version++
			f.doc = &st
			f.pushes++
			_ = json.NewEncoder(w).Encode(map[string]int64{"version": f.version})
		}
	})
	return mux
}

func (f *fakeRemote) stats() (int64, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, f.pushes
}

func (f *fakeRemote) document() *model.AppState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc
}

func newTestReconciler(t *testing.T, url string) (*Reconciler, *store.Store, *cache.Cache) {
	t.Helper()
	client := &Client{
		config:     &Config{ServerURL: url, Token: "test-token", UserID: "u1"},
		configPath: filepath.Join(t.TempDir(), "sync.json"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	c, err := cache.Open(filepath.Join(t.TempDir(), "iplan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	st := store.New(model.DefaultState())
	r := NewReconciler(client, st, c)
	r.Attach()
	return r, st, c
}

func TestPullCreatesMissingRemoteDocument(t *testing.T) {
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	r, _, _ := newTestReconciler(t, srv.URL)
	r.Pull()

	version, pushes := remote.stats()
	require.NotNil(t, remote.document(), "first pull on a new identity must create the document")
	assert.Equal(t, 1, pushes)
	assert.Equal(t, int64(1), version)

	// Nothing newer on the next pull: no churn
	r.Pull()
	_, pushes = remote.stats()
	assert.Equal(t, 1, pushes)
}

func TestRemoteApplyDoesNotEchoPush(t *testing.T) {
	remote := &fakeRemote{}
	doc := model.DefaultState()
	doc.XP = 300
	remote.doc = &doc
	remote.version = 9

	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	r, st, _ := newTestReconciler(t, srv.URL)
	r.Pull()

	got := st.State()
	assert.Equal(t, 300, got.XP)
	assert.Equal(t, int64(9), got.Version, "applied state adopts the server version")
	_, pushes := remote.stats()
	assert.Equal(t, 0, pushes, "a remote-originated apply must not push back")
	_, _, last := r.client.Status()
	assert.Equal(t, int64(9), last)
}

func TestLocalChangePushesAndRemembersVersion(t *testing.T) {
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	r, st, _ := newTestReconciler(t, srv.URL)
	require.NoError(t, st.SetTheme(model.ThemeDark))
	r.Push()

	doc := remote.document()
	require.NotNil(t, doc)
	assert.Equal(t, model.ThemeDark, doc.Theme)
	version, pushes := remote.stats()
	_, _, last := r.client.Status()
	assert.Equal(t, version, last)

	// With versions level, the following pull is a no-op
	r.Pull()
	assert.Equal(t, model.ThemeDark, st.State().Theme)
	assert.Equal(t, 1, pushes)
}

func TestPushFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	r, st, _ := newTestReconciler(t, srv.URL)
	require.NoError(t, st.SetTheme(model.ThemeDark))

	// No retry, no panic, local state intact
	r.Push()
	assert.Equal(t, model.ThemeDark, st.State().Theme)
	_, _, last := r.client.Status()
	assert.Zero(t, last)
}

func TestCacheWrittenForEveryOrigin(t *testing.T) {
	remote := &fakeRemote{}
	doc := model.DefaultState()
	doc.XP = 120
	remote.doc = &doc
	remote.version = 3

	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	r, st, c := newTestReconciler(t, srv.URL)

	require.NoError(t, st.SetLanguage(model.LanguageRussian))
	assert.Equal(t, model.LanguageRussian, c.LoadState().Language)

	r.Pull()
	cached := c.LoadState()
	assert.Equal(t, 120, cached.XP, "remote applies land in the cache too")
}

func TestConcurrentPushAndPull(t *testing.T) {
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote.handler())
	defer srv.Close()

	r, st, _ := newTestReconciler(t, srv.URL)
	require.NoError(t, st.SetTheme(model.ThemeDark))

	// Push and Pull race the way the debounce and poll goroutines do;
	// both update the client's last-seen version.
	var wg gosync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Push()
		}()
		go func() {
			defer wg.Done()
			r.Pull()
		}()
	}
	wg.Wait()

	assert.True(t, r.client.IsLoggedIn(), "identity must survive concurrent updates")
	version, _ := remote.stats()
	_, _, last := r.client.Status()
	assert.Greater(t, last, int64(0))
	assert.LessOrEqual(t, last, version)

	// The config file stays parseable: a fresh client loads the same
	// identity instead of falling back to defaults.
	reloaded := &Client{
		configPath: r.client.configPath,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	reloaded.loadConfig()
	assert.Equal(t, "test-token", reloaded.config.Token)
	assert.Equal(t, "u1", reloaded.config.UserID)
}

// countingCache records how many snapshots were persisted
type countingCache struct {
	mu    gosync.Mutex
	saves int
}

func (c *countingCache) SaveState(model.AppState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	return nil
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func TestAttachPersistsEachTransitionOnce(t *testing.T) {
	client := &Client{
		config:     &Config{ServerURL: "http://localhost:0"},
		configPath: filepath.Join(t.TempDir(), "sync.json"),
		httpClient: &http.Client{Timeout: time.Second},
	}
	st := store.New(model.DefaultState())
	cc := &countingCache{}
	r := NewReconciler(client, st, cc)

	// Attach is idempotent: a second call (Start after openApp) must not
	// double-subscribe and double-write the cache.
	r.Attach()
	r.Attach()

	require.NoError(t, st.SetTheme(model.ThemeDark))
	assert.Equal(t, 1, cc.count())

	require.NoError(t, st.SetLanguage(model.LanguageArabic))
	assert.Equal(t, 2, cc.count())
}
