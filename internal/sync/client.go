package sync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/existflow/iplan/internal/model"
)

// ErrNoRemoteState is returned when no state document exists yet for the
// logged-in identity (first run on a new account).
var ErrNoRemoteState = errors.New("sync: no remote state")

// Config holds sync configuration
type Config struct {
	ServerURL   string `json:"server_url"`
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	LastVersion int64  `json:"last_version"` // last server-assigned state version seen
}

// Client talks to the sync server. The reconciler's poll and debounce
// goroutines both update the last-seen version, so config access is
// serialized through mu.
type Client struct {
	mu         gosync.Mutex
	config     *Config
	configPath string
	httpClient *http.Client
}

// NewClient creates a sync client with config from ~/.iplan/sync.json
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".iplan", "sync.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.mu.Lock()
	c.loadConfig()
	c.mu.Unlock()
	return c, nil
}

// loadConfig and saveConfig run with mu held
func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{ServerURL: "http://localhost:8080"}
		return
	}

	c.config = &Config{}
	if err := json.Unmarshal(data, c.config); err != nil {
		c.config = &Config{ServerURL: "http://localhost:8080"}
	}
}

func (c *Client) saveConfig() error {
	if c.configPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the sync server URL
func (c *Client) SetServer(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if an identity is established
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Token != ""
}

// Status returns the server URL, user id, and last seen state version
func (c *Client) Status() (string, string, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.ServerURL, c.config.UserID, c.config.LastVersion
}

// SetLastVersion records the last server-assigned version seen
func (c *Client) SetLastVersion(v int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.LastVersion = v
	_ = c.saveConfig()
}

type authResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func (c *Client) authRequest(path string, body map[string]string) error {
	c.mu.Lock()
	url := c.config.ServerURL + path
	c.mu.Unlock()

	payload, _ := json.Marshal(body)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: %s", string(respBody))
	}

	var result authResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// Register creates a new account and logs in
func (c *Client) Register(username, email, password string) error {
	return c.authRequest("/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login authenticates with username and password
func (c *Client) Login(username, password string) error {
	return c.authRequest("/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Logout invalidates the server session, then clears the local identity.
// The server call is best-effort: an unreachable server never blocks
// logging out locally.
func (c *Client) Logout() error {
	c.mu.Lock()
	url := c.config.ServerURL + "/api/v1/logout"
	token := c.config.Token
	c.mu.Unlock()

	if token != "" {
		if req, err := http.NewRequest(http.MethodPost, url, nil); err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			if resp, err := c.httpClient.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = ""
	c.config.UserID = ""
	c.config.LastVersion = 0
	return c.saveConfig()
}

type stateEnvelope struct {
	Version int64          `json:"version"`
	State   model.AppState `json:"state"`
}

type pushResponse struct {
	Version int64 `json:"version"`
}

// FetchState pulls the identity's state document when its server version
// is newer than since. Returns (nil, since, nil) when nothing changed and
// ErrNoRemoteState when the document does not exist yet.
func (c *Client) FetchState(since int64) (*model.AppState, int64, error) {
	c.mu.Lock()
	url := fmt.Sprintf("%s/api/v1/state?since=%d", c.config.ServerURL, since)
	token := c.config.Token
	c.mu.Unlock()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, since, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, since, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return nil, since, nil
	case http.StatusNotFound:
		return nil, since, ErrNoRemoteState
	case http.StatusOK:
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, since, fmt.Errorf("server error: %s", string(respBody))
	}

	var envelope stateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, since, err
	}
	return &envelope.State, envelope.Version, nil
}

// PushState upserts the full state document and returns the version the
// server assigned to it. Marshaling here is also the normalization pass:
// what the server stores is exactly what a deserialize would yield.
func (c *Client) PushState(st model.AppState) (int64, error) {
	body, err := json.Marshal(st)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	url := c.config.ServerURL + "/api/v1/state"
	token := c.config.Token
	c.mu.Unlock()

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("server error: %s", string(respBody))
	}

	var result pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.Version, nil
}
