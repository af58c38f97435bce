package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"gestoria/internal/api"
	"gestoria/internal/logging"
)

// Client is the single gateway for calls to the backend. It stores the
// bearer credential issued at login and attaches it to every request that
// follows; requests made without a credential go out unmodified.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu          sync.RWMutex
	accessToken string

	hookMu         sync.RWMutex
	sessionExpired func()
}

// NewClient builds a gateway for the backend at baseURL. No request
// timeout is set: in-flight calls resolve or fail according to the
// transport's own defaults.
func NewClient(baseURL string, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log.With("module", "rest"),
	}
}

// SetSessionExpiredHook installs the callback run on every 401 response.
// It is wired once at startup by the application controller; the zero
// value (no hook) leaves 401 handling entirely to the caller.
func (c *Client) SetSessionExpiredHook(h func()) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.sessionExpired = h
}

// SetAccessToken stores the credential used for subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// ClearAccessToken drops the stored credential.
func (c *Client) ClearAccessToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
}

// AccessToken returns the currently stored credential, "" when logged out.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// HasCredential reports whether a bearer credential is currently stored.
func (c *Client) HasCredential() bool {
	return c.AccessToken() != ""
}

// do sends the request with the current credential attached and screens
// the response for session expiry. The token is re-read on every call, so
// a batch that outlives a logout never submits with a stale credential.
// The response is returned even for non-2xx statuses; callers decide.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if tok := c.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(req.Context(), "unauthorized response", "path", req.URL.Path)
		c.hookMu.RLock()
		h := c.sessionExpired
		c.hookMu.RUnlock()
		if h != nil {
			h()
		}
	}

	return resp, nil
}

// get issues a GET through the gateway and decodes a JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns a non-2xx response into an error carrying the backend
// detail. The backend answers {"detail": ...} error bodies; when the body
// is not that shape the raw text is kept instead.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	detail := strings.TrimSpace(string(body))
	var e api.Error
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		detail = e.Detail
	}
	if detail == "" {
		detail = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrUnavailable, detail)
	default:
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, detail)
	}
}
