package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// ToolkitClient implements Provider against the Identity Toolkit REST API,
// the same surface the web SDK uses for password and phone sign-in. The
// Admin SDK deliberately omits these flows, so they are driven over plain
// HTTP here. It holds the current session (ID token plus identity) and
// notifies subscribers whenever it changes.
type ToolkitClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu      sync.Mutex
	idToken string
	current *Identity
	subs    map[int]func(*Identity)
	nextSub int
}

// Option configures a ToolkitClient.
type Option func(*ToolkitClient)

// WithBaseURL points the client at a custom endpoint (tests, emulator).
func WithBaseURL(url string) Option {
	return func(c *ToolkitClient) {
		c.baseURL = url
	}
}

// NewToolkitClient creates a provider client. When FIREBASE_AUTH_EMULATOR_HOST
// is set, requests target the emulator instead of production.
func NewToolkitClient(httpClient *http.Client, apiKey string, opts ...Option) *ToolkitClient {
	c := &ToolkitClient{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		subs:       make(map[int]func(*Identity)),
	}
	if host := os.Getenv("FIREBASE_AUTH_EMULATOR_HOST"); host != "" {
		c.baseURL = "http://" + host + "/identitytoolkit.googleapis.com/v1"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// accountInfo is the subset of Identity Toolkit account fields the portal
// reads. The API returns more; everything else is ignored at this boundary.
type accountInfo struct {
	IDToken     string `json:"idToken"`
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

type toolkitError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ToolkitClient) post(ctx context.Context, endpoint string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/accounts:%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var te toolkitError
		if err := json.NewDecoder(resp.Body).Decode(&te); err != nil || te.Error.Message == "" {
			return &ProviderError{Message: fmt.Sprintf("identity provider error (HTTP %d)", resp.StatusCode)}
		}
		return &ProviderError{Message: te.Error.Message}
	}

	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Current returns the signed-in identity, or nil.
func (c *ToolkitClient) Current() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneIdentity(c.current)
}

// Subscribe registers fn for session changes and invokes it once with the
// current state.
func (c *ToolkitClient) Subscribe(fn func(*Identity)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	cur := cloneIdentity(c.current)
	c.mu.Unlock()

	fn(cur)
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// SignInWithPassword authenticates with email and password credentials.
func (c *ToolkitClient) SignInWithPassword(ctx context.Context, email, password string) error {
	var info accountInfo
	err := c.post(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &info)
	if err != nil {
		return err
	}
	c.adopt(info)
	return nil
}

// CreateAccount signs up a new email account and sets its display name.
func (c *ToolkitClient) CreateAccount(ctx context.Context, name, email, password string) error {
	var info accountInfo
	err := c.post(ctx, "signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &info)
	if err != nil {
		return err
	}
	c.adopt(info)

	if name == "" {
		return nil
	}
	return c.UpdateDisplayName(ctx, name)
}

// SendPhoneCode requests an SMS verification code and returns the session
// string for ConfirmPhoneCode.
func (c *ToolkitClient) SendPhoneCode(ctx context.Context, phoneNumber string) (string, error) {
	var out struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := c.post(ctx, "sendVerificationCode", map[string]any{
		"phoneNumber": phoneNumber,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.SessionInfo, nil
}

// ConfirmPhoneCode completes the phone verification flow.
func (c *ToolkitClient) ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) error {
	var info accountInfo
	err := c.post(ctx, "signInWithPhoneNumber", map[string]any{
		"sessionInfo": sessionInfo,
		"code":        code,
	}, &info)
	if err != nil {
		return err
	}
	c.adopt(info)
	return nil
}

// UpdateDisplayName sets the display name on the current session's account.
func (c *ToolkitClient) UpdateDisplayName(ctx context.Context, name string) error {
	c.mu.Lock()
	token := c.idToken
	c.mu.Unlock()
	if token == "" {
		return ErrNotSignedIn
	}

	var info accountInfo
	err := c.post(ctx, "update", map[string]any{
		"idToken":           token,
		"displayName":       name,
		"returnSecureToken": true,
	}, &info)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.current != nil {
		c.current.DisplayName = name
		if info.IDToken != "" {
			c.idToken = info.IDToken
		}
	}
	cur := cloneIdentity(c.current)
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(cur)
	}
	return nil
}

// SignOut drops the current session and notifies subscribers with absence.
// The Identity Toolkit has no server-side sign-out for ID tokens; the token
// is simply forgotten and ages out.
func (c *ToolkitClient) SignOut(_ context.Context) error {
	c.mu.Lock()
	c.idToken = ""
	c.current = nil
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
	return nil
}

// IDToken exposes the session token for calls to the portal API.
func (c *ToolkitClient) IDToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idToken
}

func (c *ToolkitClient) adopt(info accountInfo) {
	c.mu.Lock()
	c.idToken = info.IDToken
	c.current = &Identity{
		UID:         info.LocalID,
		DisplayName: info.DisplayName,
		Email:       info.Email,
		PhoneNumber: info.PhoneNumber,
	}
	cur := cloneIdentity(c.current)
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(cur)
	}
}

// snapshotSubs must be called with the mutex held.
func (c *ToolkitClient) snapshotSubs() []func(*Identity) {
	subs := make([]func(*Identity), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func cloneIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}

// Compile-time interface check
var _ Provider = (*ToolkitClient)(nil)
