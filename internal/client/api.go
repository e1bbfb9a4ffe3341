package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Notifier surfaces failures to the user. Network failures are not reported
// to it.
type Notifier interface {
	Notify(err *Error)
}

type NotifierFunc func(err *Error)

func (f NotifierFunc) Notify(err *Error) { f(err) }

type User struct {
	ID            string        `json:"id"`
	WalletAddress string        `json:"walletAddress"`
	Username      *string       `json:"username"`
	Handle        *string       `json:"handle"`
	Bio           *string       `json:"bio"`
	Avatar        string        `json:"avatar"`
	Banner        string        `json:"banner"`
	Followers     int           `json:"followers"`
	Following     int           `json:"following"`
	TokenHolders  int           `json:"tokenHolders"`
	IsCreator     bool          `json:"isCreator"`
	IsOnboarded   bool          `json:"isOnboarded"`
	Token         *CreatorToken `json:"token,omitempty"`
}

type CreatorToken struct {
	TokenSymbol  string  `json:"tokenSymbol"`
	TokenName    string  `json:"tokenName"`
	CurrentPrice float64 `json:"currentPrice"`
	TotalSupply  int64   `json:"totalSupply"`
}

type UserSummary struct {
	ID            string  `json:"id"`
	WalletAddress string  `json:"walletAddress"`
	Username      *string `json:"username"`
	Handle        *string `json:"handle"`
	Avatar        string  `json:"avatar"`
	IsOnboarded   bool    `json:"isOnboarded"`
}

type WalletAuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserSummary `json:"user"`
}

type ProfileInput struct {
	Username  string   `json:"username"`
	Handle    string   `json:"handle"`
	Bio       *string  `json:"bio,omitempty"`
	Avatar    *string  `json:"avatar,omitempty"`
	Banner    *string  `json:"banner,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type onboardingStatus struct {
	IsOnboarded bool `json:"isOnboarded"`
}

type errorBody struct {
	Message string `json:"message"`
}

// APIClient talks to the VYB-R8R API and attaches the bearer token when one
// is set.
type APIClient struct {
	baseURL  string
	http     *http.Client
	notifier Notifier

	mu    sync.RWMutex
	token string
}

type Option func(*APIClient)

func WithHTTPClient(c *http.Client) Option {
	return func(a *APIClient) { a.http = c }
}

func WithNotifier(n Notifier) Option {
	return func(a *APIClient) { a.notifier = n }
}

func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *APIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *APIClient) WalletAuth(ctx context.Context, walletAddress string) Result[WalletAuthResponse] {
	return call[WalletAuthResponse](ctx, c, http.MethodPost, "/api/auth/wallet-auth", nil,
		map[string]string{"walletAddress": walletAddress})
}

func (c *APIClient) OnboardingStatus(ctx context.Context, walletAddress string) Result[bool] {
	res := call[onboardingStatus](ctx, c, http.MethodGet, "/api/auth/onboarding-status", url.Values{"walletAddress": {walletAddress}}, nil)
	if v, ok := res.Value(); ok {
		return Ok(v.IsOnboarded)
	}
	return Fail[bool](res.Err())
}

func (c *APIClient) CompleteOnboarding(ctx context.Context, in ProfileInput) Result[User] {
	return call[User](ctx, c, http.MethodPut, "/api/users/onboarding", nil, in)
}

func (c *APIClient) CurrentUser(ctx context.Context) Result[User] {
	return call[User](ctx, c, http.MethodGet, "/api/users/me", nil, nil)
}

func call[T any](ctx context.Context, c *APIClient, method, path string, query url.Values, body any) Result[T] {
	res := send[T](ctx, c, method, path, query, body)
	if err := res.Err(); err != nil && err.Kind != KindNetwork && c.notifier != nil {
		c.notifier.Notify(err)
	}
	return res
}

func send[T any](ctx context.Context, c *APIClient, method, path string, query url.Values, body any) Result[T] {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Fail[T](&Error{Kind: KindValidation, Message: "could not encode request", Err: err})
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Fail[T](&Error{Kind: KindValidation, Message: "could not build request", Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Fail[T](&Error{Kind: KindNetwork, Message: "server unreachable", Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Message == "" {
			eb.Message = "Something went wrong"
		}
		return Fail[T](&Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: eb.Message})
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return Fail[T](&Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response", Err: err})
	}
	return Ok(out)
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthenticated
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}

// String is used by the CLI to print profiles.
func (u User) String() string {
	name, handle := "-", "-"
	if u.Username != nil {
		name = *u.Username
	}
	if u.Handle != nil {
		handle = "@" + *u.Handle
	}
	return fmt.Sprintf("%s %s (%s)", name, handle, u.WalletAddress)
}
