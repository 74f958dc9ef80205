// Package adminclient is the headless admin front-end: the HTTP client,
// the resource API modules and the screen state (tables, modals, cascading
// selectors and the route guard) that drive the back-office.
package adminclient

import (
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

	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request; there is no other timeout handling
const DefaultTimeout = 30 * time.Second

// CookieName is the cookie the server stores the access token in
const CookieName = "Authorization"

// Client issues authenticated calls against the admin API
type Client struct {
	http    *resty.Client
	baseURL *url.URL
	logger  *zap.Logger

	mu      sync.RWMutex
	token   string
	refresh string
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the logger requests are traced to
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithToken starts the client with an access token, e.g. one read from
// a saved session
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithRefreshToken starts the client with a refresh token so a saved
// session can be rotated
func WithRefreshToken(token string) ClientOption {
	return func(c *Client) {
		c.refresh = token
	}
}

// New creates a client for the admin API at baseURL
func New(baseURL string, opts ...ClientOption) (*Client, error) {
	return NewWithHTTPClient(baseURL, nil, opts...)
}

// NewWithHTTPClient creates a client that sends through hc. A nil hc gets
// a default client with a cookie jar.
func NewWithHTTPClient(baseURL string, hc *http.Client, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	var rc *resty.Client
	if hc == nil {
		rc = resty.New()
	} else {
		rc = resty.NewWithClient(hc)
	}
	rc.SetBaseURL(u.String()).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")

	c := &Client{
		http:    rc,
		baseURL: u,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token := c.Token(); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})
	return c, nil
}

// Token returns the access token, empty when logged out
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Tokens returns the held access and refresh tokens
func (c *Client) Tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.refresh
}

// SetToken replaces the held access token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken forgets both tokens
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.refresh = ""
}

// TracksCookies reports whether the client keeps server cookies at all
func (c *Client) TracksCookies() bool {
	return c.http.GetClient().Jar != nil
}

// HasSessionCookie reports whether the server's auth cookie is still held
func (c *Client) HasSessionCookie() bool {
	jar := c.http.GetClient().Jar
	if jar == nil {
		return false
	}
	for _, ck := range jar.Cookies(c.baseURL) {
		if ck.Name == CookieName && ck.Value != "" {
			return true
		}
	}
	return false
}

// ImageURL prefixes an uploaded object key with the image base URL
func ImageURL(base, key string) string {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}

type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// call sends one request and unwraps the envelope into T
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T
	var ok envelope[T]
	var failed envelope[json.RawMessage]

	req := c.http.R().
		SetContext(ctx).
		SetResult(&ok).
		SetError(&failed)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("admin api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return zero, &APIError{Method: method, Path: path, Err: err}
	}
	c.logger.Debug("admin api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.IsError() {
		return zero, newAPIError(method, path, resp, failed.Error)
	}
	if !ok.Success {
		return zero, newAPIError(method, path, resp, ok.Error)
	}
	return ok.Data, nil
}

func newAPIError(method, path string, resp *resty.Response, info *dto.ErrorInfo) *APIError {
	e := &APIError{Method: method, Path: path, Status: resp.StatusCode()}
	if info == nil {
		e.Message = strings.TrimSpace(resp.String())
		if e.Message == "" {
			e.Message = http.StatusText(e.Status)
		}
		return e
	}
	e.Code = info.Code
	e.Message = info.Message
	e.RequestID = info.RequestID
	e.Details = info.Details
	return e
}

// APIError is a failed call: a transport failure (Err set) or an error
// envelope returned by the server
type APIError struct {
	Method    string
	Path      string
	Status    int
	Code      string
	Message   string
	RequestID string
	Details   []dto.ValidationDetail
	Err       error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an APIError carrying code
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsUnauthorized reports whether err means the session is gone
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenPair is the result of a login or refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// Login exchanges credentials for a token pair and keeps it
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	pair, err := call[TokenPair](ctx, c, http.MethodPost, "/adminLogin", nil, map[string]string{
		"principal":   username,
		"credentials": password,
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = pair.AccessToken
	c.refresh = pair.RefreshToken
	c.mu.Unlock()
	return &pair, nil
}

// Refresh rotates the held token pair
func (c *Client) Refresh(ctx context.Context) (*TokenPair, error) {
	c.mu.RLock()
	refresh := c.refresh
	c.mu.RUnlock()
	if refresh == "" {
		return nil, &APIError{Method: http.MethodPost, Path: "/token/refresh", Status: http.StatusUnauthorized, Code: dto.ErrCodeUnauthorized, Message: "No refresh token held"}
	}

	pair, err := call[TokenPair](ctx, c, http.MethodPost, "/token/refresh", nil, map[string]string{
		"refreshToken": refresh,
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = pair.AccessToken
	c.refresh = pair.RefreshToken
	c.mu.Unlock()
	return &pair, nil
}

// Logout revokes the access token server side and forgets it locally, even
// when the server call fails
func (c *Client) Logout(ctx context.Context) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPost, "/logOut", nil, nil)
	c.ClearToken()
	return err
}

// UploadElement sends a file to the element upload endpoint and returns
// the stored object key
func (c *Client) UploadElement(ctx context.Context, filename string, r io.Reader) (string, error) {
	const path = "/admin/file/upload/element"

	var ok envelope[string]
	var failed envelope[json.RawMessage]
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		SetResult(&ok).
		SetError(&failed).
		Post(path)
	if err != nil {
		return "", &APIError{Method: http.MethodPost, Path: path, Err: err}
	}
	if resp.IsError() {
		return "", newAPIError(http.MethodPost, path, resp, failed.Error)
	}
	return ok.Data, nil
}
