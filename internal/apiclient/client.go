// Package apiclient is the single outbound HTTP client for the bookshelf
// service. Every request carries the session's bearer token when one exists.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookshelf/internal/util"
	"bookshelf/pkg/domain"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// Config configures Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	// Transport is the innermost round tripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client calls the bookshelf service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Confirmation is the body of register and delete responses.
type Confirmation struct {
	Message string `json:"message"`
}

// New constructs a client. The transport chain stamps a request id, injects
// the bearer token and logs each request.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	transport := util.WithRequestID(
		WithBearer(cfg.Tokens,
			util.WithRequestLog("bookshelf-api", cfg.Transport)))
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a token. Failures are *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp LoginResult
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", payload, &resp); err != nil {
		return LoginResult{}, authFailure(err)
	}
	if strings.TrimSpace(resp.Token) == "" {
		return LoginResult{}, &AuthError{Status: http.StatusOK, Message: "login response did not include a token"}
	}
	return resp, nil
}

// Register creates an account. Failures are *AuthError.
func (c *Client) Register(ctx context.Context, name, email, password string) (Confirmation, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var resp Confirmation
	if err := c.doJSON(ctx, "register", http.MethodPost, "/api/auth/register", payload, &resp); err != nil {
		return Confirmation{}, authFailure(err)
	}
	return resp, nil
}

// ListBooks returns the account's books in server order.
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var resp struct {
		Data []domain.Book `json:"data"`
	}
	if err := c.doJSON(ctx, "list books", http.MethodGet, "/api/auth/books", nil, &resp); err != nil {
		return nil, bookFailure(err)
	}
	if resp.Data == nil {
		resp.Data = []domain.Book{}
	}
	return resp.Data, nil
}

// CreateBook adds a book and returns it with the server's message.
func (c *Client) CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, string, error) {
	var resp struct {
		Data    domain.Book `json:"data"`
		Message string      `json:"message"`
	}
	if err := c.doJSON(ctx, "create book", http.MethodPost, "/api/auth/book", in, &resp); err != nil {
		return domain.Book{}, "", bookFailure(err)
	}
	return resp.Data, resp.Message, nil
}

// UpdateBook replaces the name and author of book id.
func (c *Client) UpdateBook(ctx context.Context, id string, in domain.BookInput) (domain.Book, error) {
	path, err := bookPath(id)
	if err != nil {
		return domain.Book{}, err
	}
	var resp struct {
		Data domain.Book `json:"data"`
	}
	if err := c.doJSON(ctx, "update book", http.MethodPut, path, in, &resp); err != nil {
		return domain.Book{}, bookFailure(err)
	}
	if resp.Data.ID == "" {
		resp.Data.ID = id
	}
	return resp.Data, nil
}

// DeleteBook removes book id.
func (c *Client) DeleteBook(ctx context.Context, id string) (Confirmation, error) {
	path, err := bookPath(id)
	if err != nil {
		return Confirmation{}, err
	}
	var resp Confirmation
	if err := c.doJSON(ctx, "delete book", http.MethodDelete, path, nil, &resp); err != nil {
		return Confirmation{}, bookFailure(err)
	}
	return resp, nil
}

// GetBook fetches a single book.
func (c *Client) GetBook(ctx context.Context, id string) (domain.Book, error) {
	path, err := bookPath(id)
	if err != nil {
		return domain.Book{}, err
	}
	var resp struct {
		Data domain.Book `json:"data"`
	}
	if err := c.doJSON(ctx, "get book", http.MethodGet, path, nil, &resp); err != nil {
		return domain.Book{}, bookFailure(err)
	}
	return resp.Data, nil
}

func bookPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	return "/api/auth/book/" + url.PathEscape(id), nil
}

// doJSON performs one request. It returns *NetworkError when no response
// arrived and *statusError for non-2xx responses. An empty success body
// leaves out untouched.
func (c *Client) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}
	ctx = util.ContextWithLogger(ctx, c.logger.With("op", op))
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := readStatusError(resp.StatusCode, resp.Header.Get("Content-Type"), resp.Body)
		c.logger.Debug("api request rejected", "op", op, "status", resp.StatusCode, "message", se.serverMessage)
		return se
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &statusError{status: resp.StatusCode, serverMessage: fmt.Sprintf("%s: malformed response: %v", op, err)}
	}
	return nil
}
