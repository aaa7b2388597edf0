package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service defines the operations the FruitVision backend exposes.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	Register(ctx context.Context, username, password, email string) error
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Predict(ctx context.Context, filename string, image []byte) (*PredictionResult, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// TokenSource supplies the current session token at request-preparation time.
// It returns the empty string when no session exists.
type TokenSource func() string

// Client talks to the FruitVision HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     TokenSource
}

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultUserAgent = "fruitvision/0.1"
	requestTimeout   = 30 * time.Second

	// The backend reads the uploaded image from this multipart field.
	imageFieldName = "file"
)

// NewClient builds a Client for the given base URL. The token source may be
// nil when the client will only ever issue unauthenticated requests.
func NewClient(rawURL string, token TokenSource) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Register creates a new account. A successful registration does not log the
// user in; the caller must follow up with Login.
func (c *Client) Register(ctx context.Context, username, password, email string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body := registerRequest{Username: username, Password: password, Email: email}
	return c.postJSON(ctx, opRegister, "/register", body, nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the payload returned by POST /login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for a session token. A 2xx response without a
// token is treated as a failure, never as a success.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	if c == nil {
		return LoginResponse{}, fmt.Errorf("client is nil")
	}
	var payload LoginResponse
	if err := c.postJSON(ctx, opLogin, "/login", loginRequest{Username: username, Password: password}, &payload); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(payload.Token) == "" {
		return LoginResponse{}, &Error{Op: opLogin, Message: "No token received", Err: ErrNoToken}
	}
	return payload, nil
}

// Predict submits an image for classification and returns the decoded result.
// The request is sent whether or not a session token is present; a missing
// token simply omits the Authorization header and lets the server decide.
func (c *Client) Predict(ctx context.Context, filename string, image []byte) (*PredictionResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(imageFieldName, filename)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/predict", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var payload PredictionResult
	if err := c.send(req, opPredict, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, op, dest)
}

// newRequest is the shared preparation hook: every outbound request passes
// through here so the bearer credential is attached uniformly, reflecting the
// token value current at the moment the request is issued.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request, op string, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: fallbackMessage(op), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &Error{Op: op, Message: serverMessage(resp.Body, op)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage extracts the most specific message the server provided,
// falling back to a generic per-operation message when the body carries none.
func serverMessage(body io.Reader, op string) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil && strings.TrimSpace(payload.Message) != "" {
			return payload.Message
		}
	}
	return fallbackMessage(op)
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", rawURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
