package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:5000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:5000" {
		t.Fatalf("base url = %q, want http://example.com:5000", u.String())
	}

	u, err = parseBaseURL("https://api.example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_LoginStoresNothingButReturnsToken(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "abc123"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	resp, err := c.Login(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "abc123" {
		t.Fatalf("token = %q, want abc123", resp.Token)
	}
	if gotBody["username"] != "alice" || gotBody["password"] != "hunter2" {
		t.Fatalf("login body = %v, want username/password", gotBody)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty for unauthenticated login", gotAuth)
	}
}

func TestClient_LoginWithoutTokenFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "welcome"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Login(context.Background(), "alice", "hunter2")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("Login error = %v, want ErrNoToken", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Op != opLogin {
		t.Fatalf("Login error = %#v, want *Error with op login", err)
	}
}

func TestClient_ServerMessageExtraction(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
		case "/register":
			// No message in the body: the client must fall back.
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Login(context.Background(), "alice", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("Login error = %v, want server-provided message", err)
	}

	err = c.Register(context.Background(), "alice", "hunter2", "a@example.com")
	if err == nil || err.Error() != "Registration failed" {
		t.Fatalf("Register error = %v, want generic fallback", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.IsTransport() {
		t.Fatalf("Register error = %#v, want non-transport *Error", err)
	}
}

func TestClient_RegisterOmitsEmptyEmail(t *testing.T) {
	t.Parallel()

	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := c.Register(context.Background(), "alice", "hunter2", "a@example.com"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := c.Register(context.Background(), "bob", "hunter2", ""); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if got := bodies[0]["email"]; got != "a@example.com" {
		t.Fatalf("email = %v, want a@example.com", got)
	}
	if _, present := bodies[1]["email"]; present {
		t.Fatalf("empty email should be omitted, body = %v", bodies[1])
	}
}

func TestClient_PredictSendsMultipartWithBearer(t *testing.T) {
	t.Parallel()

	image := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	var gotAuth, gotFilename string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		file, header, err := r.FormFile(imageFieldName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		gotFile, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PredictionResult{
			PredictedClass: "ripe_banana",
			Probability:    0.97,
			ClassInfo:      ClassInfo{FruitType: "banana", Ripeness: "ripe"},
			Metrics:        Metrics{Precision: 0.91, Recall: 0.89, F1Score: 0.9, Accuracy: 0.93},
		})
	}))
	t.Cleanup(server.Close)

	token := "abc123"
	c, err := NewClient(server.URL, func() string { return token })
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	result, err := c.Predict(ctx, "banana.png", image)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if result.PredictedClass != "ripe_banana" || result.ClassInfo.Ripeness != "ripe" {
		t.Fatalf("Predict result = %#v, want ripe_banana", result)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want Bearer abc123", gotAuth)
	}
	if gotFilename != "banana.png" {
		t.Fatalf("filename = %q, want banana.png", gotFilename)
	}
	if string(gotFile) != string(image) {
		t.Fatalf("uploaded bytes differ from source image")
	}

	// Clearing the token must drop the header on the next request; the
	// request itself is still sent.
	token = ""
	if _, err := c.Predict(ctx, "banana.png", image); err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty after logout", gotAuth)
	}
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	// Port 1 is reserved and nothing listens on it.
	c, err := NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetTimeout(500 * time.Millisecond)

	_, err = c.Predict(context.Background(), "x.png", []byte{1})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Predict error = %v, want *Error", err)
	}
	if !apiErr.IsTransport() {
		t.Fatalf("error not marked as transport failure: %#v", apiErr)
	}
	if apiErr.Message != "Prediction failed" {
		t.Fatalf("message = %q, want generic prediction fallback", apiErr.Message)
	}
}

func TestClient_DecodeErrorSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Predict(context.Background(), "x.png", []byte{1})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Predict error = %v, want decode response error", err)
	}
}
