// Package api provides the HTTP client for the FruitVision service.
//
// The client is the sole egress point to the backend. It covers three
// endpoints:
//
//   - POST /register: create an account
//   - POST /login: exchange credentials for a session token
//   - POST /predict: submit an image (multipart field "file") for classification
//
// Every outbound request passes through a shared preparation hook that
// attaches "Authorization: Bearer <token>" when the configured TokenSource
// yields a token, so the credential always reflects the session state at the
// moment the request is issued.
//
// Failures are normalized into *Error carrying a user-displayable message:
// the server's own "message" field when it provides one, otherwise a generic
// per-operation fallback. Transport-level failures keep the underlying error
// reachable via Unwrap.
//
// The client performs no retries and no local persistence; token storage is
// the session store's responsibility.
package api
