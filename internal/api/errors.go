package api

import "errors"

// Operation names used to classify failures.
const (
	opRegister = "register"
	opLogin    = "login"
	opPredict  = "predict"
)

// ErrNoToken reports a login exchange that succeeded at the HTTP level but
// returned no session token.
var ErrNoToken = errors.New("no token received")

// Error describes a failed exchange with the FruitVision service. Message is
// always suitable for direct display to the user; Err carries the underlying
// transport error when the failure never reached the server.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the failure happened below the HTTP layer
// (unreachable service, timeout) rather than being reported by the server.
func (e *Error) IsTransport() bool {
	return e.Err != nil && !errors.Is(e.Err, ErrNoToken)
}

func fallbackMessage(op string) string {
	switch op {
	case opRegister:
		return "Registration failed"
	case opLogin:
		return "Login failed"
	case opPredict:
		return "Prediction failed"
	}
	return "Request failed"
}
