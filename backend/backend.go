// Package backend defines the scoring capability behind the inference endpoint
// and its implementations.
package backend

import (
	"context"
	"errors"
	"fmt"

	"modelserver/config"
)

// ErrUnavailable is returned when the model server cannot be reached.
var ErrUnavailable = errors.New("backend unavailable")

// Request is the payload handed to a backend. Body is opaque.
type Request struct {
	Body        []byte
	ContentType string
	Accept      string
}

// Prediction is a backend's answer, written back to the caller verbatim.
type Prediction struct {
	Body        []byte
	ContentType string
}

// Backend scores a single inference request.
type Backend interface {
	Score(ctx context.Context, req *Request) (*Prediction, error)
}

// StatusError reports a non-2xx answer from a remote model server.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model server returned status %d", e.StatusCode)
}

// New builds the backend selected by cfg.
func New(cfg config.BackendConfig) (Backend, error) {
	switch cfg.Type {
	case config.BackendStatic, "":
		return NewStatic(cfg.Static.Body, cfg.Static.ContentType), nil
	case config.BackendRemote:
		return NewRemote(cfg.URL, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}
