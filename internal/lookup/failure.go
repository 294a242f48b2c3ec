package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind classifies why a lookup produced no usable payload.
type FailureKind string

const (
	// FailTimeout means the provider did not answer within the call budget.
	FailTimeout FailureKind = "timeout"
	// FailUpstream means the provider answered with an error or was unreachable.
	FailUpstream FailureKind = "upstream_error"
	// FailEmpty means the provider answered but had nothing usable.
	FailEmpty FailureKind = "empty_result"
	// FailUnexpected covers everything the gateway could not classify.
	FailUnexpected FailureKind = "unexpected_error"
)

// Failure is the only error type the gateway returns to callers.
// Raw transport errors never escape; they are wrapped with a kind
// and the capability that produced them.
type Failure struct {
	Capability Capability
	Kind       FailureKind
	Err        error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("lookup %s: %s: %v", f.Capability, f.Kind, f.Err)
	}
	return fmt.Sprintf("lookup %s: %s", f.Capability, f.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (f *Failure) Unwrap() error { return f.Err }

// Code returns the failure kind as an upper-snake error code for logs.
func (f *Failure) Code() string {
	switch f.Kind {
	case FailTimeout:
		return "TIMEOUT"
	case FailUpstream:
		return "UPSTREAM_ERROR"
	case FailEmpty:
		return "EMPTY_RESULT"
	default:
		return "UNEXPECTED_ERROR"
	}
}

func newFailure(cap Capability, kind FailureKind, err error) *Failure {
	return &Failure{Capability: cap, Kind: kind, Err: err}
}

// classifyTransport maps a transport error to a failure kind.
func classifyTransport(err error) FailureKind {
	if err == nil {
		return FailUnexpected
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailTimeout
	}
	return FailUpstream
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
