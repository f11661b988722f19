// Package protoerr defines the failure taxonomy shared by every protocol
// component above the framer: the five failure kinds a session can end in,
// and the wire response (if any) each one maps to before the socket closes.
package protoerr

import (
	"fmt"

	"code.hybscloud.com/rovernet/protocol"
)

// Kind names one of the failure kinds a session can terminate with.
type Kind int

const (
	// Timeout means an idle read exceeded its budget. No wire response is sent.
	Timeout Kind = iota
	// Syntax means a message was malformed: too long before the terminator,
	// a bad terminator position, a non-numeric payload, or a malformed
	// position reply.
	Syntax
	// Logic means an unexpected FULL POWER, or a post-recharge message that
	// isn't FULL POWER.
	Logic
	// Login means the client confirmation hash didn't match the expected value.
	Login
	// AuthKeysOutOfRange means the parsed key id fell outside [0,4].
	AuthKeysOutOfRange
)

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "Timeout"
	case Syntax:
		return "Syntax"
	case Logic:
		return "Logic"
	case Login:
		return "Login"
	case AuthKeysOutOfRange:
		return "AuthKeysOutOfRange"
	default:
		return "Unknown"
	}
}

// WireResponse returns the framed text the supervisor must send for this
// kind before closing, and whether one applies at all (Timeout has none).
func (k Kind) WireResponse() (string, bool) {
	switch k {
	case Syntax:
		return protocol.SyntaxError, true
	case Logic:
		return protocol.LogicError, true
	case Login:
		return protocol.LoginFailed, true
	case AuthKeysOutOfRange:
		return protocol.KeyOutOfRange, true
	default:
		return "", false
	}
}

// Error is the concrete error type every component above the framer raises.
// It carries the abstract Kind plus an optional wrapped cause.
type Error struct {
	Kind Kind
	Err  error
}

func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// As reports whether err is a *Error and, if so, returns its Kind.
func As(err error) (Kind, bool) {
	pe, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return pe.Kind, true
}
