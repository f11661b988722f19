// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package framer buffers a byte stream and yields one decoded message per
// call, enforcing a per-call maximum length and a fixed terminator.
//
// Semantics and design:
//   - Delimiter framing, not length-prefixed: the wire carries arbitrary
//     7-bit text terminated by a fixed two-byte sequence (0x07, 0x08 by
//     default). This differs from a length-prefix codec in one important
//     way: the max-length check must fire *before* the terminator is ever
//     seen, so a broken or hostile peer streaming an over-length payload is
//     rejected promptly instead of growing the buffer without bound.
//   - Two idle timeouts: every ReadMessage call takes its own idle timeout,
//     enforced via the connection's read deadline. There is no overall
//     session deadline — only "no bytes arrived within this window".
//   - A residual-byte handoff: bytes already read past the end of one
//     message (e.g. the start of the next one, arrived in the same TCP
//     segment) are retained in Framer's internal inbox and are not lost
//     when the caller moves on to a different operation or hands the
//     Framer to a different protocol stage.
package framer

import (
	"net"
	"time"
)

// Framer reads length-bounded, delimiter-terminated messages from a
// net.Conn, honoring a per-call idle timeout and maximum length.
type Framer struct {
	fr *framer
}

// New returns a Framer reading from conn.
func New(conn net.Conn, opts ...Option) *Framer {
	return &Framer{fr: newFramer(conn, opts...)}
}

// ReadMessage returns the next logical message with the terminator
// stripped.
//
// maxLength includes the terminator; it is internally raised to at least
// the configured floor (12 by default) so that an out-of-band notification
// is always admissible regardless of the caller's own expectation.
//
// idleTimeout is the maximum wall-clock interval allowed between the start
// of this call and the arrival of at least one byte; if none arrives, this
// returns a *protoerr.Error with Kind Timeout.
func (f *Framer) ReadMessage(maxLength int, idleTimeout time.Duration) (string, error) {
	return f.fr.readMessage(maxLength, idleTimeout)
}

// Inbox returns the bytes already read from the connection but not yet
// delivered as part of a message. Callers that hand a session off to a
// different protocol stage sharing the same connection must transfer this
// buffer via SetInbox on the new Framer so that no bytes are dropped.
func (f *Framer) Inbox() []byte { return f.fr.inboxBytes() }

// SetInbox restores a previously captured residual buffer.
func (f *Framer) SetInbox(b []byte) { f.fr.setInbox(b) }
