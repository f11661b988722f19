// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

import (
	"bytes"
	"io"
	"net"
	"time"

	"code.hybscloud.com/rovernet/protoerr"
)

type framer struct {
	conn  net.Conn
	term  []byte
	floor int

	// inbox holds already-read bytes not yet delivered to a caller. It
	// carries across every message read on this connection, including the
	// handoff between unrelated protocol stages sharing one socket.
	inbox []byte

	// scratch is a reusable read buffer, avoiding an allocation per
	// underlying Read the way the teacher's fixed-size header array does.
	scratch [512]byte
}

func newFramer(conn net.Conn, opts ...Option) *framer {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &framer{
		conn:  conn,
		term:  o.Terminator,
		floor: o.MinLength,
	}
}

func (fr *framer) inboxBytes() []byte { return fr.inbox }

func (fr *framer) setInbox(b []byte) { fr.inbox = b }

// readMessage implements C1's read_message contract: it returns exactly one
// logical message with the terminator stripped, or a *protoerr.Error with
// kind Timeout or Syntax, or a plain I/O error if the connection itself
// failed.
func (fr *framer) readMessage(maxLength int, idleTimeout time.Duration) (string, error) {
	if fr.conn == nil {
		return "", ErrInvalidArgument
	}
	if maxLength < fr.floor {
		maxLength = fr.floor
	}

	for {
		// Before issuing a read, check whether a prior read (or a residual
		// handoff) already contains a full message; if so, no read is issued.
		if p := bytes.Index(fr.inbox, fr.term); p >= 0 {
			if p+len(fr.term) > maxLength {
				return "", protoerr.New(protoerr.Syntax, nil)
			}
			msg := string(fr.inbox[:p])
			fr.inbox = fr.inbox[p+len(fr.term):]
			return msg, nil
		}

		if len(fr.inbox) > maxLength-len(fr.term) {
			return "", protoerr.New(protoerr.Syntax, nil)
		}

		n, err := fr.readOnce(idleTimeout)
		if n > 0 {
			fr.inbox = append(fr.inbox, fr.scratch[:n]...)
		}
		if err != nil {
			return "", err
		}
	}
}

// readOnce issues one underlying read bounded by idleTimeout, classifying a
// deadline expiry as the Timeout failure kind.
func (fr *framer) readOnce(idleTimeout time.Duration) (int, error) {
	if err := fr.conn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
		return 0, err
	}
	n, err := fr.conn.Read(fr.scratch[:])
	// Guard against broken Readers that violate the io.Reader contract by
	// returning (0, nil) on a non-empty buffer.
	if n == 0 && err == nil {
		return 0, io.ErrNoProgress
	}
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return n, protoerr.New(protoerr.Timeout, err)
		}
		return n, err
	}
	return n, nil
}
