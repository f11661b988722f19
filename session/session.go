// Package session wraps a framer.Framer with the transport-level rules
// shared by every protocol stage: recharge-interleave handling and framed
// sends. This is component C2 of the spec (session I/O).
package session

import (
	"net"
	"time"

	"code.hybscloud.com/rovernet/framer"
	"code.hybscloud.com/rovernet/protoerr"
	"code.hybscloud.com/rovernet/protocol"
)

// IO is the per-connection session I/O layer used by both the
// authenticator and the navigator.
type IO struct {
	conn net.Conn
	fr   *framer.Framer

	// OnRecharge, if set, is called each time a RECHARGING notification is
	// observed, before the follow-up FULL POWER read. Used by the
	// supervisor to narrate the event.
	OnRecharge func()
}

// New wraps conn in a session.IO with a fresh framer.
func New(conn net.Conn) *IO {
	return &IO{conn: conn, fr: framer.New(conn)}
}

// Inbox returns bytes already read but not yet delivered, for handoff to a
// different protocol stage sharing this connection.
func (s *IO) Inbox() []byte { return s.fr.Inbox() }

// SetInbox restores a residual buffer captured from a prior stage's Inbox.
func (s *IO) SetInbox(b []byte) { s.fr.SetInbox(b) }

// Exchange returns the next client message that is neither a recharge
// notification nor (outside of a recharge interlude) a full-power
// notification, per spec.md §4.2.
func (s *IO) Exchange(maxLength int, idleTimeout time.Duration) (string, error) {
	msg, err := s.fr.ReadMessage(maxLength, idleTimeout)
	if err != nil {
		return "", err
	}

	if msg == protocol.FullPower {
		return "", protoerr.New(protoerr.Logic, nil)
	}

	if msg == protocol.Recharging {
		if s.OnRecharge != nil {
			s.OnRecharge()
		}
		reply, err := s.fr.ReadMessage(protocol.MaxFullPower, protocol.RechargeTimeout)
		if err != nil {
			return "", err
		}
		if reply != protocol.FullPower {
			return "", protoerr.New(protoerr.Logic, nil)
		}
		return s.Exchange(maxLength, idleTimeout)
	}

	return msg, nil
}

// Send writes a fully-framed payload (terminator included) to the socket.
func (s *IO) Send(payload string) error {
	_, err := s.conn.Write([]byte(payload))
	return err
}
