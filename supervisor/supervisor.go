// Package supervisor runs one connection end to end: authentication,
// navigation, and the failure-to-wire-response mapping that closes every
// session cleanly regardless of how it ends. This is component C5 of the
// spec (the session supervisor).
package supervisor

import (
	"net"

	log "github.com/sirupsen/logrus"

	"code.hybscloud.com/rovernet/auth"
	"code.hybscloud.com/rovernet/nav"
	"code.hybscloud.com/rovernet/protoerr"
	"code.hybscloud.com/rovernet/session"
)

// Serve drives conn through authentication and navigation, logs the
// outcome against logger, and closes conn before returning. It never
// panics on a malformed or hostile peer: every protocol failure is
// translated to its wire response (when one applies) and the connection
// is closed either way.
func Serve(conn net.Conn, logger *log.Entry) {
	defer conn.Close()

	logger = logger.WithField("remote", conn.RemoteAddr())
	logger.Info("connection opened")

	s := session.New(conn)
	s.OnRecharge = func() { logger.Debug("- robot is recharging.") }

	result, err := auth.Run(s, logger)
	if err != nil {
		reportFailure(s, logger, err)
		return
	}
	logger.WithField("user", result.Username).Debug("authenticated")

	message, err := nav.Run(s, logger)
	if err != nil {
		reportFailure(s, logger, err)
		return
	}

	logger.WithField("message", message).Info("connection closed: gift collected")
}

func reportFailure(s *session.IO, logger *log.Entry, err error) {
	kind, ok := protoerr.As(err)
	if !ok {
		logger.WithField("error", err).Warn("connection closed: unexpected error")
		return
	}

	if wire, hasWire := kind.WireResponse(); hasWire {
		if sendErr := s.Send(wire); sendErr != nil {
			logger.WithField("error", sendErr).Debug("- failed to send error response.")
		}
	}

	logger.WithField("kind", kind).Warn("connection closed")
}
