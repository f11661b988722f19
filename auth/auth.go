// Package auth runs the five-step challenge/response handshake (component
// C3 of the spec) over a session.IO.
package auth

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"code.hybscloud.com/rovernet/protoerr"
	"code.hybscloud.com/rovernet/protocol"
	"code.hybscloud.com/rovernet/session"
)

// Result carries the session state the handshake establishes, handed off
// to the navigator once authentication succeeds.
type Result struct {
	Username string
	BaseHash uint16
	KeyID    int
}

// Run executes the five ordered steps of spec.md §4.3 on s, narrating each
// one via logger. On success it returns the established session state; the
// residual bytes left in s's inbox are the caller's responsibility to carry
// forward (session.IO already owns that buffer, so no explicit transfer is
// needed as long as the same *session.IO is reused for navigation).
func Run(s *session.IO, logger *log.Entry) (Result, error) {
	var res Result

	username, err := processUsername(s, logger)
	if err != nil {
		return res, err
	}
	res.Username = username
	res.BaseHash = baseHash(username)
	logger.Debugf("- sent username: %s", username)

	keyID, err := processKeyID(s, logger)
	if err != nil {
		return res, err
	}
	res.KeyID = keyID

	serverHash := mod16(int(res.BaseHash) + int(protocol.KeyTable[keyID].ServerKey))
	if err := sendServerHash(s, serverHash); err != nil {
		return res, err
	}
	logger.Debugf("- was requested to confirm server hash: %d", serverHash)

	if err := confirmClientHash(s, logger, res.BaseHash, keyID); err != nil {
		return res, err
	}

	if err := s.Send(protocol.OK); err != nil {
		return res, err
	}
	logger.Debug("- authenticated successfully!")

	return res, nil
}

func processUsername(s *session.IO, logger *log.Entry) (string, error) {
	logger.Debug("- started authenticating.")
	username, err := s.Exchange(protocol.MaxUsername, protocol.DefaultTimeout)
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", protoerr.New(protoerr.Syntax, nil)
	}
	return username, nil
}

func processKeyID(s *session.IO, logger *log.Entry) (int, error) {
	if err := s.Send(protocol.KeyRequest); err != nil {
		return 0, err
	}
	logger.Debug("- was requested to send auth key id.")

	raw, err := s.Exchange(protocol.MaxKeyID, protocol.DefaultTimeout)
	if err != nil {
		return 0, err
	}
	if !isDigits(raw) {
		return 0, protoerr.New(protoerr.Syntax, nil)
	}
	keyID, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0, protoerr.New(protoerr.Syntax, convErr)
	}
	if keyID < 0 || keyID > 4 {
		return 0, protoerr.New(protoerr.AuthKeysOutOfRange, nil)
	}
	logger.Debugf("- sent auth key id: %d", keyID)
	return keyID, nil
}

func sendServerHash(s *session.IO, serverHash int) error {
	return s.Send(strconv.Itoa(serverHash) + "\a\b")
}

func confirmClientHash(s *session.IO, logger *log.Entry, baseHash uint16, keyID int) error {
	raw, err := s.Exchange(protocol.MaxConfirmation, protocol.DefaultTimeout)
	if err != nil {
		return err
	}
	if !isDigits(raw) || len(raw) > protocol.MaxConfirmation-len(protocol.Terminator) {
		return protoerr.New(protoerr.Syntax, nil)
	}
	logger.Debugf("- sent robot hash to confirm: %s", raw)
	r, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return protoerr.New(protoerr.Syntax, convErr)
	}
	if mod16(r-int(protocol.KeyTable[keyID].ClientKey)) != int(baseHash) {
		return protoerr.New(protoerr.Login, nil)
	}
	return nil
}

// baseHash computes (sum of ASCII values * 1000) mod 65536.
func baseHash(username string) uint16 {
	sum := 0
	for _, b := range []byte(username) {
		sum += int(b)
	}
	return uint16(mod16(sum * 1000))
}

func mod16(x int) int {
	m := x % protocol.Modulus
	if m < 0 {
		m += protocol.Modulus
	}
	return m
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
