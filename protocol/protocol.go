// Package protocol holds the wire-level constants shared by the
// authentication and navigation state machines: command strings, payload
// length budgets, and the fixed key table (spec.md §6).
package protocol

import "time"

// Terminator is the two-byte sequence ending every wire message.
var Terminator = []byte{0x07, 0x08}

// Modulus is the modulus for all handshake hash arithmetic.
const Modulus = 65536

// Server-to-client commands, terminator included.
const (
	Move       = "102 MOVE\a\b"
	TurnLeft   = "103 TURN LEFT\a\b"
	TurnRight  = "104 TURN RIGHT\a\b"
	GetMessage = "105 GET MESSAGE\a\b"
	Logout     = "106 LOGOUT\a\b"
	KeyRequest = "107 KEY REQUEST\a\b"
	OK         = "200 OK\a\b"
)

// Error wire responses, terminator included.
const (
	LoginFailed   = "300 LOGIN FAILED\a\b"
	SyntaxError   = "301 SYNTAX ERROR\a\b"
	LogicError    = "302 LOGIC ERROR\a\b"
	KeyOutOfRange = "303 KEY OUT OF RANGE\a\b"
)

// Client-to-server notification payloads, terminator excluded: these are sent
// by the robot and compared literally against each message the framer returns.
const (
	Recharging = "RECHARGING"
	FullPower  = "FULL POWER"
)

// Max client payload lengths, terminator included (spec.md §6).
const (
	MaxUsername     = 20
	MaxKeyID        = 5
	MaxConfirmation = 7
	MaxPosition     = 12
	MaxRecharging   = 12
	MaxFullPower    = 12
	MaxMessage      = 100
)

// Idle timeouts (spec.md §4.2–§4.4).
const (
	DefaultTimeout  = 1 * time.Second
	RechargeTimeout = 5 * time.Second
)

// KeyPair is a (server_key, client_key) pair for one key id.
type KeyPair struct {
	ServerKey uint16
	ClientKey uint16
}

// KeyTable is the fixed mapping from key id in [0,4] to its key pair
// (spec.md §6).
var KeyTable = [5]KeyPair{
	0: {ServerKey: 23019, ClientKey: 32037},
	1: {ServerKey: 32037, ClientKey: 29295},
	2: {ServerKey: 18789, ClientKey: 13603},
	3: {ServerKey: 16443, ClientKey: 29533},
	4: {ServerKey: 18189, ClientKey: 21952},
}

// DefaultPort is the default bind port (spec.md §6).
const DefaultPort = 4321
