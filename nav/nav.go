// Package nav pilots a robot from an unknown start position and unknown
// orientation to coordinate (0,0) and retrieves the secret message there.
// This is component C4 of the spec (the navigator).
package nav

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"code.hybscloud.com/rovernet/protoerr"
	"code.hybscloud.com/rovernet/protocol"
	"code.hybscloud.com/rovernet/session"
)

// Orientation is one of the four cardinal facings, ordered as the fixed
// array [UP, RIGHT, DOWN, LEFT] spec.md §4.4 rotates against by numeric
// comparison rather than minimum angle.
type Orientation int

const (
	Up Orientation = iota
	Right
	Down
	Left
)

// Unknown is the navigator's orientation before the first successful
// forward displacement establishes it.
const Unknown Orientation = -1

// Point is a 2-D integer grid coordinate.
type Point struct{ X, Y int }

// Gift is the coordinate every session is piloted toward.
var Gift = Point{0, 0}

type navigator struct {
	s           *session.IO
	logger      *log.Entry
	position    Point
	orientation Orientation
}

// Run pilots the robot to the gift coordinate and returns the secret
// message retrieved there.
func Run(s *session.IO, logger *log.Entry) (string, error) {
	n := &navigator{s: s, logger: logger, orientation: Unknown}
	logger.Debug("- started finding gift.")

	if err := n.discoverOrientation(); err != nil {
		return "", err
	}

	for n.position != Gift {
		if err := n.stepToward(Gift); err != nil {
			return "", err
		}
	}

	return n.collect()
}

func (n *navigator) readPosition() (Point, error) {
	raw, err := n.s.Exchange(protocol.MaxPosition, protocol.DefaultTimeout)
	if err != nil {
		return Point{}, err
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 3 || parts[0] != "OK" {
		return Point{}, protoerr.New(protoerr.Syntax, nil)
	}
	x, ok := parseSignedInt(parts[1])
	if !ok {
		return Point{}, protoerr.New(protoerr.Syntax, nil)
	}
	y, ok := parseSignedInt(parts[2])
	if !ok {
		return Point{}, protoerr.New(protoerr.Syntax, nil)
	}
	return Point{X: x, Y: y}, nil
}

func (n *navigator) turnRight() error {
	if err := n.s.Send(protocol.TurnRight); err != nil {
		return err
	}
	p, err := n.readPosition()
	if err != nil {
		return err
	}
	n.position = p
	if n.orientation != Unknown {
		n.orientation = (n.orientation + 1) % 4
	}
	n.logger.Debug("- moved right.")
	return nil
}

func (n *navigator) turnLeft() error {
	if err := n.s.Send(protocol.TurnLeft); err != nil {
		return err
	}
	p, err := n.readPosition()
	if err != nil {
		return err
	}
	n.position = p
	if n.orientation != Unknown {
		n.orientation = (n.orientation + 3) % 4
	}
	n.logger.Debug("- moved left.")
	return nil
}

// moveForward sends one MOVE and, if the reply reports no displacement
// (a blocked step), performs the turn-right/move/turn-left sidestep
// maneuver before committing. It never recurses: a second blocked MOVE is
// accepted as-is. It returns the position the robot was at before this
// call's net displacement.
func (n *navigator) moveForward() (Point, error) {
	prev := n.position

	if err := n.s.Send(protocol.Move); err != nil {
		return Point{}, err
	}
	newPos, err := n.readPosition()
	if err != nil {
		return Point{}, err
	}
	n.logger.Debugf("- moved forward: %+v.", newPos)

	if newPos == prev {
		if err := n.turnRight(); err != nil {
			return Point{}, err
		}
		if err := n.s.Send(protocol.Move); err != nil {
			return Point{}, err
		}
		if newPos, err = n.readPosition(); err != nil {
			return Point{}, err
		}
		n.logger.Debugf("- moved forward: %+v.", newPos)

		if err := n.turnLeft(); err != nil {
			return Point{}, err
		}
		prev = n.position

		if err := n.s.Send(protocol.Move); err != nil {
			return Point{}, err
		}
		if newPos, err = n.readPosition(); err != nil {
			return Point{}, err
		}
		n.logger.Debugf("- moved forward: %+v.", newPos)
	}

	n.position = newPos
	return prev, nil
}

func (n *navigator) discoverOrientation() error {
	if err := n.turnRight(); err != nil {
		return err
	}
	prev, err := n.moveForward()
	if err != nil {
		return err
	}

	d := Point{X: n.position.X - prev.X, Y: n.position.Y - prev.Y}
	switch d {
	case Point{X: 1, Y: 0}:
		n.orientation = Right
	case Point{X: -1, Y: 0}:
		n.orientation = Left
	case Point{X: 0, Y: 1}:
		n.orientation = Up
	case Point{X: 0, Y: -1}:
		n.orientation = Down
	default:
		n.orientation = Up
	}
	return nil
}

func (n *navigator) stepToward(target Point) error {
	diffX := target.X - n.position.X
	diffY := target.Y - n.position.Y

	var want Orientation
	if abs(diffX) > abs(diffY) {
		if diffX > 0 {
			want = Right
		} else {
			want = Left
		}
	} else {
		if diffY > 0 {
			want = Up
		} else {
			want = Down
		}
	}

	for n.orientation != want {
		if n.orientation < want {
			if err := n.turnRight(); err != nil {
				return err
			}
		} else {
			if err := n.turnLeft(); err != nil {
				return err
			}
		}
	}

	_, err := n.moveForward()
	return err
}

func (n *navigator) collect() (string, error) {
	if err := n.s.Send(protocol.GetMessage); err != nil {
		return "", err
	}
	msg, err := n.s.Exchange(protocol.MaxMessage, protocol.DefaultTimeout)
	if err != nil {
		return "", err
	}
	n.logger.Debugf("- picked up gift: %s", msg)

	if err := n.s.Send(protocol.Logout); err != nil {
		return "", err
	}
	n.logger.Debug("- successfully logged out!")
	return msg, nil
}

func parseSignedInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	body := s
	neg := false
	if s[0] == '-' {
		neg = true
		body = s[1:]
	}
	if body == "" || strings.IndexFunc(body, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		return 0, false
	}
	v, err := strconv.Atoi(body)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
