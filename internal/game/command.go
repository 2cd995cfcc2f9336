package game

import (
	"fmt"

	"hexfall/internal/hex"
)

// Command is one of the six player actions: a move in one of the four
// movable directions or a rotation.
type Command uint8

const (
	MoveW Command = iota
	MoveE
	MoveSW
	MoveSE
	RotateLeft  // counter-clockwise
	RotateRight // clockwise
)

// Commands is the fixed order used wherever a search needs a deterministic
// tie-break.
var Commands = [6]Command{MoveW, MoveE, MoveSW, MoveSE, RotateLeft, RotateRight}

// Move returns the move command for d. The two north directions are not
// commands; asking for them is a contract violation.
func Move(d hex.Direction) Command {
	switch d {
	case hex.West:
		return MoveW
	case hex.East:
		return MoveE
	case hex.SouthWest:
		return MoveSW
	case hex.SouthEast:
		return MoveSE
	}
	panic(fmt.Sprintf("game: %v is not a move direction", d))
}

// Rotate returns the rotate command for a.
func Rotate(a hex.Angle) Command {
	if a == hex.Left {
		return RotateLeft
	}
	return RotateRight
}

// IsMove reports whether c is a move (as opposed to a rotation).
func (c Command) IsMove() bool {
	return c <= MoveSE
}

// Direction returns the direction of a move command.
func (c Command) Direction() hex.Direction {
	switch c {
	case MoveW:
		return hex.West
	case MoveE:
		return hex.East
	case MoveSW:
		return hex.SouthWest
	case MoveSE:
		return hex.SouthEast
	}
	panic(fmt.Sprintf("game: %v has no direction", c))
}

// Angle returns the angle of a rotate command.
func (c Command) Angle() hex.Angle {
	switch c {
	case RotateLeft:
		return hex.Left
	case RotateRight:
		return hex.Right
	}
	panic(fmt.Sprintf("game: %v has no angle", c))
}

func (c Command) String() string {
	switch c {
	case MoveW:
		return "W"
	case MoveE:
		return "E"
	case MoveSW:
		return "SW"
	case MoveSE:
		return "SE"
	case RotateLeft:
		return "CCW"
	case RotateRight:
		return "CW"
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// Lockable reports whether at least one command applied to u leaves the
// board, i.e. u is a resting placement rather than one in transit.
func Lockable(b *Board, u Unit) bool {
	_, ok := LockCommand(b, u)
	return ok
}

// LockCommand returns the first command, in Commands order, whose result
// is invalid on b.
func LockCommand(b *Board, u Unit) (Command, bool) {
	for _, c := range Commands {
		if !b.CheckUnit(u.Apply(c)) {
			return c, true
		}
	}
	return 0, false
}
