package hex

import "fmt"

// Direction is one of the six hex neighbour directions.
type Direction int

const (
	West Direction = iota
	East
	SouthWest
	SouthEast
	NorthWest
	NorthEast
)

// Directions 六个方向，顺序固定
var Directions = [6]Direction{West, East, SouthWest, SouthEast, NorthWest, NorthEast}

// 立方坐标单位向量 (x, y)，z 由 -x-y 推出
var dirVectors = [6]Coordinate{
	West:      {-1, +1}, // z 0
	East:      {+1, -1}, // z 0
	SouthWest: {-1, 0},  // z +1
	SouthEast: {0, -1},  // z +1
	NorthWest: {0, +1},  // z -1
	NorthEast: {+1, 0},  // z -1
}

// Vector returns the unit cube vector of d.
func (d Direction) Vector() Coordinate {
	if d < 0 || int(d) >= len(dirVectors) {
		panic(fmt.Sprintf("hex: invalid direction %d", d))
	}
	return dirVectors[d]
}

// Movable reports whether d may appear in a move command.
// The two north directions never do.
func (d Direction) Movable() bool {
	switch d {
	case West, East, SouthWest, SouthEast:
		return true
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case West:
		return "W"
	case East:
		return "E"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Angle is a single 60° rotation step.
type Angle int

const (
	Left  Angle = iota // counter-clockwise
	Right              // clockwise
)

func (a Angle) String() string {
	if a == Left {
		return "CCW"
	}
	return "CW"
}
