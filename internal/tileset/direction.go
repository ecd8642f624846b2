package tileset

import "fmt"

// Direction represents the four cardinal directions. North is -y.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in declaration order.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the x,y offset for moving in this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}
