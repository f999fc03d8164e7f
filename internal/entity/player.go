package entity

import "github.com/google/uuid"

type Shape string

const (
	ShapeX         Shape = "x"
	ShapeRing      Shape = "ring"
	ShapeRectangle Shape = "rectangle"
	ShapeTriangle  Shape = "triangle"
)

var Shapes = []Shape{ShapeX, ShapeRing, ShapeRectangle, ShapeTriangle}

const (
	DefaultFirstPlayerName  = "Player 1"
	DefaultSecondPlayerName = "Player 2"

	DefaultFirstPlayerShape  = ShapeX
	DefaultSecondPlayerShape = ShapeRing
)

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
}

func NewPlayer(name string, shape Shape) Player {
	return Player{
		ID:    uuid.NewString(),
		Name:  name,
		Shape: shape,
	}
}

// DefaultPlayers - the pair used when nobody registered players for a game.
func DefaultPlayers() [2]Player {
	return [2]Player{
		NewPlayer(DefaultFirstPlayerName, DefaultFirstPlayerShape),
		NewPlayer(DefaultSecondPlayerName, DefaultSecondPlayerShape),
	}
}

func IsKnownShape(shape Shape) bool {
	for _, known := range Shapes {
		if known == shape {
			return true
		}
	}

	return false
}
