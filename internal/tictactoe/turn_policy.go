package tictactoe

import (
	"math/rand"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

const (
	diceMin = 1
	diceMax = 6
)

// TurnPolicy decides which of the two players makes the first move.
type TurnPolicy interface {
	DecideFirstPlayer(players [2]entity.Player) int
}

// FixedFirst - the first registered player always starts.
type FixedFirst struct{}

func (FixedFirst) DecideFirstPlayer([2]entity.Player) int {
	return 0
}

// DiceRoll - both players roll a die, the higher roll starts, ties are rolled again.
type DiceRoll struct {
	rng *rand.Rand

	// LastRolls keeps the deciding pair of rolls.
	LastRolls [2]int
}

func NewDiceRoll(rng *rand.Rand) *DiceRoll {
	return &DiceRoll{rng: rng}
}

func (that *DiceRoll) DecideFirstPlayer([2]entity.Player) int {
	for {
		first, second := that.roll(), that.roll()
		if first == second {
			continue
		}

		that.LastRolls = [2]int{first, second}
		if first > second {
			return 0
		}

		return 1
	}
}

func (that *DiceRoll) roll() int {
	return diceMin + that.rng.Intn(diceMax-diceMin+1)
}

// Random - picks either player with equal probability.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (that *Random) DecideFirstPlayer([2]entity.Player) int {
	return that.rng.Intn(2)
}

// NewTurnPolicy - maps the configured policy to its implementation.
func NewTurnPolicy(policy entity.FirstPlayerPolicy, rng *rand.Rand) TurnPolicy {
	switch policy {
	case entity.FirstPlayerPolicyDiceRolling:
		return NewDiceRoll(rng)
	case entity.FirstPlayerPolicyRandom:
		return NewRandom(rng)
	default:
		return FixedFirst{}
	}
}
