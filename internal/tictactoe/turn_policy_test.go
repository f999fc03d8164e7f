package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

func TestFixedFirst(t *testing.T) {
	players := entity.DefaultPlayers()

	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, FixedFirst{}.DecideFirstPlayer(players))
	}
}

func TestDiceRoll(t *testing.T) {
	t.Run("Higher roll starts", func(t *testing.T) {
		// Given: a seeded dice policy
		policy := NewDiceRoll(rand.New(rand.NewSource(7)))
		players := entity.DefaultPlayers()

		for i := 0; i < 100; i++ {
			// When: deciding who starts
			first := policy.DecideFirstPlayer(players)

			// Then: the rolls are distinct, in range, and the higher one starts
			rolls := policy.LastRolls
			assert.NotEqual(t, rolls[0], rolls[1])
			for _, roll := range rolls {
				assert.GreaterOrEqual(t, roll, diceMin)
				assert.LessOrEqual(t, roll, diceMax)
			}
			assert.Greater(t, rolls[first], rolls[1-first])
		}
	})

	t.Run("Same seed gives the same decisions", func(t *testing.T) {
		players := entity.DefaultPlayers()
		left := NewDiceRoll(rand.New(rand.NewSource(42)))
		right := NewDiceRoll(rand.New(rand.NewSource(42)))

		for i := 0; i < 20; i++ {
			assert.Equal(t, left.DecideFirstPlayer(players), right.DecideFirstPlayer(players))
		}
	})
}

func TestRandom(t *testing.T) {
	// Given: a seeded random policy
	policy := NewRandom(rand.New(rand.NewSource(1)))
	players := entity.DefaultPlayers()

	// When: deciding many times
	seen := map[int]int{}
	for i := 0; i < 200; i++ {
		seen[policy.DecideFirstPlayer(players)]++
	}

	// Then: only 0 and 1 come out, both of them
	assert.Len(t, seen, 2)
	assert.Positive(t, seen[0])
	assert.Positive(t, seen[1])
}

func TestNewTurnPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.IsType(t, FixedFirst{}, NewTurnPolicy(entity.FirstPlayerPolicyFixed, rng))
	assert.IsType(t, &DiceRoll{}, NewTurnPolicy(entity.FirstPlayerPolicyDiceRolling, rng))
	assert.IsType(t, &Random{}, NewTurnPolicy(entity.FirstPlayerPolicyRandom, rng))
}
