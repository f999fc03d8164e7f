package entity

import (
	"errors"
	"fmt"
)

// Phase is the lifecycle stage of a game session.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinished
)

var ErrUnknownPhase = errors.New("unknown game phase")

var phaseNames = map[Phase]string{
	PhaseNotStarted: "not_started",
	PhaseInProgress: "in_progress",
	PhaseFinished:   "finished",
}

func (that Phase) String() string {
	if name, ok := phaseNames[that]; ok {
		return name
	}

	return fmt.Sprintf("phase(%d)", uint8(that))
}

func (that Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[that]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, uint8(that))
	}

	return []byte(that.String()), nil
}

// Outcome is what a board evaluation concluded.
type Outcome uint8

const (
	OutcomeOngoing Outcome = iota
	OutcomeWon
	OutcomeDraw
)

// Result of evaluating a board. Winner is set only for OutcomeWon.
type Result struct {
	Outcome Outcome
	Winner  string
}

func (that Result) IsTerminal() bool {
	return that.Outcome == OutcomeWon || that.Outcome == OutcomeDraw
}

// GameSession is the full mutable state of one playthrough.
type GameSession struct {
	Board              *Board    `json:"board,omitempty"`
	Players            [2]Player `json:"players"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	Phase              Phase     `json:"phase"`
	Winner             *Player   `json:"winner,omitempty"`
}

func (that GameSession) IsNotStarted() bool {
	return that.Phase == PhaseNotStarted
}

func (that GameSession) IsInProgress() bool {
	return that.Phase == PhaseInProgress
}

func (that GameSession) IsFinished() bool {
	return that.Phase == PhaseFinished
}

// CurrentPlayer is meaningful only while the game is in progress.
func (that GameSession) CurrentPlayer() (Player, bool) {
	if !that.IsInProgress() {
		return Player{}, false
	}

	return that.Players[that.CurrentPlayerIndex], true
}

// PlayerByID returns the session player with the given id.
func (that GameSession) PlayerByID(id string) (Player, bool) {
	for _, player := range that.Players {
		if player.ID != "" && player.ID == id {
			return player, true
		}
	}

	return Player{}, false
}

// Clone - deep copy safe to hand to observers.
func (that GameSession) Clone() GameSession {
	clone := GameSession{
		Board:              that.Board.Clone(),
		Players:            that.Players,
		CurrentPlayerIndex: that.CurrentPlayerIndex,
		Phase:              that.Phase,
	}

	if that.Winner != nil {
		winner := *that.Winner
		clone.Winner = &winner
	}

	return clone
}
