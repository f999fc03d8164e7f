package console

import (
	"encoding/json"

	"github.com/rocketscienceinc/dooz/internal/entity"
	"github.com/rocketscienceinc/dooz/internal/notify"
)

// Message is one line of the protocol, in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Game         *entity.GameSession  `json:"game,omitempty"`
	Settings     *entity.Settings     `json:"settings,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
	Changed      *bool                `json:"changed,omitempty"`
	Error        string               `json:"error,omitempty"`
}

type movePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type themePayload struct {
	Theme entity.Theme `json:"theme"`
}

type playersModePayload struct {
	PlayersMode entity.PlayersMode `json:"players_mode"`
}

type aiDifficultyPayload struct {
	AiDifficulty entity.AiDifficulty `json:"ai_difficulty"`
}

type firstPlayerPolicyPayload struct {
	FirstPlayerPolicy entity.FirstPlayerPolicy `json:"first_player_policy"`
}
