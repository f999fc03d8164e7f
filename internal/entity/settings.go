package entity

import (
	"errors"
	"fmt"
)

// Store keys of the persisted settings.
const (
	KeyTheme             = "theme"
	KeyPlayersMode       = "players-mode"
	KeyBoardSize         = "board-size"
	KeyFirstPlayerName   = "first-player-name"
	KeySecondPlayerName  = "second-player-name"
	KeyFirstPlayerShape  = "first-player-shape"
	KeySecondPlayerShape = "second-player-shape"
	KeyAiDifficulty      = "ai-difficulty"
	KeyFirstPlayerPolicy = "first-player-policy"
)

var ErrUnknownSetting = errors.New("unknown setting value")

type Theme uint8

const (
	ThemeSystem Theme = iota
	ThemeLight
	ThemeDark
)

type PlayersMode uint8

const (
	PlayersModePvP PlayersMode = iota
	PlayersModePvC
)

type AiDifficulty uint8

const (
	AiDifficultyEasy AiDifficulty = iota
	AiDifficultyMedium
	AiDifficultyHard
)

type FirstPlayerPolicy uint8

const (
	FirstPlayerPolicyFixed FirstPlayerPolicy = iota
	FirstPlayerPolicyDiceRolling
	FirstPlayerPolicyRandom
)

// stored names; a value missing from a table is never written nor read back
var (
	themeNames = map[Theme]string{
		ThemeSystem: "System",
		ThemeLight:  "Light",
		ThemeDark:   "Dark",
	}
	playersModeNames = map[PlayersMode]string{
		PlayersModePvP: "PvP",
		PlayersModePvC: "PvC",
	}
	aiDifficultyNames = map[AiDifficulty]string{
		AiDifficultyEasy:   "Easy",
		AiDifficultyMedium: "Medium",
		AiDifficultyHard:   "Hard",
	}
	firstPlayerPolicyNames = map[FirstPlayerPolicy]string{
		FirstPlayerPolicyFixed:       "FixedFirst",
		FirstPlayerPolicyDiceRolling: "DiceRolling",
		FirstPlayerPolicyRandom:      "Random",
	}
)

func enumName[T ~uint8](names map[T]string, value T) string {
	if name, ok := names[value]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", uint8(value))
}

func parseEnum[T ~uint8](names map[T]string, name string) (T, bool) {
	for value, known := range names {
		if known == name {
			return value, true
		}
	}

	var zero T

	return zero, false
}

func unmarshalEnum[T ~uint8](names map[T]string, text []byte, target *T) error {
	value, ok := parseEnum(names, string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, text)
	}

	*target = value

	return nil
}

func (that Theme) String() string { return enumName(themeNames, that) }

func (that Theme) MarshalText() ([]byte, error) { return []byte(that.String()), nil }

func (that *Theme) UnmarshalText(text []byte) error { return unmarshalEnum(themeNames, text, that) }

// ParseTheme maps a stored name to a theme.
func ParseTheme(name string) (Theme, bool) { return parseEnum(themeNames, name) }

func (that PlayersMode) String() string { return enumName(playersModeNames, that) }

func (that PlayersMode) MarshalText() ([]byte, error) { return []byte(that.String()), nil }

func (that *PlayersMode) UnmarshalText(text []byte) error {
	return unmarshalEnum(playersModeNames, text, that)
}

func ParsePlayersMode(name string) (PlayersMode, bool) { return parseEnum(playersModeNames, name) }

func (that AiDifficulty) String() string { return enumName(aiDifficultyNames, that) }

func (that AiDifficulty) MarshalText() ([]byte, error) { return []byte(that.String()), nil }

func (that *AiDifficulty) UnmarshalText(text []byte) error {
	return unmarshalEnum(aiDifficultyNames, text, that)
}

func ParseAiDifficulty(name string) (AiDifficulty, bool) { return parseEnum(aiDifficultyNames, name) }

func (that FirstPlayerPolicy) String() string { return enumName(firstPlayerPolicyNames, that) }

func (that FirstPlayerPolicy) MarshalText() ([]byte, error) { return []byte(that.String()), nil }

func (that *FirstPlayerPolicy) UnmarshalText(text []byte) error {
	return unmarshalEnum(firstPlayerPolicyNames, text, that)
}

func ParseFirstPlayerPolicy(name string) (FirstPlayerPolicy, bool) {
	return parseEnum(firstPlayerPolicyNames, name)
}

// ParseShape accepts only the shapes the game knows how to draw.
func ParseShape(name string) (Shape, bool) {
	shape := Shape(name)

	return shape, IsKnownShape(shape)
}

// Settings is the persisted configuration snapshot.
type Settings struct {
	Theme             Theme             `json:"theme"`
	PlayersMode       PlayersMode       `json:"players_mode"`
	BoardSize         int               `json:"board_size"`
	FirstPlayerName   string            `json:"first_player_name"`
	SecondPlayerName  string            `json:"second_player_name"`
	FirstPlayerShape  Shape             `json:"first_player_shape"`
	SecondPlayerShape Shape             `json:"second_player_shape"`
	AiDifficulty      AiDifficulty      `json:"ai_difficulty"`
	FirstPlayerPolicy FirstPlayerPolicy `json:"first_player_policy"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeSystem,
		PlayersMode:       PlayersModePvC,
		BoardSize:         DefaultBoardSize,
		FirstPlayerName:   DefaultFirstPlayerName,
		SecondPlayerName:  DefaultSecondPlayerName,
		FirstPlayerShape:  DefaultFirstPlayerShape,
		SecondPlayerShape: DefaultSecondPlayerShape,
		AiDifficulty:      AiDifficultyEasy,
		FirstPlayerPolicy: FirstPlayerPolicyDiceRolling,
	}
}

// PlayerInfo is the identity data edited together and saved as one batch.
type PlayerInfo struct {
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	FirstShape  Shape  `json:"first_shape"`
	SecondShape Shape  `json:"second_shape"`
}

func (that Settings) PlayerInfo() PlayerInfo {
	return PlayerInfo{
		FirstName:   that.FirstPlayerName,
		SecondName:  that.SecondPlayerName,
		FirstShape:  that.FirstPlayerShape,
		SecondShape: that.SecondPlayerShape,
	}
}
