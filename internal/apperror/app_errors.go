package apperror

import "errors"

var (
	ErrUnknownShape      = errors.New("unknown player shape")
	ErrPlayerShapesEqual = errors.New("players must use different shapes")
	ErrPlayerNamesEqual  = errors.New("players must have different names")
	ErrPlayerNameEmpty   = errors.New("player name cannot be empty")

	ErrSettingsNotSaved = errors.New("settings could not be saved")
)
