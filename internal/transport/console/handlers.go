package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/dooz/internal/entity"
)

var (
	ErrPayloadRequired = errors.New("payload is required")
	ErrCellRequired    = errors.New("row and col are required")
)

func (that *Server) handleGameGet(_ context.Context, _ *Message) (ResponsePayload, error) {
	return that.gameResponse(that.uGame.Snapshot()), nil
}

func (that *Server) handleGameStart(_ context.Context, _ *Message) (ResponsePayload, error) {
	log := that.logger.With("method", "handleGameStart")

	session := that.uGame.StartGame()
	log.Info("game started", "size", session.Board.Size)

	return that.gameResponse(session), nil
}

func (that *Server) handleGameReset(_ context.Context, _ *Message) (ResponsePayload, error) {
	return that.gameResponse(that.uGame.ResetGame()), nil
}

func (that *Server) handleGameMove(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq movePayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return ResponsePayload{}, ErrCellRequired
	}

	return that.gameResponse(that.uGame.PlayMove(*payloadReq.Row, *payloadReq.Col)), nil
}

func (that *Server) handleSettingsGet(_ context.Context, _ *Message) (ResponsePayload, error) {
	return that.settingsResponse(), nil
}

func (that *Server) handleTheme(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq themePayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	that.uSettings.SetTheme(payloadReq.Theme)

	return that.settingsResponse(), nil
}

func (that *Server) handlePlayersMode(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq playersModePayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	that.uSettings.SetPlayersMode(payloadReq.PlayersMode)

	return that.settingsResponse(), nil
}

func (that *Server) handleAiDifficulty(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq aiDifficultyPayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	that.uSettings.SetAiDifficulty(payloadReq.AiDifficulty)

	return that.settingsResponse(), nil
}

func (that *Server) handleFirstPlayerPolicy(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq firstPlayerPolicyPayload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	that.uSettings.SetFirstPlayerPolicy(payloadReq.FirstPlayerPolicy)

	return that.settingsResponse(), nil
}

func (that *Server) handleBoardSizeIncrease(_ context.Context, _ *Message) (ResponsePayload, error) {
	changed := that.uSettings.IncreaseBoardSize()

	response := that.settingsResponse()
	response.Changed = &changed

	return response, nil
}

func (that *Server) handleBoardSizeDecrease(_ context.Context, _ *Message) (ResponsePayload, error) {
	changed := that.uSettings.DecreaseBoardSize()

	response := that.settingsResponse()
	response.Changed = &changed

	return response, nil
}

// handlePlayers - a rejected player info is not a protocol error: the reply carries the reason
// and the unchanged settings.
func (that *Server) handlePlayers(_ context.Context, msg *Message) (ResponsePayload, error) {
	var payloadReq entity.PlayerInfo
	if err := decodePayload(msg, &payloadReq); err != nil {
		return ResponsePayload{}, err
	}

	response := that.settingsResponse()
	if err := that.uSettings.SavePlayerInfo(payloadReq); err != nil {
		response.Error = err.Error()
		return response, nil
	}

	return that.settingsResponse(), nil
}

func (that *Server) gameResponse(session entity.GameSession) ResponsePayload {
	return ResponsePayload{Game: &session}
}

func (that *Server) settingsResponse() ResponsePayload {
	settings := that.uSettings.Settings()
	return ResponsePayload{Settings: &settings}
}

func decodePayload(msg *Message, target any) error {
	if len(msg.Payload) == 0 {
		return ErrPayloadRequired
	}

	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
