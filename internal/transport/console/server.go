package console

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/dooz/internal/entity"
	"github.com/rocketscienceinc/dooz/internal/notify"
)

const (
	actionError        = "error"
	actionNotification = "notification"
	actionLoaded       = "settings:loaded"

	maxLineSize = 64 * 1024
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrLineTooLong   = errors.New("message too long")
)

type inputLine struct {
	body    []byte
	tooLong bool
}

type uGame interface {
	Snapshot() entity.GameSession
	StartGame() entity.GameSession
	ResetGame() entity.GameSession
	PlayMove(row, col int) entity.GameSession
}

type uSettings interface {
	Settings() entity.Settings
	Loaded() <-chan struct{}
	Notifications() *notify.Queue

	SetTheme(theme entity.Theme)
	SetPlayersMode(mode entity.PlayersMode)
	SetAiDifficulty(difficulty entity.AiDifficulty)
	SetFirstPlayerPolicy(policy entity.FirstPlayerPolicy)
	IncreaseBoardSize() bool
	DecreaseBoardSize() bool
	SavePlayerInfo(info entity.PlayerInfo) error
}

type handler func(ctx context.Context, msg *Message) (ResponsePayload, error)

// Server speaks a line based JSON protocol: one Message per line in, one Message per line out.
// Notifications are written as they arrive, between replies.
type Server struct {
	logger    *slog.Logger
	uGame     uGame
	uSettings uSettings

	writeMutex sync.Mutex
	handlers   map[string]handler
}

func New(logger *slog.Logger, uGame uGame, uSettings uSettings) *Server {
	server := &Server{
		logger:    logger.With("component", "console"),
		uGame:     uGame,
		uSettings: uSettings,

		handlers: make(map[string]handler),
	}

	server.handlers["game:get"] = server.handleGameGet
	server.handlers["game:start"] = server.handleGameStart
	server.handlers["game:reset"] = server.handleGameReset
	server.handlers["game:move"] = server.handleGameMove

	server.handlers["settings:get"] = server.handleSettingsGet
	server.handlers["settings:theme"] = server.handleTheme
	server.handlers["settings:players-mode"] = server.handlePlayersMode
	server.handlers["settings:ai-difficulty"] = server.handleAiDifficulty
	server.handlers["settings:first-player-policy"] = server.handleFirstPlayerPolicy
	server.handlers["settings:board-size:increase"] = server.handleBoardSizeIncrease
	server.handlers["settings:board-size:decrease"] = server.handleBoardSizeDecrease
	server.handlers["settings:players"] = server.handlePlayers

	return server
}

// Serve - reads requests from in until EOF or ctx is done and writes replies to out.
func (that *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Serve")

	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		that.pushEvents(ctx, out)
	}()

	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	go func() {
		readErr <- readLines(ctx, in, lines)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("console closed", "reason", ctx.Err())
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}

			log.Info("input closed")

			return nil
		case line := <-lines:
			if line.tooLong {
				log.Debug("request dropped", "error", ErrLineTooLong)
				if err := that.sendErrorResponse(out, actionError, ErrLineTooLong.Error()); err != nil {
					return err
				}

				continue
			}

			if err := that.handleLine(ctx, line.body, out); err != nil {
				return err
			}
		}
	}
}

// handleLine - a broken request gets an error reply, only a failed write stops the server.
func (that *Server) handleLine(ctx context.Context, line []byte, out io.Writer) error {
	log := that.logger.With("method", "handleLine")

	var message Message
	if err := json.Unmarshal(line, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		return that.sendErrorResponse(out, actionError, "malformed message")
	}

	payload, err := that.handle(ctx, &message)
	if err != nil {
		log.Debug("error processing message", "action", message.Action, "error", err)
		return that.sendErrorResponse(out, message.Action, err.Error())
	}

	return that.sendMessage(out, message.Action, payload)
}

func (that *Server) handle(ctx context.Context, message *Message) (ResponsePayload, error) {
	handle, ok := that.handlers[message.Action]
	if !ok {
		return ResponsePayload{}, fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)
	}

	return handle(ctx, message)
}

// pushEvents - announces the end of the initial settings load, then forwards notifications until ctx is done.
func (that *Server) pushEvents(ctx context.Context, out io.Writer) {
	log := that.logger.With("method", "pushEvents")

	select {
	case <-ctx.Done():
		return
	case <-that.uSettings.Loaded():
		settings := that.uSettings.Settings()
		if err := that.sendMessage(out, actionLoaded, ResponsePayload{Settings: &settings}); err != nil {
			log.Error("failed to send settings", "error", err)
		}
	}

	for {
		notification, err := that.uSettings.Notifications().Next(ctx)
		if err != nil {
			return
		}

		if err = that.sendMessage(out, actionNotification, ResponsePayload{Notification: &notification}); err != nil {
			log.Error("failed to send notification", "error", err)
		}
	}
}

// FlushNotifications - writes the notifications still queued once Serve has returned.
func (that *Server) FlushNotifications(out io.Writer) error {
	for _, notification := range that.uSettings.Notifications().Drain() {
		if err := that.sendMessage(out, actionNotification, ResponsePayload{Notification: &notification}); err != nil {
			return err
		}
	}

	return nil
}

func (that *Server) sendMessage(out io.Writer, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	line, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if _, err = out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(out io.Writer, action, text string) error {
	return that.sendMessage(out, action, ResponsePayload{Error: text})
}

// readLines - sends every non empty line to lines; returns nil on EOF. A line longer than
// maxLineSize is skipped up to its newline and sent as too long.
func readLines(ctx context.Context, in io.Reader, lines chan<- inputLine) error {
	reader := bufio.NewReaderSize(in, 4096)

	for {
		line, err := readLine(reader)
		if len(line.body) > 0 || line.tooLong {
			select {
			case lines <- line:
			case <-ctx.Done():
				return nil
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func readLine(reader *bufio.Reader) (inputLine, error) {
	var line inputLine

	for {
		chunk, err := reader.ReadSlice('\n')
		if !line.tooLong {
			line.body = append(line.body, chunk...)
			if len(bytes.TrimRight(line.body, "\r\n")) > maxLineSize {
				line = inputLine{tooLong: true}
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		line.body = bytes.TrimRight(line.body, "\r\n")

		return line, err
	}
}
