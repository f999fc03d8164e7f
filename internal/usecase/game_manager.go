package usecase

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/rocketscienceinc/dooz/internal/entity"
	"github.com/rocketscienceinc/dooz/internal/tictactoe"
)

// computerIndex is the seat the computer takes in player-vs-computer games.
const computerIndex = 1

type settingsProvider interface {
	Settings() entity.Settings
}

// moveSelector picks the computer's move. The board it gets is a copy.
type moveSelector interface {
	SelectMove(board *entity.Board, difficulty entity.AiDifficulty) (row, col int, ok bool)
}

// GameManager is the only place the game session is mutated. Calls are serialized,
// observers get a copy of the session after every change.
type GameManager struct {
	logger   *slog.Logger
	settings settingsProvider
	bot      moveSelector
	rng      *rand.Rand

	mu         sync.Mutex
	session    entity.GameSession
	mode       entity.PlayersMode
	difficulty entity.AiDifficulty
	observers  []func(entity.GameSession)
}

// NewGameManager - settings and bot may be nil: defaults are used and every move comes from the caller.
func NewGameManager(logger *slog.Logger, settings settingsProvider, bot moveSelector, rng *rand.Rand) *GameManager {
	that := &GameManager{
		logger:   logger.With("component", "game_manager"),
		settings: settings,
		bot:      bot,
		rng:      rng,
	}

	that.session = that.newSession(that.currentSettings())

	return that
}

// Subscribe registers an observer called with a copy of the session after each change.
func (that *GameManager) Subscribe(observer func(entity.GameSession)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.observers = append(that.observers, observer)
}

func (that *GameManager) Snapshot() entity.GameSession {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Clone()
}

// StartGame - builds a fresh session off to the side and swaps it in, so observers never see a half reset game.
func (that *GameManager) StartGame() entity.GameSession {
	log := that.logger.With("method", "StartGame")

	that.mu.Lock()

	settings := that.currentSettings()
	next := that.newSession(settings)
	policy := tictactoe.NewTurnPolicy(settings.FirstPlayerPolicy, that.rng)
	next.CurrentPlayerIndex = policy.DecideFirstPlayer(next.Players)
	if dice, ok := policy.(*tictactoe.DiceRoll); ok {
		log.Info("dice rolled", "rolls", dice.LastRolls)
	}
	next.Phase = entity.PhaseInProgress
	next.Winner = nil

	that.session = next
	that.mode = settings.PlayersMode
	that.difficulty = settings.AiDifficulty

	log.Info("game started",
		"size", next.Board.Size,
		"mode", settings.PlayersMode,
		"policy", settings.FirstPlayerPolicy,
		"first", next.Players[next.CurrentPlayerIndex].Name,
	)

	that.playComputerTurns()

	return that.unlockAndNotify()
}

// ResetGame - back to NotStarted with an empty board of the configured size.
func (that *GameManager) ResetGame() entity.GameSession {
	that.mu.Lock()

	that.session = that.newSession(that.currentSettings())

	return that.unlockAndNotify()
}

// PlayMove - the current player takes (row, col). Moves outside of a running game, on owned
// cells or off the board are dropped silently.
func (that *GameManager) PlayMove(row, col int) entity.GameSession {
	that.mu.Lock()

	if !that.playMove(row, col) {
		snapshot := that.session.Clone()
		that.mu.Unlock()

		return snapshot
	}

	that.playComputerTurns()

	return that.unlockAndNotify()
}

// OwnerShape maps a session player to the shape it is drawn with.
func (that *GameManager) OwnerShape(playerID string) (entity.Shape, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.session.PlayerByID(playerID)
	if !ok {
		return "", false
	}

	return player.Shape, true
}

// playMove must be called with mu held. It reports whether the session changed.
func (that *GameManager) playMove(row, col int) bool {
	log := that.logger.With("method", "playMove", "row", row, "col", col)

	if !that.session.IsInProgress() {
		log.Debug("move ignored, game is not in progress", "phase", that.session.Phase)
		return false
	}

	board := that.session.Board
	if !board.InBounds(row, col) {
		log.Debug("move ignored, cell is off the board")
		return false
	}

	// a session that already reached a terminal board must not accept more moves
	if that.finishIfTerminal() {
		return true
	}

	player := that.session.Players[that.session.CurrentPlayerIndex]
	if !board.SetOwner(row, col, player.ID) {
		log.Debug("move ignored, cell is already owned")
		return false
	}

	that.session.CurrentPlayerIndex = 1 - that.session.CurrentPlayerIndex
	that.finishIfTerminal()

	return true
}

// finishIfTerminal must be called with mu held.
func (that *GameManager) finishIfTerminal() bool {
	result := tictactoe.Evaluate(that.session.Board)
	if !result.IsTerminal() {
		return false
	}

	that.session.Phase = entity.PhaseFinished
	that.session.Winner = nil

	if winner, ok := that.session.PlayerByID(result.Winner); ok {
		that.session.Winner = &winner
		that.logger.Info("game finished", "winner", winner.Name)
	} else {
		that.logger.Info("game finished in a draw")
	}

	return true
}

// playComputerTurns must be called with mu held.
func (that *GameManager) playComputerTurns() {
	if that.mode != entity.PlayersModePvC || that.bot == nil {
		return
	}

	log := that.logger.With("method", "playComputerTurns")

	for that.session.IsInProgress() && that.session.CurrentPlayerIndex == computerIndex {
		row, col, ok := that.bot.SelectMove(that.session.Board.Clone(), that.difficulty)
		if !ok {
			log.Warn("computer has no move")
			return
		}

		if !that.playMove(row, col) {
			log.Warn("computer move rejected", "row", row, "col", col)
			return
		}
	}
}

// unlockAndNotify releases mu and hands a copy of the session to every observer.
func (that *GameManager) unlockAndNotify() entity.GameSession {
	snapshot := that.session.Clone()
	observers := that.observers
	that.mu.Unlock()

	for _, observer := range observers {
		observer(snapshot.Clone())
	}

	return snapshot
}

func (that *GameManager) currentSettings() entity.Settings {
	if that.settings == nil {
		return entity.DefaultSettings()
	}

	return that.settings.Settings()
}

// newSession - an unstarted session with an empty board and two resolved players.
func (that *GameManager) newSession(settings entity.Settings) entity.GameSession {
	size := settings.BoardSize
	if !entity.IsValidBoardSize(size) {
		size = entity.DefaultBoardSize
	}

	board, err := entity.NewBoard(size)
	if err != nil {
		panic(err) // size was checked above
	}

	return entity.GameSession{
		Board:   board,
		Players: that.resolvePlayers(settings),
		Phase:   entity.PhaseNotStarted,
	}
}

// resolvePlayers - the players configured in settings, or the default pair when they are not a valid pair.
func (that *GameManager) resolvePlayers(settings entity.Settings) [2]entity.Player {
	first := entity.NewPlayer(strings.TrimSpace(settings.FirstPlayerName), settings.FirstPlayerShape)
	second := entity.NewPlayer(strings.TrimSpace(settings.SecondPlayerName), settings.SecondPlayerShape)

	if ValidatePlayerInfo(entity.PlayerInfo{
		FirstName:   first.Name,
		SecondName:  second.Name,
		FirstShape:  first.Shape,
		SecondShape: second.Shape,
	}) != nil {
		return entity.DefaultPlayers()
	}

	return [2]entity.Player{first, second}
}
