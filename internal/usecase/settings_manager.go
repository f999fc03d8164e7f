package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/dooz/internal/apperror"
	"github.com/rocketscienceinc/dooz/internal/entity"
	"github.com/rocketscienceinc/dooz/internal/notify"
	"github.com/rocketscienceinc/dooz/internal/worker"
)

// notification codes shown to the user
const (
	CodePlayerShapeUnknown = "player_shape_unknown"
	CodePlayerShapesEqual  = "player_shapes_equal"
	CodePlayerNamesEqual   = "player_names_equal"
	CodePlayerNamesEmpty   = "player_names_empty"
	CodeDataSaved          = "data_saved"
	CodeSettingsNotSaved   = "settings_not_saved"
)

type keyValueStore interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	GetInt(ctx context.Context, key string) (int, bool, error)

	SetString(ctx context.Context, key, value string) error
	SetInt(ctx context.Context, key string, value int) error
	SetStrings(ctx context.Context, values map[string]string) error
}

var playerInfoKeys = []string{
	entity.KeyFirstPlayerName,
	entity.KeySecondPlayerName,
	entity.KeyFirstPlayerShape,
	entity.KeySecondPlayerShape,
}

type taskScheduler interface {
	Go(name string, task worker.Task) error
	Shutdown()
}

// stringSetting describes how one string-valued key maps onto the settings snapshot.
type stringSetting struct {
	key string
	set func(settings *entity.Settings, raw string) bool
	// fallback is the stored form of the field's default
	fallback func(defaults entity.Settings) string
}

var stringSettings = []stringSetting{
	{
		key: entity.KeyTheme,
		set: func(settings *entity.Settings, raw string) bool {
			theme, ok := entity.ParseTheme(raw)
			settings.Theme = theme
			return ok
		},
		fallback: func(defaults entity.Settings) string { return defaults.Theme.String() },
	},
	{
		key: entity.KeyPlayersMode,
		set: func(settings *entity.Settings, raw string) bool {
			mode, ok := entity.ParsePlayersMode(raw)
			settings.PlayersMode = mode
			return ok
		},
		fallback: func(defaults entity.Settings) string { return defaults.PlayersMode.String() },
	},
	{
		key: entity.KeyFirstPlayerName,
		set: func(settings *entity.Settings, raw string) bool {
			settings.FirstPlayerName = raw
			return strings.TrimSpace(raw) != ""
		},
		fallback: func(defaults entity.Settings) string { return defaults.FirstPlayerName },
	},
	{
		key: entity.KeySecondPlayerName,
		set: func(settings *entity.Settings, raw string) bool {
			settings.SecondPlayerName = raw
			return strings.TrimSpace(raw) != ""
		},
		fallback: func(defaults entity.Settings) string { return defaults.SecondPlayerName },
	},
	{
		key: entity.KeyFirstPlayerShape,
		set: func(settings *entity.Settings, raw string) bool {
			shape, ok := entity.ParseShape(raw)
			settings.FirstPlayerShape = shape
			return ok
		},
		fallback: func(defaults entity.Settings) string { return string(defaults.FirstPlayerShape) },
	},
	{
		key: entity.KeySecondPlayerShape,
		set: func(settings *entity.Settings, raw string) bool {
			shape, ok := entity.ParseShape(raw)
			settings.SecondPlayerShape = shape
			return ok
		},
		fallback: func(defaults entity.Settings) string { return string(defaults.SecondPlayerShape) },
	},
	{
		key: entity.KeyAiDifficulty,
		set: func(settings *entity.Settings, raw string) bool {
			difficulty, ok := entity.ParseAiDifficulty(raw)
			settings.AiDifficulty = difficulty
			return ok
		},
		fallback: func(defaults entity.Settings) string { return defaults.AiDifficulty.String() },
	},
	{
		key: entity.KeyFirstPlayerPolicy,
		set: func(settings *entity.Settings, raw string) bool {
			policy, ok := entity.ParseFirstPlayerPolicy(raw)
			settings.FirstPlayerPolicy = policy
			return ok
		},
		fallback: func(defaults entity.Settings) string { return defaults.FirstPlayerPolicy.String() },
	},
}

// SettingsManager owns the settings snapshot: it loads it from the store, validates user edits
// and persists every accepted change in the background.
type SettingsManager struct {
	logger        *slog.Logger
	store         keyValueStore
	scheduler     taskScheduler
	notifications *notify.Queue

	mu        sync.RWMutex
	settings  entity.Settings
	// pending counts the writes of each key not yet stored; a failed write keeps its key pinned
	pending   map[string]int
	observers []func(entity.Settings)

	loaded     chan struct{}
	loadedOnce sync.Once
}

// NewSettingsManager - starts with defaults and schedules the initial load right away.
func NewSettingsManager(logger *slog.Logger, store keyValueStore, scheduler taskScheduler, notifications *notify.Queue) *SettingsManager {
	that := &SettingsManager{
		logger:        logger.With("component", "settings_manager"),
		store:         store,
		scheduler:     scheduler,
		notifications: notifications,

		settings: entity.DefaultSettings(),
		pending:  make(map[string]int),
		loaded:   make(chan struct{}),
	}

	that.Load()

	return that
}

// Settings returns the current snapshot. Fields may still hold defaults while the initial load runs.
func (that *SettingsManager) Settings() entity.Settings {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.settings
}

// Loaded is closed once the first load has finished.
func (that *SettingsManager) Loaded() <-chan struct{} {
	return that.loaded
}

func (that *SettingsManager) Notifications() *notify.Queue {
	return that.notifications
}

// Subscribe registers an observer called after every change of the snapshot.
func (that *SettingsManager) Subscribe(observer func(entity.Settings)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.observers = append(that.observers, observer)
}

// Load - refreshes the snapshot from the store in the background. A key whose write is still
// queued, or whose last write failed, keeps the value the user set.
func (that *SettingsManager) Load() {
	log := that.logger.With("method", "Load")

	if err := that.scheduler.Go("settings:load", that.load); err != nil {
		log.Warn("settings load was not scheduled", "error", err)
	}
}

// Shutdown - cancels pending loads and writes. Nothing is persisted afterwards.
func (that *SettingsManager) Shutdown() {
	that.scheduler.Shutdown()
}

func (that *SettingsManager) SetTheme(theme entity.Theme) {
	that.update(entity.KeyTheme, func(settings *entity.Settings) { settings.Theme = theme })
	that.persistString(entity.KeyTheme, theme.String())
}

func (that *SettingsManager) SetPlayersMode(mode entity.PlayersMode) {
	that.update(entity.KeyPlayersMode, func(settings *entity.Settings) { settings.PlayersMode = mode })
	that.persistString(entity.KeyPlayersMode, mode.String())
}

func (that *SettingsManager) SetAiDifficulty(difficulty entity.AiDifficulty) {
	that.update(entity.KeyAiDifficulty, func(settings *entity.Settings) { settings.AiDifficulty = difficulty })
	that.persistString(entity.KeyAiDifficulty, difficulty.String())
}

func (that *SettingsManager) SetFirstPlayerPolicy(policy entity.FirstPlayerPolicy) {
	that.update(entity.KeyFirstPlayerPolicy, func(settings *entity.Settings) { settings.FirstPlayerPolicy = policy })
	that.persistString(entity.KeyFirstPlayerPolicy, policy.String())
}

func (that *SettingsManager) IncreaseBoardSize() bool {
	return that.AdjustBoardSize(1)
}

func (that *SettingsManager) DecreaseBoardSize() bool {
	return that.AdjustBoardSize(-1)
}

// AdjustBoardSize - moves the board size by delta within the allowed range.
// It reports whether the size changed; only a change is persisted.
func (that *SettingsManager) AdjustBoardSize(delta int) bool {
	that.mu.Lock()
	current := that.settings.BoardSize
	next := min(max(current+delta, entity.MinBoardSize), entity.MaxBoardSize)
	if next == current {
		that.mu.Unlock()
		return false
	}

	that.pending[entity.KeyBoardSize]++
	that.settings.BoardSize = next
	snapshot, observers := that.settings, that.observers
	that.mu.Unlock()

	notifyObservers(observers, snapshot)

	that.persist(entity.KeyBoardSize, []string{entity.KeyBoardSize}, func(ctx context.Context) error {
		return that.store.SetInt(ctx, entity.KeyBoardSize, next)
	})

	return true
}

// SavePlayerInfo - validates the players' identity and saves it as one batch.
// Checks run in order (unknown shapes, equal shapes, names, blank names); the first failure is reported and nothing is
// changed or persisted.
func (that *SettingsManager) SavePlayerInfo(info entity.PlayerInfo) error {
	log := that.logger.With("method", "SavePlayerInfo")

	info.FirstName = strings.TrimSpace(info.FirstName)
	info.SecondName = strings.TrimSpace(info.SecondName)

	if err := ValidatePlayerInfo(info); err != nil {
		log.Debug("player info rejected", "error", err)
		that.notifications.Push(notify.Error(validationCode(err), err))

		return err
	}

	that.mu.Lock()
	for _, key := range playerInfoKeys {
		that.pending[key]++
	}
	that.settings.FirstPlayerName = info.FirstName
	that.settings.SecondPlayerName = info.SecondName
	that.settings.FirstPlayerShape = info.FirstShape
	that.settings.SecondPlayerShape = info.SecondShape
	snapshot, observers := that.settings, that.observers
	that.mu.Unlock()

	notifyObservers(observers, snapshot)

	batch := map[string]string{
		entity.KeyFirstPlayerName:   info.FirstName,
		entity.KeySecondPlayerName:  info.SecondName,
		entity.KeyFirstPlayerShape:  string(info.FirstShape),
		entity.KeySecondPlayerShape: string(info.SecondShape),
	}

	that.persist("player-info", playerInfoKeys, func(ctx context.Context) error {
		if err := that.store.SetStrings(ctx, batch); err != nil {
			return err
		}

		that.notifications.Push(notify.Info(CodeDataSaved, "player info saved"))

		return nil
	})

	return nil
}

// ValidatePlayerInfo reports the first problem with the (already trimmed) player identity.
// Only shapes that load back as themselves are accepted.
func ValidatePlayerInfo(info entity.PlayerInfo) error {
	switch {
	case !entity.IsKnownShape(info.FirstShape) || !entity.IsKnownShape(info.SecondShape):
		return apperror.ErrUnknownShape
	case info.FirstShape == info.SecondShape:
		return apperror.ErrPlayerShapesEqual
	case info.FirstName == info.SecondName:
		return apperror.ErrPlayerNamesEqual
	case info.FirstName == "" || info.SecondName == "":
		return apperror.ErrPlayerNameEmpty
	default:
		return nil
	}
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, apperror.ErrUnknownShape):
		return CodePlayerShapeUnknown
	case errors.Is(err, apperror.ErrPlayerShapesEqual):
		return CodePlayerShapesEqual
	case errors.Is(err, apperror.ErrPlayerNamesEqual):
		return CodePlayerNamesEqual
	default:
		return CodePlayerNamesEmpty
	}
}

func (that *SettingsManager) update(key string, mutate func(settings *entity.Settings)) {
	that.mu.Lock()
	that.pending[key]++
	mutate(&that.settings)
	snapshot, observers := that.settings, that.observers
	that.mu.Unlock()

	notifyObservers(observers, snapshot)
}

func (that *SettingsManager) persistString(key, value string) {
	that.persist(key, []string{key}, func(ctx context.Context) error {
		return that.store.SetString(ctx, key, value)
	})
}

// persist - schedules a write; a failed write is logged and reported to the user.
func (that *SettingsManager) persist(name string, keys []string, write func(ctx context.Context) error) {
	log := that.logger.With("method", "persist", "key", name)

	err := that.scheduler.Go("settings:save:"+name, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			if ctx.Err() == nil {
				that.notifications.Push(notify.Error(CodeSettingsNotSaved, apperror.ErrSettingsNotSaved))
			}

			return fmt.Errorf("failed to persist %s: %w", name, err)
		}

		that.settle(keys)

		return nil
	})
	if err != nil {
		log.Warn("settings write was not scheduled", "error", err)
	}
}

// settle - the writes of keys reached the store.
func (that *SettingsManager) settle(keys []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, key := range keys {
		if that.pending[key]--; that.pending[key] <= 0 {
			delete(that.pending, key)
		}
	}
}

func (that *SettingsManager) load(ctx context.Context) error {
	log := that.logger.With("method", "load")
	defer that.loadedOnce.Do(func() { close(that.loaded) })

	defaults := entity.DefaultSettings()

	for _, setting := range stringSettings {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		raw, found, err := that.store.GetString(ctx, setting.key)
		if err != nil {
			log.Warn("failed to read setting, using default", "key", setting.key, "error", err)
		}

		that.apply(setting.key, func(settings *entity.Settings) {
			if err != nil || !found || !setting.set(settings, raw) {
				setting.set(settings, setting.fallback(defaults))
			}
		})
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	size, found, err := that.store.GetInt(ctx, entity.KeyBoardSize)
	if err != nil {
		log.Warn("failed to read setting, using default", "key", entity.KeyBoardSize, "error", err)
	}

	that.apply(entity.KeyBoardSize, func(settings *entity.Settings) {
		if err != nil || !found || !entity.IsValidBoardSize(size) {
			size = defaults.BoardSize
		}
		settings.BoardSize = size
	})

	log.Debug("settings loaded")

	return nil
}

// apply - writes a loaded value unless a write of that key is pending or failed.
func (that *SettingsManager) apply(key string, set func(settings *entity.Settings)) {
	that.mu.Lock()
	if that.pending[key] > 0 {
		that.mu.Unlock()
		return
	}

	before := that.settings
	set(&that.settings)
	snapshot, observers := that.settings, that.observers
	that.mu.Unlock()

	if snapshot != before {
		notifyObservers(observers, snapshot)
	}
}

func notifyObservers[T any](observers []func(T), value T) {
	for _, observer := range observers {
		observer(value)
	}
}
