package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/dooz/internal/config"
	"github.com/rocketscienceinc/dooz/internal/notify"
	"github.com/rocketscienceinc/dooz/internal/repository"
	"github.com/rocketscienceinc/dooz/internal/repository/storage"
	"github.com/rocketscienceinc/dooz/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/dooz/internal/service"
	"github.com/rocketscienceinc/dooz/internal/transport/console"
	"github.com/rocketscienceinc/dooz/internal/usecase"
	"github.com/rocketscienceinc/dooz/internal/worker"
)

// RunApp - runs the application on the process standard streams.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = Run(ctx, logger, conf, store, os.Stdin, os.Stdout); err != nil {
		return err
	}

	log.Info("application stopped")

	return nil
}

// Run - wires the managers around store and serves the console until in ends or ctx is done.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, store repository.KeyValueStore, in io.Reader, out io.Writer) error {
	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	scheduler := worker.New(ctx, logger)

	settingsManager := usecase.NewSettingsManager(logger, store, scheduler, notify.NewQueue())
	// the store is closed by the caller, so the worker must be gone first
	defer func() {
		settingsManager.Shutdown()
		<-scheduler.Done()
	}()

	bot := service.NewBotService(rand.New(rand.NewSource(seed + 1)))
	gameManager := usecase.NewGameManager(logger, settingsManager, bot, rand.New(rand.NewSource(seed)))

	server := console.New(logger, gameManager, settingsManager)
	if err := server.Serve(ctx, in, out); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	// let writes queued by the last requests reach the store
	idleCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := scheduler.Idle(idleCtx); err != nil {
		logger.Warn("pending settings writes dropped", "error", err)
	}

	if err := server.FlushNotifications(out); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

// openStore - the settings store selected by the config and a function releasing it.
func openStore(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.KeyValueStore, func(), error) {
	log := logger.With("method", "openStore", "driver", conf.Storage.Driver)

	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStore := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisStore(redisStorage.Connection), closeStore, nil

	case config.DriverSQLite:
		path := conf.SQLite.Path
		if path == "" {
			var err error
			if path, err = sqlite.DefaultPath(); err != nil {
				return nil, nil, err
			}
		}

		sqliteStorage, err := sqlite.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		closeStore := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}

		log.Info("settings database opened", "path", path)

		return repository.NewSQLiteStore(sqliteStorage.Connection), closeStore, nil

	default:
		return repository.NewMemoryStore(), func() {}, nil
	}
}
