package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Config struct {
	LogLevel string  `yaml:"log-level" env:"DOOZ_LOG_LEVEL" env-default:"info"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	SQLite   SQLite  `yaml:"sqlite"`
	Game     Game    `yaml:"game"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"DOOZ_STORAGE_DRIVER" env-default:"sqlite"`
}

type Redis struct {
	Host string `yaml:"host" env:"DOOZ_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"DOOZ_REDIS_PORT" env-default:"6379"`
}

type SQLite struct {
	// Path of the settings database; empty means the user's XDG data directory.
	Path string `yaml:"path" env:"DOOZ_SQLITE_PATH"`
}

type Game struct {
	// Seed for dice, random first player and the computer; 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"DOOZ_GAME_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the file at path, or only the environment when there is no such file.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Storage.Driver)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
