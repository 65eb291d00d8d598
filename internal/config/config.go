package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	IdentityFile  = "file"
	IdentityRedis = "redis"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	LogFile      string        `yaml:"log-file" env:"TTT_LOG_FILE" env-default:"game.log"`
	Server       Server        `yaml:"server"`
	PollInterval time.Duration `yaml:"poll-interval" env:"TTT_POLL_INTERVAL" env-default:"500ms"`
	FrameRate    int           `yaml:"frame-rate" env:"TTT_FRAME_RATE" env-default:"60"`
	QuitTimeout  time.Duration `yaml:"quit-timeout" env:"TTT_QUIT_TIMEOUT" env-default:"2s"`
	Startup      Startup       `yaml:"startup"`
	Identity     Identity      `yaml:"identity"`
}

type Server struct {
	URL     string        `yaml:"url" env:"TTT_SERVER_URL" env-default:"https://tictac.redko.us"`
	Timeout time.Duration `yaml:"timeout" env:"TTT_SERVER_TIMEOUT" env-default:"5s"`
}

type Startup struct {
	Attempts   int           `yaml:"attempts" env:"TTT_STARTUP_ATTEMPTS" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry-delay" env:"TTT_STARTUP_RETRY_DELAY" env-default:"1s"`
}

type Identity struct {
	Storage string `yaml:"storage" env:"TTT_IDENTITY_STORAGE" env-default:"file"`
	Path    string `yaml:"path" env:"TTT_IDENTITY_PATH" env-default:".user"`
	Key     string `yaml:"key" env:"TTT_IDENTITY_KEY" env-default:"tictactoe:user"`
	Redis   Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Load - reads config.yml at path, environment variables override it. Without the file only environment and defaults apply.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	switch {
	case that.Server.URL == "":
		return fmt.Errorf("%w: server url is empty", ErrInvalidConfig)
	case that.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidConfig)
	case that.Startup.Attempts < 1:
		return fmt.Errorf("%w: startup attempts must be at least 1", ErrInvalidConfig)
	case that.FrameRate < 1:
		return fmt.Errorf("%w: frame rate must be at least 1", ErrInvalidConfig)
	case that.Identity.Storage != IdentityFile && that.Identity.Storage != IdentityRedis:
		return fmt.Errorf("%w: unknown identity storage %q", ErrInvalidConfig, that.Identity.Storage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
