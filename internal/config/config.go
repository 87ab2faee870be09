package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the playtester configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Render   RenderConfig   `mapstructure:"render"`
	Database DatabaseConfig `mapstructure:"database"`
	Replay   ReplayConfig   `mapstructure:"replay"`
}

// LoggingConfig controls the zap logger built by the entrypoints. Output
// is a comma separated list of zap sink paths.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GameConfig holds the numeric rules of a game.
type GameConfig struct {
	StartingLife          int   `mapstructure:"starting_life"`
	CommanderStartingLife int   `mapstructure:"commander_starting_life"`
	DeckSize              int   `mapstructure:"deck_size"`
	CommanderDeckSize     int   `mapstructure:"commander_deck_size"`
	OpeningHand           int   `mapstructure:"opening_hand"`
	PoisonLimit           int   `mapstructure:"poison_limit"`
	CommanderDamageLimit  int   `mapstructure:"commander_damage_limit"`
	Seed                  int64 `mapstructure:"seed"`
}

// RenderConfig sets the dimensions of the text-art output.
type RenderConfig struct {
	CardWidth  int `mapstructure:"card_width"`
	CardHeight int `mapstructure:"card_height"`
	BoardWidth int `mapstructure:"board_width"`
}

// DatabaseConfig points at the optional Postgres card catalogue.
type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// ReplayConfig says where saved replays go. An empty directory disables
// saving.
type ReplayConfig struct {
	Dir string `mapstructure:"dir"`
}

// EnvPrefix is the prefix for environment overrides, e.g. PLAYTESTER_LOGGING_LEVEL.
const EnvPrefix = "PLAYTESTER"

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.starting_life", 20)
	v.SetDefault("game.commander_starting_life", 40)
	v.SetDefault("game.deck_size", 60)
	v.SetDefault("game.commander_deck_size", 100)
	v.SetDefault("game.opening_hand", 7)
	v.SetDefault("game.poison_limit", 10)
	v.SetDefault("game.commander_damage_limit", 21)
	v.SetDefault("game.seed", 0)

	v.SetDefault("render.card_width", 36)
	v.SetDefault("render.card_height", 28)
	v.SetDefault("render.board_width", 70)

	v.SetDefault("database.url", "")
	v.SetDefault("database.enabled", false)

	v.SetDefault("replay.dir", "replays")
}

// Default returns the built-in configuration without touching disk or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads the YAML file at path (if it exists) and applies environment
// overrides on top of the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if err := c.Logging.validate(); err != nil {
		return err
	}
	if c.Game.DeckSize <= 0 || c.Game.CommanderDeckSize <= 0 {
		return fmt.Errorf("deck sizes must be positive")
	}
	if c.Game.OpeningHand < 0 {
		return fmt.Errorf("opening hand must not be negative")
	}
	if c.Render.CardWidth < 10 || c.Render.CardHeight < 12 {
		return fmt.Errorf("card image %dx%d is too small", c.Render.CardWidth, c.Render.CardHeight)
	}
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("database enabled without a url")
	}
	return nil
}
