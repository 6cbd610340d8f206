package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wordspy/internal/words"
)

// EnvPrefix is prepended to flag names to form environment variable names,
// e.g. --words-dir becomes WORDSPY_WORDS_DIR.
const EnvPrefix = "WORDSPY"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Words   WordsConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Bind string
	Port int
}

// GameConfig holds session-related configuration
type GameConfig struct {
	ClueDuration       time.Duration
	VotingDuration     time.Duration
	DisconnectGrace    time.Duration
	SessionIdleTimeout time.Duration
	Difficulty         string
}

// WordsConfig holds word-source configuration
type WordsConfig struct {
	Dir string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// RegisterFlags declares every flag with its default value
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("bind", "b", "0.0.0.0", "address to bind to (env: WORDSPY_BIND)")
	fs.IntP("port", "p", 8080, "port to listen on (env: WORDSPY_PORT)")
	fs.Duration("clue-duration", 60*time.Second, "time each player has to give a clue (env: WORDSPY_CLUE_DURATION)")
	fs.Duration("voting-duration", 60*time.Second, "time allowed for voting before a forced tally (env: WORDSPY_VOTING_DURATION)")
	fs.Duration("disconnect-grace", 30*time.Second, "how long a disconnected player keeps their seat (env: WORDSPY_DISCONNECT_GRACE)")
	fs.Duration("session-idle-timeout", 2*time.Hour, "time before empty sessions are swept (env: WORDSPY_SESSION_IDLE_TIMEOUT)")
	fs.String("difficulty", "easy", "word-pair difficulty tier: easy, medium or hard (env: WORDSPY_DIFFICULTY)")
	fs.String("words-dir", "data", "directory holding <difficulty>Words.json files (env: WORDSPY_WORDS_DIR)")
	fs.String("log-level", "info", "log level: debug, info, warn or error (env: WORDSPY_LOG_LEVEL)")
	fs.String("log-format", "text", "log format: text or json (env: WORDSPY_LOG_FORMAT)")
}

// Load binds the flag set to environment variables and materializes a Config
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
		if err := v.BindEnv(f.Name); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	cfg := &Config{
		Server: ServerConfig{
			Bind: v.GetString("bind"),
			Port: v.GetInt("port"),
		},
		Game: GameConfig{
			ClueDuration:       v.GetDuration("clue-duration"),
			VotingDuration:     v.GetDuration("voting-duration"),
			DisconnectGrace:    v.GetDuration("disconnect-grace"),
			SessionIdleTimeout: v.GetDuration("session-idle-timeout"),
			Difficulty:         v.GetString("difficulty"),
		},
		Words: WordsConfig{
			Dir: v.GetString("words-dir"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Server.Port)
	}
	if _, err := words.ParseDifficulty(c.Game.Difficulty); err != nil {
		return err
	}
	if c.Game.ClueDuration < time.Second || c.Game.VotingDuration < time.Second {
		return fmt.Errorf("clue and voting durations must be at least one second")
	}
	return nil
}

// Addr returns the server address in host:port format
func (c *Config) Addr() string {
	return c.Server.Bind + ":" + strconv.Itoa(c.Server.Port)
}

// Difficulty returns the validated difficulty tier
func (c *Config) Difficulty() words.Difficulty {
	d, err := words.ParseDifficulty(c.Game.Difficulty)
	if err != nil {
		return words.DifficultyEasy
	}
	return d
}
