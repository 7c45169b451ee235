package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port          int      `env:"PORT" envDefault:"3318" validate:"min=1,max=65535"`
	DatabaseURL   string   `env:"DATABASE_URL" validate:"required"`
	DatabaseType  string   `env:"DATABASE_TYPE" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	TelegramToken string   `env:"TG_TOKEN" validate:"required"`
	BotDebug      bool     `env:"BOT_DEBUG"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat     string   `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	PollTimeout   int      `env:"POLL_TIMEOUT" envDefault:"60" validate:"min=1"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"poll-votes"`
}

// hints explain how to supply a field that failed validation
var hints = map[string]string{
	"Port":          "invalid port (use -p or PORT env)",
	"DatabaseURL":   "database URL required (use -d or DATABASE_URL env)",
	"DatabaseType":  "database type must be sqlite or postgres (use -t or DATABASE_TYPE env)",
	"TelegramToken": "telegram bot token required (use -token or TG_TOKEN env)",
	"LogLevel":      "log level must be debug, info, warn or error (use -log-level or LOG_LEVEL env)",
	"LogFormat":     "log format must be text or json (LOG_FORMAT env)",
	"PollTimeout":   "POLL_TIMEOUT must be at least 1 second",
}

var validate = validator.New()

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("quickly-poll", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "HTTP port for health and metrics")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Bot (prefer env for the token, but allow CLI for dev)
	fs.StringVar(&cfg.TelegramToken, "token", cfg.TelegramToken, "Telegram bot token (prefer env)")
	fs.BoolVar(&cfg.BotDebug, "debug", cfg.BotDebug, "Log Telegram API traffic")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if hint, ok := hints[verrs[0].StructField()]; ok {
				return Config{}, errors.New(hint)
			}
		}
		return Config{}, err
	}

	return cfg, nil
}

// KafkaEnabled reports whether vote events should be published
func (c Config) KafkaEnabled() bool {
	for _, b := range c.KafkaBrokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}
