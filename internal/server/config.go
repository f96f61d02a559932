package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the networked server's configuration, read from the environment.
type Config struct {
	Addr          string        `env:"IC_ADDR" envDefault:":8080"`
	SaveDir       string        `env:"IC_SAVE_DIR" envDefault:"saves"`
	ChroniclePath string        `env:"IC_CHRONICLE_PATH" envDefault:"chronicle.db"`
	MapName       string        `env:"IC_MAP" envDefault:"tactical"`
	MapFile       string        `env:"IC_MAP_FILE"`
	PlayerOne     string        `env:"IC_PLAYER_ONE" envDefault:"Cassia"`
	PlayerTwo     string        `env:"IC_PLAYER_TWO" envDefault:"Darrow"`
	OllamaURL     string        `env:"IC_OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel   string        `env:"IC_OLLAMA_MODEL" envDefault:"llama2"`
	DisableAI     bool          `env:"DISABLE_AI"`
	CycleInterval time.Duration `env:"IC_CYCLE_INTERVAL" envDefault:"5m"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
