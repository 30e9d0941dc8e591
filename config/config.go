// Package config loads runtime configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. Values come from an optional
// YAML file named by CONFIG_PATH, overridden by environment variables, with
// .env loaded first via godotenv.
type Config struct {
	Log      Log      `yaml:"log"`
	LLM      LLM      `yaml:"llm"`
	Corpus   Corpus   `yaml:"corpus"`
	Generate Generate `yaml:"generate"`
	History  History  `yaml:"history"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LLM configures the chat-completions endpoint. An empty BaseURL disables
// the model and the pattern composer answers alone.
type LLM struct {
	BaseURL     string        `yaml:"base_url" env:"LLM_BASE_URL"`
	APIKey      string        `yaml:"api_key" env:"LLM_API_KEY"`
	Model       string        `yaml:"model" env:"LLM_MODEL" env-default:"rinna/japanese-gpt-neox-3.6b"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.8"`
	MaxTokens   int           `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"64"`
	Attempts    int           `yaml:"attempts" env:"LLM_ATTEMPTS" env-default:"3"`
	Timeout     time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"60s"`
}

type Corpus struct {
	OutputDir     string        `yaml:"output_dir" env:"CORPUS_OUTPUT_DIR" env-default:"data/raw/aozora"`
	MinConfidence float64       `yaml:"min_confidence" env:"CORPUS_MIN_CONFIDENCE" env-default:"0.6"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" env:"CORPUS_FETCH_TIMEOUT" env-default:"30s"`
	FetchDelay    time.Duration `yaml:"fetch_delay" env:"CORPUS_FETCH_DELAY" env-default:"500ms"`
	Workers       int           `yaml:"workers" env:"CORPUS_WORKERS" env-default:"4"`
}

type Generate struct {
	Dict       string `yaml:"dict" env:"GENERATE_DICT" env-default:"ipa"`
	Candidates int    `yaml:"candidates" env:"GENERATE_CANDIDATES" env-default:"5"`
}

type History struct {
	Path string `yaml:"path" env:"HISTORY_PATH" env-default:"tsukiuta_history.json"`
}

// Load reads .env when present, then CONFIG_PATH as YAML if set, otherwise
// the environment with defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Generate.Dict {
	case "ipa", "uni":
	default:
		return fmt.Errorf("generate.dict must be ipa or uni, got %q", c.Generate.Dict)
	}
	if c.Corpus.MinConfidence < 0 || c.Corpus.MinConfidence > 1 {
		return fmt.Errorf("corpus.min_confidence must be within [0,1], got %v", c.Corpus.MinConfidence)
	}
	if c.Corpus.Workers < 1 {
		return fmt.Errorf("corpus.workers must be positive, got %d", c.Corpus.Workers)
	}
	return nil
}

// LLMEnabled reports whether a model endpoint is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLM.BaseURL != ""
}
