// Package config loads the hackathon environment: API keys and flags the
// surrounding exercises expect, merged from an optional YAML file and the
// process environment, then validated through a recordkit schema.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/hackcamp-dev/recordkit/dsl"
)

// Environment variable names, by convention of the hackathon exercises.
const (
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvLangsmithKey     = "LANGSMITH_API_KEY"
	EnvLangsmithTracing = "LANGSMITH_TRACING"
	EnvTavilyKey        = "TAVILY_API_KEY"
)

// DefaultFile is the YAML file Load looks for next to the working directory.
const DefaultFile = "hackathon.yaml"

// Config carries the credentials and flags the onboarding exercises consume.
// No key is strictly required: the walkthrough itself runs offline.
type Config struct {
	OpenAIKey        string `json:"openai_api_key"`
	LangsmithKey     string `json:"langsmith_api_key"`
	LangsmithTracing bool   `json:"langsmith_tracing"`
	TavilyKey        string `json:"tavily_api_key"`
}

var schema = dsl.MustBind[Config](dsl.Record().
	Field("openai_api_key", dsl.String()).Default("").
	Field("langsmith_api_key", dsl.String()).Default("").
	Field("langsmith_tracing", dsl.Bool()).Default(false).
	Field("tavily_api_key", dsl.String()).Default("").
	UnknownStrict())

// Load reads DefaultFile when present, overlays the process environment, and
// validates the result. Missing keys are logged as warnings, not errors.
func Load(ctx context.Context, log zerolog.Logger) (Config, error) {
	return LoadFrom(ctx, DefaultFile, log)
}

// LoadFrom is Load with an explicit YAML path. A missing file is not an
// error; a malformed one is.
func LoadFrom(ctx context.Context, path string, log zerolog.Logger) (Config, error) {
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, err
		}
		log.Debug().Str("path", path).Msg("loaded config file")
	case errors.Is(err, fs.ErrNotExist):
		// fine: environment-only setup
	default:
		return Config{}, err
	}

	overlayEnv(raw)

	cfg, err := schema.Parse(ctx, raw)
	if err != nil {
		return Config{}, err
	}
	warnMissing(cfg, log)
	return cfg, nil
}

// overlayEnv writes environment values over the YAML mapping; env wins.
func overlayEnv(raw map[string]any) {
	if v, ok := os.LookupEnv(EnvOpenAIKey); ok {
		raw["openai_api_key"] = v
	}
	if v, ok := os.LookupEnv(EnvLangsmithKey); ok {
		raw["langsmith_api_key"] = v
	}
	if v, ok := os.LookupEnv(EnvTavilyKey); ok {
		raw["tavily_api_key"] = v
	}
	if v, ok := os.LookupEnv(EnvLangsmithTracing); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			raw["langsmith_tracing"] = b
		}
	}
}

func warnMissing(cfg Config, log zerolog.Logger) {
	if cfg.OpenAIKey == "" {
		log.Warn().Str("env", EnvOpenAIKey).Msg("LLM provider key not set; model exercises will be skipped")
	}
	if cfg.LangsmithKey == "" {
		log.Warn().Str("env", EnvLangsmithKey).Msg("observability key not set; tracing disabled")
	}
	if cfg.TavilyKey == "" {
		log.Warn().Str("env", EnvTavilyKey).Msg("web-search key not set; search exercises will be skipped")
	}
}
