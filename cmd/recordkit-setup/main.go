// Command recordkit-setup walks a hackathon participant through API key
// configuration and writes the resulting .env file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"

	"github.com/hackcamp-dev/recordkit/config"
)

func main() {
	out := flag.String("out", ".env", "path of the env file to write")
	force := flag.Bool("force", false, "overwrite an existing env file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if _, err := os.Stat(*out); err == nil && !*force {
		log.Error().Str("path", *out).Msg("env file already exists; re-run with -force to overwrite")
		os.Exit(1)
	}

	answers := struct {
		OpenAIKey    string
		LangsmithKey string
		Tracing      bool
		TavilyKey    string
	}{}

	qs := []*survey.Question{
		{
			Name:   "openAIKey",
			Prompt: &survey.Password{Message: "OpenAI API key (sk-...):"},
		},
		{
			Name:   "langsmithKey",
			Prompt: &survey.Password{Message: "LangSmith API key (lsv2_...):"},
		},
		{
			Name:   "tracing",
			Prompt: &survey.Confirm{Message: "Enable LangSmith tracing?", Default: false},
		},
		{
			Name:   "tavilyKey",
			Prompt: &survey.Password{Message: "Tavily API key (tvly-...):"},
		},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		log.Error().Err(err).Msg("prompt aborted")
		os.Exit(1)
	}

	var b strings.Builder
	writeEnv(&b, config.EnvOpenAIKey, answers.OpenAIKey)
	writeEnv(&b, config.EnvLangsmithKey, answers.LangsmithKey)
	writeEnv(&b, config.EnvLangsmithTracing, fmt.Sprintf("%t", answers.Tracing))
	writeEnv(&b, config.EnvTavilyKey, answers.TavilyKey)

	if err := os.WriteFile(*out, []byte(b.String()), 0o600); err != nil {
		log.Error().Err(err).Str("path", *out).Msg("write failed")
		os.Exit(1)
	}
	log.Info().Str("path", *out).Msg("environment written; `source` it or let your tooling pick it up")
}

func writeEnv(b *strings.Builder, key, value string) {
	if value == "" {
		fmt.Fprintf(b, "# %s=\n", key)
		return
	}
	fmt.Fprintf(b, "%s=%s\n", key, value)
}
