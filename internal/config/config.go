// Package config loads holeweave's runtime configuration, layering flag,
// environment, .env, and default values in that order of precedence.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config holds the settings a holeweave run needs: where the completion
// engine and analyzer live, how many candidates, retries and per-node
// variants to budget, and whether debug logging is on.
type Config struct {
	CompletionEndpoint string
	AnalyzerCommand    string
	DatabaseURL        string
	LibsqlAuthToken    string
	NumComps           int
	Retries            int
	StopAt             int
	Fallback           bool
	Usages             bool
	Stub               bool
	Debug              bool
}

// Load reads .env (if present, never overriding already-set environment
// variables), binds flags over fs, and resolves the final Config with
// precedence flag > env > .env > default. args is parsed against fs
// unless nil, which lets a caller that already owns fs's parsing (such
// as a cobra.Command) skip a second, destructive Parse call.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	endpoint := fs.String("completion-endpoint", envOr("HOLEWEAVE_COMPLETION_ENDPOINT", "http://localhost:8085"), "completion engine HTTP endpoint")
	analyzer := fs.String("analyzer-command", envOr("HOLEWEAVE_ANALYZER_COMMAND", "holeweave-goanalyzer"), "language analyzer subprocess command")
	dbURL := fs.String("db", envOr("HOLEWEAVE_DB", "holeweave.db"), "query cache database DSN (sqlite path or libsql:// URL)")
	numComps := fs.Int("num-comps", envIntOr("HOLEWEAVE_NUM_COMPS", 1), "candidates requested per completion query")
	retries := fs.Int("retries", envIntOr("HOLEWEAVE_RETRIES", 5), "retry budget per prompt, beyond the first attempt")
	stopAt := fs.Int("stop-at", envIntOr("HOLEWEAVE_STOP_AT", 4), "candidate variants retained per node after merging")
	fallback := fs.Bool("fallback", envBoolOr("HOLEWEAVE_FALLBACK", true), "allow falling back to the language's any type")
	usages := fs.Bool("usages", envBoolOr("HOLEWEAVE_USAGES", true), "compute sibling usage snippets during prepare")
	stub := fs.Bool("stub", envBoolOr("HOLEWEAVE_STUB", true), "stub nested blocks before prompting")
	debug := fs.BoolP("debug", "v", envBoolOr("HOLEWEAVE_DEBUG", false), "enable debug logging")

	if args != nil {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	return &Config{
		CompletionEndpoint: *endpoint,
		AnalyzerCommand:    *analyzer,
		DatabaseURL:        *dbURL,
		LibsqlAuthToken:    os.Getenv("HOLEWEAVE_LIBSQL_AUTH_TOKEN"),
		NumComps:           *numComps,
		Retries:            *retries,
		StopAt:             *stopAt,
		Fallback:           *fallback,
		Usages:             *usages,
		Stub:               *stub,
		Debug:              *debug,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
