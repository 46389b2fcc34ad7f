package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/jyamaiken/triple-triad-app/internal/game"
	triadmcp "github.com/jyamaiken/triple-triad-app/internal/mcp"
)

// config is the environment-driven launch configuration. Flags override
// whatever the environment provides.
type config struct {
	Difficulty string `env:"TRIAD_DIFFICULTY" envDefault:"mid"`
	Same       bool   `env:"TRIAD_SAME" envDefault:"true"`
	Plus       bool   `env:"TRIAD_PLUS" envDefault:"true"`
	Elemental  bool   `env:"TRIAD_ELEMENTAL" envDefault:"true"`
	CardFile   string `env:"TRIAD_CARDS"`
	LogLevel   string `env:"TRIAD_LOG_LEVEL" envDefault:"info"`
}

func main() {
	// .env is optional; the real environment wins over the file.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	difficulty := flag.String("difficulty", cfg.Difficulty, "CPU difficulty: low, mid, high, expert")
	same := flag.Bool("same", cfg.Same, "enable the Same capture rule")
	plus := flag.Bool("plus", cfg.Plus, "enable the Plus capture rule")
	elemental := flag.Bool("elemental", cfg.Elemental, "enable elemental board tiles")
	cards := flag.String("cards", cfg.CardFile, "path to a card catalog YAML (default: built-in set)")
	flag.Parse()

	zlog := buildLogger(cfg.LogLevel)
	defer zlog.Sync()

	diff, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		zlog.Fatal("invalid difficulty", zap.Error(err))
	}
	rules := game.DefaultRules()
	rules.Same = *same
	rules.Plus = *plus
	rules.Elemental = *elemental
	rules.Difficulty = diff

	triadmcp.SetDefaults(rules, *cards, zlog)

	s := server.NewMCPServer("triad", "1.0.0")
	triadmcp.RegisterTools(s)

	zlog.Info("serving MCP over stdio", zap.String("rules", rules.String()))
	if err := server.ServeStdio(s); err != nil {
		zlog.Fatal("serve", zap.Error(err))
	}
}

// buildLogger writes JSON logs to stderr; stdout belongs to the MCP
// transport.
func buildLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	zlog, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return zlog
}
