package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/statistics"
)

// env is what every command needs once flags and the config file are merged
type env struct {
	cfg    *config.Config
	seed   int64
	logger *log.Logger
	closer io.Closer
	styles console.Styles
}

func (e *env) Close() error {
	return e.closer.Close()
}

// setup loads the config, applies global flag overrides and opens the log.
// apply runs after the file is loaded so command flags win.
func setup(g *Globals, apply func(*config.Config)) (*env, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.Seed != nil {
		cfg.Simulation.Seed = *g.Seed
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := shared.SetupLogger(cfg.Log.File, cfg.Log.Level, g.Debug)
	if err != nil {
		return nil, err
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	return &env{
		cfg:    cfg,
		seed:   seed,
		logger: logger,
		closer: closer,
		styles: console.NewStyles(os.Stdout, g.NoColor),
	}, nil
}

// report prints the session summaries, appends them to the log and writes
// the JSON export next to the log file
func (e *env) report(sessions ...*statistics.Session) error {
	for _, s := range sessions {
		lines := s.Lines()
		fmt.Println(e.styles.Report.Render(strings.Join(lines, "\n")))
		for _, line := range lines {
			e.logger.Info(line)
		}
	}

	path := exportPath(e.cfg.Log.File)
	if err := statistics.WriteJSON(path, sessions...); err != nil {
		return err
	}
	e.logger.Info("Wrote session export", "path", path)
	fmt.Println(e.styles.Info.Render("Results written to " + path))
	return nil
}

// exportPath places the JSON export beside the log, results.log -> results.json
func exportPath(logFile string) string {
	ext := filepath.Ext(logFile)
	return strings.TrimSuffix(logFile, ext) + ".json"
}
