package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blast/internal/config"
	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/platform/audio"
	"github.com/vovakirdan/blast/internal/platform/tui"
	"github.com/vovakirdan/blast/internal/storage"
)

var (
	appLogger = log.New(io.Discard)
	logFile   *os.File
)

// newLogger builds the application logger. The terminal belongs to the
// TUI, so logs go to a file or nowhere.
func newLogger(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blast",
		Level:           lvl,
	}), nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// runtimeConfig builds the runtime config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the statistics database. Failure is not fatal: the game
// runs without statistics.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open statistics database: %v\n", err)
		appLogger.Warn("statistics disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newEnv wires the store and optional sound into a game environment.
// The returned cleanup closes the audio device.
func newEnv(store *storage.Store, configPath string, forceSound bool) (tui.Env, func()) {
	env := tui.Env{Logger: appLogger}
	if store != nil {
		env.Store = store
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultBlastConfig()
	}
	if !forceSound && !cfg.Sound.Enabled {
		return env, func() {}
	}

	player := audio.NewPlayer(cfg.Sound.Volume)
	if err := player.Initialize(); err != nil {
		appLogger.Warn("sound disabled", "err", err)
		return env, func() {}
	}
	env.Cues = player
	return env, player.Close
}
