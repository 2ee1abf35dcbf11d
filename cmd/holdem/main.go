package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"

	"holdemtable/pkg/ai"
	"holdemtable/pkg/config"
	"holdemtable/pkg/poker"
	"holdemtable/pkg/storage"
	"holdemtable/pkg/ui"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	configPath := flag.String("config", "holdem.yml", "path to config file")
	players := flag.Int("players", 0, "number of seats (overrides config)")
	dbPath := flag.String("db", "", "stats database path (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed for reproducible deals (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *players != 0 {
		cfg.NumPlayers = *players
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// The UI owns the terminal, so logs go to a file (or nowhere).
	var logWriter io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logWriter = f
	}
	backend := slog.NewBackend(logWriter)
	level, _ := slog.LevelFromString(cfg.DebugLevel)

	tableLog := backend.Logger("TABL")
	tableLog.SetLevel(level)
	aiLog := backend.Logger("AI")
	aiLog.SetLevel(level)

	var store storage.Store
	if cfg.DBPath != "" {
		sqlStore, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			tableLog.Warnf("Failed to open %s, stats will not persist: %v", cfg.DBPath, err)
			store = storage.NewMemStore()
		} else {
			defer sqlStore.Close()
			store = sqlStore
		}
	} else {
		store = storage.NewMemStore()
	}

	table := poker.NewTable(poker.TableConfig{
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		BuyIn:      cfg.BuyIn,
		AIDelay:    time.Duration(cfg.AIDelayMs) * time.Millisecond,
		Seed:       cfg.Seed,
		Log:        tableLog,
		Store:      store,
	})
	defer table.Close()

	if err := table.InitPlayers(cfg.NumPlayers); err != nil {
		return err
	}
	table.SetAutoplay(ai.New(aiLog, cfg.Seed).Decide)

	program := tea.NewProgram(ui.NewModel(table), tea.WithAltScreen())
	table.SetNotifiers(
		func() { program.Send(ui.StateMsg(table.GetState())) },
		func(r poker.HandResult) { program.Send(ui.HandCompleteMsg(r)) },
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
