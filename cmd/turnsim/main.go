// Package main provides the turnsim CLI, which runs a turn-order simulation
// for a scenario file and prints the per-step result table.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/turnsim/internal/config"
	"github.com/cory-johannsen/turnsim/internal/game/scenario"
	"github.com/cory-johannsen/turnsim/internal/game/turn"
	"github.com/cory-johannsen/turnsim/internal/observability"
	"github.com/cory-johannsen/turnsim/internal/report"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "content/scenarios/sample.yaml", "path to scenario YAML file")
	format := flag.String("format", "table", "output format: table or yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(os.Stdout, cfg, logger, *scenarioPath, *format); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

// run loads and validates the scenario, simulates it, and writes the report to w.
func run(w io.Writer, cfg config.Config, logger *zap.Logger, scenarioPath, format string) error {
	if format != "table" && format != "yaml" {
		return fmt.Errorf("unknown format %q (supported: table, yaml)", format)
	}

	sc, err := scenario.LoadFile(scenarioPath)
	if err != nil {
		return err
	}
	if err := sc.Validate(cfg.Simulation.MaxUnits); err != nil {
		return err
	}
	catalog, err := sc.Catalog()
	if err != nil {
		return err
	}
	logger.Info("scenario loaded",
		zap.String("path", scenarioPath),
		zap.Int("units", len(sc.Units)),
		zap.Int("modifiers", catalog.Len()),
	)

	engine := turn.NewEngine(cfg.Simulation.Steps, cfg.Simulation.ActionThreshold, logger)
	snaps := engine.Run(sc.Units, catalog.Templates())

	if format == "yaml" {
		return report.WriteYAML(w, snaps)
	}

	if catalog.Len() > 0 {
		if _, err := fmt.Fprintln(w, "Modifiers:"); err != nil {
			return err
		}
		if err := report.WriteModifiers(w, catalog.Templates(), sc.Names()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	cols := make([]report.Column, len(sc.Units))
	for i, u := range sc.Units {
		cols[i] = report.Column{UnitID: u.ID, Header: u.Name}
	}
	return report.WriteTable(w, cols, snaps)
}
