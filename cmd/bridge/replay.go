package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/scenario"
	"github.com/vovakirdan/serious-bridge/internal/storage"
)

var (
	flagNoJournal bool
	flagShowCalls bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <path>...",
	Short: "Replay scenario files and check their expectations",
	Long: `Replays each scenario through a fresh bridge with a recording engine
and checks the recorded engine calls against the scenario's expectations.
A path may be a YAML file or a directory of them. Every run is journaled
unless --no-journal is given.

Exits with status 1 if any scenario fails.

Examples:
  bridge replay scenarios/
  bridge replay scenarios/permission.yaml --calls`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not journal the replayed calls")
	replayCmd.Flags().BoolVar(&flagShowCalls, "calls", false, "Print every recorded engine call")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	rules, err := cfg.AxisRules()
	if err != nil {
		return err
	}

	scenarios, err := loadScenarios(args)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoJournal {
		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, sc := range scenarios {
		opts := scenario.Options{
			Rules:           rules,
			ButtonThreshold: cfg.Input.ButtonThreshold,
			Logger:          logger.WithPrefix(sc.Name),
		}
		if store != nil {
			runID, err := store.BeginRun(sc.Name, "replay")
			if err != nil {
				return err
			}
			opts.Sinks = append(opts.Sinks, engine.JournalSink(store, runID, logger))
		}

		res := scenario.Replay(sc, opts)
		if flagShowCalls {
			for _, c := range res.Calls {
				fmt.Fprintf(out, "  %4d %s\n", c.Seq, c)
			}
		}

		if err := sc.Verify(res); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s (%d calls)\n%v\n", sc.Name, len(res.Calls), err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d calls, %s)\n", sc.Name, len(res.Calls), res.State)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	return nil
}

// loadScenarios loads every file or directory named in paths.
func loadScenarios(paths []string) ([]scenario.Scenario, error) {
	var (
		all  []scenario.Scenario
		errs []error
	)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.IsDir() {
			scs, err := scenario.LoadDir(p)
			if err != nil {
				errs = append(errs, err)
			}
			all = append(all, scs...)
			continue
		}
		sc, err := scenario.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, sc)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.New("no scenarios found")
	}
	return all, nil
}
