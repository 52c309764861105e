package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/serious-bridge/internal/platform/tui"
	"github.com/vovakirdan/serious-bridge/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Browse journaled runs",
	Long: `Without arguments, opens an interactive viewer of the journaled runs
when stdout is a terminal, and lists them otherwise. With a run id, prints
the engine calls of that run.

Examples:
  bridge history
  bridge history --plain --limit 5
  bridge history 3
  bridge history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to list")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print instead of opening the viewer")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every journaled run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Journal cleared.")
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		return printRun(cmd, store, id)
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs journaled yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'bridge replay <scenario>' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-8s  %-6s  %-16s  %s\n", "ID", "Source", "Calls", "Date", "Label")
	fmt.Fprintf(out, "  %-5s  %-8s  %-6s  %-16s  %s\n", "--", "------", "-----", "----", "-----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-8s  %-6d  %-16s  %s\n",
			r.ID, r.Source, r.Calls, r.CreatedAt.Format("2006-01-02 15:04"), r.Label)
	}
	return nil
}

// printRun prints one run and its calls.
func printRun(cmd *cobra.Command, store *storage.Store, id int64) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}
	calls, err := store.Calls(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %d - %s (%s, %s)\n\n", run.ID, run.Label, run.Source, run.CreatedAt.Format("2006-01-02 15:04"))
	for _, c := range calls {
		fmt.Fprintf(out, "  %4d %s\n", c.Seq, c)
	}
	if len(calls) == 0 {
		fmt.Fprintln(out, "  no calls")
	}
	return nil
}
