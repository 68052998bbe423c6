package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tracker-tv/github-hygiene-bot/internal/state"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Record and read the repository event log",
}

var stateFirstAidCmd = &cobra.Command{
	Use:   "first-aid",
	Short: "Record events from a workflow first-aid summary",
	RunE:  runStateFirstAid,
}

var stateSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the latest state of every tracked resource as markdown",
	RunE:  runStateSnapshot,
}

func init() {
	stateFirstAidCmd.Flags().String("summary-path", "", "path to FIRST_AID_SUMMARY.json")
	_ = stateFirstAidCmd.MarkFlagRequired("summary-path")

	stateSnapshotCmd.Flags().String("events-path", "", "event log; defaults to <SCW_STATE_DIR>/events.jsonl")
	stateSnapshotCmd.Flags().String("output", state.DefaultSnapshotPath, "markdown output path")
	stateSnapshotCmd.Flags().StringSlice("kind", []string{state.KindFirstAid}, "event kinds to include (empty for all)")

	stateCmd.AddCommand(stateFirstAidCmd, stateSnapshotCmd)
}

func runStateFirstAid(cmd *cobra.Command, args []string) error {
	summaryPath, _ := cmd.Flags().GetString("summary-path")
	summary, err := state.LoadFirstAidSummary(summaryPath)
	if err != nil {
		return err
	}

	events := state.FromFirstAid(summary, cfg.Workspace, time.Now(), cfg.Run)
	store := state.NewStore(filepath.Join(cfg.Workspace, cfg.StateDir))
	if err := store.Append(events...); err != nil {
		return err
	}

	log.Info().Int("events", len(events)).Str("path", store.Path()).Msg("first-aid events recorded")
	return nil
}

func runStateSnapshot(cmd *cobra.Command, args []string) error {
	store := state.NewStore(filepath.Join(cfg.Workspace, cfg.StateDir))
	source := store.Path()
	if p, _ := cmd.Flags().GetString("events-path"); p != "" {
		store = state.NewStoreAt(p)
		source = p
	}

	events, err := store.Load()
	if err != nil {
		return err
	}
	kinds, _ := cmd.Flags().GetStringSlice("kind")
	latest := state.Latest(events, models.EventNamespaceSCW, kinds...)
	markdown := state.RenderMarkdown(latest, time.Now(), source)

	output, _ := cmd.Flags().GetString("output")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", output, err)
	}
	if err := os.WriteFile(output, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote state snapshot to: %s\n", output)
	return nil
}
