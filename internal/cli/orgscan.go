package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tracker-tv/github-hygiene-bot/internal/orchestrator"
	"github.com/tracker-tv/github-hygiene-bot/internal/service"
	"github.com/tracker-tv/github-hygiene-bot/internal/state"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var orgScanCmd = &cobra.Command{
	Use:   "org-scan",
	Short: "Scan organisations and write the org report",
	Long: `Scan every repository of the configured organisations, write the org
report with its fix queue, and record one event per fix-queue entry.

Examples:
  scw org-scan                              # orgs from SCW_ORGS
  scw org-scan --orgs StegVerse --autofix   # scan and open PRs
  scw org-scan --autofix --dry-run          # show what autofix would do`,
	Annotations: githubCommand(),
	RunE:        runOrgScan,
}

func init() {
	orgScanCmd.Flags().StringSlice("orgs", nil, "organisations to scan; overrides SCW_ORGS")
	orgScanCmd.Flags().StringP("output", "o", "", "report path; overrides SCW_REPORT_PATH")
	orgScanCmd.Flags().Bool("fail-fast", false, "abort on the first repository that fails to scan")
	orgScanCmd.Flags().Bool("autofix", false, "apply pending structural entries after the scan")
	orgScanCmd.Flags().Bool("dry-run", false, "with --autofix, render patches without pushing")
	orgScanCmd.Flags().Int("limit", 0, "with --autofix, maximum entries to attempt (0 = all)")
}

func runOrgScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}

	orgs := cfg.Orgs
	if flagOrgs, _ := cmd.Flags().GetStringSlice("orgs"); len(flagOrgs) > 0 {
		orgs = flagOrgs
	}
	if len(orgs) == 0 {
		return fmt.Errorf("no organisations configured")
	}
	output := cfg.ReportPath
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		output = o
	}
	failFast := cfg.FailFast
	if cmd.Flags().Changed("fail-fast") {
		failFast, _ = cmd.Flags().GetBool("fail-fast")
	}

	bot := orchestrator.NewHygieneBot(a.repos, a.scanner, a.policy, orchestrator.Options{FailFast: failFast})
	report, err := bot.Run(ctx, orgs)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Workspace, output)
	if err := writeJSON(path, report); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("org report written")

	store := state.NewStore(filepath.Join(cfg.Workspace, cfg.StateDir))
	if err := store.Append(state.FromFixQueue(report, cfg.Run)...); err != nil {
		return err
	}

	var results []models.RemediationResult
	if autofix, _ := cmd.Flags().GetBool("autofix"); autofix {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		limit, _ := cmd.Flags().GetInt("limit")
		results, err = applyQueue(ctx, a, &report.FixQueue, dryRun, limit, store)
		if err != nil {
			return err
		}
		if !dryRun {
			if err := writeJSON(path, report); err != nil {
				return err
			}
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(report, results))
	return nil
}

// applyQueue runs the autopatcher over queue and records the attempts.
func applyQueue(ctx context.Context, a *app, queue *models.FixQueue, dryRun bool, limit int, store *state.Store) ([]models.RemediationResult, error) {
	remediation := service.NewRemediationService(a.gh, a.policy, service.WithDryRun(dryRun))
	results, err := orchestrator.NewAutopatcher(remediation, limit).Apply(ctx, queue)
	if recordErr := store.Append(state.FromRemediation(results, time.Now(), cfg.Run)...); recordErr != nil {
		log.Error().Err(recordErr).Msg("recording autopatch events failed")
	}
	return results, err
}
