package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tracker-tv/github-hygiene-bot/internal/state"
)

var autopatchCmd = &cobra.Command{
	Use:   "autopatch",
	Short: "Apply pending fix-queue entries of an org report",
	Long: `Open one pull request per pending structural entry of an existing org
report and write the updated statuses back into the report.`,
	Annotations: githubCommand(),
	RunE:        runAutopatch,
}

func init() {
	autopatchCmd.Flags().String("report", "", "org report to apply; defaults to SCW_REPORT_PATH")
	autopatchCmd.Flags().Bool("dry-run", false, "render patches without pushing")
	autopatchCmd.Flags().Int("limit", 0, "maximum entries to attempt (0 = all)")
}

func runAutopatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("report")
	if path == "" {
		path = filepath.Join(cfg.Workspace, cfg.ReportPath)
	}
	report, err := readReport(path)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	limit, _ := cmd.Flags().GetInt("limit")
	store := state.NewStore(filepath.Join(cfg.Workspace, cfg.StateDir))

	results, err := applyQueue(cmd.Context(), a, &report.FixQueue, dryRun, limit, store)
	if err != nil {
		return err
	}
	if !dryRun {
		if err := writeJSON(path, report); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), renderResults(results))
	return nil
}
