package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tracker-tv/github-hygiene-bot/internal/orchestrator"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var selfTestCmd = &cobra.Command{
	Use:   "self-test",
	Short: "Check credentials and policy by scanning one repository",
	Long: `Load the policy, resolve the token, and scan a single repository without
writing a report or recording events.`,
	Annotations: githubCommand(),
	RunE:        runSelfTest,
}

func init() {
	selfTestCmd.Flags().String("repo", "", "repository to scan as owner/name; defaults to GITHUB_REPOSITORY")
	selfTestCmd.Flags().Bool("json", false, "print the scan report as JSON")
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	fullName, _ := cmd.Flags().GetString("repo")
	if fullName == "" {
		fullName = cfg.Run.Repo
	}
	repo, err := parseRepo(fullName)
	if err != nil {
		return err
	}

	rep, err := a.scanner.Scan(cmd.Context(), repo)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", repo.FullName, err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	report := models.NewOrgReport(a.policy.PolicyEpoch, rep.ScannedAt)
	report.Repos = append(report.Repos, *rep)
	for _, item := range rep.StructureQueue {
		report.FixQueue.Items = append(report.FixQueue.Items, orchestrator.Entry(rep.Repo, item, models.QueueStructure))
	}
	for _, item := range rep.LogicQueue {
		report.FixQueue.Items = append(report.FixQueue.Items, orchestrator.Entry(rep.Repo, item, models.QueueLogic))
	}
	fmt.Fprint(out, renderSummary(report, nil))
	return nil
}
