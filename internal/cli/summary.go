package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorDim    = lipgloss.Color("#6272a4")
	colorBorder = lipgloss.Color("#44475a")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	errStyle   = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle = lipgloss.NewStyle().Width(18)
	repoStyle  = lipgloss.NewStyle().Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	riskStyle  = lipgloss.NewStyle().Foreground(colorDim).Width(6).Align(lipgloss.Right)
)

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// renderSummary renders the terminal overview of an org report.
func renderSummary(report *models.OrgReport, results []models.RemediationResult) string {
	var pending, triage int
	for _, e := range report.FixQueue.Items {
		switch e.Status {
		case models.FixStatusPending:
			pending++
		case models.FixStatusTriage:
			triage++
		}
	}
	failures := report.Failures()

	stats := []string{
		titleStyle.Render(fmt.Sprintf("Org scan · policy epoch %d", report.PolicyEpoch)),
		row("Repositories", fmt.Sprint(len(report.Repos))),
		row("Scan failures", colorCount(len(failures), errStyle)),
		row("Pending fixes", colorCount(pending, warnStyle)),
		row("Awaiting triage", colorCount(triage, warnStyle)),
	}

	var b strings.Builder
	b.WriteString(boxStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")

	for _, rep := range report.Repos {
		if rep.Failed() {
			fmt.Fprintf(&b, "%s %s\n", errStyle.Render("✗"), repoStyle.Render(rep.Repo))
			fmt.Fprintf(&b, "    %s\n", dimStyle.Render(rep.Error))
			continue
		}
		items := len(rep.StructureQueue) + len(rep.LogicQueue)
		if items == 0 {
			fmt.Fprintf(&b, "%s %s\n", okStyle.Render("✓"), repoStyle.Render(rep.Repo))
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", warnStyle.Render("!"), repoStyle.Render(rep.Repo), dimStyle.Render(fmt.Sprintf("(%d)", items)))
		for _, item := range rep.StructureQueue {
			fmt.Fprintf(&b, "    %s %-8s %s %s\n", riskStyle.Render(fmt.Sprintf("%.2f", item.RiskScore)), item.Action, pathStyle.Render(item.Path), dimStyle.Render(string(item.Reason)))
		}
		for _, item := range rep.LogicQueue {
			fmt.Fprintf(&b, "    %s %-8s %s %s\n", riskStyle.Render(fmt.Sprintf("%.2f", item.RiskScore)), item.Action, pathStyle.Render(item.Path), dimStyle.Render(string(item.Reason)))
		}
	}

	if results != nil {
		b.WriteString(renderResults(results))
	}
	return b.String()
}

func renderResults(results []models.RemediationResult) string {
	if len(results) == 0 {
		return dimStyle.Render("No pending entries to autopatch.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Autopatch") + "\n")
	for _, r := range results {
		mark := okStyle.Render("✓")
		detail := r.PRURL
		switch r.Outcome {
		case models.OutcomeFailed:
			mark = errStyle.Render("✗")
			detail = r.Error
		case models.OutcomeDryRun:
			mark = dimStyle.Render("○")
			detail = r.Branch
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", mark, repoStyle.Render(r.Entry.Repo), pathStyle.Render(r.Entry.Path), dimStyle.Render(string(r.Outcome)+" "+detail))
	}
	return b.String()
}

func colorCount(n int, style lipgloss.Style) string {
	if n == 0 {
		return okStyle.Render("0")
	}
	return style.Render(fmt.Sprint(n))
}
