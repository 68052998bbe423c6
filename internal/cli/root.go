package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tracker-tv/github-hygiene-bot/internal/config"
)

// annotationGitHub marks commands that talk to the GitHub API and so need a
// token before they run.
const annotationGitHub = "scw/github"

var (
	cfg           *config.Config
	defaultPolicy []byte
)

var rootCmd = &cobra.Command{
	Use:   "scw",
	Short: "Repository hygiene bot for GitHub organisations",
	Long: `scw scans the repositories of one or more GitHub organisations for
required files, checks the freshness of their embedded metadata blocks
against the organisation policy, and builds a fix queue that can be
applied automatically through pull requests.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides SCW_LOG_LEVEL")
	rootCmd.PersistentFlags().String("policy", "", "policy YAML file; overrides SCW_POLICY_PATH")

	rootCmd.AddCommand(orgScanCmd, selfTestCmd, autopatchCmd, indexCmd, stateCmd, versionCmd)
}

// Execute runs the root command. policy is the embedded default policy used
// when no policy file is configured.
func Execute(policy []byte) error {
	defaultPolicy = policy

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.LogLevel = lvl
	}
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		c.PolicyPath = p
	}
	if err := setupLogging(c.LogLevel); err != nil {
		return err
	}

	if needsGitHub(cmd) {
		if _, err := c.Token(); err != nil {
			return err
		}
	}

	cfg = c
	return nil
}

func needsGitHub(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationGitHub] == "true" {
			return true
		}
	}
	return false
}

func githubCommand() map[string]string {
	return map[string]string{annotationGitHub: "true"}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}
