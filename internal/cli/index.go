package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain the committed file index of a repository",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the file index of a repository from its git tree",
	Long: `Read every required file and every file matching scan.index_globs at the
default branch, and emit a fileindex:v1 document. With --publish the index
is committed to the repository.`,
	Annotations: githubCommand(),
	RunE:        runIndexBuild,
}

func init() {
	indexBuildCmd.Flags().String("repo", "", "repository as owner/name; defaults to GITHUB_REPOSITORY")
	indexBuildCmd.Flags().Bool("publish", false, "commit the index to the repository")
	indexBuildCmd.Flags().String("branch", "", "branch to publish to; defaults to the default branch")
	indexCmd.AddCommand(indexBuildCmd)
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	ref, err := a.gh.GetDefaultBranch(ctx, repo.Owner, repo.Name)
	if err != nil {
		return err
	}
	idx, err := a.index.Build(ctx, repo, ref)
	if err != nil {
		return fmt.Errorf("building index for %s: %w", repo.FullName, err)
	}

	if publish, _ := cmd.Flags().GetBool("publish"); publish {
		branch, _ := cmd.Flags().GetString("branch")
		if branch == "" {
			branch = ref
		}
		if err := a.index.Publish(ctx, repo, branch, idx); err != nil {
			return err
		}
		log.Info().Str("repo", repo.FullName).Str("branch", branch).Int("files", len(idx.Files)).Msg("index published")
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(idx)
}
