// Package changelog implements the changelog command for printing the changes
// merged since a tag.
package changelog

import (
	"context"
	"fmt"
	"time"

	chlog "github.com/alan/release-train/internal/changelog"
	"github.com/alan/release-train/internal/commands"
	"github.com/spf13/cobra"
)

// NewChangelogCmd creates and returns the changelog command
func NewChangelogCmd(globalConfigFile *string) *cobra.Command {
	var sinceTag string
	var baseBranch string
	var sectioned bool

	changelogCmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate a Markdown changelog from merged PRs and closed issues",
		Long: `Generate a Markdown changelog covering the pull requests merged into the
base branch since a tag, together with the issues those pull requests closed.
By default the window starts at the most recently created tag and ends now.`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runChangelog(cobraCmd.Context(), *globalConfigFile, sinceTag, baseBranch, sectioned)
		},
	}

	changelogCmd.Flags().StringVarP(&sinceTag, "since-tag", "s", "", "Tag to start the changelog from (default: the latest tag)")
	changelogCmd.Flags().StringVarP(&baseBranch, "base-branch", "b", "", "Branch the pull requests were merged into (default: from config, or master)")
	changelogCmd.Flags().BoolVar(&sectioned, "sections", false, "Group the changelog into closed issues and merged pull requests")

	return changelogCmd
}

func runChangelog(ctx context.Context, configFile, sinceTag, baseBranch string, sectioned bool) error {
	base := commands.BaseCommand{ConfigFile: &configFile}
	if err := base.Init(); err != nil {
		return err
	}

	if baseBranch == "" {
		baseBranch = base.Config.BaseBranch
	}

	since := chlog.SinceLatestTag()
	if sinceTag != "" {
		since = chlog.SinceTag(sinceTag)
	}

	from, to, err := chlog.Window(since, time.Now(), base.Repo, base.Config.TagOffset())
	if err != nil {
		return err
	}

	var log chlog.Changelog
	if sectioned {
		log, err = chlog.GenerateSectioned(ctx, base.Client, baseBranch, from, to)
	} else {
		log, err = chlog.Generate(ctx, base.Client, baseBranch, from, to)
	}
	if err != nil {
		return err
	}

	fmt.Println(log.Description)
	return nil
}
