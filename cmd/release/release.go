// Package release implements the release command for publishing a GitHub
// release for a tag.
package release

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alan/release-train/internal/commands"
	"github.com/alan/release-train/internal/release"
	"github.com/spf13/cobra"
)

// NewReleaseCmd creates and returns the release command
func NewReleaseCmd(globalConfigFile *string) *cobra.Command {
	var opts release.Options
	var asJSON bool

	releaseCmd := &cobra.Command{
		Use:   "release",
		Short: "Publish a GitHub release for a tag with a generated changelog",
		Long: `Publish a GitHub release for a tag. The release body is the changelog of
pull requests merged between the previous tag and the released one, plus the
issues those pull requests closed. The changelog can be prepended to a
changelog file, and the included pull requests and issues get a comment
pointing at the release.`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runRelease(cobraCmd.Context(), *globalConfigFile, opts, asJSON)
		},
	}

	releaseCmd.Flags().StringVarP(&opts.ChangelogPath, "changelog-path", "c", "", "Changelog file to prepend the release section to (default: from config)")
	releaseCmd.Flags().BoolVar(&opts.SkipComments, "skip-comments", false, "Do not comment on the released pull requests and issues")
	releaseCmd.Flags().BoolVarP(&opts.Prerelease, "pre-release", "p", false, "Mark the release as a prerelease")
	releaseCmd.Flags().StringVarP(&opts.TargetCommitish, "target-commitish", "t", "", "Commitish the tag is created from when it does not exist yet")
	releaseCmd.Flags().StringVarP(&opts.TagName, "tag-name", "n", "", "Tag to release (default: the latest tag)")
	releaseCmd.Flags().StringVarP(&opts.ReleaseTitle, "release-title", "r", "", "Title of the release (default: the tag name)")
	releaseCmd.Flags().StringVarP(&opts.LastReleaseTag, "last-release-tag", "l", "", "Tag of the previous release (default: the tag before the released one)")
	releaseCmd.Flags().StringVarP(&opts.BaseBranch, "base-branch", "b", "", "Branch the pull requests were merged into (default: from config, or master)")
	releaseCmd.Flags().BoolVar(&opts.Sectioned, "sections", false, "Group the changelog into closed issues and merged pull requests")
	releaseCmd.Flags().BoolVar(&asJSON, "json", false, "Print the release as JSON instead of its URL")

	return releaseCmd
}

func runRelease(ctx context.Context, configFile string, opts release.Options, asJSON bool) error {
	base := commands.BaseCommand{ConfigFile: &configFile}
	if err := base.Init(); err != nil {
		return err
	}

	if opts.BaseBranch == "" {
		opts.BaseBranch = base.Config.BaseBranch
	}
	if opts.ChangelogPath == "" {
		opts.ChangelogPath = base.Config.ChangelogPath
	}
	opts.TagOffset = base.Config.TagOffset()

	producer := release.NewProducer(base.Client, base.Repo, opts)
	published, err := producer.Run(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(published, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode the release: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(published.URL)
	return nil
}
