// Package tagdeletion implements the tag-deletion command for cleaning up old
// releases and their tags.
package tagdeletion

import (
	"context"
	"fmt"

	"github.com/alan/release-train/internal/commands"
	"github.com/alan/release-train/internal/release"
	"github.com/spf13/cobra"
)

// NewTagDeletionCmd creates and returns the tag-deletion command
func NewTagDeletionCmd(globalConfigFile *string) *cobra.Command {
	var opts release.DeleteOptions

	tagDeletionCmd := &cobra.Command{
		Use:   "tag-deletion",
		Short: "Delete old GitHub releases together with their tags",
		Long: `Delete releases created before a boundary tag, oldest versions first,
removing the matching git tags as well. Deletion continues past individual
failures and reports them all at the end.`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runTagDeletion(cobraCmd.Context(), *globalConfigFile, opts)
		},
	}

	tagDeletionCmd.Flags().StringVarP(&opts.UpUntilTag, "up-until-tag", "u", "", "Only delete releases older than this tag (default: the latest tag)")
	tagDeletionCmd.Flags().IntVarP(&opts.Limit, "limit", "l", 50, "Maximum number of releases to delete in one run")
	tagDeletionCmd.Flags().BoolVarP(&opts.PrereleaseOnly, "prerelease-only", "p", false, "Only delete prereleases")
	tagDeletionCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List what would be deleted without deleting anything")

	return tagDeletionCmd
}

func runTagDeletion(ctx context.Context, configFile string, opts release.DeleteOptions) error {
	base := commands.BaseCommand{ConfigFile: &configFile}
	if err := base.Init(); err != nil {
		return err
	}

	deleter := release.NewDeleter(base.Client, base.Repo, opts)
	deleted, err := deleter.Run(ctx)
	for _, tag := range deleted {
		fmt.Println(tag)
	}
	if err != nil {
		return fmt.Errorf("some releases could not be deleted: %w", err)
	}
	return nil
}
