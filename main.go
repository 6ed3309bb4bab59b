// package main is the entry point for the release automation tool
package main

import (
	"fmt"
	"log/slog"
	"os"

	changelogcmd "github.com/alan/release-train/cmd/changelog"
	releasecmd "github.com/alan/release-train/cmd/release"
	"github.com/alan/release-train/cmd/tagdeletion"
	"github.com/alan/release-train/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "release-train",
		Short: "A CLI tool for GitHub changelogs, releases and tag cleanup",
		Long: `release-train generates Markdown changelogs from merged pull requests and
the issues they close, publishes GitHub releases for tags and deletes old
releases together with their tags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(verbose)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Create commands with access to the global config file
	rootCmd.AddCommand(changelogcmd.NewChangelogCmd(&configFile))
	rootCmd.AddCommand(releasecmd.NewReleaseCmd(&configFile))
	rootCmd.AddCommand(tagdeletion.NewTagDeletionCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

// setupLogger routes logs to stderr so command output on stdout stays clean.
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
