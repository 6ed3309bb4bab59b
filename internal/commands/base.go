// Package commands provides the shared setup every subcommand runs through.
package commands

import (
	"github.com/alan/release-train/internal/config"
	"github.com/alan/release-train/internal/git"
	"github.com/alan/release-train/internal/github"
)

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile *string
	Config     *config.Config
	Repo       *git.Repository
	Client     *github.Client
}

// Init loads the defaults file, reads the access token from the environment,
// resolves the GitHub project from the origin remote and builds the API
// client.
func (bc *BaseCommand) Init() error {
	cfg, err := config.Load(*bc.ConfigFile)
	if err != nil {
		return err
	}
	bc.Config = cfg

	credential, err := github.CredentialFromEnv()
	if err != nil {
		return err
	}

	bc.Repo = git.NewRepository(git.CLI{})
	project, err := bc.Repo.CurrentProject()
	if err != nil {
		return err
	}
	bc.Client = github.NewClient(credential, project)

	return nil
}
