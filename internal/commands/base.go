// Package commands holds setup shared by the stale-pr-reporter subcommands.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/config"
	"github.com/alan/stale-pr-reporter/internal/github"
)

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile   *string
	LoadConfig   func(string) (*cmd.Config, error)
	Getenv       func(string) string
	GitHubClient *github.Client
	Context      context.Context
	Config       *cmd.Config
	Secrets      config.Secrets
}

// Init loads and validates the configuration, reads credentials and builds the GitHub client
func (bc *BaseCommand) Init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if bc.Getenv == nil {
		bc.Getenv = os.Getenv
	}

	cfg, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	bc.Config = cfg

	bc.Secrets = config.LoadSecrets(bc.Getenv)
	if bc.Secrets.GitHubToken == "" {
		return fmt.Errorf("%s environment variable is required", config.EnvGitHubToken)
	}

	bc.Context = ctx
	bc.GitHubClient = github.NewClient(ctx, bc.Secrets.GitHubToken).WithRepository(cfg.Org, cfg.Repo)

	return nil
}
