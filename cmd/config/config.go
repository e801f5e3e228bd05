// Package config implements the config command for initializing and updating stale-pr-reporter configuration.
package config

import (
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/notify"
	"github.com/alan/stale-pr-reporter/internal/report"
	"github.com/alan/stale-pr-reporter/internal/staleness"
)

// values holds the flag values; empty means "keep what the file has"
type values struct {
	org            string
	repo           string
	baseBranch     string
	threshold      string
	language       string
	channel        string
	webhookDetails string
	provider       string
	model          string
	ignoreLabels   string
	userMap        string
}

// detectRepo is replaced in tests
var detectRepo = detectGitRepoInfo

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	var v values

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize or update the stale-pr-reporter.yaml configuration file",
		Long: `Config creates or updates the configuration file with the repository to watch
and how to report on it.

When run from a git repository, the organization and repository are detected from
the origin remote if not given. Existing values are kept unless a flag overrides them.

Credentials are never written to the file; set GITHUB_TOKEN, SLACK_BOT_TOKEN or
SLACK_WEBHOOK_URL, and OPENAI_API_KEY or ANTHROPIC_API_KEY in the environment or a .env file.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runConfigWithGitDetection(cobraCmd, *globalConfigFile, v, loadConfig, saveConfig)
		},
	}

	addConfigFlags(configCmd, &v)

	return configCmd
}

// addConfigFlags adds all flags to the config command
func addConfigFlags(cobraCmd *cobra.Command, v *values) {
	cobraCmd.Flags().StringVarP(&v.org, "org", "o", "", "GitHub organization or username (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&v.repo, "repo", "r", "", "GitHub repository name (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&v.baseBranch, "base-branch", "b", "", "Only consider PRs targeting this branch")
	cobraCmd.Flags().StringVarP(&v.threshold, "threshold", "t", "", "Hours without an update before a PR is stale")
	cobraCmd.Flags().StringVar(&v.language, "language", "", "Language for AI suggestions")
	cobraCmd.Flags().StringVar(&v.channel, "channel", "", "Slack channel to post to")
	cobraCmd.Flags().StringVar(&v.webhookDetails, "webhook-details", "", "Detail cards when only a webhook is available (skip, flat)")
	cobraCmd.Flags().StringVar(&v.provider, "ai-provider", "", "AI provider (openai, anthropic)")
	cobraCmd.Flags().StringVar(&v.model, "ai-model", "", "AI model name")
	cobraCmd.Flags().StringVar(&v.ignoreLabels, "ignore-labels", "", "Comma-separated labels whose PRs are never reported")
	cobraCmd.Flags().StringVar(&v.userMap, "user-map", "", "GitHub to Slack user map, e.g. octocat:U012AB3CD,hubot:U045EF6GH")
}

// runConfigWithGitDetection handles config creation with git auto-detection
func runConfigWithGitDetection(cobraCmd *cobra.Command, configFile string, v values, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) error {
	config, isUpdate := loadOrCreateConfig(configFile, loadConfig)

	if v.org == "" {
		v.org = config.Org
	}
	if v.repo == "" {
		v.repo = config.Repo
	}

	if v.org == "" || v.repo == "" {
		if gitInfo, err := detectRepo(); err == nil {
			if v.org == "" {
				v.org = gitInfo.Org
				slog.Info("Auto-detected organization", "org", v.org)
			}
			if v.repo == "" {
				v.repo = gitInfo.Repo
				slog.Info("Auto-detected repository", "repo", v.repo)
			}
		} else {
			slog.Debug("Git auto-detection unavailable", "error", err)
		}
	}

	if v.org == "" {
		return fmt.Errorf("organization is required (use --org flag or run from a git repository)")
	}
	if v.repo == "" {
		return fmt.Errorf("repository is required (use --repo flag or run from a git repository)")
	}
	if err := validateValues(v); err != nil {
		return err
	}

	updateConfigWithProvidedValues(config, v)

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(cobraCmd, configFile, config, isUpdate)
	return nil
}

// validateValues rejects flag values that would make the saved file unusable
func validateValues(v values) error {
	if v.threshold != "" {
		if _, err := staleness.ParseThreshold(v.threshold); err != nil {
			return fmt.Errorf("invalid --threshold: %w", err)
		}
	}
	if v.webhookDetails != "" {
		if _, err := notify.ParseDetailPolicy(v.webhookDetails); err != nil {
			return fmt.Errorf("invalid --webhook-details: %w", err)
		}
	}
	if v.userMap != "" && !report.ValidUserMap(v.userMap) {
		return fmt.Errorf("invalid --user-map %q: expected login:ID[,login:ID...]", v.userMap)
	}
	return nil
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(cobraCmd *cobra.Command, configFile string, config *cmd.Config, isUpdate bool) {
	out := cobraCmd.OutOrStdout()
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	fmt.Fprintf(out, "Successfully %s %s with:\n", action, configFile)
	fmt.Fprintf(out, "  Organization: %s\n", config.Org)
	fmt.Fprintf(out, "  Repository: %s\n", config.Repo)
	if config.BaseBranch != "" {
		fmt.Fprintf(out, "  Base Branch: %s\n", config.BaseBranch)
	}
	if config.ThresholdHours != "" {
		fmt.Fprintf(out, "  Threshold: %s hours\n", config.ThresholdHours)
	}
	if config.Slack.Channel != "" {
		fmt.Fprintf(out, "  Slack Channel: %s\n", config.Slack.Channel)
	}
}

// loadOrCreateConfig loads existing config or creates a new one
func loadOrCreateConfig(configFile string, loadConfig func(string) (*cmd.Config, error)) (*cmd.Config, bool) {
	if config, err := loadConfig(configFile); err == nil {
		return config, true
	}
	return &cmd.Config{}, false
}

// updateConfigWithProvidedValues updates config with any non-empty provided values
func updateConfigWithProvidedValues(config *cmd.Config, v values) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&config.Org, v.org)
	set(&config.Repo, v.repo)
	set(&config.BaseBranch, v.baseBranch)
	set(&config.Language, v.language)
	set(&config.IgnoreLabels, v.ignoreLabels)
	set(&config.UserMap, v.userMap)
	set(&config.Slack.Channel, v.channel)
	set(&config.Slack.WebhookDetails, v.webhookDetails)
	set(&config.AI.Provider, v.provider)
	set(&config.AI.Model, v.model)
	if v.threshold != "" {
		config.ThresholdHours = cmd.Hours(strings.TrimSpace(v.threshold))
	}
}

// GitRepoInfo holds detected git repository information
type GitRepoInfo struct {
	Org  string
	Repo string
}

// detectGitRepoInfo attempts to detect git repository information
func detectGitRepoInfo() (*GitRepoInfo, error) {
	if !isGitRepository() {
		return nil, fmt.Errorf("not in a git repository")
	}

	org, repo, err := parseGitRemote()
	if err != nil {
		return nil, fmt.Errorf("failed to parse git remote: %w", err)
	}

	return &GitRepoInfo{Org: org, Repo: repo}, nil
}

// isGitRepository checks if current directory is in a git repository
func isGitRepository() bool {
	gitCmd := exec.Command("git", "rev-parse", "--git-dir")
	return gitCmd.Run() == nil
}

// parseGitRemote extracts org and repo from git remote origin
func parseGitRemote() (string, string, error) {
	gitCmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := gitCmd.Output()
	if err != nil {
		return "", "", err
	}

	return parseRemoteURL(strings.TrimSpace(string(output)))
}

var (
	sshRemote   = regexp.MustCompile(`git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	httpsRemote = regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// parseRemoteURL extracts org and repo from SSH or HTTPS GitHub remote URLs
func parseRemoteURL(remoteURL string) (string, string, error) {
	if matches := sshRemote.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}
	if matches := httpsRemote.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}
	return "", "", fmt.Errorf("unable to parse GitHub remote URL: %s", remoteURL)
}
