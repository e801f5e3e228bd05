package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan/stale-pr-reporter/cmd"
	"github.com/alan/stale-pr-reporter/internal/config"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func validConfig(string) (*cmd.Config, error) {
	c := &cmd.Config{Org: "testorg", Repo: "testrepo"}
	config.ApplyDefaults(c)
	return c, nil
}

func TestBaseCommand_Init(t *testing.T) {
	tests := []struct {
		name       string
		getenv     func(string) string
		loadConfig func(string) (*cmd.Config, error)
		wantErrMsg string
	}{
		{
			name:       "successful init",
			getenv:     env(map[string]string{"GITHUB_TOKEN": "test-token", "SLACK_BOT_TOKEN": "xoxb"}),
			loadConfig: validConfig,
		},
		{
			name:   "config load error",
			getenv: env(map[string]string{"GITHUB_TOKEN": "test-token"}),
			loadConfig: func(string) (*cmd.Config, error) {
				return nil, errors.New("failed to load config")
			},
			wantErrMsg: "failed to load config",
		},
		{
			name:   "invalid config",
			getenv: env(map[string]string{"GITHUB_TOKEN": "test-token"}),
			loadConfig: func(string) (*cmd.Config, error) {
				c, _ := validConfig("")
				c.ThresholdHours = "soon"
				return c, nil
			},
			wantErrMsg: "invalid configuration",
		},
		{
			name:       "missing github token",
			getenv:     env(nil),
			loadConfig: validConfig,
			wantErrMsg: "GITHUB_TOKEN environment variable is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := "test-config.yaml"
			bc := &BaseCommand{
				ConfigFile: &configFile,
				LoadConfig: tt.loadConfig,
				Getenv:     tt.getenv,
			}

			err := bc.Init(context.Background())

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, bc.Config)
			assert.NotNil(t, bc.GitHubClient)
			assert.NotNil(t, bc.Context)
			assert.Equal(t, "testorg/testrepo", bc.GitHubClient.Repository())
			assert.Equal(t, "xoxb", bc.Secrets.SlackBotToken)
		})
	}
}
