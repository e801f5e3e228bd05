package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan/stale-pr-reporter/cmd"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name              string
		fileContent       string
		noFile            bool
		wantErrMsg        string
		expectedThreshold cmd.Hours
	}{
		{
			name: "full config",
			fileContent: `org: acme
repo: widgets
threshold_hours: "36"
language: Japanese
ignore_labels: "wip, do-not-review"
slack:
  channel: "#eng"
  webhook_details: flat
  timeout: 10s
ai:
  provider: anthropic
  temperature: 0
`,
			expectedThreshold: "36",
		},
		{
			name: "numeric threshold",
			fileContent: `org: acme
repo: widgets
threshold_hours: 48
`,
			expectedThreshold: "48",
		},
		{
			name:       "file not found",
			noFile:     true,
			wantErrMsg: "failed to read config file",
		},
		{
			name:        "invalid yaml",
			fileContent: "invalid: yaml: content: [",
			wantErrMsg:  "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if !tt.noFile {
				path = writeConfig(t, tt.fileContent)
			}

			config, err := LoadConfig(path)

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acme", config.Org)
			assert.Equal(t, "widgets", config.Repo)
			assert.Equal(t, tt.expectedThreshold, config.ThresholdHours)
		})
	}
}

func TestLoadConfig_NestedSections(t *testing.T) {
	path := writeConfig(t, `org: acme
repo: widgets
slack:
  channel: "#eng"
  webhook_details: flat
  timeout: 10s
ai:
  provider: anthropic
  temperature: 0
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "#eng", config.Slack.Channel)
	assert.Equal(t, "flat", config.Slack.WebhookDetails)
	assert.Equal(t, 10*time.Second, config.Slack.Timeout)
	assert.Equal(t, "anthropic", config.AI.Provider)
	require.NotNil(t, config.AI.Temperature)
	assert.Equal(t, 0.0, *config.AI.Temperature)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	config := &cmd.Config{
		Org:            "acme",
		Repo:           "widgets",
		ThresholdHours: "12",
		Slack:          cmd.SlackConfig{Channel: "#eng", Timeout: 5 * time.Second},
	}

	require.NoError(t, SaveConfig(path, config))
	loaded, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, config, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveConfig_Error(t *testing.T) {
	err := SaveConfig(filepath.Join(t.TempDir(), "missing-dir", "out.yaml"), &cmd.Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestLoad_EnvAndDefaults(t *testing.T) {
	path := writeConfig(t, "org: acme\nrepo: widgets\nthreshold_hours: 24\n")
	t.Setenv(EnvThreshold, "72")
	t.Setenv(EnvLanguage, "German")
	t.Setenv(EnvSlackChannel, "C999")

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cmd.Hours("72"), config.ThresholdHours)
	assert.Equal(t, "German", config.Language)
	assert.Equal(t, "C999", config.Slack.Channel)
	assert.Equal(t, DefaultSlackTimeout, config.Slack.Timeout)
	assert.Equal(t, DefaultAIModel, config.AI.Model)
	assert.Equal(t, "skip", config.Slack.WebhookDetails)
	assert.NoError(t, Validate(config))
}
