package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		body     string
		maxBody  int
		contains string
	}{
		{
			name:     "collapses newlines",
			title:    "Fix\r\nbug",
			body:     "line one\n\nline two",
			contains: "Title: Fix bug\nDescription: line one line two",
		},
		{
			name:     "empty body placeholder",
			title:    "Fix",
			body:     "  \n ",
			contains: "Description: " + NoDescription,
		},
		{
			name:     "long body truncated",
			title:    "Fix",
			body:     strings.Repeat("a", 20),
			maxBody:  5,
			contains: "Description: aaaaa…",
		},
		{
			name:     "no limit",
			title:    "Fix",
			body:     strings.Repeat("a", 20),
			contains: "Description: " + strings.Repeat("a", 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt("English", tt.title, tt.body, tt.maxBody)

			assert.Contains(t, prompt, tt.contains)
			assert.Contains(t, prompt, "Answer in English")
		})
	}
}
