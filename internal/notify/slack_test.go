package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackClient_Post(t *testing.T) {
	var forms []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		forms = append(forms, map[string]string{
			"channel":   r.FormValue("channel"),
			"text":      r.FormValue("text"),
			"blocks":    r.FormValue("blocks"),
			"thread_ts": r.FormValue("thread_ts"),
		})
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"ok": true, "channel": "C123", "ts": "1700000000.00010%d"}`, len(forms))
	}))
	defer server.Close()

	client := NewSlackClient("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	doc := sampleDocument()

	ts, err := client.Post(context.Background(), Message{Channel: "C123", Text: "fallback", Blocks: ComposeBlocks(doc)})
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000101", ts)

	_, err = client.Post(context.Background(), Message{Channel: "C123", ThreadTS: ts, Text: "reply", Blocks: ComposeBlocks(doc)})
	require.NoError(t, err)

	require.Len(t, forms, 2)
	assert.Equal(t, "C123", forms[0]["channel"])
	assert.Equal(t, "fallback", forms[0]["text"])
	assert.Empty(t, forms[0]["thread_ts"])
	assert.Equal(t, ts, forms[1]["thread_ts"])

	var blocks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(forms[0]["blocks"]), &blocks))
	require.Len(t, blocks, 2)
	assert.Equal(t, "header", blocks[0]["type"])
	assert.Equal(t, "rich_text", blocks[1]["type"])
}

func TestSlackClient_PostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok": false, "error": "channel_not_found"}`)
	}))
	defer server.Close()

	client := NewSlackClient("xoxb-test", slack.OptionAPIURL(server.URL+"/"))

	_, err := client.Post(context.Background(), Message{Channel: "missing", Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
