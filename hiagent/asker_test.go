package hiagent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/hiagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tracing = `[{"step":"knowledge_retrieve_start"},` +
	`{"step":"knowledge_retrieve_end","docs":{"outputList":[` +
	`{"metadata":{"document_name":"常见问题.md","document_url":"https://bithesis.bitnp.net/faq/"}},` +
	`{"metadata":{"dataset_name":"问答库","document_id":"qa-17"}}]}}]`

func newAgentServer(t *testing.T, requests *[]map[string]any) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("ApiKey"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		*requests = append(*requests, body)
		mu.Unlock()
	}
	mux.HandleFunc("/v1/create_conversation", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = w.Write([]byte(`{"Conversation":{"AppConversationID":"conv-1","ConversationName":"new"}}`))
	})
	mux.HandleFunc("/v1/chat_query_v2", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: text\r\ndata: {\"event\":\"message_start\",\"id\":\"msg-0\"}\r\n\r\n" +
			"data: {\"event\":\"message\",\"id\":\"msg-1\",\"answer\":\"用\"}\r\n\r\n" +
			"data: {\"event\":\"message\",\"id\":\"msg-2\",\"answer\":\"法\"}\r\n\r\n"))
	})
	mux.HandleFunc("/v1/get_message_info", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		resp := map[string]any{
			"MessageInfo": map[string]any{
				"AnswerInfo": map[string]any{
					"Answer":         "请参考常见问题。",
					"TracingJsonStr": tracing,
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("asks in three calls", func(t *testing.T) {
		t.Parallel()

		var requests []map[string]any
		srv := newAgentServer(t, &requests)
		a := hiagent.NewAsker(hiagent.NewClient(srv.URL+"/v1", "secret"), "")

		answer, err := a.Ask(context.Background(), "如何设置字体？")

		require.NoError(t, err)
		assert.Equal(t, "请参考常见问题。\n\n══════\n\n回答来源\n\n"+
			"常见问题.md\nhttps://bithesis.bitnp.net/faq/\n\n问答库\nqa-17", answer)

		require.Len(t, requests, 3)
		assert.Equal(t, hiagent.DefaultUserID, requests[0]["UserID"])
		assert.Equal(t, "如何设置字体？", requests[1]["Query"])
		assert.Equal(t, "conv-1", requests[1]["AppConversationID"])
		assert.Equal(t, "streaming", requests[1]["ResponseMode"])
		assert.Equal(t, "msg-1", requests[2]["MessageID"])
	})

	t.Run("empty question", func(t *testing.T) {
		t.Parallel()

		a := hiagent.NewAsker(hiagent.NewClient("http://127.0.0.1:0", "secret"), "bot")

		_, err := a.Ask(context.Background(), "  ")

		assert.Equal(t, faqbot.EINVALID, faqbot.ErrorCode(err))
	})

	t.Run("API error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"Error":"invalid ApiKey"}`, http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)
		a := hiagent.NewAsker(hiagent.NewClient(srv.URL, "wrong"), "bot")

		_, err := a.Ask(context.Background(), "hi")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}

func TestParseMessageID(t *testing.T) {
	t.Parallel()

	t.Run("first message event", func(t *testing.T) {
		t.Parallel()

		id, err := hiagent.ParseMessageID("data: {\"event\":\"agent_thought\",\"id\":\"x\"}\n\ndata:{\"event\":\"message\",\"id\":\"m\"}\n")

		require.NoError(t, err)
		assert.Equal(t, "m", id)
	})

	t.Run("no message event", func(t *testing.T) {
		t.Parallel()

		_, err := hiagent.ParseMessageID("data: {\"event\":\"message_end\"}\n")

		assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
	})

	t.Run("invalid event", func(t *testing.T) {
		t.Parallel()

		_, err := hiagent.ParseMessageID("data: {oops\n")

		assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
	})
}

func TestParseSources(t *testing.T) {
	t.Parallel()

	t.Run("falls back to dataset name and document ID", func(t *testing.T) {
		t.Parallel()

		sources, err := hiagent.ParseSources(tracing)

		require.NoError(t, err)
		assert.Equal(t, []hiagent.Source{
			{Name: "常见问题.md", URL: "https://bithesis.bitnp.net/faq/"},
			{Name: "问答库", URL: "qa-17"},
		}, sources)
	})

	tests := []struct {
		name    string
		tracing string
	}{
		{"invalid JSON", `{`},
		{"no events", `[]`},
		{"last event without docs", `[{"docs":{"outputList":[]}},{"step":"end"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := hiagent.ParseSources(tt.tracing)

			assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
		})
	}
}

func TestFormatAnswer_NoSources(t *testing.T) {
	t.Parallel()

	got, err := hiagent.FormatAnswer(&hiagent.MessageInfo{AnswerInfo: &hiagent.AnswerInfo{
		Answer:         "不知道。",
		TracingJSONStr: `[{"docs":{"outputList":[]}}]`,
	}})

	require.NoError(t, err)
	assert.Equal(t, "不知道。\n\n══════\n\n回答来源", got)
}
