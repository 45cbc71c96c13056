package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/agent"
	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/model"
	"github.com/hupe1980/agentcouncil/orchestrator"
	"github.com/hupe1980/agentcouncil/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.InMemoryStore) {
	t.Helper()

	gateway := store.NewInMemoryStore()
	registry := agent.NewRegistry(func(o *agent.RegistryOptions) {
		o.ArchitectModel = func() model.Model { return model.NewMockModel("a", "mock") }
		o.ReviewerModel = func() model.Model { return model.NewMockModel("r", "mock") }
		o.CriticModel = func() model.Model { return model.NewMockModel("c", "mock") }
	})
	orch := orchestrator.New(gateway, registry)

	ts := httptest.NewServer(New(gateway, orch).Handler())
	t.Cleanup(ts.Close)
	return ts, gateway
}

func postChat(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// readEvents parses every data frame of an SSE response body.
func readEvents(t *testing.T, resp *http.Response) []core.StreamEvent {
	t.Helper()

	var events []core.StreamEvent
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev core.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestChat_InvalidRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postChat(t, ts, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postChat(t, ts, `{"mode":"solo"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "missing_message", body.Error)

	resp = postChat(t, ts, `{"message":"hi","mode":"quartet"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChat_SoloStream(t *testing.T) {
	ts, gateway := newTestServer(t)

	resp := postChat(t, ts, `{"message":"hello there","mode":"solo"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(t, resp)
	require.Len(t, events, 4)

	// The conversation id opens the stream so clients can resume.
	assert.Equal(t, core.EventConversationID, events[0].Type)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, core.EventTyping, events[1].Type)
	assert.Equal(t, core.EventMessage, events[2].Type)
	assert.Equal(t, core.SenderArchitect, events[2].Sender)
	assert.Equal(t, core.EventDone, events[3].Type)

	history, err := gateway.GetHistory(t.Context(), events[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello there", history[0].Content)
}

// A supplied conversation id is reused instead of creating a new one, and the
// stream still announces it first.
func TestChat_ExistingConversation(t *testing.T) {
	ts, gateway := newTestServer(t)

	conv, err := gateway.CreateConversation(t.Context(), "existing", core.ModeSolo, nil)
	require.NoError(t, err)

	resp := postChat(t, ts, `{"conversation_id":"`+conv.ID+`","message":"hello again","mode":"solo"}`)
	events := readEvents(t, resp)
	require.NotEmpty(t, events)
	assert.Equal(t, conv.ID, events[0].ID)
}

func TestChat_TeamStreamsAllStages(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postChat(t, ts, `{"message":"hello there","mode":"team"}`)
	events := readEvents(t, resp)

	var senders []string
	for _, ev := range events {
		if ev.Type == core.EventMessage {
			senders = append(senders, ev.Sender)
		}
	}
	assert.Equal(t, []string{core.SenderArchitect, core.SenderReviewer, core.SenderCritic, core.SenderArchitect}, senders)
	assert.Equal(t, core.EventDone, events[len(events)-1].Type)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/chat")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
