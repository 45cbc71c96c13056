package stream

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/core"
)

// Interface compliance (compile-time assertion)
var _ core.Sink = (*SSESink)(nil)

func TestSSESink_Frames(t *testing.T) {
	rec := httptest.NewRecorder()
	sink, err := NewSSESink(rec)
	require.NoError(t, err)

	require.NoError(t, sink.Send(core.NewConversationIDEvent("c-1")))
	require.NoError(t, sink.Send(core.NewTypingEvent(core.SenderArchitect)))
	require.NoError(t, sink.Heartbeat())
	require.NoError(t, sink.Send(core.NewDoneEvent(nil)))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	frames := strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n")
	require.Len(t, frames, 4)
	assert.Equal(t, `data: {"type":"conversation_id","id":"c-1"}`, frames[0])
	assert.Equal(t, `data: {"type":"typing","sender":"architect"}`, frames[1])
	assert.Equal(t, ": heartbeat", frames[2])
	assert.Equal(t, `data: {"type":"done"}`, frames[3])
}

func TestSSESink_SendAfterCloseIsNoOp(t *testing.T) {
	rec := httptest.NewRecorder()
	sink, err := NewSSESink(rec)
	require.NoError(t, err)

	sink.Close()
	before := rec.Body.Len()

	assert.NoError(t, sink.Send(core.NewMessageEvent(core.SenderArchitect, "late")))
	assert.NoError(t, sink.Heartbeat())
	assert.Equal(t, before, rec.Body.Len())
}
