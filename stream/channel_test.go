package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/core"
)

// Interface compliance (compile-time assertion)
var _ core.Sink = (*ChannelSink)(nil)

func TestChannelSink_DeliversUntilClose(t *testing.T) {
	sink := NewChannelSink(4)

	require.NoError(t, sink.Send(core.NewTypingEvent(core.SenderArchitect)))
	require.NoError(t, sink.Send(core.NewDoneEvent(nil)))
	sink.Close()

	var got []core.StreamEvent
	for ev := range sink.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, core.EventTyping, got[0].Type)
	assert.Equal(t, core.EventDone, got[1].Type)
}

func TestChannelSink_SendAfterCloseIsNoOp(t *testing.T) {
	sink := NewChannelSink(1)
	sink.Close()

	assert.NoError(t, sink.Send(core.NewMessageEvent(core.SenderArchitect, "late")))
	_, open := <-sink.Events()
	assert.False(t, open)
}

func TestChannelSink_FullBufferDropsFrame(t *testing.T) {
	sink := NewChannelSink(1)

	require.NoError(t, sink.Send(core.NewTypingEvent(core.SenderArchitect)))
	require.NoError(t, sink.Send(core.NewTypingEvent(core.SenderReviewer)))
	sink.Close()

	var got []core.StreamEvent
	for ev := range sink.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, core.SenderArchitect, got[0].Sender)
}

func TestChannelSink_CountsHeartbeats(t *testing.T) {
	sink := NewChannelSink(1)
	require.NoError(t, sink.Heartbeat())
	require.NoError(t, sink.Heartbeat())
	assert.Equal(t, 2, sink.Heartbeats())
}
