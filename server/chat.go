package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/internal/util"
	"github.com/hupe1980/agentcouncil/orchestrator"
	"github.com/hupe1980/agentcouncil/stream"
)

// titleChars caps the auto-derived title of a freshly created conversation.
const titleChars = 50

// ChatRequest is the POST /api/chat request body. ConversationID is optional:
// when absent a conversation is created and its id announced as the first
// stream frame.
type ChatRequest struct {
	ConversationID string          `json:"conversation_id,omitempty"`
	Message        string          `json:"message"`
	Mode           string          `json:"mode"`
	ProjectID      *string         `json:"project_id,omitempty"`
	Context        *core.AIContext `json:"context,omitempty"`
}

// handleChat validates the request, resolves the conversation and streams
// the run as SSE. Validation failures are plain JSON errors; once the stream
// is open all failures travel as error frames.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required")
		return
	}
	mode, err := core.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conv, err := s.store.CreateConversation(r.Context(), util.Truncate(req.Message, titleChars), mode, req.ProjectID)
		if err != nil {
			s.logger.Error("conversation creation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "conversation_create_failed", "could not create conversation")
			return
		}
		conversationID = conv.ID
	}

	sink, err := stream.NewSSESink(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", err.Error())
		return
	}
	defer sink.Close()

	if err := sink.Send(core.NewConversationIDEvent(conversationID)); err != nil {
		s.logger.Debug("conversation_id frame dropped", "error", err)
		return
	}

	// The run is fire-and-forget: it gets a fresh background context so a
	// consumer disconnect never cancels in-flight model calls. Writes after
	// disconnect land in the closed sink and are swallowed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.orch.Run(context.Background(), orchestrator.RunInput{
			ConversationID: conversationID,
			Message:        req.Message,
			Mode:           mode,
			ProjectID:      req.ProjectID,
			Context:        req.Context,
		}, sink)
	}()

	select {
	case <-done:
	case <-r.Context().Done():
		s.logger.Info("client disconnected mid-run", "conversation_id", conversationID)
	}
}
