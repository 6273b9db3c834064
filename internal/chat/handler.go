package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/akarpov/mentor-labs/internal/identity"
	"github.com/akarpov/mentor-labs/internal/mentor"
	"github.com/akarpov/mentor-labs/internal/relay"
	"github.com/akarpov/mentor-labs/internal/stream"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultMaxRequestBodySize is the default maximum allowed request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20

// Relay performs the single upstream exchange for one chat turn.
type Relay interface {
	Send(ctx context.Context, sessionID, prompt string) (string, error)
}

// Handler serves the chat endpoints: SSE over POST and a WebSocket variant.
type Handler struct {
	relay       Relay
	emitter     *stream.Emitter
	maxBodySize int64
	logger      *slog.Logger
}

// NewHandler creates a chat handler.
func NewHandler(relayClient Relay, emitter *stream.Emitter, maxBodySize int64, logger *slog.Logger) *Handler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxRequestBodySize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		relay:       relayClient,
		emitter:     emitter,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.HandleChat)
	r.Get("/ws/chat", h.HandleChatSocket)
}

// SSE chunk envelope, OpenAI chat.completion.chunk shaped.
type chunkDelta struct {
	Content string `json:"content,omitempty"`
}

type chunkChoice struct {
	Delta        chunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type completionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Choices []chunkChoice `json:"choices"`
}

func frameToChunk(f stream.Frame) completionChunk {
	choice := chunkChoice{Delta: chunkDelta{Content: f.Delta}}
	if f.Final {
		stop := "stop"
		choice.FinishReason = &stop
	}
	return completionChunk{
		ID:      f.ID,
		Object:  "chat.completion.chunk",
		Choices: []chunkChoice{choice},
	}
}

// runTurn validates the request, composes the prompt and performs the
// upstream exchange. It returns the complete reply text to be pseudo-streamed.
func (h *Handler) runTurn(ctx context.Context, req *Request, conversationID string) (string, int, error) {
	message, settings, err := req.Validate()
	if err != nil {
		return "", http.StatusBadRequest, err
	}

	prompt := mentor.ComposePrompt(message, req.Mentor, mentor.MapTone(settings))

	reply, err := h.relay.Send(ctx, conversationID, prompt)
	if err != nil {
		var upstreamErr *relay.UpstreamError
		if errors.As(err, &upstreamErr) {
			// Mirror the remote status; its body stays in the logs only.
			return "", upstreamErr.StatusCode, errors.New("mentor service unavailable")
		}
		h.logger.Error("relay call failed", "conversation_id", conversationID, "error", err)
		return "", http.StatusInternalServerError, errors.New("internal error")
	}
	return reply, http.StatusOK, nil
}

// HandleChat handles POST /api/chat, streaming the reply as SSE.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	cid := conversationID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, status, err := h.runTurn(r.Context(), &req, cid)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Info("chat turn",
		"conversation_id", cid,
		"message_count", len(req.Messages),
		"reply_length", len(reply),
	)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	streamID := "chatcmpl-" + uuid.NewString()
	for frame, err := range h.emitter.Frames(r.Context(), streamID, reply) {
		if err != nil {
			// Consumer disconnected; the emitter has already stopped.
			h.logger.Debug("chat stream cancelled", "conversation_id", cid, "error", err)
			return
		}
		if frame.Sentinel {
			if err := writeSSEData(w, "[DONE]"); err != nil {
				h.logger.Warn("failed to write SSE terminator", "error", err)
				return
			}
			flusher.Flush()
			return
		}
		data, err := json.Marshal(frameToChunk(frame))
		if err != nil {
			h.logger.Warn("failed to marshal stream chunk", "error", err)
			return
		}
		if err := writeSSEData(w, string(data)); err != nil {
			h.logger.Warn("failed to write SSE chunk", "error", err)
			return
		}
		flusher.Flush()
	}
}

func writeSSEData(w io.Writer, data string) error {
	_, err := fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

func conversationID(ctx context.Context) string {
	if cid := identity.ConversationIDFromContext(ctx); cid != "" {
		return cid
	}
	return uuid.NewString()
}
