package chat

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

// HandleChatSocket handles GET /ws/chat. The client sends one chat request
// as JSON and receives the same framed chunk sequence the SSE endpoint
// produces, terminated by a literal "[DONE]" text message.
func (h *Handler) HandleChatSocket(w http.ResponseWriter, r *http.Request) {
	cid := conversationID(r.Context())

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("failed to accept chat websocket", "conversation_id", cid, "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat turn complete"); closeErr != nil {
			h.logger.Debug("failed to close chat websocket", "error", closeErr)
		}
	}()

	ctx := r.Context()
	ws.SetReadLimit(h.maxBodySize)

	var req Request
	if err := wsjson.Read(ctx, ws, &req); err != nil {
		_ = ws.Close(websocket.StatusInvalidFramePayloadData, "invalid request")
		return
	}

	reply, _, err := h.runTurn(ctx, &req, cid)
	if err != nil {
		if writeErr := wsjson.Write(ctx, ws, map[string]string{"error": err.Error()}); writeErr != nil {
			h.logger.Debug("failed to write websocket error", "error", writeErr)
		}
		return
	}

	streamID := "chatcmpl-" + uuid.NewString()
	for frame, err := range h.emitter.Frames(ctx, streamID, reply) {
		if err != nil {
			return
		}
		if frame.Sentinel {
			if err := ws.Write(ctx, websocket.MessageText, []byte("[DONE]")); err != nil {
				h.logger.Debug("failed to write websocket terminator", "error", err)
			}
			return
		}
		data, err := json.Marshal(frameToChunk(frame))
		if err != nil {
			h.logger.Warn("failed to marshal stream chunk", "error", err)
			return
		}
		if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
			h.logger.Debug("failed to write websocket chunk", "error", err)
			return
		}
	}
}
