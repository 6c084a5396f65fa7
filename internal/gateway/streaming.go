package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/openai"
	"github.com/dadihq/dadi-gateway/internal/types"
)

type sseChunk struct {
	Chunk string `json:"chunk"`
}

type sseError struct {
	Error string `json:"error"`
}

// streamChat relays completion fragments to the client as SSE events.
// Fragments are written in provider order with no buffering beyond the
// transport frame; a failed write means the client is gone and terminates
// the relay, which releases the provider stream.
func (h *Handler) streamChat(w http.ResponseWriter, r *http.Request, reqID string, history []types.Message, mode types.ChatMode, start time.Time) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteInternalError(w, reqID, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	stream, err := h.chat.ChatStream(r.Context(), history, mode)
	if err != nil {
		h.writeStreamError(w, flusher, reqID, string(mode), err)
		return
	}
	defer stream.Close()

	chunks := 0
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			break
		}
		if err != nil {
			h.writeStreamError(w, flusher, reqID, string(mode), err)
			break
		}

		payload, err := json.Marshal(sseChunk{Chunk: fragment})
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			slog.Info("client disconnected mid-stream", "request_id", reqID, "chunks", chunks)
			break
		}
		flusher.Flush()
		chunks++
	}

	slog.Info("chat stream finished",
		"request_id", reqID,
		"chunks", chunks,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if h.metrics != nil {
		h.metrics.RecordStreamChunks(chunks)
		h.metrics.RecordChat(http.StatusOK, string(mode), true, float64(time.Since(start).Milliseconds()))
	}
}

// writeStreamError emits the terminal SSE error event. It replaces the
// [DONE] sentinel: nothing is written after it and clients must treat any
// error field as final.
func (h *Handler) writeStreamError(w http.ResponseWriter, flusher http.Flusher, reqID, mode string, err error) {
	category := openai.CategoryOf(err)
	slog.Error("error during chat stream", "request_id", reqID, "category", string(category), "error", err)

	payload, merr := json.Marshal(sseError{Error: string(category)})
	if merr == nil {
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	if h.metrics != nil {
		h.metrics.RecordChatError(string(category))
	}
}
