package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/httputil"
	"github.com/dadihq/dadi-gateway/internal/openai"
	"github.com/dadihq/dadi-gateway/internal/store"
	"github.com/dadihq/dadi-gateway/internal/telemetry"
	"github.com/dadihq/dadi-gateway/internal/types"
)

// ChatStream is a forward-only sequence of completion fragments. Recv
// returns io.EOF on normal completion and a classified error on failure.
type ChatStream interface {
	Recv() (string, error)
	Close() error
}

// ChatService is the model backend consumed by the chat endpoint.
type ChatService interface {
	IsConfigured() bool
	Chat(ctx context.Context, history []types.Message, mode types.ChatMode) (string, error)
	ChatStream(ctx context.Context, history []types.Message, mode types.ChatMode) (ChatStream, error)
}

// IssueCreator opens issues in an external tracker. The integration itself
// lives outside the gateway; a nil creator disables the endpoint.
type IssueCreator interface {
	Create(ctx context.Context, req types.CreateIssueRequest) (types.CreateIssueResponse, error)
}

// Handler holds dependencies for the gateway HTTP handlers.
type Handler struct {
	chat    ChatService
	prefs   store.PreferenceStore
	ideas   store.IdeaStore
	issues  IssueCreator
	metrics *telemetry.Metrics
}

func NewHandler(chat ChatService, prefs store.PreferenceStore, ideas store.IdeaStore, issues IssueCreator, metrics *telemetry.Metrics) *Handler {
	return &Handler{
		chat:    chat,
		prefs:   prefs,
		ideas:   ideas,
		issues:  issues,
		metrics: metrics,
	}
}

// Chat handles POST /api/chat. The Accept header selects the delivery
// mode: text/event-stream gets an SSE relay, everything else one JSON
// object.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	reqID := w.Header().Get("X-Request-ID")
	start := time.Now()

	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, reqID, "User not authenticated")
		return
	}

	var chatReq types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		slog.Warn("invalid chat request body", "request_id", reqID, "error", err)
		httputil.WriteBadRequest(w, reqID, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if len(chatReq.Messages) == 0 {
		httputil.WriteBadRequest(w, reqID, "Messages array is required and must not be empty")
		return
	}

	if !h.chat.IsConfigured() {
		slog.Error("chat requested but model backend is not configured", "request_id", reqID)
		httputil.WriteServiceUnavailable(w, reqID, "AI service is not configured")
		return
	}

	mode := h.resolveMode(r.Context(), id, chatReq.ChatMode)

	slog.Info("processing chat",
		"request_id", reqID,
		"email", id.Email,
		"messages", len(chatReq.Messages),
		"mode", string(mode),
	)

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		h.streamChat(w, r, reqID, chatReq.Messages, mode, start)
		return
	}

	reply, err := h.chat.Chat(r.Context(), chatReq.Messages, mode)
	if err != nil {
		h.writeChatError(w, reqID, string(mode), err)
		return
	}

	slog.Info("chat response generated", "request_id", reqID, "duration_ms", time.Since(start).Milliseconds())
	if h.metrics != nil {
		h.metrics.RecordChat(http.StatusOK, string(mode), false, float64(time.Since(start).Milliseconds()))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.ChatResponse{Message: reply})
}

// resolveMode picks the chat mode: an explicit request value wins, then
// the caller's stored preference, then the fun default.
func (h *Handler) resolveMode(ctx context.Context, id *auth.Identity, requested string) types.ChatMode {
	if mode, ok := types.ParseChatMode(requested); ok {
		return mode
	}
	if h.prefs != nil && id.Principal != nil {
		prefs, err := h.prefs.Get(ctx, id.Principal.UserID)
		if err != nil {
			slog.Warn("failed to load chat mode preference", "user_id", id.Principal.UserID, "error", err)
			return types.ModeFun
		}
		return types.ModeOrDefault(prefs.ChatMode)
	}
	return types.ModeFun
}

// writeChatError maps a classified model failure to its HTTP shape. The
// category was assigned inside the model gateway; it is not re-derived here.
func (h *Handler) writeChatError(w http.ResponseWriter, reqID, mode string, err error) {
	category := openai.CategoryOf(err)
	slog.Error("error processing chat", "request_id", reqID, "category", string(category), "error", err)

	status := http.StatusInternalServerError
	switch category {
	case openai.CategoryContextLengthExceeded:
		status = http.StatusUnprocessableEntity
		httputil.WriteContextLengthExceeded(w, reqID, err.Error())
	case openai.CategoryNotConfigured:
		status = http.StatusServiceUnavailable
		httputil.WriteServiceUnavailable(w, reqID, "AI service is not configured")
	default:
		httputil.WriteInternalError(w, reqID, err.Error())
	}

	if h.metrics != nil {
		h.metrics.RecordChat(status, mode, false, 0)
		h.metrics.RecordChatError(string(category))
	}
}

// openAIChatService adapts *openai.Client to the ChatService interface.
type openAIChatService struct {
	client *openai.Client
}

func NewOpenAIChatService(client *openai.Client) ChatService {
	return &openAIChatService{client: client}
}

func (s *openAIChatService) IsConfigured() bool {
	return s.client.IsConfigured()
}

func (s *openAIChatService) Chat(ctx context.Context, history []types.Message, mode types.ChatMode) (string, error) {
	return s.client.Chat(ctx, history, mode)
}

func (s *openAIChatService) ChatStream(ctx context.Context, history []types.Message, mode types.ChatMode) (ChatStream, error) {
	stream, err := s.client.ChatStream(ctx, history, mode)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
