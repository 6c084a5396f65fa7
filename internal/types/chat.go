package types

// Message is one role-tagged turn of a conversation. The ordered slice of
// messages is the full context sent to the model on every request; the
// gateway never accumulates history server-side.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []Message `json:"messages"`
	ChatMode string    `json:"chatMode,omitempty"`
}

// ChatResponse is the non-streaming chat reply.
type ChatResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse is the uniform error body: clients branch on Error and the
// HTTP status, never on Message text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
