package types

import "time"

// IdeaRecord is a stored idea-box submission.
type IdeaRecord struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail"`
	Timestamp   time.Time `json:"timestamp"`
}

type SubmitIdeaRequest struct {
	Text string `json:"text"`
}

type SubmitIdeaResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UserPreferences holds per-user settings keyed by the principal's user id.
type UserPreferences struct {
	ChatMode string `json:"chatMode"`
}

type SetChatModeRequest struct {
	ChatMode string `json:"chatMode"`
}

type ChatModeResponse struct {
	ChatMode string `json:"chatMode"`
}

// UserInfoResponse is the body of GET /api/user.
type UserInfoResponse struct {
	Email           string `json:"email"`
	Provider        string `json:"provider"`
	UserID          string `json:"userId"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// CreateIssueRequest asks the configured issue tracker to open an issue.
type CreateIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

type CreateIssueResponse struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}
