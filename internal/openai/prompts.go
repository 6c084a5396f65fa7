package openai

import "github.com/dadihq/dadi-gateway/internal/types"

const funSystemPrompt = "You are Dadi, a playful AI buddy. Keep the tone casual and upbeat, " +
	"crack the occasional joke, use emoji when it fits, and keep answers short and fun."

const normalSystemPrompt = "You are Dadi, a helpful AI assistant. " +
	"Provide clear, concise, and accurate responses."

// SystemPrompt returns the persona template for a chat mode.
func SystemPrompt(mode types.ChatMode) string {
	if mode == types.ModeNormal {
		return normalSystemPrompt
	}
	return funSystemPrompt
}

// withSystemPrompt prepends the mode's system turn when the history carries
// none. At most one system turn ever reaches the provider this way; a
// caller-supplied system turn is left untouched.
func withSystemPrompt(history []types.Message, mode types.ChatMode) []types.Message {
	for _, m := range history {
		if m.Role == types.RoleSystem {
			return history
		}
	}
	out := make([]types.Message, 0, len(history)+1)
	out = append(out, types.Message{Role: types.RoleSystem, Content: SystemPrompt(mode)})
	return append(out, history...)
}

// normalizeRole maps a turn's role to the provider vocabulary. Unknown
// roles degrade to user, matching how the provider treats untyped input.
func normalizeRole(role string) string {
	switch role {
	case types.RoleSystem, types.RoleAssistant, types.RoleUser:
		return role
	default:
		return types.RoleUser
	}
}
