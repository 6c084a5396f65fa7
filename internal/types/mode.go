package types

// ChatMode selects the system-prompt persona injected when a conversation
// carries no system turn.
type ChatMode string

const (
	ModeFun    ChatMode = "fun"
	ModeNormal ChatMode = "normal"
)

// ParseChatMode reports whether s names a known mode.
func ParseChatMode(s string) (ChatMode, bool) {
	switch ChatMode(s) {
	case ModeFun, ModeNormal:
		return ChatMode(s), true
	default:
		return "", false
	}
}

// ModeOrDefault degrades unset or unrecognized values to ModeFun.
func ModeOrDefault(s string) ChatMode {
	if m, ok := ParseChatMode(s); ok {
		return m
	}
	return ModeFun
}
