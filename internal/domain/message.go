package domain

// Message roles accepted on the chat endpoint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is a single entry in the running conversation sent by
// the UI. The relay only consumes the final entry, which must carry the
// "user" role.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
