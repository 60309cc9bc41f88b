package domain

// ConversationCreateRequest is the payload for creating a conversation.
type ConversationCreateRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

// MessageCreateRequest is the payload for creating a message.
// Role defaults to "user" when omitted.
type MessageCreateRequest struct {
	Text string `json:"text"`
	Role string `json:"role,omitempty"`
}
