package domain

// ChatMessage is one entry of the assistant transcript. Position in the
// transcript is its arrival order; entries are never edited or removed.
type ChatMessage struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// ChatFallbackReply replaces any failed completion in the transcript.
const ChatFallbackReply = "Sorry, an error occurred. Please try again."
