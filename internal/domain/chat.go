package domain

// ChatMessage is the provider-agnostic chat message shape used by the use
// cases and LLM integrations. ImageURL, when set, attaches an image (usually a
// data: URL) alongside the text content.
type ChatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageURL string `json:"-"`
}

// ChatRequest describes a single chat-completion call.
type ChatRequest struct {
	Model       string
	Messages    []ChatMessage
	Temperature *float64
	MaxTokens   int
	// JSONObject asks the provider to return a single JSON object.
	JSONObject bool
}
