package llm

// ChatRequest is the body POSTed to a chat completions endpoint.
//
// It carries only the ordered messages: Cairo Coder selects the model
// server side, so no model, stream, or sampling fields are sent.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// NewChatRequest creates a request from the given messages, in order.
func NewChatRequest(messages ...Message) *ChatRequest {
	return &ChatRequest{Messages: messages}
}
