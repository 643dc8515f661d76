package node

// Wire types for the node's OpenAI-compatible API. Field names follow the
// node's snake_case payloads; domain structs stay tag-free.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type modelEntry struct {
	ID string `json:"id"`
}

type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type statsResponse struct {
	MinersConnected int `json:"miners_connected"`
	ModelsAvailable int `json:"models_available"`
	TasksPending    int `json:"tasks_pending"`
	TasksCompleted  int `json:"tasks_completed"`
	TasksFailed     int `json:"tasks_failed"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
	Version string `json:"version"`
}
