package http

// Wire types for the bridge surface the desktop UI calls. Failures cross this
// boundary as plain strings inside Error; the UI renders them as-is.

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

type NodeURL struct {
	URL string `json:"url"`
}

type StartMinerRequest struct {
	Wallet string `json:"wallet"`
}

type MinerStatus struct {
	Running        bool    `json:"running"`
	TasksCompleted uint64  `json:"tasks_completed"`
	TotalRewards   float64 `json:"total_rewards"`
	GPUUtilization float64 `json:"gpu_utilization"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
}

type Models struct {
	Models []string `json:"models"`
}

type NodeStats struct {
	MinersConnected int `json:"miners_connected"`
	ModelsAvailable int `json:"models_available"`
	TasksPending    int `json:"tasks_pending"`
	TasksCompleted  int `json:"tasks_completed"`
	TasksFailed     int `json:"tasks_failed"`
}

type NodeHealth struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
	Version string `json:"version"`
}

type SystemSpecs struct {
	Model   string `json:"model"`
	Cores   int    `json:"cores"`
	Threads int    `json:"threads"`
	Memory  string `json:"memory,omitempty"`
}
