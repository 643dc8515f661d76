package domain

// MinerStatus reports whether the local miner is reachable. The counters are
// populated only once the node starts serving per-miner statistics; until then
// they stay zero and Running carries the whole signal.
type MinerStatus struct {
	Running        bool
	TasksCompleted uint64
	TotalRewards   float64
	GPUUtilization float64
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest is forwarded to the node unchanged; message order is preserved
// end to end.
type ChatRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   *int
	Temperature *float64
}

type ChatChoice struct {
	Index        int
	Message      ChatMessage
	FinishReason string
}

type ChatResponse struct {
	ID      string
	Model   string
	Choices []ChatChoice
}

// NodeStats mirrors the node's /api/stats payload.
type NodeStats struct {
	MinersConnected int
	ModelsAvailable int
	TasksPending    int
	TasksCompleted  int
	TasksFailed     int
}

// NodeHealth mirrors the node's /health payload.
type NodeHealth struct {
	Status  string
	Running bool
	Version string
}

// SystemSpecs summarizes the host machine for the miner panel.
type SystemSpecs struct {
	Model   string
	Cores   int
	Threads int
	Memory  string
}
