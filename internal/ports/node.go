package ports

import (
	"context"

	"github.com/luxfi/ai-bridge/internal/domain"
)

// NodeClient is the outbound edge to the local AI node. Implementations report
// honest errors; the fallback policy belongs to the application service.
type NodeClient interface {
	// Probe checks the stats endpoint for reachability only. A nil error
	// means the node answered with a success status.
	Probe(ctx context.Context) error
	Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
	Models(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (domain.NodeStats, error)
	Health(ctx context.Context) (domain.NodeHealth, error)
}
