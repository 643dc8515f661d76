package ports

import (
	"context"

	"github.com/luxfi/ai-bridge/internal/domain"
)

// SpecsReader reports the host machine's hardware summary shown beside the
// miner panel.
type SpecsReader interface {
	ReadSpecs(ctx context.Context) (domain.SystemSpecs, error)
}
