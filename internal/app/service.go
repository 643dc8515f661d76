package app

import (
	"context"
	"errors"
	"log"

	"github.com/luxfi/ai-bridge/internal/domain"
	"github.com/luxfi/ai-bridge/internal/ports"
)

// FallbackModel is returned when the node cannot serve its model list.
const FallbackModel = "zen-mini-0.5b"

// Service is the operation bridge the presentation layer drives. Each method
// maps a node outcome into a value or a descriptive failure. The absorption
// policy differs per operation and must stay that way: MinerStatus and Models
// swallow node failures, Chat surfaces everything.
type Service struct {
	node     ports.NodeClient
	miner    ports.MinerController
	specs    ports.SpecsReader
	endpoint ports.EndpointSource
	logger   *log.Logger
}

func NewService(node ports.NodeClient, miner ports.MinerController, specs ports.SpecsReader, endpoint ports.EndpointSource, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		node:     node,
		miner:    miner,
		specs:    specs,
		endpoint: endpoint,
		logger:   logger,
	}
}

// MinerStatus probes the node and reports liveness. Any probe failure
// collapses into running=false; the metric fields stay zero either way until
// the node serves per-miner statistics (see Service.NodeStats for the parsed
// node-wide numbers).
func (s *Service) MinerStatus(ctx context.Context) domain.MinerStatus {
	if err := s.node.Probe(ctx); err != nil {
		s.logger.Printf("miner status probe: %v", err)
		return domain.MinerStatus{}
	}
	return domain.MinerStatus{Running: true}
}

func (s *Service) StartMiner(wallet string) (string, error) {
	return s.miner.Start(wallet)
}

func (s *Service) StopMiner() (string, error) {
	return s.miner.Stop()
}

// Chat forwards the request to the node. Transport, status and decode
// failures all propagate to the caller.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	return s.node.Chat(ctx, req)
}

// Models lists the node's model identifiers in node order. Transport and
// status failures fall back to the single built-in model; a malformed body
// still propagates.
func (s *Service) Models(ctx context.Context) ([]string, error) {
	models, err := s.node.Models(ctx)
	if err != nil {
		var decodeErr domain.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, err
		}
		s.logger.Printf("model list: %v, serving fallback", err)
		return []string{FallbackModel}, nil
	}
	return models, nil
}

// NodeStats returns the node's parsed statistics. No fallback here; the UI
// distinguishes "node down" from "zero activity".
func (s *Service) NodeStats(ctx context.Context) (domain.NodeStats, error) {
	return s.node.Stats(ctx)
}

func (s *Service) NodeHealth(ctx context.Context) (domain.NodeHealth, error) {
	return s.node.Health(ctx)
}

// SystemSpecs reads the host hardware summary. Local I/O only, no node call.
func (s *Service) SystemSpecs(ctx context.Context) (domain.SystemSpecs, error) {
	return s.specs.ReadSpecs(ctx)
}

// SetNodeURL points every subsequent operation at a new node address.
// Fire-and-forget: no validation, no error.
func (s *Service) SetNodeURL(url string) {
	s.endpoint.Set(url)
}

func (s *Service) NodeURL() string {
	return s.endpoint.Current()
}
