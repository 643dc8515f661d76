package http

import (
	"log"
	"time"

	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/luxfi/ai-bridge/internal/app"
	"github.com/luxfi/ai-bridge/internal/domain"
	"github.com/luxfi/ai-bridge/internal/observability"
)

const defaultProbeInterval = 5 * time.Second

type Server struct {
	service       *app.Service
	logger        *log.Logger
	probeInterval time.Duration
}

func NewServer(service *app.Service, logger *log.Logger, probeInterval time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if probeInterval <= 0 {
		probeInterval = defaultProbeInterval
	}
	return &Server{
		service:       service,
		logger:        logger,
		probeInterval: probeInterval,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.PUT("/bridge/node-url", s.SetNodeURL)
	e.GET("/bridge/node-url", s.GetNodeURL)
	e.GET("/bridge/miner/status", s.GetMinerStatus)
	e.GET("/bridge/miner/status/ws", s.StreamMinerStatus)
	e.POST("/bridge/miner/start", s.StartMiner)
	e.POST("/bridge/miner/stop", s.StopMiner)
	e.POST("/bridge/chat", s.Chat)
	e.GET("/bridge/models", s.GetModels)
	e.GET("/bridge/node/stats", s.GetNodeStats)
	e.GET("/bridge/node/health", s.GetNodeHealth)
	e.GET("/bridge/system/specs", s.GetSystemSpecs)
}

// SetNodeURL repoints the bridge at a new node address. Fire-and-forget; an
// empty or garbage URL is stored as given and fails later at request time.
func (s *Server) SetNodeURL(ctx echo.Context) error {
	var body NodeURL
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(nethttp.StatusBadRequest, Error{Error: "invalid body"})
	}
	s.service.SetNodeURL(body.URL)
	return ctx.NoContent(nethttp.StatusNoContent)
}

func (s *Server) GetNodeURL(ctx echo.Context) error {
	return ctx.JSON(nethttp.StatusOK, NodeURL{URL: s.service.NodeURL()})
}

// GetMinerStatus never returns an error status; unreachable nodes show up as
// running=false.
func (s *Server) GetMinerStatus(ctx echo.Context) error {
	status := s.service.MinerStatus(ctx.Request().Context())
	return ctx.JSON(nethttp.StatusOK, minerStatusFromDomain(status))
}

func (s *Server) StartMiner(ctx echo.Context) error {
	var body StartMinerRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(nethttp.StatusBadRequest, Error{Error: "invalid body"})
	}
	message, err := s.service.StartMiner(body.Wallet)
	if err != nil {
		return s.nodeFailure(ctx, "miner_start", err)
	}
	return ctx.JSON(nethttp.StatusOK, Message{Message: message})
}

func (s *Server) StopMiner(ctx echo.Context) error {
	message, err := s.service.StopMiner()
	if err != nil {
		return s.nodeFailure(ctx, "miner_stop", err)
	}
	return ctx.JSON(nethttp.StatusOK, Message{Message: message})
}

func (s *Server) Chat(ctx echo.Context) error {
	var body ChatRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(nethttp.StatusBadRequest, Error{Error: "invalid body"})
	}

	request := domain.ChatRequest{
		Model: body.Model,
		Messages: lo.Map(body.Messages, func(m ChatMessage, _ int) domain.ChatMessage {
			return domain.ChatMessage{Role: m.Role, Content: m.Content}
		}),
		MaxTokens:   body.MaxTokens,
		Temperature: body.Temperature,
	}

	response, err := s.service.Chat(ctx.Request().Context(), request)
	if err != nil {
		return s.nodeFailure(ctx, "chat", err)
	}
	return ctx.JSON(nethttp.StatusOK, ChatResponse{
		ID:    response.ID,
		Model: response.Model,
		Choices: lo.Map(response.Choices, func(ch domain.ChatChoice, _ int) ChatChoice {
			return ChatChoice{
				Index:        ch.Index,
				Message:      ChatMessage{Role: ch.Message.Role, Content: ch.Message.Content},
				FinishReason: ch.FinishReason,
			}
		}),
	})
}

func (s *Server) GetModels(ctx echo.Context) error {
	models, err := s.service.Models(ctx.Request().Context())
	if err != nil {
		return s.nodeFailure(ctx, "models", err)
	}
	return ctx.JSON(nethttp.StatusOK, Models{Models: models})
}

func (s *Server) GetNodeStats(ctx echo.Context) error {
	stats, err := s.service.NodeStats(ctx.Request().Context())
	if err != nil {
		return s.nodeFailure(ctx, "node_stats", err)
	}
	return ctx.JSON(nethttp.StatusOK, NodeStats{
		MinersConnected: stats.MinersConnected,
		ModelsAvailable: stats.ModelsAvailable,
		TasksPending:    stats.TasksPending,
		TasksCompleted:  stats.TasksCompleted,
		TasksFailed:     stats.TasksFailed,
	})
}

func (s *Server) GetNodeHealth(ctx echo.Context) error {
	health, err := s.service.NodeHealth(ctx.Request().Context())
	if err != nil {
		return s.nodeFailure(ctx, "node_health", err)
	}
	return ctx.JSON(nethttp.StatusOK, NodeHealth{
		Status:  health.Status,
		Running: health.Running,
		Version: health.Version,
	})
}

func (s *Server) GetSystemSpecs(ctx echo.Context) error {
	specs, err := s.service.SystemSpecs(ctx.Request().Context())
	if err != nil {
		s.logger.Printf("system specs: %v", err)
		observability.CaptureError(err, map[string]string{
			"component": "bridge_http",
			"handler":   "system_specs",
		})
		return ctx.JSON(nethttp.StatusInternalServerError, Error{Error: err.Error()})
	}
	return ctx.JSON(nethttp.StatusOK, SystemSpecs{
		Model:   specs.Model,
		Cores:   specs.Cores,
		Threads: specs.Threads,
		Memory:  specs.Memory,
	})
}

// nodeFailure maps any node-side failure to 502 with the descriptive string
// the UI displays verbatim.
func (s *Server) nodeFailure(ctx echo.Context, handler string, err error) error {
	s.logger.Printf("%s: %v", handler, err)
	observability.CaptureError(err, map[string]string{
		"component": "bridge_http",
		"handler":   handler,
	})
	return ctx.JSON(nethttp.StatusBadGateway, Error{Error: err.Error()})
}

func minerStatusFromDomain(status domain.MinerStatus) MinerStatus {
	return MinerStatus{
		Running:        status.Running,
		TasksCompleted: status.TasksCompleted,
		TotalRewards:   status.TotalRewards,
		GPUUtilization: status.GPUUtilization,
	}
}
