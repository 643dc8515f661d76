package node

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/luxfi/ai-bridge/internal/domain"
	"github.com/luxfi/ai-bridge/internal/ports"
	"github.com/samber/lo"
)

const defaultTimeout = 30 * time.Second

// Client talks to the local AI node over its OpenAI-compatible HTTP API. The
// base URL is read from the endpoint source once per call, so a concurrent
// update never tears a request in half.
type Client struct {
	endpoint ports.EndpointSource
	http     *http.Client
}

func NewClient(endpoint ports.EndpointSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Probe issues a GET against /api/stats and reports reachability only. The
// body is discarded unread.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.get(ctx, "/api/stats")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return successStatus(resp)
}

func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	payload := chatRequest{
		Model: req.Model,
		Messages: lo.Map(req.Messages, func(m domain.ChatMessage, _ int) chatMessage {
			return chatMessage{Role: m.Role, Content: m.Content}
		}),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.ChatResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.Current()+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.ChatResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.ChatResponse{}, err
	}
	defer resp.Body.Close()
	if err := successStatus(resp); err != nil {
		return domain.ChatResponse{}, err
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ChatResponse{}, domain.DecodeError{Err: err}
	}
	return domain.ChatResponse{
		ID:    decoded.ID,
		Model: decoded.Model,
		Choices: lo.Map(decoded.Choices, func(ch chatChoice, _ int) domain.ChatChoice {
			return domain.ChatChoice{
				Index:        ch.Index,
				Message:      domain.ChatMessage{Role: ch.Message.Role, Content: ch.Message.Content},
				FinishReason: ch.FinishReason,
			}
		}),
	}, nil
}

// Models returns the node's model identifiers in the order the node listed
// them.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/v1/models")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := successStatus(resp); err != nil {
		return nil, err
	}

	var decoded modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.DecodeError{Err: err}
	}
	return lo.Map(decoded.Data, func(entry modelEntry, _ int) string {
		return entry.ID
	}), nil
}

// Stats fetches and parses /api/stats. Unlike Probe, this is a data query and
// every failure propagates.
func (c *Client) Stats(ctx context.Context) (domain.NodeStats, error) {
	resp, err := c.get(ctx, "/api/stats")
	if err != nil {
		return domain.NodeStats{}, err
	}
	defer resp.Body.Close()
	if err := successStatus(resp); err != nil {
		return domain.NodeStats{}, err
	}

	var decoded statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.NodeStats{}, domain.DecodeError{Err: err}
	}
	return domain.NodeStats{
		MinersConnected: decoded.MinersConnected,
		ModelsAvailable: decoded.ModelsAvailable,
		TasksPending:    decoded.TasksPending,
		TasksCompleted:  decoded.TasksCompleted,
		TasksFailed:     decoded.TasksFailed,
	}, nil
}

func (c *Client) Health(ctx context.Context) (domain.NodeHealth, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return domain.NodeHealth{}, err
	}
	defer resp.Body.Close()
	if err := successStatus(resp); err != nil {
		return domain.NodeHealth{}, err
	}

	var decoded healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.NodeHealth{}, domain.DecodeError{Err: err}
	}
	return domain.NodeHealth{
		Status:  decoded.Status,
		Running: decoded.Running,
		Version: decoded.Version,
	}, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.Current()+path, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

func successStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return domain.StatusError{Code: resp.StatusCode}
}
