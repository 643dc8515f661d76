package http

import (
	"encoding/json"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	nethttp "net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ai-bridge/internal/adapters/miner"
	nodeadapter "github.com/luxfi/ai-bridge/internal/adapters/node"
	specsadapter "github.com/luxfi/ai-bridge/internal/adapters/specs"
	"github.com/luxfi/ai-bridge/internal/app"
	"github.com/luxfi/ai-bridge/internal/endpoint"
)

// newBridge wires the full stack against a fake node: registry -> node client
// -> service -> echo handlers.
func newBridge(t *testing.T, nodeHandler nethttp.Handler) *echo.Echo {
	t.Helper()

	registry := endpoint.NewRegistry()
	if nodeHandler != nil {
		nodeServer := httptest.NewServer(nodeHandler)
		t.Cleanup(nodeServer.Close)
		registry.Set(nodeServer.URL)
	} else {
		registry.Set("http://127.0.0.1:1")
	}

	client := nodeadapter.NewClient(registry, 2*time.Second)
	service := app.NewService(client, miner.NewController(), specsadapter.NewReader(), registry, nil)

	e := echo.New()
	NewServer(service, nil, 50*time.Millisecond).Register(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNodeURLEndpoints(t *testing.T) {
	e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))

	rec := doJSON(e, nethttp.MethodPut, "/bridge/node-url", `{"url": "http://10.0.0.9:9090"}`)
	assert.Equal(t, nethttp.StatusNoContent, rec.Code)

	rec = doJSON(e, nethttp.MethodGet, "/bridge/node-url", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var got NodeURL
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "http://10.0.0.9:9090", got.URL)
}

func TestGetMinerStatus(t *testing.T) {
	t.Run("node up", func(t *testing.T) {
		e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "/api/stats", r.URL.Path)
		}))
		rec := doJSON(e, nethttp.MethodGet, "/bridge/miner/status", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)

		var status MinerStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.True(t, status.Running)
		assert.Zero(t, status.TasksCompleted)
	})

	t.Run("node down still 200", func(t *testing.T) {
		e := newBridge(t, nil)
		rec := doJSON(e, nethttp.MethodGet, "/bridge/miner/status", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)

		var status MinerStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.False(t, status.Running)
	})
}

func TestMinerStartStop(t *testing.T) {
	e := newBridge(t, nil) // no node needed, these never hit the network

	rec := doJSON(e, nethttp.MethodPost, "/bridge/miner/start", `{"wallet": "wallet123"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var message Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &message))
	assert.Equal(t, "Miner started for wallet: wallet123", message.Message)

	rec = doJSON(e, nethttp.MethodPost, "/bridge/miner/stop", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &message))
	assert.Equal(t, "Miner stopped", message.Message)
}

func TestChatEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			require.Equal(t, "/v1/chat/completions", r.URL.Path)
			w.Write([]byte(`{
				"id": "chatcmpl-9",
				"model": "zen-mini-0.5b",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}]
			}`))
		}))

		rec := doJSON(e, nethttp.MethodPost, "/bridge/chat",
			`{"model": "zen-mini-0.5b", "messages": [{"role": "user", "content": "hi"}]}`)
		require.Equal(t, nethttp.StatusOK, rec.Code)

		var resp ChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "chatcmpl-9", resp.ID)
		require.Len(t, resp.Choices, 1)
		assert.Equal(t, "hello", resp.Choices[0].Message.Content)
	})

	t.Run("node status failure surfaces string", func(t *testing.T) {
		e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusInternalServerError)
		}))

		rec := doJSON(e, nethttp.MethodPost, "/bridge/chat", `{"model": "m", "messages": []}`)
		require.Equal(t, nethttp.StatusBadGateway, rec.Code)

		var failure Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
		assert.Contains(t, failure.Error, "API error: 500")
	})

	t.Run("node unreachable surfaces string", func(t *testing.T) {
		e := newBridge(t, nil)
		rec := doJSON(e, nethttp.MethodPost, "/bridge/chat", `{"model": "m", "messages": []}`)
		require.Equal(t, nethttp.StatusBadGateway, rec.Code)

		var failure Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
		assert.NotEmpty(t, failure.Error)
	})
}

func TestModelsEndpoint(t *testing.T) {
	t.Run("node list", func(t *testing.T) {
		e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.Write([]byte(`{"object": "list", "data": [{"id": "zen-coder-1.5b"}, {"id": "qwen3-8b"}]}`))
		}))
		rec := doJSON(e, nethttp.MethodGet, "/bridge/models", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)

		var models Models
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
		assert.Equal(t, []string{"zen-coder-1.5b", "qwen3-8b"}, models.Models)
	})

	t.Run("fallback when node down", func(t *testing.T) {
		e := newBridge(t, nil)
		rec := doJSON(e, nethttp.MethodGet, "/bridge/models", "")
		require.Equal(t, nethttp.StatusOK, rec.Code)

		var models Models
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
		assert.Equal(t, []string{"zen-mini-0.5b"}, models.Models)
	})

	t.Run("malformed node body is an error", func(t *testing.T) {
		e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.Write([]byte(`{"data": 42}`))
		}))
		rec := doJSON(e, nethttp.MethodGet, "/bridge/models", "")
		assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
	})
}

func TestNodeStatsEndpoint(t *testing.T) {
	e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"miners_connected": 4, "models_available": 3, "tasks_pending": 1, "tasks_completed": 10, "tasks_failed": 0}`))
	}))
	rec := doJSON(e, nethttp.MethodGet, "/bridge/node/stats", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var stats NodeStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats.MinersConnected)
	assert.Equal(t, 10, stats.TasksCompleted)
}

func TestNodeHealthEndpoint(t *testing.T) {
	e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status": "healthy", "running": true, "version": "0.1.0"}`))
	}))
	rec := doJSON(e, nethttp.MethodGet, "/bridge/node/health", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var health NodeHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Running)
}

func TestSystemSpecsEndpoint(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("host specs require /proc on linux")
	}

	e := newBridge(t, nil)
	rec := doJSON(e, nethttp.MethodGet, "/bridge/system/specs", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var specs SystemSpecs
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &specs))
	assert.NotEmpty(t, specs.Model)
	assert.Greater(t, specs.Threads, 0)
}

func TestStreamMinerStatus(t *testing.T) {
	e := newBridge(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))

	bridge := httptest.NewServer(e)
	defer bridge.Close()

	wsURL := "ws" + strings.TrimPrefix(bridge.URL, "http") + "/bridge/miner/status/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 2; i++ {
		var status MinerStatus
		require.NoError(t, conn.ReadJSON(&status))
		assert.True(t, status.Running)
	}
}
