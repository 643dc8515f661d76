package http

import (
	"time"

	nethttp "net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	// The bridge listens on loopback only; the webview's origin header is not
	// a meaningful trust signal here.
	CheckOrigin: func(*nethttp.Request) bool { return true },
}

// StreamMinerStatus pushes a MinerStatus frame immediately and then once per
// probe interval until the peer disconnects. Each frame costs one liveness
// probe against the node.
func (s *Server) StreamMinerStatus(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	requestCtx := ctx.Request().Context()
	ticker := time.NewTicker(s.probeInterval)
	defer ticker.Stop()

	for {
		status := s.service.MinerStatus(requestCtx)
		if err := conn.WriteJSON(minerStatusFromDomain(status)); err != nil {
			// Peer gone; nothing to report.
			return nil
		}

		select {
		case <-requestCtx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
