package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream message types.
const (
	MsgDay    = "day"
	MsgReport = "report"
	MsgError  = "error"
)

type StreamMessage struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// streamSimulation runs a simulation and pushes one message per day, then the result.
// Parameters come from the query string; a closed socket cancels the run.
func (s *Server) streamSimulation(c echo.Context) error {
	req := &SimulationRequest{}
	if verr := readAndValidateRequest(c, req); verr != nil {
		return badRequestResponse(c, verr)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn(c.Request().Context(), "WebSocket upgrade failed", "error", err.Error())
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// the read loop only exists to notice the peer going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	var mu sync.Mutex
	send := func(m StreamMessage) {
		mu.Lock()
		defer mu.Unlock()
		if err := conn.WriteJSON(m); err != nil {
			cancel()
		}
	}

	res, err := s.deps.Runner.Run(ctx, req.params(), func(rec types.DailyStepRecord) {
		send(StreamMessage{Type: MsgDay, Data: rec})
	})
	if err != nil {
		if ctx.Err() == nil {
			send(StreamMessage{Type: MsgError, Message: err.Error()})
		}
		return nil
	}
	send(StreamMessage{Type: MsgReport, Data: res})

	mu.Lock()
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	mu.Unlock()
	return nil
}
