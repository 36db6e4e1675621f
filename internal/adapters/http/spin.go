package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/roulette/internal/app"
	"github.com/randomtoy/roulette/internal/domain"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// spinConn serializes writes to one websocket; gorilla allows a single
// concurrent writer.
type spinConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *slog.Logger
}

func (s *spinConn) writeJSON(payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(payload); err != nil {
		s.logger.Debug("websocket write failed", "error", err)
	}
}

func (s *spinConn) sendView(v domain.View) {
	s.writeJSON(toViewMessage(v))
}

// Spin upgrades to a websocket and runs one spin session over it. The
// session, and its ticker, live as long as the connection.
func (h *Handler) Spin(c echo.Context) error {
	logger := requestLogger(c, h.logger)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	out := &spinConn{conn: conn, logger: logger}
	sess := h.svc.NewSession(c.Request().Context(), out.sendView)
	defer sess.Close()

	logger = logger.With("session_id", sess.ID())
	logger.Info("spin session opened")
	out.sendView(sess.View())

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("spin session read failed", "error", err)
			}
			logger.Info("spin session closed")
			return nil
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			logger.Debug("discarding malformed message", "error", err)
			out.writeJSON(errorMessage{Type: "error", Error: "malformed message"})
			continue
		}

		switch msg.Type {
		case string(app.EventSelect):
			sess.Dispatch(app.Event{Type: app.EventSelect, Category: msg.Category})
		case string(app.EventSpin):
			sess.Dispatch(app.Event{Type: app.EventSpin, Category: msg.Category})
		default:
			logger.Debug("discarding unknown message", "type", msg.Type)
			out.writeJSON(errorMessage{Type: "error", Error: "unknown message type"})
		}
	}
}
