package channels

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// WSChannel serves the RPC protocol over WebSocket connections: one JSON
// request per message, one response message back. This is the transport the
// demo front-end drives.
type WSChannel struct {
	handler *Handler
	logger  *slog.Logger
}

// NewWS creates a WebSocket channel.
func NewWS(handler *Handler, logger *slog.Logger) *WSChannel {
	return &WSChannel{
		handler: handler,
		logger:  logger.With("channel", "websocket"),
	}
}

// ServeHTTP upgrades the connection and answers frames until the client
// disconnects.
func (c *WSChannel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // local demo clients connect from file:// origins
	})
	if err != nil {
		c.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	connID := uuid.NewString()[:8]
	c.logger.Info("websocket client connected", "conn", connID, "remote", r.RemoteAddr)

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				c.logger.Info("websocket client disconnected", "conn", connID)
			} else {
				c.logger.Debug("websocket read failed", "conn", connID, "error", err)
			}
			return
		}

		resp := c.handler.Handle(ctx, data)
		if resp == nil {
			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, resp); err != nil {
			c.logger.Debug("websocket write failed", "conn", connID, "error", err)
			return
		}
	}
}

// Serve runs an HTTP server exposing the channel at /ws until ctx is done.
func (c *WSChannel) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", c)

	server := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	c.logger.Info("websocket channel listening", "addr", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
