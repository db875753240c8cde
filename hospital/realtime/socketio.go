// hospital/realtime/socketio.go
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

type sioPeer struct {
	conn *socket.Socket
}

func (p sioPeer) ID() string { return "sio-" + string(p.conn.Id()) }

func (p sioPeer) Emit(event string, payload any) error {
	return p.conn.Emit(event, payload)
}

// handshakeToken reads the JWT from the v4 auth payload, then the query
// string, then an Authorization header.
func handshakeToken(h *socket.Handshake) string {
	if auth, ok := h.Auth.(map[string]any); ok {
		if tok, ok := auth["token"].(string); ok && tok != "" {
			return tok
		}
	}
	if vals := h.Query["token"]; len(vals) > 0 && vals[0] != "" {
		return vals[0]
	}
	for name, vals := range h.Headers {
		if http.CanonicalHeaderKey(name) != "Authorization" || len(vals) == 0 {
			continue
		}
		if tok, ok := strings.CutPrefix(vals[0], "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return ""
}

// eventData turns the first event argument back into JSON for Dispatch.
func eventData(args []any) json.RawMessage {
	if len(args) == 0 {
		return nil
	}
	if _, isAck := args[0].(socket.Ack); isAck {
		return nil
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return nil
	}
	return raw
}

// NewSocketIOServer exposes the gateway to socket.io v4 clients with the same
// event names as the WebSocket transport. Mount ServeHandler(nil) at
// /socket.io/ and call Close(nil) on shutdown.
func (g *Gateway) NewSocketIOServer() *socket.Server {
	opts := socket.DefaultServerOptions()
	opts.SetServeClient(false)
	server := socket.NewServer(nil, opts)

	server.Use(func(s *socket.Socket, next func(*socket.ExtendedError)) {
		principal, err := g.Authenticate(handshakeToken(s.Handshake()))
		if err != nil {
			logging.AppLogger.Info("socket.io connection refused", zap.String("sid", string(s.Id())))
			next(socket.NewExtendedError("unauthorized", nil))
			return
		}
		s.SetData(principal)
		next(nil)
	})

	server.On("connection", func(clients ...any) {
		s := clients[0].(*socket.Socket)
		principal, ok := s.Data().(types.Principal)
		if !ok {
			s.Disconnect(true)
			return
		}
		peer := sioPeer{conn: s}
		if err := g.connect(peer, func() { s.Disconnect(true) }); err != nil {
			s.Disconnect(true)
			return
		}
		logging.AppLogger.Info("socket.io connected",
			zap.String("sid", string(s.Id())),
			zap.Uint("user_id", principal.UserID),
		)

		for _, event := range []string{EventJoinChat, EventLeaveChat, EventSendMessage} {
			s.On(event, func(args ...any) {
				g.Dispatch(context.Background(), principal, peer, event, eventData(args))
			})
		}
		s.On("disconnect", func(reason ...any) {
			g.Disconnect(peer)
			logging.AppLogger.Info("socket.io disconnected", zap.String("sid", string(s.Id())), zap.Any("reason", reason))
		})
	})
	return server
}
