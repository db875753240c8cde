// hospital/realtime/ws.go
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/utils/logging"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	wsSendBuffer   = 64
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = 64 << 10
)

var (
	errPeerClosed     = errors.New("peer closed")
	errSendBufferFull = errors.New("send buffer full")
)

// Envelope is the frame format of the WebSocket transport.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type wsPeer struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newWSPeer(conn *websocket.Conn) *wsPeer {
	return &wsPeer{
		id:   "ws-" + uuid.NewString(),
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}
}

func (p *wsPeer) ID() string { return p.id }

// Emit queues the event without blocking; a slow reader loses live events.
func (p *wsPeer) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	select {
	case <-p.done:
		return errPeerClosed
	default:
	}
	select {
	case p.send <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

func (p *wsPeer) close(code websocket.StatusCode, reason string) {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close(code, reason)
	})
}

func (p *wsPeer) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case frame := <-p.send:
			wctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := p.conn.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				logging.AppLogger.Info("websocket write failed", zap.String("peer", p.id), zap.Error(err))
				p.close(websocket.StatusInternalError, "write failed")
				return
			}
		}
	}
}

func invalidFrame(msg string) error {
	return &controllers.Error{Kind: controllers.ErrValidation, Msg: msg}
}

// WebSocketHandler serves the chat socket. The JWT comes from the "token"
// query parameter or an Authorization bearer header.
func (g *Gateway) WebSocketHandler(allowedOrigins []string) http.Handler {
	opts := &websocket.AcceptOptions{}
	for _, o := range allowedOrigins {
		if o == "*" {
			opts.InsecureSkipVerify = true
			break
		}
		opts.OriginPatterns = append(opts.OriginPatterns, strings.TrimRight(o, "/"))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = middlewares.BearerToken(r)
		}
		principal, err := g.Authenticate(token)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		conn.SetReadLimit(wsReadLimit)
		peer := newWSPeer(conn)
		if err := g.connect(peer, func() { peer.close(websocket.StatusGoingAway, "server shutting down") }); err != nil {
			conn.Close(websocket.StatusTryAgainLater, "server shutting down")
			return
		}
		defer g.Disconnect(peer)
		defer peer.close(websocket.StatusNormalClosure, "")

		// detached from the request so the route timeout does not end the socket
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go peer.writeLoop(ctx)

		logging.AppLogger.Info("websocket connected",
			zap.String("peer", peer.id),
			zap.Uint("user_id", principal.UserID),
			zap.String("role", principal.Role),
		)
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			if typ != websocket.MessageText {
				g.emitError(peer, "", invalidFrame("unsupported data"))
				continue
			}
			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				g.emitError(peer, "", invalidFrame("invalid json"))
				continue
			}
			g.Dispatch(ctx, principal, peer, env.Event, env.Data)
		}
	})
}
