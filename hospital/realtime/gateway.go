// hospital/realtime/gateway.go
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/logging"
	"hospital/hospital/utils/types"

	"go.uber.org/zap"
)

const (
	EventJoinChat       = "join-chat"
	EventJoinedChat     = "joined-chat"
	EventLeaveChat      = "leave-chat"
	EventSendMessage    = "send-message"
	EventReceiveMessage = "receive-message"
	EventError          = "error"
)

var ErrGatewayClosed = errors.New("gateway closed")

// ChatService is the part of the chat controller the gateway needs.
type ChatService interface {
	AuthorizeChat(ctx context.Context, p types.Principal, chatID uint) (*models.Chat, error)
	SendMessage(ctx context.Context, p types.Principal, chatID, senderID uint, body string) (*models.Message, error)
}

type ErrorPayload struct {
	Event string `json:"event"`
	Error string `json:"error"`
}

type JoinedPayload struct {
	ChatID uint   `json:"chatId"`
	Room   string `json:"room"`
}

// Gateway routes socket events of every transport through one Hub.
type Gateway struct {
	hub    *Hub
	chats  ChatService
	secret string

	mu      sync.Mutex
	closed  bool
	closers map[string]func()
}

func NewGateway(chats ChatService, jwtSecret string) *Gateway {
	return &Gateway{
		hub:     NewHub(),
		chats:   chats,
		secret:  jwtSecret,
		closers: make(map[string]func()),
	}
}

func (g *Gateway) Hub() *Hub {
	return g.hub
}

func (g *Gateway) Authenticate(token string) (types.Principal, error) {
	if token == "" {
		return types.Principal{}, middlewares.ErrInvalidToken
	}
	return middlewares.ParseToken(g.secret, token)
}

// connect registers a peer so Close can shut it down.
func (g *Gateway) connect(p Peer, closeFn func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrGatewayClosed
	}
	g.closers[p.ID()] = closeFn
	return nil
}

// Disconnect drops the peer from every room.
func (g *Gateway) Disconnect(p Peer) {
	g.hub.LeaveAll(p.ID())
	g.mu.Lock()
	delete(g.closers, p.ID())
	g.mu.Unlock()
}

// Close disconnects every peer and refuses new ones.
func (g *Gateway) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	closers := g.closers
	g.closers = make(map[string]func())
	g.mu.Unlock()

	for id, closeFn := range closers {
		g.hub.LeaveAll(id)
		if closeFn != nil {
			closeFn()
		}
	}
	logging.AppLogger.Info("realtime gateway closed", zap.Int("peers", len(closers)))
}

// Join adds the peer to the chat's room after checking the caller takes part in it.
func (g *Gateway) Join(ctx context.Context, p types.Principal, peer Peer, raw json.RawMessage) error {
	chatID, err := parseChatID(raw)
	if err != nil {
		return err
	}
	chat, err := g.chats.AuthorizeChat(ctx, p, chatID)
	if err != nil {
		return err
	}
	room := models.RoomName(chat.ID)
	g.hub.Join(room, peer)
	logging.AppLogger.Info("peer joined chat", zap.String("peer", peer.ID()), zap.String("room", room))
	return peer.Emit(EventJoinedChat, JoinedPayload{ChatID: chat.ID, Room: room})
}

func (g *Gateway) Leave(peer Peer, raw json.RawMessage) error {
	chatID, err := parseChatID(raw)
	if err != nil {
		return err
	}
	g.hub.Leave(models.RoomName(chatID), peer.ID())
	return nil
}

// Send persists the message and then broadcasts it to the chat room.
func (g *Gateway) Send(ctx context.Context, p types.Principal, raw json.RawMessage) (*models.Message, error) {
	var req types.SendMessageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, &controllers.Error{Kind: controllers.ErrValidation, Msg: "invalid message payload"}
	}
	msg, err := g.chats.SendMessage(ctx, p, req.TargetChat(), uint(req.SenderID), req.Message)
	if err != nil {
		return nil, err
	}
	g.Publish(msg)
	return msg, nil
}

// Publish delivers an already stored message to the chat room.
func (g *Gateway) Publish(msg *models.Message) int {
	return g.hub.Broadcast(models.RoomName(msg.ChatID), EventReceiveMessage, msg)
}

// Dispatch runs one inbound event. Failures go back to the peer as an error
// event and never end the connection.
func (g *Gateway) Dispatch(ctx context.Context, p types.Principal, peer Peer, event string, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLogger.Error("panic in socket event", zap.String("event", event), zap.Any("recover", r))
			g.emitError(peer, event, errors.New("internal error"))
		}
	}()

	var err error
	switch event {
	case EventJoinChat:
		err = g.Join(ctx, p, peer, data)
	case EventLeaveChat:
		err = g.Leave(peer, data)
	case EventSendMessage:
		_, err = g.Send(ctx, p, data)
	default:
		err = &controllers.Error{Kind: controllers.ErrValidation, Msg: "unknown event " + event}
	}
	if err != nil {
		g.emitError(peer, event, err)
	}
}

func (g *Gateway) emitError(peer Peer, event string, err error) {
	msg := "internal error"
	var kerr *controllers.Error
	switch {
	case errors.Is(err, controllers.ErrStorage):
		logging.ErrorLogger.Error("socket event failed", zap.String("event", event), zap.Error(err))
	case errors.As(err, &kerr):
		msg = kerr.Message()
	default:
		logging.ErrorLogger.Error("socket event failed", zap.String("event", event), zap.Error(err))
	}
	if emitErr := peer.Emit(EventError, ErrorPayload{Event: event, Error: msg}); emitErr != nil {
		logging.AppLogger.Warn("could not report socket error", zap.String("peer", peer.ID()), zap.Error(emitErr))
	}
}

// parseChatID accepts 42, "42", {"chatId": 42} or {"sessionId": "42"}.
func parseChatID(raw json.RawMessage) (uint, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &controllers.Error{Kind: controllers.ErrValidation, Msg: "invalid chat id"}
	}
	id, err := types.ParseFlexID(v)
	if err != nil || id == 0 {
		return 0, &controllers.Error{Kind: controllers.ErrValidation, Msg: "invalid chat id"}
	}
	return id, nil
}
