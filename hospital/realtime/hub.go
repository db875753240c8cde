// hospital/realtime/hub.go
package realtime

import (
	"sync"

	"hospital/hospital/utils/logging"

	"go.uber.org/zap"
)

// Peer is one connected client on any transport.
type Peer interface {
	ID() string
	Emit(event string, payload any) error
}

// Hub tracks which peers are in which room. Membership lives only in this
// process.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Peer
	// reverse index so a disconnect can leave every room at once
	joined map[string]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]Peer),
		joined: make(map[string]map[string]struct{}),
	}
}

func (h *Hub) Join(room string, p Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]Peer)
		h.rooms[room] = members
	}
	members[p.ID()] = p
	rooms, ok := h.joined[p.ID()]
	if !ok {
		rooms = make(map[string]struct{})
		h.joined[p.ID()] = rooms
	}
	rooms[room] = struct{}{}
}

func (h *Hub) Leave(room, peerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, peerID)
}

func (h *Hub) leaveLocked(room, peerID string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, peerID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if rooms, ok := h.joined[peerID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(h.joined, peerID)
		}
	}
}

// LeaveAll removes the peer from every room it joined.
func (h *Hub) LeaveAll(peerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range h.joined[peerID] {
		h.leaveLocked(room, peerID)
	}
}

func (h *Hub) Size(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) InRoom(room, peerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][peerID]
	return ok
}

// Broadcast emits to every peer in room, sender included, and returns how
// many peers accepted the event. Emits happen outside the lock.
func (h *Hub) Broadcast(room, event string, payload any) int {
	h.mu.RLock()
	peers := make([]Peer, 0, len(h.rooms[room]))
	for _, p := range h.rooms[room] {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, p := range peers {
		if err := p.Emit(event, payload); err != nil {
			logging.AppLogger.Warn("dropped event for peer",
				zap.String("room", room),
				zap.String("event", event),
				zap.String("peer", p.ID()),
				zap.Error(err),
			)
			continue
		}
		delivered++
	}
	return delivered
}
