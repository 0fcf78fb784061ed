package ws

import (
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
)

// Subscription is one connected client's view of the hub. Messages for
// rooms the client has joined arrive on the channel returned by
// Messages; slow consumers have messages dropped rather than blocking
// the broadcaster.
type Subscription struct {
	ch    chan domain.Message
	rooms map[string]struct{}
}

// Messages returns the delivery channel for this subscription.
func (s *Subscription) Messages() <-chan domain.Message {
	return s.ch
}

// Hub routes stored messages to the websocket clients that joined the
// matching conversation room. It implements service.Broadcaster.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Subscription]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:  make(map[string]map[*Subscription]struct{}),
		logger: logger,
	}
}

// ConversationRoom derives the room key for one property conversation.
// Participant order does not matter: both sides compute the same key.
func ConversationRoom(propertyID, a, b primitive.ObjectID) string {
	pair := []string{a.Hex(), b.Hex()}
	sort.Strings(pair)
	return strings.Join([]string{propertyID.Hex(), pair[0], pair[1]}, ":")
}

// Subscribe registers a new client with the given delivery buffer.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}
	return &Subscription{
		ch:    make(chan domain.Message, buffer),
		rooms: make(map[string]struct{}),
	}
}

// Join adds the subscription to a room. Joining twice is a no-op.
func (h *Hub) Join(sub *Subscription, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Subscription]struct{})
		h.rooms[room] = members
	}
	members[sub] = struct{}{}
	sub.rooms[room] = struct{}{}
}

// Leave removes the subscription from a room.
func (h *Hub) Leave(sub *Subscription, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(sub, room)
}

func (h *Hub) leaveLocked(sub *Subscription, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, sub)
	delete(sub.rooms, room)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Unsubscribe removes the subscription from every room and closes its
// delivery channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range sub.rooms {
		h.leaveLocked(sub, room)
	}
	close(sub.ch)
}

// BroadcastMessage delivers a stored message to every subscriber of
// its conversation room.
func (h *Hub) BroadcastMessage(message domain.Message) {
	room := ConversationRoom(message.PropertyID, message.TenantID, message.LandlordID)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.rooms[room] {
		select {
		case sub.ch <- message:
		default:
			h.logger.Warn("dropping message for slow websocket client",
				zap.String("room", room))
		}
	}
}
