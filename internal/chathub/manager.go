// Package chathub is the realtime channel: a room-per-chat pub/sub hub that
// fans new_message events out to connected sessions. Delivery is best
// effort; the REST path remains authoritative and any client can rebuild
// chat state from it alone.
package chathub

import (
	"go.uber.org/zap"

	"github.com/allworkdone/skills-exchange/internal/models"
)

// Broker is the slice of storage the hub needs: cross-process event fan-out
// and best-effort presence.
type Broker interface {
	PublishEvent(chatID string, ev models.Event) error
	SetPresence(userID string) error
	ClearPresence(userID string) error
}

// Manager owns all connected sessions and room membership for this process.
// All maps are touched only from the Run goroutine; everything else talks
// to it through channels.
type Manager struct {
	// Clients maps user id to the active session. A reconnect replaces the
	// previous session for that user.
	Clients map[string]Client
	// Rooms maps chat id to the member sessions that joined it.
	Rooms map[string]map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	JoinCh       chan JoinRequest
	// IncomingCh carries send_message events read off local sockets. They
	// are published, not persisted: the REST send is the durable leg.
	IncomingCh chan models.Event
	// PubSubCh carries events arriving from the room channels, from this
	// process or any other.
	PubSubCh chan models.Event

	broker Broker
	log    *zap.SugaredLogger
}

func NewManager(broker Broker, log *zap.SugaredLogger) *Manager {
	return &Manager{
		Clients:      make(map[string]Client),
		Rooms:        make(map[string]map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		JoinCh:       make(chan JoinRequest),
		IncomingCh:   make(chan models.Event),
		PubSubCh:     make(chan models.Event),
		broker:       broker,
		log:          log,
	}
}

// Run is the hub dispatcher. It must be the only goroutine mutating the
// client and room maps.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)
		case client := <-m.UnregisterCh:
			m.unregister(client)
		case req := <-m.JoinCh:
			m.join(req)
		case ev := <-m.IncomingCh:
			m.publish(ev)
		case ev := <-m.PubSubCh:
			m.deliver(ev)
		}
	}
}

func (m *Manager) register(client Client) {
	userID := client.GetUserID()
	if old, ok := m.Clients[userID]; ok && old != client {
		m.dropClient(old)
	}
	m.Clients[userID] = client

	if err := m.broker.SetPresence(userID); err != nil {
		m.log.Warnw("failed to set presence", "user_id", userID, "err", err)
	}
	m.broadcast(models.Event{Event: models.EventUserOnline, UserID: userID}, userID)
	m.log.Infow("client registered", "user_id", userID)
}

func (m *Manager) unregister(client Client) {
	userID := client.GetUserID()
	// A stale unregister from a replaced session must not evict the
	// current one.
	if current, ok := m.Clients[userID]; !ok || current != client {
		return
	}
	m.dropClient(client)

	if err := m.broker.ClearPresence(userID); err != nil {
		m.log.Warnw("failed to clear presence", "user_id", userID, "err", err)
	}
	m.broadcast(models.Event{Event: models.EventStatusUpdate, UserID: userID, Status: "offline"}, userID)
	m.log.Infow("client unregistered", "user_id", userID)
}

func (m *Manager) dropClient(client Client) {
	userID := client.GetUserID()
	delete(m.Clients, userID)
	for chatID, room := range m.Rooms {
		if room[userID] == client {
			delete(room, userID)
			if len(room) == 0 {
				delete(m.Rooms, chatID)
			}
		}
	}
	client.Close()
}

// join registers the session in a room. Joining twice is a no-op, so
// clients may re-join on every chat selection.
func (m *Manager) join(req JoinRequest) {
	room := m.Rooms[req.ChatID]
	if room == nil {
		room = make(map[string]Client)
		m.Rooms[req.ChatID] = room
	}
	room[req.Client.GetUserID()] = req.Client
}

// publish pushes a socket-originated send_message onto the room channel as
// new_message. It is fire and forget; local delivery happens when the event
// comes back through PubSubCh like everyone else's.
func (m *Manager) publish(ev models.Event) {
	if ev.ChatID == "" || ev.Message == nil {
		return
	}
	ev.Event = models.EventNewMessage
	if err := m.broker.PublishEvent(ev.ChatID, ev); err != nil {
		m.log.Warnw("failed to publish message event", "chat_id", ev.ChatID, "err", err)
	}
}

// deliver fans a room event out to local members, excluding the sender,
// who already has the message from their own send path.
func (m *Manager) deliver(ev models.Event) {
	room, ok := m.Rooms[ev.ChatID]
	if !ok {
		return
	}
	for userID, client := range room {
		if ev.Message != nil && ev.Message.SenderID == userID {
			continue
		}
		m.send(client, ev)
	}
}

// broadcast sends a presence event to every connected session except the
// subject.
func (m *Manager) broadcast(ev models.Event, exceptUserID string) {
	for userID, client := range m.Clients {
		if userID == exceptUserID {
			continue
		}
		m.send(client, ev)
	}
}

// send writes without blocking; a session with a full send buffer is
// considered dead and dropped.
func (m *Manager) send(client Client, ev models.Event) {
	select {
	case client.GetSendChannel() <- ev:
	default:
		m.log.Warnw("dropping slow client", "user_id", client.GetUserID())
		m.dropClient(client)
	}
}
