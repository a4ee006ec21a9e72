package models

// Realtime event names carried over the push channel. Rooms are keyed by
// chat id; a session receives new_message only for rooms it has joined.
const (
	EventJoinChat     = "join_chat"
	EventSendMessage  = "send_message"
	EventNewMessage   = "new_message"
	EventUserOnline   = "user_online"
	EventStatusUpdate = "user_status_update"
)

// Event is the JSON envelope exchanged over the realtime channel, both
// client-to-server (join_chat, send_message) and server-to-client
// (new_message, presence events).
type Event struct {
	Event   string   `json:"event"`
	ChatID  string   `json:"chatId,omitempty"`
	Message *Message `json:"message,omitempty"`
	UserID  string   `json:"userId,omitempty"`
	Status  string   `json:"status,omitempty"`
}
