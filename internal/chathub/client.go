package chathub

import "github.com/allworkdone/skills-exchange/internal/models"

// Client is the interface for one connected session. It abstracts the
// underlying transport so the hub can manage WebSocket sessions and test
// doubles uniformly. Room membership is owned by the hub, not the client;
// clients only ask to join via the hub's JoinCh.
type Client interface {
	// GetUserID returns the authenticated user id of the session.
	GetUserID() string

	// GetSendChannel returns the channel the hub writes outbound events
	// to. It is a send-only channel from the hub's point of view.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel and connection.
	Close()
}

// JoinRequest asks the hub to register a session in a chat room. A session
// receives new_message events only for rooms it has joined.
type JoinRequest struct {
	ChatID string
	Client Client
}
