package chathub_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/allworkdone/skills-exchange/internal/chathub"
	"github.com/allworkdone/skills-exchange/internal/models"
)

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) PublishEvent(chatID string, ev models.Event) error {
	args := m.Called(chatID, ev)
	return args.Error(0)
}

func (m *MockBroker) SetPresence(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockBroker) ClearPresence(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// newQuietBroker accepts any presence call; tests asserting publishes add
// their own expectations.
func newQuietBroker() *MockBroker {
	b := new(MockBroker)
	b.On("SetPresence", mock.Anything).Return(nil).Maybe()
	b.On("ClearPresence", mock.Anything).Return(nil).Maybe()
	return b
}

type MockClient struct {
	userID string
	closed bool
	// RecvChannel is what the hub sees as the client's send channel.
	RecvChannel chan models.Event
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Event, 10),
	}
}

func (c *MockClient) GetUserID() string                   { return c.userID }
func (c *MockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}

var _ chathub.Client = (*MockClient)(nil)
