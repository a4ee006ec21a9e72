package chats_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/allworkdone/skills-exchange/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUser(id string) (*models.User, error) {
	args := m.Called(id)
	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockStorage) ListUsersWithSkills() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) UpdateUserRating(userID string, rating float64) error {
	args := m.Called(userID, rating)
	return args.Error(0)
}

func (m *MockStorage) CreateExchange(exchange *models.Exchange) error {
	args := m.Called(exchange)
	return args.Error(0)
}

func (m *MockStorage) GetExchangeByID(id string) (*models.Exchange, error) {
	args := m.Called(id)
	var exchange *models.Exchange
	if v := args.Get(0); v != nil {
		exchange = v.(*models.Exchange)
	}
	return exchange, args.Error(1)
}

func (m *MockStorage) ListExchangesForUser(userID, status string) ([]models.Exchange, error) {
	args := m.Called(userID, status)
	return args.Get(0).([]models.Exchange), args.Error(1)
}

func (m *MockStorage) UpdateExchangeFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockStorage) CreateChat(chat *models.Chat) error {
	args := m.Called(chat)
	return args.Error(0)
}

func (m *MockStorage) GetChatByID(id string) (*models.Chat, error) {
	args := m.Called(id)
	var chat *models.Chat
	if v := args.Get(0); v != nil {
		chat = v.(*models.Chat)
	}
	return chat, args.Error(1)
}

func (m *MockStorage) ListChatsForUser(userID string) ([]models.Chat, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockStorage) AppendMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) MarkMessagesRead(chatID, readerID string) error {
	args := m.Called(chatID, readerID)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(chatID string, ev models.Event) error {
	args := m.Called(chatID, ev)
	return args.Error(0)
}

func (m *MockStorage) SetPresence(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) ClearPresence(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}
