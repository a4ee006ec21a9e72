package chats_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/allworkdone/skills-exchange/internal/apperr"
	"github.com/allworkdone/skills-exchange/internal/chats"
	"github.com/allworkdone/skills-exchange/internal/models"
)

func newTestService(store *MockStorage) *chats.Service {
	return chats.NewService(store, zap.NewNop().Sugar())
}

func memberChat() *models.Chat {
	return &models.Chat{ID: "chat-1", Users: []string{"alice", "bob"}}
}

func TestGet_MemberGetsFullChat(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)
	store.On("GetUser", "alice").Return(&models.User{ID: "alice", FirstName: "Alice"}, nil)
	store.On("GetUser", "bob").Return(&models.User{ID: "bob", FirstName: "Bob"}, nil)

	chat, err := svc.Get("chat-1", "alice")

	assert.NoError(t, err)
	assert.Equal(t, "chat-1", chat.ID)
	assert.Len(t, chat.Members, 2)
	assert.Equal(t, "Alice", chat.Members[0].FirstName)
}

// A dangling member reference degrades to a gap instead of failing the read.
func TestGet_MissingMemberSkipped(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)
	store.On("GetUser", "alice").Return(&models.User{ID: "alice", FirstName: "Alice"}, nil)
	store.On("GetUser", "bob").Return(nil, nil)

	chat, err := svc.Get("chat-1", "alice")

	assert.NoError(t, err)
	assert.Len(t, chat.Members, 1)
}

func TestGet_NotFound(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "missing").Return(nil, nil)

	_, err := svc.Get("missing", "alice")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGet_NonMemberUnauthorized(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)

	_, err := svc.Get("chat-1", "mallory")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSend_EmptyContentRejected(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	for _, content := range []string{"", "   ", "\n"} {
		_, err := svc.Send("chat-1", "alice", content)

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	store.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

func TestSend_AppendsAndPublishes(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)
	store.On("AppendMessage", mock.MatchedBy(func(m *models.Message) bool {
		return m.ChatID == "chat-1" && m.SenderID == "alice" && m.Content == "hello"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Message).ID = 7
	}).Return(nil)
	store.On("PublishEvent", "chat-1", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Event == models.EventNewMessage && ev.ChatID == "chat-1" &&
			ev.Message != nil && ev.Message.ID == 7
	})).Return(nil)

	chat, err := svc.Send("chat-1", "alice", "hello")

	assert.NoError(t, err)
	assert.NotNil(t, chat)
	store.AssertExpectations(t)
}

// Push delivery is best effort: a failed publish never fails the send.
func TestSend_PublishFailureIsSwallowed(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)
	store.On("AppendMessage", mock.Anything).Return(nil)
	store.On("PublishEvent", "chat-1", mock.Anything).Return(errors.New("redis down"))

	_, err := svc.Send("chat-1", "alice", "hello")

	assert.NoError(t, err)
}

func TestSend_NonMemberUnauthorized(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)

	_, err := svc.Send("chat-1", "mallory", "hi")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

func TestMarkRead_MemberOnly(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("GetChatByID", "chat-1").Return(memberChat(), nil)
	store.On("MarkMessagesRead", "chat-1", "bob").Return(nil)

	assert.NoError(t, svc.MarkRead("chat-1", "bob"))
	assert.ErrorIs(t, svc.MarkRead("chat-1", "mallory"), apperr.ErrUnauthorized)
	store.AssertExpectations(t)
}

func TestList_DelegatesToStore(t *testing.T) {
	store := new(MockStorage)
	svc := newTestService(store)

	store.On("ListChatsForUser", "alice").Return([]models.Chat{*memberChat()}, nil)

	list, err := svc.List("alice")

	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
