// Package chats is the durable half of messaging: chat listing, history
// reads, the awaited message write and read receipts. The write path also
// publishes to the chat's room channel so connected sessions get the push
// leg, but the REST response stays the source of truth for the sender.
package chats

import (
	"strings"

	"go.uber.org/zap"

	"github.com/allworkdone/skills-exchange/internal/apperr"
	"github.com/allworkdone/skills-exchange/internal/models"
	"github.com/allworkdone/skills-exchange/internal/storage"
)

type Service struct {
	store storage.Storage
	log   *zap.SugaredLogger
}

func NewService(store storage.Storage, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// List returns the caller's chats ordered by most recent activity.
func (s *Service) List(userID string) ([]models.Chat, error) {
	return s.store.ListChatsForUser(userID)
}

// ChatDetail is a chat with its member identities resolved, so clients can
// render sender names without extra lookups.
type ChatDetail struct {
	models.Chat
	Members []models.UserRef `json:"members"`
}

// Get returns the full chat with its message history, for members only.
// Member identities are resolved best effort; a missing user record leaves
// a gap rather than failing the read.
func (s *Service) Get(chatID, userID string) (*ChatDetail, error) {
	chat, err := s.store.GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.ErrNotFound
	}
	if !chat.HasUser(userID) {
		return nil, apperr.ErrUnauthorized
	}

	detail := &ChatDetail{Chat: *chat}
	for _, id := range chat.Users {
		member, err := s.store.GetUser(id)
		if err != nil || member == nil {
			s.log.Warnw("failed to resolve chat member", "chat_id", chatID, "user_id", id, "err", err)
			continue
		}
		detail.Members = append(detail.Members, member.Ref())
	}
	return detail, nil
}

// Send appends a message and returns the full updated chat. After the
// durable write succeeds the message is published to the room channel;
// publish failures are logged and swallowed, receivers catch up through
// the next fetch.
func (s *Service) Send(chatID, senderID, content string) (*models.Chat, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Missing("content")
	}

	chat, err := s.store.GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperr.ErrNotFound
	}
	if !chat.HasUser(senderID) {
		return nil, apperr.ErrUnauthorized
	}

	msg := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.store.AppendMessage(msg); err != nil {
		return nil, err
	}

	ev := models.Event{
		Event:   models.EventNewMessage,
		ChatID:  chatID,
		Message: msg,
	}
	if err := s.store.PublishEvent(chatID, ev); err != nil {
		s.log.Warnw("message persisted but push failed",
			"chat_id", chatID, "message_id", msg.ID, "err", err)
	}

	updated, err := s.store.GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

// MarkRead flips the read flag on every message in the chat not authored by
// the reader.
func (s *Service) MarkRead(chatID, readerID string) error {
	chat, err := s.store.GetChatByID(chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return apperr.ErrNotFound
	}
	if !chat.HasUser(readerID) {
		return apperr.ErrUnauthorized
	}
	return s.store.MarkMessagesRead(chatID, readerID)
}
