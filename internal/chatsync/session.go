// Package chatsync reconciles a client session's view of its chats from two
// independent sources: durable fetches over REST and live pushes from the
// realtime channel. A Session is single-consumer state: one logical task
// receives push events sequentially and mutates the view in response.
package chatsync

import (
	"time"

	"github.com/allworkdone/skills-exchange/internal/models"
)

// Fetcher is the durable read side, normally backed by the REST API.
type Fetcher interface {
	FetchChats() ([]models.Chat, error)
	FetchChat(chatID string) (*models.Chat, error)
}

// Joiner registers the session with a chat's push room. Selecting a chat
// joins before fetching: pushes only arrive for joined rooms, so joining
// late would drop messages that the fresh fetch no longer covers.
type Joiner interface {
	JoinChat(chatID string) error
}

// Session is the reconciled view for one local user.
type Session struct {
	UserID string
	// Chats is the chat list, as last fetched plus any reconciled pushes.
	Chats []models.Chat
	// Selected is the open chat view. It is an independent copy of the
	// list entry; pushes update both when both match the target chat.
	Selected *models.Chat

	fetcher Fetcher
	joiner  Joiner
}

func NewSession(userID string, fetcher Fetcher, joiner Joiner) *Session {
	return &Session{UserID: userID, fetcher: fetcher, joiner: joiner}
}

// Refresh reloads the chat list from the durable source.
func (s *Session) Refresh() error {
	chats, err := s.fetcher.FetchChats()
	if err != nil {
		return err
	}
	s.Chats = chats
	return nil
}

// Select opens a chat. It joins the push room first and then refetches the
// full history, so selection doubles as a resynchronization point for
// anything missed while the chat was inactive.
func (s *Session) Select(chatID string) error {
	if err := s.joiner.JoinChat(chatID); err != nil {
		return err
	}
	chat, err := s.fetcher.FetchChat(chatID)
	if err != nil {
		return err
	}
	s.Selected = chat
	return nil
}

// Reconcile folds one pushed event into the view. Self-authored messages
// are discarded: the sender's own view already reflects them via the send
// response. Everything else is appended in push-arrival order, de-duplicated
// by message id (never by content), to both the list entry and the open
// view — each independently, exactly where the chat id matches.
func (s *Session) Reconcile(ev models.Event) {
	if ev.Event != models.EventNewMessage || ev.Message == nil {
		return
	}
	if ev.Message.SenderID == s.UserID {
		return
	}

	now := time.Now()
	for i := range s.Chats {
		if s.Chats[i].ID == ev.ChatID {
			if appendMessage(&s.Chats[i], ev.Message) {
				s.Chats[i].UpdatedAt = now
			}
			break
		}
	}
	if s.Selected != nil && s.Selected.ID == ev.ChatID {
		if appendMessage(s.Selected, ev.Message) {
			s.Selected.UpdatedAt = now
		}
	}
}

// appendMessage appends unless the id is already present; it reports
// whether the chat changed.
func appendMessage(chat *models.Chat, msg *models.Message) bool {
	for _, m := range chat.Messages {
		if m.ID == msg.ID {
			return false
		}
	}
	chat.Messages = append(chat.Messages, *msg)
	return true
}
