package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Chat is the conversation between the two parties of an exchange.
// ExchangeID is a one-way back-reference; the exchange itself carries no
// pointer to its chat. Every exchange-creation path provisions exactly one
// chat, though the reference stays nullable.
type Chat struct {
	ID string `gorm:"primaryKey" json:"id"`
	// Users holds exactly two member ids.
	Users      pq.StringArray `gorm:"type:text[];not null" json:"users"`
	ExchangeID *string        `gorm:"type:uuid;index" json:"exchange,omitempty"`
	// Messages are append-only; id order is insertion order.
	Messages  []Message `gorm:"foreignKey:ChatID" json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// HasUser reports whether userID is a member of the chat.
func (c *Chat) HasUser(userID string) bool {
	for _, id := range c.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is a single chat message. The autoincrement id doubles as the
// append order, so histories are read back ordered by id and never
// re-sorted. Read flips false to true only, and only for messages not
// authored by the reader.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    string    `gorm:"type:uuid;not null;index:idx_chat_msg" json:"chatId"`
	SenderID  string    `gorm:"type:uuid;not null;index:idx_chat_msg" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}
