package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exchange statuses. Completed, rejected and cancelled are terminal for
// status transitions; review submission remains possible after completed.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the enumerated exchange statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected,
		StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Exchange is a proposed or ongoing skill-for-skill trade between two users.
type Exchange struct {
	ID             string `gorm:"primaryKey" json:"id"`
	InitiatorID    string `gorm:"type:uuid;not null;index" json:"initiator"`
	RecipientID    string `gorm:"type:uuid;not null;index" json:"recipient"`
	InitiatorSkill string `gorm:"type:uuid;not null" json:"initiatorSkill"`
	RecipientSkill string `gorm:"type:uuid;not null" json:"recipientSkill"`
	Status         string `gorm:"type:text;not null;default:pending;index" json:"status"`
	// Message is the initial proposal text, echoed into the chat.
	Message string `gorm:"type:text" json:"message,omitempty"`

	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	// Each party writes its own rating/review pair at most once per call;
	// both pairs present triggers the rating blend on the submitter.
	InitiatorRating *int    `json:"initiatorRating,omitempty"`
	RecipientRating *int    `json:"recipientRating,omitempty"`
	InitiatorReview *string `gorm:"type:text" json:"initiatorReview,omitempty"`
	RecipientReview *string `gorm:"type:text" json:"recipientReview,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Exchange) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}

// IsParty reports whether userID is the initiator or the recipient.
func (e *Exchange) IsParty(userID string) bool {
	return e.InitiatorID == userID || e.RecipientID == userID
}
