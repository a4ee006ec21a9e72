package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered member of the platform. Profile fields are owned by
// the external profile service; the core reads users for match scoring and
// writes only the aggregate Rating.
type User struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	FirstName      string  `gorm:"type:text;not null" json:"firstName"`
	LastName       string  `gorm:"type:text;not null" json:"lastName"`
	Email          string  `gorm:"type:text;uniqueIndex;not null" json:"email"`
	ProfilePicture string  `gorm:"type:text" json:"profilePicture,omitempty"`
	Bio            string  `gorm:"type:text" json:"bio,omitempty"`
	Location       string  `gorm:"type:text" json:"location,omitempty"`
	// Rating is the aggregate exchange rating, in [0,5].
	Rating float64 `json:"rating"`
	Skills []Skill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID
// has not been set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserRef is the trimmed sender/party view embedded in API responses.
type UserRef struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Ref returns the trimmed view of the user.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}
