package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a teachable skill owned by a user. Skill CRUD lives in the
// external skills service; the core references skills by id on exchanges
// and reads name/category for match scoring.
type Skill struct {
	ID       string `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"type:uuid;not null;index" json:"userId"`
	Name     string `gorm:"type:text;not null" json:"name"`
	Category string `gorm:"type:text;not null" json:"category"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
