// Package store persists assistant prompts in the assistant_prompts table
// through GORM, on SQLite or PostgreSQL.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantPrompt is a stored prompt.
type AssistantPrompt struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id" yaml:"id"`
	Name         string    `gorm:"not null;index" json:"name" yaml:"name"`
	Description  string    `gorm:"not null;default:''" json:"description" yaml:"description"`
	Instructions string    `gorm:"type:text;not null" json:"instructions" yaml:"instructions"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default" yaml:"is_default"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// TableName matches the table targeted by the generated SQL script.
func (AssistantPrompt) TableName() string {
	return "assistant_prompts"
}

// BeforeCreate assigns a UUID when none is set.
func (p *AssistantPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
