package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NCStatus string

const (
	NCOpen       NCStatus = "OPEN"
	NCInProgress NCStatus = "IN_PROGRESS"
	NCResolved   NCStatus = "RESOLVED"
)

func ParseNCStatus(s string) (NCStatus, bool) {
	switch NCStatus(s) {
	case NCOpen, NCInProgress, NCResolved:
		return NCStatus(s), true
	}
	return "", false
}

type NonConformity struct {
	Base
	// unique: at most one NC per question
	QuestionID  string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"questionId"`
	Question    *Question  `gorm:"constraint:OnDelete:CASCADE;" json:"question,omitempty"`
	ChecklistID string     `gorm:"type:varchar(36);index;not null" json:"checklistId"`
	Checklist   *Checklist `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Status      NCStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Description *string    `gorm:"type:text" json:"description"`
	Observation *string    `gorm:"type:text" json:"observation"`
	ResolvedAt  *time.Time `json:"resolvedAt"`

	CorrectiveActions []CorrectiveAction `gorm:"constraint:OnDelete:CASCADE;" json:"correctiveActions,omitempty"`
}

// CorrectiveAction is append-only.
type CorrectiveAction struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	NonConformityID string    `gorm:"type:varchar(36);index;not null" json:"nonConformityId"`
	Action          string    `gorm:"type:text;not null" json:"action"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (a *CorrectiveAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
