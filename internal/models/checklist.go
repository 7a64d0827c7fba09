package models

import "strings"

type Standard string

const (
	StandardISO9001  Standard = "ISO 9001"
	StandardISO27001 Standard = "ISO 27001"
	StandardPMBOK    Standard = "PMBOK"
	StandardITIL     Standard = "ITIL"
	StandardSCRUM    Standard = "SCRUM"
	StandardCOBIT    Standard = "COBIT"
)

// SupportedStandards is the fixed set checklists can be generated against.
var SupportedStandards = []Standard{
	StandardISO9001,
	StandardISO27001,
	StandardPMBOK,
	StandardITIL,
	StandardSCRUM,
	StandardCOBIT,
}

func ParseStandard(s string) (Standard, bool) {
	s = strings.TrimSpace(s)
	for _, std := range SupportedStandards {
		if string(std) == s {
			return std, true
		}
	}
	return "", false
}

type Checklist struct {
	Base
	Standard Standard `gorm:"type:varchar(50);not null" json:"standard"`
	UserID   string   `gorm:"type:varchar(36);index;not null" json:"userId"`

	// nil once the source document has been deleted
	DocumentID *string   `gorm:"type:varchar(36);index" json:"documentId"`
	Document   *Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"document,omitempty"`

	Questions []Question `gorm:"constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
}

type Question struct {
	Base
	ChecklistID string  `gorm:"type:varchar(36);index;not null" json:"checklistId"`
	Position    int     `gorm:"not null" json:"position"`
	Text        string  `gorm:"type:text;not null" json:"text"`
	Answer      *Answer `gorm:"constraint:OnDelete:CASCADE;" json:"answer"`
}

type Answer struct {
	Base
	QuestionID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"questionId"`
	Response   bool   `gorm:"not null" json:"response"`
}
