package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"type:varchar(36);index" json:"userId"`

	Entity   string `gorm:"size:50;not null" json:"entity"` // "document", "checklist", "nonconformity"
	EntityID string `gorm:"type:varchar(36)" json:"entityId"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "answers", "status_change" ...
	Details  string `gorm:"type:text" json:"details"`
}
