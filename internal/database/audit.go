package database

import (
	"log"

	"audit-checklist/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog writes a journal entry; failures are logged, never returned.
// Pass the transaction handle to keep the entry in the same commit.
func CreateAuditLog(db *gorm.DB, userID, entity, entityID, action, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := db.Create(&record).Error; err != nil {
		log.Printf("failed to write audit log (%s %s %s): %v", entity, entityID, action, err)
	}
}

func ListAuditLogs(db *gorm.DB, userID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var logs []models.AuditLog
	err := db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
