package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/authz"
	"audit-checklist/internal/database"
	"audit-checklist/internal/models"

	"gorm.io/gorm"
)

// in characters
const MinTextLength = 10

type NonConformityService struct {
	db         *gorm.DB
	authz      authz.Authorizer
	checklists *ChecklistService
	locks      *keyedMutex
	now        func() time.Time
}

// nil means unchanged
type NCUpdate struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
	Observation *string `json:"observation"`
}

func (s *NonConformityService) Get(ctx context.Context, id, userID string) (models.NonConformity, error) {
	var nc models.NonConformity
	err := withDetails(s.db.WithContext(ctx)).
		Preload("Checklist").
		Where("id = ?", id).
		Take(&nc).Error
	if err != nil {
		return models.NonConformity{}, notFoundOr(err, "non-conformity not found")
	}
	if nc.Checklist == nil {
		return models.NonConformity{}, apperr.NotFound("non-conformity not found")
	}
	if err := s.authz.Authorize(nc.Checklist.UserID, userID); err != nil {
		return models.NonConformity{}, err
	}
	return nc, nil
}

func (s *NonConformityService) ListForChecklist(ctx context.Context, checklistID, userID string) ([]models.NonConformity, error) {
	if _, err := s.checklists.Get(ctx, checklistID, userID); err != nil {
		return nil, err
	}
	var out []models.NonConformity
	err := withDetails(s.db.WithContext(ctx)).
		Where("checklist_id = ?", checklistID).
		Order("created_at asc").
		Order("id asc").
		Find(&out).Error
	return out, err
}

// the first action on an OPEN non-conformity starts remediation
func (s *NonConformityService) AddCorrectiveAction(ctx context.Context, id, action, userID string) (models.CorrectiveAction, error) {
	action = strings.TrimSpace(action)
	if utf8.RuneCountInString(action) < MinTextLength {
		return models.CorrectiveAction{}, apperr.Validation("the action must be at least %d characters long", MinTextLength)
	}

	nc, err := s.Get(ctx, id, userID)
	if err != nil {
		return models.CorrectiveAction{}, err
	}

	unlock := s.locks.Lock(nc.ChecklistID)
	defer unlock()

	var created models.CorrectiveAction
	err = withRetry(ctx, s.db, func(tx *gorm.DB) error {
		cur, err := lockNonConformity(tx, id)
		if err != nil {
			return err
		}
		created = models.CorrectiveAction{
			NonConformityID: cur.ID,
			Action:          action,
			CreatedAt:       s.now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		if cur.Status != models.NCOpen {
			return nil
		}
		next, err := ApplyTransition(StartRemediation, cur.Status)
		if err != nil {
			return err
		}
		return tx.Model(&cur).Update("status", next).Error
	})
	if err != nil {
		return models.CorrectiveAction{}, err
	}

	database.CreateAuditLog(s.db.WithContext(ctx), userID, "non_conformity", id, "corrective_action", action)
	return created, nil
}

func (s *NonConformityService) Resolve(ctx context.Context, id, conclusion, userID string) (models.NonConformity, error) {
	conclusion = strings.TrimSpace(conclusion)
	if utf8.RuneCountInString(conclusion) < MinTextLength {
		return models.NonConformity{}, apperr.Validation("the conclusion must be at least %d characters long", MinTextLength)
	}

	nc, err := s.Get(ctx, id, userID)
	if err != nil {
		return models.NonConformity{}, err
	}

	unlock := s.locks.Lock(nc.ChecklistID)
	defer unlock()

	err = withRetry(ctx, s.db, func(tx *gorm.DB) error {
		cur, err := lockNonConformity(tx, id)
		if err != nil {
			return err
		}
		next, err := ApplyTransition(Resolve, cur.Status)
		if err != nil {
			return err
		}
		return tx.Model(&cur).Updates(map[string]any{
			"status":      next,
			"observation": conclusion,
			"resolved_at": s.now(),
		}).Error
	})
	if err != nil {
		return models.NonConformity{}, err
	}

	database.CreateAuditLog(s.db.WithContext(ctx), userID, "non_conformity", id, "resolve", conclusion)
	return s.Get(ctx, id, userID)
}

// status changes go through the lifecycle, never backwards
func (s *NonConformityService) Update(ctx context.Context, id string, upd NCUpdate, userID string) (models.NonConformity, error) {
	nc, err := s.Get(ctx, id, userID)
	if err != nil {
		return models.NonConformity{}, err
	}

	var target *models.NCStatus
	if upd.Status != nil {
		st, ok := models.ParseNCStatus(*upd.Status)
		if !ok {
			return models.NonConformity{}, apperr.New(apperr.KindInvalidStatus, "invalid status. Use OPEN, IN_PROGRESS or RESOLVED")
		}
		target = &st
	}

	unlock := s.locks.Lock(nc.ChecklistID)
	defer unlock()

	err = withRetry(ctx, s.db, func(tx *gorm.DB) error {
		cur, err := lockNonConformity(tx, id)
		if err != nil {
			return err
		}

		changes := map[string]any{}
		if upd.Description != nil {
			changes["description"] = *upd.Description
		}
		if upd.Observation != nil {
			changes["observation"] = *upd.Observation
		}
		if target != nil {
			t, err := TransitionTo(cur.Status, *target)
			if err != nil {
				return err
			}
			if t != nil {
				next, err := ApplyTransition(t, cur.Status)
				if err != nil {
					return err
				}
				changes["status"] = next
				if next == models.NCResolved {
					changes["resolved_at"] = s.now()
				}
			}
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&cur).Updates(changes).Error
	})
	if err != nil {
		return models.NonConformity{}, err
	}

	database.CreateAuditLog(s.db.WithContext(ctx), userID, "non_conformity", id, "update", "")
	return s.Get(ctx, id, userID)
}

func lockNonConformity(tx *gorm.DB, id string) (models.NonConformity, error) {
	var nc models.NonConformity
	if err := forUpdate(tx).Where("id = ?", id).Take(&nc).Error; err != nil {
		return models.NonConformity{}, notFoundOr(err, "non-conformity not found")
	}
	return nc, nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Question").
		Preload("CorrectiveActions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") })
}
