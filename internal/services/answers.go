package services

import (
	"context"
	"errors"
	"fmt"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/database"
	"audit-checklist/internal/models"

	"gorm.io/gorm"
)

type AnswerService struct {
	db         *gorm.DB
	checklists *ChecklistService
	locks      *keyedMutex
}

type AnswerInput struct {
	QuestionID string `json:"questionId"`
	Response   bool   `json:"response"`
}

type SyncResult struct {
	SavedAnswers    []models.Answer        `json:"savedAnswers"`
	NonConformities []models.NonConformity `json:"nonConformities"`
}

// Sync is all or nothing: NO keeps one non-conformity, YES removes it.
func (s *AnswerService) Sync(ctx context.Context, checklistID string, answers []AnswerInput, userID string) (SyncResult, error) {
	if len(answers) == 0 {
		return SyncResult{}, apperr.Validation("answers must be a non-empty list")
	}

	checklist, err := s.checklists.Get(ctx, checklistID, userID)
	if err != nil {
		return SyncResult{}, err
	}

	plan := planAnswers(answers)
	known := make(map[string]bool, len(checklist.Questions))
	for _, q := range checklist.Questions {
		known[q.ID] = true
	}
	for _, step := range plan {
		if !known[step.QuestionID] {
			return SyncResult{}, apperr.New(apperr.KindInvalidQuestion, "question %s does not belong to this checklist", step.QuestionID)
		}
	}

	unlock := s.locks.Lock(checklistID)
	defer unlock()

	var result SyncResult
	err = withRetry(ctx, s.db, func(tx *gorm.DB) error {
		result = SyncResult{
			SavedAnswers:    make([]models.Answer, 0, len(plan)),
			NonConformities: []models.NonConformity{},
		}
		if err := forUpdate(tx).Select("id").Where("id = ?", checklistID).Take(&models.Checklist{}).Error; err != nil {
			return err
		}
		for _, step := range plan {
			answer, nc, err := applyAnswer(tx, checklistID, step)
			if err != nil {
				return apperr.Wrap(apperr.KindAnswerProcessingFailure, err, "failed to process answer for question %s", step.QuestionID)
			}
			result.SavedAnswers = append(result.SavedAnswers, answer)
			if nc != nil {
				result.NonConformities = append(result.NonConformities, *nc)
			}
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.Wrap(apperr.KindAnswerProcessingFailure, err, "failed to process answers")
		}
		return SyncResult{}, err
	}

	database.CreateAuditLog(s.db.WithContext(ctx), userID, "checklist", checklistID, "answers",
		fmt.Sprintf("%d answers saved, %d non-conformities", len(result.SavedAnswers), len(result.NonConformities)))
	return result, nil
}

func (s *AnswerService) List(ctx context.Context, checklistID, userID string) ([]models.Question, error) {
	checklist, err := s.checklists.Get(ctx, checklistID, userID)
	if err != nil {
		return nil, err
	}
	return checklist.Questions, nil
}

// last response wins, first position kept
func planAnswers(answers []AnswerInput) []AnswerInput {
	index := make(map[string]int, len(answers))
	plan := make([]AnswerInput, 0, len(answers))
	for _, a := range answers {
		if i, ok := index[a.QuestionID]; ok {
			plan[i].Response = a.Response
			continue
		}
		index[a.QuestionID] = len(plan)
		plan = append(plan, a)
	}
	return plan
}

func applyAnswer(tx *gorm.DB, checklistID string, in AnswerInput) (models.Answer, *models.NonConformity, error) {
	answer, err := upsertAnswer(tx, in)
	if err != nil {
		return models.Answer{}, nil, err
	}

	var nc models.NonConformity
	err = tx.Where("question_id = ?", in.QuestionID).Take(&nc).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Answer{}, nil, err
	}

	if !in.Response {
		if !found {
			nc = models.NonConformity{
				QuestionID:  in.QuestionID,
				ChecklistID: checklistID,
				Status:      models.NCOpen,
			}
			if err := tx.Create(&nc).Error; err != nil {
				return models.Answer{}, nil, err
			}
		}
		return answer, &nc, nil
	}

	if found {
		if err := tx.Where("non_conformity_id = ?", nc.ID).Delete(&models.CorrectiveAction{}).Error; err != nil {
			return models.Answer{}, nil, err
		}
		if err := tx.Delete(&nc).Error; err != nil {
			return models.Answer{}, nil, err
		}
	}
	return answer, nil, nil
}

func upsertAnswer(tx *gorm.DB, in AnswerInput) (models.Answer, error) {
	var a models.Answer
	err := tx.Where("question_id = ?", in.QuestionID).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a = models.Answer{QuestionID: in.QuestionID, Response: in.Response}
		return a, tx.Create(&a).Error
	}
	if err != nil {
		return models.Answer{}, err
	}
	if err := tx.Model(&a).Update("response", in.Response).Error; err != nil {
		return models.Answer{}, err
	}
	a.Response = in.Response
	return a, nil
}
