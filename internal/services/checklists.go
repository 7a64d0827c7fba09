package services

import (
	"context"
	"fmt"
	"strings"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/authz"
	"audit-checklist/internal/database"
	"audit-checklist/internal/extract"
	"audit-checklist/internal/models"
	"audit-checklist/internal/questions"

	"gorm.io/gorm"
)

type ChecklistService struct {
	db     *gorm.DB
	authz  authz.Authorizer
	docs   *DocumentService
	engine *questions.Engine
}

func (s *ChecklistService) Create(ctx context.Context, documentID, standard, userID string) (models.Checklist, error) {
	std, ok := models.ParseStandard(standard)
	if !ok {
		return models.Checklist{}, apperr.Validation("unsupported standard. Available: %s", standardNames())
	}

	doc, err := s.docs.Get(ctx, documentID, userID)
	if err != nil {
		return models.Checklist{}, err
	}

	text, err := extract.Text(doc.FilePath)
	if err != nil {
		return models.Checklist{}, err
	}

	generated := s.engine.Generate(ctx, text, std)

	checklist := models.Checklist{
		Standard:   std,
		UserID:     userID,
		DocumentID: &doc.ID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checklist).Error; err != nil {
			return err
		}
		qs := make([]models.Question, len(generated))
		for i, text := range generated {
			qs[i] = models.Question{ChecklistID: checklist.ID, Position: i, Text: text}
		}
		if err := tx.Create(&qs).Error; err != nil {
			return err
		}
		checklist.Questions = qs
		return nil
	})
	if err != nil {
		// document removed while the questions were generated
		if database.IsForeignKeyViolation(err) {
			return models.Checklist{}, apperr.NotFound("document not found")
		}
		return models.Checklist{}, apperr.Wrap(apperr.KindInternal, err, "failed to store checklist")
	}

	checklist.Document = &doc
	database.CreateAuditLog(s.db.WithContext(ctx), userID, "checklist", checklist.ID, "create",
		fmt.Sprintf("%s checklist with %d questions for %s", std, len(checklist.Questions), doc.FileName))
	return checklist, nil
}

func (s *ChecklistService) List(ctx context.Context, userID string) ([]models.Checklist, error) {
	var out []models.Checklist
	err := withQuestions(s.db.WithContext(ctx)).
		Preload("Document").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (s *ChecklistService) Get(ctx context.Context, id, userID string) (models.Checklist, error) {
	var c models.Checklist
	err := withQuestions(s.db.WithContext(ctx)).
		Preload("Document").
		Where("id = ?", id).
		Take(&c).Error
	if err != nil {
		return models.Checklist{}, notFoundOr(err, "checklist not found")
	}
	if err := s.authz.Authorize(c.UserID, userID); err != nil {
		return models.Checklist{}, err
	}
	return c, nil
}

func (s *ChecklistService) Standards() []models.Standard {
	return append([]models.Standard(nil), models.SupportedStandards...)
}

func withQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Questions.Answer")
}

func standardNames() string {
	names := make([]string, len(models.SupportedStandards))
	for i, s := range models.SupportedStandards {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
