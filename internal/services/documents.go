package services

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/authz"
	"audit-checklist/internal/database"
	"audit-checklist/internal/extract"
	"audit-checklist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentService struct {
	db        *gorm.DB
	authz     authz.Authorizer
	uploadDir string
}

func (s *DocumentService) StoragePath(originalName string) (string, error) {
	format := extract.FormatOf(originalName)
	if format == extract.FormatUnknown {
		return "", apperr.New(apperr.KindUnsupportedFormat, "unsupported file type. Upload PDF, DOCX or TXT files only")
	}
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(s.uploadDir, "document-"+uuid.NewString()+"."+format.String()), nil
}

// Create removes the stored file again on failure.
func (s *DocumentService) Create(ctx context.Context, userID, originalName, storedPath string) (models.Document, error) {
	format := extract.FormatOf(originalName)
	if format == extract.FormatUnknown {
		removeFile(storedPath)
		return models.Document{}, apperr.New(apperr.KindUnsupportedFormat, "unsupported file type. Upload PDF, DOCX or TXT files only")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error; err != nil {
		removeFile(storedPath)
		return models.Document{}, notFoundOr(err, "user not found")
	}

	doc := models.Document{
		UserID:   userID,
		FileName: filepath.Base(originalName),
		FilePath: storedPath,
		FileType: format.String(),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		removeFile(storedPath)
		return models.Document{}, err
	}

	database.CreateAuditLog(s.db.WithContext(ctx), userID, "document", doc.ID, "create", "Uploaded document: "+doc.FileName)
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, userID string) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&docs).Error
	return docs, err
}

func (s *DocumentService) Get(ctx context.Context, id, userID string) (models.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&doc).Error; err != nil {
		return models.Document{}, notFoundOr(err, "document not found")
	}
	if err := s.authz.Authorize(doc.UserID, userID); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// checklists survive with a NULL document
func (s *DocumentService) Delete(ctx context.Context, id, userID string) (models.Document, error) {
	doc, err := s.Get(ctx, id, userID)
	if err != nil {
		return models.Document{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Checklist{}).
			Where("document_id = ?", doc.ID).
			Update("document_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&doc).Error
	})
	if err != nil {
		return models.Document{}, err
	}

	removeFile(doc.FilePath)
	database.CreateAuditLog(s.db.WithContext(ctx), userID, "document", doc.ID, "delete", "Deleted document: "+doc.FileName)
	return doc, nil
}

func removeFile(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to remove file %s: %v", path, err)
	}
}
