package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
)

func TestStoragePathRejectsUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Documents.StoragePath("sheet.xlsx"); !apperr.Is(err, apperr.KindUnsupportedFormat) {
		t.Fatalf("expected UnsupportedFormat, got %v", err)
	}
	path, err := env.svc.Documents.StoragePath("Plano.DOCX")
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	if filepath.Ext(path) != ".docx" || filepath.Dir(path) != filepath.Join(env.dir, "uploads") {
		t.Fatalf("unexpected path %s", path)
	}
}

func TestCreateDocumentForUnknownUserRemovesFile(t *testing.T) {
	env := newTestEnv(t)
	path, _ := env.svc.Documents.StoragePath("plan.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := env.svc.Documents.Create(context.Background(), "ghost", "plan.txt", path)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("orphan upload must be removed")
	}
}

func TestDeleteDocumentDetachesChecklists(t *testing.T) {
	env := newTestEnv(t)
	c := env.checklist(t)
	ctx := context.Background()

	if _, err := env.svc.Documents.Delete(ctx, *c.DocumentID, env.stranger); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}

	doc, err := env.svc.Documents.Delete(ctx, *c.DocumentID, env.owner)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(doc.FilePath); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("stored file must be removed")
	}

	got, err := env.svc.Checklists.Get(ctx, c.ID, env.owner)
	if err != nil {
		t.Fatalf("checklist must survive document deletion: %v", err)
	}
	if got.DocumentID != nil || got.Document != nil || len(got.Questions) != 3 {
		t.Fatalf("checklist not detached cleanly: %+v", got)
	}

	docs, _ := env.svc.Documents.List(ctx, env.owner)
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
	var logs int64
	env.db.Model(&models.AuditLog{}).Where("entity = ? AND action = ?", "document", "delete").Count(&logs)
	if logs != 1 {
		t.Fatalf("expected one delete audit entry, got %d", logs)
	}
}
