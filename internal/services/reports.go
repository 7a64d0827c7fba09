package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/database"
	"audit-checklist/internal/models"
	"audit-checklist/internal/report"

	"gorm.io/gorm"
)

type ReportService struct {
	db         *gorm.DB
	checklists *ChecklistService
	ncs        *NonConformityService
	locks      *keyedMutex
	reportsDir string
	now        func() time.Time
}

type ReportFile struct {
	FileName string
	Path     string
	Content  []byte
}

func (s *ReportService) Checklist(ctx context.Context, checklistID, userID string) (ReportFile, error) {
	snap, err := s.ChecklistSnapshot(ctx, checklistID, userID)
	if err != nil {
		return ReportFile{}, err
	}
	content, err := report.RenderChecklist(snap)
	if err != nil {
		return ReportFile{}, err
	}
	name := fmt.Sprintf("report-%s-%d.pdf", checklistID, snap.GeneratedAt.UnixMilli())
	return s.store(ctx, userID, checklistID, name, content)
}

func (s *ReportService) NonConformities(ctx context.Context, checklistID, userID string) (ReportFile, error) {
	snap, err := s.NonConformitySnapshot(ctx, checklistID, userID)
	if err != nil {
		return ReportFile{}, err
	}
	content, err := report.RenderNonConformities(snap)
	if err != nil {
		return ReportFile{}, err
	}
	name := fmt.Sprintf("nonconformities-report-%s-%d.pdf", checklistID, snap.GeneratedAt.UnixMilli())
	return s.store(ctx, userID, checklistID, name, content)
}

func (s *ReportService) ChecklistSnapshot(ctx context.Context, checklistID, userID string) (report.ChecklistSnapshot, error) {
	checklist, ncs, err := s.load(ctx, checklistID, userID)
	if err != nil {
		return report.ChecklistSnapshot{}, err
	}
	snap := report.ChecklistSnapshot{
		ChecklistID:     checklist.ID,
		Standard:        checklist.Standard,
		DocumentName:    documentName(checklist),
		GeneratedAt:     s.now(),
		Questions:       make([]report.QuestionRow, len(checklist.Questions)),
		NonConformities: nonConformityRows(ncs),
	}
	for i, q := range checklist.Questions {
		row := report.QuestionRow{ID: q.ID, Text: q.Text}
		if q.Answer != nil {
			v := q.Answer.Response
			row.Answer = &v
		}
		snap.Questions[i] = row
	}
	return snap, nil
}

func (s *ReportService) NonConformitySnapshot(ctx context.Context, checklistID, userID string) (report.NonConformitySnapshot, error) {
	checklist, ncs, err := s.load(ctx, checklistID, userID)
	if err != nil {
		return report.NonConformitySnapshot{}, err
	}
	return report.NonConformitySnapshot{
		ChecklistID:     checklist.ID,
		Standard:        checklist.Standard,
		DocumentName:    documentName(checklist),
		GeneratedAt:     s.now(),
		NonConformities: nonConformityRows(ncs),
	}, nil
}

func (s *ReportService) load(ctx context.Context, checklistID, userID string) (models.Checklist, []models.NonConformity, error) {
	// writes on the checklist wait for the snapshot
	unlock := s.locks.Lock(checklistID)
	defer unlock()

	checklist, err := s.checklists.Get(ctx, checklistID, userID)
	if err != nil {
		return models.Checklist{}, nil, err
	}
	ncs, err := s.ncs.ListForChecklist(ctx, checklistID, userID)
	if err != nil {
		return models.Checklist{}, nil, err
	}
	return checklist, ncs, nil
}

func (s *ReportService) store(ctx context.Context, userID, checklistID, name string, content []byte) (ReportFile, error) {
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return ReportFile{}, apperr.Wrap(apperr.KindRenderFailure, err, "failed to create reports directory")
	}
	path := filepath.Join(s.reportsDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return ReportFile{}, apperr.Wrap(apperr.KindRenderFailure, err, "failed to write report")
	}
	database.CreateAuditLog(s.db.WithContext(ctx), userID, "checklist", checklistID, "report", name)
	return ReportFile{FileName: name, Path: path, Content: content}, nil
}

func documentName(c models.Checklist) string {
	if c.Document == nil {
		return ""
	}
	return c.Document.FileName
}

func nonConformityRows(ncs []models.NonConformity) []report.NonConformityRow {
	rows := make([]report.NonConformityRow, len(ncs))
	for i, nc := range ncs {
		row := report.NonConformityRow{
			ID:          nc.ID,
			QuestionID:  nc.QuestionID,
			Status:      nc.Status,
			Description: deref(nc.Description),
			Observation: deref(nc.Observation),
			CreatedAt:   nc.CreatedAt,
			ResolvedAt:  nc.ResolvedAt,
		}
		if nc.Question != nil {
			row.QuestionText = nc.Question.Text
		}
		for _, a := range nc.CorrectiveActions {
			row.CorrectiveActions = append(row.CorrectiveActions, report.ActionRow{Text: a.Action, CreatedAt: a.CreatedAt})
		}
		rows[i] = row
	}
	return rows
}
