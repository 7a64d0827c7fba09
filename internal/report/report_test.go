package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"audit-checklist/internal/models"
)

var generatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func answer(v bool) *bool { return &v }

func sampleChecklist(questions int) ChecklistSnapshot {
	s := ChecklistSnapshot{
		ChecklistID:  "c0ffee00-0000-4000-8000-000000000001",
		Standard:     models.StandardISO9001,
		DocumentName: "plano-do-projeto.pdf",
		GeneratedAt:  generatedAt,
	}
	for i := 0; i < questions; i++ {
		q := QuestionRow{ID: fmt.Sprintf("q%02d", i), Text: fmt.Sprintf("Existe um plano de gerenciamento número %d conforme a ISO 9001?", i)}
		switch i % 3 {
		case 0:
			q.Answer = answer(true)
		case 1:
			q.Answer = answer(false)
		}
		s.Questions = append(s.Questions, q)
	}
	for _, q := range s.Questions {
		if q.Answer != nil && !*q.Answer {
			s.NonConformities = append(s.NonConformities, NonConformityRow{
				ID:           "nc-" + q.ID + "-aaaaaaaa",
				QuestionID:   q.ID,
				QuestionText: q.Text,
				Status:       models.NCOpen,
				Description:  "Plano ausente",
			})
		}
	}
	return s
}

func sampleNonConformities() NonConformitySnapshot {
	resolved := generatedAt.Add(-time.Hour)
	return NonConformitySnapshot{
		ChecklistID:  "c1",
		Standard:     models.StandardISO27001,
		DocumentName: "politica.docx",
		GeneratedAt:  generatedAt,
		NonConformities: []NonConformityRow{
			{ID: "11111111-aaaa", QuestionText: "Existe política de acesso?", Status: models.NCOpen},
			{
				ID: "22222222-bbbb", QuestionText: "Backups são testados?", Status: models.NCInProgress,
				Description: "Sem evidência de testes",
				CorrectiveActions: []ActionRow{
					{Text: "Agendar teste mensal de restauração", CreatedAt: generatedAt.Add(-48 * time.Hour)},
					{Text: "Documentar procedimento de restauração", CreatedAt: generatedAt.Add(-24 * time.Hour)},
				},
			},
			{
				ID: "33333333-cccc", QuestionText: "Há inventário de ativos?", Status: models.NCResolved,
				Observation: "Inventário publicado na intranet", ResolvedAt: &resolved,
				CorrectiveActions: []ActionRow{{Text: "Levantar ativos de TI", CreatedAt: generatedAt.Add(-72 * time.Hour)}},
			},
		},
	}
}

func TestRenderChecklistIsDeterministic(t *testing.T) {
	s := sampleChecklist(9)

	a, err := RenderChecklist(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := RenderChecklist(s)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !bytes.HasPrefix(a, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("rendering the same snapshot twice produced different bytes")
	}
}

func TestRenderChecklistDependsOnAnswers(t *testing.T) {
	s := sampleChecklist(3)
	a, err := RenderChecklist(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s.Questions[2].Answer = answer(true)
	b, err := RenderChecklist(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("changing an answer must change the report")
	}
}

func TestChecklistPaginationIsStable(t *testing.T) {
	short := checklistDocument(sampleChecklist(3))
	if short.pdf.PageCount() != 1 {
		t.Fatalf("expected one page for three questions, got %d", short.pdf.PageCount())
	}

	long := sampleChecklist(60)
	first := checklistDocument(long).pdf.PageCount()
	second := checklistDocument(long).pdf.PageCount()
	if first < 2 {
		t.Fatalf("expected several pages for sixty questions, got %d", first)
	}
	if first != second {
		t.Fatalf("page count changed between renders: %d vs %d", first, second)
	}
}

func TestChecklistWithoutDocumentOrNonConformities(t *testing.T) {
	s := ChecklistSnapshot{
		ChecklistID: "c2",
		Standard:    models.StandardSCRUM,
		GeneratedAt: generatedAt,
		Questions:   []QuestionRow{{ID: "q1", Text: "Existe backlog?", Answer: answer(true)}},
	}
	out, err := RenderChecklist(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty output")
	}
}

func TestRenderNonConformitiesIsDeterministic(t *testing.T) {
	s := sampleNonConformities()
	a, err := RenderNonConformities(s)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := RenderNonConformities(s)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("rendering the same snapshot twice produced different bytes")
	}
}

func TestNonConformityReportBreaksPages(t *testing.T) {
	s := sampleNonConformities()
	base := s.NonConformities
	for i := 0; i < 10; i++ {
		s.NonConformities = append(s.NonConformities, base...)
	}
	if n := nonConformityDocument(s).pdf.PageCount(); n < 2 {
		t.Fatalf("expected explicit page breaks, got %d page(s)", n)
	}
}

func TestCountByStatus(t *testing.T) {
	c := CountByStatus(sampleNonConformities().NonConformities)
	if c.Total != 3 || c.Open != 1 || c.InProgress != 1 || c.Resolved != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}
}

func TestLabels(t *testing.T) {
	if AnswerLabel(nil) != LabelNotAnswered || AnswerLabel(answer(true)) != LabelYes || AnswerLabel(answer(false)) != LabelNo {
		t.Fatalf("unexpected answer labels")
	}
	if StatusLabel(models.NCInProgress) != "Em Andamento" {
		t.Fatalf("unexpected status label %q", StatusLabel(models.NCInProgress))
	}
	if StatusLabel("ARCHIVED") != "ARCHIVED" {
		t.Fatalf("unknown status should render verbatim")
	}
	if shortID("12345678-90ab") != "12345678" || shortID("abc") != "abc" {
		t.Fatalf("unexpected short ids")
	}
}
