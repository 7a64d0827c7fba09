// Package report renders audit reports from immutable snapshots. Rendering
// is a pure function of its input: the same snapshot always produces the
// same bytes.
package report

import (
	"fmt"

	"audit-checklist/internal/models"
)

// RenderChecklist renders the full audit report of one checklist.
func RenderChecklist(s ChecklistSnapshot) ([]byte, error) {
	return checklistDocument(s).bytes()
}

func checklistDocument(s ChecklistSnapshot) *writer {
	w := newWriter(
		fmt.Sprintf("Relatório de Auditoria - %s", s.Standard),
		"Relatório de Checklist",
		s.GeneratedAt,
	)

	w.centered("RELATÓRIO DE AUDITORIA", "B", 20)
	w.space(8)
	w.centered(fmt.Sprintf("Norma: %s", s.Standard), "B", 14)
	w.centered(fmt.Sprintf("Data: %s", s.GeneratedAt.Format("02/01/2006")), "", 12)
	w.space(24)

	w.heading("Informações do Documento", 14)
	w.paragraph(fmt.Sprintf("Nome do Documento: %s", documentName(s.DocumentName)), "", 12, black)
	w.space(24)

	w.heading("Questões e Respostas", 14)
	for i, q := range s.Questions {
		w.breakIfNeeded()
		w.pdf.SetFont("Helvetica", "B", 12)
		w.color(black)
		w.pdf.Write(lineHeight, w.tr(fmt.Sprintf("%d. %s ", i+1, q.Text)))
		w.pdf.SetFont("Helvetica", "", 12)
		w.color(answerColor(q.Answer))
		w.pdf.Write(lineHeight, w.tr("["+AnswerLabel(q.Answer)+"]"))
		w.color(black)
		w.pdf.Ln(lineHeight + 6)
	}
	w.space(24)

	checklistNonConformities(w, s)
	return w
}

// checklistNonConformities lists every question answered "no", joined with
// its NC record by question id.
func checklistNonConformities(w *writer, s ChecklistSnapshot) {
	w.heading("Não Conformidades", 14)

	byQuestion := make(map[string]NonConformityRow, len(s.NonConformities))
	for _, nc := range s.NonConformities {
		byQuestion[nc.QuestionID] = nc
	}

	n := 0
	for _, q := range s.Questions {
		if q.Answer == nil || *q.Answer {
			continue
		}
		n++
		w.breakIfNeeded()
		w.paragraph(fmt.Sprintf("NC %d: %s", n, q.Text), "B", 12, black)

		nc, ok := byQuestion[q.ID]
		status := StatusLabel(models.NCOpen)
		if ok {
			status = StatusLabel(nc.Status)
		}
		w.paragraph(fmt.Sprintf("Status: %s", status), "", 10, black)
		if ok && nc.Description != "" {
			w.paragraph(fmt.Sprintf("Descrição: %s", nc.Description), "", 10, black)
		}
		if ok && nc.Observation != "" {
			w.paragraph(fmt.Sprintf("Observações: %s", nc.Observation), "", 10, black)
		}
		w.space(12)
	}

	if n == 0 {
		w.centered("Nenhuma não conformidade identificada.", "", 12)
	}
}

func documentName(name string) string {
	if name == "" {
		return "(documento removido)"
	}
	return name
}
