package report

import (
	"fmt"
	"strconv"
)

// RenderNonConformities renders the remediation report of one checklist.
func RenderNonConformities(s NonConformitySnapshot) ([]byte, error) {
	return nonConformityDocument(s).bytes()
}

func nonConformityDocument(s NonConformitySnapshot) *writer {
	w := newWriter(
		fmt.Sprintf("Relatório de Não Conformidades - %s", s.Standard),
		"Relatório de Não Conformidades",
		s.GeneratedAt,
	)

	w.centered("RELATÓRIO DE NÃO CONFORMIDADES", "B", 18)
	w.space(6)
	w.centered(fmt.Sprintf("Checklist: %s", s.Standard), "", 12)
	w.centered(fmt.Sprintf("Documento: %s", documentName(s.DocumentName)), "", 10)
	w.centered(fmt.Sprintf("Gerado em: %s", s.GeneratedAt.Format("02/01/2006 15:04:05")), "", 10)
	w.space(12)
	w.rule(margin, 545, black)
	w.space(12)

	statistics(w, CountByStatus(s.NonConformities))

	w.heading("DETALHES DAS NÃO CONFORMIDADES", 14)
	for i, nc := range s.NonConformities {
		nonConformityBlock(w, i+1, nc)
	}
	return w
}

func statistics(w *writer, c StatusCounts) {
	w.heading("RESUMO ESTATÍSTICO", 14)

	rows := [][2]string{
		{"Total de Não Conformidades:", strconv.Itoa(c.Total)},
		{"Abertas:", strconv.Itoa(c.Open)},
		{"Em Andamento:", strconv.Itoa(c.InProgress)},
		{"Resolvidas:", strconv.Itoa(c.Resolved)},
	}

	w.pdf.SetFont("Helvetica", "", 11)
	w.color(black)
	y := w.pdf.GetY()
	for _, row := range rows {
		w.pdf.SetXY(70, y)
		w.pdf.CellFormat(200, 14, w.tr(row[0]), "", 0, "L", false, 0, "")
		w.pdf.SetXY(300, y)
		w.pdf.CellFormat(100, 14, row[1], "", 0, "L", false, 0, "")
		y += 20
	}
	w.pdf.SetXY(margin, y+10)
	w.rule(margin, 545, black)
	w.space(12)
}

func nonConformityBlock(w *writer, n int, nc NonConformityRow) {
	w.breakIfNeeded()

	w.paragraph(fmt.Sprintf("%d. Não Conformidade #%s", n, shortID(nc.ID)), "B", 12, black)
	w.space(3)
	w.paragraph(fmt.Sprintf("Status: %s", StatusLabel(nc.Status)), "B", 12, statusColor(nc.Status))
	w.space(3)
	w.paragraph(fmt.Sprintf("Pergunta: %s", nc.QuestionText), "", 10, black)
	w.space(3)

	if nc.Description != "" {
		w.paragraph(fmt.Sprintf("Descrição: %s", nc.Description), "", 10, black)
		w.space(3)
	}

	if len(nc.CorrectiveActions) > 0 {
		w.paragraph("Ações Corretivas:", "B", 10, black)
		for i, a := range nc.CorrectiveActions {
			w.indented(20, fmt.Sprintf("%d. %s", i+1, a.Text), "", 9)
			w.indented(20, fmt.Sprintf("   Data: %s", a.CreatedAt.Format("02/01/2006")), "", 8)
		}
		w.space(3)
	}

	if nc.Observation != "" {
		w.paragraph("Observações:", "B", 10, black)
		w.paragraph(nc.Observation, "", 10, black)
		w.space(3)
	}

	if nc.ResolvedAt != nil {
		w.paragraph(fmt.Sprintf("Resolvida em: %s", nc.ResolvedAt.Format("02/01/2006 15:04:05")), "", 9, black)
	}

	w.space(6)
	w.rule(70, 530, light)
	w.space(6)
}
