package report

import (
	"time"

	"audit-checklist/internal/models"
)

// ChecklistSnapshot is the complete, read-only input of a checklist report.
type ChecklistSnapshot struct {
	ChecklistID     string
	Standard        models.Standard
	DocumentName    string // empty when the source document was deleted
	GeneratedAt     time.Time
	Questions       []QuestionRow // presentation order
	NonConformities []NonConformityRow
}

type QuestionRow struct {
	ID     string
	Text   string
	Answer *bool // nil when not answered
}

// NonConformitySnapshot is the input of the non-conformity report.
type NonConformitySnapshot struct {
	ChecklistID     string
	Standard        models.Standard
	DocumentName    string
	GeneratedAt     time.Time
	NonConformities []NonConformityRow
}

type NonConformityRow struct {
	ID                string
	QuestionID        string
	QuestionText      string
	Status            models.NCStatus
	Description       string
	Observation       string
	CreatedAt         time.Time
	ResolvedAt        *time.Time
	CorrectiveActions []ActionRow // chronological
}

type ActionRow struct {
	Text      string
	CreatedAt time.Time
}

type StatusCounts struct {
	Total      int
	Open       int
	InProgress int
	Resolved   int
}

// CountByStatus filters the supplied list by status.
func CountByStatus(rows []NonConformityRow) StatusCounts {
	c := StatusCounts{Total: len(rows)}
	for _, nc := range rows {
		switch nc.Status {
		case models.NCOpen:
			c.Open++
		case models.NCInProgress:
			c.InProgress++
		case models.NCResolved:
			c.Resolved++
		}
	}
	return c
}
