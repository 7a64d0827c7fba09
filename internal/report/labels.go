package report

import "audit-checklist/internal/models"

type rgb struct{ r, g, b int }

var (
	black = rgb{0, 0, 0}
	green = rgb{0, 128, 0}
	red   = rgb{200, 0, 0}
	grey  = rgb{128, 128, 128}
	light = rgb{204, 204, 204}
)

const (
	LabelYes         = "SIM"
	LabelNo          = "NÃO"
	LabelNotAnswered = "NÃO RESPONDIDO"
)

// AnswerLabel derives the annotation from the answer alone.
func AnswerLabel(answer *bool) string {
	switch {
	case answer == nil:
		return LabelNotAnswered
	case *answer:
		return LabelYes
	default:
		return LabelNo
	}
}

func answerColor(answer *bool) rgb {
	switch {
	case answer == nil:
		return grey
	case *answer:
		return green
	default:
		return red
	}
}

type statusStyle struct {
	label string
	color rgb
}

var statusStyles = map[models.NCStatus]statusStyle{
	models.NCOpen:       {label: "Aberta", color: rgb{0xFF, 0x6B, 0x6B}},
	models.NCInProgress: {label: "Em Andamento", color: rgb{0x4E, 0xCD, 0xC4}},
	models.NCResolved:   {label: "Resolvida", color: rgb{0x45, 0xB7, 0xD1}},
}

func StatusLabel(status models.NCStatus) string {
	if s, ok := statusStyles[status]; ok {
		return s.label
	}
	return string(status)
}

func statusColor(status models.NCStatus) rgb {
	if s, ok := statusStyles[status]; ok {
		return s.color
	}
	return black
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
