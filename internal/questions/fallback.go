package questions

import (
	"strings"

	"audit-checklist/internal/models"
)

const standardSlot = "{standard}"

var fallbackTemplates = [MaxQuestions]string{
	"O documento está em conformidade com os requisitos de documentação da {standard}?",
	"Os objetivos do projeto estão claramente definidos conforme exigido pela {standard}?",
	"Existe um plano de gerenciamento de riscos de acordo com a {standard}?",
	"As responsabilidades dos stakeholders estão definidas conforme a {standard}?",
	"O cronograma do projeto segue as boas práticas da {standard}?",
	"Existe um plano de comunicação em conformidade com a {standard}?",
	"Os recursos necessários para o projeto estão identificados conforme a {standard}?",
	"Existem métricas de qualidade definidas de acordo com a {standard}?",
	"O projeto possui um plano de gerenciamento de mudanças conforme a {standard}?",
	"Os requisitos do projeto estão documentados conforme a {standard}?",
	"Existe um processo de aprovação definido em conformidade com a {standard}?",
	"O escopo do projeto está claramente delimitado conforme a {standard}?",
	"Existe um plano de gerenciamento de custos em conformidade com a {standard}?",
	"As entregas do projeto estão definidas conforme a {standard}?",
	"Existe um plano de gerenciamento de qualidade conforme a {standard}?",
	"Os critérios de aceitação estão definidos de acordo com a {standard}?",
	"Existe um plano de gerenciamento de stakeholders conforme a {standard}?",
	"O projeto possui milestones definidos conforme a {standard}?",
	"Existe um plano de mitigação de riscos em conformidade com a {standard}?",
	"O projeto possui um processo de lições aprendidas conforme a {standard}?",
	"As premissas do projeto estão documentadas conforme a {standard}?",
	"Existe um plano de gerenciamento de aquisições conforme a {standard}?",
	"O projeto possui indicadores de desempenho definidos conforme a {standard}?",
	"Existe um plano de transição/encerramento em conformidade com a {standard}?",
	"O projeto possui um processo de controle de versão conforme a {standard}?",
}

// Fallback returns the fixed 25-question checklist for standard.
func Fallback(standard models.Standard) []string {
	out := make([]string, len(fallbackTemplates))
	for i, tmpl := range fallbackTemplates {
		out[i] = strings.ReplaceAll(tmpl, standardSlot, string(standard))
	}
	return out
}
