package questions

import (
	"fmt"
	"strings"

	"audit-checklist/internal/models"
)

const (
	// MaxDocumentChars bounds the document prefix sent to the provider.
	MaxDocumentChars = 6000
	// MaxQuestions caps every generated checklist.
	MaxQuestions    = 25
	truncatedMarker = "..."
)

// Truncate keeps the first MaxDocumentChars characters and marks the cut.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxDocumentChars {
		return text
	}
	return string(runes[:MaxDocumentChars]) + truncatedMarker
}

// BuildPrompt renders the provider instruction for one document.
func BuildPrompt(documentText string, standard models.Standard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Você é um auditor especialista na norma %s.\n", standard)
	fmt.Fprintf(&b, "Analise o seguinte documento de planejamento de projeto e crie até %d perguntas de checklist\n", MaxQuestions)
	fmt.Fprintf(&b, "que possam ser respondidas com SIM ou NÃO para verificar a conformidade com a norma %s.\n\n", standard)
	b.WriteString("As perguntas devem:\n")
	b.WriteString("1. Ser diretas e claras\n")
	b.WriteString("2. Ter resposta binária (sim/não)\n")
	fmt.Fprintf(&b, "3. Focar em aspectos críticos da norma %s\n", standard)
	b.WriteString("4. Ser relevantes para o conteúdo do documento\n")
	b.WriteString("5. Ajudar a identificar não conformidades ou oportunidades de melhoria\n\n")
	b.WriteString("DOCUMENTO:\n")
	b.WriteString(Truncate(documentText))
	b.WriteString("\n\nFORMATO DE RESPOSTA:\n")
	b.WriteString("Forneça apenas as perguntas, uma por linha, sem numeração ou outros caracteres.\n")
	return b.String()
}

// Parse turns a provider response into questions: one per line, trimmed,
// blank lines and markdown headers/bullets dropped, order kept, capped at
// MaxQuestions.
func Parse(response string) []string {
	lines := strings.Split(strings.TrimSpace(response), "\n")
	out := make([]string, 0, MaxQuestions)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		out = append(out, line)
		if len(out) == MaxQuestions {
			break
		}
	}
	return out
}
