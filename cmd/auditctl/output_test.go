package main

import (
	"bytes"
	"strings"
	"testing"

	"audit-checklist/internal/models"

	"gopkg.in/yaml.v3"
)

func TestWriteQuestionsYAML(t *testing.T) {
	var buf bytes.Buffer
	qs := []string{"Existe escopo definido?", "Os riscos: estão mapeados?"}
	if err := writeQuestionsYAML(&buf, models.StandardSCRUM, "/tmp/docs/plano.txt", qs); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got questionSet
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, buf.String())
	}
	if got.Standard != "SCRUM" || got.Document != "plano.txt" || len(got.Questions) != 2 || got.Questions[1] != qs[1] {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestPrintQuestionsListsEveryQuestion(t *testing.T) {
	var buf bytes.Buffer
	printQuestions(&buf, models.StandardITIL, []string{"Primeira?", "Segunda?"})

	out := buf.String()
	for _, want := range []string{"ITIL checklist (2 questions)", "Primeira?", "Segunda?", "2."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}
