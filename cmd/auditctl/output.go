package main

import (
	"fmt"
	"io"
	"path/filepath"

	"audit-checklist/internal/models"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(4).
			Align(lipgloss.Right)
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ECDC4"))
)

func printStandards(w io.Writer, standards []models.Standard) {
	fmt.Fprintln(w, titleStyle.Render("Supported standards"))
	for i, s := range standards {
		fmt.Fprintf(w, "%s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), s)
	}
}

func printQuestions(w io.Writer, standard models.Standard, qs []string) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s checklist (%d questions)", standard, len(qs))))
	for i, q := range qs {
		fmt.Fprintf(w, "%s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), q)
	}
}

type questionSet struct {
	Standard  string   `yaml:"standard"`
	Document  string   `yaml:"document"`
	Questions []string `yaml:"questions"`
}

func writeQuestionsYAML(w io.Writer, standard models.Standard, path string, qs []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(questionSet{
		Standard:  string(standard),
		Document:  filepath.Base(path),
		Questions: qs,
	}); err != nil {
		return err
	}
	return enc.Close()
}
