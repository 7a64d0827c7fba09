package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"audit-checklist/internal/config"
	"audit-checklist/internal/database"
	"audit-checklist/internal/extract"
	"audit-checklist/internal/llm"
	"audit-checklist/internal/models"
	"audit-checklist/internal/questions"

	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "auditctl",
		Usage: "Maintenance commands for the audit checklist service",
		Commands: []*cli.Command{
			migrateCommand(),
			standardsCommand(),
			extractCommand(),
			questionsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "seed", Usage: "also create the demo users"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			if c.Bool("seed") {
				database.SeedDefaultUsers(db)
			}
			fmt.Println(okStyle.Render("schema is up to date"))
			return nil
		},
	}
}

func standardsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standards",
		Usage: "List the supported standards",
		Action: func(ctx context.Context, c *cli.Command) error {
			printStandards(os.Stdout, models.SupportedStandards)
			return nil
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Print the text extracted from a document",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("a file path is required")
			}
			text, err := extract.Text(path)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

func questionsCommand() *cli.Command {
	return &cli.Command{
		Name:      "questions",
		Usage:     "Generate checklist questions for a document without storing them",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "standard", Required: true, Usage: "ISO 9001, ISO 27001, PMBOK, ITIL, SCRUM or COBIT"},
			&cli.StringFlag{Name: "openai-key", Sources: cli.EnvVars("OPENAI_API_KEY"), Usage: "leave empty to use the fallback questions"},
			&cli.StringFlag{Name: "model", Value: "gpt-3.5-turbo", Sources: cli.EnvVars("OPENAI_MODEL")},
			&cli.DurationFlag{Name: "timeout", Value: 60 * time.Second, Sources: cli.EnvVars("OPENAI_TIMEOUT")},
			&cli.BoolFlag{Name: "yaml", Usage: "output YAML"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("a file path is required")
			}
			standard, ok := models.ParseStandard(c.String("standard"))
			if !ok {
				return fmt.Errorf("unsupported standard %q", c.String("standard"))
			}

			text, err := extract.Text(path)
			if err != nil {
				return err
			}

			var provider questions.Provider = llm.Unavailable{}
			if key := c.String("openai-key"); key != "" {
				provider = llm.NewOpenAIProvider(key, c.String("model"))
			}
			qs := questions.NewEngine(provider, c.Duration("timeout")).Generate(ctx, text, standard)

			if c.Bool("yaml") {
				return writeQuestionsYAML(os.Stdout, standard, path, qs)
			}
			printQuestions(os.Stdout, standard, qs)
			return nil
		},
	}
}
