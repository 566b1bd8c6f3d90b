// Copyright 2026 Casecraft Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/casecraft/caselens"
	"github.com/casecraft/caselens/ai"
	"github.com/casecraft/caselens/pipeline"
	"github.com/casecraft/caselens/taxonomy"
)

func main() {
	app := &cli.App{
		Name:  "caselens",
		Usage: "Strategic concept analysis for business case prose",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Analyze a business case and assemble a templated answer",
				Action: analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "case",
						Aliases:  []string{"c"},
						Usage:    "Path to the case text file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "question",
						Aliases: []string{"q"},
						Usage:   "The question to answer about the case",
					},
					&cli.StringFlag{
						Name:  "inputs",
						Usage: "Path to a file with additional user-supplied notes",
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "Style instructions applied as a revision of the answer",
					},
					&cli.StringFlag{
						Name:  "taxonomy",
						Usage: "Path to a taxonomy JSON file (defaults to the embedded table)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the BadgerDB vector cache directory",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "suggester-host",
						Usage: "Phrase suggester host URL (defaults to embedding-host)",
					},
					&cli.StringFlag{
						Name:  "suggester-model",
						Usage: "Phrase suggester model name",
						Value: "qwen2.5:3b",
					},
					&cli.BoolFlag{
						Name:  "suggest",
						Usage: "Supplement extraction with model-suggested phrases",
					},
					&cli.Float64Flag{
						Name:  "fuzzy-threshold",
						Usage: "Fuzzy match threshold on the 0-100 scale",
					},
					&cli.Float64Flag{
						Name:  "semantic-threshold",
						Usage: "Semantic similarity threshold on the 0-1 scale",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Keep only the N highest-confidence concepts",
					},
					&cli.BoolFlag{
						Name:  "only-question",
						Usage: "Restrict concepts to phrases from the question text",
					},
					&cli.IntFlag{
						Name:  "max-words",
						Usage: "Answer word cap",
					},
					&cli.BoolFlag{
						Name:  "unmapped-fallback",
						Usage: "Report unmatched phrases as zero-confidence placeholders",
					},
					&cli.BoolFlag{
						Name:  "no-semantic",
						Usage: "Disable the embedding tier (no model backend needed)",
					},
					&cli.BoolFlag{
						Name:  "show-concepts",
						Usage: "Print the resolved concept list before the answer",
					},
				},
			},
			{
				Name:   "warm",
				Usage:  "Precompute embeddings for every canonical taxonomy term",
				Action: warmCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the BadgerDB vector cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "taxonomy",
						Usage: "Path to a taxonomy JSON file (defaults to the embedded table)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
				},
			},
			{
				Name:   "taxonomy",
				Usage:  "Validate and inspect a taxonomy table",
				Action: taxonomyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "taxonomy",
						Usage: "Path to a taxonomy JSON file (defaults to the embedded table)",
					},
					&cli.BoolFlag{
						Name:  "list",
						Usage: "List every canonical term",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	caseText, err := os.ReadFile(c.String("case"))
	if err != nil {
		return fmt.Errorf("failed to read case file: %w", err)
	}

	var inputsText string
	if path := c.String("inputs"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read inputs file: %w", err)
		}
		inputsText = string(data)
	}

	opts := engineOptions(c)
	engine, err := caselens.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.Analyze(ctx, pipeline.Request{
		CaseText:          string(caseText),
		QuestionText:      c.String("question"),
		UserInputsText:    inputsText,
		StyleInstructions: c.String("style"),
		OnlyQuestion:      c.Bool("only-question"),
		TopN:              c.Int("top-n"),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if c.Bool("show-concepts") {
		for _, m := range result.Concepts.Matches {
			if m.Entry != nil {
				fmt.Fprintf(os.Stderr, "%-10s %.2f  %s / %s / %s  [%s]\n",
					m.Method, m.Confidence, m.Entry.Category, m.Entry.Bucket, m.Entry.Term, m.Source)
			} else {
				fmt.Fprintf(os.Stderr, "%-10s %.2f  %q  [%s]\n",
					m.Method, m.Confidence, m.Surface, m.Source)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(result.Answer)
	return nil
}

func warmCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []caselens.EngineOption{
		caselens.WithAIConfig(aiConfig),
		caselens.WithVectorCachePath(c.String("db")),
	}
	if path := c.String("taxonomy"); path != "" {
		opts = append(opts, caselens.WithTaxonomyFile(path))
	}

	engine, err := caselens.NewEngine(opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	err = engine.WarmTaxonomy(ctx, func(done, total int) {
		fmt.Fprintf(os.Stderr, "Warmed %d/%d terms\n", done, total)
	})
	if err != nil {
		return fmt.Errorf("warming failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Done")
	return nil
}

func taxonomyCommand(c *cli.Context) error {
	var store *taxonomy.Store
	var err error
	if path := c.String("taxonomy"); path != "" {
		store, err = taxonomy.LoadFile(path)
	} else {
		store, err = taxonomy.Default()
	}
	if err != nil {
		return fmt.Errorf("invalid taxonomy: %w", err)
	}

	fmt.Printf("Version: %s\n", store.Version())
	fmt.Printf("Terms: %d\n", store.Len())

	if c.Bool("list") {
		fmt.Println()
		for _, entry := range store.Entries() {
			fmt.Printf("%s / %s / %s\n", entry.Category, entry.Bucket, entry.Term)
			for _, paraphrase := range entry.Paraphrases {
				fmt.Printf("    = %s\n", paraphrase)
			}
		}
	}

	return nil
}

// engineOptions maps analyze flags onto engine options.
func engineOptions(c *cli.Context) []caselens.EngineOption {
	suggesterHost := c.String("suggester-host")
	if suggesterHost == "" {
		suggesterHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithSuggesterHost(suggesterHost),
		ai.WithSuggesterModel(c.String("suggester-model")),
	)

	opts := []caselens.EngineOption{caselens.WithAIConfig(aiConfig)}

	if path := c.String("taxonomy"); path != "" {
		opts = append(opts, caselens.WithTaxonomyFile(path))
	}
	if path := c.String("db"); path != "" {
		opts = append(opts, caselens.WithVectorCachePath(path))
	}
	if c.Bool("no-semantic") {
		opts = append(opts, caselens.WithoutSemanticTier())
	}
	if c.Bool("unmapped-fallback") {
		opts = append(opts, caselens.WithUnmappedFallback())
	}
	if c.Bool("suggest") {
		opts = append(opts, caselens.WithPhraseSuggestion())
	}
	if threshold := c.Float64("fuzzy-threshold"); threshold > 0 {
		opts = append(opts, caselens.WithFuzzyThreshold(threshold))
	}
	if threshold := c.Float64("semantic-threshold"); threshold > 0 {
		opts = append(opts, caselens.WithSemanticThreshold(threshold))
	}
	if maxWords := c.Int("max-words"); maxWords > 0 {
		opts = append(opts, caselens.WithMaxAnswerWords(maxWords))
	}

	return opts
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
