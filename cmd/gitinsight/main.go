package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"gitinsight/internal/cache"
	"gitinsight/internal/config"
	"gitinsight/internal/githost"
	"gitinsight/internal/llm"
	"gitinsight/internal/narrative"
	"gitinsight/internal/server"
	"gitinsight/internal/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "gitinsight",
		Usage: "analyze a public repository and print the AI-generated report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Usage:    "repository URL (e.g. https://github.com/owner/repo)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "generative service credential",
				Sources: cli.EnvVars("GEMINI_API_KEY"),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "generative model name (overrides GEMINI_MODEL)",
			},
			&cli.BoolFlag{
				Name:  "snapshot-only",
				Usage: "skip the narrative analysis and print only the snapshot",
			},
		},
		Action: runAnalyze,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if m := cmd.String("model"); m != "" {
		cfg.Gemini.Model = m
	}

	host := githost.New(cfg.GitHubAPIURL)
	builder := snapshot.NewBuilder(host)

	if cmd.Bool("snapshot-only") {
		snap, err := builder.Build(ctx, cmd.String("url"))
		if err != nil {
			return err
		}
		return printJSON(snap)
	}

	apiKey := cmd.String("api-key")
	if apiKey == "" {
		return cli.Exit("api key required: pass --api-key or set GEMINI_API_KEY", 1)
	}

	analyzer := narrative.NewAnalyzer(func(ctx context.Context, key string) (llm.Client, error) {
		inner, err := llm.NewGeminiClient(ctx, key, cfg.Gemini.Model, cfg.Gemini.Temperature, cfg.Gemini.MaxTokens)
		if err != nil {
			return nil, err
		}
		return llm.Wrap(inner, llm.WithLogging(nil)), nil
	})
	svc := server.NewService(builder, analyzer, cache.NewSnapshots(cfg.Cache.Entries, cfg.Cache.TTL))

	report, err := svc.Analyze(ctx, cmd.String("url"), apiKey, func(phase string) {
		log.Printf("phase: %s", phase)
	})
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
