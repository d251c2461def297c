package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"gitinsight/internal/cache"
	"gitinsight/internal/config"
	"gitinsight/internal/githost"
	"gitinsight/internal/llm"
	"gitinsight/internal/narrative"
	"gitinsight/internal/server"
	"gitinsight/internal/snapshot"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	host := githost.New(cfg.GitHubAPIURL)
	builder := snapshot.NewBuilder(host)
	analyzer := narrative.NewAnalyzer(geminiFactory(cfg.Gemini))
	snapshots := cache.NewSnapshots(cfg.Cache.Entries, cfg.Cache.TTL)

	svc := server.NewService(builder, analyzer, snapshots)
	mux := server.BuildMux(svc)
	handler := server.CORS(mux)

	log.Printf("gitinsight api listening on %s (env=%s, model=%s)", cfg.Port, cfg.Env, cfg.Gemini.Model)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// geminiFactory builds one Gemini client per caller credential, wrapped with
// the standard middleware chain.
func geminiFactory(cfg config.GeminiConfig) llm.Factory {
	return func(ctx context.Context, apiKey string) (llm.Client, error) {
		inner, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return llm.Wrap(inner,
			llm.WithLogging(nil),
			llm.RateLimit(cfg.RPS, cfg.Burst),
		), nil
	}
}
