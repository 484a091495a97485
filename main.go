package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/docqa-boot/appconfig"
	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/SaiNageswarS/docqa-boot/llm"
	"github.com/SaiNageswarS/docqa-boot/session"
	"github.com/SaiNageswarS/docqa-boot/summarizer"
	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	// load config file
	ccfgg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", ccfgg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	ccfgg.ApplyDefaults()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := provideBackend(ctx, ccfgg)
	if err != nil {
		logger.Fatal("Failed to create backend", zap.Error(err))
	}

	lang, ok := document.ParseLanguage(ccfgg.DefaultLanguage)
	if !ok {
		logger.Error("Unsupported default language, using English", zap.String("lang", ccfgg.DefaultLanguage))
	}

	reporter := session.NewChannelReporter(64)
	ctrl := session.New(b, session.WithReporter(reporter), session.WithLanguage(lang))
	defer ctrl.Close()

	p := newPrinter(os.Stdout)
	go p.run(ctx, reporter.Events())

	fmt.Fprintln(os.Stdout, helpText)
	newConsole(ctrl, os.Stdout).run(ctx, os.Stdin)
}

func provideBackend(ctx context.Context, cfg *appconfig.AppConfig) (backend.Backend, error) {
	switch cfg.BackendMode {
	case appconfig.BackendHTTP:
		logger.Info("Using HTTP backend", zap.String("url", cfg.BackendURL))
		return backend.NewHTTPBackend(cfg.BackendURL, cfg.RequestTimeout()), nil
	case appconfig.BackendLocal:
		return provideLocalBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend mode %q", cfg.BackendMode)
	}
}

func provideLocalBackend(ctx context.Context, cfg *appconfig.AppConfig) (backend.Backend, error) {
	ollamaClient, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("error creating ollama client: %w", err)
	}

	client, err := provideLLM(cfg, ollamaClient)
	if err != nil {
		return nil, err
	}

	index, err := summarizer.NewIndex(cfg.MaxDocuments)
	if err != nil {
		return nil, err
	}

	svc := summarizer.NewService(client, llm.NewOllamaEmbedder(ollamaClient, cfg.EmbedModel), index, summarizer.DefaultConfig())
	logger.Info("Using local backend", zap.String("provider", cfg.LLMProvider), zap.String("model", client.GetModel()))

	if cfg.LibraryDir != "" {
		if _, err := svc.IngestLibrary(ctx, cfg.LibraryDir); err != nil {
			logger.Error("Failed to ingest library", zap.String("dir", cfg.LibraryDir), zap.Error(err))
		}
	}
	return svc, nil
}

func provideLLM(cfg *appconfig.AppConfig, ollamaClient *api.Client) (llm.LLMClient, error) {
	switch cfg.LLMProvider {
	case "ollama":
		return llm.NewOllamaClient(ollamaClient, cfg.LLMModel), nil
	case "groq":
		return llm.NewGroqClient(cfg.LLMModel)
	case "anthropic":
		return llm.NewAnthropicClient(cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
