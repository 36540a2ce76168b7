package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gdg-menorca/resort-assistant/internal/api"
	adminapi "github.com/gdg-menorca/resort-assistant/internal/api/admin"
	chatapi "github.com/gdg-menorca/resort-assistant/internal/api/chat"
	healthapi "github.com/gdg-menorca/resort-assistant/internal/api/health"
	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/integration/corpusapi"
	"github.com/gdg-menorca/resort-assistant/internal/integration/llm"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/logger"
	"github.com/gdg-menorca/resort-assistant/internal/repository"
	"github.com/gdg-menorca/resort-assistant/internal/usecase/chat"
	"github.com/gdg-menorca/resort-assistant/internal/usecase/corpus"
	"go.uber.org/zap"
)

// Version reported by the health endpoints.
const Version = "1.0.0"

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// The server surfaces are non-interactive: confirmations auto-accept.
	corpusUC := buildCorpusManager(cfg, nil, log)

	chatUC := chat.NewUsecase(
		buildChatConnector(cfg, log),
		corpusUC,
		cfg.RAGCorpusID,
		log,
	)
	log.Info("Use cases initialized")

	healthHandler := healthapi.NewHandler(corpusUC, Version)
	chatHandler := chatapi.NewHandler(chatUC)
	adminHandler := adminapi.NewHandler(corpusUC, cfg.LogFile)
	log.Info("API handlers initialized")

	router := api.SetupRouter(healthHandler, chatHandler, adminHandler, log)
	log.Info("HTTP router configured")

	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}

// BuildManager wires just the corpus lifecycle manager for the CLI, with an
// operator confirmation prompt.
func BuildManager(environment string, confirm corpus.ConfirmFunc) (*corpus.Usecase, *config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfigForEnv(environment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	uc := buildCorpusManager(cfg, confirm, log)
	return uc, cfg, log, nil
}

func buildCorpusManager(cfg *config.Config, confirm corpus.ConfirmFunc, log *zap.Logger) *corpus.Usecase {
	metadataStore := repository.NewMetadataFile(cfg.MetadataFile)

	var llmConnector corpus.LLMConnector
	var corpusConnector corpus.CorpusConnector
	if cfg.EnableMocks {
		log.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(log)
		corpusConnector = corpusapi.NewMockConnector(log)
	} else {
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, log)
		corpusConnector = corpusapi.NewConnector(cfg.CorpusConnectorCfg, log)
	}

	return corpus.NewUsecase(cfg, metadataStore, llmConnector, corpusConnector, confirm, log)
}

func buildChatConnector(cfg *config.Config, log *zap.Logger) chat.LLMConnector {
	if cfg.EnableMocks {
		return llm.NewMockConnector(log)
	}
	return llm.NewConnector(cfg.LLMConnectorCfg, log)
}
