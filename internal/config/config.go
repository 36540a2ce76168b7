package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/gdg-menorca/resort-assistant/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Corpus identity
	CorpusDisplayName string `env:"CORPUS_DISPLAY_NAME,notEmpty"`
	// Fallback corpus ID for the retrieval tool when local metadata has no
	// corpus name yet.
	RAGCorpusID string `env:"RAG_CORPUS_ID"`

	// Local document pipeline paths
	InputFile    string `env:"INPUT_FILE" envDefault:"data/hotel_chatbot_documents.json"`
	OutputDir    string `env:"OUTPUT_DIR" envDefault:"generated_docs"`
	MetadataFile string `env:"METADATA_FILE" envDefault:"corpus_metadata.json"`

	// Remote status lookups from the health endpoints are cached this long.
	StatusCacheTTL time.Duration `env:"STATUS_CACHE_TTL" envDefault:"15s"`

	// External service configurations
	LLMConnectorCfg    LLMConnectorConfig    `envPrefix:"LLM_"`
	CorpusConnectorCfg CorpusConnectorConfig `envPrefix:"CORPUS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"rag_corpus.log"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the completion service connector.
type LLMConnectorConfig struct {
	HTTPClientConfig
	// Model used for one-shot document generation.
	Model string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	// Model used for the streaming chat completion.
	ChatModel        string               `env:"CHAT_MODEL" envDefault:"gemini-2.5-flash-lite"`
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/v1/models/generate"`
	StreamEndpoint   string               `env:"STREAM_ENDPOINT" envDefault:"/v1/models/generate:stream"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// CorpusConnectorConfig configures the vector-store service connector.
type CorpusConnectorConfig struct {
	HTTPClientConfig
	CorporaEndpoint string `env:"CORPORA_ENDPOINT" envDefault:"/v1/corpora"`
	// Endpoints with a {corpus_name} placeholder substituted per call.
	FilesEndpoint  string               `env:"FILES_ENDPOINT" envDefault:"/v1/corpora/{corpus_name}/files"`
	UploadEndpoint string               `env:"UPLOAD_ENDPOINT" envDefault:"/v1/corpora/{corpus_name}/files:upload"`
	DeleteEndpoint string               `env:"DELETE_ENDPOINT" envDefault:"/v1/corpora/{corpus_name}"`
	EmbeddingModel string               `env:"EMBEDDING_MODEL" envDefault:"publishers/google/models/text-embedding-005"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN,notEmpty"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()
	return loadConfig(*envFlag)
}

// LoadConfigForEnv loads configuration for an explicit environment name.
// Used by the CLI, whose flags are owned by cobra.
func LoadConfigForEnv(environment string) (*Config, error) {
	return loadConfig(environment)
}

func loadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.StatusCacheTTL <= 0 {
		return fmt.Errorf("STATUS_CACHE_TTL must be positive, got %s", cfg.StatusCacheTTL)
	}
	if cfg.LLMConnectorCfg.Retry.Attempts < 1 {
		return fmt.Errorf("LLM_RETRY_ATTEMPTS must be at least 1, got %d", cfg.LLMConnectorCfg.Retry.Attempts)
	}
	if cfg.CorpusConnectorCfg.Retry.Attempts < 1 {
		return fmt.Errorf("CORPUS_RETRY_ATTEMPTS must be at least 1, got %d", cfg.CorpusConnectorCfg.Retry.Attempts)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}

// GenerationSettings returns the configuration snapshot recorded into the
// corpus metadata file alongside generation runs.
func (c *Config) GenerationSettings() map[string]string {
	return map[string]string{
		"model":           c.LLMConnectorCfg.Model,
		"chat_model":      c.LLMConnectorCfg.ChatModel,
		"embedding_model": c.CorpusConnectorCfg.EmbeddingModel,
	}
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
