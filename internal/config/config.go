package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	InputDir   string         `yaml:"input_dir"`
	OutputDir  string         `yaml:"output_dir"`
	Pattern    string         `yaml:"pattern"`
	Collection string         `yaml:"collection"`
	RAG        RAGConfig      `yaml:"rag"`
	EmbedLLM   LLMConfig      `yaml:"embed_llm"`
	ChatLLM    LLMConfig      `yaml:"chat_llm"`
	Database   DatabaseConfig `yaml:"database"`
}

type RAGConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	EnrichContext bool   `yaml:"enrich_context"`
	EncryptionKey string `yaml:"encryption_key"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Key      string `yaml:"key"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
	Key     string `yaml:"key"`
	Debug   bool   `yaml:"debug"`
}

const (
	defaultInputDir     = "./documents/guidelines"
	defaultOutputDir    = "./vectorstore/chromem"
	defaultPattern      = "*.pdf"
	defaultCollection   = "guidelines"
	defaultChunkSize    = 1000
	defaultChunkOverlap = 150
	defaultProvider     = "ollama"
	defaultBaseURL      = "http://localhost:11434"
	defaultModel        = "nomic-embed-text"
)

func LoadConfig(path string) (*Config, error) {
	// secrets (database DSN, unidoc license key) may live in a .env file
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config reproducing the built-in pipeline behavior
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = defaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.Pattern == "" {
		c.Pattern = defaultPattern
	}
	if c.Collection == "" {
		c.Collection = defaultCollection
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = defaultChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if c.EmbedLLM.Provider == "" {
		c.EmbedLLM.Provider = defaultProvider
	}
	if c.EmbedLLM.BaseURL == "" {
		c.EmbedLLM.BaseURL = defaultBaseURL
	}
	if c.EmbedLLM.Model == "" {
		c.EmbedLLM.Model = defaultModel
	}
	if c.Database.DSN == "" {
		c.Database.DSN = os.Getenv("DATABASE_URL")
	}
}
