package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the answer engine.
type Config struct {
	General      GeneralConfig      `mapstructure:"general"`
	Server       ServerConfig       `mapstructure:"server"`
	Engine       EngineConfig       `mapstructure:"engine"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Providers    ProvidersConfig    `mapstructure:"providers"`
	Telemetry    TelemetryConfig    `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server and auth settings. When JWTSecret is
// empty the API runs unauthenticated.
type ServerConfig struct {
	Address   string `mapstructure:"address"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// EngineConfig contains the retrieval pipeline knobs.
type EngineConfig struct {
	TopK                int           `mapstructure:"top_k"`
	MaxResults          int           `mapstructure:"max_results"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold"`
	Damping             float64       `mapstructure:"damping"`
	MaxContextChunks    int           `mapstructure:"max_context_chunks"`
	EmbedTimeout        time.Duration `mapstructure:"embed_timeout"`
}

// Validate ensures the pipeline configuration is usable.
func (e EngineConfig) Validate() error {
	if e.TopK <= 0 {
		return fmt.Errorf("engine.top_k must be > 0")
	}
	if e.MaxResults <= 0 {
		return fmt.Errorf("engine.max_results must be > 0")
	}
	if e.Damping <= 0 || e.Damping >= 1 {
		return fmt.Errorf("engine.damping must be in (0, 1)")
	}
	if e.ConfidenceThreshold < 0 || e.ConfidenceThreshold > 1 {
		return fmt.Errorf("engine.confidence_threshold must be in [0, 1]")
	}
	return nil
}

// CacheConfig controls the response cache. Backend is "memory" or "redis".
type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	Redis      RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Validate checks the cache configuration.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Backend)
	}
	if c.Backend == "redis" && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("cache.redis.addr required when cache.backend is redis")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0")
	}
	return nil
}

// ConversationConfig bounds per-user query history.
type ConversationConfig struct {
	MaxHistory int `mapstructure:"max_history"`
}

// ProvidersConfig lists the embedding/generation capability backends.
type ProvidersConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Static StaticConfig `mapstructure:"static"`
}

// OpenAIConfig contains OpenAI API settings. The provider is only
// constructed when APIKey is set.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StaticConfig configures the deterministic offline providers.
type StaticConfig struct {
	Backends   int `mapstructure:"backends"`
	Dimensions int `mapstructure:"dimensions"`
}

// Validate checks provider settings.
func (p ProvidersConfig) Validate() error {
	if p.OpenAI.APIKey == "" && p.Static.Backends <= 0 {
		return fmt.Errorf("providers: at least one backend required (openai api_key or static.backends)")
	}
	if p.Static.Backends > 0 && p.Static.Dimensions <= 0 {
		return fmt.Errorf("providers.static.dimensions must be > 0")
	}
	return nil
}

// TelemetryConfig contains telemetry and monitoring settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults() {
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":10020")
	viper.SetDefault("engine.top_k", 10)
	viper.SetDefault("engine.max_results", 10)
	viper.SetDefault("engine.confidence_threshold", 0.7)
	viper.SetDefault("engine.damping", 0.9)
	viper.SetDefault("engine.max_context_chunks", 5)
	viper.SetDefault("engine.embed_timeout", 10*time.Second)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", 24*time.Hour)
	viper.SetDefault("cache.max_entries", 1000)
	viper.SetDefault("cache.redis.timeout", 5*time.Second)
	viper.SetDefault("conversation.max_history", 10)
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.embedding_model", "text-embedding-3-small")
	viper.SetDefault("providers.openai.temperature", 0.2)
	viper.SetDefault("providers.openai.max_tokens", 1024)
	viper.SetDefault("providers.openai.timeout", 30*time.Second)
	viper.SetDefault("providers.static.backends", 2)
	viper.SetDefault("providers.static.dimensions", 256)
	viper.SetDefault("telemetry.enabled", true)
}

// LoadConfig loads config from file. A missing config file is not fatal:
// defaults plus QUAERO_* environment overrides apply.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	setDefaults()

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("QUAERO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Engine.Validate(); err != nil {
		panic(err)
	}
	if err := config.Cache.Validate(); err != nil {
		panic(err)
	}
	if err := config.Providers.Validate(); err != nil {
		panic(err)
	}
	return &config
}

// Default returns a config populated with the built-in defaults, without
// touching the filesystem or environment. Tests construct engines from it.
func Default() *Config {
	return &Config{
		General: GeneralConfig{LogLevel: "info"},
		Server:  ServerConfig{Address: ":10020"},
		Engine: EngineConfig{
			TopK:                10,
			MaxResults:          10,
			ConfidenceThreshold: 0.7,
			Damping:             0.9,
			MaxContextChunks:    5,
			EmbedTimeout:        10 * time.Second,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        24 * time.Hour,
			MaxEntries: 1000,
			Redis:      RedisConfig{Timeout: 5 * time.Second},
		},
		Conversation: ConversationConfig{MaxHistory: 10},
		Providers: ProvidersConfig{
			OpenAI: OpenAIConfig{
				CompletionModel: "gpt-4o-mini",
				EmbeddingModel:  "text-embedding-3-small",
				Temperature:     0.2,
				MaxTokens:       1024,
				Timeout:         30 * time.Second,
			},
			Static: StaticConfig{Backends: 2, Dimensions: 256},
		},
		Telemetry: TelemetryConfig{Enabled: true},
	}
}
