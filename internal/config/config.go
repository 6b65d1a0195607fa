package config

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/gamehub/backend/internal/service/ai/groq"
)

const (
	ProviderGroq = "groq"
	ProviderArk  = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	AI      AIConfig
	Session SessionConfig
	Games   GamesConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	sessionCfg, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	games, err := loadGamesConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Log: logCfg, AI: ai, Session: sessionCfg, Games: games}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port           string   `envconfig:"PORT" default:"3000"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	Addr           string   `ignored:"true"`
}

func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("server config: %w", err)
	}

	port := strings.TrimSpace(cfg.Port)
	switch {
	case port == "":
		port = "3000"
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	if strings.Contains(port, ":") {
		// 允许直接传入 ":3000" 或 "127.0.0.1:3000"。
		cfg.Addr = port
	} else {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// 日志输出格式。
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func loadLogConfig() (LogConfig, error) {
	var cfg LogConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return LogConfig{}, fmt.Errorf("log config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format != LogFormatJSON && cfg.Format != LogFormatConsole {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q: want json or console", cfg.Format)
	}
	cfg.Level = strings.ToLower(strings.TrimSpace(cfg.Level))
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", cfg.Level, err)
	}
	return cfg, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string `envconfig:"AI_PROVIDER" default:"groq"`

	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqModel   string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GroqBaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`

	ArkAPIKey    string `envconfig:"ARK_API_KEY"`
	ArkAccessKey string `envconfig:"ARK_ACCESS_KEY"`
	ArkSecretKey string `envconfig:"ARK_SECRET_KEY"`
	ArkModel     string `envconfig:"ARK_MODEL"`
	ArkBaseURL   string `envconfig:"ARK_BASE_URL" default:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `envconfig:"ARK_REGION" default:"cn-beijing"`

	Temperature float64       `envconfig:"AI_TEMPERATURE" default:"0.9"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"15s"`
	MaxAttempts uint          `envconfig:"AI_MAX_ATTEMPTS" default:"1"`
	RetryDelay  time.Duration `envconfig:"AI_RETRY_DELAY" default:"500ms"`
}

func loadAIConfig() (AIConfig, error) {
	var cfg AIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AIConfig{}, fmt.Errorf("ai config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.GroqAPIKey = strings.TrimSpace(cfg.GroqAPIKey)
	cfg.ArkAPIKey = strings.TrimSpace(cfg.ArkAPIKey)

	switch {
	case cfg.Provider != ProviderGroq && cfg.Provider != ProviderArk:
		return AIConfig{}, fmt.Errorf("invalid AI_PROVIDER value %q: want groq or ark", cfg.Provider)
	case cfg.Temperature < 0 || cfg.Temperature > 2:
		return AIConfig{}, fmt.Errorf("invalid AI_TEMPERATURE value %v: want 0..2", cfg.Temperature)
	case cfg.Timeout <= 0:
		return AIConfig{}, fmt.Errorf("invalid AI_TIMEOUT value %v", cfg.Timeout)
	case cfg.MaxAttempts < 1:
		return AIConfig{}, fmt.Errorf("invalid AI_MAX_ATTEMPTS value %d: want >= 1", cfg.MaxAttempts)
	}
	return cfg, nil
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	default:
		return c.GroqAPIKey != "" && c.GroqModel != ""
	}
}

// ModelName returns the model of the active provider.
func (c AIConfig) ModelName() string {
	if c.Provider == ProviderArk {
		return c.ArkModel
	}
	return c.GroqModel
}

// JSONModeOptions 返回让当前 provider 输出 JSON 对象所需的模型选项。
func (c AIConfig) JSONModeOptions() []model.Option {
	if c.Provider == ProviderGroq {
		return []model.Option{groq.WithJSONObject()}
	}
	return nil
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%s credentials or model missing", c.Provider)
	}

	switch c.Provider {
	case ProviderArk:
		temperature := float32(c.Temperature)
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.ArkBaseURL,
			Region:      c.ArkRegion,
			APIKey:      c.ArkAPIKey,
			AccessKey:   c.ArkAccessKey,
			SecretKey:   c.ArkSecretKey,
			Model:       c.ArkModel,
			Temperature: &temperature,
		})
	default:
		return groq.NewChatModel(groq.Config{
			APIKey:     c.GroqAPIKey,
			BaseURL:    c.GroqBaseURL,
			Model:      c.GroqModel,
			HTTPClient: &http.Client{Timeout: c.Timeout},
		})
	}
}

// SessionConfig 描述会话存储。
type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"10m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
	RedisURL      string        `envconfig:"REDIS_URL"`
}

func loadSessionConfig() (SessionConfig, error) {
	var cfg SessionConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return SessionConfig{}, fmt.Errorf("session config: %w", err)
	}
	if cfg.TTL <= 0 {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value %v", cfg.TTL)
	}
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	return cfg, nil
}

// GamesConfig 描述各个游戏的回合策略。
type GamesConfig struct {
	QuizQuestions          int `envconfig:"QUIZ_QUESTIONS" default:"5"`
	CharacterRounds        int `envconfig:"CHARACTER_ROUNDS" default:"10"`
	CharacterHintFromRound int `envconfig:"CHARACTER_HINT_FROM_ROUND" default:"7"`
}

func loadGamesConfig() (GamesConfig, error) {
	var cfg GamesConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return GamesConfig{}, fmt.Errorf("games config: %w", err)
	}

	switch {
	case cfg.QuizQuestions < 1 || cfg.QuizQuestions > 20:
		return GamesConfig{}, fmt.Errorf("invalid QUIZ_QUESTIONS value %d: want 1..20", cfg.QuizQuestions)
	case cfg.CharacterRounds < 1:
		return GamesConfig{}, fmt.Errorf("invalid CHARACTER_ROUNDS value %d", cfg.CharacterRounds)
	case cfg.CharacterHintFromRound < 1 || cfg.CharacterHintFromRound > cfg.CharacterRounds:
		return GamesConfig{}, fmt.Errorf("invalid CHARACTER_HINT_FROM_ROUND value %d: want 1..%d",
			cfg.CharacterHintFromRound, cfg.CharacterRounds)
	}
	return cfg, nil
}
