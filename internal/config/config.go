package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/anythingboes/studio-chat/internal/service/answer"
)

// Config aggregates every setting the binaries read.
type Config struct {
	API    ServerConfig
	Widget WidgetConfig
	AI     AIConfig
	Log    LogConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	api, err := loadServerConfig("API_PORT", "3000")
	if err != nil {
		return nil, err
	}

	widget, err := loadWidgetConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{API: api, Widget: widget, AI: ai, Log: loadLogConfig()}, nil
}

// ServerConfig describes one HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig resolves the listen address from a port variable.
func loadServerConfig(key, defaultPort string) (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv(key))
	if port == "" {
		port = defaultPort
	}

	origins := parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"})

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as given.
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid %s value: %q", key, port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// WidgetConfig describes the chat widget and its answering endpoint.
type WidgetConfig struct {
	Server         ServerConfig
	Mode           answer.Mode
	APIBaseURL     string
	DevOrigin      string
	BackendURL     string
	RequestTimeout time.Duration
}

// Development reports whether the widget proxies /api to a local backend.
func (c WidgetConfig) Development() bool {
	return c.Mode == answer.ModeDevelopment
}

// AnswerBaseURL resolves the absolute base the controller posts to.
func (c WidgetConfig) AnswerBaseURL() (string, error) {
	return answer.ResolveBaseURL(c.APIBaseURL, c.DevOrigin)
}

func loadWidgetConfig() (WidgetConfig, error) {
	server, err := loadServerConfig("WIDGET_PORT", "8080")
	if err != nil {
		return WidgetConfig{}, err
	}

	mode := answer.BuildMode()
	if raw := strings.TrimSpace(os.Getenv("CHAT_MODE")); raw != "" {
		mode, err = answer.ParseMode(raw)
		if err != nil {
			return WidgetConfig{}, fmt.Errorf("invalid CHAT_MODE value: %w", err)
		}
	}

	timeoutSeconds := 30
	if timeout, err := parseOptionalIntEnv("CHAT_REQUEST_TIMEOUT"); err != nil {
		return WidgetConfig{}, err
	} else if timeout != nil {
		if *timeout < 1 {
			return WidgetConfig{}, fmt.Errorf("invalid CHAT_REQUEST_TIMEOUT value %d: must be positive", *timeout)
		}
		timeoutSeconds = *timeout
	}

	return WidgetConfig{
		Server:         server,
		Mode:           mode,
		APIBaseURL:     getEnvOrDefault("CHAT_API_URL", answer.DefaultBaseURL(mode)),
		DevOrigin:      getEnvOrDefault("CHAT_DEV_ORIGIN", localOrigin(server.Addr)),
		BackendURL:     getEnvOrDefault("CHAT_BACKEND_URL", "http://localhost:3000"),
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// localOrigin maps a listen address to the URL the widget itself is reachable at.
func localOrigin(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

// AIConfig holds the LLM responder settings.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	PersonaID   string
	LLMEnabled  bool
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.LLMEnabled && c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_API_KEY and Model, or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	llmEnabled, err := parseBoolEnv("AI_LLM_ENABLED", true)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		PersonaID:   getEnvOrDefault("AI_PERSONA", "boes-bot"),
		LLMEnabled:  llmEnabled,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
