package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	LLM      LLMConfig      `yaml:"llm"`
	Mongo    MongoConfig    `yaml:"mongo"`
	API      APIConfig      `yaml:"api"`
	Briefing BriefingConfig `yaml:"briefing"`
	Digest   DigestConfig   `yaml:"digest"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig 는 감성 분류 및 매니저 브리핑에 사용하는 텍스트 생성 모델 설정이다.
// API 키는 yaml 에 두지 않고 환경변수(GEMINI_API_KEY / ANTHROPIC_API_KEY)에서만 읽는다.
type LLMConfig struct {
	// Provider 는 "google" 또는 "anthropic" 이다. 비어 있으면 google 로 간주한다.
	Provider  string `yaml:"provider"`
	ModelName string `yaml:"model_name"`

	// TimeoutSeconds 는 LLM 호출 1회에 허용하는 최대 시간이다. 0 이하면 기본값(20초).
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RequestsPerMinute / RequestsPerDay 는 LLM 호출 한도이다. 0 이하면 제한 없음.
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

type MongoConfig struct {
	DBName string `yaml:"db_name"`
}

type APIConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// BriefingConfig 는 매니저 브리핑 캐시의 날짜 기준과 프롬프트 크기를 정한다.
type BriefingConfig struct {
	// UTCOffsetHours 는 "같은 날" 판정에 쓰는 고정 기준 시간대 오프셋이다.
	UTCOffsetHours int `yaml:"utc_offset_hours"`
	MaxSnippets    int `yaml:"max_snippets"`
}

// DigestConfig 는 일일 브리핑을 Slack 채널로 보내는 스케줄 설정이다.
// Schedule 이 비어 있으면 비활성화된다. (예: "0 9 * * *")
type DigestConfig struct {
	Schedule     string `yaml:"schedule"`
	SlackChannel string `yaml:"slack_channel"`
}

const (
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"

	defaultGeminiModel    = "gemini-2.0-flash"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	defaultLLMTimeout     = 20 * time.Second
)

// ProviderName returns the normalized provider, defaulting to google.
func (c LLMConfig) ProviderName() string {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	if p == "" {
		return ProviderGoogle
	}
	return p
}

// Model returns the configured model or the provider default.
func (c LLMConfig) Model() string {
	if c.ModelName != "" {
		return c.ModelName
	}
	if c.ProviderName() == ProviderAnthropic {
		return defaultAnthropicModel
	}
	return defaultGeminiModel
}

func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultLLMTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// APIKey returns the credential for the configured provider from the environment.
func (c LLMConfig) APIKey() string {
	if c.ProviderName() == ProviderAnthropic {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("GEMINI_API_KEY")
}

// CredentialPresent 는 외부 분류기를 사용할지 결정하는 유일한 기준이다.
func (c LLMConfig) CredentialPresent() bool {
	return strings.TrimSpace(c.APIKey()) != ""
}

// Location returns the fixed reference zone used for same-day bucketing.
func (c BriefingConfig) Location() *time.Location {
	return time.FixedZone("briefing", c.UTCOffsetHours*60*60)
}

func (c BriefingConfig) Snippets() int {
	if c.MaxSnippets <= 0 {
		return 10
	}
	return c.MaxSnippets
}

func (c APIConfig) ListenAddr() string {
	if c.Addr == "" {
		return ":8080"
	}
	return c.Addr
}

func (c MongoConfig) Database() string {
	if c.DBName == "" {
		return "savoriq"
	}
	return c.DBName
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes a config.yaml payload.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
