package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	Concurrency int    `koanf:"concurrency" validate:"required,min=1"`
	BodyLimit   int    `koanf:"body_limit" validate:"required,min=1"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
	Fatal LogLevel = "fatal"
	Panic LogLevel = "panic"
)

type Module string

const (
	ModuleMatcher Module = "matcher"
	ModuleGemini  Module = "gemini"
	ModuleLocal   Module = "local"
	ModuleCatalog Module = "catalog"
	ModuleBatch   Module = "batch"
	ModuleS3      Module = "s3"
	ModuleServer  Module = "server"
	ModuleSetting Module = "setting"
	ModuleHealth  Module = "health"
)

const (
	BackendGemini = "gemini"
	BackendLocal  = "local"
)

// ErrMissingCredential is returned by Init when the hosted backend is
// selected and no API key could be found.
var ErrMissingCredential = errors.New("gemini api key not found (set GOOGLE_API_KEY or APP_GEMINI_KEY, e.g. in .env)")

type matcherConfig struct {
	Backend        string `koanf:"backend" validate:"required,oneof=gemini local"`
	Catalog        string `koanf:"catalog"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"min=0"`
}

type geminiConfig struct {
	Key   string `koanf:"key"`
	Model string `koanf:"model" validate:"required"`
}

type localConfig struct {
	BaseURL   string `koanf:"base_url" validate:"required,url"`
	Model     string `koanf:"model" validate:"required"`
	APIKey    string `koanf:"api_key"`
	MaxTokens int    `koanf:"max_tokens" validate:"required,min=1"`
}

type S3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type Config struct {
	Server   serverConfig  `koanf:"server"`
	LogLevel LogLevel      `koanf:"log_level" validate:"omitempty,oneof=debug info warn error fatal panic"`
	Matcher  matcherConfig `koanf:"matcher"`
	Gemini   geminiConfig  `koanf:"gemini"`
	Local    localConfig   `koanf:"local"`
	S3       S3Config      `koanf:"s3"`
}

var defaultConfig = Config{
	Server: serverConfig{
		Port:        8000,
		Concurrency: 64,
		BodyLimit:   1 << 20,
		AppName:     "texture-matcher",
	},
	LogLevel: Info,
	Matcher: matcherConfig{
		Backend:        BackendGemini,
		TimeoutSeconds: 60,
	},
	Gemini: geminiConfig{
		Key:   "",
		Model: "gemini-2.0-flash",
	},
	Local: localConfig{
		BaseURL:   "http://localhost:11434/v1",
		Model:     "llama3.1:8b",
		APIKey:    "ollama",
		MaxTokens: 256,
	},
	S3: S3Config{
		Region: "us-east-1",
	},
}

// sections lists the top-level keys that hold nested blocks, so that
// APP_LOCAL_MAX_TOKENS maps to local.max_tokens and APP_LOG_LEVEL stays log_level.
var sections = []string{"server", "matcher", "gemini", "local", "s3"}

var Cfg = defaultConfig

// Default returns a copy of the built-in defaults.
func Default() Config {
	return defaultConfig
}

// Init loads .env, the YAML file at path and APP_* environment variables
// on top of the defaults, validates the result and stores it in Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load is Init without touching Cfg.
func Load(path string) (Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with dotted keys (e.g. "matcher.backend") set
// after every other source, for command-line flags.
func LoadWithOverrides(path string, overrides map[string]any) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%v: load .env: %w", ModuleSetting, err)
	}

	k := koanf.New(".")
	cfg := defaultConfig

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%v: read %s: %w", ModuleSetting, path, err)
		}
	}

	// env APP_SERVER_PORT -> server.port
	if err := k.Load(env.Provider("APP_", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("%v: read env: %w", ModuleSetting, err)
	}

	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("%v: override %s: %w", ModuleSetting, key, err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%v: unmarshal config: %w", ModuleSetting, err)
	}

	if cfg.Gemini.Key == "" {
		cfg.Gemini.Key = os.Getenv("GOOGLE_API_KEY")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct tags and the backend-specific credential rule.
func Validate(cfg Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var sb strings.Builder
			sb.WriteString(fmt.Sprintf("%v: config validation failed:", ModuleSetting))
			for _, e := range errs {
				sb.WriteString(fmt.Sprintf("\n  • %s: failed '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value()))
			}
			return errors.New(sb.String())
		}
		return fmt.Errorf("%v: config validation failed: %w", ModuleSetting, err)
	}

	if cfg.Matcher.Backend == BackendGemini && strings.TrimSpace(cfg.Gemini.Key) == "" {
		return ErrMissingCredential
	}
	return nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}
