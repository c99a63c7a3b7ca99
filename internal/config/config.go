package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/quote-studio/internal/fonts"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
}

type AuthConfig struct {
	// AccessSecret enables bearer token auth when set.
	AccessSecret string
}

type CompanyConfig struct {
	Name           string
	Representative string
	BusinessNumber string
	Address        string
	Phone          string
	Email          string
	Logo           string
}

type DocumentConfig struct {
	Language        string
	DefaultStyle    string
	Engine          string
	GenerateTimeout time.Duration
}

type FontConfig struct {
	RegularURL   string
	BoldURL      string
	RegularPath  string
	BoldPath     string
	FetchTimeout time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Company     CompanyConfig
	Document    DocumentConfig
	Fonts       FontConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("FONT_REGULAR_URL", fonts.DefaultRegularURL)
	v.SetDefault("FONT_BOLD_URL", fonts.DefaultBoldURL)
	v.SetDefault("FONT_FETCH_TIMEOUT", "15s")

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Company: CompanyConfig{
			Name:           v.GetString("COMPANY_NAME"),
			Representative: v.GetString("COMPANY_REPRESENTATIVE"),
			BusinessNumber: v.GetString("COMPANY_BUSINESS_NUMBER"),
			Address:        v.GetString("COMPANY_ADDRESS"),
			Phone:          v.GetString("COMPANY_PHONE"),
			Email:          v.GetString("COMPANY_EMAIL"),
			Logo:           v.GetString("COMPANY_LOGO"),
		},
		Document: DocumentConfig{
			Language:        strings.ToLower(v.GetString("DOC_LANGUAGE")),
			DefaultStyle:    strings.ToLower(v.GetString("DOC_DEFAULT_STYLE")),
			Engine:          strings.ToLower(v.GetString("PDF_ENGINE")),
			GenerateTimeout: v.GetDuration("GENERATE_TIMEOUT"),
		},
		Fonts: FontConfig{
			RegularURL:   v.GetString("FONT_REGULAR_URL"),
			BoldURL:      v.GetString("FONT_BOLD_URL"),
			RegularPath:  v.GetString("FONT_REGULAR_PATH"),
			BoldPath:     v.GetString("FONT_BOLD_PATH"),
			FetchTimeout: v.GetDuration("FONT_FETCH_TIMEOUT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.CORSAllowedOrigins) == 0 {
		cfg.HTTP.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "웹개발회사"
	}
	if cfg.Document.Language == "" {
		cfg.Document.Language = "ko"
	}
	if cfg.Document.DefaultStyle == "" {
		cfg.Document.DefaultStyle = "modern"
	}
	if cfg.Document.Engine == "" {
		cfg.Document.Engine = "gofpdf"
	}
	if cfg.Fonts.RegularURL == "" && cfg.Fonts.RegularPath == "" {
		cfg.Fonts.RegularURL = fonts.DefaultRegularURL
		cfg.Fonts.BoldURL = fonts.DefaultBoldURL
	}
	if cfg.Fonts.FetchTimeout <= 0 {
		cfg.Fonts.FetchTimeout = 15 * time.Second
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", cfg.HTTP.Port)
	}
	switch cfg.Document.Language {
	case "ko", "en":
	default:
		return fmt.Errorf("DOC_LANGUAGE must be ko or en, got %q", cfg.Document.Language)
	}
	switch cfg.Document.DefaultStyle {
	case "modern", "classic", "colorful", "business":
	default:
		return fmt.Errorf("DOC_DEFAULT_STYLE %q is not a known style", cfg.Document.DefaultStyle)
	}
	switch cfg.Document.Engine {
	case "gofpdf", "maroto":
	default:
		return fmt.Errorf("PDF_ENGINE must be gofpdf or maroto, got %q", cfg.Document.Engine)
	}
	if cfg.Document.GenerateTimeout < 0 {
		return fmt.Errorf("GENERATE_TIMEOUT must not be negative")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
