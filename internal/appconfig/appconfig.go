package appconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultTemplate string

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	BasePath string         `yaml:"basePath"`
	DocsPath string         `yaml:"docsPath"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	CORS     CORSConfig     `yaml:"cors"`
	Site     SiteConfig     `yaml:"site"`
	Contact  ContactConfig  `yaml:"contact"`
	AWS      AWSConfig      `yaml:"aws"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// AuthConfig defines how member tokens are signed
type AuthConfig struct {
	TokenSecret string `yaml:"tokenSecret"`
	TokenTTL    string `yaml:"tokenTTL"`
	Issuer      string `yaml:"issuer"`
}

// RedisConfig points at the revoked-token store. An empty URL keeps revocations in memory.
type RedisConfig struct {
	URL string `yaml:"url"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowedOrigins"`
}

// SiteConfig configures the server-rendered marketing site
type SiteConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	APIURL        string `yaml:"apiURL"`
	SessionSecret string `yaml:"sessionSecret"`
	CookieName    string `yaml:"cookieName"`
	ContentPath   string `yaml:"contentPath"`
}

// ContactConfig defines where contact form notifications are sent
type ContactConfig struct {
	Sender    string `yaml:"sender"`
	Recipient string `yaml:"recipient"`
}

type AWSConfig struct {
	Region string `yaml:"region"`
}

// TTL returns the token lifetime, falling back to 24h on a missing or bad value.
func (a AuthConfig) TTL() time.Duration {
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Origins splits the comma-separated origin list.
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// EmailEnabled reports whether contact messages should be forwarded by email.
func (c ContactConfig) EmailEnabled() bool {
	return c.Sender != "" && c.Recipient != ""
}

// LoadConfig loads and parses the configuration from a given file path.
// An empty path selects the embedded default, which is driven by environment variables.
func LoadConfig(path string) (*Config, error) {
	// A missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	text := defaultTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		text = string(raw)
	}

	return parse(text, loadEnvVars())
}

func parse(text string, envVars map[string]string) (*Config, error) {
	tmpl, err := template.New("config").Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file template: %w", err)
	}

	// Execute the template with environment variables
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envVars); err != nil {
		return nil, fmt.Errorf("error executing config file template: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if config.BasePath == "" {
		config.BasePath = "/api"
	}
	if config.DocsPath == "" {
		config.DocsPath = path.Join(config.BasePath, "docs")
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}
	if config.Site.CookieName == "" {
		config.Site.CookieName = "est-session"
	}

	return &config, nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
