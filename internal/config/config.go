package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/xavierca1/contactsync/internal/entity"
	"github.com/xavierca1/contactsync/internal/infra/httpclient"
)

// Config is built once at process start and passed by value into the clients
// and the use case. Tokens only ever come from the environment.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Freshdesk FreshdeskConfig `yaml:"freshdesk"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Alert     AlertConfig     `yaml:"alert"`
}

type GitHubConfig struct {
	Token   string `yaml:"-"`
	BaseURL string `yaml:"base_url"`
}

type FreshdeskConfig struct {
	Token     string `yaml:"-"`
	Subdomain string `yaml:"subdomain"`
	BaseURL   string `yaml:"base_url"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EventsConfig enables the contact-synced event when RabbitMQURL is set.
type EventsConfig struct {
	RabbitMQURL string `yaml:"-"`
}

// MetricsConfig enables the Pushgateway push when PushgatewayURL is set.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// AlertConfig enables the failure e-mail when Host and To are set.
type AlertConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	User     string   `yaml:"user"`
	Password string   `yaml:"-"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

func (a AlertConfig) Enabled() bool {
	return a.Host != "" && len(a.To) > 0
}

// Options carry what the command line knows before the config is loaded.
type Options struct {
	File      string        // optional YAML file
	Subdomain string        // positional argument
	Timeout   time.Duration // --timeout, zero means unset
	Debug     bool
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		HTTP:    HTTPConfig{Timeout: httpclient.DefaultTimeout},
		Log:     LogConfig{Level: "info", Format: "console"},
		Metrics: MetricsConfig{Job: "contactsync"},
		Alert:   AlertConfig{Port: 587},
	}
}

// Load merges defaults, the optional YAML file, the environment (with .env
// support) and command line options, in that order, then validates.
func Load(opts Options) (Config, error) {
	// Missing .env is fine: the real environment is used.
	_ = godotenv.Load()

	cfg := Default()

	if opts.File != "" {
		if err := loadFile(opts.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if opts.Subdomain != "" {
		cfg.Freshdesk.Subdomain = opts.Subdomain
	}
	if opts.Timeout > 0 {
		cfg.HTTP.Timeout = opts.Timeout
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &entity.ConfigurationError{Key: "config file", Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &entity.ConfigurationError{Key: "config file", Message: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	cfg.Freshdesk.Token = os.Getenv("FRESHDESK_TOKEN")
	cfg.Events.RabbitMQURL = os.Getenv("RABBITMQ_URL")
	cfg.Alert.Password = os.Getenv("MAIL_PASS")

	setString(&cfg.GitHub.BaseURL, "GITHUB_API_URL")
	setString(&cfg.Freshdesk.BaseURL, "FRESHDESK_BASE_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Metrics.PushgatewayURL, "PUSHGATEWAY_URL")
	setString(&cfg.Alert.Host, "MAIL_HOST")
	setString(&cfg.Alert.User, "MAIL_USER")
	setString(&cfg.Alert.From, "ALERT_EMAIL_FROM")

	if v := os.Getenv("ALERT_EMAIL_TO"); v != "" {
		cfg.Alert.To = splitList(v)
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &entity.ConfigurationError{Key: "HTTP_TIMEOUT", Message: "must be a duration such as 10s"}
		}
		cfg.HTTP.Timeout = d
	}

	if v := os.Getenv("MAIL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &entity.ConfigurationError{Key: "MAIL_PORT", Message: "must be a number"}
		}
		cfg.Alert.Port = port
	}

	return nil
}

// Freshdesk account names, without the .freshdesk.com suffix.
var subdomainPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9_-]*[A-Za-z0-9])?$`)

// Validate reports the first missing or invalid setting.
func (c Config) Validate() error {
	if c.GitHub.Token == "" {
		return &entity.ConfigurationError{Key: "GITHUB_TOKEN", Message: "missing $GITHUB_TOKEN"}
	}
	if c.Freshdesk.Token == "" {
		return &entity.ConfigurationError{Key: "FRESHDESK_TOKEN", Message: "missing $FRESHDESK_TOKEN"}
	}
	if strings.TrimSpace(c.Freshdesk.Subdomain) == "" {
		return &entity.ConfigurationError{Key: "subdomain", Message: "freshdesk subdomain is required"}
	}
	if !subdomainPattern.MatchString(c.Freshdesk.Subdomain) {
		return &entity.ConfigurationError{Key: "subdomain", Message: `must be a bare account name such as "acme"`}
	}
	if c.HTTP.Timeout <= 0 {
		return &entity.ConfigurationError{Key: "http.timeout", Message: "must be positive"}
	}
	if c.Alert.Host != "" && c.Alert.From == "" {
		return &entity.ConfigurationError{Key: "ALERT_EMAIL_FROM", Message: "is required when MAIL_HOST is set"}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
