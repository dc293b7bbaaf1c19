// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Serp      SerpConfig      `yaml:"serp" mapstructure:"serp"`
	Places    PlacesConfig    `yaml:"places" mapstructure:"places"`
	IndiaMart IndiaMartConfig `yaml:"indiamart" mapstructure:"indiamart"`
	PageSpeed PageSpeedConfig `yaml:"pagespeed" mapstructure:"pagespeed"`
	Twilio    TwilioConfig    `yaml:"twilio" mapstructure:"twilio"`
	SMTP      SMTPConfig      `yaml:"smtp" mapstructure:"smtp"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Enrich    EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	Outreach  OutreachConfig  `yaml:"outreach" mapstructure:"outreach"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the lead store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// SerpConfig holds SerpAPI credentials and tuning.
type SerpConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Country     string `yaml:"country" mapstructure:"country"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// PlacesConfig holds Google Places API settings.
type PlacesConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// IndiaMartConfig holds IndiaMART Lead Manager API credentials.
type IndiaMartConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Mobile  string `yaml:"mobile" mapstructure:"mobile"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PageSpeedConfig holds Google PageSpeed Insights settings.
type PageSpeedConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// TwilioConfig holds Twilio WhatsApp transport credentials.
type TwilioConfig struct {
	AccountSID   string `yaml:"account_sid" mapstructure:"account_sid"`
	AuthToken    string `yaml:"auth_token" mapstructure:"auth_token"`
	WhatsAppFrom string `yaml:"whatsapp_from" mapstructure:"whatsapp_from"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
}

// SMTPConfig holds the email transport settings.
type SMTPConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
}

// ScrapeConfig configures the lead sourcing run.
type ScrapeConfig struct {
	Categories       []string `yaml:"categories" mapstructure:"categories"`
	Cities           []string `yaml:"cities" mapstructure:"cities"`
	MaxPerAdapter    int      `yaml:"max_per_adapter" mapstructure:"max_per_adapter"`
	DelayMillis      int      `yaml:"delay_millis" mapstructure:"delay_millis"`
	Score            bool     `yaml:"score" mapstructure:"score"`
	ScoreLimit       int      `yaml:"score_limit" mapstructure:"score_limit"`
	PeopleLimit      int      `yaml:"people_limit" mapstructure:"people_limit"`
	SeedFile         string   `yaml:"seed_file" mapstructure:"seed_file"`
	DirectoryDomains []string `yaml:"directory_domains" mapstructure:"directory_domains"`
}

// EnrichConfig configures the contact enrichment cascade.
type EnrichConfig struct {
	Limit            int      `yaml:"limit" mapstructure:"limit"`
	DelayMillis      int      `yaml:"delay_millis" mapstructure:"delay_millis"`
	ProviderTimeout  int      `yaml:"provider_timeout_secs" mapstructure:"provider_timeout_secs"`
	EmailDenyList    []string `yaml:"email_deny_list" mapstructure:"email_deny_list"`
	DirectoryDomain  string   `yaml:"directory_domain" mapstructure:"directory_domain"`
	ContactPageLimit int      `yaml:"contact_page_limit" mapstructure:"contact_page_limit"`
	RulesFile        string   `yaml:"rules_file" mapstructure:"rules_file"`
}

// OutreachConfig configures the outreach scheduler.
type OutreachConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"` // false = simulation mode
	Channel      string `yaml:"channel" mapstructure:"channel"` // "whatsapp" or "email"
	Agency       string `yaml:"agency" mapstructure:"agency"`
	DailyCap     int    `yaml:"daily_cap" mapstructure:"daily_cap"`
	FollowupDays []int  `yaml:"followup_days" mapstructure:"followup_days"`
	DelayMillis  int    `yaml:"delay_millis" mapstructure:"delay_millis"`
}

// ServerConfig configures the HTTP trigger surface.
type ServerConfig struct {
	Port     int    `yaml:"port" mapstructure:"port"`
	CronSpec string `yaml:"cron_spec" mapstructure:"cron_spec"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SendDelay returns the configured inter-message pacing interval.
func (c OutreachConfig) SendDelay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// Delay returns the configured inter-lead pacing interval for enrichment.
func (c EnrichConfig) Delay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// Delay returns the configured inter-request pacing interval for sourcing.
func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AISALES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "leads.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cron_spec", "0 9 * * *")
	v.SetDefault("serp.base_url", "https://serpapi.com")
	v.SetDefault("serp.country", "in")
	v.SetDefault("serp.timeout_secs", 20)
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("places.timeout_secs", 10)
	v.SetDefault("indiamart.base_url", "https://mapi.indiamart.com")
	v.SetDefault("pagespeed.base_url", "https://www.googleapis.com/pagespeedonline/v5")
	v.SetDefault("pagespeed.timeout_secs", 60)
	v.SetDefault("twilio.base_url", "https://api.twilio.com/2010-04-01")
	v.SetDefault("twilio.whatsapp_from", "whatsapp:+14155238886")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("scrape.categories", []string{"boutiques", "salons", "restaurants", "gyms", "coaching classes"})
	v.SetDefault("scrape.cities", []string{"Mumbai", "Delhi", "Bangalore"})
	v.SetDefault("scrape.max_per_adapter", 50)
	v.SetDefault("scrape.delay_millis", 1000)
	v.SetDefault("scrape.score_limit", 25)
	v.SetDefault("scrape.people_limit", 15)
	v.SetDefault("scrape.directory_domains", []string{
		"indiamart", "justdial", "tradeindia", "facebook", "instagram",
		"linkedin", "twitter", "youtube", "wikipedia", "quora",
		"amazon", "flipkart", "google",
	})
	v.SetDefault("enrich.limit", 30)
	v.SetDefault("enrich.delay_millis", 2000)
	v.SetDefault("enrich.provider_timeout_secs", 10)
	v.SetDefault("enrich.directory_domain", "justdial.com")
	v.SetDefault("enrich.contact_page_limit", 2)
	v.SetDefault("enrich.email_deny_list", []string{
		"noreply", "no-reply", "example", "test@", "privacy", "legal",
		"abuse", "support@shopify", "wordpress", "woocommerce",
		"justdial", "indiamart",
	})
	v.SetDefault("outreach.enabled", false)
	v.SetDefault("outreach.channel", "whatsapp")
	v.SetDefault("outreach.daily_cap", 20)
	v.SetDefault("outreach.followup_days", []int{2, 5, 10})
	v.SetDefault("outreach.delay_millis", 2000)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
