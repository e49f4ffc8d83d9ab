package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
)

const (
	defaultTimezone = "America/Sao_Paulo"

	configPathEnv      = "CONCURSO_TRACKER_CONFIG"
	trackedNameEnv     = "TRACKED_NAME"
	trackedNameAltEnv  = "MEU_NOME"
	callmebotPhoneEnv  = "CALLMEBOT_PHONE"
	callmebotAPIKeyEnv = "CALLMEBOT_APIKEY"
	historyFileEnv     = "HISTORY_FILE"
	databaseDSNEnv     = "DATABASE_DSN"

	cpsBase = "https://urhsistemas.cps.sp.gov.br"
)

// Config holds high-level settings required across the application.
type Config struct {
	TrackedName   string             `yaml:"trackedName"`
	Crawler       CrawlerConfig      `yaml:"crawler"`
	History       HistoryConfig      `yaml:"history"`
	DOE           DOEConfig          `yaml:"doe"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Logging       LoggingConfig      `yaml:"logging"`
	Sources       []SourceConfig     `yaml:"sources"`
}

// CrawlerConfig bounds the listing→detail→document walk.
type CrawlerConfig struct {
	MaxProcessesPerPage int    `yaml:"maxProcessesPerPage"`
	TimeoutSeconds      int    `yaml:"timeoutSeconds"`
	UserAgent           string `yaml:"userAgent"`
}

// Timeout resolves the fetch timeout with its default.
func (c CrawlerConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryConfig selects and parameterizes the history store backend.
type HistoryConfig struct {
	Driver string `yaml:"driver"`
	File   string `yaml:"file"`
	DSN    string `yaml:"dsn"`
}

// DOEConfig describes the DOE SP search API integration.
type DOEConfig struct {
	APIBase    string `yaml:"apiBase"`
	SiteBase   string `yaml:"siteBase"`
	JournalID  string `yaml:"journalId"`
	SearchDays int    `yaml:"searchDays"`
	PageSize   int    `yaml:"pageSize"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	CallMeBot CallMeBotConfig `yaml:"callmebot"`
}

// CallMeBotConfig wires the WhatsApp gateway credentials.
type CallMeBotConfig struct {
	Phone              string `yaml:"phone"`
	APIKey             string `yaml:"apiKey"`
	MinIntervalSeconds int    `yaml:"minIntervalSeconds"`
}

// MinInterval resolves the pause between messages, defaulting to the
// gateway's documented 3 second rate limit.
func (c CallMeBotConfig) MinInterval() time.Duration {
	if c.MinIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.MinIntervalSeconds) * time.Second
}

// SchedulerConfig defines optional in-process recurrence; empty cron
// expression means run once and exit.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig carries the slog level string.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes a single listing page with its tags.
type SourceConfig struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Institution string `yaml:"institution"`
	Type        string `yaml:"type"`
	Status      string `yaml:"status"`
}

// Source converts the YAML shape into the domain model.
func (s SourceConfig) Source() domain.Source {
	return domain.Source{
		Name:        s.Name,
		URL:         s.URL,
		Institution: domain.Institution(s.Institution),
		Type:        domain.ProcessType(s.Type),
		Status:      domain.SourceStatus(s.Status),
	}
}

// DomainSources maps every configured source into the domain model.
func (c Config) DomainSources() []domain.Source {
	sources := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		sources = append(sources, s.Source())
	}
	return sources
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(trackedNameEnv); v != "" {
		c.TrackedName = v
	} else if v := os.Getenv(trackedNameAltEnv); v != "" {
		c.TrackedName = v
	}

	if v := os.Getenv(callmebotPhoneEnv); v != "" {
		c.Notifications.CallMeBot.Phone = v
	}

	if v := os.Getenv(callmebotAPIKeyEnv); v != "" {
		c.Notifications.CallMeBot.APIKey = v
	}

	if v := os.Getenv(historyFileEnv); v != "" {
		c.History.File = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.History.DSN = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.TrackedName != "" {
		base.TrackedName = override.TrackedName
	}

	if override.Crawler.MaxProcessesPerPage > 0 {
		base.Crawler.MaxProcessesPerPage = override.Crawler.MaxProcessesPerPage
	}
	if override.Crawler.TimeoutSeconds > 0 {
		base.Crawler.TimeoutSeconds = override.Crawler.TimeoutSeconds
	}
	if override.Crawler.UserAgent != "" {
		base.Crawler.UserAgent = override.Crawler.UserAgent
	}

	if override.History.Driver != "" {
		base.History.Driver = override.History.Driver
	}
	if override.History.File != "" {
		base.History.File = override.History.File
	}
	if override.History.DSN != "" {
		base.History.DSN = override.History.DSN
	}

	if override.DOE.APIBase != "" {
		base.DOE.APIBase = override.DOE.APIBase
	}
	if override.DOE.SiteBase != "" {
		base.DOE.SiteBase = override.DOE.SiteBase
	}
	if override.DOE.JournalID != "" {
		base.DOE.JournalID = override.DOE.JournalID
	}
	if override.DOE.SearchDays > 0 {
		base.DOE.SearchDays = override.DOE.SearchDays
	}
	if override.DOE.PageSize > 0 {
		base.DOE.PageSize = override.DOE.PageSize
	}

	if override.Notifications.CallMeBot.Phone != "" {
		base.Notifications.CallMeBot.Phone = override.Notifications.CallMeBot.Phone
	}
	if override.Notifications.CallMeBot.APIKey != "" {
		base.Notifications.CallMeBot.APIKey = override.Notifications.CallMeBot.APIKey
	}
	if override.Notifications.CallMeBot.MinIntervalSeconds > 0 {
		base.Notifications.CallMeBot.MinIntervalSeconds = override.Notifications.CallMeBot.MinIntervalSeconds
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Crawler: CrawlerConfig{
			MaxProcessesPerPage: 50,
			TimeoutSeconds:      30,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) " +
				"Chrome/120.0.0.0 Safari/537.36",
		},
		History: HistoryConfig{Driver: "file", File: "history_pdfs.json"},
		DOE: DOEConfig{
			APIBase:    "https://do-api-web-search.doe.sp.gov.br",
			SiteBase:   "https://www.doe.sp.gov.br",
			JournalID:  "ca96256b-6ca1-407f-866e-567ef9430123",
			SearchDays: 30,
			PageSize:   20,
		},
		Scheduler: SchedulerConfig{Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info"},
		Sources:   defaultSources(),
	}
}

// defaultSources enumerates the CPS portal listing pages the tracker watches.
func defaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:        "ETEC – Processo Seletivo Docente – Inscrições Abertas",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/ETEC/PSS/Abertos.aspx",
			Institution: "ETEC", Type: "PSS", Status: "open",
		},
		{
			Name:        "ETEC – Processo Seletivo Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/ETEC/PSS/Andamento.aspx",
			Institution: "ETEC", Type: "PSS", Status: "in-progress",
		},
		{
			Name:        "ETEC – Concurso Público Docente – Inscrições Abertas",
			URL:         cpsBase + "/dgsdad/selecaopublica/ETEC/CPD/Abertos.aspx",
			Institution: "ETEC", Type: "CPD", Status: "open",
		},
		{
			Name:        "ETEC – Concurso Público Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/selecaopublica/ETEC/CPD/emAndamento.aspx",
			Institution: "ETEC", Type: "CPD", Status: "in-progress",
		},
		{
			Name:        "ETEC – Auxiliar de Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/ETEC/Auxiliar/EmAndamento.aspx",
			Institution: "ETEC", Type: "AuxiliarDocente", Status: "in-progress",
		},
		{
			Name:        "FATEC – Processo Seletivo Docente – Inscrições Abertas",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/FATEC/PSS/inscricoesabertas.aspx",
			Institution: "FATEC", Type: "PSS", Status: "open",
		},
		{
			Name:        "FATEC – Processo Seletivo Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/FATEC/ProcessoSeletivo/EmAndamento.aspx",
			Institution: "FATEC", Type: "PSS", Status: "in-progress",
		},
		{
			Name:        "FATEC – Concurso Público Docente – Inscrições Abertas",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/FATEC/CPD/Abertos.aspx",
			Institution: "FATEC", Type: "CPD", Status: "open",
		},
		{
			Name:        "FATEC – Concurso Público Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/FATEC/CPD/emAndamento.aspx",
			Institution: "FATEC", Type: "CPD", Status: "in-progress",
		},
		{
			Name:        "PSSAD – Auxiliar de Docente – Inscrições Abertas",
			URL:         cpsBase + "/dgsdad/SelecaoPublica/PSSAD/Abertos.aspx",
			Institution: "PSSAD", Type: "AuxiliarDocente", Status: "open",
		},
		{
			Name:        "PSSAD – Auxiliar de Docente – Em Andamento",
			URL:         cpsBase + "/dgsdad/selecaopublica/PSSAD/emAndamento.aspx",
			Institution: "PSSAD", Type: "AuxiliarDocente", Status: "in-progress",
		},
	}
}
