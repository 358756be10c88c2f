package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Congress  CongressConfig
	Dataset   DatasetConfig
	Discovery DiscoveryConfig
	Scoring   ScoringConfig
	Server    ServerConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
}

type CongressConfig struct {
	APIKey        string
	Number        int
	Session       int
	BaseURL       string
	RateLimitMS   int
	CooldownMS    int
	TimeoutSec    int
}

type DatasetConfig struct {
	Path          string
	RunStatePath  string
	HistoryPath   string
	HistoryLimit  int
	StatsPath     string
	SponsorsPath  string
	RosterCSVPath string
	TimeZone      string
}

type Committee struct {
	Code string
	Name string
}

type DiscoveryConfig struct {
	Committees        []Committee
	BillTypes         []string
	PageLimit         int
	MaxOffset         int
	DefaultWindowDays int
}

type ScoringConfig struct {
	AutoAddThreshold int
	ReviewThreshold  int
}

type ServerConfig struct {
	Host                 string
	Port                 int
	ReadTimeout          int
	WriteTimeout         int
	MaxRequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type MetricsConfig struct {
	// PushGatewayURL, when set, makes the batch binaries push their run
	// metrics to a Prometheus Pushgateway on completion. Empty disables
	// pushing.
	PushGatewayURL string
}

// ConfigError marks a configuration problem that should abort the
// process before any work starts.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/dcbills")

	viper.SetEnvPrefix("DCBILLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The upstream credential is conventionally set as CONGRESS_API_KEY,
	// matching the name used by api.congress.gov documentation.
	viper.BindEnv("congress.apikey", "CONGRESS_API_KEY", "DCBILLS_CONGRESS_APIKEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// RequireAPIKey returns a ConfigError when no Congress.gov credential is
// configured. Callers exit with a guidance message rather than starting
// a run that would fail on the first request.
func (c *Config) RequireAPIKey() error {
	if c.Congress.APIKey == "" {
		return &ConfigError{Msg: "CONGRESS_API_KEY environment variable not set"}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("congress.number", 119)
	viper.SetDefault("congress.session", 1)
	viper.SetDefault("congress.baseURL", "https://api.congress.gov/v3")
	viper.SetDefault("congress.rateLimitMS", 300)
	viper.SetDefault("congress.cooldownMS", 2000)
	viper.SetDefault("congress.timeoutSec", 30)

	viper.SetDefault("dataset.path", "./data/bills.json")
	viper.SetDefault("dataset.runStatePath", "./data/.discover-last-run.json")
	viper.SetDefault("dataset.historyPath", "./data/bill-status-history.json")
	viper.SetDefault("dataset.historyLimit", 30)
	viper.SetDefault("dataset.statsPath", "./data/stats.json")
	viper.SetDefault("dataset.sponsorsPath", "./data/sponsors.json")
	viper.SetDefault("dataset.rosterCSVPath", "./data/congress_roster_119.csv")
	viper.SetDefault("dataset.timeZone", "America/New_York")

	viper.SetDefault("discovery.committees", []map[string]interface{}{
		{"code": "hsgo10", "name": "House Oversight - DC Subcommittee"},
		{"code": "hsgo00", "name": "House Oversight (parent)"},
		{"code": "ssga00", "name": "Senate HSGAC"},
	})
	viper.SetDefault("discovery.billTypes", []string{"hr", "s", "hjres", "sjres"})
	viper.SetDefault("discovery.pageLimit", 250)
	viper.SetDefault("discovery.maxOffset", 1000)
	viper.SetDefault("discovery.defaultWindowDays", 30)

	// Empirically chosen cut-offs, kept as configuration.
	viper.SetDefault("scoring.autoAddThreshold", 40)
	viper.SetDefault("scoring.reviewThreshold", 20)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.maxRequestsPerMinute", 120)

	viper.SetDefault("metrics.pushGatewayURL", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.outputPath", "stdout")
}
