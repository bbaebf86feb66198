package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables event
// publishing (the pipeline falls back to a no-op publisher).
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// TelemetryConfig holds the external receiver endpoints
type TelemetryConfig struct {
	AircraftURL string        `mapstructure:"aircraft_url"`
	StatsURL    string        `mapstructure:"stats_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// RecorderJobConfig holds position recorder tunables
type RecorderJobConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// FlightBuilderJobConfig holds flight segmentation tunables
type FlightBuilderJobConfig struct {
	Interval           time.Duration `mapstructure:"interval"`
	Lookback           time.Duration `mapstructure:"lookback"`
	GapThreshold       time.Duration `mapstructure:"gap_threshold"`
	DedupTolerance     time.Duration `mapstructure:"dedup_tolerance"`
	DownsampleInterval time.Duration `mapstructure:"downsample_interval"`
	AltitudeThreshold  int           `mapstructure:"altitude_threshold"`
	WorkerPoolSize     int           `mapstructure:"worker_pool_size"`
}

// AggregatorJobConfig holds liveness aggregator tunables
type AggregatorJobConfig struct {
	Interval         time.Duration `mapstructure:"interval"`
	OfflineThreshold time.Duration `mapstructure:"offline_threshold"`
}

// ScorerJobConfig holds scoring and ranking tunables
type ScorerJobConfig struct {
	Interval           time.Duration `mapstructure:"interval"`
	SnapshotInterval   time.Duration `mapstructure:"snapshot_interval"`
	UptimeWindow       time.Duration `mapstructure:"uptime_window"`
	ExpectedSnapshots  int           `mapstructure:"expected_snapshots"`
	Retention          time.Duration `mapstructure:"retention"`
	UptimeWeight       float64       `mapstructure:"uptime_weight"`
	MessageRateWeight  float64       `mapstructure:"message_rate_weight"`
	PositionRateWeight float64       `mapstructure:"position_rate_weight"`
	AircraftWeight     float64       `mapstructure:"aircraft_weight"`
	MessageRateTarget  float64       `mapstructure:"message_rate_target"`
	PositionRateTarget float64       `mapstructure:"position_rate_target"`
	AircraftTarget     float64       `mapstructure:"aircraft_target"`
}

// RecorderConfig holds configuration for the recorder binary
type RecorderConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Telemetry  TelemetryConfig   `mapstructure:"telemetry"`
	Recorder   RecorderJobConfig `mapstructure:"recorder"`
}

// FlightBuilderConfig holds configuration for the flight-builder binary
type FlightBuilderConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Database      DatabaseConfig         `mapstructure:"database"`
	NATS          NATSConfig             `mapstructure:"nats"`
	FlightBuilder FlightBuilderJobConfig `mapstructure:"flight_builder"`
}

// AggregatorConfig holds configuration for the aggregator binary
type AggregatorConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig      `mapstructure:"database"`
	NATS       NATSConfig          `mapstructure:"nats"`
	Telemetry  TelemetryConfig     `mapstructure:"telemetry"`
	Aggregator AggregatorJobConfig `mapstructure:"aggregator"`
}

// ScorerConfig holds configuration for the scorer binary
type ScorerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Scorer     ScorerJobConfig `mapstructure:"scorer"`
}

// LoadRecorderConfig loads configuration for the recorder binary
func LoadRecorderConfig(configFile string, envPath string) (*RecorderConfig, error) {
	v := configureViper("recorder", configFile, envPath)

	setDatabaseDefaults(v)
	setTelemetryDefaults(v)
	v.SetDefault("recorder.poll_interval", "30s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RecorderConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadFlightBuilderConfig loads configuration for the flight-builder binary
func LoadFlightBuilderConfig(configFile string, envPath string) (*FlightBuilderConfig, error) {
	v := configureViper("flight-builder", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v, "flight-builder")
	v.SetDefault("flight_builder.interval", "5m")
	v.SetDefault("flight_builder.lookback", "30m")
	v.SetDefault("flight_builder.gap_threshold", "15m")
	v.SetDefault("flight_builder.dedup_tolerance", "60s")
	v.SetDefault("flight_builder.downsample_interval", "30s")
	v.SetDefault("flight_builder.altitude_threshold", 500)
	v.SetDefault("flight_builder.worker_pool_size", 8)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config FlightBuilderConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadAggregatorConfig loads configuration for the aggregator binary
func LoadAggregatorConfig(configFile string, envPath string) (*AggregatorConfig, error) {
	v := configureViper("aggregator", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v, "aggregator")
	setTelemetryDefaults(v)
	v.SetDefault("aggregator.interval", "1m")
	v.SetDefault("aggregator.offline_threshold", "5m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config AggregatorConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadScorerConfig loads configuration for the scorer binary
func LoadScorerConfig(configFile string, envPath string) (*ScorerConfig, error) {
	v := configureViper("scorer", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("scorer.interval", "1h")
	v.SetDefault("scorer.snapshot_interval", "1h")
	v.SetDefault("scorer.uptime_window", "24h")
	v.SetDefault("scorer.expected_snapshots", 24)
	v.SetDefault("scorer.retention", "720h") // 30 days
	v.SetDefault("scorer.uptime_weight", 0.30)
	v.SetDefault("scorer.message_rate_weight", 0.25)
	v.SetDefault("scorer.position_rate_weight", 0.25)
	v.SetDefault("scorer.aircraft_weight", 0.20)
	v.SetDefault("scorer.message_rate_target", 1000)
	v.SetDefault("scorer.position_rate_target", 500)
	v.SetDefault("scorer.aircraft_target", 50)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ScorerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper, service string) {
	v.SetDefault("nats.stream_name", "FEEDER_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", service)
}

func setTelemetryDefaults(v *viper.Viper) {
	v.SetDefault("telemetry.aircraft_url", "http://localhost:8080/data/aircraft.json")
	v.SetDefault("telemetry.stats_url", "http://localhost:8080/data/stats.json")
	v.SetDefault("telemetry.http_timeout", "10s")
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	return nil
}

// configureViper sets up a viper instance for a service
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(service)
		v.SetConfigType("yaml")
		v.AddConfigPath("config/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	return v
}

// bindEnvs binds well-known keys so AutomaticEnv sees them even without a
// config file entry
func bindEnvs(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Telemetry feed
		"telemetry.aircraft_url",
		"telemetry.stats_url",
		"telemetry.http_timeout",
		// Job tunables
		"recorder.poll_interval",
		"flight_builder.interval",
		"flight_builder.lookback",
		"flight_builder.gap_threshold",
		"flight_builder.dedup_tolerance",
		"flight_builder.downsample_interval",
		"flight_builder.altitude_threshold",
		"flight_builder.worker_pool_size",
		"aggregator.interval",
		"aggregator.offline_threshold",
		"scorer.interval",
		"scorer.snapshot_interval",
		"scorer.uptime_window",
		"scorer.expected_snapshots",
		"scorer.retention",
		"scorer.uptime_weight",
		"scorer.message_rate_weight",
		"scorer.position_rate_weight",
		"scorer.aircraft_weight",
		"scorer.message_rate_target",
		"scorer.position_rate_target",
		"scorer.aircraft_target",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
