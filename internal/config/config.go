// Package config loads, validates and saves carbonfocus configuration.
//
// Configuration lives in $CARBONFOCUS_HOME/config.yaml (default
// ~/.carbonfocus/config.yaml). Environment variables override file values,
// and CLI flags override both.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonfocus/internal/factors"
	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/logging"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Limits for output precision.
const (
	MinPrecision     = 0
	MaxPrecision     = 6
	DefaultPrecision = 2
)

// Server defaults.
const (
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultShutdownSeconds = 10
	DefaultRateLimitRPS    = 50.0
	DefaultRateLimitBurst  = 100
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvHome           = "CARBONFOCUS_HOME"
	EnvOutputFormat   = "CARBONFOCUS_OUTPUT_FORMAT"
	EnvDefaultCountry = "CARBONFOCUS_DEFAULT_COUNTRY"
	EnvServerAddr     = "CARBONFOCUS_SERVER_ADDR"
	EnvLogLevel       = "CARBONFOCUS_LOG_LEVEL"
	EnvLogFormat      = "CARBONFOCUS_LOG_FORMAT"
)

const outputTypeFile = "file"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnknownKey indicates a dotted configuration key that does not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full configuration document.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Server   ServerConfig   `yaml:"server"`

	configPath string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// DefaultsConfig holds the starting values offered by input surfaces.
type DefaultsConfig struct {
	Country               string  `yaml:"country"`
	DailyDistanceKm       float64 `yaml:"daily_distance_km"`
	MonthlyElectricityKWh float64 `yaml:"monthly_electricity_kwh"`
	WeeklyWasteKg         float64 `yaml:"weekly_waste_kg"`
	MealsPerDay           int     `yaml:"meals_per_day"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr                   string  `yaml:"addr"`
	ShutdownTimeoutSeconds int     `yaml:"shutdown_timeout_seconds"`
	RateLimitRPS           float64 `yaml:"rate_limit_rps"`
	RateLimitBurst         int     `yaml:"rate_limit_burst"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means clients are keyed on the
	// peer address only.
	TrustedProxies []string `yaml:"trusted_proxies,omitempty"`
}

// Input converts the defaults section to a calculator input.
func (d DefaultsConfig) Input() footprint.Input {
	return footprint.Input{
		Country:               d.Country,
		DailyDistanceKm:       d.DailyDistanceKm,
		MonthlyElectricityKWh: d.MonthlyElectricityKWh,
		WeeklyWasteKg:         d.WeeklyWasteKg,
		MealsPerDay:           d.MealsPerDay,
	}
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	in := footprint.DefaultInput(footprint.DefaultCountry)
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Defaults: DefaultsConfig{
			Country:               in.Country,
			DailyDistanceKm:       in.DailyDistanceKm,
			MonthlyElectricityKWh: in.MonthlyElectricityKWh,
			WeeklyWasteKg:         in.WeeklyWasteKg,
			MealsPerDay:           in.MealsPerDay,
		},
		Server: ServerConfig{
			Addr:                   DefaultServerAddr,
			ShutdownTimeoutSeconds: DefaultShutdownSeconds,
			RateLimitRPS:           DefaultRateLimitRPS,
			RateLimitBurst:         DefaultRateLimitBurst,
		},
	}
}

// New returns defaults overlaid with the config file, if present, and
// environment overrides. A malformed file is reported on stderr and ignored.
func New() *Config {
	cfg := Default()

	path, err := defaultConfigPath()
	if err == nil {
		cfg.configPath = path
		if loadErr := cfg.Load(); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: ignoring config file %s: %v\n", path, loadErr)
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg
}

func defaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ConfigPath returns the file this configuration is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file onto c. Keys absent from the file keep their
// current values.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("no config path set")
	}
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to its config path, creating parent directories.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnvOverrides applies CARBONFOCUS_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvDefaultCountry); v != "" {
		c.Defaults.Country = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Validate checks every section and returns an error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: output.default_format %q must be one of table, json, ndjson",
			ErrInvalidConfig, c.Output.DefaultFormat)
	}
	if err := validateLogging(c.Logging); err != nil {
		return err
	}
	if c.Output.Precision < MinPrecision || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("%w: output.precision must be between %d and %d, got %d",
			ErrInvalidConfig, MinPrecision, MaxPrecision, c.Output.Precision)
	}

	if !factors.Default().Has(c.Defaults.Country) {
		return fmt.Errorf("%w: defaults.country %q is not in the emission factor table",
			ErrInvalidConfig, c.Defaults.Country)
	}
	in := c.Defaults.Input()
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: defaults: %w", ErrInvalidConfig, err)
	}
	if _, clamped := footprint.Bounds.Clamp(in); len(clamped) > 0 {
		return fmt.Errorf("%w: defaults out of range: %s",
			ErrInvalidConfig, strings.Join(clamped, ", "))
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout_seconds must be > 0", ErrInvalidConfig)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: server rate limits must be >= 0", ErrInvalidConfig)
	}
	for _, p := range c.Server.TrustedProxies {
		if _, err := ParseTrustedProxy(p); err != nil {
			return fmt.Errorf("%w: server.trusted_proxies: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

func validateLogging(lc LoggingConfig) error {
	if _, err := zerolog.ParseLevel(lc.Level); err != nil || lc.Level == "" {
		return fmt.Errorf("%w: logging.level %q must be one of trace, debug, info, warn, error, fatal, panic, disabled",
			ErrInvalidConfig, lc.Level)
	}
	switch lc.Format {
	case logging.FormatJSON, logging.FormatConsole, logging.FormatText:
	default:
		return fmt.Errorf("%w: logging.format %q must be one of json, console, text",
			ErrInvalidConfig, lc.Format)
	}
	return nil
}

// ParseTrustedProxy parses an IP address or CIDR prefix. A bare address
// becomes a single-host prefix.
func ParseTrustedProxy(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Keys lists every dotted key accepted by Get and Set.
func Keys() []string {
	return []string{
		"output.default_format",
		"output.precision",
		"logging.level",
		"logging.format",
		"logging.file",
		"defaults.country",
		"defaults.daily_distance_km",
		"defaults.monthly_electricity_kwh",
		"defaults.weekly_waste_kg",
		"defaults.meals_per_day",
		"server.addr",
		"server.shutdown_timeout_seconds",
		"server.rate_limit_rps",
		"server.rate_limit_burst",
		"server.trusted_proxies",
	}
}

// Get returns the value at a dotted key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "defaults.country":
		return c.Defaults.Country, nil
	case "defaults.daily_distance_km":
		return formatFloat(c.Defaults.DailyDistanceKm), nil
	case "defaults.monthly_electricity_kwh":
		return formatFloat(c.Defaults.MonthlyElectricityKWh), nil
	case "defaults.weekly_waste_kg":
		return formatFloat(c.Defaults.WeeklyWasteKg), nil
	case "defaults.meals_per_day":
		return strconv.Itoa(c.Defaults.MealsPerDay), nil
	case "server.addr":
		return c.Server.Addr, nil
	case "server.shutdown_timeout_seconds":
		return strconv.Itoa(c.Server.ShutdownTimeoutSeconds), nil
	case "server.rate_limit_rps":
		return formatFloat(c.Server.RateLimitRPS), nil
	case "server.rate_limit_burst":
		return strconv.Itoa(c.Server.RateLimitBurst), nil
	case "server.trusted_proxies":
		return strings.Join(c.Server.TrustedProxies, ","), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value into the field at a dotted key.
// The configuration is not validated; call Validate before saving.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		c.Output.Precision, err = strconv.Atoi(value)
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "defaults.country":
		c.Defaults.Country = value
	case "defaults.daily_distance_km":
		c.Defaults.DailyDistanceKm, err = strconv.ParseFloat(value, 64)
	case "defaults.monthly_electricity_kwh":
		c.Defaults.MonthlyElectricityKWh, err = strconv.ParseFloat(value, 64)
	case "defaults.weekly_waste_kg":
		c.Defaults.WeeklyWasteKg, err = strconv.ParseFloat(value, 64)
	case "defaults.meals_per_day":
		c.Defaults.MealsPerDay, err = strconv.Atoi(value)
	case "server.addr":
		c.Server.Addr = value
	case "server.shutdown_timeout_seconds":
		c.Server.ShutdownTimeoutSeconds, err = strconv.Atoi(value)
	case "server.rate_limit_rps":
		c.Server.RateLimitRPS, err = strconv.ParseFloat(value, 64)
	case "server.rate_limit_burst":
		c.Server.RateLimitBurst, err = strconv.Atoi(value)
	case "server.trusted_proxies":
		c.Server.TrustedProxies = splitList(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
