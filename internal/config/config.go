package config

import (
	"fmt"
	"time"

	"github.com/security-mcp/check-http-exec/internal/uri"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names, also used as config keys
const (
	KeySSL      = "ssl"
	KeyHostname = "hostname"
	KeyPort     = "port"
	KeyURI      = "uri"
	KeyQuery    = "query"
	KeyTimeout  = "timeout"
	KeyVerbose  = "verbose"
)

// Defaults
const (
	DefaultHostname       = "localhost"
	DefaultURI            = "/"
	DefaultTimeoutSeconds = 15
	DefaultLogLevel       = "warn"
)

// Config holds the resolved settings of a single check run
type Config struct {
	Scheme   uri.Scheme
	Hostname string
	Port     *uint16 // nil unless --port was given
	URI      string
	Query    []string
	Timeout  time.Duration
	LogLevel string
}

// settings mirrors the scalar keys for viper.Unmarshal
type settings struct {
	SSL      bool   `mapstructure:"ssl"`
	Hostname string `mapstructure:"hostname"`
	URI      string `mapstructure:"uri"`
	Timeout  uint   `mapstructure:"timeout"`
	Verbose  bool   `mapstructure:"verbose"`
}

// RegisterFlags defines the check flags on fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolP(KeySSL, "s", false, "use HTTPS (https://)")
	fs.StringP(KeyHostname, "H", DefaultHostname, "HTTP hostname")
	fs.Uint16P(KeyPort, "p", 0, "HTTP port [default: 80 on http, 443 on https]")
	fs.StringP(KeyURI, "u", DefaultURI, "HTTP uri")
	fs.StringArrayP(KeyQuery, "q", nil, "query as key=value or a bare token (repeatable)")
	fs.UintP(KeyTimeout, "t", DefaultTimeoutSeconds, "timeout in seconds")
	fs.BoolP(KeyVerbose, "v", false, "enable debug logging on stderr")
}

// Load resolves flag values over the built-in defaults. Only flags are
// consulted; no config file or environment is read.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeySSL, false)
	v.SetDefault(KeyHostname, DefaultHostname)
	v.SetDefault(KeyURI, DefaultURI)
	v.SetDefault(KeyTimeout, DefaultTimeoutSeconds)
	v.SetDefault(KeyVerbose, false)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	cfg := &Config{
		Scheme:   uri.SchemeFromTLS(s.SSL),
		Hostname: s.Hostname,
		URI:      s.URI,
		Timeout:  time.Duration(s.Timeout) * time.Second,
		LogLevel: DefaultLogLevel,
	}

	if s.Verbose {
		cfg.LogLevel = "debug"
	}

	// Port has no default of its own; it depends on the scheme
	if v.IsSet(KeyPort) {
		port := v.GetUint16(KeyPort)
		cfg.Port = &port
	}

	// Read the array straight from pflag: viper would split values on commas
	if fs.Lookup(KeyQuery) != nil {
		query, err := fs.GetStringArray(KeyQuery)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", KeyQuery, err)
		}
		cfg.Query = query
	}

	return cfg, nil
}

// Params converts the config into URI builder input
func (c *Config) Params() uri.Params {
	return uri.Params{
		Scheme: c.Scheme,
		Host:   c.Hostname,
		Port:   c.Port,
		Path:   c.URI,
		Query:  c.Query,
	}
}
