package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Approver set pinned on first boot; see ledger.NewRoster
	LedgerApprovers []string
	LedgerAuditors  []string
	LedgerQuorum    int

	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	LogLevel       string
	LogDevelopment bool

	TracingEnabled bool
	ServiceName    string

	DocumentMaxBytes int64
	MaxClockSkew     time.Duration
	MaxBodyBytes     int64
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "contracts")
	v.SetDefault("MYSQL_USER", "contracts")
	v.SetDefault("MYSQL_PASS", "contracts")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("LEDGER_APPROVERS", "")
	v.SetDefault("LEDGER_AUDITORS", "")
	v.SetDefault("LEDGER_QUORUM", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("SERVICE_NAME", "contract-approval")
	v.SetDefault("DOCUMENT_MAX_BYTES", 10<<20)
	v.SetDefault("MAX_CLOCK_SKEW", "5m")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
}

// splitList reads a comma separated env value; blanks are dropped.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the process environment.
func Load() *Config { return LoadFrom(viper.New()) }

// LoadFrom reads config through v, so tests can v.Set values without touching the environment.
func LoadFrom(v *viper.Viper) *Config {
	defaults(v)
	v.AutomaticEnv()

	return &Config{
		AppPort:   v.GetString("APP_PORT"),
		MySQLHost: v.GetString("MYSQL_HOST"),
		MySQLPort: v.GetString("MYSQL_PORT"),
		MySQLDB:   v.GetString("MYSQL_DB"),
		MySQLUser: v.GetString("MYSQL_USER"),
		MySQLPass: v.GetString("MYSQL_PASS"),

		RedisAddr:    v.GetString("REDIS_ADDR"),
		RedisDB:      v.GetInt("REDIS_DB"),
		IdempTTLSecs: v.GetInt("IDEMPOTENCY_TTL_SECONDS"),

		LedgerApprovers: splitList(v.GetString("LEDGER_APPROVERS")),
		LedgerAuditors:  splitList(v.GetString("LEDGER_AUDITORS")),
		LedgerQuorum:    v.GetInt("LEDGER_QUORUM"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		LogLevel:       v.GetString("LOG_LEVEL"),
		LogDevelopment: v.GetBool("LOG_DEVELOPMENT"),

		TracingEnabled: v.GetBool("TRACING_ENABLED"),
		ServiceName:    v.GetString("SERVICE_NAME"),

		DocumentMaxBytes: v.GetInt64("DOCUMENT_MAX_BYTES"),
		MaxClockSkew:     v.GetDuration("MAX_CLOCK_SKEW"),
		MaxBodyBytes:     v.GetInt64("MAX_BODY_BYTES"),
	}
}

// Validate reports every problem at once. Roster semantics (duplicates, quorum range)
// are checked later by ledger.NewRoster.
func (c *Config) Validate() error {
	var errs error
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		errs = multierr.Append(errs, errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)"))
	}
	if c.MySQLPort != "" {
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err))
		}
	}
	if c.AppPort == "" {
		errs = multierr.Append(errs, errors.New("missing APP_PORT"))
	}
	if len(c.LedgerApprovers) == 0 {
		errs = multierr.Append(errs, errors.New("missing LEDGER_APPROVERS"))
	}
	for _, a := range append(append([]string{}, c.LedgerApprovers...), c.LedgerAuditors...) {
		if !common.IsHexAddress(a) {
			errs = multierr.Append(errs, fmt.Errorf("invalid ledger address %q", a))
		}
	}
	if c.JWTSecret == "" {
		errs = multierr.Append(errs, errors.New("missing JWT_SECRET"))
	}
	if c.JWTTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid JWT_TTL %s", c.JWTTTL))
	}
	if c.IdempTTLSecs <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs))
	}
	if c.DocumentMaxBytes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid DOCUMENT_MAX_BYTES %d", c.DocumentMaxBytes))
	}
	if c.MaxClockSkew <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid MAX_CLOCK_SKEW %s", c.MaxClockSkew))
	}
	if c.MaxBodyBytes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid MAX_BODY_BYTES %d", c.MaxBodyBytes))
	}
	return errs
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime for DATETIME/DATE columns; loc=UTC keeps audit timestamps stable across hosts
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
