package dbclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Driver names registered by the imported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

// ParseURL maps a database URL onto a driver name and the DSN that driver
// expects. Supported schemes: postgres, postgresql, mysql, sqlite, sqlite3.
func ParseURL(raw string) (driver, dsn string, err error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "", "", fmt.Errorf("database URL %q has no scheme", raw)
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		// lib/pq accepts URLs as-is.
		return DriverPostgres, raw, nil

	case "mysql":
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql URL: %w", err)
		}
		cfg := mysql.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		if u.Port() == "" {
			cfg.Addr = u.Hostname() + ":3306"
		}
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		cfg.ParseTime = true
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		for key, values := range u.Query() {
			if len(values) > 0 {
				if cfg.Params == nil {
					cfg.Params = map[string]string{}
				}
				cfg.Params[key] = values[0]
			}
		}
		return DriverMySQL, cfg.FormatDSN(), nil

	case "sqlite", "sqlite3":
		if rest == "" {
			return "", "", fmt.Errorf("sqlite URL %q has no path", raw)
		}
		return DriverSQLite, rest, nil

	default:
		return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}
