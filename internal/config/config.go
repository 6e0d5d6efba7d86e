package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
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

	// Pub/sub channel notification events are published on.
	NotifyChannel string

	IdempTTLSecs int
	// Session innodb_lock_wait_timeout: bounds how long submitters queue on
	// a job row before getting a retryable busy error.
	LockWaitSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "medmatch"),
		MySQLUser: getenv("MYSQL_USER", "medmatch"),
		MySQLPass: getenv("MYSQL_PASS", "medmatch"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		NotifyChannel: getenv("NOTIFY_CHANNEL", "medmatch:notifications"),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		LockWaitSecs: getenvInt("LOCK_WAIT_SECONDS", 5),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.NotifyChannel == "" {
		return errors.New("missing NOTIFY_CHANNEL")
	}
	if c.LockWaitSecs < 1 {
		return errors.New("LOCK_WAIT_SECONDS must be at least 1")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; the lock wait timeout keeps blocked
	// submitters bounded so they can surface a retryable error.
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8&innodb_lock_wait_timeout=%d",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB, c.LockWaitSecs)
}
