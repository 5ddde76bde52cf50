package database

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crmplanner/api/config"
)

// Well-known CA bundle locations, first found wins.
var caBundlePaths = []string{
	"/etc/ssl/certs/ca-certificates.crt", // Debian/Ubuntu
	"/etc/ssl/ca-bundle.pem",             // RedHat/CentOS
	"/etc/pki/tls/certs/ca-bundle.crt",   // Older RedHat
}

const requiredTLSKey = "crm-required"

// Connect opens the MySQL connection described by cfg and configures the
// underlying pool. The returned handle is injected into repositories; there
// is no package-level connection.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func buildDSN(cfg config.DatabaseConfig) (string, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": cfg.Charset}

	if cfg.Socket != "" {
		mc.Net = "unix"
		mc.Addr = cfg.Socket
	} else {
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}

	switch strings.ToUpper(cfg.SSLMode) {
	case "REQUIRED":
		key, err := registerRequiredTLS()
		if err != nil {
			return "", err
		}
		mc.TLSConfig = key
	case "PREFERRED":
		// Opportunistic, unverified TLS: the driver falls back to
		// plaintext when the server does not offer it.
		mc.TLSConfig = "preferred"
	}

	return mc.FormatDSN(), nil
}

// registerRequiredTLS sets up verified TLS against the first system CA
// bundle found on disk.
func registerRequiredTLS() (string, error) {
	for _, path := range caBundlePaths {
		pem, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			continue
		}
		if err := mysql.RegisterTLSConfig(requiredTLSKey, &tls.Config{RootCAs: pool}); err != nil {
			return "", err
		}
		return requiredTLSKey, nil
	}
	return "", errors.New("DB_SSL_MODE=REQUIRED but no CA bundle found")
}
