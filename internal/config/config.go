package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	MySQLHost     string
	MySQLPort     string
	MySQLDB       string
	MySQLUser     string
	MySQLPass     string
	DBAutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs int

	Log LogConfig

	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	AdminName     string
	CookieSecure  bool

	// Default ("s3") document bucket. The custom bucket lives in the settings table.
	S3 S3Config

	StorageTimeout time.Duration
}

type LogConfig struct {
	Level       string
	Encoding    string
	Development bool
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

var defaults = map[string]any{
	"APP_PORT":                "8080",
	"MYSQL_HOST":              "mysql",
	"MYSQL_PORT":              "3306",
	"MYSQL_DB":                "consignado",
	"MYSQL_USER":              "consignado",
	"MYSQL_PASS":              "consignado",
	"DB_AUTOMIGRATE":          true,
	"REDIS_ADDR":              "redis:6379",
	"REDIS_DB":                0,
	"IDEMPOTENCY_TTL_SECONDS": 300,
	"LOG_LEVEL":               "info",
	"LOG_ENCODING":            "json",
	"LOG_DEVELOPMENT":         false,
	"JWT_SECRET":              "",
	"ADMIN_NAME":              "Administrador",
	"COOKIE_SECURE":           false,
	"S3_REGION":               "us-east-1",
	"STORAGE_TIMEOUT_SECONDS": 30,
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

// FromViper maps an already configured viper instance onto Config.
func FromViper(v *viper.Viper) *Config {
	c := &Config{
		AppPort:       v.GetString("APP_PORT"),
		MySQLHost:     v.GetString("MYSQL_HOST"),
		MySQLPort:     v.GetString("MYSQL_PORT"),
		MySQLDB:       v.GetString("MYSQL_DB"),
		MySQLUser:     v.GetString("MYSQL_USER"),
		MySQLPass:     v.GetString("MYSQL_PASS"),
		DBAutoMigrate: v.GetBool("DB_AUTOMIGRATE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		IdempTTLSecs:  v.GetInt("IDEMPOTENCY_TTL_SECONDS"),

		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Encoding:    v.GetString("LOG_ENCODING"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},

		JWTSecret:     v.GetString("JWT_SECRET"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		AdminName:     v.GetString("ADMIN_NAME"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),

		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		},

		StorageTimeout: time.Duration(v.GetInt("STORAGE_TIMEOUT_SECONDS")) * time.Second,
	}
	if c.IdempTTLSecs <= 0 {
		c.IdempTTLSecs = 300
	}
	if c.StorageTimeout <= 0 {
		c.StorageTimeout = 30 * time.Second
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
