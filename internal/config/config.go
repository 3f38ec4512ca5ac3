package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Database  DatabaseConfig  `yaml:"database" json:"database"`
	Session   SessionConfig   `yaml:"session" json:"session"`
	Log       LogConfig       `yaml:"log" json:"log"`
	CORS      CORSConfig      `yaml:"cors" json:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Assets    AssetsConfig    `yaml:"assets" json:"assets"`
	MinIO     MinIOConfig     `yaml:"minio" json:"minio"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port string `yaml:"port" json:"port"`
	Mode string `yaml:"mode" json:"mode"`
}

// DatabaseConfig MySQL connection settings
type DatabaseConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            string        `yaml:"port" json:"port"`
	Username        string        `yaml:"username" json:"username"`
	Password        string        `yaml:"password" json:"password"`
	Database        string        `yaml:"database" json:"database"`
	Charset         string        `yaml:"charset" json:"charset"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate" json:"auto_migrate"`
}

// SessionConfig session token lifetime and cleanup
type SessionConfig struct {
	TTL            time.Duration `yaml:"ttl" json:"ttl"`
	ReaperSchedule string        `yaml:"reaper_schedule" json:"reaper_schedule"`
}

// LogConfig logger settings
type LogConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"` // json | console
	Output   string `yaml:"output" json:"output"` // stdout | file
	FilePath string `yaml:"file_path" json:"file_path"`
}

// CORSConfig CORS settings
type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins" json:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods" json:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" json:"allow_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" json:"allow_credentials"`
}

// RateLimitConfig per-IP limits for the credential endpoints
type RateLimitConfig struct {
	LoginPerMinute    int `yaml:"login_per_minute" json:"login_per_minute"`
	RegisterPerMinute int `yaml:"register_per_minute" json:"register_per_minute"`
	Burst             int `yaml:"burst" json:"burst"`
}

// AssetsConfig public asset and upload settings
type AssetsConfig struct {
	// PublicBaseURL is the public URL of the bucket root, e.g. http://localhost:9000/foodshare-assets
	PublicBaseURL  string `yaml:"public_base_url" json:"public_base_url"`
	MaxImageSizeMB int    `yaml:"max_image_size_mb" json:"max_image_size_mb"`
	MaxImageEdge   uint   `yaml:"max_image_edge" json:"max_image_edge"`
}

// MinIOConfig object storage connection
type MinIOConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl" json:"use_ssl"`
	Bucket          string `yaml:"bucket" json:"bucket"`
}

// DSN builds the go-sql-driver/mysql connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
		d.Charset,
	)
}

// Load loads configuration: .env, then yaml file over defaults, then environment overrides
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded .env")
	}

	env := getEnv("APP_ENV", "dev")
	configFile := getConfigFile(env)

	config := getDefaultConfig()

	if configFile != "" {
		if err := loadFromFile(config, configFile); err != nil {
			fmt.Printf("warning: failed to load config file %s: %v\n", configFile, err)
		} else {
			fmt.Printf("loaded config file: %s\n", configFile)
		}
	}

	overrideWithEnvVars(config)

	return config
}

// getConfigFile finds the config file for the environment
func getConfigFile(env string) string {
	configFiles := []string{
		fmt.Sprintf("config.%s.yaml", env),
		"config.yaml",
	}

	for _, file := range configFiles {
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	return ""
}

// getDefaultConfig default configuration
func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "3306",
			Username:        "root",
			Password:        "",
			Database:        "foodshare",
			Charset:         "utf8mb4",
			MaxOpenConns:    50,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Session: SessionConfig{
			TTL:            7 * 24 * time.Hour,
			ReaperSchedule: "@every 1h",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-Request-ID", "Authorization"},
			AllowCredentials: false,
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute:    10,
			RegisterPerMinute: 5,
			Burst:             5,
		},
		Assets: AssetsConfig{
			PublicBaseURL:  "http://localhost:9000/foodshare-assets",
			MaxImageSizeMB: 5,
			MaxImageEdge:   1280,
		},
		MinIO: MinIOConfig{
			Enabled:         false,
			Endpoint:        "localhost:9000",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			Bucket:          "foodshare-assets",
		},
	}
}

// loadFromFile reads yaml into config
func loadFromFile(config *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// overrideWithEnvVars environment variables win over the config file
func overrideWithEnvVars(config *Config) {
	if val := getEnv("SERVER_HOST", ""); val != "" {
		config.Server.Host = val
	}
	if val := getEnv("SERVER_PORT", ""); val != "" {
		config.Server.Port = val
	}
	if val := getEnv("SERVER_MODE", ""); val != "" {
		config.Server.Mode = val
	}

	if val := getEnv("DB_HOST", ""); val != "" {
		config.Database.Host = val
	}
	if val := getEnv("DB_PORT", ""); val != "" {
		config.Database.Port = val
	}
	if val := getEnv("DB_USERNAME", ""); val != "" {
		config.Database.Username = val
	}
	if val := getEnv("DB_PASSWORD", ""); val != "" {
		config.Database.Password = val
	}
	if val := getEnv("DB_DATABASE", ""); val != "" {
		config.Database.Database = val
	}
	if val := getEnv("DB_AUTO_MIGRATE", ""); val != "" {
		config.Database.AutoMigrate = parseBool(val)
	}

	if val := getEnv("SESSION_TTL", ""); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			config.Session.TTL = d
		}
	}
	if val := getEnv("SESSION_REAPER_SCHEDULE", ""); val != "" {
		config.Session.ReaperSchedule = val
	}

	if val := getEnv("LOG_LEVEL", ""); val != "" {
		config.Log.Level = val
	}
	if val := getEnv("LOG_FORMAT", ""); val != "" {
		config.Log.Format = val
	}
	if val := getEnv("LOG_OUTPUT", ""); val != "" {
		config.Log.Output = val
	}

	if val := getEnv("CORS_ALLOW_ORIGINS", ""); val != "" {
		config.CORS.AllowOrigins = splitList(val)
	}

	if val := getEnv("ASSETS_PUBLIC_BASE_URL", ""); val != "" {
		config.Assets.PublicBaseURL = val
	}
	if val := getEnv("ASSETS_MAX_IMAGE_MB", ""); val != "" {
		if n := parseInt(val); n > 0 {
			config.Assets.MaxImageSizeMB = n
		}
	}

	if val := getEnv("MINIO_ENABLED", ""); val != "" {
		config.MinIO.Enabled = parseBool(val)
	}
	if val := getEnv("MINIO_ENDPOINT", ""); val != "" {
		config.MinIO.Endpoint = val
	}
	if val := getEnv("MINIO_ACCESS_KEY", ""); val != "" {
		config.MinIO.AccessKeyID = val
	}
	if val := getEnv("MINIO_SECRET_KEY", ""); val != "" {
		config.MinIO.SecretAccessKey = val
	}
	if val := getEnv("MINIO_USE_SSL", ""); val != "" {
		config.MinIO.UseSSL = parseBool(val)
	}
	if val := getEnv("MINIO_BUCKET", ""); val != "" {
		config.MinIO.Bucket = val
	}
}

// parseInt parses an integer, zero on failure
func parseInt(s string) int {
	var result int
	fmt.Sscanf(s, "%d", &result)
	return result
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv returns the environment variable or the default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
