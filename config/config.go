package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		AccessTokenSecret        string
		AccessTokenExpiryMinutes int
		RefreshTokenSecret       string
		RefreshTokenExpiryDays   int
	}
	Cricket struct {
		// DefaultOvers applies when a match has no tournament format to
		// inherit overs from.
		DefaultOvers     int
		DefaultPowerplay int
		FormStringLength int
	}
}

// Global DB instance, set by ConnectDB via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// Log is the shared structured logger.
var Log = logrus.New()

// LoadConfig reads configuration from the environment (and .env if present).
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Log.Info("no .env file found, relying on system environment variables")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8090")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "pavilion_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "dev-access-secret")
	cfg.JWT.RefreshTokenSecret = getEnv("JWT_REFRESH_TOKEN_SECRET", "dev-refresh-secret")

	var err error
	cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}
	cfg.JWT.RefreshTokenExpiryDays, err = getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS", 7)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_EXPIRY_DAYS: %w", err)
	}

	cfg.Cricket.DefaultOvers, err = getEnvAsInt("CRICKET_DEFAULT_OVERS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid CRICKET_DEFAULT_OVERS: %w", err)
	}
	cfg.Cricket.DefaultPowerplay, err = getEnvAsInt("CRICKET_DEFAULT_POWERPLAY", 6)
	if err != nil {
		return nil, fmt.Errorf("invalid CRICKET_DEFAULT_POWERPLAY: %w", err)
	}
	cfg.Cricket.FormStringLength, err = getEnvAsInt("CRICKET_FORM_LENGTH", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid CRICKET_FORM_LENGTH: %w", err)
	}

	if cfg.App.Env == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		if cfg.JWT.AccessTokenSecret == "dev-access-secret" || cfg.JWT.RefreshTokenSecret == "dev-refresh-secret" {
			Log.Warn("using default JWT secrets in production, set JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET")
		}
		if cfg.DB.Password == "password" {
			Log.Warn("using default DB password in production, set DB_PASSWORD")
		}
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB opens the Postgres connection and sets the global DB handle.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	Log.WithFields(logrus.Fields{"host": dbCfg.DB.Host, "db": dbCfg.DB.Name}).Info("connected to database")
	return gormDB, nil
}

// Initialize loads configuration and connects to the database exactly once.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		if _, err = ConnectDB(*appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		Log.Fatal("configuration not loaded, call config.Initialize() first")
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
