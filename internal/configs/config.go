package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL      string
	MaxConns int
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

// PropertyStoreConfig выбирает хранилище объявлений: postgres | mongo | memory
type PropertyStoreConfig struct {
	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DuplicateWindow time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type AuthConfig struct {
	JWTSecret          string
	AccessTokenTTL     time.Duration
	GoogleClientID     string
	OTPTTL             time.Duration
	OTPLength          int
	OTPCleanupSchedule string
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Sandbox   bool
	TeamEmail string // входящие для заявок на партнерство и модерации
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromPhone  string
}

type S3Config struct {
	Enabled       bool
	Bucket        string
	Region        string
	PublicBaseURL string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName       string
	Database      DBconfig
	Rest          RESTconfig
	PropertyStore PropertyStoreConfig
	Redis         RedisConfig
	RabbitMQ      RabbitMQConfig
	Auth          AuthConfig
	SendGrid      SendGridConfig
	Twilio        TwilioConfig
	S3            S3Config
	FluentBit     FluentBitConfig
	StdoutLogger  StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// в контейнере переменные приходят из окружения, .env не обязателен
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "addisnest-service")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 10)

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	cfg.PropertyStore.Driver = strings.ToLower(getEnvAsString("PROPERTY_STORE", "postgres"))
	switch cfg.PropertyStore.Driver {
	case "postgres", "memory":
	case "mongo":
		cfg.PropertyStore.MongoURI = os.Getenv("MONGO_URI")
		if cfg.PropertyStore.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required when PROPERTY_STORE=mongo")
		}
	default:
		return nil, fmt.Errorf("unknown PROPERTY_STORE %q (expected postgres, mongo or memory)", cfg.PropertyStore.Driver)
	}
	cfg.PropertyStore.MongoDatabase = getEnvAsString("MONGO_DATABASE", "addisnest")
	cfg.PropertyStore.MongoCollection = getEnvAsString("MONGO_COLLECTION", "properties")
	cfg.PropertyStore.DuplicateWindow = getEnvAsDuration("DUPLICATE_WINDOW", 30*time.Second)

	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", false)
	if cfg.Redis.Enabled {
		cfg.Redis.Addr = getEnvAsString("REDIS_ADDR", "localhost:6379")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
		cfg.Redis.TTL = getEnvAsDuration("LISTING_CACHE_TTL", 5*time.Minute)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling RabbitMQ.")
			cfg.RabbitMQ.Enabled = false
		}
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.Auth.AccessTokenTTL = getEnvAsDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	cfg.Auth.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.Auth.OTPTTL = getEnvAsDuration("OTP_TTL", 10*time.Minute)
	cfg.Auth.OTPLength = getEnvAsInt("OTP_LENGTH", 6)
	cfg.Auth.OTPCleanupSchedule = getEnvAsString("OTP_CLEANUP_SCHEDULE", "@every 15m")

	cfg.SendGrid.APIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.SendGrid.FromEmail = getEnvAsString("SENDGRID_FROM_EMAIL", "no-reply@addisnest.com")
	cfg.SendGrid.FromName = getEnvAsString("SENDGRID_FROM_NAME", "Addisnest")
	cfg.SendGrid.Sandbox = getEnvAsBool("SENDGRID_SANDBOX", false)
	cfg.SendGrid.TeamEmail = os.Getenv("TEAM_EMAIL")

	cfg.Twilio.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Twilio.FromPhone = os.Getenv("TWILIO_FROM_PHONE")

	cfg.S3.Enabled = getEnvAsBool("S3_ENABLED", false)
	if cfg.S3.Enabled {
		cfg.S3.Bucket = os.Getenv("S3_BUCKET")
		cfg.S3.Region = getEnvAsString("S3_REGION", "eu-central-1")
		cfg.S3.PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")
		if cfg.S3.Bucket == "" {
			log.Println("WARNING: S3_ENABLED is true, but S3_BUCKET is not set. Disabling uploads.")
			cfg.S3.Enabled = false
		}
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// EmailEnabled - настроена ли отправка писем
func (c *AppConfig) EmailEnabled() bool {
	return c.SendGrid.APIKey != ""
}

// SMSEnabled - настроена ли отправка SMS
func (c *AppConfig) SMSEnabled() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.FromPhone != ""
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("30s", "15m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val < 0 {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return val
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
