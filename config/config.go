package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string

	DBDriver     string
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	DBSqlitePath string
	DBLogLevel   string

	JWTKey    string
	SaltRound int

	FrontendURL string
	AppURL      string

	// TrustedProxies may set X-Forwarded-For; empty means c.IP() is the socket peer
	TrustedProxies []string

	AIEngineURL string
	AITimeout   time.Duration

	MailFrom       string
	ResendApiKey   string
	SendgridApiKey string

	SupabaseURL        string
	SupabaseServiceKey string
	StorageBucket      string
	UploadDir          string
	UploadMaxWidth     int
	UploadMaxBytes     int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RollbarToken string

	SeedOnStart     bool
	EnableScheduler bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	AppConfig = &Config{
		Port:   v.GetString("PORT"),
		AppEnv: v.GetString("APP_ENV"),

		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:       v.GetString("DB_HOST"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASSWORD"),
		DBName:       v.GetString("DB_NAME"),
		DBPort:       v.GetString("DB_PORT"),
		DBSqlitePath: v.GetString("DB_SQLITE_PATH"),
		DBLogLevel:   strings.ToLower(v.GetString("DB_LOG_LEVEL")),

		JWTKey:    v.GetString("JWT_SECRET_KEY"),
		SaltRound: v.GetInt("SALT_ROUND"),

		FrontendURL: v.GetString("FRONTEND_URL"),
		AppURL:      strings.TrimRight(v.GetString("APP_URL"), "/"),

		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),

		AIEngineURL: strings.TrimRight(v.GetString("AI_ENGINE_URL"), "/"),
		AITimeout:   time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,

		MailFrom:       v.GetString("MAIL_FROM"),
		ResendApiKey:   v.GetString("RESEND_API_KEY"),
		SendgridApiKey: v.GetString("SENDGRID_API_KEY"),

		SupabaseURL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseServiceKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		StorageBucket:      v.GetString("STORAGE_BUCKET"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		UploadMaxWidth:     v.GetInt("UPLOAD_MAX_WIDTH"),
		UploadMaxBytes:     v.GetInt("UPLOAD_MAX_BYTES"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		RollbarToken: v.GetString("ROLLBAR_TOKEN"),

		SeedOnStart:     v.GetBool("SEED_ON_START"),
		EnableScheduler: v.GetBool("ENABLE_SCHEDULER"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SaltRound < 4 || AppConfig.SaltRound > 31 {
		log.Printf("Warning: SALT_ROUND %d out of range, falling back to 10", AppConfig.SaltRound)
		AppConfig.SaltRound = 10
	}
	if AppConfig.ResendApiKey == "" && AppConfig.SendgridApiKey == "" {
		log.Println("Warning: no mail provider key set. Emails will only be logged.")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "4000")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_SQLITE_PATH", "techstorm.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("JWT_SECRET_KEY", "defaultSecret")
	v.SetDefault("SALT_ROUND", 10)

	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("APP_URL", "http://localhost:3000")

	v.SetDefault("AI_ENGINE_URL", "http://localhost:8000")
	v.SetDefault("AI_TIMEOUT_SECONDS", 60)

	v.SetDefault("MAIL_FROM", "TechStorm Global <onboarding@resend.dev>")

	v.SetDefault("STORAGE_BUCKET", "uploads")
	v.SetDefault("UPLOAD_DIR", "./public/uploads")
	v.SetDefault("UPLOAD_MAX_WIDTH", 1600)
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("ENABLE_SCHEDULER", true)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
