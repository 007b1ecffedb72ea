package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"`
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret        string        `env:"JWT_SECRET,required"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	InviteTokenTTL   time.Duration `env:"INVITE_TOKEN_TTL" envDefault:"168h"`
	ExpirySweepEvery time.Duration `env:"EXPIRY_SWEEP_EVERY" envDefault:"0"` // 0 disables the background sweep

	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"ollama"`
	OllamaURL    string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel  string `env:"OLLAMA_MODEL" envDefault:"llama3.1"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	NextcloudURL      string `env:"NEXTCLOUD_URL"`
	NextcloudUser     string `env:"NEXTCLOUD_USER"`
	NextcloudPassword string `env:"NEXTCLOUD_PASSWORD"`
	NextcloudRoot     string `env:"NEXTCLOUD_ROOT" envDefault:"/expomeet"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"noreply@expomeet.example"`

	RazorpayIFSCBaseURL string `env:"RAZORPAY_IFSC_BASE_URL" envDefault:"https://ifsc.razorpay.com"`
	PincodeBaseURL      string `env:"PINCODE_BASE_URL" envDefault:"https://api.postalpincode.in"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
