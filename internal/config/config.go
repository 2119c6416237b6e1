package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	TopicsPerPage      int           `yaml:"topics_per_page" validate:"required,gt=0"`
	PostsPerPage       int           `yaml:"posts_per_page" validate:"required,gt=0"`
	ReplyPreviewPosts  int           `yaml:"reply_preview_posts" validate:"required,gt=0"` // recent posts shown above the reply form
	JwtTTL             time.Duration `yaml:"jwt_ttl" validate:"required"`
	PasswordResetTTL   time.Duration `yaml:"password_reset_ttl" validate:"required"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	SiteURL            string        `yaml:"site_url" validate:"required"` // used to build links in emails
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	LogFile            string        `yaml:"log_file"` // empty disables the rolling file sink
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	HTTP               HTTP          `yaml:"http"`
	Session            Session       `yaml:"session"`
	RateLimit          RateLimit     `yaml:"rate_limit"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Session struct {
	Backend string        `yaml:"backend" validate:"required,oneof=memory redis"`
	TTL     time.Duration `yaml:"ttl" validate:"required"`
	Redis   Redis         `yaml:"redis"`
}

type Redis struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// RateLimit applies per client IP to login, signup and password reset submissions.
type RateLimit struct {
	PerMinute int           `yaml:"per_minute"`
	Burst     int           `yaml:"burst"`
	Expire    time.Duration `yaml:"expire"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

type Private struct {
	JwtKey        string `yaml:"jwt_key" validate:"required"`
	Pg            Pg     `yaml:"pg"`
	Email         Email  `yaml:"email"`
	RedisPassword string `yaml:"redis_password"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.UnmarshalStrict(configFile, output)
	if err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// applyEnv lets secrets come from the environment (or a .env file loaded by main)
// instead of private.yaml.
func applyEnv(private *Private) {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		private.JwtKey = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		private.Pg.Password = v
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		private.Pg.Host = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			private.Pg.Port = port
		}
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		private.Email.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		private.RedisPassword = v
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	applyEnv(&private)

	cfg := &Config{Public: public, Private: private}
	if err := Validate(cfg); err != nil {
		panic(err.Error())
	}
	return cfg
}

// Validate checks required fields of both config parts.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg.Public); err != nil {
		return fmt.Errorf("invalid public config: %w", err)
	}
	if err := validate.Struct(cfg.Private); err != nil {
		return fmt.Errorf("invalid private config: %w", err)
	}
	if cfg.Public.Session.Backend == "redis" && cfg.Public.Session.Redis.Addr == "" {
		return fmt.Errorf("invalid public config: session.redis.addr is required for redis backend")
	}
	return nil
}
