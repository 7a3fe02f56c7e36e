package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL         time.Duration `yaml:"jwt_ttl" validate:"required"`
	RepliesPerPage int           `yaml:"replies_per_page" validate:"required,gt=0"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON        bool          `yaml:"log_json"`

	// Requests per second allowed per user when posting threads and replies
	PostRps float64 `yaml:"post_rps" validate:"required,gt=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key" validate:"required"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

// DSN builds a lib/pq connection string.
func (p Pg) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Dbname)
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder and panics on any
// missing file or invalid value. JWT_SECRET overrides the private jwt key.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		private.JwtKey = secret
	}

	cfg := &Config{Public: public, Private: private}
	if err := Validate(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg.Public); err != nil {
		return err
	}
	return validate.Struct(cfg.Private)
}
