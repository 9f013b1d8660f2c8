package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	Mail      Mail     `mapstructure:",squash"`
	Digest    Digest   `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type App struct {
	Name     string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`
	WebURL   string `mapstructure:"web_url"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret       string `mapstructure:"auth_secret"`
	TokenTTLHour int    `mapstructure:"auth_token_ttl_hours"`
}

type Mail struct {
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"sendgrid_from_email"`
	Enabled        bool   `mapstructure:"mail_enabled"`
}

// Digest configures the daily dashboard digest job. It never touches the
// request path: the dashboard endpoint always recomputes from the store.
type Digest struct {
	CronSchedule string `mapstructure:"digest_cron"`
	Enabled      bool   `mapstructure:"digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("APP_NAME", "Upskill")
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("WEB_URL", "http://localhost:3000")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/upskill")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("SENDGRID_FROM_EMAIL", "no-reply@upskill.local")
	viper.SetDefault("MAIL_ENABLED", false)

	viper.SetDefault("DIGEST_CRON", "0 7 * * 1-5") // weekdays at 7am
	viper.SetDefault("DIGEST_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile loads .env from the usual locations so local runs work from
// any directory inside the repo.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from: ", location)
			return
		}
	}

	logrus.Warn("no .env file found in any known location")
}
