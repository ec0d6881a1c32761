package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	App struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
}

// LoadConfig reads config/config.yaml when present and then applies
// environment overrides, so a container can run on environment alone.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.Email.SMTPHost = "smtp.gmail.com"
	cfg.Email.SMTPPort = 587

	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	overrideString(&cfg.App.BaseURL, "BASE_URL")
	overrideString(&cfg.Database.DSN, "DATABASE_URL")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET_KEY")
	overrideString(&cfg.Email.SMTPHost, "MAIL_SERVER")
	overrideInt(&cfg.Email.SMTPPort, "MAIL_PORT")
	overrideString(&cfg.Email.SMTPUser, "MAIL_USERNAME")
	overrideString(&cfg.Email.SMTPPassword, "MAIL_PASSWORD")
	overrideString(&cfg.Email.FromEmail, "MAIL_FROM")
	overrideInt(&cfg.Server.Port, "PORT")

	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUser
	}
	return cfg
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
