package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Storage struct {
	// Driver selects the key-value bridge backend: memory | file | postgres.
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
}

type RabbitMQ struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type Firebase struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	// APIKey is the web API key used for the Identity Toolkit
	// password sign-in endpoint.
	APIKey string `yaml:"api_key"`
	Bucket string `yaml:"bucket"`
}

type Storefront struct {
	// DemoSeed pre-populates empty carts with the demo fixture items.
	DemoSeed          bool `yaml:"demo_seed"`
	NotificationTTLMs int  `yaml:"notification_ttl_ms"`
}

type App struct {
	Storage    Storage    `yaml:"storage"`
	Database   Database   `yaml:"database"`
	Rabbit     RabbitMQ   `yaml:"rabbitmq"`
	Firebase   Firebase   `yaml:"firebase"`
	Storefront Storefront `yaml:"storefront"`
}

func defaults() App {
	return App{
		Storage: Storage{Driver: "file", DataDir: "data"},
		Database: Database{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Rabbit:     RabbitMQ{Port: 5672, VHost: "/"},
		Storefront: Storefront{NotificationTTLMs: 3000},
	}
}

func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("read config: %w", err)
	}
	a := defaults()
	if err := yaml.Unmarshal(b, &a); err != nil {
		return App{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := a.validate(); err != nil {
		return App{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return a, nil
}

func (a App) validate() error {
	switch a.Storage.Driver {
	case "memory":
	case "file":
		if a.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the file driver")
		}
	case "postgres":
		if a.Database.Host == "" || a.Database.User == "" || a.Database.Database == "" {
			return fmt.Errorf("database host/user/database are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", a.Storage.Driver)
	}
	if a.Rabbit.Enabled && (a.Rabbit.Host == "" || a.Rabbit.User == "") {
		return fmt.Errorf("rabbitmq host/user are required when rabbitmq.enabled")
	}
	return nil
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
