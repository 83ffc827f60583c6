// Package config loads the YAML configuration shared by the CLI and the server.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
	Network    NetworkConfig    `mapstructure:"network"`
}

// DictionaryConfig selects where the dictionary is loaded from at startup.
// Source is one of embedded, yaml or mysql; Path is used by yaml.
type DictionaryConfig struct {
	Source string `mapstructure:"source" validate:"oneof=embedded yaml mysql"`
	Path   string `mapstructure:"path" validate:"omitempty,file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

// StorageConfig configures the local key-value store of the dev lab board.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite file"`
	Path   string `mapstructure:"path" validate:"required"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type NetworkConfig struct {
	Projects []ProjectConfig `mapstructure:"projects" validate:"dive"`
}

type ProjectConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	URL         string `mapstructure:"url" validate:"required,url"`
	Description string `mapstructure:"description"`
}

var defaultProjects = []map[string]any{
	{
		"name":        "Elliot IA",
		"url":         "https://elliot-ia.github.io/",
		"description": "Assistente de gematria e simbolismo",
	},
	{
		"name":        "Dev Lab",
		"url":         "https://elliot-ia.github.io/devlab/",
		"description": "Laboratório de ideias, comentários e experimentos",
	},
	{
		"name":        "Dicionário",
		"url":         "https://elliot-ia.github.io/dicionario/",
		"description": "Significados e valores gemátricos de palavras",
	},
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/elliot")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("dictionary.source", "embedded")
	v.SetDefault("dictionary.path", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "elliot")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join("data", "elliot.db"))
	v.SetDefault("outputs.directory", "outputs")
	v.SetDefault("network.projects", defaultProjects)

	// Secrets and deployment ports come from the environment
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("server.port", "ELLIOT_SERVER_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind ELLIOT_SERVER_PORT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Dictionary.Source == "yaml" && cfg.Dictionary.Path == "" {
		return nil, fmt.Errorf("invalid configuration: dictionary.path is required when dictionary.source is yaml")
	}

	return &cfg, nil
}
