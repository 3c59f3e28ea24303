package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"

	ConcurrentStartReject  = "reject"
	ConcurrentStartReplace = "replace"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Database   DatabaseConfig   `mapstructure:"database"`
	PlanAPI    PlanAPIConfig    `mapstructure:"plan_api"`
	Session    SessionConfig    `mapstructure:"session"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

// DictionaryConfig selects where the word table is loaded from.
// Path is only used by the sqlite3 driver; mysql uses the Database block.
type DictionaryConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=sqlite3 mysql"`
	Path            string `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Table           string `mapstructure:"table" validate:"required"`
	ConnectAttempts uint   `mapstructure:"connect_attempts" validate:"min=1"`
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
}

type PlanAPIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type SessionConfig struct {
	OnConcurrentStart string `mapstructure:"on_concurrent_start" validate:"oneof=reject replace"`
	StatusWorkers     int    `mapstructure:"status_workers" validate:"min=1"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
	ReportTemplate  string `mapstructure:"report_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
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
		v.AddConfigPath("$HOME/.config/vocadrill")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dictionary.driver", DriverSQLite)
	v.SetDefault("dictionary.path", filepath.Join("assets", "dictionary.db"))
	v.SetDefault("dictionary.table", "words")
	v.SetDefault("dictionary.connect_attempts", 3)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "vocadrill")
	v.SetDefault("database.username", "user")
	v.SetDefault("plan_api.timeout_seconds", 10)
	v.SetDefault("session.on_concurrent_start", ConcurrentStartReject)
	v.SetDefault("session.status_workers", 4)
	// Report template is optional - the embedded template is used when empty
	v.SetDefault("outputs.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))

	if err := v.BindEnv("plan_api.base_url", "VOCADRILL_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCADRILL_API_URL environment variable: %w", err)
	}
	// Keep the API token out of config files
	if err := v.BindEnv("plan_api.token", "VOCADRILL_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCADRILL_API_TOKEN environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
