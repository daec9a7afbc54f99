package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Storage struct {
		Driver string `mapstructure:"driver"`
		File   struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"file"`
	} `mapstructure:"storage"`
	Database struct {
		Host           string `mapstructure:"host"`
		Port           string `mapstructure:"port"`
		User           string `mapstructure:"user"`
		Password       string `mapstructure:"password"`
		Name           string `mapstructure:"name"`
		SSLMode        string `mapstructure:"sslmode"`
		MigrationsPath string `mapstructure:"migrations_path"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Key      string `mapstructure:"key"`
	} `mapstructure:"redis"`
	Log struct {
		Level      string `mapstructure:"level"`
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
	Ledger struct {
		UniqueIDMin   int `mapstructure:"unique_id_min"`
		UniqueIDMax   int `mapstructure:"unique_id_max"`
		MaxIDAttempts int `mapstructure:"max_id_attempts"`
	} `mapstructure:"ledger"`
}

var AppConfig Config

// flagKeys maps command line flags onto their configuration keys.
var flagKeys = map[string]string{
	"data-file": "storage.file.path",
	"storage":   "storage.driver",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.file.path", "accounts.txt")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrations_path", "db/migrations")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", "ledger:accounts")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "ledger.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("ledger.unique_id_min", 1000)
	v.SetDefault("ledger.unique_id_max", 9999)
	v.SetDefault("ledger.max_id_attempts", 100000)
}

// NewFlagSet declares the command line flags understood by LoadConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", ".", "directory containing config.yml")
	fs.String("data-file", "", "path of the accounts file")
	fs.String("storage", "", "storage backend: file, postgres or redis")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "log file path, empty logs to stderr")
	return fs
}

// LoadConfig reads config.yml from path (optional), applies LEDGER_* environment
// overrides and any flags that were explicitly set, and stores the result in
// AppConfig.
func LoadConfig(path string, flags *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("unable to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Ledger.UniqueIDMin > c.Ledger.UniqueIDMax {
		return fmt.Errorf("ledger.unique_id_min (%d) is greater than ledger.unique_id_max (%d)",
			c.Ledger.UniqueIDMin, c.Ledger.UniqueIDMax)
	}
	if c.Ledger.MaxIDAttempts <= 0 {
		return errors.New("ledger.max_id_attempts must be positive")
	}
	return nil
}
