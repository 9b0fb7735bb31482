package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultEnv      = EnvLocal
	defaultLogLevel = "info"
	defaultDataDir  = ".folio"
)

type Config struct {
	Env        string `mapstructure:"app_env"`
	LogLevel   string `mapstructure:"log_level"`
	DataDir    string `mapstructure:"data_dir"`
	DBPath     string `mapstructure:"db_path"`
	MirrorPath string `mapstructure:"mirror_path"`
}

// MustLoad loads the configuration from the environment, creating the
// data directory on first use.
func MustLoad() *Config {
	// Load .env if present next to the binary or one level up.
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("DATA_DIR", defaultDataDir)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == defaultDataDir {
		dataDir = filepath.Join(homeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fmt.Printf("failed to create data directory: %v\n", err)
	}

	config := &Config{
		Env:        viper.GetString("APP_ENV"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "folio.db"),
		MirrorPath: filepath.Join(dataDir, "mirror"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	return nil
}

// IsProd reports whether the environment is prod.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev reports whether the environment is dev.
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal reports whether the environment is local.
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
