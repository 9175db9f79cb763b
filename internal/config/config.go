package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "FRAUDWATCH"

// Configuration keys.
const (
	KeyBaseURL     = "service.base_url"
	KeyTimeout     = "service.timeout"
	KeyStoragePath = "storage.path"
	KeyExportDir   = "export.dir"
	KeyLogLevel    = "logging.level"
	KeyLogFormat   = "logging.format"
	KeyLogFile     = "logging.file"
	KeyTheme       = "dashboard.theme"
)

// DefaultStoragePath is where the history snapshot cache lives.
const DefaultStoragePath = "~/.local/share/fraudwatch/history.db"

// Settings is the resolved application configuration.
type Settings struct {
	BaseURL     string
	StoragePath string
	ExportDir   string
	LogLevel    string
	LogFormat   string
	LogFile     string
	Theme       string
	Timeout     time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, 15*time.Second)
	v.SetDefault(KeyStoragePath, DefaultStoragePath)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTheme, "default")
}

// Init wires v to its sources: a .env file in the working directory, the
// config file (cfgFile, or config.yaml under ~/.config/fraudwatch or .), and
// FRAUDWATCH_* environment variables. A missing .env or config file is fine.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(fmt.Sprintf("%s/.config/fraudwatch", home))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	return nil
}

// Load resolves Settings from v. The base URL is not checked here; commands
// that talk to the service validate it when building the client.
func Load(v *viper.Viper) Settings {
	storagePath := strings.TrimSpace(v.GetString(KeyStoragePath))
	if storagePath != "" {
		storagePath = ExpandPath(storagePath)
	}

	return Settings{
		BaseURL:     strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout:     v.GetDuration(KeyTimeout),
		StoragePath: storagePath,
		ExportDir:   ExpandPath(v.GetString(KeyExportDir)),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		LogFile:     ExpandPath(v.GetString(KeyLogFile)),
		Theme:       v.GetString(KeyTheme),
	}
}
