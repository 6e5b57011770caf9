package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/steamtrack/steamtrack/internal/config"
)

// Config holds the CLI configuration loaded from flags, environment
// variables, .env files, and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Engine configuration
	RegionCC     string
	RegionLang   string
	DetectRegion bool
	Proxy        string
	PinsFile     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of
// precedence: command-line flags (bound by cobra), environment
// variables, .env files, the config file (~/.steamtrack.yaml), and
// defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("STEAMTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".steamtrack")
	}
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		RegionCC:     viper.GetString(config.KeyRegionCC),
		RegionLang:   viper.GetString(config.KeyRegionLang),
		DetectRegion: viper.GetBool("region.detect"),
		Proxy:        viper.GetString(config.KeyProxy),
		PinsFile:     viper.GetString("pins.file"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if cfg.PinsFile == "" {
		cfg.PinsFile = defaultPinsFile()
	}
	return cfg, nil
}

// Region assembles the storefront region from the loaded settings.
func (c *Config) Region() config.Region {
	v := viper.New()
	v.Set(config.KeyRegionCC, c.RegionCC)
	v.Set(config.KeyRegionLang, c.RegionLang)
	return config.FromViper(v)
}

// defaultPinsFile places the pin list under the user config directory.
func defaultPinsFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "steamtrack", "pins.yaml")
	}
	return "pins.yaml"
}

// loadEnvFiles loads .env files from the working directory. Missing
// files are fine; existing environment variables win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
