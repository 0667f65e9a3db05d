package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FORMSTATE_LOG_LEVEL.
const EnvPrefix = "FORMSTATE"

// Config holds the resolved settings of one invocation.
// Precedence: flags > environment (.env included) > config file > defaults.
type Config struct {
	Definition   string
	OpenAPI      string
	Operation    string
	Values       []string
	ShowErrors   bool
	Output       string
	Submit       string
	Format       string
	TemplatesDir string
	Theme        string
	Variant      string
	Styles       bool
	LogLevel     string
	Timeout      time.Duration
	Confirm      bool
	MaxRetries   int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "warn")
	v.SetDefault("format", "json")
	v.SetDefault("submit", "Submit")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("max-retries", 3)
	return v
}

// loadConfig merges the optional .env file, the optional config file and the
// command flags into a Config.
func loadConfig(v *viper.Viper, cmd *cobra.Command, envFile, configFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cli: load env file %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return Config{}, fmt.Errorf("cli: config file: %w", err)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("cli: read config %s: %w", configFile, err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("cli: bind flags: %w", err)
	}

	values := v.GetStringSlice("set")
	if flag := cmd.Flags().Lookup("set"); flag != nil && flag.Changed {
		// Read the array directly so values containing commas stay intact.
		values, _ = cmd.Flags().GetStringArray("set")
	}

	return Config{
		Definition:   v.GetString("definition"),
		OpenAPI:      v.GetString("openapi"),
		Operation:    v.GetString("operation"),
		Values:       values,
		ShowErrors:   v.GetBool("show-errors"),
		Output:       v.GetString("output"),
		Submit:       v.GetString("submit"),
		Format:       v.GetString("format"),
		TemplatesDir: v.GetString("templates"),
		Theme:        v.GetString("theme"),
		Variant:      v.GetString("variant"),
		Styles:       v.GetBool("styles"),
		LogLevel:     v.GetString("log-level"),
		Timeout:      v.GetDuration("timeout"),
		Confirm:      v.GetBool("confirm"),
		MaxRetries:   v.GetInt("max-retries"),
	}, nil
}
