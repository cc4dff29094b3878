package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/georecon/pkg/constants"
	georeconerrors "github.com/agentstation/georecon/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. GEORECON_REPORT_PATH.
const envPrefix = "GEORECON"

// Config holds the application configuration loaded from config files,
// environment variables, .env files and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Inputs
	ContinentsPath string
	CodesPath      string
	OverlayPath    string

	// Matching
	FoldAccents bool
	Workers     int

	// Unresolved report
	ReportPath   string
	ReportFormat string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (GEORECON_*)
//  3. .env and .env.local files
//  4. Config file (configFile, or .georecon.yaml in $HOME or the working directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".georecon")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config is fine; a named one that cannot be read is not.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, georeconerrors.NewConfigError("config", "reading config file", err)
		}
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ContinentsPath: v.GetString("reference.continents"),
		CodesPath:      v.GetString("reference.codes"),
		OverlayPath:    v.GetString("overlay"),

		FoldAccents: v.GetBool("match.fold_accents"),
		Workers:     v.GetInt("workers"),

		ReportPath:   v.GetString("report.path"),
		ReportFormat: v.GetString("report.format"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reference.continents", constants.DefaultContinentsFile)
	v.SetDefault("reference.codes", constants.DefaultCodesFile)
	v.SetDefault("overlay", "")
	v.SetDefault("match.fold_accents", false)
	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("report.path", constants.DefaultReportFile)
	v.SetDefault("report.format", "")
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags copies every flag the user set explicitly onto the config,
// so flags take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	setString := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	setBool := func(name string, dst *bool) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String() == "true"
		}
	}

	setBool("verbose", &c.Verbose)
	setBool("quiet", &c.Quiet)
	setBool("no-color", &c.NoColor)
	setString("format", &c.Format)
	setString("log-level", &c.LogLevel)
	setString("continents", &c.ContinentsPath)
	setString("codes", &c.CodesPath)
	setString("overlay", &c.OverlayPath)
	setBool("fold-accents", &c.FoldAccents)
	setString("report", &c.ReportPath)
	setString("report-format", &c.ReportFormat)
	if f := flags.Lookup("workers"); f != nil && f.Changed {
		if n, err := flags.GetInt("workers"); err == nil {
			c.Workers = n
		}
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides a variable that is already set, so .env.local is
// loaded before .env to take precedence over it.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
