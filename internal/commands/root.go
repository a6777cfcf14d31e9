// internal/commands/root.go
package featcmp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/featcmp/internal/appconfig"
	"github.com/mwiater/featcmp/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// localFlagKeys maps subcommand flags onto config keys. They are bound when
// the owning command runs so commands sharing a flag name do not clash.
var localFlagKeys = map[string]string{
	"file":              "input",
	"to-latex":          "toLatex",
	"highlight-min-max": "highlightMinMax",
	"num-decimals":      "numDecimals",
	"unknown-placement": "unknownPlacement",
	"export":            "export",
	"plot":              "plot",
	"plot-metric":       "plotMetric",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "featcmp",
	Short:        "featcmp: compare binary-classification metrics across feature sets",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}
		if err := bindLocalFlags(cmd.Flags()); err != nil {
			return err
		}
		appconfig.SetDefaults(viper.GetViper())
		if err := appconfig.ApplyPreset(viper.GetViper(), viper.GetString("preset")); err != nil {
			return err
		}

		cfg := appconfig.Defaults()
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.LogDebug("[CONFIG] command=%s config=%q", cmd.CommandPath(), cfg.ConfigPath)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("preset", "", "report preset: "+strings.Join(appconfig.PresetNames(), ", "))

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))

	appconfig.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix(appconfig.EnvPrefix)
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file leaves defaults,
// environment and flags in charge.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

func bindLocalFlags(flags *pflag.FlagSet) error {
	for name, key := range localFlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		cfg := appconfig.Defaults()
		return &cfg
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
