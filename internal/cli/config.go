package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration.
type Config struct {
	DBPath         string `yaml:"db_path" mapstructure:"db_path"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level"`
	Optimize       bool   `yaml:"optimize" mapstructure:"optimize"`
	ScrambleLength int    `yaml:"scramble_length" mapstructure:"scramble_length"`
	ReplaySpeedMs  int    `yaml:"replay_speed_ms" mapstructure:"replay_speed_ms"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBPath:         "",
		LogLevel:       "warn",
		Optimize:       true,
		ScrambleLength: 20,
		ReplaySpeedMs:  400,
	}
}

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to ~/.cubesolver/config.yaml (or the
path given with --config). Every key can also be set through the environment
with the CUBESOLVER_ prefix, e.g. CUBESOLVER_SCRAMBLE_LENGTH=30.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
}

func configDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cubesolver")
}

// initConfig reads the config file and environment into viper.
func initConfig() {
	d := DefaultConfig()
	viper.SetDefault("db_path", d.DBPath)
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("optimize", d.Optimize)
	viper.SetDefault("scramble_length", d.ScrambleLength)
	viper.SetDefault("replay_speed_ms", d.ReplaySpeedMs)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("CUBESOLVER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
	}

	if f := rootCmd.PersistentFlags().Lookup("db"); f != nil {
		viper.BindPFlag("db_path", f)
	}
}

func configFileUsed() string {
	return viper.ConfigFileUsed()
}

// loadConfig unmarshals and validates the effective configuration.
func loadConfig() (*Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := validateConfig(&c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

func validateConfig(c *Config) error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.ScrambleLength < 0 {
		return fmt.Errorf("scramble_length cannot be negative")
	}
	if c.ReplaySpeedMs <= 0 {
		return fmt.Errorf("replay_speed_ms must be positive")
	}
	return nil
}

// SaveConfig writes c as YAML to path, creating its directory.
func SaveConfig(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = filepath.Join(configDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := SaveConfig(DefaultConfig(), path); err != nil {
		return err
	}

	fmt.Printf("Configuration saved to: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if f := configFileUsed(); f != "" {
		fmt.Printf("# %s\n", f)
	}
	fmt.Print(string(data))
	return nil
}
