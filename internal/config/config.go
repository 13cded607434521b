package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level focuspulse configuration.
type Config struct {
	APIBaseURL        string `mapstructure:"api_base_url"`
	APIToken          string `mapstructure:"api_token"`
	BridgeURL         string `mapstructure:"bridge_url"`
	PollIntervalSec   int    `mapstructure:"poll_interval_sec"`
	RewardDurationMin int    `mapstructure:"reward_duration_min"`
	RewardThreshold   int    `mapstructure:"reward_threshold"`
	Energy            Energy `mapstructure:"energy"`
	Output            Output `mapstructure:"output"`
}

// Energy defines the additive weights of the daily energy model. Productive
// minutes add, neutral and distracting minutes subtract.
type Energy struct {
	ProductiveWeight  float64 `mapstructure:"productive_weight"`
	NeutralWeight     float64 `mapstructure:"neutral_weight"`
	DistractingWeight float64 `mapstructure:"distracting_weight"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_token", "")
	v.SetDefault("bridge_url", DefaultBridgeURL)
	v.SetDefault("poll_interval_sec", DefaultPollIntervalSec)
	v.SetDefault("reward_duration_min", DefaultRewardDurationMin)
	v.SetDefault("reward_threshold", DefaultRewardThreshold)
	v.SetDefault("energy.productive_weight", DefaultEnergy.ProductiveWeight)
	v.SetDefault("energy.neutral_weight", DefaultEnergy.NeutralWeight)
	v.SetDefault("energy.distracting_weight", DefaultEnergy.DistractingWeight)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
