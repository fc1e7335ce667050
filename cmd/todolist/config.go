// Config loading for the todolist CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todolist/internal/paths"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyMaxProjects       = "max_projects"
	cfgKeyMaxTasks          = "max_tasks"
	cfgKeyAutocloseInterval = "autoclose_interval"

	// Environment variable names for the two limits.
	envMaxProjects = "MAX_NUMBER_OF_PROJECT"
	envMaxTasks    = "MAX_NUMBER_OF_TASK"

	// Defaults applied when neither config.yaml nor the environment
	// provides a value.
	defaultMaxProjects = 5
	defaultMaxTasks    = 20
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# todolist CLI configuration

# Store-wide limits. The MAX_NUMBER_OF_PROJECT and MAX_NUMBER_OF_TASK
# environment variables override these values.
max_projects: 5
max_tasks: 20

# Periodic in-session autoclose of overdue tasks, e.g. "1m".
# Zero or unset disables the sweep.
# autoclose_interval: 0
`

// config holds everything the session needs at startup.
type config struct {
	Limits            types.Limits
	AutocloseInterval time.Duration
}

// loadConfig resolves the config directory, reads config.yaml with Viper,
// and applies environment overrides. A .env file in the working directory
// is loaded first when present, the way the original deployment supplied
// the two limit variables. A missing config.yaml is not an error.
func loadConfig(configDirFlag string) (config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	if err := ensureConfigDir(configDir); err != nil {
		return config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyMaxProjects, defaultMaxProjects)
	v.SetDefault(cfgKeyMaxTasks, defaultMaxTasks)
	v.SetDefault(cfgKeyAutocloseInterval, time.Duration(0))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	// Environment wins over config.yaml.
	if err := v.BindEnv(cfgKeyMaxProjects, envMaxProjects); err != nil {
		return config{}, fmt.Errorf("bind %s: %w", envMaxProjects, err)
	}
	if err := v.BindEnv(cfgKeyMaxTasks, envMaxTasks); err != nil {
		return config{}, fmt.Errorf("bind %s: %w", envMaxTasks, err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return config{
		Limits: types.Limits{
			MaxProjects: v.GetInt(cfgKeyMaxProjects),
			MaxTasks:    v.GetInt(cfgKeyMaxTasks),
		},
		AutocloseInterval: v.GetDuration(cfgKeyAutocloseInterval),
	}, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
