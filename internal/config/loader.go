package config

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the command flags that override them
var flagKeys = map[string]string{
	"executable_fragment": "fragment",
	"store_dir":           "store-dir",
	"no_store":            "no-store",
	"verbose":             "verbose",
	"explain":             "explain",
}

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForCommand loads configuration for a command. Local config is searched
// for from startDir upwards
func (l *Loader) LoadForCommand(cmd *cobra.Command, startDir string) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig(startDir)
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("executable_fragment", DefaultExecutableFragment)
	viper.SetDefault("store_dir", DefaultStoreDir)
	viper.SetDefault("no_store", DefaultNoStore)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("explain", DefaultExplain)
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	if globalPath := FindGlobalConfig(); globalPath != "" {
		viper.SetConfigFile(globalPath)
		_ = viper.ReadInConfig()
	}
}

// loadLocalConfig merges local configuration found from dir upwards
func (l *Loader) loadLocalConfig(dir string) {
	if dir == "" {
		return
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return // silently ignore, Load() will handle validation
	}

	if localPath := FindLocalConfig(absDir); localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.MergeInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	for key, name := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}
