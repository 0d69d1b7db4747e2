package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/buildprobe/internal/cmdline"
	"github.com/Norgate-AV/buildprobe/internal/store"
)

// Default configuration values
const (
	DefaultExecutableFragment = cmdline.DefaultExecutableFragment
	DefaultStoreDir           = store.DefaultStoreDir
	DefaultNoStore            = false
	DefaultVerbose            = false
	DefaultExplain            = false
)

// Holds the configuration options for buildprobe
type Config struct {
	// Text identifying the compiler token in an invocation (e.g., csc.)
	ExecutableFragment string

	// Directory holding the snapshot store
	StoreDir string

	// Skip saving snapshots
	NoStore bool

	// Enable verbose output
	Verbose bool

	// Describe well-known switches when printing parsed invocations
	Explain bool
}

func Load() (*Config, error) {
	cfg := &Config{
		ExecutableFragment: viper.GetString("executable_fragment"),
		StoreDir:           viper.GetString("store_dir"),
		NoStore:            viper.GetBool("no_store"),
		Verbose:            viper.GetBool("verbose"),
		Explain:            viper.GetBool("explain"),
	}

	// Apply defaults if not set
	if cfg.StoreDir == "" {
		cfg.StoreDir = DefaultStoreDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ExecutableFragment) == "" {
		return fmt.Errorf("executable fragment must not be empty")
	}

	abs, err := filepath.Abs(c.StoreDir)
	if err != nil {
		return fmt.Errorf("invalid store directory: %v", err)
	}

	c.StoreDir = abs
	return nil
}
