package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("fragment", "", "Executable fragment")
	cmd.Flags().String("store-dir", "", "Store directory")
	cmd.Flags().Bool("no-store", false, "Disable store")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	cmd.Flags().Bool("explain", false, "Explain switches")

	return cmd
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_SetupViperDefaults(t *testing.T) {
	viper.Reset()
	loader := NewLoader()
	loader.setupViperDefaults()

	assert.Equal(t, "csc.", viper.GetString("executable_fragment"))
	assert.Equal(t, ".buildprobe-store", viper.GetString("store_dir"))
	assert.Equal(t, false, viper.GetBool("no_store"))
	assert.Equal(t, false, viper.GetBool("verbose"))
	assert.Equal(t, false, viper.GetBool("explain"))
}

func TestLoader_LoadGlobalConfig(t *testing.T) {
	tempDir := t.TempDir()
	globalDir := filepath.Join(tempDir, "buildprobe")
	err := os.Mkdir(globalDir, 0o755)
	require.NoError(t, err)

	t.Run("loads yaml config", func(t *testing.T) {
		viper.Reset()
		configPath := filepath.Join(globalDir, "config.yml")
		configContent := `executable_fragment: "vbc."
verbose: true`
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)
		defer os.Remove(configPath)

		t.Setenv("APPDATA", tempDir)

		loader := NewLoader()
		loader.loadGlobalConfig()

		assert.Equal(t, "vbc.", viper.GetString("executable_fragment"))
		assert.Equal(t, true, viper.GetBool("verbose"))
	})

	t.Run("loads toml config", func(t *testing.T) {
		viper.Reset()
		configPath := filepath.Join(globalDir, "config.toml")
		err := os.WriteFile(configPath, []byte(`store_dir = "/var/lib/buildprobe"`), 0o644)
		require.NoError(t, err)
		defer os.Remove(configPath)

		t.Setenv("APPDATA", tempDir)

		loader := NewLoader()
		loader.loadGlobalConfig()

		assert.Equal(t, "/var/lib/buildprobe", viper.GetString("store_dir"))
	})

	t.Run("handles missing config gracefully", func(t *testing.T) {
		viper.Reset()
		t.Setenv("APPDATA", t.TempDir())

		loader := NewLoader()
		assert.NotPanics(t, func() {
			loader.loadGlobalConfig()
		})
	})
}

func TestLoader_LoadLocalConfig(t *testing.T) {
	t.Run("walks up directory tree to find config", func(t *testing.T) {
		viper.Reset()

		tempDir := t.TempDir()
		subDir := filepath.Join(tempDir, "src", "App")
		require.NoError(t, os.MkdirAll(subDir, 0o755))

		configPath := filepath.Join(tempDir, ".buildprobe.yml")
		require.NoError(t, os.WriteFile(configPath, []byte(`explain: true`), 0o644))

		loader := NewLoader()
		loader.loadLocalConfig(subDir)

		assert.Equal(t, true, viper.GetBool("explain"))
	})

	t.Run("merges over global config", func(t *testing.T) {
		viper.Reset()

		globalDir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(globalDir, "buildprobe"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "buildprobe", "config.yml"),
			[]byte("executable_fragment: \"vbc.\"\nverbose: true"), 0o644))
		t.Setenv("APPDATA", globalDir)

		localDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(localDir, ".buildprobe.yml"),
			[]byte("verbose: false"), 0o644))

		loader := NewLoader()
		loader.loadGlobalConfig()
		loader.loadLocalConfig(localDir)

		assert.Equal(t, "vbc.", viper.GetString("executable_fragment"))
		assert.Equal(t, false, viper.GetBool("verbose"))
	})

	t.Run("handles empty dir", func(t *testing.T) {
		viper.Reset()

		loader := NewLoader()
		assert.NotPanics(t, func() {
			loader.loadLocalConfig("")
		})
	})
}

func TestLoader_BindCommandFlags(t *testing.T) {
	viper.Reset()

	cmd := newTestCommand()
	cmd.Flags().Set("fragment", "fsc.")
	cmd.Flags().Set("no-store", "true")
	cmd.Flags().Set("verbose", "true")

	loader := NewLoader()
	loader.bindCommandFlags(cmd)

	assert.Equal(t, "fsc.", viper.GetString("executable_fragment"))
	assert.Equal(t, true, viper.GetBool("no_store"))
	assert.Equal(t, true, viper.GetBool("verbose"))
}

func TestLoader_BindCommandFlags_MissingFlags(t *testing.T) {
	viper.Reset()

	loader := NewLoader()
	assert.NotPanics(t, func() {
		loader.bindCommandFlags(&cobra.Command{})
	})
}

func TestLoader_LoadForCommand_Integration(t *testing.T) {
	viper.Reset()

	// Global config
	globalDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(globalDir, "buildprobe"), 0o755))
	globalContent := `executable_fragment: "vbc."
store_dir: "global-store"
verbose: false`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "buildprobe", "config.yml"), []byte(globalContent), 0o644))
	t.Setenv("APPDATA", globalDir)

	// Local config
	localDir := t.TempDir()
	localContent := `store_dir: "local-store"
verbose: true`
	require.NoError(t, os.WriteFile(filepath.Join(localDir, ".buildprobe.yml"), []byte(localContent), 0o644))

	cmd := newTestCommand()
	cmd.Flags().Set("fragment", "csc.")

	loader := NewLoader()
	cfg, err := loader.LoadForCommand(cmd, localDir)
	require.NoError(t, err)

	// Flag value should win
	assert.Equal(t, "csc.", cfg.ExecutableFragment)
	// Local config should override global
	assert.Equal(t, true, cfg.Verbose)
	assert.Equal(t, "local-store", filepath.Base(cfg.StoreDir))
	assert.True(t, filepath.IsAbs(cfg.StoreDir))
}
