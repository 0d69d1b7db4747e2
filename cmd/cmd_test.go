package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/buildprobe/internal/build"
	"github.com/Norgate-AV/buildprobe/internal/cmdline"
)

const eventsDocument = `project: App/App.csproj
events:
  - properties:
      TargetFramework: net8.0
    items:
      PackageReference:
        - spec: Serilog
          metadata:
            Version: "3.1.0"
  - invocation: "csc.exe /noconfig /reference:System.dll Program.cs"
    primary: true
succeeded: true
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Setenv("APPDATA", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	records := []cmdline.Argument{
		cmdline.Positional("csc.exe"),
		cmdline.Flag("nologo"),
		cmdline.Switch("out", "App.dll"),
		cmdline.Positional("Program.cs"),
	}

	require.NoError(t, writeRecords(&buf, records, false))

	assert.Equal(t, "exe     csc.exe\n"+
		"flag    nologo\n"+
		"switch  out=App.dll\n"+
		"value   Program.cs\n", buf.String())
}

func TestWriteRecords_Explain(t *testing.T) {
	var buf bytes.Buffer
	records := []cmdline.Argument{
		cmdline.Positional("csc.exe"),
		cmdline.Switch("reference", "System.dll"),
		cmdline.Flag("frobnicate"),
	}

	require.NoError(t, writeRecords(&buf, records, true))

	output := buf.String()
	assert.Contains(t, output, "Referenced assembly")
	assert.Contains(t, output, "flag    frobnicate\n")
	assert.NotContains(t, output, "Unknown switch")
}

func TestWriteSnapshot(t *testing.T) {
	var buf bytes.Buffer
	snapshot := &build.Snapshot{
		ID:                "6f2a8c1e-3b4d-4e5f-8a9b-0c1d2e3f4a5b",
		ProjectFilePath:   "/repo/App/App.csproj",
		Succeeded:         true,
		TargetFramework:   "net8.0",
		SourceFiles:       []string{"/repo/App/Program.cs"},
		References:        []string{"System.dll"},
		PackageReferences: map[string]map[string]string{"Serilog": {"Version": "3.1.0"}, "Polly": {}},
	}

	require.NoError(t, writeSnapshot(&buf, snapshot))

	output := buf.String()
	assert.Contains(t, output, "Project: /repo/App/App.csproj")
	assert.Contains(t, output, "Status: succeeded")
	assert.Contains(t, output, "Target framework: net8.0")
	assert.Contains(t, output, "Source files (1):\n  /repo/App/Program.cs\n")
	assert.Contains(t, output, "Project references (0):\n")
	assert.Contains(t, output, "Package references (2):\n  Polly\n  Serilog 3.1.0\n")
}

func TestParseCommand(t *testing.T) {
	output, err := execute(t, "", "parse", "csc.exe", "/nologo", "a.cs")
	require.NoError(t, err)

	assert.Contains(t, output, "flag    nologo")
	assert.Contains(t, output, "value   a.cs")
}

func TestParseCommand_Stdin(t *testing.T) {
	output, err := execute(t, "csc.exe /out:\"My App.dll\"\n", "parse")
	require.NoError(t, err)

	assert.Contains(t, output, "switch  out=My App.dll")
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	eventsFile := filepath.Join(dir, "events.yml")
	require.NoError(t, os.WriteFile(eventsFile, []byte(eventsDocument), 0o644))
	storeDir := filepath.Join(dir, "store")

	output, err := execute(t, "", "inspect", eventsFile, "--store-dir", storeDir)
	require.NoError(t, err)

	assert.Contains(t, output, "Project: "+filepath.Join(dir, "App", "App.csproj"))
	assert.Contains(t, output, "Target framework: net8.0")
	assert.Contains(t, output, filepath.Join(dir, "App", "Program.cs"))
	assert.Contains(t, output, "System.dll")
	assert.Contains(t, output, "Serilog 3.1.0")

	output, err = execute(t, "", "store", "stats", "--store-dir", storeDir)
	require.NoError(t, err)
	assert.Contains(t, output, "Snapshots: 1")

	output, err = execute(t, "", "store", "list", "--store-dir", storeDir)
	require.NoError(t, err)
	assert.Contains(t, output, filepath.Join(dir, "App", "App.csproj"))
}

func TestStoreDeleteCommand(t *testing.T) {
	dir := t.TempDir()
	eventsFile := filepath.Join(dir, "events.yml")
	require.NoError(t, os.WriteFile(eventsFile, []byte(eventsDocument), 0o644))
	storeDir := filepath.Join(dir, "store")

	_, err := execute(t, "", "inspect", eventsFile, "--store-dir", storeDir)
	require.NoError(t, err)

	id := build.PathIdentity(filepath.Join(dir, "App", "App.csproj")).String()

	output, err := execute(t, "", "store", "list", "--store-dir", storeDir)
	require.NoError(t, err)
	assert.Contains(t, output, id)

	output, err = execute(t, "", "store", "delete", id, "--store-dir", storeDir)
	require.NoError(t, err)
	assert.Equal(t, "Deleted "+id+"\n", output)

	output, err = execute(t, "", "store", "stats", "--store-dir", storeDir)
	require.NoError(t, err)
	assert.Contains(t, output, "Snapshots: 0")
}

func TestInspectCommand_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	eventsFile := filepath.Join(dir, "events.yml")
	require.NoError(t, os.WriteFile(eventsFile, []byte("events: []\n"), 0o644))

	_, err := execute(t, "", "inspect", eventsFile, "--store-dir", filepath.Join(dir, "store"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project file path is required")
}
