package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/buildprobe/internal/build"
	"github.com/Norgate-AV/buildprobe/internal/cmdline"
	"github.com/Norgate-AV/buildprobe/internal/config"
	"github.com/Norgate-AV/buildprobe/internal/events"
	"github.com/Norgate-AV/buildprobe/internal/pathutil"
	"github.com/Norgate-AV/buildprobe/internal/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <events-file>",
	Short: "Inspect a build unit from its events",
	Long: `Replay the build events recorded for one project and print what was compiled:
source files, references, project references and package references.`,
	RunE:         runInspect,
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
}

func init() {
	inspectCmd.Flags().Bool("no-store", false, "Do not save the result snapshot")
	inspectCmd.Flags().Bool("json", false, "Print the snapshot as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	absFile, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := filepath.Dir(absFile)
	cfg, err := config.NewLoader().LoadForCommand(cmd, dir)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	unit, err := events.DecodeFile(absFile)
	if err != nil {
		return err
	}

	unit.Project = pathutil.Resolve(dir, unit.Project)

	parser := cmdline.NewParser(cmdline.WithExecutableFragment(cfg.ExecutableFragment))
	result, err := unit.NewResult(build.WithParser(parser), build.WithLogger(logger))
	if err != nil {
		return err
	}

	unit.Apply(result)
	if _, ok := result.Arguments(); !ok {
		logger.Warn("No compiler invocation recorded", "project", result.ProjectFilePath())
	}

	snapshot := result.Snapshot()

	if !cfg.NoStore {
		if err := saveSnapshot(cfg.StoreDir, snapshot, logger); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), snapshot)
	}

	return writeSnapshot(cmd.OutOrStdout(), snapshot)
}

func saveSnapshot(dir string, snapshot *build.Snapshot, logger *log.Logger) error {
	s, err := store.Open(dir)
	if err != nil {
		return err
	}
	defer s.Close()

	changed, err := s.Changed(snapshot)
	if err != nil {
		return err
	}

	if changed {
		logger.Info("New or changed compiler invocation", "project", snapshot.ProjectFilePath)
	}

	if err := s.Put(snapshot); err != nil {
		return err
	}

	logger.Debug("Saved snapshot", "id", snapshot.ID, "store", s.Dir())
	return nil
}

// writeSnapshot prints the derived views of a snapshot
func writeSnapshot(w io.Writer, s *build.Snapshot) error {
	status := "failed"
	if s.Succeeded {
		status = "succeeded"
	}

	fmt.Fprintf(w, "Project: %s\nIdentity: %s\nStatus: %s\nTarget framework: %s\n",
		s.ProjectFilePath, s.ID, status, s.TargetFramework)

	writeList(w, "Source files", s.SourceFiles)
	writeList(w, "References", s.References)
	writeList(w, "Project references", s.ProjectReferences)

	packages := make([]string, 0, len(s.PackageReferences))
	for id, metadata := range s.PackageReferences {
		if v, ok := metadata["Version"]; ok {
			id += " " + v
		}
		packages = append(packages, id)
	}
	sort.Strings(packages)

	writeList(w, "Package references", packages)
	return nil
}

func writeList(w io.Writer, title string, values []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
