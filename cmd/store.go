package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/buildprobe/internal/config"
	"github.com/Norgate-AV/buildprobe/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage saved result snapshots",
}

var storeListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List saved snapshots",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			snapshots, err := s.List()
			if err != nil {
				return err
			}

			for _, snapshot := range snapshots {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					snapshot.ID, snapshot.Timestamp.Format("2006-01-02 15:04:05"), snapshot.ProjectFilePath)
			}

			return nil
		})
	},
}

var storeShowCmd = &cobra.Command{
	Use:          "show <id>",
	Short:        "Show a saved snapshot",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			snapshot, err := s.Get(args[0])
			if err != nil {
				return err
			}

			if snapshot == nil {
				return fmt.Errorf("no snapshot with id %s", args[0])
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), snapshot)
			}

			return writeSnapshot(cmd.OutOrStdout(), snapshot)
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:          "delete <id>",
	Short:        "Remove a saved snapshot",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			if err := s.Delete(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

var storeClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Remove all saved snapshots",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			if err := s.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Store cleared")
			return nil
		})
	},
}

var storeStatsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Show store statistics",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			count, size, err := s.Stats()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Snapshots: %d\nSize: %d bytes\nLocation: %s\n", count, size, s.Dir())
			return nil
		})
	},
}

func init() {
	storeShowCmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	storeCmd.AddCommand(storeListCmd, storeShowCmd, storeDeleteCmd, storeClearCmd, storeStatsCmd)
}

// withStore loads configuration, opens the store and runs fn against it
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.NewLoader().LoadForCommand(cmd, cwd)
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.StoreDir)
	if err != nil {
		return err
	}
	defer s.Close()

	newLogger(cmd.ErrOrStderr(), cfg.Verbose).Debug("Opened store", "dir", s.Dir())
	return fn(s)
}
