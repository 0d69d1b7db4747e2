package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/buildprobe/internal/cmdline"
	"github.com/Norgate-AV/buildprobe/internal/config"
	"github.com/Norgate-AV/buildprobe/internal/switches"
)

var parseCmd = &cobra.Command{
	Use:   "parse [invocation...]",
	Short: "Parse a compiler invocation",
	Long: `Parse a csc compiler invocation into switches and values.
The invocation is read from the arguments, or from stdin when none are given.
Use -- before the invocation if it contains dash-prefixed arguments.`,
	RunE:         runParse,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
}

func init() {
	parseCmd.Flags().Bool("explain", false, "Describe well-known switches")
	parseCmd.Flags().Bool("json", false, "Print records as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.NewLoader().LoadForCommand(cmd, cwd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	raw := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read invocation: %w", err)
		}

		raw = strings.TrimRight(string(data), "\r\n")
	}

	parser := cmdline.NewParser(cmdline.WithExecutableFragment(cfg.ExecutableFragment))
	records := parser.Parse(raw)
	logger.Debug("Parsed invocation", "records", len(records), "fragment", cfg.ExecutableFragment)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), records)
	}

	return writeRecords(cmd.OutOrStdout(), records, cfg.Explain)
}

// writeRecords prints one record per line, tagged with its kind
func writeRecords(w io.Writer, records []cmdline.Argument, explain bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, arg := range records {
		var line string
		switch {
		case i == 0 && !arg.IsSwitch:
			line = "exe\t" + arg.Value
		case !arg.IsSwitch:
			line = "value\t" + arg.Value
		case arg.IsFlag():
			line = "flag\t" + arg.Name
		default:
			line = "switch\t" + arg.Name + "=" + arg.Value
		}

		if explain && arg.IsSwitch && switches.IsKnown(arg.Name) {
			line += "\t" + switches.Describe(arg.Name)
		}

		if _, err := fmt.Fprintln(tw, line); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
