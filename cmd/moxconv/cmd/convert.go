package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/shapestone/shape-moxfield/pkg/moxfield"
	"github.com/spf13/cobra"
)

var (
	convertOutput string
	convertStats  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a Moxfield CSV export",
	Long: `Converts a Moxfield CSV export to the Moxfield text list format.

The export is read from the given file, or from stdin when no file (or "-")
is given. The list goes to stdout unless --output is set.

Examples:
  moxconv convert moxfield_haves.csv
  moxconv convert moxfield_haves.csv -o collection.txt
  cat moxfield_haves.csv | moxconv convert --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write the list to this file instead of stdout")
	convertCmd.Flags().BoolVar(&convertStats, "stats", false, "print record, line and dropped counts to stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	input, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out, res := moxfield.ConvertWithResult(input)
	for _, w := range res.Warnings {
		logger.Warn("tolerated malformed input", "source", source, "line", w.Line, "problem", w.Message)
	}
	logger.Debug("converted", "source", source, "records", res.Records, "lines", res.Lines, "dropped", res.Dropped)

	if out != "" && !cfg.Output.OmitTrailingNewline {
		out += "\n"
	}

	if err := writeOutput(cmd, out); err != nil {
		return err
	}

	if convertStats {
		fmt.Fprintf(cmd.ErrOrStderr(), "records: %d, lines: %d, dropped: %d\n", res.Records, res.Lines, res.Dropped)
	}
	return nil
}

// readInput returns the export text and a name for it in logs.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return string(data), args[0], nil
}

func writeOutput(cmd *cobra.Command, out string) error {
	if convertOutput == "" {
		if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(convertOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
