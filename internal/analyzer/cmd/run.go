package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [bytecode|file]",
	Short: "Run a single non-interactive analysis",
	Long: `Run a single analysis in non-interactive mode and exit.
The input can be a hex string or a path to a .bin/.hex file.`,
	Example: `
# Analyze a bytecode string
bytecode-analyzer run 0x6080604052

# Analyze a file and emit JSON
bytecode-analyzer run contract.bin --json
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		asJSON, _ := cmd.Flags().GetBool("json")
		maxBytes, _ := cmd.Flags().GetInt("max-bytes")

		if !quiet {
			slog.Info("Running analysis", "input", args[0])
		}

		code, err := resolveInput(args[0], maxBytes)
		if err != nil {
			return err
		}
		return runAnalysis(code, asJSON)
	},
}

func init() {
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress log output")
	runCmd.Flags().BoolP("json", "j", false, "Output results as JSON")
}
