package cmd

import (
	"fmt"
	"strings"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/disasm"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Follow a file of bytecode lines and analyze each as it arrives",
	Long: `Tail a file containing one hex bytecode string per line and analyze every
appended line, printing a one-line summary (or full JSON with --json).
Useful for feeding the analyzer from another process.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		maxBytes, _ := cmd.Flags().GetInt("max-bytes")

		lg := logging.NewLogger()
		defer lg.Close()

		t, err := tail.TailFile(args[0], tail.Config{
			Follow: true,
			ReOpen: true,
			Logger: tail.DiscardingLogger,
		})
		if err != nil {
			return fmt.Errorf("failed to tail %s: %w", args[0], err)
		}
		defer t.Cleanup()

		lg.Info("Watching for bytecode", "file", args[0])

		for line := range t.Lines {
			if line.Err != nil {
				lg.Error("Tail error", "error", line.Err)
				continue
			}
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			if err := watchLine(text, maxBytes, asJSON); err != nil {
				fmt.Printf("%s: %v\n", truncateInput(text), err)
			}
		}
		return nil
	},
}

func watchLine(text string, maxBytes int, asJSON bool) error {
	code, err := resolveInput(text, maxBytes)
	if err != nil {
		return err
	}
	if asJSON {
		return runAnalysis(code, true)
	}
	res := disasm.Parse(code)
	fmt.Printf("%s: %d bytes, %d instructions, %d errors\n",
		truncateInput(text), res.ByteLength, len(res.Instructions), len(res.Errors))
	return nil
}

// truncateInput keeps summary lines readable for long bytecode strings.
func truncateInput(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func init() {
	watchCmd.Flags().BoolP("json", "j", false, "Output full JSON per line")
}
