package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/format"
)

// AnalyzerConfig represents configuration for the analyzer
type AnalyzerConfig struct {
	Debug    bool `json:"debug" jsonschema:"title=Debug,description=Enable debug logging"`
	MaxBytes int  `json:"maxBytes" jsonschema:"title=Max Bytes,description=Maximum accepted bytecode size in bytes"`
	NoColor  bool `json:"noColor" jsonschema:"title=No Color,description=Disable colorized output"`
}

var schemaCmd = &cobra.Command{
	Use:    "schema [config|output]",
	Short:  "Generate JSON schema",
	Long:   "Generate JSON schema for the analyzer configuration or the analysis output format",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target any = &AnalyzerConfig{}
		if len(args) == 1 && args[0] == "output" {
			target = &format.Output{}
		}

		reflector := new(jsonschema.Reflector)
		bts, err := json.MarshalIndent(reflector.Reflect(target), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(bts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
