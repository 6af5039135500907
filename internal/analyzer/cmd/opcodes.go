package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/analyzer/styles"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/evm"
)

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "Show the EVM opcode reference",
	Long:  "Print the full opcode catalog: byte value, mnemonic, immediate size, and description.",
	RunE: func(cmd *cobra.Command, args []string) error {
		md := opcodeReferenceMarkdown()

		if !term.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(md)
			return nil
		}

		width := 100
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
		renderer := styles.GetMarkdownRenderer(width - 2)
		rendered, err := renderer.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render reference: %w", err)
		}
		fmt.Print(rendered)
		return nil
	},
}

func opcodeReferenceMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# EVM Opcode Reference (%s)\n\n", evm.Version)
	fmt.Fprintf(&b, "%d assigned opcodes.\n\n", evm.Count())
	b.WriteString("| Byte | Mnemonic | Immediate | Description |\n")
	b.WriteString("|------|----------|-----------|-------------|\n")
	for v := 0; v <= 0xff; v++ {
		info, ok := evm.Lookup(byte(v))
		if !ok {
			continue
		}
		imm := "-"
		if info.ImmediateSize > 0 {
			imm = fmt.Sprintf("%d", info.ImmediateSize)
		}
		fmt.Fprintf(&b, "| 0x%02x | %s | %s | %s |\n", v, info.Name, imm, info.Description)
	}
	return b.String()
}
