package cmd

import (
	"context"
	"fmt"
	"os"
	pathpkg "path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/analyzer/styles"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/bytecode"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/disasm"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/format"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/ui/colorize"
)

// analysis bundles one decoded input for display.
type analysis struct {
	code   []byte
	result disasm.Result
}

// resolveInput turns a command-line argument into validated bytecode. The
// argument is either a hex string, a raw binary file (.bin), or a text file
// containing a hex string.
func resolveInput(arg string, maxBytes int) ([]byte, error) {
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if strings.ToLower(pathpkg.Ext(arg)) == ".bin" {
			return bytecode.FromRaw(data, maxBytes)
		}
		return bytecode.CleanN(string(data), maxBytes)
	}
	return bytecode.CleanN(arg, maxBytes)
}

// runAnalysis is the non-TUI output path: JSON when requested, otherwise a
// colorized text listing.
func runAnalysis(code []byte, asJSON bool) error {
	res := disasm.Parse(code)

	if asJSON {
		out, err := format.JSON(res, code)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	listing := format.Listing(res)
	fmt.Print(colorize.Listing(listing))
	return nil
}

// Message types
type analyzedMsg struct {
	input string
	an    *analysis
	err   error
}

// Commands
func analyzeCmd(input string, maxBytes int) tea.Cmd {
	return func() tea.Msg {
		code, err := resolveInput(input, maxBytes)
		if err != nil {
			return analyzedMsg{input: input, err: err}
		}
		return analyzedMsg{input: input, an: &analysis{code: code, result: disasm.Parse(code)}}
	}
}

type model struct {
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	maxBytes  int
	current   *analysis
	lastInput string
	lastErr   error
	analyzing bool
	width     int
	height    int
}

func NewModel(initial string, maxBytes int) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	ti := textinput.New()
	ti.Placeholder = "EVM bytecode (hex, 0x prefix optional) or path to a .bin file"
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	m := model{
		viewport: vp,
		input:    ti,
		spinner:  s,
		maxBytes: maxBytes,
		width:    80,
		height:   24,
	}
	if initial != "" {
		m.analyzing = true
		m.lastInput = initial
	}
	m.updateContent()
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.analyzing {
		cmds = append(cmds, analyzeCmd(m.lastInput, m.maxBytes))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzedMsg:
		m.analyzing = false
		m.lastInput = msg.input
		m.lastErr = msg.err
		if msg.an != nil {
			m.current = msg.an
		}
		m.updateContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.analyzing {
			m.updateContent()
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 4)
			m.updateContent()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			if isQuitCommand(value) {
				return m, tea.Quit
			}
			m.input.Reset()
			m.analyzing = true
			m.updateContent()
			return m, tea.Batch(analyzeCmd(value, m.maxBytes), m.spinner.Tick)
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func isQuitCommand(s string) bool {
	switch strings.ToLower(s) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func (m model) View() string {
	menu := " Enter: analyze • ↑/↓: scroll • Esc: quit "
	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return m.viewport.View() + "\n" +
		promptStyle.Render("> ") + m.input.View() + "\n" +
		menuStyle.Render(menu)
}

func (m *model) updateContent() {
	var md strings.Builder
	md.WriteString("# EVM Bytecode Analyzer\n\n")

	switch {
	case m.analyzing:
		md.WriteString(fmt.Sprintf("%s Analyzing...", m.spinner.View()))

	case m.lastErr != nil:
		md.WriteString(fmt.Sprintf("**Error:** %s\n", m.lastErr))

	case m.current != nil:
		res := m.current.result
		md.WriteString(fmt.Sprintf("%d bytes, %d instructions\n\n", res.ByteLength, len(res.Instructions)))
		md.WriteString(fmt.Sprintf("```\n%s```\n", format.Listing(res)))
		if len(res.Errors) > 0 {
			md.WriteString("\n## Parsing Errors\n\n")
			for _, e := range res.Errors {
				md.WriteString(fmt.Sprintf("- %s\n", e))
			}
		}

	default:
		md.WriteString("Enter bytecode with or without the `0x` prefix, or the path to a `.bin` file.\n\n")
		md.WriteString("Type `quit` to exit.\n")
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	renderer := styles.GetMarkdownRenderer(width - 2)
	rendered, _ := renderer.Render(md.String())
	m.viewport.SetContent(strings.TrimSuffix(rendered, "\n"))
}

var rootCmd = &cobra.Command{
	Use:   "bytecode-analyzer [bytecode|file]",
	Short: "Parse and analyze EVM smart contract bytecode",
	Long: `Bytecode-analyzer decodes raw EVM bytecode into a structured instruction
stream: opcode names, descriptions, and push arguments, with structural
errors reported alongside the partial decode.

With no argument it starts an interactive session.`,
	Example: `
# Analyze a bytecode string
bytecode-analyzer 0x6080604052

# Analyze a compiled contract and emit JSON
bytecode-analyzer contract.bin --json

# Interactive mode
bytecode-analyzer
  `,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		memprofile, _ := cmd.Flags().GetString("memprofile")
		if memprofile != "" {
			defer func() {
				f, err := os.Create(memprofile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
					return
				}
				defer f.Close()
				if err := pprof.WriteHeapProfile(f); err != nil {
					fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
				}
			}()
		}

		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			os.Setenv("ANALYZER_NO_COLOR", "1")
		}

		maxBytes, _ := cmd.Flags().GetInt("max-bytes")
		asJSON, _ := cmd.Flags().GetBool("json")
		noTUI, _ := cmd.Flags().GetBool("no-tui")

		// Piped output always takes the non-TUI path.
		if !term.IsTerminal(os.Stdout.Fd()) {
			noTUI = true
		}

		if noTUI || asJSON {
			if len(args) < 1 {
				return fmt.Errorf("usage: bytecode-analyzer <bytecode|file>")
			}
			code, err := resolveInput(args[0], maxBytes)
			if err != nil {
				return err
			}
			return runAnalysis(code, asJSON)
		}

		initial := ""
		if len(args) == 1 {
			initial = args[0]
		}
		p := tea.NewProgram(NewModel(initial, maxBytes), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Int("max-bytes", bytecode.DefaultMaxBytes, "Maximum accepted bytecode size in bytes")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the listing without the TUI")
	rootCmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	rootCmd.Flags().Bool("no-color", false, "Disable colorized output")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(opcodesCmd)
}

func Execute() {
	// Check if --no-tui or --json flag is present, or if output is being
	// piped, to bypass fang's markdown rendering
	noTUI := false
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--json" || arg == "-j" {
			noTUI = true
			break
		}
	}

	if !noTUI && !term.IsTerminal(os.Stdout.Fd()) {
		noTUI = true
	}

	if noTUI {
		// Use cobra directly to avoid fang's automatic markdown rendering
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
	} else {
		// Use fang for enhanced CLI experience with markdown rendering
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithNotifySignal(os.Interrupt),
		); err != nil {
			os.Exit(1)
		}
	}
}
