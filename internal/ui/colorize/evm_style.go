package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

func init() {
	// Register our custom listing style on package initialization
	_ = EVMDark
}

// EVMDark is a custom style for EVM disassembly listings.
var EVMDark = styles.Register(chroma.MustNewStyle("evm-dark", chroma.StyleEntries{
	chroma.Text:           "#FFFFFF",    // Default text white
	chroma.Background:     "bg:#1e1e1e", // Dark background
	chroma.Comment:        "#FF5F87",    // Error comments in pink
	chroma.CommentPreproc: "#FF5F87",

	// For NASM lexer mappings
	chroma.Keyword:       "#DCDCAA", // Mnemonics in gold
	chroma.KeywordPseudo: "#DCDCAA",
	chroma.Name:          "#DCDCAA", // Mnemonics tokenized as names
	chroma.NameBuiltin:   "#DCDCAA",
	chroma.NameVariable:  "#7C9C9D",
	chroma.NameFunction:  "#DCDCAA",

	// Push immediates
	chroma.LiteralNumber:        "#9CDCFE",
	chroma.LiteralNumberHex:     "#9CDCFE",
	chroma.LiteralNumberBin:     "#9CDCFE",
	chroma.LiteralNumberOct:     "#9CDCFE",
	chroma.LiteralNumberInteger: "#9CDCFE",
	chroma.LiteralNumberFloat:   "#9CDCFE",

	chroma.NameLabel: "#FFD700", // Labels in gold

	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",

	chroma.String: "#EACD53",
}))
