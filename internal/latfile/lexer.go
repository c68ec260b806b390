package latfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// madLexer tokenizes the supported MAD-X subset. Keywords are matched
// case-insensitively ahead of identifiers.
var madLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?:!|//)[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "KwLine", Pattern: `(?i)\bLINE\b`},
	{Name: "KwUse", Pattern: `(?i)\bUSE\b`},
	{Name: "KwPeriod", Pattern: `(?i)\b(?:PERIOD|SEQUENCE)\b`},

	{Name: "Assign", Pattern: `:=`},
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Punct", Pattern: `[-+*/=(),;:]`},
})
