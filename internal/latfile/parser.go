package latfile

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads MAD-X style lattice input.
type Parser struct {
	parser *participle.Parser[file]
}

func NewParser() (*Parser, error) {
	parser, err := participle.Build[file](
		participle.Lexer(madLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

func (p *Parser) parse(name string, r io.Reader) (*file, error) {
	f, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return f, nil
}

// Parse reads a lattice from r and expands the selected beamline.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parse("", r)
	if err != nil {
		return nil, err
	}
	return expand(f)
}

// ParseString is Parse over a string.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return expand(f)
}

// ParseFile parses the named file.
func (p *Parser) ParseFile(filename string) (*File, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fh.Close()

	f, err := p.parse(filename, fh)
	if err != nil {
		return nil, err
	}
	return expand(f)
}
