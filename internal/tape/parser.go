package tape

import (
	"fmt"
	"strings"
)

// Parser parses dock scripts into commands
type Parser struct {
	lexer  *Lexer
	curTok Token
	errors []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.lexer.NextToken()
}

// Parse parses the entire script and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		// Skip newlines
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if ok {
			commands = append(commands, cmd)
		}
		p.skipToNextLine()
	}

	return commands
}

// parseCommand parses a single command line against its signature
func (p *Parser) parseCommand() (Command, bool) {
	cmd := Command{Line: p.curTok.Line, Column: p.curTok.Column}

	ct, ok := commandTokens[p.curTok.Type]
	if !ok {
		p.addError(fmt.Sprintf("unexpected token %s %q", p.curTok.Type, p.curTok.Literal))
		return cmd, false
	}
	cmd.Type = ct
	start := p.curTok.Literal
	p.nextToken()

	var args []Token
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_ILLEGAL {
			p.addError(fmt.Sprintf("%s: illegal input %q", ct, p.curTok.Literal))
			return cmd, false
		}
		args = append(args, p.curTok)
		p.nextToken()
	}

	kinds, err := matchSignature(signatures[ct], args)
	if err != nil {
		p.addError(fmt.Sprintf("%s: %v", ct, err))
		return cmd, false
	}
	raw := []string{start}
	for _, a := range args {
		cmd.Args = append(cmd.Args, a.Literal)
		raw = append(raw, a.Literal)
	}
	cmd.kinds = kinds
	cmd.Raw = strings.Join(raw, " ")

	if ct == CommandType_Sleep {
		d, err := ParseDuration(cmd.Args[0])
		if err != nil {
			p.addError(fmt.Sprintf("invalid duration: %s", cmd.Args[0]))
			return cmd, false
		}
		cmd.Delay = d
	}
	return cmd, true
}

func tokenKind(t Token) byte {
	switch t.Type {
	case TOKEN_STRING:
		return 's'
	case TOKEN_NUMBER:
		return 'n'
	case TOKEN_DURATION:
		return 'd'
	case TOKEN_IDENTIFIER:
		return 'w'
	}
	if t.Type.IsCommand() {
		return 'w'
	}
	return 0
}

var kindNames = map[byte]string{'s': "a string", 'n': "a number", 'd': "a duration", 'w': "a word"}

// matchSignature checks args against sig and returns their kinds.
func matchSignature(sig string, args []Token) ([]byte, error) {
	required, optional, _ := strings.Cut(sig, "|")
	repeat := byte(0)
	if strings.HasSuffix(optional, "*") {
		optional = strings.TrimSuffix(optional, "*")
		repeat = optional[len(optional)-1]
	}

	kinds := make([]byte, 0, len(args))
	i := 0
	for j := 0; j < len(required); j++ {
		want := required[j]
		if i >= len(args) {
			return nil, fmt.Errorf("expects %s as argument %d", kindNames[want], j+1)
		}
		if got := tokenKind(args[i]); got != want {
			return nil, fmt.Errorf("argument %d %q: expects %s", i+1, args[i].Literal, kindNames[want])
		}
		kinds = append(kinds, want)
		i++
	}
	for j := 0; j < len(optional) && i < len(args); j++ {
		if tokenKind(args[i]) == optional[j] {
			kinds = append(kinds, optional[j])
			i++
		}
	}
	for repeat != 0 && i < len(args) && tokenKind(args[i]) == repeat {
		kinds = append(kinds, repeat)
		i++
	}
	if i < len(args) {
		return nil, fmt.Errorf("unexpected argument %q", args[i].Literal)
	}
	return kinds, nil
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a dock script from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}
