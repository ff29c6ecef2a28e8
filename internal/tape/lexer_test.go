package tape

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Open command",
			input:    `Open "Scene"`,
			expected: []TokenType{TOKEN_OPEN, TOKEN_STRING, TOKEN_EOF},
		},
		{
			name:     "Sleep command",
			input:    `Sleep 500ms`,
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Dock with direction and ratio",
			input:    `Dock "Tool" Left 0.3`,
			expected: []TokenType{TOKEN_DOCK, TOKEN_STRING, TOKEN_IDENTIFIER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Mouse command",
			input:    `MouseDown 10 -2 Right`,
			expected: []TokenType{TOKEN_MOUSE_DOWN, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_IDENTIFIER, TOKEN_EOF},
		},
		{
			name:     "Keyword as argument",
			input:    `Open "Props" Float`,
			expected: []TokenType{TOKEN_OPEN, TOKEN_STRING, TOKEN_FLOAT, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    `Tick ;`,
			expected: []TokenType{TOKEN_TICK, TOKEN_ILLEGAL, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, expectedType := range tt.expected {
				if tokens[i].Type != expectedType {
					t.Errorf("Token %d: expected %v, got %v", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "Double quoted string",
			input:         `Open "hello world"`,
			expectedValue: "hello world",
		},
		{
			name:          "Single quoted string",
			input:         `Open 'hello world'`,
			expectedValue: "hello world",
		},
		{
			name:          "Backtick string",
			input:         "Open `hello world`",
			expectedValue: "hello world",
		},
		{
			name:          "Escaped quotes",
			input:         `Open "hello \"world\""`,
			expectedValue: `hello "world"`,
		},
		{
			name:          "Escaped newline",
			input:         `ExpectDump "a\nb"`,
			expectedValue: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			var stringToken Token
			for _, tok := range tokens {
				if tok.Type == TOKEN_STRING {
					stringToken = tok
					break
				}
			}

			if stringToken.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, stringToken.Literal)
			}
		})
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens := Tokenize(`Open "Scene`)
	if tokens[1].Type != TOKEN_ILLEGAL {
		t.Errorf("Expected ILLEGAL for an unterminated string, got %v", tokens[1].Type)
	}
}

func TestLexerNumbersAndDurations(t *testing.T) {
	tests := []struct {
		input    string
		typ      TokenType
		expected string
	}{
		{"500ms", TOKEN_DURATION, "500ms"},
		{"2s", TOKEN_DURATION, "2s"},
		{"1.5s", TOKEN_DURATION, "1.5s"},
		{"0.25", TOKEN_NUMBER, "0.25"},
		{"-3", TOKEN_NUMBER, "-3"},
		{"42", TOKEN_NUMBER, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := Tokenize(tt.input)[0]
			if tok.Type != tt.typ || tok.Literal != tt.expected {
				t.Errorf("Tokenize(%q) = %v %q, want %v %q", tt.input, tok.Type, tok.Literal, tt.typ, tt.expected)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `# This is a comment
Open "hello"
# Another comment
Tick`

	tokens := Tokenize(input)

	var types []TokenType
	for _, tok := range tokens {
		if tok.Type != TOKEN_NEWLINE {
			types = append(types, tok.Type)
		}
	}

	expected := []TokenType{TOKEN_OPEN, TOKEN_STRING, TOKEN_TICK, TOKEN_EOF}

	if len(types) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(types))
	}

	for i, expectedType := range expected {
		if types[i] != expectedType {
			t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
		}
	}
}

func TestLexerPositions(t *testing.T) {
	input := "Open \"line1\"\n  Tick\nReset"

	tokens := Tokenize(input)

	want := map[TokenType][2]int{
		TOKEN_OPEN:   {1, 1},
		TOKEN_STRING: {1, 6},
		TOKEN_TICK:   {2, 3},
		TOKEN_RESET:  {3, 1},
	}
	for _, tok := range tokens {
		pos, ok := want[tok.Type]
		if !ok {
			continue
		}
		if tok.Line != pos[0] || tok.Column != pos[1] {
			t.Errorf("%v at %d:%d, want %d:%d", tok.Type, tok.Line, tok.Column, pos[0], pos[1])
		}
	}
}

func TestKeywordTokenMap(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected TokenType
	}{
		{"Open", "Open", TOKEN_OPEN},
		{"Sleep", "Sleep", TOKEN_SLEEP},
		{"ExpectTabs", "ExpectTabs", TOKEN_EXPECT_TABS},
		{"MouseDown", "MouseDown", TOKEN_MOUSE_DOWN},
		{"Unknown", "UnknownKeyword", TOKEN_IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenType := LookupKeyword(tt.keyword)
			if tokenType != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tokenType)
			}
		})
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	for _, tt := range KeywordTokenMap {
		if !tt.IsCommand() {
			t.Errorf("%v should be a command", tt)
		}
	}
	if TOKEN_STRING.IsCommand() {
		t.Error("TOKEN_STRING should not be a command")
	}
}
