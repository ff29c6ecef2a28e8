package tape

// TokenType represents the type of a token in a dock script
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Commands - Windows
	TOKEN_OPEN   TokenType = "Open"
	TOKEN_DOCK   TokenType = "Dock"
	TOKEN_UNDOCK TokenType = "Undock"
	TOKEN_FLOAT  TokenType = "Float"
	TOKEN_SELECT TokenType = "Select"
	TOKEN_CLOSE  TokenType = "Close"
	TOKEN_RENAME TokenType = "Rename"

	// Commands - Input
	TOKEN_MOUSE_DOWN TokenType = "MouseDown"
	TOKEN_MOUSE_MOVE TokenType = "MouseMove"
	TOKEN_MOUSE_UP   TokenType = "MouseUp"
	TOKEN_DRAG       TokenType = "Drag"
	TOKEN_TICK       TokenType = "Tick"
	TOKEN_BLUR       TokenType = "Blur"
	TOKEN_FOCUS      TokenType = "Focus"
	TOKEN_RESIZE     TokenType = "Resize"

	// Commands - Layout
	TOKEN_SAVE  TokenType = "Save"
	TOKEN_LOAD  TokenType = "Load"
	TOKEN_RESET TokenType = "Reset"

	// Commands - Assertions
	TOKEN_EXPECT       TokenType = "Expect"
	TOKEN_EXPECT_TABS  TokenType = "ExpectTabs"
	TOKEN_EXPECT_STATE TokenType = "ExpectState"
	TOKEN_EXPECT_COUNT TokenType = "ExpectCount"
	TOKEN_EXPECT_DRAG  TokenType = "ExpectDrag"
	TOKEN_EXPECT_DUMP  TokenType = "ExpectDump"

	// Commands - Other
	TOKEN_SLEEP TokenType = "Sleep"
	TOKEN_DUMP  TokenType = "Dump"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type is a command
func (tt TokenType) IsCommand() bool {
	_, ok := commandTokens[tt]
	return ok
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Windows
	"Open":   TOKEN_OPEN,
	"Dock":   TOKEN_DOCK,
	"Undock": TOKEN_UNDOCK,
	"Float":  TOKEN_FLOAT,
	"Select": TOKEN_SELECT,
	"Close":  TOKEN_CLOSE,
	"Rename": TOKEN_RENAME,

	// Input
	"MouseDown": TOKEN_MOUSE_DOWN,
	"MouseMove": TOKEN_MOUSE_MOVE,
	"MouseUp":   TOKEN_MOUSE_UP,
	"Drag":      TOKEN_DRAG,
	"Tick":      TOKEN_TICK,
	"Blur":      TOKEN_BLUR,
	"Focus":     TOKEN_FOCUS,
	"Resize":    TOKEN_RESIZE,

	// Layout
	"Save":  TOKEN_SAVE,
	"Load":  TOKEN_LOAD,
	"Reset": TOKEN_RESET,

	// Assertions
	"Expect":      TOKEN_EXPECT,
	"ExpectTabs":  TOKEN_EXPECT_TABS,
	"ExpectState": TOKEN_EXPECT_STATE,
	"ExpectCount": TOKEN_EXPECT_COUNT,
	"ExpectDrag":  TOKEN_EXPECT_DRAG,
	"ExpectDump":  TOKEN_EXPECT_DUMP,

	// Other
	"Sleep": TOKEN_SLEEP,
	"Dump":  TOKEN_DUMP,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
