package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/golangsnmp/netelab/internal/types"
)

// Lexer tokenizes Verilog source text.
type Lexer struct {
	source      []byte
	pos         int
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.SpanDiagnostic {
	return slices.Clone(l.diagnostics)
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	tokens := make([]Token, 0, max(len(l.source)/4, 64))
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() Token {
	for {
		tok, retry := l.nextToken()
		if !retry {
			return tok
		}
	}
}

func (l *Lexer) peek() (byte, bool) {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) peekIs(offset int, want byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == want
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || !isSpace(b) {
			return
		}
		l.pos++
	}
}

func (l *Lexer) skipToEOL() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.pos++
	}
}

func (l *Lexer) error(code string, span types.Span, message string) {
	l.diagnostics = append(l.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos))
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{Kind: kind, Span: l.spanFrom(start)}
	l.traceToken(tok)
	return tok
}

// operators maps operator text to its kind, longest spellings first so
// the scanner can take the first match.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"<<<", TokArithShl}, {">>>", TokArithShr}, {"===", TokEqEqEq}, {"!==", TokBangEqEq},
	{"&&", TokAmpAmp}, {"||", TokPipePipe}, {"==", TokEqEq}, {"!=", TokBangEq},
	{"<=", TokLtEq}, {">=", TokGtEq}, {"<<", TokShl}, {">>", TokShr},
	{"~&", TokTildeAmp}, {"~|", TokTildePipe}, {"~^", TokTildeCaret}, {"^~", TokTildeCaret},
	{"(", TokLParen}, {")", TokRParen}, {"[", TokLBracket}, {"]", TokRBracket},
	{"{", TokLBrace}, {"}", TokRBrace}, {";", TokSemicolon}, {",", TokComma},
	{":", TokColon}, {".", TokDot}, {"#", TokHash}, {"@", TokAt}, {"?", TokQuestion},
	{"=", TokAssign}, {"+", TokPlus}, {"-", TokMinus}, {"*", TokStar}, {"/", TokSlash},
	{"%", TokPercent}, {"!", TokBang}, {"~", TokTilde}, {"&", TokAmp}, {"|", TokPipe},
	{"^", TokCaret}, {"<", TokLt}, {">", TokGt},
}

// nextToken scans one token. retry=true means something was skipped
// (comment, directive, bad character) and the caller should scan again.
func (l *Lexer) nextToken() (Token, bool) {
	l.skipWhitespace()
	start := l.pos

	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start), false
	}

	switch {
	case b == '/' && l.peekIs(1, '/'):
		l.skipToEOL()
		return Token{}, true
	case b == '/' && l.peekIs(1, '*'):
		l.skipBlockComment()
		return Token{}, true
	case b == '`':
		// Compiler directives are not interpreted.
		l.skipToEOL()
		return Token{}, true
	case isDigit(b) || b == '\'':
		return l.scanNumber(), false
	case b == '"':
		return l.scanString(), false
	case isIdentStart(b):
		return l.scanIdentifierOrKeyword(), false
	case b == '\\':
		return l.scanEscapedIdentifier(), false
	}

	for _, op := range operators {
		if l.hasPrefix(op.text) {
			l.pos += len(op.text)
			return l.token(op.kind, start), false
		}
	}

	l.pos++
	l.error(types.DiagUnexpectedChar, l.spanFrom(start), fmt.Sprintf("unexpected character: 0x%02x", b))
	return Token{}, true
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.source) {
		return false
	}
	return string(l.source[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.source) {
		if l.source[l.pos] == '*' && l.peekIs(1, '/') {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.error(types.DiagUnterminated, l.spanFrom(start), "unterminated block comment")
}

// scanNumber scans a decimal or based literal. An optional size may be
// separated from the base by whitespace, as in "8 'hFF".
func (l *Lexer) scanNumber() Token {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !(isDigit(b) || b == '_') {
			break
		}
		l.pos++
	}

	mark := l.pos
	l.skipWhitespace()
	if !l.peekIs(0, '\'') {
		l.pos = mark
		return l.token(TokNumber, start)
	}
	l.pos++
	if b, ok := l.peek(); ok && (b == 's' || b == 'S') {
		l.pos++
	}
	if b, ok := l.peek(); ok && isBase(b) {
		l.pos++
	}
	l.skipWhitespace()
	for {
		b, ok := l.peek()
		if !ok || !isBasedDigit(b) {
			break
		}
		l.pos++
	}
	return l.token(TokNumber, start)
}

func (l *Lexer) scanString() Token {
	start := l.pos
	l.pos++
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			l.error(types.DiagUnterminated, l.spanFrom(start), "unterminated string literal")
			return l.token(TokString, start)
		}
		l.pos++
		if b == '\\' {
			l.pos++
			continue
		}
		if b == '"' {
			return l.token(TokString, start)
		}
	}
}

func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !isIdentPart(b) {
			break
		}
		l.pos++
	}
	if kind, ok := LookupKeyword(string(l.source[start:l.pos])); ok {
		return l.token(kind, start)
	}
	return l.token(TokIdent, start)
}

// scanEscapedIdentifier scans "\name" up to the next whitespace.
func (l *Lexer) scanEscapedIdentifier() Token {
	start := l.pos
	l.pos++
	for {
		b, ok := l.peek()
		if !ok || isSpace(b) {
			break
		}
		l.pos++
	}
	return l.token(TokIdent, start)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '$'
}

func isBase(b byte) bool {
	switch b {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

func isBasedDigit(b byte) bool {
	switch {
	case isDigit(b), b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
		return true
	}
	switch b {
	case 'x', 'X', 'z', 'Z', '?', '_':
		return true
	}
	return false
}
