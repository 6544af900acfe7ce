package lexer

import (
	"testing"

	"github.com/golangsnmp/netelab/internal/testutil"
	"github.com/golangsnmp/netelab/internal/types"
)

func tokenKinds(source string) []TokenKind {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	var texts []string
	for _, t := range tokens {
		if t.Kind != TokEOF {
			texts = append(texts, source[t.Span.Start:t.Span.End])
		}
	}
	return texts
}

func TestEmptyInput(t *testing.T) {
	testutil.SliceEqual(t, []TokenKind{TokEOF}, tokenKinds(""), "empty input")
	testutil.SliceEqual(t, []TokenKind{TokEOF}, tokenKinds("  \n\t "), "whitespace only")
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds("( ) [ ] { } ; , : . # @ ? =")
	expected := []TokenKind{
		TokLParen, TokRParen, TokLBracket, TokRBracket, TokLBrace, TokRBrace,
		TokSemicolon, TokComma, TokColon, TokDot, TokHash, TokAt, TokQuestion,
		TokAssign, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestOperators(t *testing.T) {
	kinds := tokenKinds("+ - * / % ! ~ & | ^ ~& ~| ~^ ^~ && || == != === !== < <= > >= << >> <<< >>>")
	expected := []TokenKind{
		TokPlus, TokMinus, TokStar, TokSlash, TokPercent, TokBang, TokTilde,
		TokAmp, TokPipe, TokCaret, TokTildeAmp, TokTildePipe, TokTildeCaret,
		TokTildeCaret, TokAmpAmp, TokPipePipe, TokEqEq, TokBangEq, TokEqEqEq,
		TokBangEqEq, TokLt, TokLtEq, TokGt, TokGtEq, TokShl, TokShr,
		TokArithShl, TokArithShr, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestOperatorsWithoutSpaces(t *testing.T) {
	kinds := tokenKinds("a===b&&~c")
	expected := []TokenKind{TokIdent, TokEqEqEq, TokIdent, TokAmpAmp, TokTilde, TokIdent, TokEOF}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestNumbers(t *testing.T) {
	texts := tokenTexts("0 42 1_000 4'b10xz 'hFF 8'shf0 16 'o17 3'b?1z")
	expected := []string{"0", "42", "1_000", "4'b10xz", "'hFF", "8'shf0", "16 'o17", "3'b?1z"}
	testutil.SliceEqual(t, expected, texts, "token texts")
}

func TestNumberFollowedByOperator(t *testing.T) {
	texts := tokenTexts("4'd3+a")
	testutil.SliceEqual(t, []string{"4'd3", "+", "a"}, texts, "token texts")
}

func TestIdentifiers(t *testing.T) {
	texts := tokenTexts(`data_in clk$1 _tmp \bus[0] x`)
	expected := []string{"data_in", "clk$1", "_tmp", `\bus[0]`, "x"}
	testutil.SliceEqual(t, expected, texts, "token texts")
}

func TestKeywords(t *testing.T) {
	kinds := tokenKinds("module endmodule input output inout wire reg signed assign wired")
	expected := []TokenKind{
		TokKwModule, TokKwEndmodule, TokKwInput, TokKwOutput, TokKwInout,
		TokKwWire, TokKwReg, TokKwSigned, TokKwAssign, TokIdent, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds, "token kinds")
}

func TestKeywordTableSorted(t *testing.T) {
	for i := 1; i < len(keywords); i++ {
		testutil.True(t, keywords[i-1].text < keywords[i].text,
			"keywords out of order at %q", keywords[i].text)
	}
	for _, kw := range keywords {
		kind, ok := LookupKeyword(kw.text)
		testutil.True(t, ok, "lookup %q", kw.text)
		testutil.Equal(t, kw.kind, kind, "kind of %q", kw.text)
		testutil.Equal(t, kw.text, kind.String(), "String of %q", kw.text)
	}
}

func TestStrings(t *testing.T) {
	texts := tokenTexts(`"hi" "a\"b" ""`)
	testutil.SliceEqual(t, []string{`"hi"`, `"a\"b"`, `""`}, texts, "token texts")
}

func TestComments(t *testing.T) {
	kinds := tokenKinds("a // line\n/* block\n comment */ b `timescale 1ns/1ps\nc")
	testutil.SliceEqual(t, []TokenKind{TokIdent, TokIdent, TokIdent, TokEOF}, kinds, "token kinds")
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		source string
		code   string
	}{
		{`"open`, types.DiagUnterminated},
		{"/* open", types.DiagUnterminated},
		{"a $ b", types.DiagUnexpectedChar},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, diags := New([]byte(tt.source), nil).Tokenize()
			testutil.Len(t, diags, 1, "diagnostics")
			testutil.Equal(t, tt.code, diags[0].Code, "code")
			testutil.Equal(t, types.SeverityError, diags[0].Severity, "severity")
		})
	}
}

func TestSpans(t *testing.T) {
	tokens, _ := New([]byte("ab  cd"), nil).Tokenize()
	testutil.Len(t, tokens, 3, "tokens")
	testutil.Equal(t, types.NewSpan(0, 2), tokens[0].Span, "first span")
	testutil.Equal(t, types.NewSpan(4, 6), tokens[1].Span, "second span")
}
