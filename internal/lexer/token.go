// Package lexer provides tokenization for the Verilog subset netelab reads.
package lexer

import (
	"fmt"

	"github.com/golangsnmp/netelab/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Identifiers and literals ===

	// TokIdent is a simple or escaped identifier.
	TokIdent
	// TokNumber is an integer literal, sized or unsized, in any base.
	TokNumber
	// TokString is a double-quoted string literal.
	TokString

	// === Punctuation ===

	TokLParen    // (
	TokRParen    // )
	TokLBracket  // [
	TokRBracket  // ]
	TokLBrace    // {
	TokRBrace    // }
	TokSemicolon // ;
	TokComma     // ,
	TokColon     // :
	TokDot       // .
	TokHash      // #
	TokAt        // @
	TokQuestion  // ?
	TokAssign    // =

	// === Operators ===

	TokPlus        // +
	TokMinus       // -
	TokStar        // *
	TokSlash       // /
	TokPercent     // %
	TokBang        // !
	TokTilde       // ~
	TokAmp         // &
	TokPipe        // |
	TokCaret       // ^
	TokTildeAmp    // ~&
	TokTildePipe   // ~|
	TokTildeCaret  // ~^ or ^~
	TokAmpAmp      // &&
	TokPipePipe    // ||
	TokEqEq        // ==
	TokBangEq      // !=
	TokEqEqEq      // ===
	TokBangEqEq    // !==
	TokLt          // <
	TokLtEq        // <=
	TokGt          // >
	TokGtEq        // >=
	TokShl         // <<
	TokShr         // >>
	TokArithShl    // <<<
	TokArithShr    // >>>

	// === Keywords ===

	tokKeywordStart
	TokKwAssign
	TokKwBegin
	TokKwEnd
	TokKwEndfunction
	TokKwEndmodule
	TokKwEvent
	TokKwFunction
	TokKwInout
	TokKwInput
	TokKwInteger
	TokKwLocalparam
	TokKwModule
	TokKwOutput
	TokKwParameter
	TokKwReal
	TokKwReg
	TokKwSigned
	TokKwSupply0
	TokKwSupply1
	TokKwTri
	TokKwWire
	tokKeywordEnd
)

var tokenNames = map[TokenKind]string{
	TokError: "error", TokEOF: "end of file", TokIdent: "identifier",
	TokNumber: "number", TokString: "string",
	TokLParen: "(", TokRParen: ")", TokLBracket: "[", TokRBracket: "]",
	TokLBrace: "{", TokRBrace: "}", TokSemicolon: ";", TokComma: ",",
	TokColon: ":", TokDot: ".", TokHash: "#", TokAt: "@", TokQuestion: "?",
	TokAssign: "=", TokPlus: "+", TokMinus: "-", TokStar: "*", TokSlash: "/",
	TokPercent: "%", TokBang: "!", TokTilde: "~", TokAmp: "&", TokPipe: "|",
	TokCaret: "^", TokTildeAmp: "~&", TokTildePipe: "~|", TokTildeCaret: "~^",
	TokAmpAmp: "&&", TokPipePipe: "||", TokEqEq: "==", TokBangEq: "!=",
	TokEqEqEq: "===", TokBangEqEq: "!==", TokLt: "<", TokLtEq: "<=",
	TokGt: ">", TokGtEq: ">=", TokShl: "<<", TokShr: ">>",
	TokArithShl: "<<<", TokArithShr: ">>>",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	if k.IsKeyword() {
		for _, kw := range keywords {
			if kw.kind == k {
				return kw.text
			}
		}
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k > tokKeywordStart && k < tokKeywordEnd
}

// IsNetType reports whether k starts a net declaration.
func (k TokenKind) IsNetType() bool {
	switch k {
	case TokKwWire, TokKwTri, TokKwSupply0, TokKwSupply1:
		return true
	}
	return false
}

// IsDirection reports whether k is a port direction.
func (k TokenKind) IsDirection() bool {
	return k == TokKwInput || k == TokKwOutput || k == TokKwInout
}
