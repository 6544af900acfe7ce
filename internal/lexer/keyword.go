package lexer

import "sort"

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted by text.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"assign", TokKwAssign},
	{"begin", TokKwBegin},
	{"end", TokKwEnd},
	{"endfunction", TokKwEndfunction},
	{"endmodule", TokKwEndmodule},
	{"event", TokKwEvent},
	{"function", TokKwFunction},
	{"inout", TokKwInout},
	{"input", TokKwInput},
	{"integer", TokKwInteger},
	{"localparam", TokKwLocalparam},
	{"module", TokKwModule},
	{"output", TokKwOutput},
	{"parameter", TokKwParameter},
	{"real", TokKwReal},
	{"reg", TokKwReg},
	{"signed", TokKwSigned},
	{"supply0", TokKwSupply0},
	{"supply1", TokKwSupply1},
	{"tri", TokKwTri},
	{"wire", TokKwWire},
}

// LookupKeyword returns the TokenKind for a keyword, or (TokError, false) if not found.
func LookupKeyword(text string) (TokenKind, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return TokError, false
}
