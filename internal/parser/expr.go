package parser

import (
	"fmt"
	"strings"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/lexer"
	"github.com/golangsnmp/netelab/internal/types"
)

type binaryInfo struct {
	op   ast.BinaryOp
	prec int
}

// binaryOps gives each infix token its operator and precedence, higher
// binding tighter.
var binaryOps = map[lexer.TokenKind]binaryInfo{
	lexer.TokPipePipe:   {ast.BinLogOr, 1},
	lexer.TokAmpAmp:     {ast.BinLogAnd, 2},
	lexer.TokPipe:       {ast.BinOr, 3},
	lexer.TokTildePipe:  {ast.BinNor, 3},
	lexer.TokCaret:      {ast.BinXor, 4},
	lexer.TokTildeCaret: {ast.BinXnor, 4},
	lexer.TokAmp:        {ast.BinAnd, 5},
	lexer.TokTildeAmp:   {ast.BinNand, 5},
	lexer.TokEqEq:       {ast.BinEq, 6},
	lexer.TokBangEq:     {ast.BinNe, 6},
	lexer.TokEqEqEq:     {ast.BinCaseEq, 6},
	lexer.TokBangEqEq:   {ast.BinCaseNe, 6},
	lexer.TokLt:         {ast.BinLt, 7},
	lexer.TokLtEq:       {ast.BinLe, 7},
	lexer.TokGt:         {ast.BinGt, 7},
	lexer.TokGtEq:       {ast.BinGe, 7},
	lexer.TokShl:        {ast.BinShl, 8},
	lexer.TokShr:        {ast.BinShr, 8},
	lexer.TokArithShl:   {ast.BinArithShl, 8},
	lexer.TokArithShr:   {ast.BinArithShr, 8},
	lexer.TokPlus:       {ast.BinAdd, 9},
	lexer.TokMinus:      {ast.BinSub, 9},
	lexer.TokStar:       {ast.BinMul, 10},
	lexer.TokSlash:      {ast.BinDiv, 10},
	lexer.TokPercent:    {ast.BinMod, 10},
}

var unaryOps = map[lexer.TokenKind]ast.UnaryOp{
	lexer.TokPlus:       ast.UnaryPlus,
	lexer.TokMinus:      ast.UnaryNeg,
	lexer.TokTilde:      ast.UnaryNot,
	lexer.TokBang:       ast.UnaryLogNot,
	lexer.TokAmp:        ast.UnaryAnd,
	lexer.TokTildeAmp:   ast.UnaryNand,
	lexer.TokPipe:       ast.UnaryOr,
	lexer.TokTildePipe:  ast.UnaryNor,
	lexer.TokCaret:      ast.UnaryXor,
	lexer.TokTildeCaret: ast.UnaryXnor,
}

// parseExpr parses a full expression including the conditional operator,
// which is right associative.
func (p *Parser) parseExpr() (ast.Expr, *types.SpanDiagnostic) {
	cond, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TokQuestion) {
		return cond, nil
	}
	p.advance()
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokColon); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{
		Cond: cond,
		Then: then,
		Else: els,
		Span: types.NewSpan(cond.ExprSpan().Start, p.prevEnd),
	}, nil
}

// parseBinary parses a left-associative chain of operators whose
// precedence is at least minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, *types.SpanDiagnostic) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		info, ok := binaryOps[p.peek().Kind]
		if !ok || info.prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(info.prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Op:    info.op,
			Left:  left,
			Right: right,
			Span:  types.NewSpan(left.ExprSpan().Start, p.prevEnd),
		}
	}
}

func (p *Parser) parseUnary() (ast.Expr, *types.SpanDiagnostic) {
	op, ok := unaryOps[p.peek().Kind]
	if !ok {
		return p.parsePrimary()
	}
	start := p.advance().Span.Start
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Operand: operand, Span: types.NewSpan(start, p.prevEnd)}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *types.SpanDiagnostic) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokNumber:
		p.advance()
		return p.makeNumber(tok), nil
	case lexer.TokString:
		p.advance()
		return &ast.String{Value: unquote(p.text(tok.Span)), Span: tok.Span}, nil
	case lexer.TokIdent:
		return p.parseReference()
	case lexer.TokLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.TokLBrace:
		return p.parseConcat()
	}
	diag := p.makeError(fmt.Sprintf("expected expression, found %s", tok.Kind))
	return nil, &diag
}

// makeNumber converts a number token. A malformed literal is reported and
// replaced by a one-bit x so parsing can continue.
func (p *Parser) makeNumber(tok lexer.Token) *ast.Number {
	text := p.text(tok.Span)
	value, err := bitvec.ParseLiteral(text)
	if err != nil {
		p.emitDiagnostic(types.DiagInvalidNumber, types.SeverityError, tok.Span, err.Error())
		value = bitvec.Fill(bitvec.Bx, 1, false)
	}
	return &ast.Number{Value: value, Text: text, Span: tok.Span}
}

// parseReference parses a hierarchical name followed by an optional
// select or call argument list.
func (p *Parser) parseReference() (ast.Expr, *types.SpanDiagnostic) {
	first := p.advance()
	path := []string{p.identText(first)}
	for p.check(lexer.TokDot) {
		p.advance()
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		path = append(path, p.identText(tok))
	}

	if p.check(lexer.TokLParen) {
		p.advance()
		var args []ast.Expr
		for !p.check(lexer.TokRParen) {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return &ast.Call{Path: path, Args: args, Span: types.NewSpan(first.Span.Start, p.prevEnd)}, nil
	}

	ref := &ast.Ident{Path: path}
	if p.check(lexer.TokLBracket) {
		p.advance()
		msb, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ref.Msb = msb
		if p.check(lexer.TokColon) {
			p.advance()
			lsb, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			ref.Lsb = lsb
		}
		if _, err := p.expect(lexer.TokRBracket); err != nil {
			return nil, err
		}
		if p.check(lexer.TokLBracket) {
			diag := p.makeError("multiple selects on one name are not supported")
			return nil, &diag
		}
	}
	ref.Span = types.NewSpan(first.Span.Start, p.prevEnd)
	return ref, nil
}

// parseConcat parses "{a, b}" and "{n{a, b}}".
func (p *Parser) parseConcat() (ast.Expr, *types.SpanDiagnostic) {
	start := p.advance().Span.Start
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	concat := &ast.Concat{}
	if p.check(lexer.TokLBrace) {
		inner, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		nested := inner.(*ast.Concat)
		concat.Repeat = first
		concat.Parts = nested.Parts
		if nested.Repeat != nil {
			concat.Parts = []ast.Expr{nested}
		}
	} else {
		concat.Parts = []ast.Expr{first}
		for p.check(lexer.TokComma) {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			concat.Parts = append(concat.Parts, e)
		}
	}
	if _, err := p.expect(lexer.TokRBrace); err != nil {
		return nil, err
	}
	concat.Span = types.NewSpan(start, p.prevEnd)
	return concat, nil
}

// unquote strips the quotes of a string literal and resolves escapes:
// \n, \t, \\, \" and up to three octal digits.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	} else if len(lit) >= 1 && lit[0] == '"' {
		lit = lit[1:]
	}
	if !strings.ContainsRune(lit, '\\') {
		return lit
	}
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = lit[i]; {
		case c == 'n':
			b.WriteByte('\n')
		case c == 't':
			b.WriteByte('\t')
		case c >= '0' && c <= '7':
			v := 0
			j := i
			for ; j < len(lit) && j < i+3 && lit[j] >= '0' && lit[j] <= '7'; j++ {
				v = v*8 + int(lit[j]-'0')
			}
			b.WriteByte(byte(v))
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
