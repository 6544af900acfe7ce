// Package parser provides parsing of the supported Verilog subset into
// an AST.
//
// The parser recovers from errors and continues: a malformed module item
// is reported and skipped, and parsing resumes at the next item. Parse
// errors are collected as diagnostics rather than causing immediate
// failure.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/lexer"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// Parser converts a token stream into modules with diagnostics.
type Parser struct {
	source      []byte
	lex         *lexer.Lexer
	tok         lexer.Token // current token
	prevEnd     types.ByteOffset
	diagnostics []types.SpanDiagnostic
	diagConfig  netlist.DiagnosticConfig
	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging. The diagConfig controls which
// non-syntax diagnostics are reported.
func New(source []byte, logger *slog.Logger, diagConfig netlist.DiagnosticConfig) *Parser {
	lex := lexer.New(source, types.Component(logger, "lexer"))
	p := &Parser{
		source:     source,
		lex:        lex,
		diagConfig: diagConfig,
		Logger:     types.Logger{L: logger},
	}
	p.tok = lex.NextToken()
	p.Log(slog.LevelDebug, "parser initialized")
	return p
}

// emitDiagnostic records a diagnostic if the current config reports it.
func (p *Parser) emitDiagnostic(code string, severity int, span types.Span, message string) {
	if !p.diagConfig.ShouldReport(code, netlist.Severity(severity)) {
		return
	}
	p.diagnostics = append(p.diagnostics, types.SpanDiagnostic{
		Severity: severity,
		Code:     code,
		Span:     span,
		Message:  message,
	})
}

// ParseFile parses every module in the source.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{}
	for !p.isEOF() {
		if !p.check(lexer.TokKwModule) {
			p.recordParseError(p.makeError(fmt.Sprintf("expected module, found %s", p.peek().Kind)))
			p.recoverToModule()
			continue
		}
		file.Modules = append(file.Modules, p.parseModule())
	}
	file.Diagnostics = append(p.lex.Diagnostics(), p.diagnostics...)
	p.Log(slog.LevelDebug, "parsing complete",
		slog.Int("modules", len(file.Modules)),
		slog.Int("diagnostics", len(file.Diagnostics)))
	return file
}

// ParseExpression parses a single expression that must span the whole
// source.
func (p *Parser) ParseExpression() (ast.Expr, []types.SpanDiagnostic) {
	expr, err := p.parseExpr()
	if err != nil {
		p.recordParseError(*err)
	} else if !p.isEOF() {
		p.recordParseError(p.makeError(fmt.Sprintf("unexpected %s after expression", p.peek().Kind)))
	}
	return expr, append(p.lex.Diagnostics(), p.diagnostics...)
}

func (p *Parser) parseModule() *ast.Module {
	start := p.advance().Span.Start
	nameTok, err := p.expectIdent()
	if err != nil {
		p.recordParseError(*err)
		p.recoverToModule()
		span := types.NewSpan(start, p.prevEnd)
		return ast.NewModule(ast.NewName("UNKNOWN", span), span)
	}
	mod := ast.NewModule(p.makeName(nameTok), types.NewSpan(start, 0))
	p.Log(slog.LevelDebug, "parsing module", slog.String("module", mod.Name.Text))

	if err := p.parseModuleHeader(mod); err != nil {
		p.recordParseError(*err)
		p.recoverItem()
	}

	for !p.check(lexer.TokKwEndmodule) && !p.check(lexer.TokKwModule) && !p.isEOF() {
		if err := p.parseItem(mod); err != nil {
			p.recordParseError(*err)
			p.recoverItem()
		}
	}
	if _, err := p.expect(lexer.TokKwEndmodule); err != nil {
		p.recordParseError(*err)
	}

	mod.Span = types.NewSpan(start, p.prevEnd)
	p.Log(slog.LevelDebug, "parsed module",
		slog.String("module", mod.Name.Text),
		slog.Int("decls", len(mod.Decls)),
		slog.Int("assigns", len(mod.Assigns)))
	return mod
}

// parseModuleHeader parses the optional parameter and port lists and the
// terminating semicolon.
func (p *Parser) parseModuleHeader(mod *ast.Module) *types.SpanDiagnostic {
	if p.check(lexer.TokHash) {
		p.advance()
		if _, err := p.expect(lexer.TokLParen); err != nil {
			return err
		}
		for {
			local := false
			switch p.peek().Kind {
			case lexer.TokKwParameter:
				p.advance()
			case lexer.TokKwLocalparam:
				p.advance()
				local = true
			}
			params, err := p.parseParamAssigns(local, false)
			if err != nil {
				return err
			}
			mod.Params = append(mod.Params, params...)
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return err
		}
	}
	if p.check(lexer.TokLParen) {
		if err := p.parsePortList(mod); err != nil {
			return err
		}
	}
	_, err := p.expect(lexer.TokSemicolon)
	return err
}

// parsePortList parses "( a, b )" or an ANSI list "( input [3:0] a, output y )".
func (p *Parser) parsePortList(mod *ast.Module) *types.SpanDiagnostic {
	p.advance()
	if p.check(lexer.TokRParen) {
		p.advance()
		return nil
	}
	var head *declHead
	for {
		if p.peek().Kind.IsDirection() {
			h, err := p.parseDeclHead()
			if err != nil {
				return err
			}
			head = &h
		}
		tok, err := p.expectIdent()
		if err != nil {
			return err
		}
		name := p.makeName(tok)
		mod.Ports = append(mod.Ports, name)
		if head != nil {
			mod.Decls = append(mod.Decls, head.decl(name))
		}
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err := p.expect(lexer.TokRParen)
	return err
}

// declHead is the part of a declaration before the names.
type declHead struct {
	dir    ast.Direction
	kind   ast.NetKind
	signed bool
	rng    *ast.Range
}

func (h declHead) decl(name ast.Name) ast.Decl {
	return ast.Decl{Name: name, Dir: h.dir, Kind: h.kind, Signed: h.signed, Range: h.rng, Span: name.Span}
}

// parseDeclHead parses [direction] [net type] [signed] [range].
func (p *Parser) parseDeclHead() (declHead, *types.SpanDiagnostic) {
	var h declHead
	switch p.peek().Kind {
	case lexer.TokKwInput:
		h.dir = ast.DirInput
		p.advance()
	case lexer.TokKwOutput:
		h.dir = ast.DirOutput
		p.advance()
	case lexer.TokKwInout:
		h.dir = ast.DirInout
		p.advance()
	}
	switch p.peek().Kind {
	case lexer.TokKwWire:
		h.kind = ast.NetWire
		p.advance()
	case lexer.TokKwReg:
		h.kind = ast.NetReg
		p.advance()
	case lexer.TokKwTri:
		h.kind = ast.NetTri
		p.advance()
	case lexer.TokKwSupply0:
		h.kind = ast.NetSupply0
		p.advance()
	case lexer.TokKwSupply1:
		h.kind = ast.NetSupply1
		p.advance()
	}
	if p.check(lexer.TokKwSigned) {
		h.signed = true
		p.advance()
	}
	if p.check(lexer.TokLBracket) {
		rng, err := p.parseRange()
		if err != nil {
			return h, err
		}
		h.rng = rng
	}
	return h, nil
}

// parseItem parses one module item.
func (p *Parser) parseItem(mod *ast.Module) *types.SpanDiagnostic {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.TokSemicolon:
		p.advance()
		return nil
	case tok.Kind.IsDirection(), tok.Kind.IsNetType():
		return p.parseNetDecl(mod)
	case tok.Kind == lexer.TokKwReg:
		return p.parseRegDecl(mod)
	case tok.Kind == lexer.TokKwInteger:
		return p.parseIntegerDecl(mod)
	case tok.Kind == lexer.TokKwReal:
		names, err := p.parseNameListDecl()
		mod.Reals = append(mod.Reals, names...)
		return err
	case tok.Kind == lexer.TokKwEvent:
		names, err := p.parseNameListDecl()
		mod.Events = append(mod.Events, names...)
		return err
	case tok.Kind == lexer.TokKwParameter, tok.Kind == lexer.TokKwLocalparam:
		p.advance()
		params, err := p.parseParamAssigns(tok.Kind == lexer.TokKwLocalparam, true)
		mod.Params = append(mod.Params, params...)
		if err != nil {
			return err
		}
		_, err = p.expect(lexer.TokSemicolon)
		return err
	case tok.Kind == lexer.TokKwAssign:
		return p.parseContinuousAssign(mod)
	case tok.Kind == lexer.TokKwFunction:
		return p.parseFunction(mod)
	}
	diag := p.makeError(fmt.Sprintf("unsupported module item starting with %s %q", tok.Kind, p.text(tok.Span)))
	return &diag
}

// parseNetDecl parses port and net declarations, with optional net
// declaration assignments on nets.
func (p *Parser) parseNetDecl(mod *ast.Module) *types.SpanDiagnostic {
	start := p.peek().Span.Start
	head, err := p.parseDeclHead()
	if err != nil {
		return err
	}
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return err
		}
		decl := head.decl(p.makeName(tok))
		if p.check(lexer.TokAssign) && head.dir == ast.DirNone {
			p.advance()
			init, err := p.parseExpr()
			if err != nil {
				return err
			}
			decl.Init = init
		}
		decl.Span = types.NewSpan(start, p.prevEnd)
		mod.Decls = append(mod.Decls, decl)
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err = p.expect(lexer.TokSemicolon)
	return err
}

// parseRegDecl parses reg declarations. A name followed by a range
// declares a memory.
func (p *Parser) parseRegDecl(mod *ast.Module) *types.SpanDiagnostic {
	start := p.peek().Span.Start
	head, err := p.parseDeclHead()
	if err != nil {
		return err
	}
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return err
		}
		name := p.makeName(tok)
		if p.check(lexer.TokLBracket) {
			words, err := p.parseRange()
			if err != nil {
				return err
			}
			mod.Memories = append(mod.Memories, ast.Memory{
				Name:   name,
				Signed: head.signed,
				Width:  head.rng,
				Words:  *words,
				Span:   types.NewSpan(start, p.prevEnd),
			})
		} else {
			decl := head.decl(name)
			decl.Span = types.NewSpan(start, p.prevEnd)
			mod.Decls = append(mod.Decls, decl)
		}
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err = p.expect(lexer.TokSemicolon)
	return err
}

// parseIntegerDecl parses "integer a, b;" as signed 32-bit regs.
func (p *Parser) parseIntegerDecl(mod *ast.Module) *types.SpanDiagnostic {
	kw := p.advance()
	rng := integerRange(kw.Span)
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return err
		}
		mod.Decls = append(mod.Decls, ast.Decl{
			Name:   p.makeName(tok),
			Kind:   ast.NetReg,
			Signed: true,
			Range:  rng,
			Span:   types.NewSpan(kw.Span.Start, p.prevEnd),
		})
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err := p.expect(lexer.TokSemicolon)
	return err
}

func integerRange(span types.Span) *ast.Range {
	return &ast.Range{
		Msb:  &ast.Number{Value: bitvec.FromInt(31), Text: "31", Span: span},
		Lsb:  &ast.Number{Value: bitvec.FromInt(0), Text: "0", Span: span},
		Span: span,
	}
}

// parseNameListDecl parses "kw a, b;".
func (p *Parser) parseNameListDecl() ([]ast.Name, *types.SpanDiagnostic) {
	p.advance()
	var names []ast.Name
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return names, err
		}
		names = append(names, p.makeName(tok))
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err := p.expect(lexer.TokSemicolon)
	return names, err
}

// parseParamAssigns parses [signed] [range] NAME = expr {, NAME = expr}.
// In a header parameter list only one assignment is taken per call.
func (p *Parser) parseParamAssigns(local, list bool) ([]ast.Param, *types.SpanDiagnostic) {
	start := p.peek().Span.Start
	signed := false
	if p.check(lexer.TokKwSigned) {
		signed = true
		p.advance()
	}
	var rng *ast.Range
	if p.check(lexer.TokLBracket) {
		r, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		rng = r
	}
	var params []ast.Param
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return params, err
		}
		if _, err := p.expect(lexer.TokAssign); err != nil {
			return params, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return params, err
		}
		params = append(params, ast.Param{
			Name:   p.makeName(tok),
			Value:  value,
			Signed: signed,
			Range:  rng,
			Local:  local,
			Span:   types.NewSpan(start, p.prevEnd),
		})
		if !list || !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	return params, nil
}

// parseContinuousAssign parses:
//
//	assign [(strength0, strength1)] [#delay] lvalue = expr {, lvalue = expr} ;
func (p *Parser) parseContinuousAssign(mod *ast.Module) *types.SpanDiagnostic {
	start := p.advance().Span.Start
	var strengths []ast.Name
	if p.check(lexer.TokLParen) {
		p.advance()
		for {
			tok, err := p.expectIdent()
			if err != nil {
				return err
			}
			strengths = append(strengths, p.makeName(tok))
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return err
		}
	}
	var delays []ast.Expr
	if p.check(lexer.TokHash) {
		d, err := p.parseDelay()
		if err != nil {
			return err
		}
		delays = d
	}
	for {
		target, err := p.parseExpr()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.TokAssign); err != nil {
			return err
		}
		value, err := p.parseExpr()
		if err != nil {
			return err
		}
		mod.Assigns = append(mod.Assigns, ast.Assign{
			Target:    target,
			Value:     value,
			Strengths: strengths,
			Delays:    delays,
			Span:      types.NewSpan(start, p.prevEnd),
		})
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	_, err := p.expect(lexer.TokSemicolon)
	return err
}

// parseDelay parses "#value" or "#(rise[, fall[, decay]])".
func (p *Parser) parseDelay() ([]ast.Expr, *types.SpanDiagnostic) {
	p.advance()
	if !p.check(lexer.TokLParen) {
		e, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return []ast.Expr{e}, nil
	}
	p.advance()
	var delays []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		delays = append(delays, e)
		if !p.check(lexer.TokComma) {
			break
		}
		p.advance()
	}
	if len(delays) > 3 {
		diag := p.makeError(fmt.Sprintf("at most 3 delay values allowed, got %d", len(delays)))
		return nil, &diag
	}
	_, err := p.expect(lexer.TokRParen)
	return delays, err
}

// parseFunction parses a function declaration. Only the header and the
// input declarations are kept; the body is skipped.
func (p *Parser) parseFunction(mod *ast.Module) *types.SpanDiagnostic {
	start := p.advance().Span.Start
	fn := ast.Function{}
	switch {
	case p.check(lexer.TokKwInteger):
		kw := p.advance()
		fn.Signed = true
		fn.Range = integerRange(kw.Span)
	default:
		if p.check(lexer.TokKwSigned) {
			fn.Signed = true
			p.advance()
		}
		if p.check(lexer.TokLBracket) {
			rng, err := p.parseRange()
			if err != nil {
				return err
			}
			fn.Range = rng
		}
	}
	tok, err := p.expectIdent()
	if err != nil {
		return err
	}
	fn.Name = p.makeName(tok)
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return err
	}

	for !p.check(lexer.TokKwEndfunction) && !p.check(lexer.TokKwEndmodule) && !p.isEOF() {
		if !p.check(lexer.TokKwInput) {
			p.advance()
			continue
		}
		declStart := p.peek().Span.Start
		head, err := p.parseDeclHead()
		if err != nil {
			return err
		}
		for {
			tok, err := p.expectIdent()
			if err != nil {
				return err
			}
			decl := head.decl(p.makeName(tok))
			decl.Span = types.NewSpan(declStart, p.prevEnd)
			fn.Inputs = append(fn.Inputs, decl)
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
		if _, err := p.expect(lexer.TokSemicolon); err != nil {
			return err
		}
	}
	if _, err := p.expect(lexer.TokKwEndfunction); err != nil {
		return err
	}
	fn.Span = types.NewSpan(start, p.prevEnd)
	mod.Functions = append(mod.Functions, fn)
	return nil
}

// parseRange parses "[msb:lsb]".
func (p *Parser) parseRange() (*ast.Range, *types.SpanDiagnostic) {
	start := p.advance().Span.Start
	msb, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokColon); err != nil {
		return nil, err
	}
	lsb, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRBracket); err != nil {
		return nil, err
	}
	return &ast.Range{Msb: msb, Lsb: lsb, Span: types.NewSpan(start, p.prevEnd)}, nil
}

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) peek() lexer.Token {
	return p.tok
}

func (p *Parser) advance() lexer.Token {
	tok := p.tok
	p.prevEnd = tok.Span.End
	p.tok = p.lex.NextToken()
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *types.SpanDiagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	diag := p.makeError(fmt.Sprintf("expected %s, found %s", kind, p.peek().Kind))
	return lexer.Token{}, &diag
}

func (p *Parser) expectIdent() (lexer.Token, *types.SpanDiagnostic) {
	return p.expect(lexer.TokIdent)
}

func (p *Parser) currentSpan() types.Span {
	return p.peek().Span
}

func (p *Parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

// identText returns the name of an identifier token, without the
// backslash of an escaped identifier.
func (p *Parser) identText(tok lexer.Token) string {
	text := p.text(tok.Span)
	if len(text) > 1 && text[0] == '\\' {
		return text[1:]
	}
	return text
}

func (p *Parser) makeName(tok lexer.Token) ast.Name {
	return ast.NewName(p.identText(tok), tok.Span)
}

// recordParseError appends a structural parse error unconditionally.
// Parse errors bypass ShouldReport() filtering because they indicate
// a syntax problem that must be reported at any strictness level.
func (p *Parser) recordParseError(diag types.SpanDiagnostic) {
	p.diagnostics = append(p.diagnostics, diag)
}

func (p *Parser) makeError(message string) types.SpanDiagnostic {
	return types.SpanDiagnostic{
		Severity: types.SeverityError,
		Code:     types.DiagParseError,
		Span:     p.currentSpan(),
		Message:  message,
	}
}

// startsItem reports whether kind begins a module item.
func startsItem(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.TokKwReg, lexer.TokKwInteger, lexer.TokKwReal, lexer.TokKwEvent,
		lexer.TokKwParameter, lexer.TokKwLocalparam, lexer.TokKwAssign,
		lexer.TokKwFunction, lexer.TokKwEndmodule, lexer.TokKwModule:
		return true
	}
	return kind.IsDirection() || kind.IsNetType()
}

// recoverItem skips tokens until just after the next semicolon outside a
// begin/end block, or until the start of another item.
func (p *Parser) recoverItem() {
	depth := 0
	for !p.isEOF() {
		kind := p.peek().Kind
		switch {
		case kind == lexer.TokKwBegin:
			depth++
		case kind == lexer.TokKwEnd:
			depth--
			if depth <= 0 {
				p.advance()
				return
			}
		case depth == 0 && kind == lexer.TokSemicolon:
			p.advance()
			return
		case depth == 0 && startsItem(kind):
			return
		}
		p.advance()
	}
}

// recoverToModule skips tokens until the next module keyword.
func (p *Parser) recoverToModule() {
	for !p.isEOF() && !p.check(lexer.TokKwModule) {
		p.advance()
	}
}
