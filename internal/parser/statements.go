package parser

import (
	"strings"

	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/diag"
	"github.com/cwbudde/nola/internal/lexer"
	"github.com/cwbudde/nola/internal/token"
)

// parseStatement parses one top-level statement form. It returns a slice
// rather than a single node because `load "<file>.<ext>"` splices zero or
// more statements from the included file into the current position.
func (p *Parser) parseStatement() []*ast.Node {
	switch p.cur().Kind {
	case token.LOAD:
		return p.parseLoad()
	case token.FORM, token.INLINE:
		return []*ast.Node{p.parseFunctionDecl()}
	case token.CLASS:
		return []*ast.Node{p.parseClassDecl()}
	case token.RETURN:
		return []*ast.Node{p.parseReturn()}
	case token.IF:
		return []*ast.Node{p.wrapExpr(p.parseIf())}
	case token.WHILE:
		return []*ast.Node{p.wrapExpr(p.parseWhile())}
	case token.FOR:
		return []*ast.Node{p.wrapExpr(p.parseFor())}
	case token.BREAK:
		return []*ast.Node{p.parseLoopControl(true)}
	case token.CONTINUE:
		return []*ast.Node{p.parseLoopControl(false)}
	case token.SET:
		return []*ast.Node{p.parseSet()}
	default:
		return []*ast.Node{p.parseExpressionStatement()}
	}
}

func (p *Parser) wrapExpr(n *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: n, Span: n.Span}
}

// impliedTerminator reports whether the current token closes off a
// statement without needing an explicit ';' — `else` (the then-branch of a
// braceless if/else, spec.md §8 scenario 4) or the `}` ending an enclosing
// block. End of input is deliberately excluded: a dangling statement with
// nothing after it is still a MissingTerminatorError.
func (p *Parser) impliedTerminator() bool {
	return p.cur().Kind == token.ELSE || p.cur().Kind == token.RBRACE
}

// parseExpressionStatement parses a bare expression statement and requires
// its terminating ';', unless the statement is immediately followed by one
// of impliedTerminator's implicit-end tokens — omitting ';' otherwise is a
// MissingTerminatorError, not a plain SyntaxError.
func (p *Parser) parseExpressionStatement() *ast.Node {
	start := p.spanHere()
	expr := p.parseExpression(LOWEST)
	if p.cur().Kind != token.SEMICOLON {
		if p.impliedTerminator() {
			return &ast.Node{Kind: ast.ExpressionStmt, Expr: expr, Span: token.Combine(start, expr.Span)}
		}
		p.errorf(diag.MissingTerminator, p.spanHere(), "missing ';' after expression statement")
		return &ast.Node{Kind: ast.ExpressionStmt, Expr: expr, Span: token.Combine(start, expr.Span)}
	}
	end := p.advance()
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: expr, Span: token.Combine(start, end.Span)}
}

// parseSet parses `set <var> = <expr>;`, kept per spec.md §8 scenario 3
// (see DESIGN.md) as pure sugar for a bare `<var> = <expr>;` assignment: it
// produces an identical Variable-assignment node with no marker of its own.
func (p *Parser) parseSet() *ast.Node {
	start := p.advance() // consume 'set'
	nameTok, _ := p.expect(token.IDENT, "after 'set'")
	if _, ok := p.expect(token.ASSIGN, "in set-assignment"); !ok {
		return &ast.Node{Kind: ast.ExpressionStmt, Span: start.Span, Expr: &ast.Node{Kind: ast.NoOp}}
	}
	value := p.parseExpression(ASSIGN)
	assign := &ast.Node{Kind: ast.Variable, Name: nameTok.Text, Value: value, Span: token.Combine(start.Span, value.Span)}
	if p.cur().Kind != token.SEMICOLON {
		if p.impliedTerminator() {
			return &ast.Node{Kind: ast.ExpressionStmt, Expr: assign, Span: assign.Span}
		}
		p.errorf(diag.MissingTerminator, p.spanHere(), "missing ';' after set-statement")
		return &ast.Node{Kind: ast.ExpressionStmt, Expr: assign, Span: assign.Span}
	}
	end := p.advance()
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: assign, Span: token.Combine(start.Span, end.Span)}
}

func (p *Parser) parseLoopControl(isBreak bool) *ast.Node {
	start := p.advance() // consume 'break'/'continue'
	end := start
	if p.cur().Kind == token.SEMICOLON {
		end = p.advance()
	} else if !p.impliedTerminator() {
		p.errorf(diag.MissingTerminator, p.spanHere(), "missing ';' after %s", start.Kind)
	}
	return &ast.Node{
		Kind: ast.ExpressionStmt, IsBreak: isBreak, IsContinue: !isBreak,
		Expr: &ast.Node{Kind: ast.NoOp}, Span: token.Combine(start.Span, end.Span),
	}
}

func (p *Parser) parseReturn() *ast.Node {
	start := p.advance() // consume 'return'
	var value *ast.Node
	if p.cur().Kind != token.SEMICOLON {
		value = p.parseExpression(LOWEST)
	}
	ret := &ast.Node{Kind: ast.ReturnLiteral, Value: value, Span: start.Span}
	if p.cur().Kind != token.SEMICOLON {
		if p.impliedTerminator() {
			return &ast.Node{Kind: ast.ExpressionStmt, Expr: ret, Span: ret.Span}
		}
		p.errorf(diag.MissingTerminator, p.spanHere(), "missing ';' after return statement")
		return &ast.Node{Kind: ast.ExpressionStmt, Expr: ret, Span: ret.Span}
	}
	end := p.advance()
	ret.Span = token.Combine(start.Span, end.Span)
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: ret, Span: ret.Span}
}

// parseBlockOrStmt parses `{ stmts }` or a single statement, per spec.md
// §4.2's "<block-or-stmt>" production used by if/while/for.
func (p *Parser) parseBlockOrStmt() []*ast.Node {
	if p.cur().Kind == token.LBRACE {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseBlock() []*ast.Node {
	start := p.advance() // consume '{'
	var stmts []*ast.Node
	for p.cur().Kind != token.RBRACE {
		if p.atEnd() {
			p.errorf(diag.Syntax, start.Span, "unterminated block")
			return stmts
		}
		stmts = append(stmts, p.parseStatement()...)
	}
	p.advance() // consume '}'
	return stmts
}

func (p *Parser) parseIf() *ast.Node {
	start := p.advance() // consume 'if'
	cond := p.parseExpression(LOWEST)
	then := p.parseBlockOrStmt()
	var els []*ast.Node
	if p.cur().Kind == token.ELSE {
		p.advance()
		els = p.parseBlockOrStmt()
	}
	return &ast.Node{Kind: ast.IfLiteral, Cond: cond, Then: then, Else: els, Span: start.Span}
}

func (p *Parser) parseWhile() *ast.Node {
	start := p.advance() // consume 'while'
	cond := p.parseExpression(LOWEST)
	body := p.parseBlockOrStmt()
	return &ast.Node{Kind: ast.WhileLiteral, Cond: cond, Body: body, Span: start.Span}
}

// parseFor parses `for <var> $ <iter> <block-or-stmt>`, spec.md §4.2's `$`
// iterator-operator form.
func (p *Parser) parseFor() *ast.Node {
	start := p.advance() // consume 'for'
	nameTok, _ := p.expect(token.IDENT, "as for-loop variable")
	p.expect(token.DOLLAR, "between for-loop variable and iterable")
	iter := p.parseExpression(LOWEST)
	body := p.parseBlockOrStmt()
	return &ast.Node{Kind: ast.ForLiteral, VarName: nameTok.Text, Iter: iter, Body: body, Span: start.Span}
}

// parseFunctionDecl parses `form <name>(<params>) { <stmts> }` or the
// `inline` variant, which is identical in shape per spec.md §9.
func (p *Parser) parseFunctionDecl() *ast.Node {
	start := p.advance() // consume 'form'/'inline'
	inline := start.Kind == token.INLINE
	nameTok, _ := p.expect(token.IDENT, "as function name")
	params := p.parseParamList()
	body := p.parseBlock()
	fn := &ast.Node{Kind: ast.FunctionLiteral, Name: nameTok.Text, Params: params, Body: body, Inline: inline, Span: start.Span}
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: fn, Span: fn.Span}
}

// parseClassDecl parses `class <name>(<params>) { <stmts> }`: the
// constructor parameter list plus a body of method FunctionLiteral
// declarations (and/or field-initializing expression statements).
func (p *Parser) parseClassDecl() *ast.Node {
	start := p.advance() // consume 'class'
	nameTok, _ := p.expect(token.IDENT, "as class name")
	params := p.parseParamList()
	body := p.parseBlock()
	cls := &ast.Node{Kind: ast.ClassLiteral, Name: nameTok.Text, Params: params, Body: body, Span: start.Span}
	return &ast.Node{Kind: ast.ExpressionStmt, Expr: cls, Span: cls.Span}
}

func (p *Parser) parseParamList() []string {
	p.expect(token.LPAREN, "to open parameter list")
	var params []string
	for p.cur().Kind != token.RPAREN {
		if p.atEnd() {
			p.errorf(diag.Syntax, p.spanHere(), "unterminated parameter list")
			return params
		}
		nameTok, ok := p.expect(token.IDENT, "as parameter name")
		if ok {
			params = append(params, nameTok.Text)
		}
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "to close parameter list")
	return params
}

// parseLoad parses `load "<target>";`. If target ends with the configured
// source extension, it is read, re-lexed, re-parsed, and its Program
// statements are spliced in place of the load directive. Otherwise target
// is a native-library basename resolved through the configured
// LibraryLoader.
func (p *Parser) parseLoad() []*ast.Node {
	start := p.advance() // consume 'load'
	targetTok, ok := p.expect(token.STRING, "naming a load target")
	target := DecodeEscapes(targetTok.Text)
	if !ok {
		p.consumeToSemicolon()
		return nil
	}

	if p.cur().Kind == token.SEMICOLON {
		p.advance()
	} else {
		p.errorf(diag.MissingTerminator, p.spanHere(), "missing ';' after load directive")
	}

	if strings.HasSuffix(target, p.srcExt) {
		return p.spliceSource(target, start.Span)
	}
	return p.loadLibrary(target, start.Span)
}

func (p *Parser) spliceSource(target string, span token.Span) []*ast.Node {
	if p.includeStack[target] {
		p.errorf(diag.Identifier, span, "load cycle detected for %q", target)
		return nil
	}
	if p.fs == nil {
		p.errorf(diag.Identifier, span, "no source filesystem configured to load %q", target)
		return nil
	}
	src, err := p.fs.ReadSource(target)
	if err != nil {
		p.errorf(diag.Identifier, span, "cannot load %q: %v", target, err)
		return nil
	}

	p.includeStack[target] = true
	defer delete(p.includeStack, target)

	sub := New(lexer.New(src).Tokenize(), target, p.sink)
	sub.SetFileSystem(p.fs)
	sub.SetLibraryLoader(p.libs)
	sub.SetSourceExtension(p.srcExt)
	sub.includeStack = p.includeStack
	prog := sub.ParseProgram()
	return prog.Stmts
}

func (p *Parser) loadLibrary(target string, span token.Span) []*ast.Node {
	if p.libs == nil {
		p.errorf(diag.Identifier, span, "no library loader configured to load %q", target)
		return nil
	}
	if err := p.libs.LoadLibrary(target); err != nil {
		p.errorf(diag.Identifier, span, "cannot load native library %q: %v", target, err)
	}
	return nil
}

func (p *Parser) consumeToSemicolon() {
	for p.cur().Kind != token.SEMICOLON && !p.atEnd() {
		p.advance()
	}
	if p.cur().Kind == token.SEMICOLON {
		p.advance()
	}
}
