// Package parser implements a minimal recursive-descent parser turning
// hemlock source text into the internal/ast tree the evaluator walks. This
// front end is deliberately out of the core's specified invariant surface:
// it exists so the repository is runnable end-to-end, not as a restatement
// of a formal grammar.
package parser

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/lexer"
)

// Parser consumes a token stream and builds an AST.
type Parser struct {
	l         *lexer.Lexer
	cur, peek lexer.Token
	errs      []error
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.next()
	p.next()
	return p
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []error { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	t := p.cur
	if p.cur.Type != tt {
		p.errorf("unexpected token %q", p.cur.Lit)
	}
	p.next()
	return t
}

func (p *Parser) pos() ast.Pos { return ast.Pos{Line: p.cur.Line, Col: p.cur.Col} }

// ParseProgram parses a whole source file.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		prog.Stmts = append(prog.Stmts, p.parseStmt())
	}
	return prog
}

// ---- Statements ----

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case lexer.LET, lexer.CONST:
		return p.parseLet()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.BREAK:
		pos := p.pos()
		p.next()
		p.skipSemi()
		s := &ast.BreakStmt{}
		s.Position = pos
		return s
	case lexer.CONTINUE:
		pos := p.pos()
		p.next()
		p.skipSemi()
		s := &ast.ContinueStmt{}
		s.Position = pos
		return s
	case lexer.RETURN:
		pos := p.pos()
		p.next()
		var val ast.Expr
		if p.cur.Type != lexer.SEMI && p.cur.Type != lexer.RBRACE {
			val = p.parseExpr(lowest)
		}
		p.skipSemi()
		s := &ast.ReturnStmt{Value: val}
		s.Position = pos
		return s
	case lexer.THROW:
		pos := p.pos()
		p.next()
		val := p.parseExpr(lowest)
		p.skipSemi()
		s := &ast.ThrowStmt{Value: val}
		s.Position = pos
		return s
	case lexer.TRY:
		return p.parseTry()
	case lexer.DEFER:
		pos := p.pos()
		p.next()
		call := p.parseExpr(lowest)
		p.skipSemi()
		s := &ast.DeferStmt{Call: call}
		s.Position = pos
		return s
	case lexer.DEFINE:
		return p.parseDefine()
	case lexer.FN:
		return p.parseFnDecl()
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.EXPORT:
		pos := p.pos()
		p.next()
		inner := p.parseStmt()
		s := &ast.ExportStmt{Inner: inner}
		s.Position = pos
		return s
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) skipSemi() {
	for p.cur.Type == lexer.SEMI {
		p.next()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.pos()
	p.expect(lexer.LBRACE)
	blk := &ast.BlockStmt{}
	blk.Position = pos
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		blk.Stmts = append(blk.Stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return blk
}

func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	if p.cur.Type != lexer.COLON {
		return nil
	}
	p.next()
	name := p.cur.Lit
	p.next()
	return &ast.TypeAnnotation{Name: name}
}

func (p *Parser) parseLet() ast.Stmt {
	pos := p.pos()
	isConst := p.cur.Type == lexer.CONST
	p.next()
	name := p.expect(lexer.IDENT).Lit
	ann := p.parseTypeAnnotation()
	var val ast.Expr
	if p.cur.Type == lexer.ASSIGN {
		p.next()
		val = p.parseExpr(lowest)
	}
	p.skipSemi()
	s := &ast.LetStmt{Name: name, Annotation: ann, Value: val, Const: isConst}
	s.Position = pos
	return s
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos()
	p.next()
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(lowest)
	p.expect(lexer.RPAREN)
	then := p.parseBlock()
	s := &ast.IfStmt{Cond: cond, Then: then}
	s.Position = pos
	if p.cur.Type == lexer.ELSE {
		p.next()
		if p.cur.Type == lexer.IF {
			s.Else = p.parseIf()
		} else {
			s.Else = p.parseBlock()
		}
	}
	return s
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.pos()
	p.next()
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(lowest)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	s := &ast.WhileStmt{Cond: cond, Body: body}
	s.Position = pos
	return s
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.pos()
	p.next()
	p.expect(lexer.LPAREN)
	// Try to detect `for (k, v in coll)` or `for (v in coll)`
	if p.isForIn() {
		var keyName, valName string
		first := p.expect(lexer.IDENT).Lit
		if p.cur.Type == lexer.COMMA {
			p.next()
			second := p.expect(lexer.IDENT).Lit
			keyName, valName = first, second
		} else {
			valName = first
		}
		p.expect(lexer.IN)
		coll := p.parseExpr(lowest)
		p.expect(lexer.RPAREN)
		body := p.parseBlock()
		s := &ast.ForInStmt{KeyName: keyName, ValName: valName, Collection: coll, Body: body}
		s.Position = pos
		return s
	}
	var init ast.Stmt
	if p.cur.Type != lexer.SEMI {
		init = p.parseSimpleStmt()
	}
	p.expect(lexer.SEMI)
	var cond ast.Expr
	if p.cur.Type != lexer.SEMI {
		cond = p.parseExpr(lowest)
	}
	p.expect(lexer.SEMI)
	var post ast.Stmt
	if p.cur.Type != lexer.RPAREN {
		post = p.parseSimpleStmt()
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	s := &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body}
	s.Position = pos
	return s
}

// isForIn decides, without consuming tokens, whether a for header is
// the for-in form, using only the parser's one token of lookahead.
func (p *Parser) isForIn() bool {
	if p.cur.Type != lexer.IDENT {
		return false
	}
	// IDENT followed by IN, or IDENT followed by COMMA (taken to be the
	// `k, v in` form without checking for the IN), counts as for-in.
	if p.peek.Type == lexer.IN {
		return true
	}
	if p.peek.Type == lexer.COMMA {
		return true // committed: for(k,v in ...) is the only comma-form for-init we support
	}
	return false
}

func (p *Parser) parseSimpleStmt() ast.Stmt {
	if p.cur.Type == lexer.LET || p.cur.Type == lexer.CONST {
		return p.parseLetNoSemi()
	}
	return p.parseExprOrAssignStmtNoSemi()
}

func (p *Parser) parseLetNoSemi() ast.Stmt {
	pos := p.pos()
	isConst := p.cur.Type == lexer.CONST
	p.next()
	name := p.expect(lexer.IDENT).Lit
	ann := p.parseTypeAnnotation()
	var val ast.Expr
	if p.cur.Type == lexer.ASSIGN {
		p.next()
		val = p.parseExpr(lowest)
	}
	s := &ast.LetStmt{Name: name, Annotation: ann, Value: val, Const: isConst}
	s.Position = pos
	return s
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN:       "=",
	lexer.PLUS_ASSIGN:  "+=",
	lexer.MINUS_ASSIGN: "-=",
	lexer.STAR_ASSIGN:  "*=",
	lexer.SLASH_ASSIGN: "/=",
}

func (p *Parser) parseExprOrAssignStmtNoSemi() ast.Stmt {
	pos := p.pos()
	expr := p.parseExpr(lowest)
	if op, ok := assignOps[p.cur.Type]; ok {
		p.next()
		val := p.parseExpr(lowest)
		s := &ast.AssignStmt{Target: expr, Op: op, Value: val}
		s.Position = pos
		return s
	}
	s := &ast.ExprStmt{Expr: expr}
	s.Position = pos
	return s
}

func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	s := p.parseExprOrAssignStmtNoSemi()
	p.skipSemi()
	return s
}

func (p *Parser) parseSwitch() ast.Stmt {
	pos := p.pos()
	p.next()
	p.expect(lexer.LPAREN)
	disc := p.parseExpr(lowest)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)
	s := &ast.SwitchStmt{Discriminant: disc}
	s.Position = pos
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.CASE {
			p.next()
			var vals []ast.Expr
			vals = append(vals, p.parseExpr(lowest))
			for p.cur.Type == lexer.COMMA {
				p.next()
				vals = append(vals, p.parseExpr(lowest))
			}
			p.expect(lexer.COLON)
			var body []ast.Stmt
			for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE {
				body = append(body, p.parseStmt())
			}
			s.Cases = append(s.Cases, ast.SwitchCase{Values: vals, Body: body})
		} else if p.cur.Type == lexer.DEFAULT {
			p.next()
			p.expect(lexer.COLON)
			for p.cur.Type != lexer.CASE && p.cur.Type != lexer.DEFAULT && p.cur.Type != lexer.RBRACE {
				s.Default = append(s.Default, p.parseStmt())
			}
		} else {
			p.errorf("expected case/default, got %q", p.cur.Lit)
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return s
}

func (p *Parser) parseTry() ast.Stmt {
	pos := p.pos()
	p.next()
	tryBlk := p.parseBlock()
	s := &ast.TryStmt{Try: tryBlk}
	s.Position = pos
	if p.cur.Type == lexer.CATCH {
		p.next()
		p.expect(lexer.LPAREN)
		s.CatchParam = p.expect(lexer.IDENT).Lit
		p.expect(lexer.RPAREN)
		s.Catch = p.parseBlock()
	}
	if p.cur.Type == lexer.FINALLY {
		p.next()
		s.Finally = p.parseBlock()
	}
	return s
}

func (p *Parser) parseDefine() ast.Stmt {
	pos := p.pos()
	p.next()
	name := p.expect(lexer.IDENT).Lit
	p.expect(lexer.LBRACE)
	s := &ast.DefineStmt{Name: name}
	s.Position = pos
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		fname := p.expect(lexer.IDENT).Lit
		optional := false
		if p.cur.Type == lexer.QUESTION {
			optional = true
			p.next()
		}
		var ann *ast.TypeAnnotation
		var def ast.Expr
		if p.cur.Type == lexer.COLON {
			if optional && p.peek.Type != lexer.IDENT {
				// `name?: <expr>` sugar: the colon introduces a default
				// expression, not a type name, when optional and the
				// following token can't start one.
				p.next()
				def = p.parseExpr(lowest)
			} else {
				ann = p.parseTypeAnnotation()
			}
		}
		if def == nil && p.cur.Type == lexer.ASSIGN {
			p.next()
			def = p.parseExpr(lowest)
		}
		s.Fields = append(s.Fields, ast.FieldDef{Name: fname, Annotation: ann, Optional: optional, Default: def})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return s
}

func (p *Parser) parseFnDecl() ast.Stmt {
	pos := p.pos()
	fn := p.parseFunctionLit(true)
	s := &ast.LetStmt{Name: fn.Name, Value: fn}
	s.Position = pos
	return s
}

func (p *Parser) parseImport() ast.Stmt {
	pos := p.pos()
	p.next()
	var names []string
	if p.cur.Type == lexer.LBRACE {
		p.next()
		for p.cur.Type != lexer.RBRACE {
			names = append(names, p.expect(lexer.IDENT).Lit)
			if p.cur.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACE)
	}
	path := ""
	if p.cur.Type == lexer.STRING {
		path = p.cur.Lit
		p.next()
	}
	p.skipSemi()
	s := &ast.ImportStmt{Path: path, Names: names}
	s.Position = pos
	return s
}

func (p *Parser) parseFunctionLit(named bool) *ast.FunctionLit {
	pos := p.pos()
	isAsync := false
	if p.cur.Type == lexer.ASYNC {
		isAsync = true
		p.next()
	}
	p.expect(lexer.FN)
	name := ""
	if named || p.cur.Type == lexer.IDENT {
		if p.cur.Type == lexer.IDENT {
			name = p.cur.Lit
			p.next()
		}
	}
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for p.cur.Type != lexer.RPAREN {
		pname := p.expect(lexer.IDENT).Lit
		ann := p.parseTypeAnnotation()
		var def ast.Expr
		if p.cur.Type == lexer.ASSIGN {
			p.next()
			def = p.parseExpr(lowest)
		}
		params = append(params, ast.Param{Name: pname, Annotation: ann, Default: def})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	retType := p.parseTypeAnnotation()
	body := p.parseBlock()
	fn := &ast.FunctionLit{Name: name, Params: params, ReturnType: retType, Body: body, IsAsync: isAsync}
	fn.Position = pos
	return fn
}

// ---- Expressions (Pratt parser) ----

type precedence int

const (
	lowest precedence = iota
	orPrec
	andPrec
	equality
	comparison
	bitwise
	shift
	sum
	product
	unaryPrec
	callPrec
)

var precedences = map[lexer.TokenType]precedence{
	lexer.OR:       orPrec,
	lexer.AND:      andPrec,
	lexer.EQ:       equality,
	lexer.NEQ:      equality,
	lexer.LT:       comparison,
	lexer.LTE:      comparison,
	lexer.GT:       comparison,
	lexer.GTE:      comparison,
	lexer.PIPE:     bitwise,
	lexer.AMP:      bitwise,
	lexer.CARET:    bitwise,
	lexer.SHL:      shift,
	lexer.SHR:      shift,
	lexer.PLUS:     sum,
	lexer.MINUS:    sum,
	lexer.STAR:     product,
	lexer.SLASH:    product,
	lexer.PERCENT:  product,
	lexer.LPAREN:   callPrec,
	lexer.DOT:      callPrec,
	lexer.LBRACKET: callPrec,
}

func (p *Parser) peekPrecedence() precedence {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) parseExpr(prec precedence) ast.Expr {
	left := p.parsePrefix()
	for prec < p.peekPrecedence() {
		switch p.cur.Type {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.DOT:
			left = p.parseMember(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		case lexer.AND, lexer.OR:
			left = p.parseLogical(left)
		default:
			left = p.parseBinary(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		lit := p.cur.Lit
		p.next()
		return parseIntLit(lit, pos)
	case lexer.FLOAT:
		lit := p.cur.Lit
		p.next()
		v := parseFloat(lit)
		e := &ast.FloatLit{Value: v}
		e.Position = pos
		return e
	case lexer.STRING:
		lit := p.cur.Lit
		p.next()
		e := &ast.StringLit{Value: lit}
		e.Position = pos
		return e
	case lexer.RUNE:
		lit := p.cur.Lit
		p.next()
		r := rune(0)
		for _, c := range lit {
			r = c
			break
		}
		e := &ast.RuneLit{Value: r}
		e.Position = pos
		return e
	case lexer.TRUE, lexer.FALSE:
		v := p.cur.Type == lexer.TRUE
		p.next()
		e := &ast.BoolLit{Value: v}
		e.Position = pos
		return e
	case lexer.NULL:
		p.next()
		e := &ast.NullLit{}
		e.Position = pos
		return e
	case lexer.IDENT:
		name := p.cur.Lit
		p.next()
		e := &ast.Identifier{Name: name}
		e.Position = pos
		return e
	case lexer.LPAREN:
		p.next()
		e := p.parseExpr(lowest)
		p.expect(lexer.RPAREN)
		return e
	case lexer.LBRACKET:
		return p.parseArrayLit()
	case lexer.LBRACE:
		return p.parseObjectLit()
	case lexer.FN, lexer.ASYNC:
		return p.parseFunctionLit(false)
	case lexer.MINUS, lexer.NOT, lexer.TILDE:
		op := p.cur.Lit
		p.next()
		operand := p.parseExpr(unaryPrec)
		e := &ast.UnaryExpr{Op: op, Operand: operand}
		e.Position = pos
		return e
	default:
		p.errorf("unexpected token in expression %q", p.cur.Lit)
		tok := p.cur
		p.next()
		e := &ast.Identifier{Name: tok.Lit}
		e.Position = pos
		return e
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	pos := p.pos()
	op := p.cur.Lit
	prec := p.peekPrecedence()
	p.next()
	right := p.parseExpr(prec)
	e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	e.Position = pos
	return e
}

func (p *Parser) parseLogical(left ast.Expr) ast.Expr {
	pos := p.pos()
	op := p.cur.Lit
	prec := p.peekPrecedence()
	p.next()
	right := p.parseExpr(prec)
	e := &ast.LogicalExpr{Op: op, Left: left, Right: right}
	e.Position = pos
	return e
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	pos := p.pos()
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for p.cur.Type != lexer.RPAREN {
		args = append(args, p.parseExpr(lowest))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	e := &ast.CallExpr{Callee: callee, Args: args}
	e.Position = pos
	return e
}

func (p *Parser) parseMember(target ast.Expr) ast.Expr {
	pos := p.pos()
	p.expect(lexer.DOT)
	name := p.expect(lexer.IDENT).Lit
	e := &ast.MemberExpr{Target: target, Name: name}
	e.Position = pos
	return e
}

func (p *Parser) parseIndex(target ast.Expr) ast.Expr {
	pos := p.pos()
	p.expect(lexer.LBRACKET)
	idx := p.parseExpr(lowest)
	p.expect(lexer.RBRACKET)
	e := &ast.IndexExpr{Target: target, Index: idx}
	e.Position = pos
	return e
}

func (p *Parser) parseArrayLit() ast.Expr {
	pos := p.pos()
	p.expect(lexer.LBRACKET)
	e := &ast.ArrayLit{}
	e.Position = pos
	for p.cur.Type != lexer.RBRACKET {
		e.Elements = append(e.Elements, p.parseExpr(lowest))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET)
	return e
}

func (p *Parser) parseObjectLit() ast.Expr {
	pos := p.pos()
	p.expect(lexer.LBRACE)
	e := &ast.ObjectLit{}
	e.Position = pos
	for p.cur.Type != lexer.RBRACE {
		var fname string
		if p.cur.Type == lexer.STRING {
			fname = p.cur.Lit
		} else {
			fname = p.cur.Lit
		}
		p.next()
		p.expect(lexer.COLON)
		val := p.parseExpr(lowest)
		e.Fields = append(e.Fields, ast.ObjectField{Name: fname, Value: val})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return e
}
