package parser

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/lexer"
)

// Parser is an LALR-style hand-written grammar over the lexer's token
// stream. It is not error-recovering: the first unexpected token reports a
// fatal diagnostic and Parse returns immediately.
type Parser struct {
	lx             *lexer.Lexer
	current        lexer.Token
	peekTok        lexer.Token
	d              *diag.Diagnostic
	failed         bool
	pendingComment string // set by the most recent nextSignificant call, if it skipped a comment
}

// Parse tokenizes and parses source in one call, reporting any lex or
// parse error through d.
func Parse(source string, d *diag.Diagnostic) (*Program, error) {
	p := &Parser{lx: lexer.New(source), d: d}
	if !p.advance() || !p.advance() {
		return nil, fmt.Errorf("lex error")
	}
	if p.failed {
		return nil, fmt.Errorf("lex error")
	}
	return p.parseProgram()
}

// advance pulls the next significant token from the lexer into
// current/peekTok, reporting a fatal diagnostic on a lex error. Returns
// false once a lex error has been reported.
func (p *Parser) advance() bool {
	if p.failed {
		return false
	}
	tok, err := p.nextSignificant()
	if err != nil {
		lerr := err.(*lexer.LexError)
		p.d.Error(lerr.Span, lerr.Error())
		p.failed = true
		return false
	}
	p.current = p.peekTok
	p.peekTok = tok
	return true
}

// nextSignificant pulls tokens from the lexer, discarding comments. The
// grammar itself carries no comment productions, but a comment immediately
// preceding the newline that ends a statement is recorded in
// pendingComment so the statement being finished can pick it up as its
// trailing comment. pendingComment is reset on every call so a standalone
// comment-only line can never leak forward onto the next real statement.
func (p *Parser) nextSignificant() (lexer.Token, error) {
	p.pendingComment = ""
	for {
		tok, err := p.lx.NextToken()
		if err != nil || tok.Type != lexer.TokenComment {
			return tok, err
		}
		p.pendingComment = strings.TrimSpace(strings.TrimPrefix(tok.Literal, "#"))
	}
}

// takeComment returns and clears the pending trailing comment. Called at
// the point a statement is about to consume its terminating token, since a
// comment can only ever occur immediately before the newline ending the
// statement it trails.
func (p *Parser) takeComment() string {
	c := p.pendingComment
	p.pendingComment = ""
	return c
}

func (p *Parser) errorf(span lexer.Span, format string, args ...interface{}) {
	p.d.Error(span, fmt.Sprintf(format, args...))
	p.failed = true
}

// unexpected reports the standard "unexpected token" failure mode.
func (p *Parser) unexpected(expected string) {
	p.errorf(p.current.Span, "unexpected token %s, expected %s", p.current, expected)
}

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}

	for {
		if p.failed {
			return nil, fmt.Errorf("parse error")
		}
		switch p.current.Type {
		case lexer.TokenEOF:
			return prog, nil
		case lexer.TokenNewline:
			p.advance() // blank line, tolerated anywhere
			continue
		}

		stmt, ok := p.parseStatement()
		if !ok {
			return nil, fmt.Errorf("parse error")
		}
		prog.Statements = append(prog.Statements, stmt)

		if p.current.Type != lexer.TokenNewline {
			p.unexpected("newline")
			return nil, fmt.Errorf("parse error")
		}
		p.advance()
	}
}

// parseStatement dispatches on the leading mnemonic. The returned bool is
// false iff a fatal diagnostic was already reported.
func (p *Parser) parseStatement() (Stmt, bool) {
	start := p.current.Span

	switch p.current.Type {
	case lexer.TokenDollar:
		return p.parseSprite(start)
	case lexer.TokenIdent:
		return p.parseLabel(start)
	case lexer.TokenNop:
		return p.finish(start, p.current.Span, Node{Kind: Nop})
	case lexer.TokenCls:
		return p.finish(start, p.current.Span, Node{Kind: Clear})
	case lexer.TokenRet:
		return p.finish(start, p.current.Span, Node{Kind: Return})
	case lexer.TokenJmp:
		return p.parseJumpOrCall(start, JumpInteger, JumpLabel)
	case lexer.TokenCall:
		return p.parseJumpOrCall(start, CallInteger, CallLabel)
	case lexer.TokenSe:
		return p.parseSeSne(start, SkipEqualsInteger, SkipEqualsRegister)
	case lexer.TokenSne:
		return p.parseSeSne(start, SkipNotEqualsInteger, SkipNotEqualsRegister)
	case lexer.TokenMov:
		return p.parseMov(start)
	case lexer.TokenAdd:
		return p.parseAdd(start)
	case lexer.TokenOr:
		return p.parseRegRegOp(start, Or)
	case lexer.TokenAnd:
		return p.parseRegRegOp(start, And)
	case lexer.TokenXor:
		return p.parseRegRegOp(start, Xor)
	case lexer.TokenSub:
		return p.parseRegRegOp(start, Subtract)
	case lexer.TokenShr:
		return p.parseRegOp(start, ShiftRight)
	case lexer.TokenSubn:
		return p.parseRegRegOp(start, SubtractReverse)
	case lexer.TokenShl:
		return p.parseRegOp(start, ShiftLeft)
	case lexer.TokenJmpr:
		return p.parseJmpr(start)
	case lexer.TokenRnd:
		return p.parseRnd(start)
	case lexer.TokenDrw:
		return p.parseDrw(start)
	case lexer.TokenSkp:
		return p.parseRegOp(start, SkipKeyPressed)
	case lexer.TokenSknp:
		return p.parseRegOp(start, SkipKeyNotPressed)
	case lexer.TokenWait:
		return p.parseRegOp(start, WaitKeyPress)
	case lexer.TokenSpr:
		return p.parseRegOp(start, Sprite)
	case lexer.TokenBcd:
		return p.parseRegOp(start, Bcd)
	case lexer.TokenSave:
		return p.parseRegOp(start, Save)
	case lexer.TokenLoad:
		return p.parseRegOp(start, Load)
	default:
		p.unexpected("a statement")
		return Stmt{}, false
	}
}

func (p *Parser) finish(start, last lexer.Span, node Node) (Stmt, bool) {
	span := lexer.Join(start, last)
	comment := p.takeComment()
	p.advance()
	return Stmt{Span: span, Node: node, Comment: comment}, true
}

func (p *Parser) parseSprite(start lexer.Span) (Stmt, bool) {
	p.advance() // consume '$'
	if p.current.Type != lexer.TokenIdent {
		p.unexpected("an identifier")
		return Stmt{}, false
	}
	id := p.current.Literal
	last := p.current.Span
	comment := p.takeComment()
	p.advance()

	var data []byte
	for p.current.Type == lexer.TokenInt8 {
		data = append(data, p.current.Int8)
		last = p.current.Span
		comment = p.takeComment()
		p.advance()
	}
	return Stmt{Span: lexer.Join(start, last), Node: Node{Kind: DeclareSprite, Ident: id, Data: data}, Comment: comment}, true
}

func (p *Parser) parseLabel(start lexer.Span) (Stmt, bool) {
	id := p.current.Literal
	p.advance()
	if p.current.Type != lexer.TokenColon {
		p.unexpected(`":"`)
		return Stmt{}, false
	}
	return p.finish(start, p.current.Span, Node{Kind: DeclareLabel, Ident: id})
}

// expectComma consumes a TokenComma or reports a fatal diagnostic.
func (p *Parser) expectComma() bool {
	if p.current.Type != lexer.TokenComma {
		p.unexpected(`","`)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) parseJumpOrCall(start lexer.Span, intKind, labelKind NodeKind) (Stmt, bool) {
	p.advance() // consume mnemonic
	switch p.current.Type {
	case lexer.TokenInt8:
		return p.finish(start, p.current.Span, Node{Kind: intKind, NNN: uint16(p.current.Int8)})
	case lexer.TokenInt16:
		return p.finish(start, p.current.Span, Node{Kind: intKind, NNN: p.current.Int16})
	case lexer.TokenIdent:
		return p.finish(start, p.current.Span, Node{Kind: labelKind, Ident: p.current.Literal})
	default:
		p.unexpected("an address, integer, or label")
		return Stmt{}, false
	}
}

func (p *Parser) parseSeSne(start lexer.Span, intKind, regKind NodeKind) (Stmt, bool) {
	p.advance() // consume mnemonic
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	x := p.current.Reg
	p.advance()
	if !p.expectComma() {
		return Stmt{}, false
	}
	switch p.current.Type {
	case lexer.TokenInt8:
		return p.finish(start, p.current.Span, Node{Kind: intKind, X: x, NN: p.current.Int8})
	case lexer.TokenRegister:
		return p.finish(start, p.current.Span, Node{Kind: regKind, X: x, Y: p.current.Reg})
	default:
		p.unexpected("an 8-bit immediate or a register")
		return Stmt{}, false
	}
}

func (p *Parser) parseRegRegOp(start lexer.Span, kind NodeKind) (Stmt, bool) {
	p.advance() // consume mnemonic
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	x := p.current.Reg
	p.advance()
	if !p.expectComma() {
		return Stmt{}, false
	}
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	return p.finish(start, p.current.Span, Node{Kind: kind, X: x, Y: p.current.Reg})
}

func (p *Parser) parseRegOp(start lexer.Span, kind NodeKind) (Stmt, bool) {
	p.advance() // consume mnemonic
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	return p.finish(start, p.current.Span, Node{Kind: kind, X: p.current.Reg})
}

func (p *Parser) parseJmpr(start lexer.Span) (Stmt, bool) {
	p.advance() // consume mnemonic
	switch p.current.Type {
	case lexer.TokenInt8:
		return p.finish(start, p.current.Span, Node{Kind: JumpRegister, NNN: uint16(p.current.Int8)})
	case lexer.TokenInt16:
		return p.finish(start, p.current.Span, Node{Kind: JumpRegister, NNN: p.current.Int16})
	default:
		p.unexpected("an address or integer")
		return Stmt{}, false
	}
}

func (p *Parser) parseRnd(start lexer.Span) (Stmt, bool) {
	p.advance() // consume mnemonic
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	x := p.current.Reg
	p.advance()
	if !p.expectComma() {
		return Stmt{}, false
	}
	if p.current.Type != lexer.TokenInt8 {
		p.unexpected("an 8-bit immediate")
		return Stmt{}, false
	}
	return p.finish(start, p.current.Span, Node{Kind: Random, X: x, NN: p.current.Int8})
}

func (p *Parser) parseDrw(start lexer.Span) (Stmt, bool) {
	p.advance() // consume mnemonic
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	x := p.current.Reg
	p.advance()
	if !p.expectComma() {
		return Stmt{}, false
	}
	if p.current.Type != lexer.TokenRegister {
		p.unexpected("a register")
		return Stmt{}, false
	}
	y := p.current.Reg
	p.advance()
	if !p.expectComma() {
		return Stmt{}, false
	}
	if p.current.Type != lexer.TokenInt8 {
		p.unexpected("a 4-bit height")
		return Stmt{}, false
	}
	return p.finish(start, p.current.Span, Node{Kind: Draw, X: x, Y: y, N: p.current.Int8})
}

// parseMov dispatches on operand token kinds to the seven mov forms: a
// switch on the first operand (register, i, dt, st), then on the second.
func (p *Parser) parseMov(start lexer.Span) (Stmt, bool) {
	p.advance() // consume 'mov'

	switch p.current.Type {
	case lexer.TokenRegister:
		x := p.current.Reg
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		switch p.current.Type {
		case lexer.TokenInt8:
			return p.finish(start, p.current.Span, Node{Kind: MoveRegisterInteger, X: x, NN: p.current.Int8})
		case lexer.TokenRegister:
			return p.finish(start, p.current.Span, Node{Kind: MoveRegisterRegister, X: x, Y: p.current.Reg})
		case lexer.TokenDelayTimer:
			return p.finish(start, p.current.Span, Node{Kind: MoveRegisterDelay, X: x})
		default:
			p.unexpected("an 8-bit immediate, a register, or dt")
			return Stmt{}, false
		}

	case lexer.TokenIRegister:
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		switch p.current.Type {
		case lexer.TokenInt8:
			return p.finish(start, p.current.Span, Node{Kind: MoveIRegisterInteger, NNN: uint16(p.current.Int8)})
		case lexer.TokenInt16:
			return p.finish(start, p.current.Span, Node{Kind: MoveIRegisterInteger, NNN: p.current.Int16})
		case lexer.TokenIdent:
			return p.finish(start, p.current.Span, Node{Kind: MoveIRegisterSprite, Ident: p.current.Literal})
		default:
			p.unexpected("an address, integer, or sprite label")
			return Stmt{}, false
		}

	case lexer.TokenDelayTimer:
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		if p.current.Type != lexer.TokenRegister {
			p.unexpected("a register")
			return Stmt{}, false
		}
		return p.finish(start, p.current.Span, Node{Kind: MoveDelayRegister, X: p.current.Reg})

	case lexer.TokenSoundTimer:
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		if p.current.Type != lexer.TokenRegister {
			p.unexpected("a register")
			return Stmt{}, false
		}
		return p.finish(start, p.current.Span, Node{Kind: MoveSoundRegister, X: p.current.Reg})

	default:
		p.unexpected("a register, i, dt, or st")
		return Stmt{}, false
	}
}

func (p *Parser) parseAdd(start lexer.Span) (Stmt, bool) {
	p.advance() // consume 'add'
	switch p.current.Type {
	case lexer.TokenRegister:
		x := p.current.Reg
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		switch p.current.Type {
		case lexer.TokenInt8:
			return p.finish(start, p.current.Span, Node{Kind: AddRegisterInteger, X: x, NN: p.current.Int8})
		case lexer.TokenRegister:
			return p.finish(start, p.current.Span, Node{Kind: AddRegisterRegister, X: x, Y: p.current.Reg})
		default:
			p.unexpected("an 8-bit immediate or a register")
			return Stmt{}, false
		}
	case lexer.TokenIRegister:
		p.advance()
		if !p.expectComma() {
			return Stmt{}, false
		}
		if p.current.Type != lexer.TokenRegister {
			p.unexpected("a register")
			return Stmt{}, false
		}
		return p.finish(start, p.current.Span, Node{Kind: AddIRegisterRegister, X: p.current.Reg})
	default:
		p.unexpected("a register or i")
		return Stmt{}, false
	}
}
