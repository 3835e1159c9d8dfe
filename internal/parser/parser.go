package parser

import (
	"io"

	"github.com/gitrdm/sldprolog/internal/compile"
	"github.com/gitrdm/sldprolog/internal/interner"
	"github.com/gitrdm/sldprolog/internal/term"
)

type opInfo struct {
	prec       int
	rightAssoc bool
}

// infixOps is the fixed operator table spec.md §1/SPEC_FULL.md §4.5
// names: ",", ";", "->" and the comparison/unification/arithmetic set,
// with ISO-standard precedences. ":-" is deliberately absent: it is
// handled structurally by Next rather than as a general expression
// operator.
var infixOps = map[string]opInfo{
	";":   {1100, true},
	"->":  {1050, true},
	",":   {1000, true},
	"=":   {700, false},
	"\\=": {700, false},
	"==":  {700, false},
	"\\==": {700, false},
	"is":  {700, false},
	"<":   {700, false},
	"=<":  {700, false},
	">":   {700, false},
	">=":  {700, false},
	"=:=": {700, false},
	"=\\=": {700, false},
	"+":   {500, false},
	"-":   {500, false},
	"*":   {400, false},
	"/":   {400, false},
	"mod": {400, false},
}

var prefixOps = map[string]int{
	"-": 200,
}

// Parser reads Sentence values (one clause or query at a time) from a
// fixed, non-extensible operator grammar. It shares the Interner passed
// to New with the rest of an engine instance, so functor and variable
// ids line up with compile.Compiler's expectations.
type Parser struct {
	in      *interner.Interner
	lex     *lexer
	tok     token
	vars    map[string]*term.Var
	commaID int32
}

// New creates a Parser reading from r.
func New(in *interner.Interner, r io.Reader) (*Parser, error) {
	lx, err := newLexer(r)
	if err != nil {
		return nil, err
	}
	p := &Parser{in: in, lex: lx, commaID: in.Functor(",", 2)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// PeekAndConsumeMore reports whether the underlying reader has more
// sentences (spec.md §6's peek_and_consume_more collaborator method).
func (p *Parser) PeekAndConsumeMore() bool {
	return p.tok.kind != tokEOF
}

// Next reads the next clause or query. It returns (nil, nil) once input
// is exhausted.
func (p *Parser) Next() (*Sentence, error) {
	if p.tok.kind == tokEOF {
		return nil, nil
	}
	p.vars = make(map[string]*term.Var)
	line := p.tok.line

	if p.tok.kind == tokAtom && p.tok.text == "?-" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		bodyExpr, err := p.parseExpr(1199)
		if err != nil {
			return nil, err
		}
		if err := p.expectDot(); err != nil {
			return nil, err
		}
		body, err := p.flatten(bodyExpr)
		if err != nil {
			return nil, err
		}
		return &Sentence{Clause: &compile.SourceClause{Body: body}, Line: line}, nil
	}

	first, err := p.parseExpr(1199)
	if err != nil {
		return nil, err
	}

	var head *term.Functor
	var body []*term.Functor

	if p.tok.kind == tokAtom && p.tok.text == ":-" {
		head, err = asFunctor(first)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		bodyExpr, err := p.parseExpr(1199)
		if err != nil {
			return nil, err
		}
		body, err = p.flatten(bodyExpr)
		if err != nil {
			return nil, err
		}
	} else {
		head, err = asFunctor(first)
		if err != nil {
			return nil, err
		}
	}

	if err := p.expectDot(); err != nil {
		return nil, err
	}

	return &Sentence{Clause: &compile.SourceClause{Head: head, Body: body}, Line: line}, nil
}

func (p *Parser) expectDot() error {
	if p.tok.kind != tokDot {
		return &ParseError{Line: p.tok.line, Msg: "expected '.' to end clause"}
	}
	return p.advance()
}

// flatten splits t into an ordered list of body goals by descending
// through top-level ','/2 nodes only; a ';'/2 (or any other) subterm
// stays intact as a single goal, to be expanded by the built-in
// registry's Conj/Disj dispatch at compile/run time.
func (p *Parser) flatten(t term.Term) ([]*term.Functor, error) {
	if f, ok := t.(*term.Functor); ok && f.NameID == p.commaID && len(f.Args) == 2 {
		left, err := p.flatten(f.Args[0])
		if err != nil {
			return nil, err
		}
		right, err := p.flatten(f.Args[1])
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}
	f, err := asFunctor(t)
	if err != nil {
		return nil, err
	}
	return []*term.Functor{f}, nil
}

func asFunctor(t term.Term) (*term.Functor, error) {
	f, ok := t.(*term.Functor)
	if !ok {
		return nil, &ParseError{Msg: "goal must be a callable term, not a variable or number"}
	}
	return f, nil
}

// parseExpr implements precedence climbing over infixOps, bounded by
// maxPrec.
func (p *Parser) parseExpr(maxPrec int) (term.Term, error) {
	left, err := p.parsePrimary(maxPrec)
	if err != nil {
		return nil, err
	}

	for {
		name, op, ok := p.peekInfixOp()
		if !ok || op.prec > maxPrec {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rightMax := op.prec
		if !op.rightAssoc {
			rightMax = op.prec - 1
		}
		right, err := p.parseExpr(rightMax)
		if err != nil {
			return nil, err
		}
		left = term.NewFunctor(p.in.Functor(name, 2), left, right)
	}
	return left, nil
}

// peekInfixOp reports the infix operator the current token represents, if
// any. A comma is its own lexer token kind (tokComma, not tokAtom)
// because argument lists and list syntax also use "," as a plain
// separator, but at this level it is still the ","/1000 operator -
// parseCompoundArgs/parseList stay unaffected because they cap their own
// item parsing at precedence 999, below it.
func (p *Parser) peekInfixOp() (string, opInfo, bool) {
	switch p.tok.kind {
	case tokAtom:
		op, ok := infixOps[p.tok.text]
		return p.tok.text, op, ok
	case tokComma:
		return ",", infixOps[","], true
	default:
		return "", opInfo{}, false
	}
}

func canStartTerm(tok token) bool {
	switch tok.kind {
	case tokInt, tokFloat, tokVar, tokAtom, tokLParen, tokLBracket:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimary(maxPrec int) (term.Term, error) {
	switch p.tok.kind {
	case tokInt:
		v := p.tok.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.NewInt(v), nil

	case tokFloat:
		v := p.tok.fval
		if err := p.advance(); err != nil {
			return nil, err
		}
		return term.NewFloat(v), nil

	case tokVar:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "_" {
			return term.NewVar(p.in.Var("_"), true), nil
		}
		if v, ok := p.vars[name]; ok {
			return v, nil
		}
		v := term.NewVar(p.in.Var(name), false)
		p.vars[name] = v
		return v, nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(1200)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, &ParseError{Line: p.tok.line, Msg: "expected ')'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	case tokLBracket:
		return p.parseList()

	case tokAtom:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokLParen {
			return p.parseCompoundArgs(name)
		}

		if prec, ok := prefixOps[name]; ok && prec <= maxPrec && canStartTerm(p.tok) {
			operand, err := p.parseExpr(prec)
			if err != nil {
				return nil, err
			}
			if name == "-" {
				switch o := operand.(type) {
				case *term.Int:
					return term.NewInt(-o.Value), nil
				case *term.Float:
					return term.NewFloat(-o.Value), nil
				}
			}
			return term.NewFunctor(p.in.Functor(name, 1), operand), nil
		}

		return term.NewFunctor(p.in.Functor(name, 0)), nil

	default:
		return nil, &ParseError{Line: p.tok.line, Msg: "unexpected token while parsing a term"}
	}
}

func (p *Parser) parseCompoundArgs(name string) (term.Term, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []term.Term
	if p.tok.kind != tokRParen {
		for {
			a, err := p.parseExpr(999)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if p.tok.kind != tokRParen {
		return nil, &ParseError{Line: p.tok.line, Msg: "expected ')' to close argument list"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return term.NewFunctor(p.in.Functor(name, len(args)), args...), nil
}

func (p *Parser) emptyList() *term.Functor {
	return term.NewFunctor(p.in.Functor("[]", 0))
}

// parseList parses list sugar ("[]", "[H|T]", "[a,b,c]") and desugars it
// to the conventional "."/2 / "[]" functor representation (SPEC_FULL.md
// §9's supplemented list sugar).
func (p *Parser) parseList() (term.Term, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	if p.tok.kind == tokRBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.emptyList(), nil
	}

	var items []term.Term
	for {
		item, err := p.parseExpr(999)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	tail := term.Term(p.emptyList())
	if p.tok.kind == tokBar {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseExpr(999)
		if err != nil {
			return nil, err
		}
		tail = t
	}

	if p.tok.kind != tokRBracket {
		return nil, &ParseError{Line: p.tok.line, Msg: "expected ']'"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = term.NewFunctor(p.in.Functor(".", 2), items[i], result)
	}
	return result, nil
}
