// Package expr evaluates user-supplied cost formulas over a closed
// arithmetic grammar: numeric literals, the named variables passed by the
// caller, + - * /, unary minus and parentheses. Nothing else is accepted,
// so a formula can never execute code or reach outside its two inputs.
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// EvalError reports a malformed or unevaluable formula.
type EvalError struct {
	Formula string
	Reason  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("formula %q: %s", e.Formula, e.Reason)
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp     // + - * /
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type parser struct {
	formula string
	vars    map[string]float64
	tokens  []token
	pos     int
}

// Eval parses and evaluates formula with the given variable bindings.
func Eval(formula string, vars map[string]float64) (float64, error) {
	p := &parser{formula: formula, vars: vars}
	if err := p.tokenize(); err != nil {
		return 0, err
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, p.errorf("unexpected %q", p.peek().text)
	}
	return v, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &EvalError{Formula: p.formula, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) tokenize() error {
	s := p.formula
	i := 0
	for i < len(s) {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			p.tokens = append(p.tokens, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			p.tokens = append(p.tokens, token{kind: tokRParen, text: ")"})
			i++
		case strings.ContainsRune("+-*/", c):
			p.tokens = append(p.tokens, token{kind: tokOp, text: string(c)})
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return p.errorf("bad number %q", s[i:j])
			}
			p.tokens = append(p.tokens, token{kind: tokNumber, text: s[i:j], num: n})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			p.tokens = append(p.tokens, token{kind: tokIdent, text: s[i:j]})
			i = j
		default:
			return p.errorf("illegal character %q", string(c))
		}
	}
	p.tokens = append(p.tokens, token{kind: tokEOF, text: "end of formula"})
	return nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseExpr := term (('+'|'-') term)*
func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return v, nil
		}
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.text == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

// parseTerm := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return v, nil
		}
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if t.text == "*" {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, p.errorf("division by zero")
			}
			v /= rhs
		}
	}
}

// parseUnary := '-' unary | primary
func (p *parser) parseUnary() (float64, error) {
	if t := p.peek(); t.kind == tokOp && t.text == "-" {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

// parsePrimary := number | ident | '(' expr ')'
func (p *parser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokIdent:
		v, ok := p.vars[t.text]
		if !ok {
			return 0, p.errorf("unknown variable %q", t.text)
		}
		return v, nil
	case tokLParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return 0, p.errorf("expected ) but found %q", closing.text)
		}
		return v, nil
	default:
		return 0, p.errorf("expected a value but found %q", t.text)
	}
}
