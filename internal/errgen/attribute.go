package errgen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

const directivePrefix = "//errgen:"

// Pair is one `name = value` entry of an annotation.
type Pair struct {
	Name     string
	NamePos  token.Pos
	Value    ast.Expr
	ValuePos token.Pos
}

// Attribute is a parsed errgen annotation such as
// //errgen:response_error(status_code = 404, error_code = 7).
type Attribute struct {
	Name  string
	Pos   token.Pos
	Pairs []Pair
}

// Lookup returns the first pair named name.
func (a *Attribute) Lookup(name string) (Pair, bool) {
	for _, p := range a.Pairs {
		if p.Name == name {
			return p, true
		}
	}
	return Pair{}, false
}

// findDirective returns the first comment of doc that carries the
// //errgen:<name> directive, or nil.
func findDirective(doc *ast.CommentGroup, name string) *ast.Comment {
	if doc == nil {
		return nil
	}
	prefix := directivePrefix + name
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, prefix) {
			continue
		}
		rest := c.Text[len(prefix):]
		if rest == "" || rest[0] == '(' || rest[0] == ' ' || rest[0] == '\t' {
			return c
		}
	}
	return nil
}

// ParseAttribute parses the content of the //errgen:<name> directive in c as
// a comma-separated list of `identifier = expression` pairs. A directive
// without parentheses yields an empty list.
func ParseAttribute(fset *token.FileSet, c *ast.Comment, name string) (*Attribute, error) {
	prefix := directivePrefix + name
	if !strings.HasPrefix(c.Text, prefix) {
		return nil, diagf(fset, c.Slash, MalformedAttribute, "expected %s annotation", name)
	}
	attr := &Attribute{Name: name, Pos: c.Slash}
	src := c.Text[len(prefix):]
	if strings.TrimSpace(src) == "" {
		return attr, nil
	}

	pairs, err := parsePairs(src)
	if err != nil {
		return nil, diagf(fset, c.Slash, MalformedAttribute, "failed to parse %s annotation: %v", name, err)
	}
	base := c.Slash + token.Pos(len(prefix))
	for _, p := range pairs {
		attr.Pairs = append(attr.Pairs, Pair{
			Name:     p.name,
			NamePos:  base + token.Pos(p.nameOff),
			Value:    p.value,
			ValuePos: base + token.Pos(p.valueOff),
		})
	}
	return attr, nil
}

type lexeme struct {
	off int
	tok token.Token
	lit string
}

func (l lexeme) end() int {
	if l.lit != "" {
		return l.off + len(l.lit)
	}
	return l.off + len(l.tok.String())
}

type rawPair struct {
	name     string
	nameOff  int
	value    ast.Expr
	valueOff int
}

func scanLexemes(src string) ([]lexeme, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var first error
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if first == nil {
			first = fmt.Errorf("column %d: %s", pos.Column, msg)
		}
	}, 0)

	var out []lexeme
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// automatic semicolon
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		out = append(out, lexeme{off: file.Offset(pos), tok: tok, lit: lit})
	}
	return out, first
}

var closing = map[token.Token]token.Token{
	token.LPAREN: token.RPAREN,
	token.LBRACK: token.RBRACK,
	token.LBRACE: token.RBRACE,
}

func parsePairs(src string) ([]rawPair, error) {
	lx, err := scanLexemes(src)
	if err != nil {
		return nil, err
	}
	if len(lx) == 0 || lx[0].tok != token.LPAREN {
		return nil, errors.New("expected (")
	}

	// Split the parenthesized list at top-level commas.
	var (
		stack    []token.Token
		segments [][]lexeme
		cur      []lexeme
		end      = -1
	)
	for i, l := range lx {
		switch l.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			if len(stack) > 0 {
				cur = append(cur, l)
			}
			stack = append(stack, closing[l.tok])
			continue
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1] != l.tok {
				return nil, fmt.Errorf("unbalanced %s", l.tok)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				end = i
				break
			}
			cur = append(cur, l)
			continue
		case token.COMMA:
			if len(stack) == 1 {
				segments = append(segments, cur)
				cur = nil
				continue
			}
		}
		if end >= 0 {
			break
		}
		cur = append(cur, l)
	}
	if end < 0 {
		return nil, errors.New("unbalanced (")
	}
	if end != len(lx)-1 {
		return nil, fmt.Errorf("unexpected %s after )", describe(lx[end+1]))
	}
	segments = append(segments, cur)

	if len(segments) == 1 && len(segments[0]) == 0 {
		return nil, nil
	}

	var out []rawPair
	for i, seg := range segments {
		if len(seg) == 0 {
			if i > 0 && i == len(segments)-1 {
				break
			}
			return nil, errors.New("empty field")
		}
		if seg[0].tok != token.IDENT {
			return nil, fmt.Errorf("expected field name, found %s", describe(seg[0]))
		}
		name := seg[0].lit
		if len(seg) < 2 || seg[1].tok != token.ASSIGN {
			return nil, fmt.Errorf("expected = after %s", name)
		}
		if len(seg) < 3 {
			return nil, fmt.Errorf("missing value for %s", name)
		}
		text := src[seg[2].off:seg[len(seg)-1].end()]
		expr, err := parser.ParseExpr(text)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %v", name, err)
		}
		out = append(out, rawPair{
			name:     name,
			nameOff:  seg[0].off,
			value:    expr,
			valueOff: seg[2].off,
		})
	}
	return out, nil
}

func describe(l lexeme) string {
	if l.lit != "" {
		return strconv.Quote(l.lit)
	}
	return strconv.Quote(l.tok.String())
}

// literalToInteger returns the value of expr when it is an integer literal
// representable in T. Any other expression shape fails.
func literalToInteger[T uint16 | uint32](expr ast.Expr) (T, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, false
	}
	v, err := strconv.ParseUint(lit.Value, 0, 64)
	if err != nil || v > uint64(^T(0)) {
		return 0, false
	}
	return T(v), true
}
