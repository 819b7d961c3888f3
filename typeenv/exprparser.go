// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeenv

import (
	"unicode"

	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
)

// parseTypeExpr reads a small arrow-syntax grammar close to the one
// types/printing.go's TypeString produces: "base", "self", "p -> q"
// (right-associative) and "ref<elem> at region" where region is either "⊥" or
// a name. It is not an exact inverse of TypeString, which prints references as
// "elem& at region" and the receiver as a parameter letter. self is the
// class's SelfParam and is only valid while parsing a class method signature;
// callers parsing a bare base-type reference pass self = nil.
//
// Named regions are scoped to a single parseTypeExpr call: "at a" appearing
// twice within one method's type expression refers to the same region
// parameter, but two different method signatures that both write "at a" get
// two unrelated parameters.
func parseTypeExpr(expr string, reg *types.Registry, self *types.Param) (types.Type, error) {
	p := &exprParser{tokens: tokenize(expr), reg: reg, self: self, regionParams: make(map[string]*region.Param, 2)}
	t, err := p.parseExpr()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing type expression %q", expr)
	}
	if p.pos != len(p.tokens) {
		return nil, errors.Errorf("parsing type expression %q: trailing input at %q", expr, p.tokens[p.pos])
	}
	return t, nil
}

type exprParser struct {
	tokens       []string
	pos          int
	reg          *types.Registry
	self         *types.Param
	regionParams map[string]*region.Param
}

func (p *exprParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *exprParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *exprParser) expect(tok string) error {
	got := p.next()
	if got != tok {
		return errors.Errorf("expected %q, found %q", tok, got)
	}
	return nil
}

// parseExpr parses a function arrow, right-associative: atom ('->' expr)?.
func (p *exprParser) parseExpr() (types.Type, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != "->" {
		return left, nil
	}
	p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &types.Function{FnBase: p.reg.FnBase, Param: left, Return: right}, nil
}

func (p *exprParser) parseAtom() (types.Type, error) {
	tok := p.next()
	switch tok {
	case "":
		return nil, errors.New("unexpected end of type expression")
	case "self":
		if p.self == nil {
			return nil, errors.New("'self' used outside a class method signature")
		}
		return p.self, nil
	case "ref":
		return p.parseRef()
	default:
		rec, err := p.reg.LookupBase(tok)
		if err != nil {
			return nil, err
		}
		return rec.Base, nil
	}
}

func (p *exprParser) parseRef() (types.Type, error) {
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	elem, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	if err := p.expect("at"); err != nil {
		return nil, err
	}
	r, err := p.parseRegion()
	if err != nil {
		return nil, err
	}
	return &types.Ref{RefBase: p.reg.RefBase, Elem: elem, Region: r}, nil
}

func (p *exprParser) parseRegion() (region.Region, error) {
	tok := p.next()
	switch tok {
	case "":
		return nil, errors.New("expected a region after 'at'")
	case "⊥":
		return &region.Temporary{}, nil
	default:
		if rp, ok := p.regionParams[tok]; ok {
			return rp, nil
		}
		rp := &region.Param{Index: len(p.regionParams)}
		p.regionParams[tok] = rp
		return rp, nil
	}
}

// tokenize splits a type expression into atoms, "->", "<", ">" and "⊥",
// treating any other run of non-space characters as a single identifier.
func tokenize(s string) []string {
	runes := []rune(s)
	tokens := make([]string, 0, 8)
	i := 0
	for i < len(runes) {
		switch {
		case unicode.IsSpace(runes[i]):
			i++
		case runes[i] == '-' && i+1 < len(runes) && runes[i+1] == '>':
			tokens = append(tokens, "->")
			i += 2
		case runes[i] == '<' || runes[i] == '>':
			tokens = append(tokens, string(runes[i]))
			i++
		case runes[i] == '⊥':
			tokens = append(tokens, "⊥")
			i++
		default:
			j := i
			for j < len(runes) && !isDelimiter(runes, j) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		}
	}
	return tokens
}

func isDelimiter(runes []rune, i int) bool {
	r := runes[i]
	if unicode.IsSpace(r) || r == '<' || r == '>' || r == '⊥' {
		return true
	}
	return r == '-' && i+1 < len(runes) && runes[i+1] == '>'
}
