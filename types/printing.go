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

package types

import (
	"strconv"
	"strings"

	"github.com/168iroha/typeinfer/region"
)

// TypeString renders t for diagnostics: Variables as `?a`, `?b`, …, falling
// back to `?_` past the 26th distinct variable seen by this call; Params as
// `'a`, `'b`, … with the same fallback; both with a trailing `: C` or
// `: (C1 + C2)` constraint suffix when non-empty. Existential (TypeClass)
// nodes render as `:C`/`(:C1 + :C2)` with a trailing region suffix; Ref
// renders as `T& at r`; Function renders with its parameter parenthesized
// only when the parameter itself is a Function.
//
// Letter assignment is local to one TypeString call and keyed by node
// identity, not by the node's internal id, so printing the same variable
// twice within one call always yields the same letter, and unrelated calls
// never interfere with each other's numbering.
func TypeString(t Type) string {
	p := &printer{varNames: make(map[*Var]string, 8), paramNames: make(map[*Param]string, 8), regionNames: make(map[interface{}]string, 8)}
	p.writeType(t)
	return p.sb.String()
}

// RegionString renders r using the same letter assignment rules as
// TypeString's region suffixes, independent of any type being printed
// alongside it.
func RegionString(r region.Region) string {
	p := &printer{regionNames: make(map[interface{}]string, 8)}
	return p.regionString(r)
}

type printer struct {
	sb          strings.Builder
	varNames    map[*Var]string
	paramNames  map[*Param]string
	regionNames map[interface{}]string
}

func letterName(n int) string {
	if n < 26 {
		return string(rune('a' + n))
	}
	return "_"
}

func (p *printer) varName(v *Var) string {
	if s, ok := p.varNames[v]; ok {
		return s
	}
	s := letterName(len(p.varNames))
	p.varNames[v] = s
	return s
}

func (p *printer) paramName(param *Param) string {
	if s, ok := p.paramNames[param]; ok {
		return s
	}
	s := letterName(len(p.paramNames))
	p.paramNames[param] = s
	return s
}

func (p *printer) regionName(key interface{}) string {
	if s, ok := p.regionNames[key]; ok {
		return s
	}
	s := letterName(len(p.regionNames))
	p.regionNames[key] = s
	return s
}

func (p *printer) regionString(r region.Region) string {
	switch r := region.Repr(r).(type) {
	case *region.Temporary:
		return "⊥"
	case *region.Base:
		return "@" + strconv.Itoa(r.Env.EnvDepth())
	case *region.Var:
		return p.regionName(r)
	case *region.Param:
		return p.regionName(r)
	default:
		return "?"
	}
}

func (p *printer) writeConstraints(cs ConstraintSet) {
	switch len(cs) {
	case 0:
		return
	case 1:
		p.sb.WriteString(": ")
		p.sb.WriteString(cs[0].Name)
	default:
		p.sb.WriteString(": (")
		for i, c := range cs {
			if i > 0 {
				p.sb.WriteString(" + ")
			}
			p.sb.WriteString(c.Name)
		}
		p.sb.WriteByte(')')
	}
}

func (p *printer) writeClassSet(cs ConstraintSet) {
	if len(cs) == 1 {
		p.sb.WriteByte(':')
		p.sb.WriteString(cs[0].Name)
		return
	}
	p.sb.WriteString("(:")
	for i, c := range cs {
		if i > 0 {
			p.sb.WriteString(" + :")
		}
		p.sb.WriteString(c.Name)
	}
	p.sb.WriteByte(')')
}

// writeParam renders t as a Function's parameter: parenthesized exactly
// when t itself is a Function, since every other node kind already prints
// as a single token or carries its own delimiters.
func (p *printer) writeParam(t Type) {
	if _, ok := Repr(t).(*Function); ok {
		p.sb.WriteByte('(')
		p.writeType(t)
		p.sb.WriteByte(')')
		return
	}
	p.writeType(t)
}

func (p *printer) writeType(t Type) {
	switch t := Repr(t).(type) {
	case *Base:
		p.sb.WriteString(t.Name)
	case *Function:
		p.writeParam(t.Param)
		p.sb.WriteString(" -> ")
		p.writeType(t.Return)
	case *Var:
		p.sb.WriteByte('?')
		p.sb.WriteString(p.varName(t))
		p.writeConstraints(t.Constraints())
	case *Param:
		p.sb.WriteByte('\'')
		p.sb.WriteString(p.paramName(t))
		p.writeConstraints(t.Constraints)
	case *Existential:
		p.writeClassSet(t.Classes)
		p.sb.WriteString(" at ")
		p.sb.WriteString(p.regionString(t.Region))
	case *Ref:
		p.writeType(t.Elem)
		p.sb.WriteString("& at ")
		p.sb.WriteString(p.regionString(t.Region))
	default:
		p.sb.WriteString(t.TypeName())
	}
}
