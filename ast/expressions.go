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

// Package ast defines the expression tree that drives Algorithm-J and
// Algorithm-M. Nodes are pure data; the inference walks live in the poly
// package as a pair of free functions performing a type-switch over Expr,
// rather than as methods on these types.
package ast

import (
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
)

// Pos is an optional source position, carried for diagnostics only; it plays
// no role in inference.
type Pos struct {
	Line int
	Col  int
}

// Expr is the interface satisfied by every expression node. Inference
// results are attached in place: Type returns nil until the node has been
// visited.
type Expr interface {
	ExprName() string
	Position() Pos
	Type() *types.Info
	SetType(*types.Info)
}

type base struct {
	pos      Pos
	inferred *types.Info
}

func (b *base) Position() Pos          { return b.pos }
func (b *base) Type() *types.Info      { return b.inferred }
func (b *base) SetType(t *types.Info)  { b.inferred = t }

// Constant is a literal value of some pre-declared base type.
type Constant struct {
	base
	Base *types.Base
}

func (*Constant) ExprName() string { return "Constant" }

// Identifier is a variable reference, resolved by walking the environment
// frame chain outward from the point of use.
type Identifier struct {
	base
	Name string
}

func (*Identifier) ExprName() string { return "Identifier" }

// Lambda is a single-argument abstraction. Annotation is nil when the
// parameter's type should be inferred as a fresh unification variable.
type Lambda struct {
	base
	Param      string
	Annotation types.Type
	Body       Expr
}

func (*Lambda) ExprName() string { return "Lambda" }

// Apply is a function call of a single argument.
type Apply struct {
	base
	Fn  Expr
	Arg Expr
}

func (*Apply) ExprName() string { return "Apply" }

// Let is a non-recursive binding. TypeParams/RegionParams pin the scheme's
// parameters to caller-supplied nodes, in declaration order, when the
// binding carries a user-written generic signature (these are the same Param
// nodes the caller used inside Value's type annotations); both are nil for
// an ordinary unannotated let, and generalization picks fresh Params for
// every free variable instead.
type Let struct {
	base
	Name         string
	TypeParams   []*types.Param
	RegionParams []*region.Param
	Value        Expr
	Body         Expr
}

func (*Let) ExprName() string { return "Let" }

// Letrec is a self-referential binding: Name is visible inside Value.
type Letrec struct {
	base
	Name         string
	TypeParams   []*types.Param
	RegionParams []*region.Param
	Value        Expr
	Body         Expr
}

func (*Letrec) ExprName() string { return "Letrec" }

// AccessToClassMethod is `receiver.method`, resolved through the receiver's
// static class list rather than through a record's field set.
type AccessToClassMethod struct {
	base
	Receiver Expr
	Method   string
}

func (*AccessToClassMethod) ExprName() string { return "AccessToClassMethod" }

// BinaryExpression is a two-operand operator dispatched through a type
// class: Class and Method name the class and method that implement Operator
// (the registry wires up no operator by itself; the fixtures declare sub, add
// and lt, and the node is not specific to any of them).
type BinaryExpression struct {
	base
	Operator string
	Class    *types.Class
	Method   string
	Left     Expr
	Right    Expr
}

func (*BinaryExpression) ExprName() string { return "BinaryExpression" }
