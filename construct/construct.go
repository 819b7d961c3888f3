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

// Package construct offers short-named helpers for assembling ast.Expr trees
// and types.Type nodes by hand, the way the example drivers in cmd/typeinfer
// do. It is a convenience layer outside the inference core itself.
package construct

import (
	"github.com/168iroha/typeinfer/ast"
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
)

// Const builds a literal of the given base type.
func Const(b *types.Base) *ast.Constant {
	return &ast.Constant{Base: b}
}

// Var builds an identifier reference.
func Var(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// Lambda builds a single-argument abstraction with an inferred parameter type.
func Lambda(param string, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Param: param, Body: body}
}

// LambdaAnnotated builds a single-argument abstraction with an explicit
// parameter type annotation.
func LambdaAnnotated(param string, annotation types.Type, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Param: param, Annotation: annotation, Body: body}
}

// Apply builds a single-argument call.
func Apply(fn, arg ast.Expr) *ast.Apply {
	return &ast.Apply{Fn: fn, Arg: arg}
}

// ApplyAll curries a sequence of arguments onto fn, left to right.
func ApplyAll(fn ast.Expr, args ...ast.Expr) ast.Expr {
	result := fn
	for _, arg := range args {
		result = Apply(result, arg)
	}
	return result
}

// Let builds a non-recursive binding with no user-declared scheme parameters.
func Let(name string, value, body ast.Expr) *ast.Let {
	return &ast.Let{Name: name, Value: value, Body: body}
}

// LetGeneric builds a non-recursive binding with a user-declared generic
// signature: typeParams/regionParams are the same Param/region.Param nodes
// used inside value's type annotations, in declaration order.
func LetGeneric(name string, typeParams []*types.Param, regionParams []*region.Param, value, body ast.Expr) *ast.Let {
	return &ast.Let{Name: name, TypeParams: typeParams, RegionParams: regionParams, Value: value, Body: body}
}

// Letrec builds a self-referential binding.
func Letrec(name string, value, body ast.Expr) *ast.Letrec {
	return &ast.Letrec{Name: name, Value: value, Body: body}
}

// LetrecGeneric builds a self-referential binding with a user-declared
// generic signature.
func LetrecGeneric(name string, typeParams []*types.Param, regionParams []*region.Param, value, body ast.Expr) *ast.Letrec {
	return &ast.Letrec{Name: name, TypeParams: typeParams, RegionParams: regionParams, Value: value, Body: body}
}

// AccessToClassMethod builds `receiver.method`.
func AccessToClassMethod(receiver ast.Expr, method string) *ast.AccessToClassMethod {
	return &ast.AccessToClassMethod{Receiver: receiver, Method: method}
}

// BinaryExpression builds a two-operand operator node dispatched through
// class/method.
func BinaryExpression(operator string, class *types.Class, method string, left, right ast.Expr) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: operator, Class: class, Method: method, Left: left, Right: right}
}

// Add builds `left + right`, dispatched through the given class's method.
func Add(class *types.Class, method string, left, right ast.Expr) *ast.BinaryExpression {
	return BinaryExpression("+", class, method, left, right)
}

// TFunction builds a function type.
func TFunction(fnBase *types.Base, param, ret types.Type) *types.Function {
	return &types.Function{FnBase: fnBase, Param: param, Return: ret}
}

// TRef builds a reference type at the given region.
func TRef(refBase *types.Base, elem types.Type, r region.Region) *types.Ref {
	return &types.Ref{RefBase: refBase, Elem: elem, Region: r}
}

// TExistential builds a type-as-class existential over classes at the given
// region.
func TExistential(classes types.ConstraintSet, r region.Region) *types.Existential {
	return &types.Existential{Classes: classes, Region: r}
}
