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

package main

import (
	"github.com/168iroha/typeinfer/ast"
	"github.com/168iroha/typeinfer/construct"
	poly "github.com/168iroha/typeinfer"
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
)

// Scenario is one named, self-contained demo: Fixture is the name of the
// bundled YAML registry it needs, and Build constructs the expression tree
// to run through Algorithm J.
type Scenario struct {
	Name        string
	Fixture     string
	Description string
	Build       func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error)
}

var scenarios = []Scenario{
	{
		Name:        "s1",
		Fixture:     "arithmetic.yaml",
		Description: `λn. 1  -->  ?a -> num`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			num, err := reg.LookupBase("num")
			if err != nil {
				return nil, err
			}
			return construct.Lambda("n", construct.Const(num.Base)), nil
		},
	},
	{
		Name:        "s2",
		Fixture:     "arithmetic.yaml",
		Description: `λn. n - 1  under  sub: num -> num -> num  -->  num -> num`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			num, err := reg.LookupBase("num")
			if err != nil {
				return nil, err
			}
			sub, err := reg.LookupClass("Sub")
			if err != nil {
				return nil, err
			}
			body := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
			return construct.Lambda("n", body), nil
		},
	},
	{
		Name:        "s3",
		Fixture:     "arithmetic.yaml",
		Description: `let id = λn. n in id id id id id 1  -->  num, id generalized to forall a. a -> a`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			num, err := reg.LookupBase("num")
			if err != nil {
				return nil, err
			}
			id := construct.Lambda("n", construct.Var("n"))
			chain := construct.ApplyAll(construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Const(num.Base))
			return construct.Let("id", id, chain), nil
		},
	},
	{
		Name:        "s4",
		Fixture:     "arithmetic.yaml",
		Description: `letrec fib = λn. (n < 2).ifThenElse n (fib(n-1) + fib(n-2)) in fib  -->  num -> num`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			num, err := reg.LookupBase("num")
			if err != nil {
				return nil, err
			}
			sub, err := reg.LookupClass("Sub")
			if err != nil {
				return nil, err
			}
			add, err := reg.LookupClass("Add")
			if err != nil {
				return nil, err
			}
			lt, err := reg.LookupClass("Lt")
			if err != nil {
				return nil, err
			}

			n1 := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
			n2 := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
			recurse := construct.BinaryExpression("+", add, "add", construct.Apply(construct.Var("fib"), n1), construct.Apply(construct.Var("fib"), n2))

			cond := construct.BinaryExpression("<", lt, "lt", construct.Var("n"), construct.Const(num.Base))
			// There is no dedicated conditional node in the expression
			// grammar: a two-way branch is built the same way a
			// receiver.method(args) call is, through the class method the
			// condition's own type (bool) implements.
			branch := construct.ApplyAll(construct.AccessToClassMethod(cond, "ifThenElse"), construct.Var("n"), recurse)

			body := construct.Lambda("n", branch)
			return construct.Letrec("fib", body, construct.Var("fib")), nil
		},
	},
	{
		Name:        "s5",
		Fixture:     "classes_and_refs.yaml",
		Description: `λn. n + n  with only Add providing +  -->  forall a:Add. a -> a`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			add, err := reg.LookupClass("Add")
			if err != nil {
				return nil, err
			}
			body := construct.Add(add, "add", construct.Var("n"), construct.Var("n"))
			return construct.Lambda("n", body), nil
		},
	},
	{
		Name:        "s6",
		Fixture:     "classes_and_refs.yaml",
		Description: `let f = λ(n : :TypeClass). n.method n in f true  -->  boolean, with the annotation's region printed as the bottom of the lattice`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			bl, err := reg.LookupBase("bool")
			if err != nil {
				return nil, err
			}
			tc, err := reg.LookupClass("TypeClass")
			if err != nil {
				return nil, err
			}
			annotation := construct.TExistential(types.ConstraintSet{tc}, &region.Temporary{})
			body := construct.Apply(construct.AccessToClassMethod(construct.Var("n"), "method"), construct.Var("n"))
			f := construct.LambdaAnnotated("n", annotation, body)
			return construct.Let("f", f, construct.Apply(construct.Var("f"), construct.Const(bl.Base))), nil
		},
	},
	{
		Name:        "s7",
		Fixture:     "classes_and_refs.yaml",
		Description: `let g = λ(n : ref<?a> at a). 1 in g true  -->  type-checks; the argument is elaborated through an implicit reference cast`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			num, err := reg.LookupBase("num")
			if err != nil {
				return nil, err
			}
			bl, err := reg.LookupBase("bool")
			if err != nil {
				return nil, err
			}
			annotation := construct.TRef(reg.RefBase, ctx.NewTypeVar(1), ctx.NewRegionVar(1))
			g := construct.LambdaAnnotated("n", annotation, construct.Const(num.Base))
			return construct.Let("g", g, construct.Apply(construct.Var("g"), construct.Const(bl.Base))), nil
		},
	},
	{
		Name:        "s8",
		Fixture:     "classes_and_refs.yaml",
		Description: `let h = λ(n : ref<?a> at a). n in let i = h true in i  -->  rejected: "i" would bind a reference to a temporary`,
		Build: func(reg *types.Registry, ctx *poly.InferenceContext) (ast.Expr, error) {
			bl, err := reg.LookupBase("bool")
			if err != nil {
				return nil, err
			}
			annotation := construct.TRef(reg.RefBase, ctx.NewTypeVar(1), ctx.NewRegionVar(1))
			h := construct.LambdaAnnotated("n", annotation, construct.Var("n"))
			inner := construct.Let("i", construct.Apply(construct.Var("h"), construct.Const(bl.Base)), construct.Var("i"))
			return construct.Let("h", h, inner), nil
		},
	},
}

func findScenario(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, errors.Errorf("unknown scenario %q", name)
}
