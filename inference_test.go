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

package poly

import (
	"testing"

	"github.com/168iroha/typeinfer/construct"
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arithmeticRegistry mirrors fixtures/arithmetic.yaml: num/bool bases with
// Sub, Add, Lt and Cond, num implementing the first three and bool
// implementing Cond.
func arithmeticRegistry(t *testing.T) (*types.Registry, *types.BaseRecord, *types.BaseRecord) {
	t.Helper()
	reg := types.NewRegistry()
	num, err := reg.DeclareBase("num")
	require.NoError(t, err)
	bl, err := reg.DeclareBase("bool")
	require.NoError(t, err)

	_, err = reg.DeclareClass("Sub", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"sub": &types.Function{Param: self, Return: &types.Function{Param: self, Return: self}}}
	}, []string{"sub"})
	require.NoError(t, err)
	_, err = reg.DeclareClass("Add", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"add": &types.Function{Param: self, Return: &types.Function{Param: self, Return: self}}}
	}, []string{"add"})
	require.NoError(t, err)
	_, err = reg.DeclareClass("Lt", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"lt": &types.Function{Param: self, Return: &types.Function{Param: num, Return: bl}}}
	}, []string{"lt"})
	require.NoError(t, err)
	_, err = reg.DeclareClass("Cond", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"ifThenElse": &types.Function{Param: self, Return: &types.Function{Param: num, Return: &types.Function{Param: num, Return: num}}}}
	}, []string{"ifThenElse"})
	require.NoError(t, err)

	sub, _ := reg.LookupClass("Sub")
	add, _ := reg.LookupClass("Add")
	lt, _ := reg.LookupClass("Lt")
	cond, _ := reg.LookupClass("Cond")
	require.NoError(t, reg.ImplementClass("num", sub))
	require.NoError(t, reg.ImplementClass("num", add))
	require.NoError(t, reg.ImplementClass("num", lt))
	require.NoError(t, reg.ImplementClass("bool", cond))

	numRec, err := reg.LookupBase("num")
	require.NoError(t, err)
	blRec, err := reg.LookupBase("bool")
	require.NoError(t, err)
	return reg, numRec, blRec
}

// classesAndRefsRegistry mirrors fixtures/classes_and_refs.yaml: num/bool
// bases, Add implemented by num, TypeClass implemented by bool.
func classesAndRefsRegistry(t *testing.T) (*types.Registry, *types.BaseRecord, *types.BaseRecord) {
	t.Helper()
	reg := types.NewRegistry()
	num, err := reg.DeclareBase("num")
	require.NoError(t, err)
	_, err = reg.DeclareBase("bool")
	require.NoError(t, err)

	_, err = reg.DeclareClass("Add", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"add": &types.Function{Param: self, Return: &types.Function{Param: self, Return: self}}}
	}, []string{"add"})
	require.NoError(t, err)
	_, err = reg.DeclareClass("TypeClass", nil, func(self *types.Param) types.MethodSet {
		return types.MethodSet{"method": &types.Function{Param: self, Return: &types.Function{Param: self, Return: self}}}
	}, []string{"method"})
	require.NoError(t, err)

	add, _ := reg.LookupClass("Add")
	tc, _ := reg.LookupClass("TypeClass")
	require.NoError(t, reg.ImplementClass("num", add))
	require.NoError(t, reg.ImplementClass("bool", tc))

	numRec, err := reg.LookupBase("num")
	require.NoError(t, err)
	blRec, err := reg.LookupBase("bool")
	require.NoError(t, err)
	_ = num
	return reg, numRec, blRec
}

func TestInferS1ConstantLambdaYieldsFreshVarToNum(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)

	expr := construct.Lambda("n", construct.Const(num.Base))
	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "?a -> num", types.TypeString(info.Type))
}

func TestInferS2SubUnderClassYieldsNumToNum(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)
	sub, err := reg.LookupClass("Sub")
	require.NoError(t, err)

	body := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
	expr := construct.Lambda("n", body)
	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "num -> num", types.TypeString(info.Type))
}

func TestInferS3IdentityGeneralizesAcrossRepeatedApplication(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)

	id := construct.Lambda("n", construct.Var("n"))
	chain := construct.ApplyAll(construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Var("id"), construct.Const(num.Base))
	expr := construct.Let("id", id, chain)

	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "num", types.TypeString(info.Type))
}

func TestInferS4FibRecursesThroughClassDispatchedConditional(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)
	sub, err := reg.LookupClass("Sub")
	require.NoError(t, err)
	add, err := reg.LookupClass("Add")
	require.NoError(t, err)
	lt, err := reg.LookupClass("Lt")
	require.NoError(t, err)

	n1 := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
	n2 := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
	recurse := construct.BinaryExpression("+", add, "add", construct.Apply(construct.Var("fib"), n1), construct.Apply(construct.Var("fib"), n2))
	cond := construct.BinaryExpression("<", lt, "lt", construct.Var("n"), construct.Const(num.Base))
	branch := construct.ApplyAll(construct.AccessToClassMethod(cond, "ifThenElse"), construct.Var("n"), recurse)
	body := construct.Lambda("n", branch)
	expr := construct.Letrec("fib", body, construct.Var("fib"))

	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "num -> num", types.TypeString(info.Type))
}

func TestInferS5AddOnlyLambdaGeneralizesWithConstraint(t *testing.T) {
	reg, _, _ := classesAndRefsRegistry(t)
	ctx := NewInferenceContext(reg)
	add, err := reg.LookupClass("Add")
	require.NoError(t, err)

	body := construct.Add(add, "add", construct.Var("n"), construct.Var("n"))
	expr := construct.Lambda("n", body)

	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "?a: Add -> ?a: Add", types.TypeString(info.Type))
}

func TestInferS6TypeClassAnnotatedParameterDispatchesOnReceiver(t *testing.T) {
	reg, _, bl := classesAndRefsRegistry(t)
	ctx := NewInferenceContext(reg)
	tc, err := reg.LookupClass("TypeClass")
	require.NoError(t, err)

	annotation := construct.TExistential(types.ConstraintSet{tc}, &region.Temporary{})
	body := construct.Apply(construct.AccessToClassMethod(construct.Var("n"), "method"), construct.Var("n"))
	f := construct.LambdaAnnotated("n", annotation, body)
	expr := construct.Let("f", f, construct.Apply(construct.Var("f"), construct.Const(bl.Base)))

	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "bool", types.TypeString(info.Type))
}

func TestInferS7ArgumentElaboratesThroughImplicitReferenceCast(t *testing.T) {
	reg, num, bl := classesAndRefsRegistry(t)
	ctx := NewInferenceContext(reg)

	annotation := construct.TRef(reg.RefBase, ctx.NewTypeVar(1), ctx.NewRegionVar(1))
	g := construct.LambdaAnnotated("n", annotation, construct.Const(num.Base))
	expr := construct.Let("g", g, construct.Apply(construct.Var("g"), construct.Const(bl.Base)))

	info, err := ctx.Infer(expr)
	require.NoError(t, err)
	assert.Equal(t, "num", types.TypeString(info.Type))
}

func TestInferS8BindingAReturnedReferenceToATemporaryIsRejectedAsDangling(t *testing.T) {
	reg, _, bl := classesAndRefsRegistry(t)
	ctx := NewInferenceContext(reg)

	annotation := construct.TRef(reg.RefBase, ctx.NewTypeVar(1), ctx.NewRegionVar(1))
	h := construct.LambdaAnnotated("n", annotation, construct.Var("n"))
	inner := construct.Let("i", construct.Apply(construct.Var("h"), construct.Const(bl.Base)), construct.Var("i"))
	expr := construct.Let("h", h, inner)

	_, err := ctx.Infer(expr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDangling)
}

func TestCheckAlgorithmMAgreesWithInferOnS2(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)
	sub, err := reg.LookupClass("Sub")
	require.NoError(t, err)

	body := construct.BinaryExpression("-", sub, "sub", construct.Var("n"), construct.Const(num.Base))
	expr := construct.Lambda("n", body)

	expected := &types.Function{FnBase: reg.FnBase, Param: num.Base, Return: num.Base}
	info, err := ctx.Check(expr, expected)
	require.NoError(t, err)
	assert.Equal(t, "num -> num", types.TypeString(info.Type))
}

func TestUnknownIdentifierIsClassified(t *testing.T) {
	reg, _, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)

	_, err := ctx.Infer(construct.Var("nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIdentifier)

	var ierr *InferenceError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, KindUnknownIdentifier, ierr.Kind)
}

func TestDuplicateLetBindingInSameScopeIsRejected(t *testing.T) {
	reg, num, _ := arithmeticRegistry(t)
	ctx := NewInferenceContext(reg)

	inner := construct.Let("x", construct.Const(num.Base), construct.Var("x"))
	expr := construct.Let("x", construct.Const(num.Base), inner)

	_, err := ctx.Infer(expr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentifierRedefined)
}
