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
	"testing"

	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *types.Registry {
	t.Helper()
	reg := types.NewRegistry()
	_, err := reg.DeclareBase("num")
	require.NoError(t, err)
	_, err = reg.DeclareBase("bool")
	require.NoError(t, err)
	return reg
}

func TestParseTypeExprBaseName(t *testing.T) {
	reg := testRegistry(t)
	typ, err := parseTypeExpr("num", reg, nil)
	require.NoError(t, err)
	assert.Equal(t, "num", types.TypeString(typ))
}

func TestParseTypeExprSelfRequiresAClassContext(t *testing.T) {
	reg := testRegistry(t)
	_, err := parseTypeExpr("self", reg, nil)
	assert.Error(t, err)

	self := &types.Param{Index: 0}
	typ, err := parseTypeExpr("self", reg, self)
	require.NoError(t, err)
	assert.Same(t, self, typ)
}

func TestParseTypeExprFunctionIsRightAssociative(t *testing.T) {
	reg := testRegistry(t)
	typ, err := parseTypeExpr("num -> num -> bool", reg, nil)
	require.NoError(t, err)

	fn, ok := typ.(*types.Function)
	require.True(t, ok)
	assert.Equal(t, "num", types.TypeString(fn.Param))
	inner, ok := fn.Return.(*types.Function)
	require.True(t, ok)
	assert.Equal(t, "num", types.TypeString(inner.Param))
	assert.Equal(t, "bool", types.TypeString(inner.Return))
}

func TestParseTypeExprRefAtBottom(t *testing.T) {
	reg := testRegistry(t)
	typ, err := parseTypeExpr("ref<num> at ⊥", reg, nil)
	require.NoError(t, err)

	ref, ok := typ.(*types.Ref)
	require.True(t, ok)
	assert.Equal(t, "num", types.TypeString(ref.Elem))
	_, isTemporary := ref.Region.(*region.Temporary)
	assert.True(t, isTemporary)
}

func TestParseTypeExprNamedRegionIsSharedWithinOneExpression(t *testing.T) {
	reg := testRegistry(t)
	typ, err := parseTypeExpr("ref<num> at a -> ref<num> at a", reg, nil)
	require.NoError(t, err)

	fn := typ.(*types.Function)
	left := fn.Param.(*types.Ref)
	right := fn.Return.(*types.Ref)
	assert.Same(t, left.Region, right.Region)
}

func TestParseTypeExprNamedRegionIsScopedPerCall(t *testing.T) {
	reg := testRegistry(t)
	first, err := parseTypeExpr("ref<num> at a", reg, nil)
	require.NoError(t, err)
	second, err := parseTypeExpr("ref<num> at a", reg, nil)
	require.NoError(t, err)

	assert.NotSame(t, first.(*types.Ref).Region, second.(*types.Ref).Region)
}

func TestParseTypeExprRejectsUnknownBase(t *testing.T) {
	reg := testRegistry(t)
	_, err := parseTypeExpr("nope", reg, nil)
	assert.Error(t, err)
}

func TestParseTypeExprRejectsTrailingInput(t *testing.T) {
	reg := testRegistry(t)
	_, err := parseTypeExpr("num num", reg, nil)
	assert.Error(t, err)
}

func TestParseTypeExprRejectsMalformedRef(t *testing.T) {
	reg := testRegistry(t)
	_, err := parseTypeExpr("ref<num> num", reg, nil)
	assert.Error(t, err)

	_, err = parseTypeExpr("ref num>", reg, nil)
	assert.Error(t, err)
}

func TestParseTypeExprRejectsEmptyInput(t *testing.T) {
	reg := testRegistry(t)
	_, err := parseTypeExpr("", reg, nil)
	assert.Error(t, err)
}
