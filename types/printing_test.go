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
	"testing"

	"github.com/168iroha/typeinfer/region"
	"github.com/stretchr/testify/assert"
)

func TestTypeStringBase(t *testing.T) {
	assert.Equal(t, "num", TypeString(&Base{Name: "num"}))
}

func TestTypeStringVariableLettersAndConstraints(t *testing.T) {
	v := NewVar(0, 1)
	assert.Equal(t, "?a", TypeString(v))

	add := &Class{Name: "Add"}
	eq := &Class{Name: "Eq"}
	v2 := NewVar(1, 1)
	v2.SetConstraints(ConstraintSet{add})
	assert.Equal(t, "?a: Add", TypeString(v2))

	v2.SetConstraints(ConstraintSet{add, eq})
	assert.Equal(t, "?a: (Add + Eq)", TypeString(v2))
}

func TestTypeStringSameVariableGetsOneLetterPerCall(t *testing.T) {
	v := NewVar(0, 1)
	fn := &Function{FnBase: &Base{Name: "fn"}, Param: v, Return: v}
	assert.Equal(t, "?a -> ?a", TypeString(fn))
}

func TestTypeStringParam(t *testing.T) {
	p := &Param{Index: 0}
	assert.Equal(t, "'a", TypeString(p))
}

func TestTypeStringFunctionParenthesizesFunctionParameter(t *testing.T) {
	num := &Base{Name: "num"}
	fnBase := &Base{Name: "fn"}
	inner := &Function{FnBase: fnBase, Param: num, Return: num}
	outer := &Function{FnBase: fnBase, Param: inner, Return: num}
	assert.Equal(t, "(num -> num) -> num", TypeString(outer))
	assert.Equal(t, "num -> num", TypeString(inner))
}

func TestTypeStringExistential(t *testing.T) {
	tc := &Class{Name: "Show"}
	e := &Existential{Classes: ConstraintSet{tc}, Region: &region.Temporary{}}
	assert.Equal(t, ":Show at ⊥", TypeString(e))

	other := &Class{Name: "Eq"}
	e2 := &Existential{Classes: ConstraintSet{tc, other}, Region: &region.Temporary{}}
	assert.Equal(t, "(:Show + :Eq) at ⊥", TypeString(e2))
}

func TestTypeStringRef(t *testing.T) {
	num := &Base{Name: "num"}
	ref := &Ref{RefBase: &Base{Name: "ref"}, Elem: num, Region: &region.Temporary{}}
	assert.Equal(t, "num& at ⊥", TypeString(ref))
}

func TestRegionStringVariants(t *testing.T) {
	assert.Equal(t, "⊥", RegionString(&region.Temporary{}))
	assert.Equal(t, "a", RegionString(region.NewVar(0, 1)))
	assert.Equal(t, "a", RegionString(&region.Param{Index: 0}))
}
