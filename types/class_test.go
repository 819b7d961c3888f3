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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedWalksBasesTransitively(t *testing.T) {
	base := &Class{ID: 0, Name: "Base"}
	mid := &Class{ID: 1, Name: "Mid", Bases: []*Class{base}}
	leaf := &Class{ID: 2, Name: "Leaf", Bases: []*Class{mid}}
	unrelated := &Class{ID: 3, Name: "Unrelated"}

	assert.True(t, Derived(leaf, leaf))
	assert.True(t, Derived(leaf, mid))
	assert.True(t, Derived(leaf, base))
	assert.False(t, Derived(base, leaf))
	assert.False(t, Derived(leaf, unrelated))
}

func TestConstraintSetMergeAbsorbsAncestors(t *testing.T) {
	base := &Class{ID: 0, Name: "Base"}
	leaf := &Class{ID: 1, Name: "Leaf", Bases: []*Class{base}}

	cs := ConstraintSet{base}
	cs = cs.Merge(leaf)
	require.Len(t, cs, 1)
	assert.Same(t, leaf, cs[0])

	cs2 := ConstraintSet{leaf}
	cs2 = cs2.Merge(base)
	require.Len(t, cs2, 1)
	assert.Same(t, leaf, cs2[0])
}

func TestConstraintSetMergeAppendsUnrelatedClasses(t *testing.T) {
	a := &Class{ID: 0, Name: "A"}
	b := &Class{ID: 1, Name: "B"}
	cs := ConstraintSet{a}.Merge(b)
	assert.Len(t, cs, 2)
	assert.True(t, cs.Has(a))
	assert.True(t, cs.Has(b))
}

func TestLookupMethodPrefersMoreSpecificDescendant(t *testing.T) {
	self := &Param{Index: 0}
	base := NewClass(0, "Base", nil, self, MethodSet{"m": &Function{Param: self, Return: self}}, []string{"m"})
	leaf := NewClass(1, "Leaf", []*Class{base}, self, MethodSet{}, nil)

	match, err := (ConstraintSet{leaf}).LookupMethod("m")
	require.NoError(t, err)
	assert.Same(t, leaf, match.Class)
	assert.Same(t, base, match.Owner)
}

func TestLookupMethodAmbiguousBetweenUnrelatedClasses(t *testing.T) {
	self := &Param{Index: 0}
	a := NewClass(0, "A", nil, self, MethodSet{"m": &Function{Param: self, Return: self}}, []string{"m"})
	b := NewClass(1, "B", nil, self, MethodSet{"m": &Function{Param: self, Return: self}}, []string{"m"})

	_, err := (ConstraintSet{a, b}).LookupMethod("m")
	assert.ErrorIs(t, err, ErrClassMethodAmbiguous)
}

func TestLookupMethodNotImplemented(t *testing.T) {
	self := &Param{Index: 0}
	a := NewClass(0, "A", nil, self, MethodSet{}, nil)
	_, err := (ConstraintSet{a}).LookupMethod("m")
	assert.ErrorIs(t, err, ErrClassMethodNotImplemented)
}

func TestInstantiateClassMethodSubstitutesSelfOnly(t *testing.T) {
	self := &Param{Index: 0}
	num := &Base{Name: "num"}
	class := NewClass(0, "Box", nil, self, MethodSet{"unwrap": &Function{Param: self, Return: self}}, []string{"unwrap"})

	got, err := InstantiateClassMethod(class, "unwrap", num)
	require.NoError(t, err)
	fn, ok := got.(*Function)
	require.True(t, ok)
	assert.Same(t, num, fn.Param)
	assert.Same(t, num, fn.Return)
}
