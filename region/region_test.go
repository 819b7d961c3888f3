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

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	depth  int
	parent *fakeEnv
}

func (f *fakeEnv) EnvDepth() int { return f.depth }
func (f *fakeEnv) EnvContains(other EnvHandle) bool {
	o, ok := other.(*fakeEnv)
	if !ok {
		return false
	}
	for cur := f; cur != nil; cur = cur.parent {
		if cur == o {
			return true
		}
	}
	return false
}

func TestIncludes(t *testing.T) {
	root := &fakeEnv{depth: 1}
	child := &fakeEnv{depth: 2, parent: root}

	assert.True(t, Includes(child, &Temporary{}))
	assert.True(t, Includes(child, &Base{Env: root}))
	assert.True(t, Includes(child, &Base{Env: child}))
	assert.False(t, Includes(root, &Base{Env: child}))

	unbound := NewVar(0, 1)
	assert.False(t, Includes(child, unbound))
}

func TestConvertTemporaryDestinationAlwaysSucceeds(t *testing.T) {
	var src Region = &Base{Env: &fakeEnv{depth: 1}}
	require.NoError(t, Convert(&Temporary{}, &src))
	assert.IsType(t, &Temporary{}, src)

	v := NewVar(0, 1)
	var srcVar Region = v
	require.NoError(t, Convert(&Temporary{}, &srcVar))
	solved, ok := v.Solve()
	require.True(t, ok)
	assert.IsType(t, &Temporary{}, solved)
}

func TestConvertRejectsPromotingATemporarySource(t *testing.T) {
	var src Region = &Temporary{}
	err := Convert(&Base{Env: &fakeEnv{depth: 1}}, &src)
	assert.ErrorIs(t, err, ErrNotConvertible)
}

func TestConvertBindsAnUnboundVarSourceToAnyDestination(t *testing.T) {
	env := &fakeEnv{depth: 1}
	v := NewVar(0, 1)
	var src Region = v
	require.NoError(t, Convert(&Base{Env: env}, &src))
	assert.Same(t, env, src.(*Base).Env)
	solved, ok := v.Solve()
	require.True(t, ok)
	assert.Same(t, env, solved.(*Base).Env)
}

func TestConvertRejectsConcreteSourceIntoUnboundDestinationVar(t *testing.T) {
	var src Region = &Base{Env: &fakeEnv{depth: 1}}
	err := Convert(NewVar(0, 1), &src)
	assert.ErrorIs(t, err, ErrNotConvertible)
}

func TestConvertParamsOnlyMatchThemselves(t *testing.T) {
	p0 := &Param{Index: 0}
	p1 := &Param{Index: 1}

	var src Region = p0
	require.NoError(t, Convert(&Param{Index: 0}, &src))

	var mismatch Region = p1
	assert.ErrorIs(t, Convert(p0, &mismatch), ErrNotConvertible)
}

func TestConvertBaseToBaseRequiresSourceToOutliveDestination(t *testing.T) {
	root := &fakeEnv{depth: 1}
	child := &fakeEnv{depth: 2, parent: root}

	// src lives in root, dst names child: root outlives child, ok.
	var src Region = &Base{Env: root}
	require.NoError(t, Convert(&Base{Env: child}, &src))
	assert.Same(t, child, src.(*Base).Env)

	// src lives in child, dst names root: child does not outlive root.
	var reversed Region = &Base{Env: child}
	assert.ErrorIs(t, Convert(&Base{Env: root}, &reversed), ErrNotConvertible)
}

func TestReprCompressesSolveChain(t *testing.T) {
	a := NewVar(0, 1)
	b := NewVar(1, 1)
	a.Bind(b)
	b.Bind(&Temporary{})

	r := Repr(a)
	assert.IsType(t, &Temporary{}, r)
	solved, ok := a.Solve()
	require.True(t, ok)
	assert.IsType(t, &Temporary{}, solved)
}
