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

// Package region implements the lifetime lattice used to track where values
// live: Temporary (bottom) < Base(scope) < Variable (top), with Param nodes
// comparable only to themselves.
package region

import "github.com/pkg/errors"

// ErrNotConvertible is the sentinel cause wrapped by every failed Convert.
var ErrNotConvertible = errors.New("region: not convertible")

// EnvHandle identifies a lexical scope frame, without this package needing to
// know anything about bindings or types. The poly package's environment frame
// implements this interface.
type EnvHandle interface {
	// EnvDepth returns the nesting depth of the frame.
	EnvDepth() int
	// EnvContains reports whether other is this frame itself or an ancestor
	// of this frame (reachable by walking the parent chain).
	EnvContains(other EnvHandle) bool
}

// Region is the base interface for all region nodes.
type Region interface {
	RegionName() string
}

// Base is a handle to a specific lexical scope frame.
type Base struct {
	Env EnvHandle
}

// Temporary is the bottom element of the lattice: unnamed, ephemeral storage.
type Temporary struct{}

// Var is a unification variable over regions.
type Var struct {
	id    int32
	depth int32
	solve Region
}

// Param is a bound region parameter of a generic scheme.
type Param struct {
	Index int
}

func (*Base) RegionName() string      { return "Base" }
func (*Temporary) RegionName() string { return "Temporary" }
func (*Var) RegionName() string       { return "Variable" }
func (*Param) RegionName() string     { return "Param" }

// NewVar allocates an unbound region variable at the given depth.
func NewVar(id, depth int) *Var { return &Var{id: int32(id), depth: int32(depth)} }

func (v *Var) Id() int    { return int(v.id) }
func (v *Var) Depth() int { return int(v.depth) }

// Solve reports the region this variable is currently linked to, if any.
func (v *Var) Solve() (Region, bool) { return v.solve, v.solve != nil }

// Bind installs r as this variable's solve-link. Callers must have performed
// any required occurs-check before calling Bind.
func (v *Var) Bind(r Region) { v.solve = r }

// Repr walks and compresses a Variable's solve-chain, returning the tail.
func Repr(r Region) Region {
	v, ok := r.(*Var)
	if !ok || v.solve == nil {
		return r
	}
	tail := Repr(v.solve)
	v.solve = tail
	return tail
}

// Includes reports whether r is visible from env: true when r is Temporary,
// or when r is a Base whose frame is env or an ancestor of env.
func Includes(env EnvHandle, r Region) bool {
	switch r := Repr(r).(type) {
	case *Temporary:
		return true
	case *Base:
		return env.EnvContains(r.Env)
	default:
		return false
	}
}

// Convert coerces src into dst ("src can be used where dst is expected"),
// mutating *src in place. Convert is not symmetric: it is the core operation
// behind every implicit widening (reference promotion, type-class existential
// promotion) performed by the unifier.
//
// *dst* = Temporary always succeeds (Temporary is the bottom element); a
// Variable src is always bindable to any dst; two Base regions succeed only
// when src is an ancestor-or-equal scope of dst, i.e. src outlives dst; two
// Params succeed only when identical; every other combination fails.
func Convert(dst Region, src *Region) error {
	d := Repr(dst)
	s := Repr(*src)

	if _, ok := d.(*Temporary); ok {
		if v, ok := s.(*Var); ok {
			v.Bind(d)
		}
		*src = d
		return nil
	}
	if _, ok := s.(*Temporary); ok {
		return errors.Wrapf(ErrNotConvertible, "cannot convert temporary region into %s", d.RegionName())
	}
	if v, ok := s.(*Var); ok {
		v.Bind(d)
		*src = d
		return nil
	}
	if _, ok := d.(*Var); ok {
		return errors.Wrapf(ErrNotConvertible, "cannot convert concrete region into unbound variable")
	}
	dp, dIsParam := d.(*Param)
	sp, sIsParam := s.(*Param)
	if dIsParam || sIsParam {
		if dIsParam && sIsParam && dp.Index == sp.Index {
			return nil
		}
		return errors.Wrapf(ErrNotConvertible, "region parameters are incomparable")
	}
	db, sb := d.(*Base), s.(*Base)
	if !db.Env.EnvContains(sb.Env) {
		return errors.Wrapf(ErrNotConvertible, "scope at depth %d does not outlive scope at depth %d", sb.Env.EnvDepth(), db.Env.EnvDepth())
	}
	*src = d
	return nil
}
