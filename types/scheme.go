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
	"github.com/168iroha/typeinfer/region"
	"github.com/pkg/errors"
)

// Scheme is a generic type: a body mentioning Param/region.Param nodes whose
// Index selects positionally into TypeParams/RegionParams. Schemes are not a
// host-language generic; they are ordinary values so that generalization and
// instantiation can be implemented as plain tree rewrites.
type Scheme struct {
	TypeParams   []*Param
	RegionParams []*region.Param
	Body         Type
}

// Fresh allocates unification variables during instantiation. poly's
// inference context implements this to hand out ids from its own counter.
type Fresh interface {
	NewTypeVar(depth int) *Var
	NewRegionVar(depth int) *region.Var
}

// Instantiate allocates a fresh Variable for every type and region parameter
// of scheme not covered by typeArgs/regionArgs, copies the body structurally,
// and substitutes each Param/region.Param by index. Supplied type arguments
// are validated against the corresponding parameter's constraints via
// registry.ApplyConstraint; supplied arguments are used as-is (not copied),
// fresh variables inherit the parameter's constraints directly.
func Instantiate(registry *Registry, scheme *Scheme, typeArgs []Type, regionArgs []region.Region, depth int, fresh Fresh) (Type, error) {
	typeSubst := make(map[int]Type, len(scheme.TypeParams))
	for i, p := range scheme.TypeParams {
		if i < len(typeArgs) && typeArgs[i] != nil {
			if err := registry.ApplyConstraint(typeArgs[i], p.Constraints); err != nil {
				return nil, errors.Wrapf(err, "type argument %d", i)
			}
			typeSubst[p.Index] = typeArgs[i]
			continue
		}
		tv := fresh.NewTypeVar(depth)
		tv.SetConstraints(p.Constraints)
		typeSubst[p.Index] = tv
	}
	regionSubst := make(map[int]region.Region, len(scheme.RegionParams))
	for i, p := range scheme.RegionParams {
		if i < len(regionArgs) && regionArgs[i] != nil {
			regionSubst[p.Index] = regionArgs[i]
			continue
		}
		regionSubst[p.Index] = fresh.NewRegionVar(depth)
	}
	return instantiateBody(scheme.Body, typeSubst, regionSubst), nil
}

func instantiateBody(t Type, typeSubst map[int]Type, regionSubst map[int]region.Region) Type {
	switch t := t.(type) {
	case *Param:
		if sub, ok := typeSubst[t.Index]; ok {
			return sub
		}
		return t
	case *Function:
		return &Function{
			FnBase: t.FnBase,
			Param:  instantiateBody(t.Param, typeSubst, regionSubst),
			Return: instantiateBody(t.Return, typeSubst, regionSubst),
		}
	case *Ref:
		return &Ref{
			RefBase: t.RefBase,
			Elem:    instantiateBody(t.Elem, typeSubst, regionSubst),
			Region:  instantiateRegion(t.Region, regionSubst),
		}
	case *Existential:
		return &Existential{
			Classes: t.Classes,
			Region:  instantiateRegion(t.Region, regionSubst),
		}
	default:
		return t
	}
}

func instantiateRegion(r region.Region, subst map[int]region.Region) region.Region {
	if p, ok := r.(*region.Param); ok {
		if sub, ok := subst[p.Index]; ok {
			return sub
		}
	}
	return r
}

// Generalize replaces free unification variables of t with fresh Params,
// producing a scheme. A Variable is free iff it was introduced at a depth
// strictly greater than envDepth (the depth of the frame in which the
// generalized binding will live). preParams fixes the order and identity of
// certain Params ahead of time, for let/letrec forms with user-declared type
// parameters; a variable already linked to one of preParams keeps that slot.
//
// If no free variable was found, the second return value is false and t
// itself (unchanged) should be used as a monomorphic type.
func Generalize(envDepth int, t Type, preParams []*Param, preRegionParams []*region.Param) (*Scheme, bool) {
	g := &generalizer{
		envDepth:        envDepth,
		typeParams:      append([]*Param(nil), preParams...),
		regionParams:    append([]*region.Param(nil), preRegionParams...),
		precomputedType: len(preParams),
		precomputedRgn:  len(preRegionParams),
	}
	body := g.walk(t)
	if len(g.typeParams) == len(preParams) && len(g.regionParams) == len(preRegionParams) {
		return nil, false
	}
	return &Scheme{TypeParams: g.typeParams, RegionParams: g.regionParams, Body: body}, true
}

type generalizer struct {
	envDepth        int
	typeParams      []*Param
	regionParams    []*region.Param
	precomputedType int
	precomputedRgn  int
}

func (g *generalizer) walk(t Type) Type {
	switch t := Repr(t).(type) {
	case *Var:
		if t.Depth() <= g.envDepth {
			return t
		}
		p := &Param{Index: len(g.typeParams), Constraints: t.Constraints()}
		g.typeParams = append(g.typeParams, p)
		t.Bind(p)
		return p
	case *Function:
		return &Function{FnBase: t.FnBase, Param: g.walk(t.Param), Return: g.walk(t.Return)}
	case *Ref:
		return &Ref{RefBase: t.RefBase, Elem: g.walk(t.Elem), Region: g.walkRegion(t.Region)}
	case *Existential:
		return &Existential{Classes: t.Classes, Region: g.walkRegion(t.Region)}
	default:
		return t
	}
}

func (g *generalizer) walkRegion(r region.Region) region.Region {
	switch r := region.Repr(r).(type) {
	case *region.Var:
		if r.Depth() <= g.envDepth {
			return r
		}
		p := &region.Param{Index: len(g.regionParams)}
		g.regionParams = append(g.regionParams, p)
		r.Bind(p)
		return p
	default:
		return r
	}
}
