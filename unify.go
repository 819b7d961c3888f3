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
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
)

// CastPattern signals which implicit widening, if any, a unification step
// detected. No AST rewrite is performed; a downstream elaborator (out of
// scope here) would consume these markers to insert explicit cast nodes.
type CastPattern int

const (
	CastNone CastPattern = iota
	CastReference
	CastTypeClass
)

func (c CastPattern) String() string {
	switch c {
	case CastReference:
		return "REFERENCE"
	case CastTypeClass:
		return "TYPECLASS"
	default:
		return "NONE"
	}
}

// unifyType unifies two types, solve-chain-walked first. implicitCast
// enables the TypeClass-to-TypeClass narrowing rule below; every other rule
// fires unconditionally. Functions are invariant in both parameter and
// return position regardless of implicitCast.
func (ctx *InferenceContext) unifyType(a, b types.Type, implicitCast bool) (CastPattern, error) {
	a = types.Repr(a)
	b = types.Repr(b)
	if a == b {
		return CastNone, nil
	}

	if av, ok := a.(*types.Var); ok {
		if bv, ok := b.(*types.Var); ok {
			return CastNone, ctx.unifyVars(av, bv)
		}
		return CastNone, ctx.bindVar(av, b)
	}
	if bv, ok := b.(*types.Var); ok {
		return CastNone, ctx.bindVar(bv, a)
	}

	switch a := a.(type) {
	case *types.Base:
		bb, ok := b.(*types.Base)
		if !ok || bb.Name != a.Name {
			return CastNone, errors.Wrapf(ErrKindMismatch, "%s vs %s", a.TypeName(), b.TypeName())
		}
		return CastNone, nil

	case *types.Function:
		bf, ok := b.(*types.Function)
		if !ok {
			return CastNone, errors.Wrapf(ErrKindMismatch, "function vs %s", b.TypeName())
		}
		if _, err := ctx.unifyType(a.Param, bf.Param, false); err != nil {
			return CastNone, err
		}
		if _, err := ctx.unifyType(a.Return, bf.Return, false); err != nil {
			return CastNone, err
		}
		return CastNone, nil

	case *types.Existential:
		be, ok := b.(*types.Existential)
		if !ok || !implicitCast {
			return CastNone, errors.Wrapf(ErrKindMismatch, "type-as-class vs %s", b.TypeName())
		}
		if !a.Classes.Equal(be.Classes) {
			if err := ctx.Registry.ApplyConstraint(be, a.Classes); err != nil {
				return CastNone, err
			}
		}
		if err := region.Convert(a.Region, &be.Region); err != nil {
			return CastNone, err
		}
		return CastTypeClass, nil

	case *types.Ref:
		br, ok := b.(*types.Ref)
		if !ok {
			return CastNone, errors.Wrapf(ErrKindMismatch, "reference vs %s", b.TypeName())
		}
		if _, err := ctx.unifyType(a.Elem, br.Elem, false); err != nil {
			return CastNone, err
		}
		if err := region.Convert(a.Region, &br.Region); err != nil {
			return CastNone, err
		}
		return CastNone, nil

	default:
		return CastNone, errors.Wrapf(ErrKindMismatch, "%s vs %s", a.TypeName(), b.TypeName())
	}
}

// unifyVars merges two unification variables: the one with the smaller depth
// survives and absorbs the other's constraints; the deeper variable links to
// the shallower one.
func (ctx *InferenceContext) unifyVars(a, b *types.Var) error {
	survivor, other := a, b
	if b.Depth() < a.Depth() {
		survivor, other = b, a
	}
	survivor.MergeConstraints(other.Constraints())
	other.Bind(survivor)
	ctx.trace("unify.vars", map[string]interface{}{"survivor": survivor.Id(), "absorbed": other.Id()})
	return nil
}

// bindVar links a Variable to a concrete type, after an occurs-check and
// after checking the concrete type satisfies whatever classes were required
// of the variable.
func (ctx *InferenceContext) bindVar(v *types.Var, t types.Type) error {
	if types.Occurs(v, t) {
		return errors.Wrapf(ErrRecursiveUnification, "variable occurs in %s", t.TypeName())
	}
	if err := ctx.Registry.ApplyConstraint(t, v.Constraints()); err != nil {
		return err
	}
	v.Bind(t)
	ctx.trace("unify.bind", map[string]interface{}{"var": v.Id(), "kind": t.TypeName()})
	return nil
}

// unifyWithRef unifies dst against a source carrying region information. The
// reference and type-class promotion rules move dst's OWN region field
// toward src's region (not the other way around): passing a value into a
// ref/existential-typed parameter narrows that parameter's declared region to
// wherever the value actually lives, exactly as a plain unification variable
// gets bound to whatever concrete type it is first unified against.
func (ctx *InferenceContext) unifyWithRef(dst types.Type, src *types.Info) (CastPattern, error) {
	dstR := types.Repr(dst)
	srcR := types.Repr(src.Type)

	if _, srcIsVar := srcR.(*types.Var); !srcIsVar {
		switch d := dstR.(type) {
		case *types.Existential:
			if _, srcIsExistential := srcR.(*types.Existential); !srcIsExistential {
				if err := ctx.Registry.ApplyConstraint(srcR, d.Classes); err != nil {
					return CastNone, err
				}
				if err := region.Convert(src.Region, &d.Region); err != nil {
					return CastNone, err
				}
				return CastTypeClass, nil
			}
		case *types.Ref:
			if _, srcIsRef := srcR.(*types.Ref); !srcIsRef {
				if _, err := ctx.unifyType(d.Elem, srcR, false); err != nil {
					return CastNone, err
				}
				if err := region.Convert(src.Region, &d.Region); err != nil {
					return CastNone, err
				}
				return CastReference, nil
			}
		}
	}
	return ctx.unifyType(dstR, srcR, true)
}

// unifyFunction unifies expected against a call's argument/result pair:
// expected must walk to a Function (unifying each side through
// unifyWithRef) or to an unbound Variable (solved directly to
// fn(paramInfo.Type, returnInfo.Type)).
func (ctx *InferenceContext) unifyFunction(expected types.Type, paramInfo, returnInfo *types.Info) (paramCast, returnCast CastPattern, err error) {
	expected = types.Repr(expected)
	switch e := expected.(type) {
	case *types.Function:
		paramCast, err = ctx.unifyWithRef(e.Param, paramInfo)
		if err != nil {
			return CastNone, CastNone, err
		}
		returnCast, err = ctx.unifyWithRef(e.Return, returnInfo)
		if err != nil {
			return CastNone, CastNone, err
		}
		return paramCast, returnCast, nil
	case *types.Var:
		fn := &types.Function{FnBase: ctx.Registry.FnBase, Param: paramInfo.Type, Return: returnInfo.Type}
		if err := ctx.bindVar(e, fn); err != nil {
			return CastNone, CastNone, err
		}
		return CastNone, CastNone, nil
	default:
		return CastNone, CastNone, errors.Wrapf(ErrKindMismatch, "expected function, found %s", expected.TypeName())
	}
}

// getClassMethod resolves name through typeInfo's class list, instantiates
// the declared method with the class's selfParam substituted by typeInfo's
// type, and unifies the method's first parameter against typeInfo (via
// unifyWithRef) so reference-vs-value calling is validated. It returns the
// curried remainder (the method's declared type is `self -> rest`).
func (ctx *InferenceContext) getClassMethod(typeInfo *types.Info, name string) (types.Type, CastPattern, error) {
	classes, err := ctx.Registry.ClassList(typeInfo.Type)
	if err != nil {
		return nil, CastNone, err
	}
	match, err := classes.LookupMethod(name)
	if err != nil {
		return nil, CastNone, err
	}
	method, err := types.InstantiateClassMethod(match.Owner, name, typeInfo.Type)
	if err != nil {
		return nil, CastNone, err
	}
	fn, ok := types.Repr(method).(*types.Function)
	if !ok {
		return nil, CastNone, errors.Wrapf(ErrKindMismatch, "class method %q is not a function", name)
	}
	cast, err := ctx.unifyWithRef(fn.Param, typeInfo)
	if err != nil {
		return nil, CastNone, err
	}
	return fn.Return, cast, nil
}
