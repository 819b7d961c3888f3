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
	"github.com/168iroha/typeinfer/ast"
	"github.com/168iroha/typeinfer/region"
	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
)

// Infer runs Algorithm J over expr in a fresh root frame and returns the
// inferred type/region pair.
func (ctx *InferenceContext) Infer(expr ast.Expr) (*types.Info, error) {
	return algorithmJ(ctx, NewRootFrame(), expr)
}

// Check runs Algorithm M over expr against an expected type, in a fresh root
// frame. The returned Info carries expected as its type and a region that
// starts as Temporary and may be narrowed by the walk.
func (ctx *InferenceContext) Check(expr ast.Expr, expected types.Type) (*types.Info, error) {
	rho := &types.Info{Type: expected, Region: &region.Temporary{}}
	if err := algorithmM(ctx, NewRootFrame(), expr, rho); err != nil {
		return nil, err
	}
	return rho, nil
}

// isDanglingReturn reports whether t, the raw type a Lambda body produced in
// child, is a reference into a region visible from child: child's own
// parameter scope or any lexically enclosing frame. Such a reference cannot
// outlive the call and is rejected regardless of whether child itself is the
// owner, because nothing generalizes a bare lambda's return region into a
// parameter.
func isDanglingReturn(t types.Type, child *Frame) bool {
	ref, ok := types.Repr(t).(*types.Ref)
	if !ok {
		return false
	}
	return region.Includes(child, ref.Region)
}

// traceDangling is a no-op when ctx carries no logger; it is only ever called from
// the dangling-check call sites below, which are the points where a
// decision is actually made rather than merely propagated.
func (ctx *InferenceContext) traceDangling(kind string, node ast.Expr, depth int) {
	ctx.trace("dangling.check", map[string]interface{}{"node": node.ExprName(), "kind": kind, "depth": depth})
}

// isDanglingBinding reports whether t, a let/letrec-bound value's type, is a
// reference to a temporary: such a reference would outlive the temporary it
// points to as soon as the binding's body runs.
func isDanglingBinding(t types.Type) bool {
	ref, ok := types.Repr(t).(*types.Ref)
	if !ok {
		return false
	}
	_, isTemporary := region.Repr(ref.Region).(*region.Temporary)
	return isTemporary
}

// algorithmJ is bottom-up type synthesis: it computes expr's type without
// any outside expectation to check against.
func algorithmJ(ctx *InferenceContext, frame *Frame, expr ast.Expr) (*types.Info, error) {
	switch e := expr.(type) {

	case *ast.Constant:
		result := &types.Info{Type: e.Base, Region: &region.Temporary{}}
		e.SetType(result)
		return result, nil

	case *ast.Identifier:
		b, ok := frame.Lookup(e.Name)
		if !ok {
			return nil, wrap(e, errors.Wrapf(ErrUnknownIdentifier, "%q", e.Name))
		}
		var result *types.Info
		if b.Scheme != nil {
			instantiated, err := ctx.Instantiate(b.Scheme, nil, nil, frame.EnvDepth())
			if err != nil {
				return nil, wrap(e, err)
			}
			result = &types.Info{Type: instantiated, Region: &region.Temporary{}}
		} else {
			result = &types.Info{Type: b.Type, Region: b.Region}
		}
		e.SetType(result)
		return result, nil

	case *ast.Lambda:
		child := frame.PushFrame()
		paramType := e.Annotation
		if paramType == nil {
			paramType = ctx.NewTypeVar(child.EnvDepth())
		}
		child.Bind(e.Param, Binding{Type: paramType, Region: &region.Base{Env: child}})
		bodyInfo, err := algorithmJ(ctx, child, e.Body)
		if err != nil {
			return nil, err
		}
		if isDanglingReturn(bodyInfo.Type, child) {
			ctx.traceDangling("lambda-return", e, child.EnvDepth())
			return nil, wrap(e, errors.Wrapf(ErrDangling, "lambda returns a reference into its own scope"))
		}
		fn := &types.Function{FnBase: ctx.Registry.FnBase, Param: paramType, Return: bodyInfo.Type}
		result := &types.Info{Type: fn, Region: &region.Temporary{}}
		e.SetType(result)
		return result, nil

	case *ast.Apply:
		tau1, err := algorithmJ(ctx, frame, e.Fn)
		if err != nil {
			return nil, err
		}
		tau2, err := algorithmJ(ctx, frame, e.Arg)
		if err != nil {
			return nil, err
		}
		result := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Temporary{}}
		if _, _, err := ctx.unifyFunction(tau1.Type, tau2, result); err != nil {
			return nil, wrap(e, err)
		}
		e.SetType(result)
		return result, nil

	case *ast.Let:
		tau1, err := algorithmJ(ctx, frame, e.Value)
		if err != nil {
			return nil, err
		}
		if isDanglingBinding(tau1.Type) {
			ctx.traceDangling("let-binding", e, frame.EnvDepth())
			return nil, wrap(e, errors.Wrapf(ErrDangling, "%q binds a reference to a temporary", e.Name))
		}
		if frame.BoundHere(e.Name) {
			return nil, wrap(e, errors.Wrapf(ErrIdentifierRedefined, "%q", e.Name))
		}
		bindGeneralized(ctx, frame, e.Name, tau1.Type, e.TypeParams, e.RegionParams)
		result, err := algorithmJ(ctx, frame, e.Body)
		if err != nil {
			return nil, err
		}
		e.SetType(result)
		return result, nil

	case *ast.Letrec:
		if frame.BoundHere(e.Name) {
			return nil, wrap(e, errors.Wrapf(ErrIdentifierRedefined, "%q", e.Name))
		}
		t := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Base{Env: frame}}
		frame.Bind(e.Name, Binding{Type: t.Type, Region: t.Region})
		tau1, err := algorithmJ(ctx, frame, e.Value)
		if err != nil {
			return nil, err
		}
		// tau1's region is temporary and is deliberately left out of this
		// unification; only the type itself is shared with the recursive slot.
		if _, err := ctx.unifyType(t.Type, tau1.Type, true); err != nil {
			return nil, wrap(e, err)
		}
		if isDanglingBinding(t.Type) {
			ctx.traceDangling("letrec-binding", e, frame.EnvDepth())
			return nil, wrap(e, errors.Wrapf(ErrDangling, "%q binds a reference to a temporary", e.Name))
		}
		bindGeneralized(ctx, frame, e.Name, tau1.Type, e.TypeParams, e.RegionParams)
		result, err := algorithmJ(ctx, frame, e.Body)
		if err != nil {
			return nil, err
		}
		e.SetType(result)
		return result, nil

	case *ast.AccessToClassMethod:
		tau, err := algorithmJ(ctx, frame, e.Receiver)
		if err != nil {
			return nil, err
		}
		resultType, _, err := ctx.getClassMethod(tau, e.Method)
		if err != nil {
			return nil, wrap(e, err)
		}
		result := &types.Info{Type: resultType, Region: &region.Temporary{}}
		e.SetType(result)
		return result, nil

	case *ast.BinaryExpression:
		tau1, err := algorithmJ(ctx, frame, e.Left)
		if err != nil {
			return nil, err
		}
		if err := ctx.Registry.ApplyConstraint(tau1.Type, types.ConstraintSet{e.Class}); err != nil {
			return nil, wrap(e, err)
		}
		tau2, err := algorithmJ(ctx, frame, e.Right)
		if err != nil {
			return nil, err
		}
		remainder, _, err := ctx.getClassMethod(tau1, e.Method)
		if err != nil {
			return nil, wrap(e, err)
		}
		result := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Temporary{}}
		if _, _, err := ctx.unifyFunction(remainder, tau2, result); err != nil {
			return nil, wrap(e, err)
		}
		e.SetType(result)
		return result, nil

	default:
		return nil, wrap(expr, errors.Errorf("unknown expression node: %s", expr.ExprName()))
	}
}

// algorithmM is top-down type checking: it propagates rho, the caller's
// expectation, inward and narrows rho.Region in place to reflect where the
// resulting value actually lives.
func algorithmM(ctx *InferenceContext, frame *Frame, expr ast.Expr, rho *types.Info) error {
	switch e := expr.(type) {

	case *ast.Constant:
		src := &types.Info{Type: e.Base, Region: &region.Temporary{}}
		if _, err := ctx.unifyWithRef(rho.Type, src); err != nil {
			return wrap(e, err)
		}
		rho.Region = &region.Temporary{}
		e.SetType(rho)
		return nil

	case *ast.Identifier:
		b, ok := frame.Lookup(e.Name)
		if !ok {
			return wrap(e, errors.Wrapf(ErrUnknownIdentifier, "%q", e.Name))
		}
		if b.Scheme != nil {
			instantiated, err := ctx.Instantiate(b.Scheme, nil, nil, frame.EnvDepth())
			if err != nil {
				return wrap(e, err)
			}
			if _, err := ctx.unifyWithRef(rho.Type, &types.Info{Type: instantiated, Region: &region.Temporary{}}); err != nil {
				return wrap(e, err)
			}
			rho.Region = &region.Temporary{}
		} else {
			src := &types.Info{Type: b.Type, Region: b.Region}
			cast, err := ctx.unifyWithRef(rho.Type, src)
			if err != nil {
				return wrap(e, err)
			}
			if cast == CastNone {
				rho.Region = b.Region
			} else {
				rho.Region = &region.Temporary{}
			}
		}
		e.SetType(rho)
		return nil

	case *ast.Lambda:
		child := frame.PushFrame()
		paramType := e.Annotation
		if paramType == nil {
			paramType = ctx.NewTypeVar(child.EnvDepth())
		}
		paramInfo := &types.Info{Type: paramType, Region: &region.Base{Env: child}}
		bodyExpected := &types.Info{Type: ctx.NewTypeVar(child.EnvDepth()), Region: ctx.NewRegionVar(child.EnvDepth())}
		if _, _, err := ctx.unifyFunction(rho.Type, paramInfo, bodyExpected); err != nil {
			return wrap(e, err)
		}
		child.Bind(e.Param, Binding{Type: paramInfo.Type, Region: paramInfo.Region})
		if err := algorithmM(ctx, child, e.Body, bodyExpected); err != nil {
			return err
		}
		if isDanglingReturn(bodyExpected.Type, child) {
			ctx.traceDangling("lambda-return", e, child.EnvDepth())
			return wrap(e, errors.Wrapf(ErrDangling, "lambda returns a reference into its own scope"))
		}
		e.SetType(rho)
		return nil

	case *ast.Apply:
		argExpected := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Base{Env: frame}}
		fnExpected := &types.Info{
			Type:   &types.Function{FnBase: ctx.Registry.FnBase, Param: argExpected.Type, Return: rho.Type},
			Region: &region.Base{Env: frame},
		}
		if err := algorithmM(ctx, frame, e.Fn, fnExpected); err != nil {
			return err
		}
		if err := algorithmM(ctx, frame, e.Arg, argExpected); err != nil {
			return err
		}
		e.SetType(rho)
		return nil

	case *ast.Let:
		t := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Base{Env: frame}}
		if err := algorithmM(ctx, frame, e.Value, t); err != nil {
			return err
		}
		if isDanglingBinding(t.Type) {
			ctx.traceDangling("let-binding", e, frame.EnvDepth())
			return wrap(e, errors.Wrapf(ErrDangling, "%q binds a reference to a temporary", e.Name))
		}
		if frame.BoundHere(e.Name) {
			return wrap(e, errors.Wrapf(ErrIdentifierRedefined, "%q", e.Name))
		}
		bindGeneralized(ctx, frame, e.Name, t.Type, e.TypeParams, e.RegionParams)
		if err := algorithmM(ctx, frame, e.Body, rho); err != nil {
			return err
		}
		e.SetType(rho)
		return nil

	case *ast.Letrec:
		if frame.BoundHere(e.Name) {
			return wrap(e, errors.Wrapf(ErrIdentifierRedefined, "%q", e.Name))
		}
		t1 := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Base{Env: frame}}
		t2 := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: &region.Temporary{}}
		frame.Bind(e.Name, Binding{Type: t1.Type, Region: t1.Region})
		if err := algorithmM(ctx, frame, e.Value, t2); err != nil {
			return err
		}
		if _, err := ctx.unifyType(t1.Type, t2.Type, true); err != nil {
			return wrap(e, err)
		}
		if isDanglingBinding(t1.Type) {
			ctx.traceDangling("letrec-binding", e, frame.EnvDepth())
			return wrap(e, errors.Wrapf(ErrDangling, "%q binds a reference to a temporary", e.Name))
		}
		bindGeneralized(ctx, frame, e.Name, t1.Type, e.TypeParams, e.RegionParams)
		if err := algorithmM(ctx, frame, e.Body, rho); err != nil {
			return err
		}
		e.SetType(rho)
		return nil

	case *ast.AccessToClassMethod:
		t := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: ctx.NewRegionVar(frame.EnvDepth())}
		if err := algorithmM(ctx, frame, e.Receiver, t); err != nil {
			return err
		}
		resultType, _, err := ctx.getClassMethod(t, e.Method)
		if err != nil {
			return wrap(e, err)
		}
		if _, err := ctx.unifyWithRef(rho.Type, &types.Info{Type: resultType, Region: &region.Temporary{}}); err != nil {
			return wrap(e, err)
		}
		rho.Region = &region.Temporary{}
		e.SetType(rho)
		return nil

	case *ast.BinaryExpression:
		t1 := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: ctx.NewRegionVar(frame.EnvDepth())}
		if err := algorithmM(ctx, frame, e.Left, t1); err != nil {
			return err
		}
		if err := ctx.Registry.ApplyConstraint(t1.Type, types.ConstraintSet{e.Class}); err != nil {
			return wrap(e, err)
		}
		t2 := &types.Info{Type: ctx.NewTypeVar(frame.EnvDepth()), Region: ctx.NewRegionVar(frame.EnvDepth())}
		remainder, _, err := ctx.getClassMethod(t1, e.Method)
		if err != nil {
			return wrap(e, err)
		}
		if _, _, err := ctx.unifyFunction(remainder, t2, rho); err != nil {
			return wrap(e, err)
		}
		if err := algorithmM(ctx, frame, e.Right, t2); err != nil {
			return err
		}
		e.SetType(rho)
		return nil

	default:
		return wrap(expr, errors.Errorf("unknown expression node: %s", expr.ExprName()))
	}
}

// bindGeneralized generalizes valueType at frame's depth (with any
// user-declared scheme parameters pinned ahead of time) and installs the
// result under name, replacing the caller's preliminary binding.
func bindGeneralized(ctx *InferenceContext, frame *Frame, name string, valueType types.Type, typeParams []*types.Param, regionParams []*region.Param) {
	scheme, ok := ctx.Generalize(frame.EnvDepth(), valueType, typeParams, regionParams)
	binding := Binding{Region: &region.Base{Env: frame}}
	if ok {
		binding.Scheme = scheme
	} else {
		binding.Type = valueType
	}
	frame.Bind(name, binding)
}
