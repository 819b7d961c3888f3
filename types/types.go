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

// Package types defines the type-node graph: bases, functions, unification
// variables, generic parameters, type-as-class existentials and references,
// together with the type-class registry and constraint sets attached to them.
package types

import "github.com/168iroha/typeinfer/region"

// Type is the base interface for all type nodes. Node identity (pointer
// equality) is meaningful: two structurally equal nodes are distinct unless
// one was obtained from the other by solve-chain walking or instantiation
// reuse.
type Type interface {
	TypeName() string
}

// Base is an externally declared primitive type (`number`, `boolean`) or one
// of the synthetic bases (`fn`, `ref`) used for registry lookups.
type Base struct {
	Name string
}

// Function is a single-argument arrow type. FnBase points at the registry's
// `fn` base node so the function's name can be resolved during class-list
// lookups.
type Function struct {
	FnBase *Base
	Param  Type
	Return Type
}

// Var is a unification variable.
type Var struct {
	constraints ConstraintSet
	id          int32
	depth       int32
	solve       Type
}

// Param is a bound parameter of a generic scheme.
type Param struct {
	Constraints ConstraintSet
	Index       int
}

// Existential is a type-as-class value: some value of unknown static type
// implementing the carried class set, located at the carried region. This is
// the data-model's "TypeClass" type variant, named Existential here to avoid
// colliding with the Class declaration it refers to.
type Existential struct {
	Classes ConstraintSet
	Region  region.Region
}

// Ref is a reference to a value of Elem living at Region. RefBase points at
// the registry's `ref` base node.
type Ref struct {
	RefBase *Base
	Elem    Type
	Region  region.Region
}

func (*Base) TypeName() string        { return "Base" }
func (*Function) TypeName() string    { return "Function" }
func (*Var) TypeName() string         { return "Variable" }
func (*Param) TypeName() string       { return "Param" }
func (*Existential) TypeName() string { return "TypeClass" }
func (*Ref) TypeName() string         { return "Ref" }

// NewVar allocates an unbound unification variable at the given depth.
func NewVar(id, depth int) *Var { return &Var{id: int32(id), depth: int32(depth)} }

func (v *Var) Id() int                         { return int(v.id) }
func (v *Var) Depth() int                      { return int(v.depth) }
func (v *Var) Constraints() ConstraintSet      { return v.constraints }
func (v *Var) SetConstraints(cs ConstraintSet) { v.constraints = cs }
func (v *Var) MergeConstraints(extra ConstraintSet) {
	v.constraints = v.constraints.Merge(extra...)
}

// Solve reports the type this variable is currently linked to, if any.
func (v *Var) Solve() (Type, bool) { return v.solve, v.solve != nil }

// Bind installs t as this variable's solve-link. Callers must have performed
// an occurs-check before calling Bind.
func (v *Var) Bind(t Type) { v.solve = t }

// Repr walks and path-compresses a Variable's solve-chain, returning the tail.
// All other node kinds are returned unchanged.
func Repr(t Type) Type {
	v, ok := t.(*Var)
	if !ok || v.solve == nil {
		return t
	}
	tail := Repr(v.solve)
	v.solve = tail
	return tail
}

// UnwrapRef peels any number of outer Ref layers, re-applying Repr after each
// peel, until the node is no longer a Ref.
func UnwrapRef(t Type) Type {
	for {
		t = Repr(t)
		ref, ok := t.(*Ref)
		if !ok {
			return t
		}
		t = ref.Elem
	}
}

// Occurs reports whether v occurs free within t, walking through Function and
// Ref children and following solved Variables. It is the occurs-check used to
// reject recursive unification.
func Occurs(v *Var, t Type) bool {
	switch t := Repr(t).(type) {
	case *Var:
		return t == v
	case *Function:
		return Occurs(v, t.Param) || Occurs(v, t.Return)
	case *Ref:
		return Occurs(v, t.Elem)
	default:
		return false
	}
}

// Info pairs a type with the region describing where a value of that type
// lives. It is what an identifier is bound to in the environment, and what
// flows through the unifier's reference/existential promotion rules.
type Info struct {
	Type   Type
	Region region.Region
}
