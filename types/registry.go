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

// BaseRecord is the type registry's per-base-type entry: the node itself and
// the set of classes it has been declared to implement.
type BaseRecord struct {
	Base        *Base
	Implemented ConstraintSet
}

// Registry is the global mapping from base-type name to its record, and from
// class name to class handle. It also owns the pre-registered `fn` and `ref`
// generic schemes shared by every function/reference node constructed during
// inference.
//
// The registry is populated before inference starts; DeclareBase and
// DeclareClass are expected to run during setup. ImplementClass is the one
// mutation permitted afterwards (adding an instance to an already-registered
// base type).
type Registry struct {
	bases       map[string]*BaseRecord
	classes     map[string]*Class
	nextClassID int

	FnBase    *Base
	RefBase   *Base
	FnScheme  *Scheme
	RefScheme *Scheme
}

// NewRegistry creates a registry with the synthetic `fn` and `ref` bases and
// their generic schemes pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		bases:   make(map[string]*BaseRecord, 8),
		classes: make(map[string]*Class, 8),
	}
	r.FnBase = &Base{Name: "fn"}
	r.RefBase = &Base{Name: "ref"}

	fnParam, fnReturn := &Param{Index: 0}, &Param{Index: 1}
	r.FnScheme = &Scheme{
		TypeParams: []*Param{fnParam, fnReturn},
		Body:       &Function{FnBase: r.FnBase, Param: fnParam, Return: fnReturn},
	}

	refParam := &Param{Index: 0}
	refRegion := &region.Param{Index: 0}
	r.RefScheme = &Scheme{
		TypeParams:   []*Param{refParam},
		RegionParams: []*region.Param{refRegion},
		Body:         &Ref{RefBase: r.RefBase, Elem: refParam, Region: refRegion},
	}
	return r
}

// DeclareBase registers a new primitive base type.
func (r *Registry) DeclareBase(name string) (*Base, error) {
	if _, exists := r.bases[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateBase, "%q", name)
	}
	b := &Base{Name: name}
	r.bases[name] = &BaseRecord{Base: b}
	return b, nil
}

// LookupBase returns the record for a previously declared base type.
func (r *Registry) LookupBase(name string) (*BaseRecord, error) {
	rec, ok := r.bases[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBase, "%q", name)
	}
	return rec, nil
}

// DeclareClass registers a new type-class. build receives the class's fresh
// selfParam (a constraint-free Param at index 0) and must return the class's
// method declarations, each mentioning selfParam wherever the implementing
// value is expected. methodOrder fixes iteration order for diagnostics and
// must list exactly the keys returned by build.
func (r *Registry) DeclareClass(name string, bases []*Class, build func(self *Param) MethodSet, methodOrder []string) (*Class, error) {
	if _, exists := r.classes[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateClass, "%q", name)
	}
	self := &Param{Index: 0}
	methods := build(self)
	id := r.nextClassID
	r.nextClassID++
	class := NewClass(id, name, bases, self, methods, methodOrder)
	r.classes[name] = class
	return class, nil
}

// LookupClass returns a previously declared class by name.
func (r *Registry) LookupClass(name string) (*Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, errors.Errorf("class not declared: %q", name)
	}
	return c, nil
}

// ImplementClass declares that the base type implements class (and,
// transitively, every base of class). This is the one registry mutation
// permitted after inference has started.
func (r *Registry) ImplementClass(baseName string, class *Class) error {
	rec, err := r.LookupBase(baseName)
	if err != nil {
		return err
	}
	rec.Implemented = rec.Implemented.Merge(class)
	return nil
}

// ClassList computes the constraint set a type is known to satisfy: for
// Variable and Param, their own constraints; for Existential, the embedded
// set; for Ref, the referent's class list (a reference implements whatever
// its referent implements); for Function, the Implemented set of its FnBase
// when that base is registered and an empty set otherwise; otherwise the base
// type's registered Implemented set.
func (r *Registry) ClassList(t Type) (ConstraintSet, error) {
	switch t := Repr(t).(type) {
	case *Var:
		return t.Constraints(), nil
	case *Param:
		return t.Constraints, nil
	case *Existential:
		return t.Classes, nil
	case *Ref:
		return r.ClassList(t.Elem)
	case *Base:
		rec, err := r.LookupBase(t.Name)
		if err != nil {
			return nil, err
		}
		return rec.Implemented, nil
	case *Function:
		if t.FnBase != nil {
			if rec, ok := r.bases[t.FnBase.Name]; ok {
				return rec.Implemented, nil
			}
		}
		return nil, nil
	default:
		return nil, errors.Errorf("type has no class list: %s", t.TypeName())
	}
}

// ApplyConstraint requires t to implement every class in classes: t is
// unwrapped of any outer Ref layers first (a reference satisfies whatever its
// referent does); a Variable simply has classes merged into its constraint
// set; any other type is checked against its class list, with a distinct
// error when the failing node is an under-constrained generic Param.
func (r *Registry) ApplyConstraint(t Type, classes ConstraintSet) error {
	t = UnwrapRef(t)
	if v, ok := t.(*Var); ok {
		v.MergeConstraints(classes)
		return nil
	}
	list, err := r.ClassList(t)
	if err != nil {
		return err
	}
	for _, want := range classes {
		if list.Has(want) {
			continue
		}
		if p, ok := t.(*Param); ok {
			return errors.Wrapf(ErrGenericNeedsConstraint, "parameter %d requires class %q", p.Index, want.Name)
		}
		return errors.Wrapf(ErrConstraintNotSatisfied, "%s does not implement class %q", t.TypeName(), want.Name)
	}
	return nil
}

// InstantiateClassMethod builds the declared type of owner's method, with
// every occurrence of owner.SelfParam substituted by self. The caller
// (poly.getClassMethod) is responsible for then unifying the resulting
// function's first parameter against the receiver's Info, validating
// reference-vs-value calling and obtaining the curried remainder.
func InstantiateClassMethod(owner *Class, name string, self Type) (Type, error) {
	decl, ok := owner.Methods[name]
	if !ok {
		return nil, errors.Errorf("class %q does not declare method %q", owner.Name, name)
	}
	return substituteSelf(decl, owner.SelfParam, self), nil
}

func substituteSelf(t Type, self *Param, with Type) Type {
	switch t := t.(type) {
	case *Param:
		if t == self {
			return with
		}
		return t
	case *Function:
		return &Function{FnBase: t.FnBase, Param: substituteSelf(t.Param, self, with), Return: substituteSelf(t.Return, self, with)}
	case *Ref:
		return &Ref{RefBase: t.RefBase, Elem: substituteSelf(t.Elem, self, with), Region: t.Region}
	default:
		return t
	}
}
