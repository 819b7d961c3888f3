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

import "github.com/pkg/errors"

// Class is a parameterized type-class declaration: a named set of methods
// whose first argument is always SelfParam, optionally inheriting the
// methods of one or more base classes.
type Class struct {
	ID        int
	Name      string
	Bases     []*Class
	SelfParam *Param
	Methods   MethodSet
	// methodOrder fixes the iteration order of Methods for deterministic
	// diagnostics, independent of Go's randomized map iteration.
	methodOrder []string
}

// MethodSet maps a class-method name to its declared type. The declared type
// mentions the class's SelfParam wherever the implementing value would
// appear; InstantiateClassMethod substitutes a concrete receiver for every
// occurrence.
type MethodSet map[string]Type

// NewClass declares a new type-class. methodOrder fixes the iteration order
// used for diagnostics; it must list exactly the keys of methods.
func NewClass(id int, name string, bases []*Class, selfParam *Param, methods MethodSet, methodOrder []string) *Class {
	return &Class{ID: id, Name: name, Bases: bases, SelfParam: selfParam, Methods: methods, methodOrder: methodOrder}
}

// MethodNames returns method names in declaration order.
func (c *Class) MethodNames() []string { return c.methodOrder }

// Derived reports whether target is self itself or reachable from self by
// following Bases transitively (self "derives from" target).
func Derived(self, target *Class) bool {
	return derived(self, target, make(map[int]bool, 8))
}

func derived(self, target *Class, seen map[int]bool) bool {
	if self == target {
		return true
	}
	if seen[self.ID] {
		return false
	}
	seen[self.ID] = true
	for _, base := range self.Bases {
		if derived(base, target, seen) {
			return true
		}
	}
	return false
}

// ConstraintSet is an ordered, deduplicated set of classes: no element is a
// proper ancestor (base) of another, because Merge absorbs ancestors into
// the more specific descendant already present.
type ConstraintSet []*Class

// Has reports whether some element of the set is class or a descendant of
// class.
func (cs ConstraintSet) Has(class *Class) bool {
	for _, c := range cs {
		if Derived(c, class) {
			return true
		}
	}
	return false
}

// Merge folds extra classes into the set: a new class already subsumed by an
// existing element (the existing element is that class or a descendant of
// it) is skipped; a new class that subsumes an existing element replaces it;
// otherwise the new class is appended. The reflexive case of Derived makes an
// explicit equality check unnecessary.
func (cs ConstraintSet) Merge(extra ...*Class) ConstraintSet {
	for _, c := range extra {
		cs = mergeOne(cs, c)
	}
	return cs
}

func mergeOne(cs ConstraintSet, c *Class) ConstraintSet {
	for i, existing := range cs {
		if Derived(existing, c) {
			return cs
		}
		if Derived(c, existing) {
			out := make(ConstraintSet, len(cs))
			copy(out, cs)
			out[i] = c
			return out
		}
	}
	out := make(ConstraintSet, len(cs), len(cs)+1)
	copy(out, cs)
	return append(out, c)
}

// Equal reports whether two constraint sets carry the same classes, ignoring
// order. Used by the unifier to decide whether a TypeClass-to-TypeClass
// unification narrows the existential's class set.
func (cs ConstraintSet) Equal(other ConstraintSet) bool {
	if len(cs) != len(other) {
		return false
	}
	for _, c := range cs {
		found := false
		for _, o := range other {
			if c == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MethodMatch is the result of resolving a method name through a
// ConstraintSet: Class is the element of the set that owns or inherits the
// method, Owner is the class that actually declares it (equal to Class
// unless the method was only found through a base).
type MethodMatch struct {
	Class *Class
	Owner *Class
}

// LookupMethod finds the class in cs (or its transitive bases) that declares
// name. Two unrelated classes in cs both declaring name is reported as
// ambiguous; when one is a descendant of the other, the descendant is
// preferred (it may override/refine the signature).
func (cs ConstraintSet) LookupMethod(name string) (*MethodMatch, error) {
	var best *MethodMatch
	for _, c := range cs {
		owner := findMethodOwner(c, name, make(map[int]bool, 8))
		if owner == nil {
			continue
		}
		cand := &MethodMatch{Class: c, Owner: owner}
		switch {
		case best == nil:
			best = cand
		case Derived(cand.Class, best.Class):
			best = cand
		case Derived(best.Class, cand.Class):
			// best is already the more specific match
		default:
			return nil, errors.Wrapf(ErrClassMethodAmbiguous, "%q is provided by unrelated classes %q and %q", name, best.Class.Name, cand.Class.Name)
		}
	}
	if best == nil {
		return nil, errors.Wrapf(ErrClassMethodNotImplemented, "%q", name)
	}
	return best, nil
}

func findMethodOwner(c *Class, name string, seen map[int]bool) *Class {
	if seen[c.ID] {
		return nil
	}
	seen[c.ID] = true
	if _, ok := c.Methods[name]; ok {
		return c
	}
	for _, base := range c.Bases {
		if owner := findMethodOwner(base, name, seen); owner != nil {
			return owner
		}
	}
	return nil
}
