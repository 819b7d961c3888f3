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
)

// Binding is what an identifier is bound to in a Frame: either a monomorphic
// Type or a generalized Scheme, together with the region where the
// identifier itself lives (not the region of its type, for a Ref-typed
// binding).
type Binding struct {
	Type   types.Type
	Scheme *types.Scheme
	Region region.Region
}

// Frame is a lexically-linked environment frame. The root frame has depth 1;
// each Lambda/Let/Letrec body that opens a child scope allocates depth+1.
// Frame implements region.EnvHandle so the region lattice can decide
// containment without importing this package.
type Frame struct {
	parent   *Frame
	depth    int
	bindings map[string]Binding
}

// NewRootFrame creates the outermost frame, at depth 1.
func NewRootFrame() *Frame {
	return &Frame{depth: 1, bindings: make(map[string]Binding)}
}

// PushFrame opens a child frame one depth deeper than f.
func (f *Frame) PushFrame() *Frame {
	return &Frame{parent: f, depth: f.depth + 1, bindings: make(map[string]Binding)}
}

// EnvDepth implements region.EnvHandle.
func (f *Frame) EnvDepth() int { return f.depth }

// EnvContains implements region.EnvHandle: reports whether other is f itself
// or an ancestor of f.
func (f *Frame) EnvContains(other region.EnvHandle) bool {
	target, ok := other.(*Frame)
	if !ok {
		return false
	}
	for cur := f; cur != nil; cur = cur.parent {
		if cur == target {
			return true
		}
	}
	return false
}

// Bind installs name in the current frame, shadowing any binding of the same
// name in an ancestor frame.
func (f *Frame) Bind(name string, b Binding) {
	f.bindings[name] = b
}

// BoundHere reports whether name is bound directly in f, without consulting
// ancestors. Let/Letrec use this to detect same-scope redefinition.
func (f *Frame) BoundHere(name string) bool {
	_, ok := f.bindings[name]
	return ok
}

// Lookup resolves name by walking f and its ancestors outward.
func (f *Frame) Lookup(name string) (Binding, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}
