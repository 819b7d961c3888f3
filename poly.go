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

// poly provides Hindley-Milner type inference for a small expression
// language with generic type classes and region-tracked references.
//
// Two dual algorithms are provided over the same expression tree: Algorithm
// J synthesizes a type bottom-up with no outside expectation, while
// Algorithm M checks an expression against an expected type top-down,
// narrowing the region each subexpression's value actually lives in as it
// goes. Both are exposed as free functions switching over ast.Expr rather
// than as virtual methods, so the tree itself stays free of any inference
// state beyond the single *types.Info slot each node is annotated with once
// visited.
//
// Supported features:
//
//   - Let/letrec-polymorphic generalization with efficient, depth-based
//     level tracking (no separate occurs-pass over the whole environment)
//   - User-declared generic signatures on let/letrec bindings
//   - Type classes: single-dispatch class methods with multiple inheritance
//     and ambiguity detection, resolved against a type's implemented set
//   - Mutable references tracked by a region lattice (Temporary < Base <
//     Variable, plus incomparable generic Params), with implicit promotion
//     of a value into a reference or into a type-class existential
//   - Dangling-reference rejection: a lambda cannot return a reference into
//     its own parameter scope or an enclosing one, and a let/letrec cannot
//     bind a reference to a temporary
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Region-based memory management: https://en.wikipedia.org/wiki/Region-based_memory_management
package poly
