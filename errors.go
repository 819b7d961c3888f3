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
	"fmt"

	"github.com/168iroha/typeinfer/ast"
	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
)

// Sentinel causes for failure modes that originate in this package, rather
// than in types or region. Every inference failure is classified into a Kind
// by matching against these and the sentinels in types/errors.go.
var (
	ErrUnknownIdentifier  = errors.New("unknown identifier")
	ErrKindMismatch       = errors.New("kind mismatch")
	ErrRecursiveUnification = errors.New("recursive unification")
	ErrIdentifierRedefined  = errors.New("identifier duplicated in scope")
	ErrDangling             = errors.New("dangling")
)

// Kind classifies an InferenceError into the taxonomy of error handling
// design: every inference failure is fatal for the current call and belongs
// to exactly one of these buckets.
type Kind int

const (
	KindInternal Kind = iota
	KindUnknownIdentifier
	KindKindMismatch
	KindRecursiveUnification
	KindConstraintNotSatisfied
	KindGenericNeedsConstraint
	KindClassMethodAmbiguous
	KindClassMethodNotImplemented
	KindIdentifierRedefined
	KindDangling
)

func (k Kind) String() string {
	switch k {
	case KindUnknownIdentifier:
		return "unknown identifier"
	case KindKindMismatch:
		return "kind mismatch"
	case KindRecursiveUnification:
		return "recursive unification"
	case KindConstraintNotSatisfied:
		return "constraint not satisfied"
	case KindGenericNeedsConstraint:
		return "generic parameter needs prior constraint"
	case KindClassMethodAmbiguous:
		return "class method ambiguous"
	case KindClassMethodNotImplemented:
		return "class method not implemented"
	case KindIdentifierRedefined:
		return "identifier redefined in scope"
	case KindDangling:
		return "dangling"
	default:
		return "internal"
	}
}

// InferenceError wraps a failure raised anywhere in the inference walk with
// the node it was raised at and a classified Kind, so callers can branch on
// the taxonomy without parsing message text.
type InferenceError struct {
	Kind  Kind
	Node  ast.Expr
	cause error
}

func (e *InferenceError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Node.ExprName(), e.cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *InferenceError) Unwrap() error { return e.cause }

// wrap classifies cause and attaches node, for errors raised at a specific
// AST node during inference. A nil cause returns nil.
func wrap(node ast.Expr, cause error) error {
	if cause == nil {
		return nil
	}
	return &InferenceError{Kind: classify(cause), Node: node, cause: cause}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrUnknownIdentifier):
		return KindUnknownIdentifier
	case errors.Is(err, ErrKindMismatch):
		return KindKindMismatch
	case errors.Is(err, ErrRecursiveUnification):
		return KindRecursiveUnification
	case errors.Is(err, ErrIdentifierRedefined):
		return KindIdentifierRedefined
	case errors.Is(err, ErrDangling):
		return KindDangling
	case errors.Is(err, types.ErrConstraintNotSatisfied):
		return KindConstraintNotSatisfied
	case errors.Is(err, types.ErrGenericNeedsConstraint):
		return KindGenericNeedsConstraint
	case errors.Is(err, types.ErrClassMethodAmbiguous):
		return KindClassMethodAmbiguous
	case errors.Is(err, types.ErrClassMethodNotImplemented):
		return KindClassMethodNotImplemented
	default:
		return KindInternal
	}
}
