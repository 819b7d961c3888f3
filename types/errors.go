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

// Sentinel causes classified by poly.InferenceError via errors.Is, so callers
// can match the error taxonomy without parsing message text.
var (
	ErrConstraintNotSatisfied    = errors.New("type does not implement required class")
	ErrGenericNeedsConstraint    = errors.New("generic parameter must pre-declare this constraint")
	ErrUnknownBase               = errors.New("type is not registered")
	ErrDuplicateBase             = errors.New("base type already declared")
	ErrDuplicateClass            = errors.New("class already declared")
	ErrClassMethodAmbiguous      = errors.New("class method not unique")
	ErrClassMethodNotImplemented = errors.New("class method not implemented")
)
