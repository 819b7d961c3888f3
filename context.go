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
	"github.com/rs/zerolog"
)

// InferenceContext owns everything a single top-level inference call needs:
// the type registry, a fresh-id counter shared between type and region
// variables, and an optional structured logger. A context is not safe for
// concurrent use; callers running inference on independent ASTs concurrently
// must each hold their own context and registry.
type InferenceContext struct {
	Registry *types.Registry
	nextID   int
	log      *zerolog.Logger
}

// NewInferenceContext creates a context bound to registry. The registry must
// already carry every base type and class the AST will reference; no
// further DeclareBase/DeclareClass calls are expected once inference starts.
func NewInferenceContext(registry *types.Registry) *InferenceContext {
	return &InferenceContext{Registry: registry}
}

// WithLogger attaches a structured logger used for inference-step tracing.
// A nil logger (the default) disables tracing entirely; WithLogger is safe to
// skip for callers that don't care about it.
func (ctx *InferenceContext) WithLogger(log *zerolog.Logger) *InferenceContext {
	ctx.log = log
	return ctx
}

func (ctx *InferenceContext) freshID() int {
	id := ctx.nextID
	ctx.nextID++
	return id
}

// NewTypeVar allocates an unbound type unification variable at depth, and
// satisfies types.Fresh for Instantiate.
func (ctx *InferenceContext) NewTypeVar(depth int) *types.Var {
	return types.NewVar(ctx.freshID(), depth)
}

// NewRegionVar allocates an unbound region unification variable at depth,
// and satisfies types.Fresh for Instantiate.
func (ctx *InferenceContext) NewRegionVar(depth int) *region.Var {
	return region.NewVar(ctx.freshID(), depth)
}

// Generalize promotes t's free variables (those introduced deeper than
// envDepth) to a scheme, with preParams/preRegionParams pinning any
// user-declared parameter names to their slots ahead of time.
func (ctx *InferenceContext) Generalize(envDepth int, t types.Type, preParams []*types.Param, preRegionParams []*region.Param) (*types.Scheme, bool) {
	return types.Generalize(envDepth, t, preParams, preRegionParams)
}

// Instantiate allocates fresh variables for scheme's parameters (or uses the
// supplied arguments) at depth, and copies the body.
func (ctx *InferenceContext) Instantiate(scheme *types.Scheme, typeArgs []types.Type, regionArgs []region.Region, depth int) (types.Type, error) {
	return types.Instantiate(ctx.Registry, scheme, typeArgs, regionArgs, depth, ctx)
}

func (ctx *InferenceContext) trace(msg string, fields map[string]interface{}) {
	if ctx.log == nil {
		return
	}
	ev := ctx.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
