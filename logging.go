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
	"io"

	"github.com/rs/zerolog"
)

// NewConsoleLogger builds a human-readable debug logger suitable for
// WithLogger, writing timestamped lines to w. Inference itself never builds
// one of these on its own; a nil logger (the InferenceContext default)
// disables tracing entirely.
func NewConsoleLogger(w io.Writer) *zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	log := zerolog.New(console).With().Timestamp().Logger()
	return &log
}

// NewJSONLogger builds a structured, line-delimited JSON debug logger
// suitable for WithLogger, for callers that want to pipe inference traces
// into another tool rather than read them directly.
func NewJSONLogger(w io.Writer) *zerolog.Logger {
	log := zerolog.New(w).With().Timestamp().Logger()
	return &log
}
