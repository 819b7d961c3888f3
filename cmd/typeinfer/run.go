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

package main

import (
	"fmt"
	"os"
	"path/filepath"

	poly "github.com/168iroha/typeinfer"
	"github.com/168iroha/typeinfer/typeenv"
	"github.com/168iroha/typeinfer/types"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Build and run one of the built-in demo scenarios (s1-s8)",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().String("fixtures-dir", "fixtures", "directory holding the bundled registry fixtures")
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := findScenario(args[0])
	if err != nil {
		return err
	}

	fixturesDir, err := cmd.Flags().GetString("fixtures-dir")
	if err != nil {
		return err
	}
	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(fixturesDir, scenario.Fixture))
	if err != nil {
		return fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()

	cfg, err := typeenv.Load(f)
	if err != nil {
		return err
	}
	reg, err := typeenv.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrapping registry: %w", err)
	}

	ctx := poly.NewInferenceContext(reg)
	if trace {
		ctx = ctx.WithLogger(poly.NewConsoleLogger(os.Stderr))
	}

	expr, err := scenario.Build(reg, ctx)
	if err != nil {
		return fmt.Errorf("building %s: %w", scenario.Name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", scenario.Name, scenario.Description)
	info, err := ctx.Infer(expr)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  rejected: %v\n", err)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  inferred: %s\n", types.TypeString(info.Type))
	return nil
}
