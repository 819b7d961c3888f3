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

// Package typeenv builds a types.Registry declaratively from a YAML fixture,
// instead of the hand-written Go constructors the registry otherwise expects.
// It exists so demo scenarios and tests can describe a base-type/class/instance
// universe as data rather than as Go call sequences.
package typeenv

import (
	"io"

	"github.com/168iroha/typeinfer/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MethodConfig declares one method of a class: its name and its arrow-syntax
// declared type, written with "self" standing in for the class's SelfParam.
type MethodConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ClassConfig declares one type-class. Bases must name classes declared
// earlier in Classes (forward references are rejected), mirroring the
// registry's own requirement that a class's bases already exist.
type ClassConfig struct {
	Name    string         `yaml:"name"`
	Bases   []string       `yaml:"bases,omitempty"`
	Methods []MethodConfig `yaml:"methods"`
}

// InstanceConfig declares that a base type implements a class. Methods is
// optional metadata binding each class method name to the name of an
// environment identifier that implements it; Bootstrap validates that every
// key names a method the class actually declares (through inheritance or
// not) but otherwise does not interpret it, since this registry is a
// type-level structure with no evaluator behind it.
type InstanceConfig struct {
	Type    string            `yaml:"type"`
	Class   string            `yaml:"class"`
	Methods map[string]string `yaml:"methods,omitempty"`
}

// BootstrapConfig is the top-level shape of a registry fixture: a flat list
// of base types, followed by classes (which may only reference bases
// declared earlier in Classes) and instances (which may reference any base
// or class, since ImplementClass is a post-setup registry mutation).
type BootstrapConfig struct {
	Bases     []string         `yaml:"bases"`
	Classes   []ClassConfig    `yaml:"classes,omitempty"`
	Instances []InstanceConfig `yaml:"instances,omitempty"`
}

// Load unmarshals a BootstrapConfig from YAML.
func Load(r io.Reader) (BootstrapConfig, error) {
	var cfg BootstrapConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return BootstrapConfig{}, errors.Wrap(err, "typeenv: decoding fixture")
	}
	return cfg, nil
}

// Bootstrap builds a fresh types.Registry from cfg: bases first, then
// classes in declaration order (each class's method signatures are parsed
// with its own SelfParam bound to "self"), then instances.
func Bootstrap(cfg BootstrapConfig) (*types.Registry, error) {
	reg := types.NewRegistry()

	for _, name := range cfg.Bases {
		if _, err := reg.DeclareBase(name); err != nil {
			return nil, err
		}
	}

	classesByName := make(map[string]*types.Class, len(cfg.Classes))
	for _, cc := range cfg.Classes {
		bases, err := resolveBases(cc, classesByName)
		if err != nil {
			return nil, err
		}
		class, err := declareClass(reg, cc, bases)
		if err != nil {
			return nil, errors.Wrapf(err, "class %q", cc.Name)
		}
		classesByName[cc.Name] = class
	}

	for _, ic := range cfg.Instances {
		if err := declareInstance(reg, classesByName, ic); err != nil {
			return nil, errors.Wrapf(err, "instance %q for class %q", ic.Type, ic.Class)
		}
	}

	return reg, nil
}

func resolveBases(cc ClassConfig, classesByName map[string]*types.Class) ([]*types.Class, error) {
	bases := make([]*types.Class, 0, len(cc.Bases))
	for _, name := range cc.Bases {
		base, ok := classesByName[name]
		if !ok {
			return nil, errors.Errorf("class %q: base class %q must be declared earlier", cc.Name, name)
		}
		bases = append(bases, base)
	}
	return bases, nil
}

func declareClass(reg *types.Registry, cc ClassConfig, bases []*types.Class) (*types.Class, error) {
	names := make([]string, len(cc.Methods))
	for i, m := range cc.Methods {
		names[i] = m.Name
	}

	var parseErr error
	build := func(self *types.Param) types.MethodSet {
		methods := make(types.MethodSet, len(cc.Methods))
		for _, m := range cc.Methods {
			t, err := parseTypeExpr(m.Type, reg, self)
			if err != nil && parseErr == nil {
				parseErr = errors.Wrapf(err, "method %q", m.Name)
			}
			methods[m.Name] = t
		}
		return methods
	}

	class, err := reg.DeclareClass(cc.Name, bases, build, names)
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return class, nil
}

func declareInstance(reg *types.Registry, classesByName map[string]*types.Class, ic InstanceConfig) error {
	class, ok := classesByName[ic.Class]
	if !ok {
		return errors.Errorf("unknown class %q", ic.Class)
	}
	if err := reg.ImplementClass(ic.Type, class); err != nil {
		return err
	}
	for method := range ic.Methods {
		if _, err := (types.ConstraintSet{class}).LookupMethod(method); err != nil {
			return errors.Wrapf(err, "binding for method %q", method)
		}
	}
	return nil
}
