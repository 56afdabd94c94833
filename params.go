// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package trail

import "iter"

type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of route parameters. Keys are unique and keep the position
// of their first insertion.
type Params []Param

// Get returns the value of the parameter by name and reports whether it exists.
func (p Params) Get(name string) (any, bool) {
	for i := range p {
		if p[i].Key == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

// Has checks whether the parameter exists by name.
func (p Params) Has(name string) bool {
	for i := range p {
		if p[i].Key == name {
			return true
		}
	}

	return false
}

// Set returns p with the parameter name set to value. An existing parameter is overwritten in place.
func (p Params) Set(name string, value any) Params {
	for i := range p {
		if p[i].Key == name {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: name, Value: value})
}

// All returns an iterator over all parameters in insertion order.
func (p Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, param := range p {
			if !yield(param.Key, param.Value) {
				return
			}
		}
	}
}

// Clone make a copy of Params.
func (p Params) Clone() Params {
	cloned := make(Params, len(p))
	copy(cloned, p)
	return cloned
}
