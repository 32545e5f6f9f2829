/*
Copyright 2014 The Camlistore Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fmrt

import "sync"

// Registry holds up to MaxTables tables, identified by small integer
// IDs, the way the original library kept one fixed global table array.
// Unlike that global, a Registry here is just a value a caller
// constructs and owns — there is no package-level singleton — but it
// plays the same "family of named, interchangeable stores" role that
// pkg/sorted's backend registry does, minus the pluggable-backend part:
// every table in a Registry is the same arena-backed AVL implementation.
type Registry struct {
	mu     sync.Mutex
	tables [MaxTables]*Table
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefineTable reserves id for a new table named name with the given
// capacity (number of rows it may ever hold). It fails with
// MaxTablesReached if id is out of range, IDAlreadyExists if id is
// already in use, or Generic if capacity is zero or exceeds
// MaxCapacity.
func (r *Registry) DefineTable(id uint8, name string, capacity uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) >= MaxTables {
		return resultErr(MaxTablesReached)
	}
	if r.tables[id] != nil {
		return resultErr(IDAlreadyExists)
	}
	if capacity < 1 || capacity > MaxCapacity {
		return resultErr(Generic)
	}
	r.tables[id] = &Table{
		id:     id,
		status: statusDefined,
		schema: Schema{
			ID:       id,
			Name:     truncateName(name, MaxTableNameLen),
			Capacity: capacity,
		},
	}
	return nil
}

// ClearTable removes table id entirely, releasing its arena. A
// subsequent DefineTable may reuse the id. It fails with IDNotFound if
// id does not name a defined table.
func (r *Registry) ClearTable(id uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) >= MaxTables || r.tables[id] == nil {
		return resultErr(IDNotFound)
	}
	r.tables[id] = nil
	return nil
}

// Table returns the table registered under id, or nil with IDNotFound
// if none is defined there.
func (r *Registry) Table(id uint8) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) >= MaxTables || r.tables[id] == nil {
		return nil, resultErr(IDNotFound)
	}
	return r.tables[id], nil
}

// DefineKey declares table id's key field. See Table.defineKey.
func (r *Registry) DefineKey(id uint8, name string, kind Kind, stringLen int) error {
	t, err := r.Table(id)
	if err != nil {
		return err
	}
	return resultErr(t.defineKey(name, kind, stringLen))
}

// DefineFields declares table id's non-key fields, in order. See
// Table.defineFields.
func (r *Registry) DefineFields(id uint8, fields []FieldDescriptor) error {
	t, err := r.Table(id)
	if err != nil {
		return err
	}
	return resultErr(t.defineFields(fields))
}

// IDs returns the ids of every currently defined table, in ascending
// order.
func (r *Registry) IDs() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint8
	for i, t := range r.tables {
		if t != nil {
			ids = append(ids, uint8(i))
		}
	}
	return ids
}
