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

// Package fmrt implements fast, memory-resident, ordered keyed tables.
//
// Each table is a self-balancing AVL tree whose nodes live in a fixed-size
// arena allocated on first insertion. A table stores a single typed key
// (one of six scalar kinds) plus an ordered tuple of typed fields, and
// offers logarithmic point access, range scans, bulk CSV import/export and
// concurrent mutation with per-table locking.
//
// The package is organized the way it would be if it were one more
// interchangeable backend in a family of ordered key-value stores: a
// Registry holds a fixed number of independently locked Tables, addressed
// by a small integer id, the way a storage package might keep a registry
// of constructors for pluggable backends. Unlike such a registry, the set
// of "backends" here is closed: there is exactly one table implementation,
// the arena-backed AVL tree described above.
package fmrt
