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

// Result is the typed outcome of a table operation. The zero value, Ok,
// denotes success; every other value implements error so it can be
// returned (and compared against) like any other Go error, while still
// carrying the closed, legacy-style taxonomy the library's original C
// ancestor described.
type Result int

// Result values. Ok is never returned as an error (operations return nil
// on success); the rest are returned as the concrete error type.
const (
	Ok Result = iota
	Generic
	IDAlreadyExists
	IDNotFound
	MaxTablesReached
	MaxFieldsInvalid
	DuplicateKey
	NotEmpty
	NotFound
	FieldTooLong
	OutOfMemory
)

var resultText = [...]string{
	Ok:              "ok",
	Generic:         "generic failure",
	IDAlreadyExists: "table id already exists",
	IDNotFound:      "table id not found",
	MaxTablesReached: "maximum number of tables reached",
	MaxFieldsInvalid: "field count outside allowed range",
	DuplicateKey:     "key already exists",
	NotEmpty:         "table is not empty",
	NotFound:         "key not found",
	FieldTooLong:     "string length outside allowed range",
	OutOfMemory:      "table capacity exhausted",
}

func (r Result) Error() string {
	if int(r) >= 0 && int(r) < len(resultText) && resultText[r] != "" {
		return resultText[r]
	}
	return "unknown result"
}

// resultErr turns a Result into the error this package returns to
// callers: nil for Ok, the Result itself otherwise.
func resultErr(r Result) error {
	if r == Ok {
		return nil
	}
	return r
}

// AsResult extracts the Result carried by an error returned from this
// package, if any. A nil error maps to Ok; an error that wraps a Result
// via github.com/pkg/errors maps to that Result (the Cause() chain is
// followed); any other error maps to Generic.
func AsResult(err error) Result {
	if err == nil {
		return Ok
	}
	type causer interface{ Cause() error }
	for err != nil {
		if r, ok := err.(Result); ok {
			return r
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return Generic
}
