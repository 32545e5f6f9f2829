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

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go4.org/jsonconfig"
)

// ConfigureTable declares and populates one table's schema from a single
// jsonconfig.Obj, the way a storage backend takes its connection
// parameters from a jsonconfig.Obj handed to a constructor rather than a
// sequence of individual setter calls. It is additive sugar over
// DefineTable/DefineKey/DefineFields: nothing it does cannot also be
// done with those three calls directly.
//
// Expected shape:
//
//	{
//	  "id": 0,
//	  "name": "dictionary",
//	  "capacity": 1000,
//	  "key": {"name": "word", "type": "string", "len": 32},
//	  "fields": ["count:uint32", "gloss:string:48"]
//	}
//
// Each fields entry is "name:type" for fixed-width kinds or
// "name:type:len" for string kinds, mirroring the compact colon-joined
// option strings found elsewhere in backend configs (e.g. "host:port"
// pairs). Unknown top-level keys are rejected by cfg.Validate().
func ConfigureTable(reg *Registry, cfg jsonconfig.Obj) error {
	id := cfg.RequiredInt("id")
	name := cfg.RequiredString("name")
	capacity := cfg.RequiredInt("capacity")
	keyObj := cfg.RequiredObject("key")
	fieldSpecs := cfg.RequiredList("fields")
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "fmrt: invalid table config")
	}

	keyKind, keyLen, err := parseFieldSpec(keyObj.RequiredString("name") + ":" + keyObj.RequiredString("type") + optionalLenSuffix(keyObj))
	if err != nil {
		return errors.Wrapf(err, "fmrt: table %q key", name)
	}
	keyName := keyObj.RequiredString("name")
	if err := keyObj.Validate(); err != nil {
		return errors.Wrapf(err, "fmrt: table %q key", name)
	}

	if id < 0 || id > 0xFF || capacity < 0 {
		return errors.Errorf("fmrt: table %q: id/capacity out of range", name)
	}
	if err := reg.DefineTable(uint8(id), name, uint32(capacity)); err != nil {
		return err
	}
	if err := reg.DefineKey(uint8(id), keyName, keyKind, keyLen); err != nil {
		return err
	}

	fields := make([]FieldDescriptor, 0, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		fname, fkind, flen, err := parseNamedFieldSpec(spec)
		if err != nil {
			return errors.Wrapf(err, "fmrt: table %q field %q", name, spec)
		}
		fields = append(fields, FieldDescriptor{Name: fname, Kind: fkind, StringLen: flen})
	}
	return reg.DefineFields(uint8(id), fields)
}

// optionalLenSuffix renders keyObj's optional "len" entry as a
// ":<len>" suffix, or "" when absent, so the key object can be parsed
// with the same colon-joined grammar as a field spec.
func optionalLenSuffix(keyObj jsonconfig.Obj) string {
	n := keyObj.OptionalInt("len", 0)
	if n == 0 {
		return ""
	}
	return ":" + strconv.Itoa(n)
}

// parseNamedFieldSpec splits a "name:type[:len]" field spec into its
// name plus the parsed kind/length pair.
func parseNamedFieldSpec(spec string) (name string, kind Kind, length int, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return "", 0, 0, errors.Errorf("malformed field spec %q, want name:type[:len]", spec)
	}
	kind, length, err = parseFieldSpec(parts[0] + ":" + parts[1])
	return parts[0], kind, length, err
}

// parseFieldSpec parses a whole "name:type[:len]" field or key spec and
// returns its kind and length; the name part is ignored.
func parseFieldSpec(spec string) (Kind, int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return 0, 0, errors.Errorf("malformed field spec %q, want name:type[:len]", spec)
	}
	typeName := parts[1]
	kind, ok := kindByName[typeName]
	if !ok {
		return 0, 0, errors.Errorf("unknown field type %q", typeName)
	}
	length := 0
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, errors.Wrapf(err, "malformed string length in field spec %q", spec)
		}
		length = n
	}
	return kind, length, nil
}

var kindByName = map[string]Kind{
	"uint32":    KindUInt32,
	"int32":     KindInt32,
	"float64":   KindFloat64,
	"byte":      KindByte,
	"string":    KindString,
	"timestamp": KindTimestamp,
}
