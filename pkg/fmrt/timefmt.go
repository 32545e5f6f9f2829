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
	"sync/atomic"
	"time"
)

// timeFormat holds the process-wide textual layout for Timestamp values.
// An empty string selects raw decimal seconds. It is read far more often
// than written (every CSV export/import of a timestamp field consults
// it), so reads go through an atomic.Pointer rather than the table-local
// mutexes that guard everything else in this package; the format is not
// scoped to any one table (§4.7).
var timeFormat atomic.Pointer[string]

func init() {
	empty := ""
	timeFormat.Store(&empty)
}

// CurrentTimeFormat returns the active timestamp layout, or "" for raw
// decimal seconds, e.g. "2006-01-02 15:04:05".
func CurrentTimeFormat() string {
	return *timeFormat.Load()
}

// SetTimeFormat updates the process-wide timestamp layout. The format is
// accepted only if it round-trips: formatting the current time and
// parsing the result back must reproduce the same value (to the
// resolution the layout affords). Passing an empty string always
// succeeds and selects raw decimal-seconds form.
//
// The layout follows Go's reference-time convention, not POSIX strftime:
// the pattern rules themselves are an external, host-supplied concern
// (§1), and the host is a Go program.
func SetTimeFormat(layout string) error {
	if layout == "" {
		empty := ""
		timeFormat.Store(&empty)
		return nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	text := now.Format(layout)
	parsed, err := time.Parse(layout, text)
	if err != nil || !parsed.Equal(now) {
		return Generic
	}
	l := layout
	timeFormat.Store(&l)
	return nil
}

func parseTimestamp(text string) int64 {
	format := CurrentTimeFormat()
	if format == "" {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0
		}
		return v
	}
	t, err := time.Parse(format, text)
	if err != nil {
		return 0
	}
	return t.UTC().Unix()
}

func formatTimestamp(seconds int64) string {
	format := CurrentTimeFormat()
	if format == "" {
		return strconv.FormatInt(seconds, 10)
	}
	return time.Unix(seconds, 0).UTC().Format(format)
}
