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
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxCSVLineLen bounds a single input line, matching the original
// library's fixed-size line buffer. A line longer than this is a read
// error, not a silent truncation.
const maxCSVLineLen = 1200

// ImportCSV reads key/field rows separated by sep from r and inserts or
// overwrites them (matching a row's key finds an existing row, its
// fields are overwritten wholesale; otherwise a new row is inserted).
// Blank lines and lines whose first non-blank character is '#' are
// skipped. It returns the number of lines read, up to and including the
// line at which a parse or capacity error stopped the scan, or up to EOF
// on success. Rows already applied before
// an error stops the scan are retained, exactly as the original CSV
// importer leaves earlier-inserted elements in place.
func (t *Table) ImportCSV(r io.Reader, sep byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxCSVLineLen), maxCSVLineLen)

	lines := 0
	for scanner.Scan() {
		lines++
		trimmed := strings.TrimLeft(scanner.Text(), " \t")
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}

		parts := strings.Split(trimmed, string(sep))
		if len(parts) < 1+len(t.schema.Fields) {
			return lines, resultErr(Generic)
		}

		key := t.schema.Key.Kind.Parse(parts[0], t.schema.Key.StringLen)
		fields := make([]Value, len(t.schema.Fields))
		for i, f := range t.schema.Fields {
			fields[i] = f.Kind.Parse(parts[1+i], f.StringLen)
		}

		if res := t.ensureArena(); res != Ok {
			return lines, resultErr(res)
		}
		stack, found := t.searchStack(key)
		if found {
			t.applyMask(t.arena.slot(stack[len(stack)-1].index), AllFields(len(t.schema.Fields)), fields)
			continue
		}
		idx := t.arena.takeEmpty(&t.freeHead)
		if idx == noneIndex {
			return lines, resultErr(OutOfMemory)
		}
		t.writeRow(t.arena.slot(idx), key, fields)
		t.insertAt(stack, idx)
		t.count++
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return lines + 1, resultErr(Generic)
		}
		return lines, errors.Wrap(err, "fmrt: reading csv")
	}
	return lines, nil
}

// ExportCSV writes every row, in ascending (reverse=false) or
// descending (reverse=true) key order, as one sep-separated line per
// row: key first, then fields in declaration order.
func (t *Table) ExportCSV(w io.Writer, sep byte, reverse bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exportLocked(w, sep, reverse, nil, nil)
}

// ExportRangeCSV is ExportCSV restricted to rows whose key lies in
// [min, max], pruning subtrees outside the range rather than filtering
// after a full traversal. It fails with Generic if min sorts after max.
func (t *Table) ExportRangeCSV(w io.Writer, sep byte, reverse bool, min, max Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.schema.Key.Kind == KindString {
		min = t.schema.Key.Kind.Parse(min.s, t.schema.Key.StringLen)
		max = t.schema.Key.Kind.Parse(max.s, t.schema.Key.StringLen)
	}
	if t.schema.Key.Kind.Compare(min, max) > 0 {
		return resultErr(Generic)
	}
	return t.exportLocked(w, sep, reverse, &min, &max)
}

// writeHeader emits the two leading comment lines every export begins
// with: the table's name and id, then the key and field names in
// declaration order, so a human (or a re-import that chooses to peek)
// can see the schema a row stream was produced under.
func (t *Table) writeHeader(bw *bufio.Writer, sep byte) error {
	if _, err := bw.WriteString("#Table: " + t.schema.Name + " (Id: " + strconv.FormatUint(uint64(t.schema.ID), 10) + ")\n"); err != nil {
		return errors.Wrap(err, "fmrt: writing csv header")
	}
	names := make([]string, 0, 1+len(t.schema.Fields))
	names = append(names, t.schema.Key.Name)
	for _, f := range t.schema.Fields {
		names = append(names, f.Name)
	}
	_, err := bw.WriteString("#" + strings.Join(names, string(sep)) + "\n")
	return errors.Wrap(err, "fmrt: writing csv header")
}

func (t *Table) exportLocked(w io.Writer, sep byte, reverse bool, min, max *Value) error {
	bw := bufio.NewWriter(w)
	if err := t.writeHeader(bw, sep); err != nil {
		return err
	}
	if t.arena == nil {
		return bw.Flush()
	}
	var writeErr error
	visit := func(slot []byte) {
		if writeErr != nil {
			return
		}
		row := make([]string, 0, 1+len(t.schema.Fields))
		row = append(row, t.schema.Key.Kind.Format(t.readKey(slot), t.schema.Key.StringLen))
		for _, f := range t.schema.Fields {
			row = append(row, f.Kind.Format(readValue(slot, f.offset, f.Kind, f.StringLen), f.StringLen))
		}
		if _, err := bw.WriteString(strings.Join(row, string(sep)) + "\n"); err != nil {
			writeErr = errors.Wrap(err, "fmrt: writing csv")
		}
	}
	if min != nil {
		t.walkRange(reverse, *min, *max, visit)
	} else {
		t.walk(reverse, visit)
	}
	if writeErr != nil {
		return writeErr
	}
	return bw.Flush()
}

// ImportJob names one table's CSV source for ImportCSVAll.
type ImportJob struct {
	ID        uint8
	Reader    io.Reader
	Separator byte
}

// ImportCSVAll imports every job concurrently, one goroutine per table,
// the way a deployment with many independent polling-center feeds would
// load them into their respective tables at once. It returns the lines
// read per job (indexed the same as jobs) and the first error
// encountered across all of them; ctx cancellation stops jobs that have
// not yet started reading.
func ImportCSVAll(ctx context.Context, reg *Registry, jobs []ImportJob) ([]int, error) {
	lines := make([]int, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := reg.Table(job.ID)
			if err != nil {
				return err
			}
			n, err := t.ImportCSV(job.Reader, job.Separator)
			lines[i] = n
			return err
		})
	}
	err := g.Wait()
	return lines, err
}
