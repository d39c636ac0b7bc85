/*
 * batch.go, part of goxpi
 *
 * Copyright 2025 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package batch runs the XH-pi detection pipeline over many structure
//files with a fixed-size worker pool. Files are the unit of work: each
//worker reads, prepares and scans one whole file, and a failure in one
//file never aborts the batch. The orchestrator returns one result per
//submitted file, either a record set or a failure descriptor.
package batch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	xpi "github.com/rmera/goxpi"
	"github.com/rmera/goxpi/pdbio"
	"github.com/rmera/goxpi/prep"
	"github.com/rmera/goxpi/ss"
)

//Failure describes why one file produced no records.
type Failure struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

//Result is the outcome for one input file: a record set or a failure,
//never both.
type Result struct {
	File    string
	Records []*xpi.Record
	Failure *Failure
}

//Options configures a batch run. It bundles the per-concern options of
//the pipeline stages; all of it is read-only once the run starts, so the
//workers share it without locking.
type Options struct {
	jobs    int
	verbose bool
	detect  *xpi.Options
	prep    *prep.Options
}

//DefaultOptions returns the defaults: one worker (fully sequential) and
//the stage defaults of the detection and preparation packages.
func DefaultOptions() *Options {
	return &Options{
		jobs:   1,
		detect: xpi.DefaultOptions(),
		prep:   prep.DefaultOptions(),
	}
}

//Jobs returns the worker count, after setting it to the first value
//given, if any. Values under 1 are ignored.
func (o *Options) Jobs(n ...int) int {
	if len(n) > 0 && n[0] >= 1 {
		o.jobs = n[0]
	}
	return o.jobs
}

//Verbose returns the verbosity flag, setting it first if a value is given.
func (o *Options) Verbose(v ...bool) bool {
	if len(v) > 0 {
		o.verbose = v[0]
	}
	return o.verbose
}

//Detect returns the detection options, shared by all workers.
func (o *Options) Detect() *xpi.Options { return o.detect }

//Prep returns the hydrogen preparation options, shared by all workers.
func (o *Options) Prep() *prep.Options { return o.prep }

//Validate checks the whole configuration before any file is touched. A
//failure here is fatal to the run: the batch never starts.
func (o *Options) Validate() error {
	if err := o.detect.Validate(); err != nil {
		return err
	}
	return o.prep.Validate()
}

//structFile tells whether a name looks like a structure file this
//pipeline can read, with or without gzip.
func structFile(name string) bool {
	lower := strings.ToLower(name)
	lower = strings.TrimSuffix(lower, ".gz")
	return strings.HasSuffix(lower, ".pdb") || strings.HasSuffix(lower, ".ent") ||
		strings.HasSuffix(lower, ".cif")
}

//FindFiles expands the given paths into a sorted list of structure
//files: plain files are taken as-is, directories are scanned
//recursively for anything structFile accepts. The sort keeps batch
//submission order deterministic.
func FindFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, xpi.Errorf(xpi.KindConfiguration, p, "can't stat input: %v", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && structFile(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, xpi.Errorf(xpi.KindConfiguration, p, "can't scan directory: %v", err)
		}
	}
	sort.Strings(files)
	return files, nil
}

//Run processes the files through a pool of Jobs() workers and returns
//one Result per file, in input order. Configuration problems are
//reported before any file is processed. On context cancellation the
//results collected so far are still returned, together with the
//context's error; files never started are simply absent from the
//returned slice.
func Run(ctx context.Context, files []string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	//tasks carry their submission index, so a path listed twice still
	//gets two results and one result per submitted file is guaranteed
	type task struct {
		idx  int
		path string
	}
	type indexed struct {
		idx int
		res Result
	}
	tasks := make(chan task)
	out := make(chan indexed)
	var wg sync.WaitGroup
	for i := 0; i < opts.jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				out <- indexed{t.idx, processOne(ctx, t.path, opts)}
			}
		}()
	}
	go func() {
		defer close(tasks)
		for i, f := range files {
			if ctx.Err() != nil {
				return
			}
			select {
			case tasks <- task{i, f}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(out)
	}()
	collected := make([]Result, len(files))
	done := make([]bool, len(files))
	for r := range out {
		collected[r.idx] = r.res
		done[r.idx] = true
		if opts.verbose {
			if r.res.Failure != nil {
				log.Printf("goxpi: %s failed (%s): %s", r.res.File, r.res.Failure.Kind, r.res.Failure.Message)
			} else {
				log.Printf("goxpi: %s: %d interactions", r.res.File, len(r.res.Records))
			}
		}
	}
	//submission order, dropped-by-cancellation files omitted
	results := make([]Result, 0, len(files))
	for i := range files {
		if done[i] {
			results = append(results, collected[i])
		}
	}
	if err := ctx.Err(); err != nil && len(results) < len(files) {
		return results, err
	}
	return results, nil
}

//processOne runs the whole per-file pipeline: read, hydrogen
//preparation, secondary structure index, detection. Any error becomes a
//failure descriptor; nothing panics out of a worker for a bad file.
func processOne(ctx context.Context, path string, opts *Options) Result {
	st, err := pdbio.Read(path)
	if err != nil {
		return failure(path, err)
	}
	st, err = prep.Prepare(ctx, st, opts.prep)
	if err != nil {
		return failure(path, err)
	}
	dopts := opts.detect.Clone()
	if dopts.Detailed() {
		dopts.SS(ss.New(st))
	}
	recs, err := xpi.DetectStructure(st, dopts)
	if err != nil {
		return failure(path, err)
	}
	return Result{File: path, Records: recs}
}

//failure converts an error into a Result carrying a classified failure
//descriptor.
func failure(path string, err error) Result {
	kind := "Unknown"
	if xerr, ok := err.(xpi.Error); ok {
		kind = xerr.Kind().String()
	}
	return Result{File: path, Failure: &Failure{File: path, Kind: kind, Message: err.Error()}}
}
