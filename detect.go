/*
 * detect.go, part of goxpi
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

package xpi

import (
	"sort"
	"strconv"
	"strings"
)

//ModelAll selects every model of a structure (NMR ensembles); the default
//selector "0" takes only the first model.
const ModelAll = "all"

//Options holds the configuration for a detection run. The zero value is
//not usable; get one from DefaultOptions. All fields are explicit
//configuration, there is no ambient/global state, so runs are reentrant.
type Options struct {
	piRes    map[string]bool
	donorRes map[string]bool
	donorEl  map[string]bool
	models   string
	detailed bool
	ssa      SSAssigner
}

//DefaultOptions returns an Options with the defaults: no residue filters,
//donor elements N/O/S, first model only, simple records.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.models = "0"
	return ret
}

//PiRes returns the current pi-residue name filter and, if names are given,
//replaces it. An empty call leaves the filter untouched; filtering is
//cleared by setting the single name "*".
func (o *Options) PiRes(names ...string) []string {
	ret := setKeys(o.piRes)
	if len(names) > 0 {
		o.piRes = makeSet(names)
	}
	return ret
}

//DonorRes returns the current donor-residue name filter and, if names are
//given, replaces it. Same conventions as PiRes.
func (o *Options) DonorRes(names ...string) []string {
	ret := setKeys(o.donorRes)
	if len(names) > 0 {
		o.donorRes = makeSet(names)
	}
	return ret
}

//DonorElements returns the current donor element filter and, if symbols
//are given, replaces it. Same conventions as PiRes. Validity of the
//symbols is checked by Validate, not here.
func (o *Options) DonorElements(symbols ...string) []string {
	ret := setKeys(o.donorEl)
	if len(symbols) > 0 {
		o.donorEl = makeSet(symbols)
	}
	return ret
}

//Models returns the current model selector and sets it, if given. The
//selector is a decimal model index (counted from 0) or ModelAll.
func (o *Options) Models(sel ...string) string {
	ret := o.models
	if len(sel) > 0 && sel[0] != "" {
		o.models = sel[0]
	}
	return ret
}

//Detailed returns whether detailed records are built, and sets it if a
//value is given.
func (o *Options) Detailed(d ...bool) bool {
	ret := o.detailed
	if len(d) > 0 {
		o.detailed = d[0]
	}
	return ret
}

//SS returns the secondary-structure collaborator and sets it, if given.
func (o *Options) SS(ssa ...SSAssigner) SSAssigner {
	ret := o.ssa
	if len(ssa) > 0 {
		o.ssa = ssa[0]
	}
	return ret
}

//Clone returns an independent copy of the options. The batch layer gives
//each file its own copy, since the secondary-structure collaborator is
//per-structure while the rest of the configuration is shared.
func (o *Options) Clone() *Options {
	ret := new(Options)
	ret.piRes = copySet(o.piRes)
	ret.donorRes = copySet(o.donorRes)
	ret.donorEl = copySet(o.donorEl)
	ret.models = o.models
	ret.detailed = o.detailed
	ret.ssa = o.ssa
	return ret
}

func copySet(set map[string]bool) map[string]bool {
	if set == nil {
		return nil
	}
	ret := make(map[string]bool, len(set))
	for k, v := range set {
		ret[k] = v
	}
	return ret
}

//Validate checks the options for values that would poison a whole batch:
//donor elements outside the scannable set, or a model selector that is
//neither an index nor "all". The returned error has kind
//KindConfiguration.
func (o *Options) Validate() error {
	for el := range o.donorEl {
		if !scannableElements[el] {
			return Errorf(KindConfiguration, "", "invalid donor element %q, allowed: C, N, O, S", el)
		}
	}
	if o.models != ModelAll {
		if _, err := strconv.Atoi(o.models); err != nil {
			return Errorf(KindConfiguration, "", "invalid model selector %q, want an index or %q", o.models, ModelAll)
		}
	}
	return nil
}

func makeSet(names []string) map[string]bool {
	if len(names) == 1 && names[0] == "*" {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToUpper(strings.TrimSpace(n))] = true
	}
	return set
}

func setKeys(set map[string]bool) []string {
	if set == nil {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//DetectStructure runs the full detection pipeline on one structure and
//returns its interaction records. The selected models are processed in
//file order; within each model records are sorted into the canonical
//order: pi chain, pi sequence number, ring variant (A before B), then
//donor chain, donor sequence number, donor atom name and hydrogen name.
//That order is part of the output contract: two runs over the same
//structure with the same options return identical slices.
//
//An empty result is a valid, non-error outcome.
func DetectStructure(st *Structure, opts *Options) ([]*Record, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errDecorate(err, "DetectStructure")
	}
	if st == nil || len(st.Models) == 0 {
		return []*Record{}, nil
	}
	models := selectModels(st, opts.models)
	recs := make([]*Record, 0)
	for _, m := range models {
		mrecs := detectModel(st, m, opts)
		sortRecords(mrecs)
		recs = append(recs, mrecs...)
	}
	return recs, nil
}

//selectModels resolves the model selector against the structure. An index
//out of range selects nothing (the file simply has fewer conformers than
//asked for); anything unparseable was caught by Validate.
func selectModels(st *Structure, sel string) []*Model {
	if sel == ModelAll {
		return st.Models
	}
	idx, err := strconv.Atoi(sel)
	if err != nil {
		idx = 0
	}
	if idx < 0 || idx >= len(st.Models) {
		return nil
	}
	return []*Model{st.Models[idx]}
}

//detectModel runs extraction, enumeration, evaluation and record building
//over one model. Each (donor atom, hydrogen, ring instance) triple is
//visited exactly once, so the at-most-one-record invariant holds by
//construction; a triple passing both systems yields one record with both
//verdicts set.
func detectModel(st *Structure, m *Model, o *Options) []*Record {
	donors := EnumerateDonors(m, o.donorRes, o.donorEl, st.HMode)
	if len(donors) == 0 {
		return nil
	}
	var recs []*Record
	for ri, res := range m.Residues {
		if o.piRes != nil && !o.piRes[res.Name] {
			continue
		}
		for _, ring := range ExtractRings(m, ri) {
			recs = append(recs, scanRing(st, m, ring, donors, o)...)
		}
	}
	return recs
}

//scanRing evaluates every donor/hydrogen against one ring. A donor in the
//ring's own residue is never a candidate.
func scanRing(st *Structure, m *Model, ring *RingInstance, donors []*DonorCandidate, o *Options) []*Record {
	var recs []*Record
	for _, d := range donors {
		if d.ResIndex == ring.ResIndex {
			continue
		}
		//cheap distance gate before doing any angle work
		if vDist(d.Atom.Pos, ring.Centroid) > DistHudsonMax {
			continue
		}
		for _, h := range d.Hydrogens {
			v, ok := Evaluate(d.Atom.Pos, h.Pos, ring)
			if !ok || !v.Pass() {
				continue
			}
			recs = append(recs, BuildRecord(st, m.ID, ring, d, h, v, o.ssa, o.detailed))
		}
	}
	return recs
}

//sortRecords sorts into the canonical order documented in DetectStructure.
func sortRecords(recs []*Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.PiChain != b.PiChain {
			return a.PiChain < b.PiChain
		}
		if a.PiID != b.PiID {
			return a.PiID < b.PiID
		}
		if a.Variant != b.Variant {
			return a.Variant < b.Variant
		}
		if a.XChain != b.XChain {
			return a.XChain < b.XChain
		}
		if a.XID != b.XID {
			return a.XID < b.XID
		}
		if a.XAtom != b.XAtom {
			return a.XAtom < b.XAtom
		}
		return a.HAtom < b.HAtom
	})
}
