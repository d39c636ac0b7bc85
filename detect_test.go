/*
 * detect_test.go, part of goxpi
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
	"testing"
)

//twoRingScene: a PHE and a TYR, each with its own donor close enough to
//interact, on two chains.
func twoRingScene() *Structure {
	phe := ringResidue("PHE", "A", 10, sixRing, [3]float64{0, 0, 0})
	glnA := donorResidue("GLN", "A", 30, 100, "NE2", "N",
		[3]float64{0, 0, 4.0}, "HE21", [3]float64{0, 0, 3.2})
	tyr := ringResidue("TYR", "B", 12, sixRing, [3]float64{20, 0, 0})
	serB := donorResidue("SER", "B", 40, 200, "OG", "O",
		[3]float64{20, 0, 3.8}, "HG", [3]float64{20, 0, 2.9})
	return singleModelStructure("twor", phe, glnA, tyr, serB)
}

func TestIdempotence(Te *testing.T) {
	st := twoRingScene()
	a, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(a) != len(b) {
		Te.Fatalf("two runs disagree on count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if *a[i] != *b[i] {
			Te.Errorf("record %d differs between runs:\n%+v\n%+v", i, *a[i], *b[i])
		}
	}
}

func TestCanonicalOrder(Te *testing.T) {
	st := twoRingScene()
	recs, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 2 {
		Te.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].PiChain != "A" || recs[1].PiChain != "B" {
		Te.Errorf("records not in chain order: %s then %s", recs[0].PiChain, recs[1].PiChain)
	}
}

func TestFilterSubset(Te *testing.T) {
	st := twoRingScene()
	all, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	o := DefaultOptions()
	o.PiRes("TYR")
	o.DonorRes("SER")
	some, err := DetectStructure(st, o)
	if err != nil {
		Te.Fatal(err)
	}
	//Filtered output is a subset of the unfiltered one, holding exactly
	//the records whose residues are in the filter sets.
	want := 0
	for _, r := range all {
		if r.PiRes == "TYR" && r.XRes == "SER" {
			want++
		}
	}
	if len(some) != want || want == 0 {
		Te.Fatalf("filtered: got %d records, want %d", len(some), want)
	}
	for _, r := range some {
		if r.PiRes != "TYR" || r.XRes != "SER" {
			Te.Errorf("filter leak: %+v", r)
		}
	}
}

func TestSameResidueNeverPairs(Te *testing.T) {
	//a TYR with its own OH donor right above its ring plane must not
	//report an interaction with itself
	tyr := ringResidue("TYR", "A", 10, sixRing, [3]float64{0, 0, 0})
	tyr.Atoms = append(tyr.Atoms,
		&Atom{Name: "OH", Symbol: "O", Pos: [3]float64{0, 0, 3.5}, ResIndex: 0},
		&Atom{Name: "HH", Symbol: "H", Pos: [3]float64{0, 0, 2.6}, ResIndex: 0},
	)
	st := singleModelStructure("self", tyr)
	recs, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 0 {
		Te.Errorf("self interaction reported: %+v", recs[0])
	}
}

func TestModelSelection(Te *testing.T) {
	mk := func(id string) *Model {
		phe := ringResidue("PHE", "A", 10, sixRing, [3]float64{0, 0, 0})
		gln := donorResidue("GLN", "A", 30, 100, "NE2", "N",
			[3]float64{0, 0, 4.0}, "HE21", [3]float64{0, 0, 3.2})
		return buildModel(id, phe, gln)
	}
	st := &Structure{Name: "nmr", Models: []*Model{mk("1"), mk("2"), mk("3")}}

	//default: first model only
	recs, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Model != "1" {
		Te.Fatalf("default selection: got %d records, model %q", len(recs), recs[0].Model)
	}
	//all models: one record per conformer, tagged, no cross-model dedup
	o := DefaultOptions()
	o.Models(ModelAll)
	recs, err = DetectStructure(st, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 3 {
		Te.Fatalf("all-models selection: got %d records, want 3", len(recs))
	}
	for i, want := range []string{"1", "2", "3"} {
		if recs[i].Model != want {
			Te.Errorf("record %d tagged with model %q, want %q", i, recs[i].Model, want)
		}
	}
	//selector beyond the ensemble selects nothing, without error
	o = DefaultOptions()
	o.Models("7")
	recs, err = DetectStructure(st, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 0 {
		Te.Errorf("out-of-range model index yielded %d records", len(recs))
	}
}

func TestOptionsValidate(Te *testing.T) {
	o := DefaultOptions()
	o.DonorElements("N", "Xx")
	if _, err := DetectStructure(phePlusDonor(), o); err == nil {
		Te.Error("invalid donor element accepted")
	} else if e, ok := err.(Error); !ok || e.Kind() != KindConfiguration {
		Te.Errorf("wrong error kind for bad element: %v", err)
	}
	o = DefaultOptions()
	o.Models("first")
	if err := o.Validate(); err == nil {
		Te.Error("invalid model selector accepted")
	}
}

type fixedSS struct{}

func (fixedSS) Assign(chain string, seq int) (string, int) {
	if chain == "A" && seq == 10 {
		return "H", 3
	}
	return "C", -1
}

func TestDetailedRecords(Te *testing.T) {
	st := phePlusDonor()
	o := DefaultOptions()
	o.Detailed(true)
	o.SS(fixedSS{})
	recs, err := DetectStructure(st, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 1 {
		Te.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.PiSSType != "H" || r.PiSSID != 3 {
		Te.Errorf("pi residue SS: got %s/%d want H/3", r.PiSSType, r.PiSSID)
	}
	if r.XSSType != "C" || r.XSSID != -1 {
		Te.Errorf("donor residue SS: got %s/%d want C/-1", r.XSSType, r.XSSID)
	}
	if r.SeqSep != 20 {
		Te.Errorf("sequence separation: got %d want 20", r.SeqSep)
	}
	if r.PiAvgB != 10 || r.XB != 12 {
		Te.Errorf("B-factors: ring %v donor %v", r.PiAvgB, r.XB)
	}
	if r.Theta != 0 || r.AngleXHPi != 180 {
		Te.Errorf("angles: theta %v xhpi %v", r.Theta, r.AngleXHPi)
	}
}
