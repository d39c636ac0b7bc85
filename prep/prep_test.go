/*
 * prep_test.go, part of goxpi
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

package prep

import (
	"context"
	"testing"

	xpi "github.com/rmera/goxpi"
)

//a hydrogenated serine plus a hydrogenated water, enough to tell the
//strip paths apart.
func protonated() *xpi.Structure {
	ser := &xpi.Residue{Name: "SER", SeqNum: 1, Chain: "A", Atoms: []*xpi.Atom{
		{Name: "OG", Symbol: "O", Pos: [3]float64{0, 0, 0}},
		{Name: "HG", Symbol: "H", Pos: [3]float64{0, 0, 0.9}},
	}}
	wat := &xpi.Residue{Name: "HOH", SeqNum: 101, Chain: "A", Het: true, Atoms: []*xpi.Atom{
		{Name: "O", Symbol: "O", Pos: [3]float64{5, 5, 5}},
		{Name: "H1", Symbol: "H", Pos: [3]float64{5, 5, 5.9}},
		{Name: "D1", Symbol: "D", Pos: [3]float64{5, 5.9, 5}},
	}}
	return &xpi.Structure{
		Name:   "test",
		Models: []*xpi.Model{{ID: "1", Residues: []*xpi.Residue{ser, wat}}},
	}
}

func countHydrogens(st *xpi.Structure) int {
	n := 0
	for _, m := range st.Models {
		for _, res := range m.Residues {
			for _, a := range res.Atoms {
				if isHydrogen(a) {
					n++
				}
			}
		}
	}
	return n
}

func TestNoChange(Te *testing.T) {
	st := protonated()
	opts := DefaultOptions()
	opts.HMode(NoChange)
	out, err := Prepare(context.Background(), st, opts)
	if err != nil {
		Te.Fatalf("Prepare: %v", err)
	}
	if countHydrogens(out) != 3 {
		Te.Errorf("NoChange must keep all hydrogens, %d left of 3", countHydrogens(out))
	}
	if out.HMode != NoChange {
		Te.Errorf("prepared structure carries HMode %d, want %d", out.HMode, NoChange)
	}
}

func TestRemove(Te *testing.T) {
	st := protonated()
	opts := DefaultOptions()
	opts.HMode(Remove)
	out, err := Prepare(context.Background(), st, opts)
	if err != nil {
		Te.Fatalf("Prepare: %v", err)
	}
	if n := countHydrogens(out); n != 0 {
		Te.Errorf("Remove must strip all hydrogens, %d left", n)
	}
	//heavy atoms stay
	if out.Models[0].Residue(0).Atom("OG") == nil || out.Models[0].Residue(1).Atom("O") == nil {
		Te.Error("Remove stripped heavy atoms")
	}
}

func TestStripWatersOnly(Te *testing.T) {
	st := protonated()
	stripHydrogens(st, true)
	if st.Models[0].Residue(0).Atom("HG") == nil {
		Te.Error("water-only strip removed a protein hydrogen")
	}
	if len(st.Models[0].Residue(1).Atoms) != 1 {
		Te.Error("water-only strip left water hydrogens behind")
	}
}

func TestReduceMissing(Te *testing.T) {
	st := protonated()
	opts := DefaultOptions()
	opts.ReducePath("/nonexistent/reduce-binary")
	_, err := Prepare(context.Background(), st, opts)
	if err == nil {
		Te.Fatal("expected an error when the reduce executable is missing")
	}
	xerr, ok := err.(xpi.Error)
	if !ok || xerr.Kind() != xpi.KindHydrogenization {
		Te.Errorf("expected a Hydrogenization error, got %v", err)
	}
}

func TestOptions(Te *testing.T) {
	opts := DefaultOptions()
	if opts.HMode() != ReAddButWater {
		Te.Errorf("default mode %d, want %d", opts.HMode(), ReAddButWater)
	}
	if opts.ReducePath() != DefaultReduceName {
		Te.Errorf("default reduce path %q, want %q", opts.ReducePath(), DefaultReduceName)
	}
	opts.ReducePath("/opt/reduce")
	if opts.ReducePath() != "/opt/reduce" {
		Te.Error("ReducePath setter did not stick")
	}
	opts.ReducePath("")
	if opts.ReducePath() != DefaultReduceName {
		Te.Error("empty path should reset the default")
	}
	opts.HMode(7)
	if err := opts.Validate(); err == nil {
		Te.Error("mode 7 should not validate")
	} else if xerr, ok := err.(xpi.Error); !ok || xerr.Kind() != xpi.KindConfiguration {
		Te.Errorf("expected a Configuration error, got %v", err)
	}
}
