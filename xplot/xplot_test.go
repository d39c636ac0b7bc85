/*
 * xplot_test.go, part of goxpi
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

package xplot

import (
	"os"
	"path/filepath"
	"testing"

	xpi "github.com/rmera/goxpi"
	"github.com/rmera/goxpi/batch"
)

func testRecords() []*xpi.Record {
	return []*xpi.Record{
		{PDB: "a", DistXPi: 3.5, Theta: 10, Hudson: true, Plevin: true},
		{PDB: "a", DistXPi: 4.1, Theta: 35, Hudson: true, Plevin: false},
		{PDB: "a", DistXPi: 4.2, Theta: 55, Hudson: false, Plevin: true},
		{PDB: "a", DistXPi: 4.4, Theta: 70, Hudson: false, Plevin: false},
	}
}

func TestThetaScatter(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "scatter")
	if err := ThetaScatter(testRecords(), "test scatter", name); err != nil {
		Te.Fatalf("ThetaScatter: %v", err)
	}
	info, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatalf("no figure written: %v", err)
	}
	if info.Size() == 0 {
		Te.Error("figure file is empty")
	}
}

func TestDistHistogram(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "hist")
	if err := DistHistogram(testRecords(), 8, "test histogram", name); err != nil {
		Te.Fatalf("DistHistogram: %v", err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatalf("no figure written: %v", err)
	}
}

//A batch that finds zero interactions merges into an empty (non-nil)
//record set; both figures must still come out, blank, without error.
func TestZeroInteractionFigures(Te *testing.T) {
	recs := batch.Merge([]batch.Result{{File: "a.pdb"}})
	if recs == nil {
		Te.Fatal("Merge of a recordless batch returned nil")
	}
	dir := Te.TempDir()
	scatter := filepath.Join(dir, "scatter")
	if err := ThetaScatter(recs, "empty", scatter); err != nil {
		Te.Fatalf("ThetaScatter on an empty record set: %v", err)
	}
	if _, err := os.Stat(scatter + ".png"); err != nil {
		Te.Error("no scatter figure written for an empty record set")
	}
	hist := filepath.Join(dir, "hist")
	if err := DistHistogram(recs, 8, "empty", hist); err != nil {
		Te.Fatalf("DistHistogram on an empty record set: %v", err)
	}
	if _, err := os.Stat(hist + ".png"); err != nil {
		Te.Error("no histogram figure written for an empty record set")
	}
}

func TestSplit(Te *testing.T) {
	_, groups, _ := split(testRecords())
	for i, want := range []int{1, 1, 1, 1} {
		if len(groups[i]) != want {
			Te.Errorf("group %d has %d records, want %d", i, len(groups[i]), want)
		}
	}
}
