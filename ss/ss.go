/*
 * ss.go, part of goxpi
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

//Package ss assigns secondary structure labels to residues from the
//HELIX/SHEET annotations a structure file carries. No geometric
//assignment (DSSP-style) is attempted; a residue not covered by any
//annotated element is coil.
package ss

import (
	xpi "github.com/rmera/goxpi"
)

//region is one annotated secondary structure element: a residue range on
//a chain, with its label and a unique id.
type region struct {
	chain      string
	start, end int
	sstype     string
	id         int
}

//Index maps (chain, seqnum) queries to secondary structure labels. It
//implements xpi.SSAssigner. The zero value labels everything coil.
type Index struct {
	regions []region
}

//helixType translates a PDB helix class to a one-letter label: 5 is a
//3-10 helix (G), 3 a pi helix (I), everything else an alpha helix (H).
func helixType(class int) string {
	switch class {
	case 5:
		return "G"
	case 3:
		return "I"
	}
	return "H"
}

//New builds an Index from the structure's helix and strand tables.
//Elements get ids 1..n in order of appearance, helices first, so the
//same file always yields the same ids.
func New(st *xpi.Structure) *Index {
	if st == nil {
		panic(xpi.ErrNilStructure)
	}
	ix := new(Index)
	id := 0
	for _, h := range st.Helices {
		id++
		ix.regions = append(ix.regions, region{
			chain: h.Chain, start: h.Start, end: h.End,
			sstype: helixType(h.Class), id: id,
		})
	}
	for _, s := range st.Strands {
		id++
		ix.regions = append(ix.regions, region{
			chain: s.Chain, start: s.Start, end: s.End,
			sstype: "E", id: id,
		})
	}
	return ix
}

//Assign returns the secondary structure label for a residue and the id
//of the element containing it, or "C" and -1 when the residue is in no
//annotated element. When overlapping elements claim the residue, the
//first one declared wins.
func (ix *Index) Assign(chain string, seqnum int) (string, int) {
	for _, r := range ix.regions {
		if r.chain == chain && seqnum >= r.start && seqnum <= r.end {
			return r.sstype, r.id
		}
	}
	return "C", -1
}
