/*
 * xpi.go, part of goxpi
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

import "strings"

//Atom is one atom read from a structure file. Atoms are read-only once
//loaded: the detector never writes to them. ResIndex is the index of the
//owning residue in the model's Residues slice. An index is used instead of
//a back-pointer so a Model can be handed to another goroutine, or copied,
//without dragging reference cycles along.
type Atom struct {
	Name      string     //PDB atom name, e.g. "CD1", "HE2"
	ID        int        //serial number in the file
	Symbol    string     //chemical element, e.g. "C", "N", "D"
	Pos       [3]float64 //cartesian coordinates, Angstrom
	Bfactor   float64
	Occupancy float64
	Het       bool //HETATM record in the source file
	ResIndex  int
}

//Residue is one residue (or HET group, or water) of a model, owning its
//atoms in file order.
type Residue struct {
	Name   string //3-letter code, e.g. "TRP"
	SeqNum int    //author sequence number
	Chain  string
	Atoms  []*Atom
	Het    bool
}

//Atom returns the first atom of the residue with the given name, or nil.
func (r *Residue) Atom(name string) *Atom {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

//Water returns whether the residue is a water molecule, under any of the
//common names.
func (r *Residue) Water() bool {
	switch strings.ToUpper(r.Name) {
	case "HOH", "WAT", "H2O", "DOD", "D2O":
		return true
	}
	return false
}

//Model is one conformer of a structure. X-ray structures have one, NMR
//ensembles have several. The ID is the model identifier from the file
//(usually "1", "2"...), kept as a string as some formats allow
//non-numeric names.
type Model struct {
	ID       string
	Residues []*Residue
}

//Residue returns the i-th residue of the model. Panics if out of range,
//as asking for a residue that isn't there means the caller is wrong.
func (m *Model) Residue(i int) *Residue {
	if i < 0 || i >= len(m.Residues) {
		panic(ErrResidueOutOfRange)
	}
	return m.Residues[i]
}

//Len returns the number of residues in the model.
func (m *Model) Len() int {
	return len(m.Residues)
}

//Helix is a helical secondary structure record, as annotated in the
//source file. Class follows the PDB helix classes (1 alpha, 3 pi, 5 3-10).
type Helix struct {
	Chain      string
	Start, End int //author sequence numbers, inclusive
	Class      int
}

//Strand is a beta-strand record from a sheet annotation.
type Strand struct {
	Chain      string
	Start, End int
}

//Structure is everything read from one structure file: the models plus the
//metadata the detector and the record builder need. It is produced by the
//loading/hydrogenation collaborators (pdbio, prep) and treated as read-only
//input from then on.
type Structure struct {
	Name       string //structure identifier, usually the 4-char PDB id
	Resolution float64
	Models     []*Model
	Helices    []Helix
	Strands    []Strand
	//HMode records how hydrogens were handled during preparation, with
	//the external convention: 0 no change, 1 shift, 2 remove, 3 re-add,
	//4 re-add except waters, 5 re-add known only. The donor enumerator
	//only consults it to exclude waters under mode 4.
	HMode int
}

//NModels returns the number of models in the structure.
func (s *Structure) NModels() int {
	if s == nil {
		return 0
	}
	return len(s.Models)
}

//SSAssigner is the secondary-structure collaborator. Assign returns the
//type code (H, G, I, E or C) and the region id for a residue, or ("C", -1)
//when the residue belongs to no annotated element. It is only consulted
//when detailed records are requested; a nil SSAssigner yields coil for
//everything.
type SSAssigner interface {
	Assign(chain string, seqnum int) (string, int)
}
