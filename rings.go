/*
 * rings.go, part of goxpi
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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Ring variants. TRP carries 2 rings: variant A is the 5-membered pyrrole
//ring, variant B the 6-membered benzene ring. Single-ring residues use the
//variant matching their ring size (A for HIS, B for PHE/TYR/PTR), so the
//Hudson offset threshold can be read off the variant alone.
const (
	VariantA = "A" //5-membered
	VariantB = "B" //6-membered
)

//Hudson in-plane offset thresholds per ring size.
const (
	offset5Ring = 1.6
	offset6Ring = 2.0
)

//ringDef describes one ring of a residue type: its variant tag, the
//canonical names of the ring atoms, and the Hudson offset threshold.
//A flat table plus one generic extraction routine; no need for per-residue
//types.
type ringDef struct {
	Variant string
	Atoms   []string
	Offset  float64
}

var sixRing = []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}

//ringTable maps a residue name to its rings, in reporting order (variant A
//before B for TRP). PTR (phosphotyrosine) shares the TYR ring.
var ringTable = map[string][]ringDef{
	"PHE": {{VariantB, sixRing, offset6Ring}},
	"TYR": {{VariantB, sixRing, offset6Ring}},
	"PTR": {{VariantB, sixRing, offset6Ring}},
	"HIS": {{VariantA, []string{"CG", "ND1", "CE1", "NE2", "CD2"}, offset5Ring}},
	"TRP": {
		{VariantA, []string{"CG", "CD1", "NE1", "CE2", "CD2"}, offset5Ring},
		{VariantB, []string{"CD2", "CE2", "CZ2", "CH2", "CZ3", "CE3"}, offset6Ring},
	},
}

//PiResidue returns whether a residue name carries at least one aromatic
//ring known to this package.
func PiResidue(resname string) bool {
	_, ok := ringTable[resname]
	return ok
}

//RingInstance is one aromatic ring of one residue, with its derived plane
//geometry. The normal is unit length; its sign is an artifact of the fit
//and carries no meaning, but is consistent within one extraction.
type RingInstance struct {
	Res      *Residue
	ResIndex int
	Variant  string
	Centroid [3]float64
	Normal   [3]float64
	Offset   float64 //Hudson in-plane threshold for this ring
	MeanB    float64 //mean B-factor of the ring atoms
}

//Size returns the number of atoms in the ring definition (5 or 6).
func (ri *RingInstance) Size() int {
	if ri.Variant == VariantA {
		return 5
	}
	return 6
}

//ExtractRings derives the ring instances for the residue at index resindex
//of the model. Residue types without rings, residues with any canonical
//ring atom missing, and rings whose atoms are collinear (so no plane can
//be fit) contribute nothing; none of those is an error, per the recovery
//policy for degenerate geometry.
func ExtractRings(m *Model, resindex int) []*RingInstance {
	res := m.Residue(resindex)
	defs, ok := ringTable[res.Name]
	if !ok {
		return nil
	}
	var rings []*RingInstance
	for _, def := range defs {
		ri := extractOne(res, resindex, def)
		if ri != nil {
			rings = append(rings, ri)
		}
	}
	return rings
}

//extractOne computes centroid, best-fit normal and mean B for one ring
//definition, or nil if the ring is incomplete or degenerate.
func extractOne(res *Residue, resindex int, def ringDef) *RingInstance {
	atoms := make([]*Atom, 0, len(def.Atoms))
	for _, name := range def.Atoms {
		a := res.Atom(name)
		if a == nil {
			return nil //incomplete ring: skip, not an error
		}
		atoms = append(atoms, a)
	}
	n := len(atoms)
	centroid := [3]float64{}
	bfacs := make([]float64, n)
	for i, a := range atoms {
		centroid[0] += a.Pos[0]
		centroid[1] += a.Pos[1]
		centroid[2] += a.Pos[2]
		bfacs[i] = a.Bfactor
	}
	centroid = vScale(1/float64(n), centroid)
	normal, ok := fitPlaneNormal(atoms, centroid)
	if !ok {
		return nil
	}
	return &RingInstance{
		Res:      res,
		ResIndex: resindex,
		Variant:  def.Variant,
		Centroid: centroid,
		Normal:   normal,
		Offset:   def.Offset,
		MeanB:    stat.Mean(bfacs, nil),
	}
}

//fitPlaneNormal fits a plane through the centered ring atoms by SVD and
//returns the unit normal (the right singular vector of the smallest
//singular value). It reports failure instead of returning a NaN or zero
//vector when the points are (near) collinear or coincident, which shows up
//as a vanishing second singular value.
func fitPlaneNormal(atoms []*Atom, centroid [3]float64) ([3]float64, bool) {
	n := len(atoms)
	data := make([]float64, 0, n*3)
	for _, a := range atoms {
		c := vSub(a.Pos, centroid)
		data = append(data, c[0], c[1], c[2])
	}
	pts := mat.NewDense(n, 3, data)
	var svd mat.SVD
	if ok := svd.Factorize(pts, mat.SVDThinV); !ok {
		return [3]float64{}, false
	}
	s := svd.Values(nil)
	if len(s) < 3 || s[1] <= appzero || s[1] <= 1e-6*s[0] {
		//all points on (or nearly on) a line: the plane is undefined
		return [3]float64{}, false
	}
	var v mat.Dense
	svd.VTo(&v)
	normal := [3]float64{v.At(0, 2), v.At(1, 2), v.At(2, 2)}
	nn := vNorm(normal)
	if nn <= appzero {
		return [3]float64{}, false
	}
	return vScale(1/nn, normal), true
}
