/*
 * donors.go, part of goxpi
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

//maxXHBond is the cutoff, in Angstrom, under which a hydrogen is taken as
//covalently bonded to a heavy atom. 1.3 A covers N-H, O-H, S-H and C-H
//bond lengths with room for sloppy geometry, while staying well under any
//non-bonded H...X contact.
const maxXHBond = 1.3

//scannableElements are the heavy-atom elements that can ever act as
//donors. Carbon is scannable but not in the default set; an explicit
//element filter can bring it in.
var scannableElements = map[string]bool{"C": true, "N": true, "O": true, "S": true}

//defaultDonorElements is the default donor element set.
var defaultDonorElements = map[string]bool{"N": true, "O": true, "S": true}

//hydrogenElements covers protium and deuterium, so neutron structures
//work as-is.
var hydrogenElements = map[string]bool{"H": true, "D": true}

//ReAddButWater is the hydrogen mode value under which waters were
//intentionally left unprotonated during preparation; the enumerator skips
//them since any water hydrogen present would be stale. The value follows
//the external h-change convention (see Structure.HMode).
const ReAddButWater = 4

//DonorCandidate is a heavy atom with at least one covalently bonded
//hydrogen, eligible to donate an XH-pi contact.
type DonorCandidate struct {
	Res       *Residue
	ResIndex  int
	Atom      *Atom   //the heavy atom X
	Hydrogens []*Atom //bonded hydrogens, in residue atom order
}

//EnumerateDonors lists the donor candidates of a model in a deterministic
//order: residues in model order, atoms in residue order. resFilter and
//elemFilter restrict donor residue names and donor elements; nil means no
//restriction (elements then default to N, O, S). hmode is the structure's
//hydrogen-handling mode, used only to exclude waters under ReAddButWater.
func EnumerateDonors(m *Model, resFilter map[string]bool, elemFilter map[string]bool, hmode int) []*DonorCandidate {
	if elemFilter == nil {
		elemFilter = defaultDonorElements
	}
	var donors []*DonorCandidate
	for ri, res := range m.Residues {
		if res.Water() && hmode == ReAddButWater {
			continue
		}
		if resFilter != nil && !resFilter[res.Name] {
			continue
		}
		for _, a := range res.Atoms {
			if !scannableElements[a.Symbol] || !elemFilter[a.Symbol] {
				continue
			}
			hs := bondedHydrogens(res, a)
			if len(hs) == 0 {
				continue
			}
			donors = append(donors, &DonorCandidate{
				Res:       res,
				ResIndex:  ri,
				Atom:      a,
				Hydrogens: hs,
			})
		}
	}
	return donors
}

//bondedHydrogens returns the hydrogens of the residue within bonding
//distance of the heavy atom x. Hydrogens always belong to the same residue
//as their heavy atom, so only the residue's own atoms are searched.
func bondedHydrogens(res *Residue, x *Atom) []*Atom {
	var hs []*Atom
	for _, a := range res.Atoms {
		if !hydrogenElements[a.Symbol] {
			continue
		}
		if vDist(a.Pos, x.Pos) <= maxXHBond {
			hs = append(hs, a)
		}
	}
	return hs
}
