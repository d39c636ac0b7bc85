/*
 * record.go, part of goxpi
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

import "math"

//Record is one detected XH-pi interaction. One record covers one (donor
//atom, hydrogen, ring instance) triple and carries the verdicts of both
//criteria systems; a triple that passes both still yields a single record.
//Numeric fields are rounded for reporting (distances to 3 decimals, angles
//and B-factors to 2), so identical runs produce bit-identical records.
//
//The JSON tags keep the column names downstream analysis scripts already
//expect, capitalization quirks included.
type Record struct {
	PDB        string  `json:"pdb"`
	Model      string  `json:"model"`
	Resolution float64 `json:"resolution"`

	PiChain string `json:"pi_chain"`
	PiRes   string `json:"pi_res"`
	PiID    int    `json:"pi_id"`

	XChain string `json:"X_chain"`
	XRes   string `json:"X_res"`
	XID    int    `json:"X_id"`
	XAtom  string `json:"X_atom"`
	HAtom  string `json:"H_atom"`

	DistXPi float64 `json:"dist_X_Pi"`
	Plevin  bool    `json:"is_plevin"`
	Hudson  bool    `json:"is_hudson"`
	//Remark distinguishes the TRP rings ("5-ring" for variant A, "6-ring"
	//for variant B); empty for single-ring residues.
	Remark  string `json:"remark"`
	Variant string `json:"-"` //ring variant tag, used for ordering

	//Detailed-mode fields. Zero-valued in simple mode; the writers decide
	//which columns to emit.
	PiSSType  string  `json:"pi_ss_type"`
	PiSSID    int     `json:"pi_ss_id"`
	XSSType   string  `json:"X_ss_type"`
	XSSID     int     `json:"X_ss_id"`
	PiAvgB    float64 `json:"pi_avg_b"`
	PiCenterX float64 `json:"pi_center_x"`
	PiCenterY float64 `json:"pi_center_y"`
	PiCenterZ float64 `json:"pi_center_z"`
	XB        float64 `json:"X_b"`
	XX        float64 `json:"X_xyz_x"`
	XY        float64 `json:"X_xyz_y"`
	XZ        float64 `json:"X_xyz_z"`
	//SeqSep is the |seq| separation between donor and pi residues on the
	//same chain, or -1 across chains.
	SeqSep    int     `json:"seq_sep"`
	Theta     float64 `json:"theta"`
	AngleXHPi float64 `json:"angle_XH_Pi"`
	AngleTilt float64 `json:"angle_XPCN"`
	ProjDist  float64 `json:"proj_dist"`
}

//BuildRecord assembles a Record from an evaluator verdict and the
//residue/model metadata. It is pure construction: no side effects, and
//deterministic. ssa may be nil, in which case both residues report coil.
//detailed controls whether the geometry/B-factor/secondary structure
//fields are filled in.
func BuildRecord(st *Structure, modelID string, ring *RingInstance, donor *DonorCandidate, h *Atom, v Verdict, ssa SSAssigner, detailed bool) *Record {
	if st == nil {
		panic(ErrNilStructure)
	}
	rec := &Record{
		PDB:        st.Name,
		Model:      modelID,
		Resolution: st.Resolution,
		PiChain:    ring.Res.Chain,
		PiRes:      ring.Res.Name,
		PiID:       ring.Res.SeqNum,
		XChain:     donor.Res.Chain,
		XRes:       donor.Res.Name,
		XID:        donor.Res.SeqNum,
		XAtom:      donor.Atom.Name,
		HAtom:      h.Name,
		DistXPi:    round3(v.DistXPi),
		Plevin:     v.Plevin,
		Hudson:     v.Hudson,
		Variant:    ring.Variant,
	}
	if ring.Res.Name == "TRP" {
		if ring.Variant == VariantA {
			rec.Remark = "5-ring"
		} else {
			rec.Remark = "6-ring"
		}
	}
	if !detailed {
		return rec
	}
	rec.PiSSType, rec.PiSSID = assign(ssa, ring.Res.Chain, ring.Res.SeqNum)
	rec.XSSType, rec.XSSID = assign(ssa, donor.Res.Chain, donor.Res.SeqNum)
	rec.PiAvgB = round2(ring.MeanB)
	rec.PiCenterX = round3(ring.Centroid[0])
	rec.PiCenterY = round3(ring.Centroid[1])
	rec.PiCenterZ = round3(ring.Centroid[2])
	rec.XB = round2(donor.Atom.Bfactor)
	rec.XX = round3(donor.Atom.Pos[0])
	rec.XY = round3(donor.Atom.Pos[1])
	rec.XZ = round3(donor.Atom.Pos[2])
	if donor.Res.Chain == ring.Res.Chain {
		rec.SeqSep = int(math.Abs(float64(ring.Res.SeqNum - donor.Res.SeqNum)))
	} else {
		rec.SeqSep = -1
	}
	rec.Theta = round2(v.Theta)
	rec.AngleXHPi = round2(v.AngleXHPi)
	rec.AngleTilt = round2(v.AngleTilt)
	rec.ProjDist = round3(v.ProjDist)
	return rec
}

func assign(ssa SSAssigner, chain string, seq int) (string, int) {
	if ssa == nil {
		return "C", -1
	}
	return ssa.Assign(chain, seq)
}
