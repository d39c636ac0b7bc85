/*
 * criteria_test.go, part of goxpi
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
	"math"
	"testing"
)

//a ring instance with exact geometry, bypassing the fit: unit normal +Z,
//centroid at origin, 5-ring threshold.
func exactRing(variant string, offset float64) *RingInstance {
	return &RingInstance{
		Res:      &Residue{Name: "TRP", SeqNum: 1, Chain: "A"},
		ResIndex: 0,
		Variant:  variant,
		Centroid: [3]float64{0, 0, 0},
		Normal:   [3]float64{0, 0, 1},
		Offset:   offset,
	}
}

func TestEvaluateIdealGeometry(Te *testing.T) {
	//The reference scenario: X on the ring axis at 4.0 A, H at 3.2 A
	//pointing straight at the centroid.
	ring := exactRing(VariantA, offset5Ring)
	v, ok := Evaluate([3]float64{0, 0, 4.0}, [3]float64{0, 0, 3.2}, ring)
	if !ok {
		Te.Fatal("geometry reported as undefined")
	}
	if math.Abs(v.DistXPi-4.0) > 1e-9 {
		Te.Errorf("distance: got %v want 4.0", v.DistXPi)
	}
	if math.Abs(v.Theta) > 1e-9 {
		Te.Errorf("theta: got %v want 0", v.Theta)
	}
	if math.Abs(v.AngleXHPi-180) > 1e-9 {
		Te.Errorf("X-H...Cpi angle: got %v want 180", v.AngleXHPi)
	}
	if math.Abs(v.AngleTilt) > 1e-9 {
		Te.Errorf("tilt: got %v want 0", v.AngleTilt)
	}
	if math.Abs(v.ProjDist) > 1e-9 {
		Te.Errorf("projection offset: got %v want 0", v.ProjDist)
	}
	if !v.Hudson || !v.Plevin {
		Te.Errorf("expected both systems to pass: hudson=%v plevin=%v", v.Hudson, v.Plevin)
	}
}

func TestHudsonDistanceGate(Te *testing.T) {
	ring := exactRing(VariantB, offset6Ring)
	//beyond 4.5 A nothing passes Hudson, no matter how good the angles
	v, ok := Evaluate([3]float64{0, 0, 4.6}, [3]float64{0, 0, 3.8}, ring)
	if !ok {
		Te.Fatal("geometry reported as undefined")
	}
	if v.Hudson {
		Te.Errorf("Hudson passed at %v A", v.DistXPi)
	}
	//the boundary itself is included (<=); 4.5 and its square are exactly
	//representable so this comparison is safe
	v, _ = Evaluate([3]float64{0, 0, 4.5}, [3]float64{0, 0, 3.7}, ring)
	if !v.Hudson {
		Te.Error("Hudson rejected the 4.5 A boundary, criterion is <=")
	}
	//Plevin's gate is stricter: 4.4 A is within Hudson range but not Plevin's
	v, _ = Evaluate([3]float64{0, 0, 4.4}, [3]float64{0, 0, 3.6}, ring)
	if v.Plevin {
		Te.Errorf("Plevin passed at %v A, limit is 4.3", v.DistXPi)
	}
	if !v.Hudson {
		Te.Errorf("Hudson failed at %v A, limit is 4.5", v.DistXPi)
	}
}

//plevinAt builds a triple whose X-H...Cpi angle at the hydrogen is
//(180-phi) degrees, with everything else comfortably within Plevin's
//other gates, and returns the verdict.
func plevinAt(Te *testing.T, ring *RingInstance, phi float64) Verdict {
	h := [3]float64{0, 0, 3.0}
	s, c := math.Sin(phi*math.Pi/180), math.Cos(phi*math.Pi/180)
	x := [3]float64{h[0] + s, h[1], h[2] + c}
	v, ok := Evaluate(x, h, ring)
	if !ok {
		Te.Fatal("geometry reported as undefined")
	}
	return v
}

func TestPlevinStrictAngle(Te *testing.T) {
	//An exact 120 cannot be constructed in floating point (cos 60 is not
	//representable), so the strict > is probed from both sides of the
	//boundary. 120 itself fails by the published criterion.
	ring := exactRing(VariantB, offset6Ring)
	v := plevinAt(Te, ring, 60.1) //X-H...Cpi = 119.9
	if v.AngleXHPi > PlevinMinXHPi {
		Te.Fatalf("setup: angle %v should be below 120", v.AngleXHPi)
	}
	if v.Plevin {
		Te.Errorf("Plevin passed at %v degrees", v.AngleXHPi)
	}
	v = plevinAt(Te, ring, 59.9) //X-H...Cpi = 120.1
	if v.AngleXHPi <= PlevinMinXHPi {
		Te.Fatalf("setup: angle %v should be above 120", v.AngleXHPi)
	}
	if !v.Plevin {
		Te.Errorf("Plevin failed at %v degrees with all other gates open", v.AngleXHPi)
	}
}

func TestHydrogenAwayFromRing(Te *testing.T) {
	ring := exactRing(VariantB, offset6Ring)
	//H on the far side of X: no candidate at all
	_, ok := Evaluate([3]float64{0, 0, 4.0}, [3]float64{0, 0, 4.8}, ring)
	if ok {
		Te.Error("hydrogen pointing away from the ring accepted as candidate")
	}
}

//rotate applies Rz(a)*Rx(b) to a point.
func rotate(p [3]float64, a, b float64) [3]float64 {
	sa, ca := math.Sin(a), math.Cos(a)
	sb, cb := math.Sin(b), math.Cos(b)
	//Rx first
	p = [3]float64{p[0], cb*p[1] - sb*p[2], sb*p[1] + cb*p[2]}
	//then Rz
	return [3]float64{ca*p[0] - sa*p[1], sa*p[0] + ca*p[1], p[2]}
}

func TestRigidMotionInvariance(Te *testing.T) {
	//distances and angles must not change under a rigid motion of the
	//whole system
	base := phePlusDonor()
	ref, err := DetectStructure(base, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(ref) != 1 {
		Te.Fatalf("reference scene: got %d records, want 1", len(ref))
	}
	shift := [3]float64{11.3, -5.2, 7.7}
	moved := phePlusDonor()
	for _, res := range moved.Models[0].Residues {
		for _, a := range res.Atoms {
			p := rotate(a.Pos, 0.61, -1.07)
			a.Pos = [3]float64{p[0] + shift[0], p[1] + shift[1], p[2] + shift[2]}
		}
	}
	got, err := DetectStructure(moved, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(got) != 1 {
		Te.Fatalf("moved scene: got %d records, want 1", len(got))
	}
	if got[0].DistXPi != ref[0].DistXPi {
		Te.Errorf("distance changed under rigid motion: %v vs %v", got[0].DistXPi, ref[0].DistXPi)
	}
	if got[0].Hudson != ref[0].Hudson || got[0].Plevin != ref[0].Plevin {
		Te.Errorf("verdicts changed under rigid motion")
	}
}

func TestEndToEndTRP(Te *testing.T) {
	//A synthetic single-ring TRP (only the 5-membered ring atoms present,
	//so the 6-ring is skipped as incomplete) with centroid at the origin
	//and normal along +Z, and a donor at (0,0,4.0) with H at (0,0,3.2):
	//exactly one record, passing both systems.
	trp := ringResidue("TRP", "A", 7, []string{"CG", "CD1", "NE1", "CE2", "CD2"}, [3]float64{0, 0, 0})
	asn := donorResidue("ASN", "A", 42, 50, "ND2", "N",
		[3]float64{0, 0, 4.0}, "HD21", [3]float64{0, 0, 3.2})
	st := singleModelStructure("synth", trp, asn)
	recs, err := DetectStructure(st, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 1 {
		Te.Fatalf("got %d records, want exactly 1", len(recs))
	}
	r := recs[0]
	if !r.Hudson || !r.Plevin {
		Te.Errorf("expected both systems flagged: hudson=%v plevin=%v", r.Hudson, r.Plevin)
	}
	if r.DistXPi != 4.0 {
		Te.Errorf("distance: got %v want 4.0", r.DistXPi)
	}
	if r.Remark != "5-ring" {
		Te.Errorf("TRP variant A remark: got %q want \"5-ring\"", r.Remark)
	}
}
