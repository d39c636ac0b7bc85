/*
 * criteria.go, part of goxpi
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

//The published thresholds. Note the mix of strict and non-strict
//comparisons: Hudson uses <=, Plevin uses < and >. They are applied
//exactly as published, do not "clean this up".
const (
	DistHudsonMax  = 4.5   //A, d(X,Cpi) <= this for Hudson
	HudsonMaxTheta = 40.0  //deg, X-H vs ring normal <= this for Hudson
	DistPlevinMax  = 4.3   //A, d(X,Cpi) < this for Plevin
	PlevinMinXHPi  = 120.0 //deg, X-H...Cpi angle > this for Plevin
	PlevinMaxTilt  = 25.0  //deg, Cpi-X axis vs ring normal < this for Plevin
)

//Verdict is the outcome of evaluating one (donor X, hydrogen, ring) triple
//against both criteria systems, with all the measured values. Distances in
//Angstrom, angles in degrees.
type Verdict struct {
	DistXPi   float64 //d(X, ring centroid)
	Theta     float64 //Hudson: angle of X-H against the ring normal, folded to [0,90]
	ProjDist  float64 //Hudson: in-plane offset of X's projection from the centroid
	AngleXHPi float64 //Plevin: the X-H...Cpi angle at the hydrogen
	AngleTilt float64 //Plevin: Cpi-X axis against the ring normal, folded to [0,90]
	Hudson    bool
	Plevin    bool
}

//Pass returns whether at least one criteria system passed.
func (v Verdict) Pass() bool { return v.Hudson || v.Plevin }

//Evaluate runs both criteria systems on one triple. x and h are the donor
//heavy atom and hydrogen positions. It is a pure function: identical
//inputs give bit-identical outputs.
//
//The second return value reports whether the geometry was well defined.
//It is false when some vector degenerates to zero (coincident atoms) or
//when the hydrogen points away from the ring, which leaves Hudson's theta
//undefined; such triples are not interaction candidates at all and the
//caller must discard them.
func Evaluate(x, h [3]float64, ring *RingInstance) (Verdict, bool) {
	if ring == nil {
		panic(ErrNilRing)
	}
	c := ring.Centroid
	v := Verdict{}
	v.DistXPi = vDist(x, c)

	//Plevin's X-H...Cpi angle, measured at the hydrogen.
	v.AngleXHPi = vAngle(vSub(x, h), vSub(c, h))
	//Plevin's axial tilt. The normal's sign is arbitrary, so fold.
	v.AngleTilt = foldAngle(vAngle(vSub(c, x), ring.Normal))
	//Hudson's theta, defined only when H points toward the ring.
	theta, ok := hudsonTheta(c, x, h, ring.Normal)
	v.Theta = theta
	if !ok || math.IsNaN(v.AngleXHPi) || math.IsNaN(v.AngleTilt) {
		return v, false
	}
	v.ProjDist = projectionDist(ring.Normal, c, x)

	v.Plevin = v.DistXPi < DistPlevinMax &&
		v.AngleXHPi > PlevinMinXHPi &&
		v.AngleTilt < PlevinMaxTilt
	v.Hudson = v.DistXPi <= DistHudsonMax &&
		v.Theta <= HudsonMaxTheta &&
		v.ProjDist <= ring.Offset
	return v, true
}

//hudsonTheta returns the angle between the X-H vector and the ring normal,
//folded to [0,90]. The bonded hydrogen must point toward the ring: if the
//projection of X-H on the X-Cpi axis is not positive, the triple is no
//candidate and ok is false.
func hudsonTheta(c, x, h, normal [3]float64) (float64, bool) {
	vXPi := vSub(c, x)
	nXPi := vNorm(vXPi)
	if nXPi <= appzero {
		return math.NaN(), false
	}
	vXH := vSub(h, x)
	projLen := vDot(vXH, vXPi) / nXPi
	if projLen <= 0 {
		return math.NaN(), false
	}
	angle := vAngle(normal, vXH)
	if math.IsNaN(angle) {
		return angle, false
	}
	return foldAngle(angle), true
}

//projectionDist returns the distance from the orthogonal projection of x
//onto the ring plane to the ring centroid c. normal is unit length, which
//makes the projection x + ((c-x)*n)n.
func projectionDist(normal, c, x [3]float64) float64 {
	t := vDot(normal, vSub(c, x))
	proj := [3]float64{
		x[0] + t*normal[0],
		x[1] + t*normal[1],
		x[2] + t*normal[2],
	}
	return vDist(proj, c)
}
