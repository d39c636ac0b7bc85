/*
 * vec.go, part of goxpi
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

//Small helpers for 3D vectors. Everything works on [3]float64 so geometry
//stays allocation-free in the inner detection loop; gonum is used where a
//whole set of points is involved (see rings.go).

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//appzero is the threshold under which a float is considered zero, to
//absorb floating point noise.
const appzero float64 = 1e-10

//deg2rad and back
const toDegrees = 180.0 / math.Pi

func vSub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func vScale(s float64, a [3]float64) [3]float64 {
	return [3]float64{s * a[0], s * a[1], s * a[2]}
}

func vDot(a, b [3]float64) float64 {
	return floats.Dot(a[:], b[:])
}

func vNorm(a [3]float64) float64 {
	return floats.Norm(a[:], 2)
}

//vDist returns the euclidean distance between 2 points, in whatever unit
//the points are (Angstrom, everywhere in this library).
func vDist(a, b [3]float64) float64 {
	return vNorm(vSub(a, b))
}

//vAngle returns the unsigned angle between 2 vectors, in degrees. The
//cosine is clamped to [-1,1] before the acos to guard against floating
//point overshoot. Returns NaN if either vector has zero norm, which the
//callers must check.
func vAngle(a, b [3]float64) float64 {
	na := vNorm(a)
	nb := vNorm(b)
	if na <= appzero || nb <= appzero {
		return math.NaN()
	}
	arg := vDot(a, b) / (na * nb)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return math.Acos(arg) * toDegrees
}

//foldAngle folds an angle in degrees into [0,90]: the ring normal has an
//arbitrary sign, so any angle against it is only meaningful up to that
//sign. NaN folds to NaN.
func foldAngle(angle float64) float64 {
	if angle > 90 {
		return 180 - angle
	}
	return angle
}

//round3 and round2 round to fixed decimals for reporting. Records carry
//rounded values so repeated runs are bit-identical, and so the output
//matches what the CSV/JSON writers print.
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
