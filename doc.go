/*
 * doc.go, part of goxpi
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

/*Package xpi detects XH-pi interactions in protein structures.

An XH-pi interaction is a weak non-covalent contact between a donor heavy
atom X (N, O, S, and optionally C) bearing a covalently-bonded hydrogen, and
the face of an aromatic ring (PHE, TYR, HIS or either of the two TRP rings).
The package evaluates each candidate (donor, hydrogen, ring) triple against
two published geometric criteria sets:

Hudson et al.: d(X,Cpi) <= 4.5 A, the angle between the X-H vector and the
ring normal <= 40 deg, and the in-plane offset of X from the ring center
within a per-ring threshold (1.6 A for 5-membered rings, 2.0 A for
6-membered ones).

Plevin et al.: d(X,Cpi) < 4.3 A, the X-H...Cpi angle > 120 deg, and the
angle between the Cpi-X axis and the ring normal < 25 deg.

A triple that satisfies at least one full criteria set produces a single
Record carrying both verdicts and the measured geometry. Rings are located
by a best-fit plane through the canonical ring atoms of each aromatic
residue; residues with missing or degenerate ring atoms simply contribute
no candidates.

The sibling packages provide the rest of the pipeline: pdbio reads PDB and
mmCIF files into the structures consumed here, prep handles hydrogen
placement, ss assigns secondary structure, batch runs many files through
the detector concurrently, and xplot draws overview figures from the
detected records.
*/
package xpi
