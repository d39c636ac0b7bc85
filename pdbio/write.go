/*
 * write.go, part of goxpi
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

package pdbio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	xpi "github.com/rmera/goxpi"
)

//pdbAtomName lays an atom name out in the 4 columns the PDB format gives
//it: names of up to 3 characters start in the second column, so the
//element normally lines up at column 14.
func pdbAtomName(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return fmt.Sprintf(" %-3s", name)
}

//WritePDB writes the structure to w in PDB format. Multi-model
//structures get MODEL/ENDMDL blocks; a lone model is written bare. Only
//the records Read can parse back are emitted, which is all the external
//hydrogenation program needs.
func WritePDB(st *xpi.Structure, w io.Writer) error {
	if st == nil {
		panic(xpi.ErrNilStructure)
	}
	bw := bufio.NewWriter(w)
	multi := len(st.Models) > 1
	for i, m := range st.Models {
		if multi {
			fmt.Fprintf(bw, "MODEL %8d\n", i+1)
		}
		serial := 0
		for _, res := range m.Residues {
			for _, a := range res.Atoms {
				serial++
				tag := "ATOM  "
				if a.Het {
					tag = "HETATM"
				}
				el := strings.ToUpper(a.Symbol)
				fmt.Fprintf(bw, "%s%5d %s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
					tag, serial, pdbAtomName(a.Name), res.Name, res.Chain, res.SeqNum,
					a.Pos[0], a.Pos[1], a.Pos[2], a.Occupancy, a.Bfactor, el)
			}
		}
		if multi {
			fmt.Fprintln(bw, "ENDMDL")
		}
	}
	fmt.Fprintln(bw, "END")
	if err := bw.Flush(); err != nil {
		return xpi.Errorf(xpi.KindStructuralInput, st.Name, "write failed: %v", err)
	}
	return nil
}

//WritePDBFile writes the structure to the named file.
func WritePDBFile(st *xpi.Structure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return xpi.Errorf(xpi.KindStructuralInput, path, "can't create: %v", err)
	}
	defer f.Close()
	return WritePDB(st, f)
}
