/*
 * pdb.go, part of goxpi
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

//Package pdbio reads (and minimally writes) protein structure files in
//PDB and mmCIF format, producing the xpi.Structure tables the detector
//consumes. Both formats support multiple models; gzipped files are
//handled transparently. Only what the XH-pi pipeline needs is parsed:
//atoms with elements, positions, occupancies and B-factors, residue and
//chain identity, resolution, and helix/sheet annotations.
package pdbio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	xpi "github.com/rmera/goxpi"
)

//Read opens a structure file and dispatches on its extension: .pdb and
//.ent go to ReadPDB, .cif to ReadCIF, each optionally with a .gz on top.
//The structure name is the file's 4-character PDB id when the name looks
//like one (e.g. 1abc.pdb), otherwise the base name without extensions.
func Read(path string) (*xpi.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xpi.Errorf(xpi.KindStructuralInput, path, "can't open: %v", err)
	}
	defer f.Close()
	var r io.Reader = f
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	if strings.HasSuffix(lower, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, xpi.Errorf(xpi.KindStructuralInput, path, "bad gzip: %v", err)
		}
		defer gz.Close()
		r = gz
		base = base[:len(base)-3]
		lower = lower[:len(lower)-3]
	}
	name := structureName(base)
	switch {
	case strings.HasSuffix(lower, ".pdb"), strings.HasSuffix(lower, ".ent"):
		return ReadPDB(r, name)
	case strings.HasSuffix(lower, ".cif"):
		return ReadCIF(r, name)
	}
	return nil, xpi.Errorf(xpi.KindStructuralInput, path, "unknown structure format")
}

//structureName extracts a structure identifier from a file name: the
//4-char id if the name starts with one, or the name minus extension.
func structureName(base string) string {
	dot := strings.IndexByte(base, '.')
	if dot == 4 {
		return base[:4]
	}
	if dot > 0 {
		return base[:dot]
	}
	return base
}

//symbolFromName guesses a chemical element from a PDB atom name when the
//element columns are empty. Covers the bio-elements this library cares
//about; 4-character names are hydrogens in the usual conventions.
func symbolFromName(name string) string {
	if name == "" {
		return ""
	}
	if len(name) == 4 {
		if name[0] == 'D' {
			return "D"
		}
		return "H"
	}
	switch name[0] {
	case 'H':
		return "H"
	case 'D':
		return "D"
	case 'C':
		if name == "CL" {
			return "Cl"
		}
		return "C"
	case 'N':
		if name == "NA" {
			return "Na"
		}
		return "N"
	case 'O':
		return "O"
	case 'P':
		return "P"
	case 'S':
		if name == "SE" {
			return "Se"
		}
		return "S"
	}
	return ""
}

//a scratch line padded to 80 columns so the fixed-column slicing below
//never goes out of range on short lines.
func pad80(line string) string {
	if len(line) >= 80 {
		return line
	}
	return line + strings.Repeat(" ", 80-len(line))
}

//parseAtomLine parses one ATOM/HETATM line. Errors on the mandatory
//fields are collected and checked at the end, in one place.
func parseAtomLine(line string) (*xpi.Atom, string, int, string, error) {
	line = pad80(line)
	errs := make([]error, 5)
	a := new(xpi.Atom)
	a.Het = strings.HasPrefix(line, "HETATM")
	a.ID, errs[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	a.Name = strings.TrimSpace(line[12:16])
	resname := strings.TrimSpace(line[17:20])
	chain := strings.TrimSpace(line[21:22])
	seq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	errs[1] = err
	a.Pos[0], errs[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	a.Pos[1], errs[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	a.Pos[2], errs[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	//occupancy and B-factor are not worth failing a file over; they
	//default to zero when absent or malformed
	a.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	a.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	a.Symbol = strings.TrimSpace(line[76:78])
	if a.Symbol != "" && len(a.Symbol) == 2 {
		a.Symbol = a.Symbol[:1] + strings.ToLower(a.Symbol[1:])
	}
	if a.Symbol == "" {
		a.Symbol = symbolFromName(a.Name)
	}
	for _, e := range errs {
		if e != nil {
			return nil, "", 0, "", e
		}
	}
	return a, resname, seq, chain, nil
}

//ReadPDB parses a PDB file from r. Every MODEL/ENDMDL block becomes one
//xpi.Model; files without MODEL records yield a single model "1".
//Alternate locations other than blank or "A" are dropped. REMARK 2 gives
//the resolution, HELIX and SHEET the secondary structure annotations.
func ReadPDB(r io.Reader, name string) (*xpi.Structure, error) {
	st := &xpi.Structure{Name: name}
	var cur *xpi.Model
	var curRes *xpi.Residue
	natoms := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			padded := pad80(line)
			if alt := padded[16]; alt != ' ' && alt != 'A' {
				continue
			}
			a, resname, seq, chain, err := parseAtomLine(line)
			if err != nil {
				return nil, xpi.Errorf(xpi.KindStructuralInput, name,
					"bad %s record on line %d: %v", strings.Fields(line)[0], lineno, err)
			}
			if cur == nil {
				cur = &xpi.Model{ID: "1"}
				st.Models = append(st.Models, cur)
				curRes = nil
			}
			if curRes == nil || curRes.Name != resname || curRes.SeqNum != seq || curRes.Chain != chain {
				curRes = &xpi.Residue{Name: resname, SeqNum: seq, Chain: chain, Het: a.Het}
				cur.Residues = append(cur.Residues, curRes)
			}
			a.ResIndex = len(cur.Residues) - 1
			curRes.Atoms = append(curRes.Atoms, a)
			natoms++
		case strings.HasPrefix(line, "MODEL"):
			id := strings.TrimSpace(line[5:])
			if id == "" {
				id = strconv.Itoa(len(st.Models) + 1)
			}
			cur = &xpi.Model{ID: id}
			st.Models = append(st.Models, cur)
			curRes = nil
		case strings.HasPrefix(line, "ENDMDL"):
			cur = nil
			curRes = nil
		case strings.HasPrefix(line, "TER"):
			curRes = nil
		case strings.HasPrefix(line, "REMARK   2"):
			parseResolutionRemark(line, st)
		case strings.HasPrefix(line, "HELIX"):
			parseHelix(line, st)
		case strings.HasPrefix(line, "SHEET"):
			parseSheet(line, st)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xpi.Errorf(xpi.KindStructuralInput, name, "read failed: %v", err)
	}
	if natoms == 0 {
		return nil, xpi.Errorf(xpi.KindStructuralInput, name, "no atoms found")
	}
	return st, nil
}

//parseResolutionRemark extracts the resolution from a
//"REMARK   2 RESOLUTION.    1.74 ANGSTROMS." line. NMR files say NOT
//APPLICABLE there, which leaves the resolution at zero.
func parseResolutionRemark(line string, st *xpi.Structure) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.HasPrefix(f, "RESOLUTION") && i+1 < len(fields) {
			if res, err := strconv.ParseFloat(fields[i+1], 64); err == nil {
				st.Resolution = res
			}
			return
		}
	}
}

//parseHelix reads a HELIX record (fixed columns per PDB v3). Records too
//mangled to parse are skipped: secondary structure is decoration, not
//worth failing a file.
func parseHelix(line string, st *xpi.Structure) {
	line = pad80(line)
	start, err1 := strconv.Atoi(strings.TrimSpace(line[21:25]))
	end, err2 := strconv.Atoi(strings.TrimSpace(line[33:37]))
	if err1 != nil || err2 != nil {
		return
	}
	class, err := strconv.Atoi(strings.TrimSpace(line[38:40]))
	if err != nil {
		class = 1
	}
	st.Helices = append(st.Helices, xpi.Helix{
		Chain: strings.TrimSpace(line[19:20]),
		Start: start,
		End:   end,
		Class: class,
	})
}

//parseSheet reads one strand of a SHEET record.
func parseSheet(line string, st *xpi.Structure) {
	line = pad80(line)
	start, err1 := strconv.Atoi(strings.TrimSpace(line[22:26]))
	end, err2 := strconv.Atoi(strings.TrimSpace(line[33:37]))
	if err1 != nil || err2 != nil {
		return
	}
	st.Strands = append(st.Strands, xpi.Strand{
		Chain: strings.TrimSpace(line[21:22]),
		Start: start,
		End:   end,
	})
}
