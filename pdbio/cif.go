/*
 * cif.go, part of goxpi
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
	"io"
	"strconv"
	"strings"

	xpi "github.com/rmera/goxpi"
)

//cifLoop is one loop_ table: the tag names in declaration order and the
//data rows, each split on whitespace. Multi-line (semicolon) values are
//not supported; the atom_site and struct_conf categories never use them.
type cifLoop struct {
	tags []string
	rows [][]string
}

//col returns the index of tag in the loop, or -1.
func (l *cifLoop) col(tag string) int {
	for i, t := range l.tags {
		if t == tag {
			return i
		}
	}
	return -1
}

//get returns row[col(tag)], or "" when the tag or the field is absent.
func (l *cifLoop) get(row []string, tag string) string {
	i := l.col(tag)
	if i < 0 || i >= len(row) {
		return ""
	}
	v := row[i]
	if v == "." || v == "?" {
		return ""
	}
	return v
}

//ReadCIF parses an mmCIF file from r. It walks the file loop by loop,
//keeping only the categories the pipeline needs: _atom_site for the
//atoms, _struct_conf and _struct_sheet_range for secondary structure,
//plus the scalar _refine.ls_d_res_high for the resolution and _entry.id
//for the name. Everything else is skipped.
func ReadCIF(r io.Reader, name string) (*xpi.Structure, error) {
	st := &xpi.Structure{Name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	var loop *cifLoop
	inTags := false
	wanted := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			if loop != nil && wanted {
				cifDispatch(loop, st)
			}
			loop, inTags, wanted = nil, false, false
		case line == "loop_":
			//adjacent loops need no separator in CIF
			if loop != nil && wanted {
				cifDispatch(loop, st)
			}
			loop = &cifLoop{}
			inTags = true
			wanted = false
		case strings.HasPrefix(line, "_"):
			fields := strings.Fields(line)
			tag := fields[0]
			if loop != nil && inTags {
				loop.tags = append(loop.tags, tag)
				if strings.HasPrefix(tag, "_atom_site.") ||
					strings.HasPrefix(tag, "_struct_conf.") ||
					strings.HasPrefix(tag, "_struct_sheet_range.") {
					wanted = true
				}
				continue
			}
			//scalar key-value; a tag after data rows also ends the loop
			if loop != nil && !inTags && wanted {
				cifDispatch(loop, st)
			}
			loop, inTags, wanted = nil, false, false
			if len(fields) < 2 {
				continue
			}
			switch tag {
			case "_refine.ls_d_res_high":
				if res, err := strconv.ParseFloat(fields[1], 64); err == nil {
					st.Resolution = res
				}
			case "_entry.id":
				if st.Name == "" {
					st.Name = strings.Trim(fields[1], "'\"")
				}
			}
		case strings.HasPrefix(line, "data_"):
			if st.Name == "" {
				st.Name = line[len("data_"):]
			}
			loop, inTags, wanted = nil, false, false
		default:
			if loop == nil {
				continue
			}
			inTags = false
			if wanted {
				loop.rows = append(loop.rows, strings.Fields(line))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xpi.Errorf(xpi.KindStructuralInput, name, "read failed: %v", err)
	}
	if loop != nil && wanted {
		cifDispatch(loop, st)
	}
	if len(st.Models) == 0 {
		return nil, xpi.Errorf(xpi.KindStructuralInput, name, "no atoms found")
	}
	return st, nil
}

//cifDispatch routes a finished loop to the right consumer, based on the
//category of its first tag.
func cifDispatch(loop *cifLoop, st *xpi.Structure) {
	if len(loop.tags) == 0 {
		return
	}
	switch {
	case strings.HasPrefix(loop.tags[0], "_atom_site."):
		cifAtoms(loop, st)
	case strings.HasPrefix(loop.tags[0], "_struct_conf."):
		cifHelices(loop, st)
	case strings.HasPrefix(loop.tags[0], "_struct_sheet_range."):
		cifStrands(loop, st)
	}
}

//cifField prefers the author-assigned tag and falls back to the
//label-assigned one, which is the mmCIF convention for matching what the
//equivalent PDB file would say.
func cifField(l *cifLoop, row []string, auth, label string) string {
	if v := l.get(row, auth); v != "" {
		return v
	}
	return l.get(row, label)
}

//cifAtoms fills the structure's models from an _atom_site loop. Rows
//with an alternate location other than blank or A are dropped, matching
//the PDB reader.
func cifAtoms(l *cifLoop, st *xpi.Structure) {
	var cur *xpi.Model
	var curRes *xpi.Residue
	for _, row := range l.rows {
		if alt := l.get(row, "_atom_site.label_alt_id"); alt != "" && alt != "A" {
			continue
		}
		modelID := l.get(row, "_atom_site.pdbx_PDB_model_num")
		if modelID == "" {
			modelID = "1"
		}
		if cur == nil || cur.ID != modelID {
			cur = &xpi.Model{ID: modelID}
			st.Models = append(st.Models, cur)
			curRes = nil
		}
		a := new(xpi.Atom)
		a.Het = l.get(row, "_atom_site.group_PDB") == "HETATM"
		a.ID, _ = strconv.Atoi(l.get(row, "_atom_site.id"))
		a.Name = strings.Trim(l.get(row, "_atom_site.label_atom_id"), "\"'")
		a.Symbol = l.get(row, "_atom_site.type_symbol")
		if len(a.Symbol) == 2 {
			a.Symbol = a.Symbol[:1] + strings.ToLower(a.Symbol[1:])
		}
		if a.Symbol == "" {
			a.Symbol = symbolFromName(a.Name)
		}
		var perr error
		for i, tag := range []string{"_atom_site.Cartn_x", "_atom_site.Cartn_y", "_atom_site.Cartn_z"} {
			a.Pos[i], perr = strconv.ParseFloat(l.get(row, tag), 64)
			if perr != nil {
				break
			}
		}
		if perr != nil {
			continue
		}
		a.Occupancy, _ = strconv.ParseFloat(l.get(row, "_atom_site.occupancy"), 64)
		a.Bfactor, _ = strconv.ParseFloat(l.get(row, "_atom_site.B_iso_or_equiv"), 64)
		resname := cifField(l, row, "_atom_site.auth_comp_id", "_atom_site.label_comp_id")
		chain := cifField(l, row, "_atom_site.auth_asym_id", "_atom_site.label_asym_id")
		seq, serr := strconv.Atoi(cifField(l, row, "_atom_site.auth_seq_id", "_atom_site.label_seq_id"))
		if serr != nil {
			continue
		}
		if curRes == nil || curRes.Name != resname || curRes.SeqNum != seq || curRes.Chain != chain {
			curRes = &xpi.Residue{Name: resname, SeqNum: seq, Chain: chain, Het: a.Het}
			cur.Residues = append(cur.Residues, curRes)
		}
		a.ResIndex = len(cur.Residues) - 1
		curRes.Atoms = append(curRes.Atoms, a)
	}
}

//cifHelices fills the helix table from a _struct_conf loop. Only HELX
//conformations count; the loop also lists turns and bends in some files.
func cifHelices(l *cifLoop, st *xpi.Structure) {
	for _, row := range l.rows {
		if !strings.HasPrefix(l.get(row, "_struct_conf.conf_type_id"), "HELX") {
			continue
		}
		start, err1 := strconv.Atoi(cifField(l, row, "_struct_conf.beg_auth_seq_id", "_struct_conf.beg_label_seq_id"))
		end, err2 := strconv.Atoi(cifField(l, row, "_struct_conf.end_auth_seq_id", "_struct_conf.end_label_seq_id"))
		if err1 != nil || err2 != nil {
			continue
		}
		class, err := strconv.Atoi(l.get(row, "_struct_conf.pdbx_PDB_helix_class"))
		if err != nil {
			class = 1
		}
		st.Helices = append(st.Helices, xpi.Helix{
			Chain: cifField(l, row, "_struct_conf.beg_auth_asym_id", "_struct_conf.beg_label_asym_id"),
			Start: start,
			End:   end,
			Class: class,
		})
	}
}

//cifStrands fills the strand table from a _struct_sheet_range loop.
func cifStrands(l *cifLoop, st *xpi.Structure) {
	for _, row := range l.rows {
		start, err1 := strconv.Atoi(cifField(l, row, "_struct_sheet_range.beg_auth_seq_id", "_struct_sheet_range.beg_label_seq_id"))
		end, err2 := strconv.Atoi(cifField(l, row, "_struct_sheet_range.end_auth_seq_id", "_struct_sheet_range.end_label_seq_id"))
		if err1 != nil || err2 != nil {
			continue
		}
		st.Strands = append(st.Strands, xpi.Strand{
			Chain: cifField(l, row, "_struct_sheet_range.beg_auth_asym_id", "_struct_sheet_range.beg_label_asym_id"),
			Start: start,
			End:   end,
		})
	}
}
