/*
 * writers.go, part of goxpi
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

package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xpi "github.com/rmera/goxpi"
)

//simpleCols is the column set of simple-mode output, in emission order.
//It keeps the column set downstream scripts expect, plus the model
//column so ensemble runs stay interpretable.
var simpleCols = []string{
	"pdb", "model", "resolution",
	"pi_chain", "pi_res", "pi_id",
	"X_chain", "X_res", "X_id", "X_atom", "H_atom",
	"dist_X_Pi", "is_plevin", "is_hudson", "remark",
}

//detailedCols extends the simple set with secondary structure, geometry
//and B-factor columns.
var detailedCols = []string{
	"pdb", "model", "resolution",
	"pi_chain", "pi_res", "pi_id", "pi_ss_type", "pi_ss_id",
	"X_chain", "X_res", "X_id", "X_atom", "H_atom", "X_ss_type", "X_ss_id",
	"dist_X_Pi", "theta", "angle_XH_Pi", "angle_XPCN", "proj_dist", "seq_sep",
	"pi_avg_b", "X_b",
	"pi_center_x", "pi_center_y", "pi_center_z",
	"X_xyz_x", "X_xyz_y", "X_xyz_z",
	"is_plevin", "is_hudson", "remark",
}

//colValue returns one record field by column name, as the value to
//serialize. Adding a column means extending this switch and one of the
//column slices above.
func colValue(r *xpi.Record, col string) interface{} {
	switch col {
	case "pdb":
		return r.PDB
	case "model":
		return r.Model
	case "resolution":
		return r.Resolution
	case "pi_chain":
		return r.PiChain
	case "pi_res":
		return r.PiRes
	case "pi_id":
		return r.PiID
	case "pi_ss_type":
		return r.PiSSType
	case "pi_ss_id":
		return r.PiSSID
	case "X_chain":
		return r.XChain
	case "X_res":
		return r.XRes
	case "X_id":
		return r.XID
	case "X_atom":
		return r.XAtom
	case "H_atom":
		return r.HAtom
	case "X_ss_type":
		return r.XSSType
	case "X_ss_id":
		return r.XSSID
	case "dist_X_Pi":
		return r.DistXPi
	case "theta":
		return r.Theta
	case "angle_XH_Pi":
		return r.AngleXHPi
	case "angle_XPCN":
		return r.AngleTilt
	case "proj_dist":
		return r.ProjDist
	case "seq_sep":
		return r.SeqSep
	case "pi_avg_b":
		return r.PiAvgB
	case "X_b":
		return r.XB
	case "pi_center_x":
		return r.PiCenterX
	case "pi_center_y":
		return r.PiCenterY
	case "pi_center_z":
		return r.PiCenterZ
	case "X_xyz_x":
		return r.XX
	case "X_xyz_y":
		return r.XY
	case "X_xyz_z":
		return r.XZ
	case "is_plevin":
		return r.Plevin
	case "is_hudson":
		return r.Hudson
	case "remark":
		return r.Remark
	}
	return ""
}

//csvField formats one value for a CSV cell. Floats use the shortest
//representation that round-trips; the records are already rounded for
//reporting, so this stays readable.
func csvField(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprintf("%v", v)
}

//WriteCSV writes the records as CSV, header first, with the simple or
//detailed column set.
func WriteCSV(w io.Writer, recs []*xpi.Record, detailed bool) error {
	cols := simpleCols
	if detailed {
		cols = detailedCols
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return xpi.Errorf(xpi.KindConfiguration, "", "CSV write failed: %v", err)
	}
	row := make([]string, len(cols))
	for _, r := range recs {
		for i, c := range cols {
			row[i] = csvField(colValue(r, c))
		}
		if err := cw.Write(row); err != nil {
			return xpi.Errorf(xpi.KindConfiguration, "", "CSV write failed: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return xpi.Errorf(xpi.KindConfiguration, "", "CSV write failed: %v", err)
	}
	return nil
}

//WriteJSON writes the records as an indented JSON array. Detailed mode
//marshals the full records; simple mode projects each record onto the
//simple column set first, so downstream readers see the same keys the
//CSV writer emits.
func WriteJSON(w io.Writer, recs []*xpi.Record, detailed bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if detailed {
		if recs == nil {
			recs = []*xpi.Record{}
		}
		if err := enc.Encode(recs); err != nil {
			return xpi.Errorf(xpi.KindConfiguration, "", "JSON write failed: %v", err)
		}
		return nil
	}
	simple := make([]map[string]interface{}, 0, len(recs))
	for _, r := range recs {
		m := make(map[string]interface{}, len(simpleCols))
		for _, c := range simpleCols {
			m[c] = colValue(r, c)
		}
		simple = append(simple, m)
	}
	if err := enc.Encode(simple); err != nil {
		return xpi.Errorf(xpi.KindConfiguration, "", "JSON write failed: %v", err)
	}
	return nil
}

//WriteFailures writes the failure list as JSON. An empty list still
//produces a valid (empty) array, so the output shape is stable.
func WriteFailures(w io.Writer, fails []Failure) error {
	if fails == nil {
		fails = []Failure{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fails); err != nil {
		return xpi.Errorf(xpi.KindConfiguration, "", "JSON write failed: %v", err)
	}
	return nil
}

//Failures collects the failure descriptors out of a result set.
func Failures(results []Result) []Failure {
	var fails []Failure
	for _, r := range results {
		if r.Failure != nil {
			fails = append(fails, *r.Failure)
		}
	}
	return fails
}

//Merge concatenates the record sets of a result set, in result order.
//Records carry their source structure in the pdb column, so merging
//loses nothing. The returned slice is never nil: a batch that found no
//interactions merges into an empty record set, which is a valid result
//every consumer (writers, plotters) must accept.
func Merge(results []Result) []*xpi.Record {
	recs := []*xpi.Record{}
	for _, r := range results {
		recs = append(recs, r.Records...)
	}
	return recs
}

//outBase strips directory and structure-file extensions off an input
//path, for naming per-input output files.
func outBase(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, ext := range []string{".gz", ".pdb", ".ent", ".cif"} {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			lower = lower[:len(lower)-len(ext)]
		}
	}
	return base
}

//WriteOutput emits a result set under dir: one merged records file named
//after name (default "interactions") or, in separate mode, one file per
//input that produced records. format is "json" or "csv". Failures, if
//any, always go to one merged <name>_failures.json. It returns the paths
//written.
func WriteOutput(dir, name, format string, results []Result, separate, detailed bool) ([]string, error) {
	if format != "json" && format != "csv" {
		return nil, xpi.Errorf(xpi.KindConfiguration, "", "unknown output format %q, want json or csv", format)
	}
	if name == "" {
		name = "interactions"
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, xpi.Errorf(xpi.KindConfiguration, dir, "can't create output dir: %v", err)
		}
	}
	var written []string
	emit := func(path string, recs []*xpi.Record) error {
		f, err := os.Create(path)
		if err != nil {
			return xpi.Errorf(xpi.KindConfiguration, path, "can't create output: %v", err)
		}
		defer f.Close()
		if format == "csv" {
			err = WriteCSV(f, recs, detailed)
		} else {
			err = WriteJSON(f, recs, detailed)
		}
		if err == nil {
			written = append(written, path)
		}
		return err
	}
	if separate {
		for _, r := range results {
			if r.Failure != nil {
				continue
			}
			path := filepath.Join(dir, outBase(r.File)+"."+format)
			if err := emit(path, r.Records); err != nil {
				return written, err
			}
		}
	} else {
		path := filepath.Join(dir, name+"."+format)
		if err := emit(path, Merge(results)); err != nil {
			return written, err
		}
	}
	if fails := Failures(results); len(fails) > 0 {
		path := filepath.Join(dir, name+"_failures.json")
		f, err := os.Create(path)
		if err != nil {
			return written, xpi.Errorf(xpi.KindConfiguration, path, "can't create output: %v", err)
		}
		defer f.Close()
		if err := WriteFailures(f, fails); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
