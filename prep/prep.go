/*
 * prep.go, part of goxpi
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

//Package prep handles hydrogen preparation of structures before
//detection. The modes follow the 0-5 h-change convention: 0 keeps the
//file's hydrogens untouched (the right choice for neutron structures),
//2 strips them, and the re-adding modes (1, 3, 4, 5) run the external
//reduce program (Word et al. (1999) J. Mol. Biol. 285, 1735-1747,
//http://kinemage.biochem.duke.edu) over a PDB serialization of the
//structure and read its protonated output back. Mode 4 additionally
//strips the hydrogens reduce puts on waters, and is the default of the
//whole pipeline.
package prep

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"

	xpi "github.com/rmera/goxpi"
	"github.com/rmera/goxpi/pdbio"
)

//Hydrogen handling modes.
const (
	NoChange      = 0 //keep hydrogens as read
	Shift         = 1 //recompute positions of existing hydrogens
	Remove        = 2 //strip all hydrogens
	ReAdd         = 3 //strip and re-add everywhere
	ReAddButWater = xpi.ReAddButWater //strip and re-add, but leave waters bare
	ReAddKnown    = 5 //strip and re-add on standard residues only
)

//DefaultReduceName is the executable looked up in PATH when no explicit
//path is configured.
const DefaultReduceName = "reduce"

//Options holds the preparation settings.
type Options struct {
	hmode      int
	reducePath string
}

//DefaultOptions returns the default preparation settings: ReAddButWater
//with reduce taken from PATH.
func DefaultOptions() *Options {
	return &Options{hmode: ReAddButWater, reducePath: DefaultReduceName}
}

//HMode returns the current hydrogen mode, after setting it to the first
//value given, if any.
func (o *Options) HMode(mode ...int) int {
	if len(mode) > 0 {
		o.hmode = mode[0]
	}
	return o.hmode
}

//ReducePath returns the path to the reduce executable, after setting it
//to the first value given, if any. An empty string resets the default.
func (o *Options) ReducePath(path ...string) string {
	if len(path) > 0 {
		o.reducePath = path[0]
		if o.reducePath == "" {
			o.reducePath = DefaultReduceName
		}
	}
	return o.reducePath
}

//Validate checks that the mode is in the 0-5 range.
func (o *Options) Validate() error {
	if o.hmode < NoChange || o.hmode > ReAddKnown {
		return xpi.Errorf(xpi.KindConfiguration, "", "hydrogen mode %d out of range 0-5", o.hmode)
	}
	return nil
}

//isHydrogen tells whether an atom is a hydrogen or deuterium.
func isHydrogen(a *xpi.Atom) bool {
	return a.Symbol == "H" || a.Symbol == "D"
}

//stripHydrogens removes hydrogens from every model, in place. When
//watersOnly is set only water residues are touched.
func stripHydrogens(st *xpi.Structure, watersOnly bool) {
	for _, m := range st.Models {
		for _, res := range m.Residues {
			if watersOnly && !res.Water() {
				continue
			}
			kept := res.Atoms[:0]
			for _, a := range res.Atoms {
				if !isHydrogen(a) {
					kept = append(kept, a)
				}
			}
			res.Atoms = kept
		}
	}
}

//Prepare applies the configured hydrogen mode to the structure and
//returns the prepared one. NoChange and Remove never touch the external
//program. The re-adding modes shell out to reduce, which only speaks
//single-model PDB, so each model is piped through it separately; the
//context bounds the external runs. The returned structure carries the
//mode in its HMode field, which the donor enumerator consults.
func Prepare(ctx context.Context, st *xpi.Structure, opts *Options) (*xpi.Structure, error) {
	if st == nil {
		panic(xpi.ErrNilStructure)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	mode := opts.hmode
	st.HMode = mode
	switch mode {
	case NoChange:
		return st, nil
	case Remove:
		stripHydrogens(st, false)
		return st, nil
	}
	stripHydrogens(st, false)
	for i, m := range st.Models {
		prot, err := reduceModel(ctx, st, m, opts.reducePath)
		if err != nil {
			return nil, err
		}
		st.Models[i] = prot
	}
	if mode == ReAddButWater {
		stripHydrogens(st, true)
	}
	return st, nil
}

//reduceModel pipes one model through reduce and returns the protonated
//model. Reduce exits with status 1 even on success, so only failures to
//produce parseable output count as errors.
func reduceModel(ctx context.Context, st *xpi.Structure, m *xpi.Model, reducePath string) (*xpi.Model, error) {
	single := &xpi.Structure{Name: st.Name, Models: []*xpi.Model{m}}
	var in bytes.Buffer
	if err := pdbio.WritePDB(single, &in); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, reducePath, "-NOFLIP", "-Quiet", "-")
	cmd.Stdin = &in
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, xpi.Errorf(xpi.KindHydrogenization, st.Name, "can't pipe to %s: %v", reducePath, err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return nil, xpi.Errorf(xpi.KindHydrogenization, st.Name, "can't run %s: %v", reducePath, err)
	}
	prot, perr := pdbio.ReadPDB(bufio.NewReader(out), st.Name)
	werr := cmd.Wait()
	if perr != nil {
		detail := ""
		if stderr.Len() > 0 {
			detail = fmt.Sprintf(" (%s said: %.200s)", reducePath, stderr.String())
		}
		return nil, xpi.Errorf(xpi.KindHydrogenization, st.Name, "no usable output from %s: %v%s", reducePath, perr, detail)
	}
	//reduce signals flipped side chains through its exit status
	if werr != nil {
		if _, ok := werr.(*exec.ExitError); !ok {
			return nil, xpi.Errorf(xpi.KindHydrogenization, st.Name, "%s failed: %v", reducePath, werr)
		}
	}
	pm := prot.Models[0]
	pm.ID = m.ID
	return pm, nil
}
