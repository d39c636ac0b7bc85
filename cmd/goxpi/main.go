/*
 * main.go, part of goxpi
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

//goxpi detects XH-pi interactions in protein structures. It scans PDB
//and mmCIF files (plain or gzipped), applies the Hudson and Plevin
//geometric criteria to every donor/aromatic-ring pair, and writes the
//interactions found as JSON or CSV, optionally with analysis figures.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	xpi "github.com/rmera/goxpi"
	"github.com/rmera/goxpi/batch"
	"github.com/rmera/goxpi/prep"
	"github.com/rmera/goxpi/xplot"
)

type cliFlags struct {
	piRes         []string
	donorRes      []string
	donorAtom     []string
	model         string
	hMode         int
	jobs          int
	separate      bool
	detailed      bool
	fileType      string
	outDir        string
	outputName    string
	verbose       bool
	logFile       string
	reducePath    string
	setReducePath string
	plot          bool
}

//configDir returns the directory holding the persisted configuration.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "goxpi")
}

//loadConfig reads the persisted defaults, if any. A missing file is not
//an error; anything else is reported but not fatal.
func loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())
	if err := viper.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			log.Printf("goxpi: ignoring unreadable config: %v", err)
		}
	}
}

//persistReducePath stores the reduce path as the new default.
func persistReducePath(path string) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("can't create config dir: %v", err)
	}
	viper.Set("reduce_path", path)
	return viper.WriteConfigAs(filepath.Join(dir, "config.yaml"))
}

//splitNames accepts both repeated flags and comma-joined values.
func splitNames(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

//run is the whole pipeline behind the root command. The returned error
//makes the process exit nonzero; zero interactions found is success.
func run(cmd *cobra.Command, args []string, fl *cliFlags) error {
	if fl.setReducePath != "" {
		if err := persistReducePath(fl.setReducePath); err != nil {
			return err
		}
		fmt.Printf("reduce path %q saved as default\n", fl.setReducePath)
		if len(args) == 0 {
			return nil
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("no input files or directories given")
	}
	if fl.logFile != "" {
		lf, err := os.Create(fl.logFile)
		if err != nil {
			return fmt.Errorf("can't open log file: %v", err)
		}
		defer lf.Close()
		log.SetOutput(lf)
	}
	opts := batch.DefaultOptions()
	opts.Jobs(fl.jobs)
	opts.Verbose(fl.verbose)
	if names := splitNames(fl.piRes); len(names) > 0 {
		opts.Detect().PiRes(names...)
	}
	if names := splitNames(fl.donorRes); len(names) > 0 {
		opts.Detect().DonorRes(names...)
	}
	if els := splitNames(fl.donorAtom); len(els) > 0 {
		opts.Detect().DonorElements(els...)
	}
	opts.Detect().Models(fl.model)
	opts.Detect().Detailed(fl.detailed)
	opts.Prep().HMode(fl.hMode)
	reduce := fl.reducePath
	if reduce == "" {
		reduce = viper.GetString("reduce_path")
	}
	opts.Prep().ReducePath(reduce)
	files, err := batch.FindFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no structure files found under the given inputs")
	}
	if fl.verbose {
		log.Printf("goxpi: %d files, %d workers, h-mode %d", len(files), opts.Jobs(), fl.hMode)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, runErr := batch.Run(ctx, files, opts)
	written, werr := batch.WriteOutput(fl.outDir, fl.outputName, fl.fileType, results, fl.separate, fl.detailed)
	if werr != nil {
		return werr
	}
	if fl.plot {
		merged := batch.Merge(results)
		base := filepath.Join(fl.outDir, fl.outputName)
		if fl.outputName == "" {
			base = filepath.Join(fl.outDir, "interactions")
		}
		if err := xplot.ThetaScatter(merged, "XH-pi interactions", base+"_theta"); err != nil {
			log.Printf("goxpi: scatter figure failed: %v", err)
		}
		if err := xplot.DistHistogram(merged, 16, "X-Cpi distances", base+"_dist"); err != nil {
			log.Printf("goxpi: histogram figure failed: %v", err)
		}
	}
	nrec := len(batch.Merge(results))
	fails := batch.Failures(results)
	fmt.Printf("%d interactions in %d of %d files", nrec, len(results)-len(fails), len(files))
	if len(written) > 0 {
		fmt.Printf("; output in %s", strings.Join(written, ", "))
	}
	fmt.Println()
	if runErr != nil {
		return runErr
	}
	if len(fails) > 0 {
		for _, f := range fails {
			log.Printf("goxpi: FAILED %s (%s): %s", f.File, f.Kind, f.Message)
		}
		return fmt.Errorf("%d of %d files failed", len(fails), len(files))
	}
	return nil
}

func main() {
	log.SetFlags(0)
	fl := new(cliFlags)
	root := &cobra.Command{
		Use:   "goxpi [flags] inputs...",
		Short: "detect XH-pi interactions in protein structures",
		Long: `goxpi scans PDB/mmCIF files for XH-pi interactions between hydrogen
donors and aromatic side-chain rings (PHE, TYR, TRP, HIS), classifying
each contact under the Hudson and Plevin geometric criteria.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, fl)
		},
	}
	f := root.Flags()
	f.StringSliceVar(&fl.piRes, "pi-res", nil, "restrict pi residues (e.g. TRP,TYR)")
	f.StringSliceVar(&fl.donorRes, "donor-res", nil, "restrict donor residues")
	f.StringSliceVar(&fl.donorAtom, "donor-atom", nil, "restrict donor elements (subset of C,N,O,S)")
	f.StringVar(&fl.model, "model", "0", `model to scan: an index or "all"`)
	f.IntVar(&fl.hMode, "h-mode", prep.ReAddButWater, "hydrogen handling mode 0-5")
	f.IntVar(&fl.jobs, "jobs", 1, "parallel workers")
	f.BoolVar(&fl.separate, "separate", false, "one output file per input instead of a merged one")
	f.BoolVar(&fl.detailed, "detailed", false, "emit geometry/B-factor/secondary structure columns")
	f.StringVar(&fl.fileType, "file-type", "json", "output format: json or csv")
	f.StringVar(&fl.outDir, "out-dir", ".", "output directory")
	f.StringVar(&fl.outputName, "output-name", "interactions", "base name of merged output")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "log per-file progress")
	f.StringVar(&fl.logFile, "log", "", "write the log to this file instead of stderr")
	f.StringVar(&fl.reducePath, "reduce-path", "", "path to the reduce executable (overrides the saved default)")
	f.StringVar(&fl.setReducePath, "set-reduce-path", "", "persist a reduce path as the default and continue")
	f.BoolVar(&fl.plot, "plot", false, "also write theta-scatter and distance-histogram figures")
	loadConfig()
	if err := root.Execute(); err != nil {
		if xerr, ok := err.(xpi.Error); ok {
			log.Printf("goxpi: [%s] %v", xerr.Kind(), xerr)
		} else {
			log.Printf("goxpi: %v", err)
		}
		os.Exit(1)
	}
}
