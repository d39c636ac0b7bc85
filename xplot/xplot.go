/*
 * xplot.go, part of goxpi
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

//Package xplot draws analysis figures from detection results: a scatter
//of the Hudson angle against the X-Cpi distance, and a distance
//histogram. The geometry columns are only filled in detailed records;
//feeding simple records to the scatter gives a meaningless plot.
package xplot

import (
	"fmt"
	"image/color"

	xpi "github.com/rmera/goxpi"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//verdict colors: both systems, Hudson only, Plevin only, neither.
var (
	colBoth    = color.RGBA{R: 40, G: 130, B: 60, A: 255}
	colHudson  = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	colPlevin  = color.RGBA{R: 220, G: 140, B: 0, A: 255}
	colNeither = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//split groups records by which criteria systems they pass, in legend
//order.
func split(recs []*xpi.Record) (names []string, groups [][]*xpi.Record, cols []color.RGBA) {
	names = []string{"Hudson+Plevin", "Hudson", "Plevin", "neither"}
	cols = []color.RGBA{colBoth, colHudson, colPlevin, colNeither}
	groups = make([][]*xpi.Record, 4)
	for _, r := range recs {
		switch {
		case r.Hudson && r.Plevin:
			groups[0] = append(groups[0], r)
		case r.Hudson:
			groups[1] = append(groups[1], r)
		case r.Plevin:
			groups[2] = append(groups[2], r)
		default:
			groups[3] = append(groups[3], r)
		}
	}
	return names, groups, cols
}

//ThetaScatter plots the Hudson angle theta against the X-Cpi distance,
//one point per record, colored by which criteria systems the record
//passes. The figure goes to plotname.png.
func ThetaScatter(recs []*xpi.Record, title, plotname string) error {
	if recs == nil {
		panic(xpi.ErrNilRecords)
	}
	p := basicPlot(title, "d(X, Cpi) / A", "theta / deg")
	p.X.Min = 0
	p.X.Max = xpi.DistHudsonMax + 0.5
	p.Y.Min = 0
	p.Y.Max = 90
	names, groups, cols := split(recs)
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(g))
		for j, r := range g {
			pts[j].X = r.DistXPi
			pts[j].Y = r.Theta
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errDecorate(err, "ThetaScatter")
		}
		s.GlyphStyle.Color = cols[i]
		p.Add(s)
		p.Legend.Add(names[i], s)
	}
	p.Legend.Top = true
	if err := p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname)); err != nil {
		return errDecorate(err, "ThetaScatter")
	}
	return nil
}

//DistHistogram plots the distribution of X-Cpi distances over the given
//records, with the given number of bins. The figure goes to
//plotname.png.
func DistHistogram(recs []*xpi.Record, bins int, title, plotname string) error {
	if recs == nil {
		panic(xpi.ErrNilRecords)
	}
	if bins < 1 {
		bins = 16
	}
	p := basicPlot(title, "d(X, Cpi) / A", "count")
	//an empty record set still gives a (blank) figure; binning zero
	//values is undefined
	if len(recs) > 0 {
		vals := make(plotter.Values, len(recs))
		for i, r := range recs {
			vals[i] = r.DistXPi
		}
		h, err := plotter.NewHist(vals, bins)
		if err != nil {
			return errDecorate(err, "DistHistogram")
		}
		h.FillColor = colHudson
		p.Add(h)
	}
	if err := p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname)); err != nil {
		return errDecorate(err, "DistHistogram")
	}
	return nil
}

//errDecorate wraps plotting errors into the library's error type.
func errDecorate(err error, caller string) error {
	return xpi.Errorf(xpi.KindConfiguration, "", "%s: %v", caller, err)
}
