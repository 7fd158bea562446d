// This file is part of Playfun.
//
// Playfun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Playfun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Playfun.  If not, see <https://www.gnu.org/licenses/>.

package objectives

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// geometry of the progress chart.
const (
	svgWidth  = 1024
	svgHeight = 512
)

// line colours cycle per objective.
var svgColours = []string{
	"#268bd2", "#dc322f", "#859900", "#b58900",
	"#6c71c4", "#2aa198", "#d33682", "#cb4b16",
}

// SaveSVG plots the value of every objective over the accumulated memory
// snapshots. One polyline per objective, frame number along the x axis,
// objective value fraction along the y axis.
func (o *Objectives) SaveSVG(memories [][]byte, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ErrObjectivesFile, err)
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:white")

	if len(memories) > 1 {
		for i, obj := range o.objs {
			xs := make([]int, len(memories))
			ys := make([]int, len(memories))
			for m, mem := range memories {
				xs[m] = m * (svgWidth - 1) / (len(memories) - 1)
				ys[m] = svgHeight - 1 - int(ValueFrac(mem, obj.Locations)*float64(svgHeight-1))
			}

			colour := svgColours[i%len(svgColours)]
			canvas.Polyline(xs, ys,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-opacity:%.2f",
					colour, 0.2+0.8*obj.Weight))
		}
	}

	canvas.Text(8, 16, fmt.Sprintf("%d objectives, %d frames", len(o.objs), len(memories)),
		"font-family:monospace;font-size:12px;fill:black")
	canvas.End()

	return nil
}
