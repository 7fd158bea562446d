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

package playfun

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// adaptiveState is the part of the search state worth looking at when a run
// has gone somewhere strange.
type adaptiveState struct {
	MovieFrames   int
	MotifUses     int
	AverageFuture float64
	AvoidDepths   [2]int
	SeekDepths    [3]int
	MotifScores   []float64
}

// WriteStateGraph writes a graphviz dot rendering of the adaptive search
// state.
func (pf *PlayFun) WriteStateGraph(w io.Writer) {
	state := adaptiveState{
		MovieFrames:   len(pf.movie),
		MotifUses:     pf.motifUses,
		AverageFuture: pf.getAverageFutureScore(),
		AvoidDepths:   pf.avoidDepths,
		SeekDepths:    pf.seekDepths,
		MotifScores:   pf.motifScores,
	}
	memviz.Map(w, &state)
}
