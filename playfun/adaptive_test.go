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
	"strings"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

// a PlayFun with just enough state for the adaptive machinery.
func adaptiveOnly(numMotifs int) *PlayFun {
	pf := &PlayFun{
		rnd:         random.NewStream("test"),
		avoidDepths: [2]int{20, 75},
		seekDepths:  [3]int{30, 30, 50},
		motifScores: make([]float64, numMotifs),
	}
	pf.motifvec = make([][]uint8, numMotifs)
	for i := range pf.motifvec {
		pf.motifvec[i] = []uint8{uint8(i)}
	}
	return pf
}

func seedHistory(pf *PlayFun, score float64, n int) {
	for i := 0; i < n; i++ {
		pf.recordFutureScore(score)
	}
}

func TestAdaptiveDepthsBadFutures(t *testing.T) {
	pf := adaptiveOnly(4)
	seedHistory(pf, 0.1, 25)
	pf.adaptFutureDepths()

	test.Equate(t, pf.avoidDepths[0], 10)
	test.Equate(t, pf.avoidDepths[1], 30)
	test.Equate(t, pf.seekDepths[0], 15)
	test.Equate(t, pf.seekDepths[1], 15)
	test.Equate(t, pf.seekDepths[2], 25)
}

func TestAdaptiveDepthsGoodFutures(t *testing.T) {
	pf := adaptiveOnly(4)
	seedHistory(pf, 0.9, 25)
	pf.adaptFutureDepths()

	test.Equate(t, pf.avoidDepths[0], 40)
	test.Equate(t, pf.avoidDepths[1], 150)
	test.Equate(t, pf.seekDepths[0], 50)
	test.Equate(t, pf.seekDepths[1], 50)
	test.Equate(t, pf.seekDepths[2], 100)
}

func TestAdaptiveDepthsMiddle(t *testing.T) {
	pf := adaptiveOnly(4)
	seedHistory(pf, 0.5, 25)
	pf.adaptFutureDepths()

	test.Equate(t, pf.avoidDepths[0], 20)
	test.Equate(t, pf.avoidDepths[1], 75)
	test.Equate(t, pf.seekDepths[0], 30)
	test.Equate(t, pf.seekDepths[1], 30)
	test.Equate(t, pf.seekDepths[2], 50)
}

func TestAdaptiveDepthsNeedHistory(t *testing.T) {
	pf := adaptiveOnly(4)
	seedHistory(pf, 0.9, 24)
	pf.adaptFutureDepths()

	// below half-full history the depths stay at their defaults
	test.Equate(t, pf.avoidDepths[0], 20)
	test.Equate(t, pf.avoidDepths[1], 75)
}

func TestHistoryBound(t *testing.T) {
	pf := adaptiveOnly(4)
	seedHistory(pf, 1.0, historySize)
	seedHistory(pf, 0.0, historySize)

	// old entries have been pushed out entirely
	test.Equate(t, len(pf.recentFutures), historySize)
	test.Equate(t, pf.getAverageFutureScore(), 0.0)
}

func TestMotifSelectionWarmup(t *testing.T) {
	pf := adaptiveOnly(8)

	// before warmup, every motif is tried
	selected := pf.selectMotifsToTry()
	test.DemandEquality(t, len(selected), 8)

	seen := make(map[int]bool)
	for _, idx := range selected {
		seen[idx] = true
	}
	test.Equate(t, len(seen), 8)
}

func TestMotifSelectionAfterWarmup(t *testing.T) {
	pf := adaptiveOnly(8)

	// score motifs 0..3 high, 4..7 low
	for pf.motifUses < motifWarmup {
		for i := 0; i < 4; i++ {
			pf.updateMotifScore(i, 1.0)
		}
		for i := 4; i < 8; i++ {
			pf.updateMotifScore(i, -1.0)
		}
	}

	// the best half is always selected; the rest is occasional
	counts := make([]int, 8)
	const rounds = 200
	for r := 0; r < rounds; r++ {
		for _, idx := range pf.selectMotifsToTry() {
			counts[idx]++
		}
	}

	for i := 0; i < 4; i++ {
		test.Equate(t, counts[i], rounds)
	}
	for i := 4; i < 8; i++ {
		if counts[i] == 0 || counts[i] > rounds/2 {
			t.Errorf("motif %d selected %d/%d times, expected roughly a quarter", i, counts[i], rounds)
		}
	}
}

func TestMotifScoreEMA(t *testing.T) {
	pf := adaptiveOnly(2)

	pf.updateMotifScore(0, 1.0)
	test.Equate(t, pf.motifScores[0], 0.05)
	test.Equate(t, pf.motifUses, 1)

	pf.updateMotifScore(0, 1.0)
	test.Equate(t, pf.motifScores[0], 0.05*0.95+0.05)
}

func TestWriteStateGraph(t *testing.T) {
	pf := adaptiveOnly(2)

	s := &strings.Builder{}
	pf.WriteStateGraph(s)
	test.Equate(t, strings.Contains(s.String(), "digraph"), true)
}
