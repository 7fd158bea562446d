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
	"sort"
)

// length of the rolling history of future scores.
const historySize = 50

// motif selection tries everything until this many scores have been
// recorded.
const motifWarmup = 100

// getAverageFutureScore over the rolling history.
func (pf *PlayFun) getAverageFutureScore() float64 {
	if len(pf.recentFutures) == 0 {
		return 0.0
	}

	var sum float64
	for _, d := range pf.recentFutures {
		sum += d
	}
	return sum / float64(len(pf.recentFutures))
}

// recordFutureScore appends to the rolling history, discarding the oldest
// entries beyond the bound.
func (pf *PlayFun) recordFutureScore(score float64) {
	pf.recentFutures = append(pf.recentFutures, score)
	if len(pf.recentFutures) > historySize {
		pf.recentFutures = pf.recentFutures[len(pf.recentFutures)-historySize:]
	}
}

// adaptFutureDepths adjusts the rollout depths to the recent quality of
// futures. when futures are bad the rollouts are shortened; when good, they
// are lengthened. the number of rollouts does not change.
func (pf *PlayFun) adaptFutureDepths() {
	// don't adapt until there is enough history
	if len(pf.recentFutures) < historySize/2 {
		return
	}

	avg := pf.getAverageFutureScore()

	switch {
	case avg < 0.3:
		pf.avoidDepths = [2]int{10, 30}
		pf.seekDepths = [3]int{15, 15, 25}
	case avg > 0.7:
		pf.avoidDepths = [2]int{40, 150}
		pf.seekDepths = [3]int{50, 50, 100}
	default:
		pf.avoidDepths = [2]int{20, 75}
		pf.seekDepths = [3]int{30, 30, 50}
	}
}

// updateMotifScore folds a trial's score into the motif's exponential
// moving average.
func (pf *PlayFun) updateMotifScore(idx int, score float64) {
	pf.motifScores[idx] = pf.motifScores[idx]*0.95 + score*0.05
	pf.motifUses++
}

// selectMotifsToTry returns the motif indices to evaluate this frame, in
// the order to try them.
//
// Until enough usage data exists, everything is tried. After that, the
// best-scoring half is always in, each remaining motif joins with roughly
// one in four probability, and the result is permuted so the candidates
// are not always tried in score order.
func (pf *PlayFun) selectMotifsToTry() []int {
	n := len(pf.motifvec)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if pf.motifUses < motifWarmup {
		pf.rnd.Shuffle(indices)
		return indices
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return pf.motifScores[indices[a]] > pf.motifScores[indices[b]]
	})

	selected := append([]int(nil), indices[:n/2]...)
	for _, idx := range indices[n/2:] {
		if pf.rnd.Byte() < 64 {
			selected = append(selected, idx)
		}
	}

	pf.rnd.Shuffle(selected)
	return selected
}
