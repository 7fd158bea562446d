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

// Package playfun is the greedy search over motifs. At every output frame
// the candidate motifs are evaluated from the current emulator state: the
// immediate objective score of playing the motif, plus a sampled look at
// the futures beyond it. Avoid-bad-futures keeps the worst score seen
// anywhere along stochastic rollouts (falling in a pit is bad even if the
// last frame looks fine); seek-good-futures keeps the best end-of-rollout
// score (a pit between here and the flagpole is survivable if some rollout
// gets past it).
//
// Rollout depths adapt to how the search is doing, and motif selection
// narrows to the historically productive motifs once there is enough usage
// data. The output movie is appended motif by motif and persisted
// periodically in FM2 form, with an SVG of the objective traces alongside.
//
// There is no backtracking. A committed motif is final.
package playfun
