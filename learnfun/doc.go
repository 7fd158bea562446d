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

// Package learnfun turns an example playthrough into the per-game files
// the search consumes. The idea, due to Tom Murphy VII's "learnfun &
// playfun", is that nothing game-specific needs to be written by hand: the
// objectives are whatever memory locations went lexicographically up while
// a human played well, and the motifs are whatever inputs the human kept
// pressing.
package learnfun
