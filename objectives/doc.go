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

// Package objectives holds the learned per-game objective functions: a
// weighted set of memory-location orderings under which "progress" means
// the memory values are lexicographically increasing.
//
// The search consumes two evaluation modes. Evaluate() casts one weighted
// vote per objective on the direction of a memory change. In magnitude
// mode, EvaluateMagnitude() weighs each vote by how far the objective's
// value moved. Both are normalised to [-1, 1].
//
// The Enumerator derives candidate orderings from the memories of an
// example playthrough; see learnfun for how they are weighted and chosen.
package objectives
