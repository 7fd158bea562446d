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

// Package motifs holds the bank of short input sequences the search plays
// from. Motifs are learned from an example movie as its ten-frame chunks,
// weighted by how often each chunk occurs; a human playthrough repeats its
// useful inputs (hold right, run and jump) far more than its incidental
// ones.
package motifs
