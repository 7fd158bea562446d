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

package objectives_test

import (
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/objectives"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

func collect(en *objectives.Enumerator, limit int, rnd *random.Stream) [][]int {
	var out [][]int
	en.EnumerateFullAll(func(ordering []int) {
		out = append(out, ordering)
	}, limit, rnd)
	return out
}

func TestEnumerateMonotonicLocation(t *testing.T) {
	// location 0 strictly increases, location 1 never changes. the only
	// maximal ordering is the single location 0; a never-changing location
	// can never be interesting
	en := objectives.NewEnumerator([][]byte{
		{0, 7},
		{1, 7},
		{2, 7},
	})

	found := collect(en, -1, nil)
	test.DemandEquality(t, len(found), 1)
	test.Equate(t, len(found[0]), 1)
	test.Equate(t, found[0][0], 0)
}

func TestEnumerateLexicographicExtension(t *testing.T) {
	// location 1 falls between the second and third memories, but those
	// memories differ at location 0 so the fall is excused under the
	// prefix. the maximal ordering is [0 1]
	en := objectives.NewEnumerator([][]byte{
		{0, 0},
		{0, 1},
		{1, 0},
	})

	found := collect(en, -1, nil)
	test.DemandEquality(t, len(found), 1)
	test.Equate(t, len(found[0]), 2)
	test.Equate(t, found[0][0], 0)
	test.Equate(t, found[0][1], 1)
}

func TestEnumerateFallingLocationExcluded(t *testing.T) {
	// a location that falls with no excusing prefix can never start an
	// ordering
	en := objectives.NewEnumerator([][]byte{
		{5, 0},
		{4, 1},
		{3, 2},
	})

	found := collect(en, -1, nil)
	for _, ordering := range found {
		test.Equate(t, ordering[0], 1)
	}
}

func TestEnumerateLimit(t *testing.T) {
	// many independent rising locations produce many maximal orderings;
	// the limit caps the emission
	en := objectives.NewEnumerator([][]byte{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
	})

	found := collect(en, 2, nil)
	test.Equate(t, len(found), 2)
}

func TestEnumerateShuffleIsDeterministic(t *testing.T) {
	memories := [][]byte{
		{0, 0, 0, 0},
		{1, 0, 1, 2},
		{2, 1, 2, 2},
		{3, 1, 3, 4},
	}

	a := collect(objectives.NewEnumerator(memories), 4, random.NewStream("seed"))
	b := collect(objectives.NewEnumerator(memories), 4, random.NewStream("seed"))

	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.DemandEquality(t, len(a[i]), len(b[i]))
		for j := range a[i] {
			test.Equate(t, a[i][j], b[i][j])
		}
	}
}

func TestEnumerateDuplicateMemoriesCollapsed(t *testing.T) {
	// adjacent duplicates must not stop a location from being interesting
	en := objectives.NewEnumerator([][]byte{
		{0},
		{0},
		{1},
		{1},
		{2},
	})

	found := collect(en, -1, nil)
	test.DemandEquality(t, len(found), 1)
	test.Equate(t, found[0][0], 0)
}
