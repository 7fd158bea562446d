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
	"bytes"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
)

// Enumerator derives candidate orderings from a sequence of example
// memories. An ordering is interesting when the memories, read as
// lexicographic digits at the ordering's locations, never decrease across
// the observed sequence and strictly increase at least once.
//
// The enumeration builds orderings location by location. A location can
// extend a prefix when, over every adjacent pair of memories that are equal
// on the prefix, its value never goes down; it is a candidate (rather than
// merely legal later) when its value also goes up somewhere. Maximal
// prefixes are emitted.
type Enumerator struct {
	memories [][]byte
}

// NewEnumerator is the preferred method of initialisation for the
// Enumerator type. The memories slice must not be empty.
func NewEnumerator(memories [][]byte) *Enumerator {
	if len(memories) == 0 {
		panic("enumerator needs at least one memory")
	}
	return &Enumerator{memories: memories}
}

// equalOnPrefix is true when the two memories agree at every location of
// the prefix.
func equalOnPrefix(mem1 []byte, mem2 []byte, prefix []int) bool {
	for _, p := range prefix {
		if at(mem1, p) != at(mem2, p) {
			return false
		}
	}
	return true
}

// enumeratePartial splits the unused locations into those that can extend
// the prefix right now (candidates) and those that may become usable in a
// deeper prefix (remain). locations whose value is equal across every
// relevant pair are dropped entirely; they can never become interesting.
//
// only adjacent memories need checking; a distant counterexample implies an
// adjacent one somewhere in between.
func (en *Enumerator) enumeratePartial(look []int, prefix []int, left []int) (candidates []int, remain []int) {
	// indices lo in look where look[lo] and look[lo+1] are equal on the
	// prefix
	lequal := make([]int, 0, len(look)-1)
	for lo := 0; lo < len(look)-1; lo++ {
		if equalOnPrefix(en.memories[look[lo]], en.memories[look[lo+1]], prefix) {
			lequal = append(lequal, lo)
		}
	}

next:
	for _, c := range left {
		for _, p := range prefix {
			if p == c {
				continue next
			}
		}

		var rises bool
		for _, lo := range lequal {
			i := look[lo]
			j := look[lo+1]
			vi := at(en.memories[i], c)
			vj := at(en.memories[j], c)
			if vi > vj {
				// not a candidate here but may be legal later
				remain = append(remain, c)
				continue next
			}
			rises = rises || vi < vj
		}

		if rises {
			candidates = append(candidates, c)
			remain = append(remain, c)
		}
	}

	return candidates, remain
}

func (en *Enumerator) enumerateRec(look []int, prefix []int, left []int,
	emit func(ordering []int), limit *int, rnd *random.Stream) []int {

	candidates, remain := en.enumeratePartial(look, prefix, left)

	if rnd != nil {
		rnd.Shuffle(candidates)
	}

	// a maximal prefix is an objective. otherwise extend with each
	// candidate in turn
	if len(candidates) == 0 {
		if len(prefix) > 0 && *limit != 0 {
			emit(append([]int(nil), prefix...))
			if *limit > 0 {
				*limit--
			}
		}
		return prefix
	}

	for _, c := range candidates {
		prefix = append(prefix, c)
		prefix = en.enumerateRec(look, prefix, remain, emit, limit, rnd)
		prefix = prefix[:len(prefix)-1]
		if *limit == 0 {
			break
		}
	}

	return prefix
}

// EnumerateFull emits maximal orderings over the memories selected by look
// (indices into the example sequence). At most limit orderings are emitted;
// a limit below zero means no limit. A non-nil random stream shuffles the
// candidate order so that repeated calls explore different orderings.
func (en *Enumerator) EnumerateFull(look []int, emit func(ordering []int), limit int, rnd *random.Stream) {
	left := make([]int, len(en.memories[0]))
	for i := range left {
		left[i] = i
	}
	en.enumerateRec(look, nil, left, emit, &limit, rnd)
}

// EnumerateFullAll is EnumerateFull over every example memory, with
// adjacent duplicates collapsed.
func (en *Enumerator) EnumerateFullAll(emit func(ordering []int), limit int, rnd *random.Stream) {
	look := make([]int, 0, len(en.memories))
	for i := range en.memories {
		if i > 0 && bytes.Equal(en.memories[i], en.memories[i-1]) {
			continue
		}
		look = append(look, i)
	}
	en.EnumerateFull(look, emit, limit, rnd)
}
