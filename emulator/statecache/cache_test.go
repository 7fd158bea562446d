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

package statecache_test

import (
	"fmt"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator/statecache"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

// fabricate a distinguishable state of a fixed length.
func state(n int) []byte {
	return []byte(fmt.Sprintf("state-%08d", n))
}

func TestRememberAndGetKnown(t *testing.T) {
	cache := statecache.NewCache(100, 10)

	pre := state(1)
	post := state(2)
	cache.Remember(0x01, pre, post)
	test.Equate(t, cache.Count(), 1)

	r := cache.GetKnown(0x01, pre)
	test.Equate(t, r, post)
	test.Equate(t, cache.Hits(), 1)
	test.Equate(t, cache.Misses(), 0)

	// same pre-state with a different input is a miss
	r = cache.GetKnown(0x02, pre)
	test.Equate(t, r == nil, true)
	test.Equate(t, cache.Misses(), 1)

	// different pre-state with the same input is a miss
	r = cache.GetKnown(0x01, state(3))
	test.Equate(t, r == nil, true)
	test.Equate(t, cache.Misses(), 2)
}

func TestOwnership(t *testing.T) {
	cache := statecache.NewCache(100, 10)

	pre := state(1)
	post := state(2)
	cache.Remember(0x00, pre, post)

	// mutating the caller's slices after Remember() must not affect the
	// cache contents
	pre2 := append([]byte(nil), pre...)
	for i := range pre {
		pre[i] = 0xff
	}
	for i := range post {
		post[i] = 0xff
	}

	test.Equate(t, cache.GetKnown(0x00, pre2), state(2))
}

func TestBoundAndEviction(t *testing.T) {
	const limit = 10
	const slop = 5
	cache := statecache.NewCache(limit, slop)

	// filling to the bound triggers no eviction
	for i := 0; i < limit+slop; i++ {
		cache.Remember(0x00, state(i), state(1000+i))
		test.Equate(t, cache.Count() <= uint64(limit+slop), true)
	}
	test.Equate(t, cache.Count(), uint64(limit+slop))

	// one more insertion evicts down to the limit
	cache.Remember(0x00, state(limit+slop), state(1000+limit+slop))
	test.Equate(t, cache.Count(), uint64(limit))
}

func TestEvictionKeepsNewest(t *testing.T) {
	const limit = 4
	const slop = 2
	cache := statecache.NewCache(limit, slop)

	for i := 0; i < limit+slop+1; i++ {
		cache.Remember(0x00, state(i), state(1000+i))
	}
	test.Equate(t, cache.Count(), uint64(limit))

	// the survivors are the limit entries with the largest sequence numbers
	// at the time of eviction; insertions 3..6
	for i := 0; i < 3; i++ {
		test.Equate(t, cache.GetKnown(0x00, state(i)) == nil, true)
	}
	for i := 3; i <= limit+slop; i++ {
		test.Equate(t, cache.GetKnown(0x00, state(i)), state(1000+i))
	}
}

func TestLookupBumpsSequence(t *testing.T) {
	const limit = 4
	const slop = 2
	cache := statecache.NewCache(limit, slop)

	for i := 0; i < limit+slop; i++ {
		cache.Remember(0x00, state(i), state(1000+i))
	}

	// touch the oldest entry, making it the most recent
	test.Equate(t, cache.GetKnown(0x00, state(0)), state(1000))

	// overflow; entry 0 must survive the eviction because of the bump
	cache.Remember(0x00, state(limit+slop), state(1000+limit+slop))
	test.Equate(t, cache.Count(), uint64(limit))
	test.Equate(t, cache.GetKnown(0x00, state(0)), state(1000))

	// entry 1 is now the oldest and must have been evicted
	test.Equate(t, cache.GetKnown(0x00, state(1)) == nil, true)
}

func TestResize(t *testing.T) {
	cache := statecache.NewCache(10, 2)
	cache.Remember(0x00, state(0), state(1))
	cache.GetKnown(0x00, state(0))
	cache.GetKnown(0x00, state(99))

	cache.Resize(20, 4)
	test.Equate(t, cache.Count(), 0)
	test.Equate(t, cache.Hits(), 0)
	test.Equate(t, cache.Misses(), 0)
	test.Equate(t, cache.GetKnown(0x00, state(0)) == nil, true)
}
