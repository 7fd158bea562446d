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

package statecache

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// entry is a single memoized emulator step. the pre and post byte sequences
// are owned by the cache for the lifetime of the entry.
type entry struct {
	input uint8
	pre   []byte
	seq   uint64
	post  []byte
}

// Cache memoizes emulator steps. The key is the pair of input byte and
// serialized pre-step state; the value is the serialized post-step state
// stamped with a sequence number used as a recency proxy.
//
// The cache is bounded by limit+slop entries. When the bound is exceeded it
// is garbage collected down to limit entries, discarding those with the
// smallest sequence numbers.
type Cache struct {
	// buckets are keyed by a 64-bit hash of the pre-state seeded by the
	// input byte. ties are broken by byte-equality
	table map[uint64][]*entry

	limit   uint64
	slop    uint64
	count   uint64
	nextSeq uint64

	hits   uint64
	misses uint64
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache(limit uint64, slop uint64) *Cache {
	cache := &Cache{}
	cache.Resize(limit, slop)
	return cache
}

// hash of the pre-state seeded by the input byte.
func hash(input uint8, pre []byte) uint64 {
	d := xxhash.New()
	d.Write([]byte{input})
	d.Write(pre)
	return d.Sum64()
}

// Resize drops all entries and applies new bounds.
func (cache *Cache) Resize(limit uint64, slop uint64) {
	cache.table = make(map[uint64][]*entry)
	cache.limit = limit
	cache.slop = slop
	cache.count = 0
	cache.nextSeq = 0
	cache.hits = 0
	cache.misses = 0
}

// Remember inserts the result of stepping from pre with input. Both byte
// sequences are copied; the caller's slices are not retained.
func (cache *Cache) Remember(input uint8, pre []byte, post []byte) {
	e := &entry{
		input: input,
		pre:   append([]byte(nil), pre...),
		seq:   cache.nextSeq,
		post:  append([]byte(nil), post...),
	}
	cache.nextSeq++

	h := hash(input, pre)
	cache.table[h] = append(cache.table[h], e)
	cache.count++

	cache.maybeGC()
}

// GetKnown looks up the post-state for stepping from pre with input. The
// lookup compares against the caller's live byte sequence without copying
// it.
//
// A hit bumps the entry's sequence number and returns the post-state; the
// returned slice borrows from the cache and must be copied before any
// further call to Remember(). A miss returns nil.
func (cache *Cache) GetKnown(input uint8, pre []byte) []byte {
	for _, e := range cache.table[hash(input, pre)] {
		if e.input == input && bytes.Equal(e.pre, pre) {
			cache.hits++
			e.seq = cache.nextSeq
			cache.nextSeq++
			return e.post
		}
	}

	cache.misses++
	return nil
}

// maybeGC evicts the oldest entries once the count exceeds limit+slop,
// bringing the count back down to limit.
func (cache *Cache) maybeGC() {
	if cache.count <= cache.limit+cache.slop {
		return
	}

	seqs := make([]uint64, 0, cache.count)
	for _, bucket := range cache.table {
		for _, e := range bucket {
			seqs = append(seqs, e.seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	// every entry with a sequence number below the cutoff is removed. with
	// a limit of zero the cutoff is past the end of the list and the cache
	// empties completely
	var cutoff uint64
	if remove := cache.count - cache.limit; remove < uint64(len(seqs)) {
		cutoff = seqs[remove]
	} else {
		cutoff = cache.nextSeq
	}

	for h, bucket := range cache.table {
		keep := bucket[:0]
		for _, e := range bucket {
			if e.seq >= cutoff {
				keep = append(keep, e)
			} else {
				cache.count--
			}
		}
		if len(keep) == 0 {
			delete(cache.table, h)
		} else {
			cache.table[h] = keep
		}
	}
}

// Count returns the number of entries currently held.
func (cache *Cache) Count() uint64 {
	return cache.count
}

// Hits returns the number of successful lookups since the last Resize().
func (cache *Cache) Hits() uint64 {
	return cache.hits
}

// Misses returns the number of failed lookups since the last Resize().
func (cache *Cache) Misses() uint64 {
	return cache.misses
}

// String implements the fmt.Stringer interface.
func (cache *Cache) String() string {
	return fmt.Sprintf("cache: %d/%d, seq %d, %d hits, %d misses",
		cache.count, cache.limit, cache.nextSeq, cache.hits, cache.misses)
}
