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

package emulator

import (
	"encoding/binary"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

func TestDeflateRoundTrip(t *testing.T) {
	state := []byte("a perfectly ordinary serialized state with some repetition repetition")

	c := deflateState(append([]byte(nil), state...), nil)

	// 4-byte little-endian uncompressed length prefix
	test.DemandEquality(t, int(binary.LittleEndian.Uint32(c)), len(state))

	test.Equate(t, inflateState(c, nil), state)
}

func TestDeflateRoundTripWithBasis(t *testing.T) {
	state := []byte{0x00, 0x10, 0x80, 0xff, 0x7f, 0x01}
	basis := []byte{0xff, 0x10, 0x90, 0x0f, 0x80, 0x02}

	c := deflateState(append([]byte(nil), state...), basis)
	test.Equate(t, inflateState(c, basis), state)
}

func TestDeflateBasisShorterThanState(t *testing.T) {
	state := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	basis := []byte{9, 9, 9}

	c := deflateState(append([]byte(nil), state...), basis)
	test.Equate(t, inflateState(c, basis), state)
}

func TestDeflateBasisLongerThanState(t *testing.T) {
	state := []byte{1, 2, 3}
	basis := []byte{9, 9, 9, 9, 9, 9, 9, 9}

	c := deflateState(append([]byte(nil), state...), basis)
	test.Equate(t, inflateState(c, basis), state)
}

func TestDeltaEncodingWraps(t *testing.T) {
	// the subtraction is 8-bit wrapping; 0x00 - 0xff must encode as 0x01
	// and decode back to 0x00
	state := []byte{0x00}
	basis := []byte{0xff}

	c := deflateState(append([]byte(nil), state...), basis)
	test.Equate(t, inflateState(c, basis), []byte{0x00})
}

func TestInflateShortInput(t *testing.T) {
	// anything shorter than the length prefix is refused quietly
	test.Equate(t, inflateState(nil, nil) == nil, true)
	test.Equate(t, inflateState([]byte{1, 2, 3}, nil) == nil, true)
}

func TestUninitializedNoOps(t *testing.T) {
	// none of the facade operations may do anything before Initialize()
	test.Equate(t, IsInitialized(), false)

	Step(0xff)
	StepFull(0xff)
	CachingStep(0xff)
	ResetCache(100, 10)
	PrintCacheStats()
	Load([]byte{1, 2, 3, 4})
	LoadUncompressed([]byte{1, 2, 3, 4})
	Shutdown()

	test.Equate(t, len(GetMemory()), 0)
	test.Equate(t, len(GetImage()), 0)
	test.Equate(t, len(GetSound()), 0)
	test.Equate(t, RamChecksum(), uint64(0))
	test.Equate(t, GetStateSize(), 0)
	test.Equate(t, len(SaveUncompressed()), 0)
	test.Equate(t, len(Save()), 0)
	test.Equate(t, len(GetBasis()), 0)
	test.Equate(t, GetCoreName(), "")
	test.Equate(t, GetCoreVersion(), "")

	hits, misses := CacheStats()
	test.Equate(t, hits, uint64(0))
	test.Equate(t, misses, uint64(0))
}
