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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

// Compressed state layout: a 4-byte little-endian uncompressed length
// followed by the zlib compressed payload. When a basis is used, the
// payload is the raw state with the basis subtracted byte-wise (8-bit
// wrapping) before compression. A basis from a nearby moment of the same
// game makes the delta mostly zeroes and the compression much more
// effective.

// compression and decompression failures reflect corruption or environment
// failure that cannot be safely ignored mid-search. the process aborts.
func compressionFatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "fatal: %s: %v\n", context, err)
	os.Exit(10)
}

// deflateState delta-encodes raw against basis in place and compresses the
// result.
func deflateState(raw []byte, basis []byte) []byte {
	n := len(basis)
	if len(raw) < n {
		n = len(raw)
	}
	for i := 0; i < n; i++ {
		raw[i] -= basis[i]
	}

	out := &bytes.Buffer{}
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(raw)))
	out.Write(prefix[:])

	zw := zlib.NewWriter(out)
	if _, err := zw.Write(raw); err != nil {
		compressionFatal("state compression", err)
	}
	if err := zw.Close(); err != nil {
		compressionFatal("state compression", err)
	}

	return out.Bytes()
}

// inflateState reverses deflateState with the same basis. Input shorter
// than the length prefix returns nil.
func inflateState(in []byte, basis []byte) []byte {
	if len(in) < 4 {
		return nil
	}

	uncompLen := binary.LittleEndian.Uint32(in)

	zr, err := zlib.NewReader(bytes.NewReader(in[4:]))
	if err != nil {
		compressionFatal("state decompression", err)
	}

	raw := make([]byte, uncompLen)
	if _, err := io.ReadFull(zr, raw); err != nil {
		compressionFatal("state decompression", err)
	}
	zr.Close()

	n := len(basis)
	if len(raw) < n {
		n = len(raw)
	}
	for i := 0; i < n; i++ {
		raw[i] += basis[i]
	}

	return raw
}

// Save returns the compressed serialized state with no basis.
func Save() []byte {
	return SaveEx(nil)
}

// Load restores a state previously returned by Save.
func Load(in []byte) {
	LoadEx(in, nil)
}

// SaveEx returns the compressed serialized state, delta-encoded against the
// basis if one is given.
func SaveEx(basis []byte) []byte {
	if emu == nil {
		return nil
	}
	return deflateState(SaveUncompressed(), basis)
}

// LoadEx restores a state previously returned by SaveEx with the same
// basis. Input shorter than the length prefix is a silent no-op.
func LoadEx(in []byte, basis []byte) {
	if emu == nil {
		return
	}
	LoadUncompressed(inflateState(in, basis))
}
