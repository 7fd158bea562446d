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

package romloader_test

import (
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/romloader"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

// a fake ROM: the iNES magic followed by filler.
func fakeROM() []byte {
	data := append([]byte(nil), 'N', 'E', 'S', 0x1a)
	for i := 0; i < 1024; i++ {
		data = append(data, byte(i))
	}
	return data
}

func TestLoadRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes")
	data := fakeROM()
	test.ExpectedSuccess(t, os.WriteFile(path, data, 0644))

	rom, err := romloader.Load(path)
	test.ExpectedSuccess(t, err)
	test.Equate(t, rom.Data, data)
	test.Equate(t, rom.Name, "game.nes")
	test.Equate(t, rom.Filename, path)
	test.Equate(t, len(rom.Hash), 40)
	test.Equate(t, rom.Checksum[:7], "base64:")
}

func TestLoadZIP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.zip")
	data := fakeROM()

	f, err := os.Create(path)
	test.ExpectedSuccess(t, err)
	zw := zip.NewWriter(f)

	// a non-ROM file that must be skipped
	w, err := zw.Create("readme.txt")
	test.ExpectedSuccess(t, err)
	w.Write([]byte("not a rom"))

	w, err = zw.Create("game.nes")
	test.ExpectedSuccess(t, err)
	w.Write(data)

	test.ExpectedSuccess(t, zw.Close())
	test.ExpectedSuccess(t, f.Close())

	rom, err := romloader.Load(path)
	test.ExpectedSuccess(t, err)
	test.Equate(t, rom.Data, data)
	test.Equate(t, rom.Name, "game.nes")
}

func TestLoadZIPWithoutROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")

	f, err := os.Create(path)
	test.ExpectedSuccess(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	test.ExpectedSuccess(t, err)
	w.Write([]byte("not a rom"))
	test.ExpectedSuccess(t, zw.Close())
	test.ExpectedSuccess(t, f.Close())

	_, err = romloader.Load(path)
	test.ExpectedFailure(t, err)
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes.gz")
	data := fakeROM()

	f, err := os.Create(path)
	test.ExpectedSuccess(t, err)
	gw := gzip.NewWriter(f)
	gw.Write(data)
	test.ExpectedSuccess(t, gw.Close())
	test.ExpectedSuccess(t, f.Close())

	rom, err := romloader.Load(path)
	test.ExpectedSuccess(t, err)
	test.Equate(t, rom.Data, data)
	test.Equate(t, rom.Name, "game.nes")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := romloader.Load(filepath.Join(t.TempDir(), "no-such.nes"))
	test.ExpectedFailure(t, err)
}

func TestChecksumStability(t *testing.T) {
	dir := t.TempDir()
	data := fakeROM()

	p1 := filepath.Join(dir, "a.nes")
	p2 := filepath.Join(dir, "b.nes")
	test.ExpectedSuccess(t, os.WriteFile(p1, data, 0644))
	test.ExpectedSuccess(t, os.WriteFile(p2, data, 0644))

	r1, err := romloader.Load(p1)
	test.ExpectedSuccess(t, err)
	r2, err := romloader.Load(p2)
	test.ExpectedSuccess(t, err)

	// the hash is a function of the data, not the path
	test.Equate(t, r1.Hash, r2.Hash)
	test.Equate(t, r1.Checksum, r2.Checksum)
}
