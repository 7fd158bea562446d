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

package romloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// ROM is the result of a successful load.
type ROM struct {
	// the path the ROM was loaded from, as given to Load()
	Filename string

	// the name of the ROM proper. differs from the base of Filename when
	// the ROM came out of an archive
	Name string

	Data []byte

	// SHA1 of the ROM data, in hex
	Hash string

	// MD5 of the ROM data in the "base64:" form used by FM2 movie headers
	Checksum string
}

// sentinel error patterns.
const (
	ErrROMFile     = "romloader: %v"
	ErrNoROMInArch = "romloader: no ROM file in archive (%s)"
)

// magic bytes for archive detection.
var (
	magicZIP  = []byte{0x50, 0x4b, 0x03, 0x04}
	magic7z   = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicGzip = []byte{0x1f, 0x8b}
	magicRAR  = []byte{0x52, 0x61, 0x72, 0x21}
)

// ROMs larger than this are refused. generous for the 8-bit systems the
// search targets.
const maxROMSize = 8 * 1024 * 1024

// Load reads the ROM at path. Archives (zip, gzip, 7z, rar) are detected by
// magic bytes. For zip, 7z and rar the first .nes file inside is extracted;
// for gzip the whole decompressed content is the ROM. Anything that is not an
// archive is returned as-is.
func Load(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(ErrROMFile, err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, curated.Errorf(ErrROMFile, err)
	}
	header = header[:n]

	var data []byte
	name := filepath.Base(path)

	switch {
	case bytes.HasPrefix(header, magicZIP):
		data, name, err = extractFromZIP(path)
	case bytes.HasPrefix(header, magic7z):
		data, name, err = extractFrom7z(path)
	case bytes.HasPrefix(header, magicRAR):
		data, name, err = extractFromRAR(path)
	case bytes.HasPrefix(header, magicGzip):
		data, name, err = extractFromGzip(path)
	default:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, curated.Errorf(ErrROMFile, err)
		}
		data, err = limitedRead(f)
	}
	if err != nil {
		return nil, err
	}

	return &ROM{
		Filename: path,
		Name:     name,
		Data:     data,
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
		Checksum: "base64:" + base64.StdEncoding.EncodeToString(md5sum(data)),
	}, nil
}

func md5sum(data []byte) []byte {
	sum := md5.Sum(data)
	return sum[:]
}

// isROMFile checks if an archive member looks like a NES ROM.
func isROMFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".nes")
}

// limitedRead reads from r up to maxROMSize bytes, returning an error if
// exceeded.
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxROMSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, curated.Errorf(ErrROMFile, err)
	}
	if len(data) > maxROMSize {
		return nil, curated.Errorf(ErrROMFile, "file exceeds maximum ROM size")
	}
	return data, nil
}

// extractFromZIP extracts the first ROM file from a zip archive.
func extractFromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", curated.Errorf(ErrROMFile, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", curated.Errorf(ErrROMFile, err)
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", curated.Errorf(ErrNoROMInArch, path)
}

// extractFromGzip decompresses a plain .gz file. the decompressed content
// is assumed to be the ROM.
func extractFromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", curated.Errorf(ErrROMFile, err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", curated.Errorf(ErrROMFile, err)
	}
	defer gr.Close()

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", err
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	return data, name, nil
}
