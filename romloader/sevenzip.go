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
	"path/filepath"

	"github.com/bodgit/sevenzip"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// extractFrom7z extracts the first ROM file from a 7z archive.
func extractFrom7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
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
