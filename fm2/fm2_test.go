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

package fm2_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/fm2"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

func TestInputToString(t *testing.T) {
	test.Equate(t, fm2.InputToString(0x00), "........")
	test.Equate(t, fm2.InputToString(0xff), "RLDUTSBA")
	test.Equate(t, fm2.InputToString(fm2.InputA), ".......A")
	test.Equate(t, fm2.InputToString(fm2.InputR), "R.......")
	test.Equate(t, fm2.InputToString(fm2.InputR|fm2.InputA|fm2.InputT), "R...T..A")
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "movie.fm2")

	inputs := []uint8{0x00, 0x00, 0x08, 0x81, 0xff, 0x00, 0x41}
	err := fm2.WriteInputs(filename, "smb.nes", "base64:jjYwGG411HcjG/j9UOVM3Q==", inputs)
	test.ExpectedSuccess(t, err)

	read, err := fm2.ReadInputs(filename)
	test.ExpectedSuccess(t, err)
	test.Equate(t, read, inputs)
}

func TestWriteHeader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "movie.fm2")

	err := fm2.WriteInputs(filename, "smb.nes", "base64:Ww5XFVjIx5aTe5avRpVhxg==", []uint8{0x00, 0x01})
	test.ExpectedSuccess(t, err)

	b, err := os.ReadFile(filename)
	test.ExpectedSuccess(t, err)
	s := string(b)

	test.Equate(t, strings.Contains(s, "version 3\n"), true)
	test.Equate(t, strings.Contains(s, "romFilename smb.nes\n"), true)
	test.Equate(t, strings.Contains(s, "romChecksum base64:Ww5XFVjIx5aTe5avRpVhxg==\n"), true)

	// the first frame carries the power-on command
	test.Equate(t, strings.Contains(s, "|2|........|||\n"), true)
	test.Equate(t, strings.Contains(s, "|0|.......A|||\n"), true)
}

func TestSubtitles(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "movie.fm2")

	subs := []fm2.Subtitle{{Frame: 0, Text: "start"}, {Frame: 60, Text: "one second in"}}
	err := fm2.WriteInputsWithSubtitles(filename, "smb.nes", "base64:x", []uint8{0}, subs)
	test.ExpectedSuccess(t, err)

	b, err := os.ReadFile(filename)
	test.ExpectedSuccess(t, err)
	test.Equate(t, strings.Contains(string(b), "subtitle 60 one second in\n"), true)

	// subtitles do not disturb input reading
	read, err := fm2.ReadInputs(filename)
	test.ExpectedSuccess(t, err)
	test.Equate(t, read, []uint8{0})
}

func TestReadMissingFile(t *testing.T) {
	_, err := fm2.ReadInputs(filepath.Join(t.TempDir(), "no-such.fm2"))
	test.ExpectedFailure(t, err)
}
