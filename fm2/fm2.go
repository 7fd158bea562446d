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

package fm2

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// input bits of the one-byte-per-frame encoding. bits from MSB to LSB are
// RLDUTSBA.
const (
	InputR = 1 << 7
	InputL = 1 << 6
	InputD = 1 << 5
	InputU = 1 << 4
	InputT = 1 << 3
	InputS = 1 << 2
	InputB = 1 << 1
	InputA = 1 << 0
)

// the joypad characters of an FM2 input field, in field order. a '.' (or
// space) in a position means the button is not pressed.
const buttonChars = "RLDUTSBA"

// Subtitle pairs a text with the frame it first appears on.
type Subtitle struct {
	Frame int
	Text  string
}

// sentinel error patterns for movie reading and writing.
const (
	ErrMovieRead  = "fm2: read: %v"
	ErrMovieWrite = "fm2: write: %v"
)

// ReadInputs reads the joypad-0 inputs of an FM2 movie, one byte per frame.
// Only one gamepad is supported and the movie is assumed to start with hard
// power-on in the first frame. Everything else in the file is ignored.
func ReadInputs(filename string) ([]uint8, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ErrMovieRead, err)
	}
	defer f.Close()

	var inputs []uint8

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		// frame lines start with a pipe; everything else is header
		if len(line) == 0 || line[0] != '|' {
			continue
		}

		// fields are |command|port0|port1|port2|
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			return nil, curated.Errorf(ErrMovieRead, "malformed frame line")
		}

		port0 := fields[2]
		var input uint8
		for i, c := range port0 {
			if i >= len(buttonChars) {
				break
			}
			if c != '.' && c != ' ' {
				input |= 1 << (7 - i)
			}
		}
		inputs = append(inputs, input)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ErrMovieRead, err)
	}

	return inputs, nil
}

// WriteInputs writes an FM2 movie of the joypad-0 inputs. The ROM filename
// and checksum header fields are supplied by the caller; the checksum is
// the "base64:" encoded MD5 that FCEUX expects.
func WriteInputs(filename string, romFilename string, romChecksum string, inputs []uint8) error {
	return WriteInputsWithSubtitles(filename, romFilename, romChecksum, inputs, nil)
}

// WriteInputsWithSubtitles is WriteInputs with subtitle lines added to the
// header.
func WriteInputsWithSubtitles(filename string, romFilename string, romChecksum string,
	inputs []uint8, subtitles []Subtitle) error {

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ErrMovieWrite, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "version 3\n")
	fmt.Fprintf(w, "emuVersion 22020\n")
	fmt.Fprintf(w, "palFlag 0\n")
	fmt.Fprintf(w, "romFilename %s\n", romFilename)
	fmt.Fprintf(w, "romChecksum %s\n", romChecksum)
	fmt.Fprintf(w, "guid 00000000-0000-0000-0000-000000000000\n")
	fmt.Fprintf(w, "fourscore 0\n")
	fmt.Fprintf(w, "microphone 0\n")
	fmt.Fprintf(w, "port0 1\n")
	fmt.Fprintf(w, "port1 0\n")
	fmt.Fprintf(w, "port2 0\n")
	fmt.Fprintf(w, "FDS 0\n")
	fmt.Fprintf(w, "NewPPU 0\n")

	for _, s := range subtitles {
		fmt.Fprintf(w, "subtitle %d %s\n", s.Frame, s.Text)
	}

	for i, input := range inputs {
		// the first frame powers the console on
		command := 0
		if i == 0 {
			command = 2
		}
		fmt.Fprintf(w, "|%d|%s|||\n", command, InputToString(input))
	}

	if err := w.Flush(); err != nil {
		return curated.Errorf(ErrMovieWrite, err)
	}

	return nil
}

// InputToString renders an input byte as the eight character FM2 joypad
// field.
func InputToString(input uint8) string {
	s := []byte("........")
	for i := 0; i < 8; i++ {
		if input&(1<<(7-i)) != 0 {
			s[i] = buttonChars[i]
		}
	}
	return string(s)
}
