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

package motifs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
)

// Length of a motif in frames. Motifs are replayed as a unit by the search;
// ten frames is enough for a short jump or a turn without committing the
// player for too long.
const Length = 10

// Motifs is a fixed-shape bank of short input sequences with a weight per
// motif. The shape never changes after construction.
type Motifs struct {
	motifs  [][]uint8
	weights []float64
	total   float64
}

// sentinel error patterns.
const (
	ErrMotifsFile = "motifs: %v"
)

// New is the preferred method of initialisation for the Motifs type. The
// weights slice must be the same length as the motifs slice.
func New(motifSeqs [][]uint8, weights []float64) *Motifs {
	if len(motifSeqs) != len(weights) {
		panic("motif and weight counts differ")
	}

	m := &Motifs{
		motifs:  motifSeqs,
		weights: weights,
	}
	for _, w := range weights {
		m.total += w
	}
	return m
}

// FromInputs builds the motif bank of an example movie: its consecutive
// Length-frame chunks, weighted by occurrence count.
func FromInputs(inputs []uint8) *Motifs {
	type counted struct {
		motif []uint8
		count int
	}

	seen := make(map[string]*counted)
	var order []string

	for i := 0; i+Length <= len(inputs); i += Length {
		chunk := inputs[i : i+Length]
		key := string(chunk)
		if c, ok := seen[key]; ok {
			c.count++
			continue
		}
		seen[key] = &counted{motif: append([]uint8(nil), chunk...), count: 1}
		order = append(order, key)
	}

	motifSeqs := make([][]uint8, 0, len(order))
	weights := make([]float64, 0, len(order))
	for _, key := range order {
		motifSeqs = append(motifSeqs, seen[key].motif)
		weights = append(weights, float64(seen[key].count))
	}

	return New(motifSeqs, weights)
}

// LoadFromFile reads a motifs file. One motif per line: the weight followed
// by the input bytes.
func LoadFromFile(filename string) (*Motifs, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ErrMotifsFile, err)
	}
	defer f.Close()

	var motifSeqs [][]uint8
	var weights []float64

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		weight, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, curated.Errorf(ErrMotifsFile, err)
		}

		motif := make([]uint8, 0, len(fields)-1)
		for _, fl := range fields[1:] {
			b, err := strconv.ParseUint(fl, 10, 8)
			if err != nil {
				return nil, curated.Errorf(ErrMotifsFile, err)
			}
			motif = append(motif, uint8(b))
		}

		motifSeqs = append(motifSeqs, motif)
		weights = append(weights, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ErrMotifsFile, err)
	}

	if len(motifSeqs) == 0 {
		return nil, curated.Errorf(ErrMotifsFile, "no motifs in file")
	}

	return New(motifSeqs, weights), nil
}

// SaveToFile writes the motifs in the format read by LoadFromFile.
func (m *Motifs) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ErrMotifsFile, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, motif := range m.motifs {
		fmt.Fprintf(w, "%f", m.weights[i])
		for _, b := range motif {
			fmt.Fprintf(w, " %d", b)
		}
		fmt.Fprintf(w, "\n")
	}

	if err := w.Flush(); err != nil {
		return curated.Errorf(ErrMotifsFile, err)
	}
	return nil
}

// Size returns the number of motifs in the bank.
func (m *Motifs) Size() int {
	return len(m.motifs)
}

// AllMotifs returns the bank's input sequences, indexed as elsewhere in the
// package. The caller must not modify them.
func (m *Motifs) AllMotifs() [][]uint8 {
	return m.motifs
}

// Motif returns the input sequence at the given index.
func (m *Motifs) Motif(idx int) []uint8 {
	return m.motifs[idx]
}

// RandomWeightedMotif picks a motif with probability proportional to its
// weight, drawing from the given random stream.
func (m *Motifs) RandomWeightedMotif(rnd *random.Stream) []uint8 {
	if m.total <= 0 {
		return m.motifs[rnd.Intn(len(m.motifs))]
	}

	r := rnd.Double() * m.total
	for i, w := range m.weights {
		r -= w
		if r < 0 {
			return m.motifs[i]
		}
	}

	// floating point slack lands on the final motif
	return m.motifs[len(m.motifs)-1]
}
